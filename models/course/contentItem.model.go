package course

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// Content item kinds. Kind is fixed at creation and can never change; the
// authoring flow locks the content type once an item exists.
const (
	KindVideo = "VIDEO"
	KindText  = "TEXT"
	KindPDF   = "PDF"
)

// ContentItem is the leaf unit of course content. OrderIndex is dense and
// zero-based among the items of one chapter. The kind-specific payload is
// stored as a JSON column and read through the typed accessors below.
type ContentItem struct {
	ID          string         `json:"id" gorm:"primaryKey"`
	ChapterID   string         `json:"chapter_id" gorm:"index;not null"`
	Kind        string         `json:"kind"` // VIDEO, TEXT, PDF
	Title       string         `json:"title"`
	Description string         `json:"description" gorm:"type:text"`
	OrderIndex  int            `json:"order_index" gorm:"default:0"`
	Payload     datatypes.JSON `json:"payload"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// VideoPayload holds the video-specific fields of a VIDEO item.
// CanonicalEmbedURL is derived from RawURL by the video source resolver and
// is re-derived whenever the link changes; it is never authoritative input.
type VideoPayload struct {
	Provider          string `json:"provider"` // UPLOAD, YOUTUBE, VIMEO, LOOM
	RawURL            string `json:"raw_url,omitempty"`
	UploadedAssetRef  string `json:"uploaded_asset_ref,omitempty"`
	CanonicalEmbedURL string `json:"canonical_embed_url,omitempty"`
	DurationLabel     string `json:"duration_label,omitempty"`
}

// TextPayload holds the rich text body of a TEXT item.
type TextPayload struct {
	RichContent string `json:"rich_content"`
}

// PDFPayload holds the uploaded document reference of a PDF item.
type PDFPayload struct {
	AssetRef string `json:"asset_ref"`
}

// ValidKind reports whether k is one of the allowed item kinds.
func ValidKind(k string) bool {
	return k == KindVideo || k == KindText || k == KindPDF
}

// Video decodes the payload of a VIDEO item.
func (ci *ContentItem) Video() (VideoPayload, error) {
	var p VideoPayload
	if len(ci.Payload) == 0 {
		return p, nil
	}
	err := json.Unmarshal(ci.Payload, &p)
	return p, err
}

// Text decodes the payload of a TEXT item.
func (ci *ContentItem) Text() (TextPayload, error) {
	var p TextPayload
	if len(ci.Payload) == 0 {
		return p, nil
	}
	err := json.Unmarshal(ci.Payload, &p)
	return p, err
}

// PDF decodes the payload of a PDF item.
func (ci *ContentItem) PDF() (PDFPayload, error) {
	var p PDFPayload
	if len(ci.Payload) == 0 {
		return p, nil
	}
	err := json.Unmarshal(ci.Payload, &p)
	return p, err
}

// SetPayload marshals p into the item's JSON payload column.
func (ci *ContentItem) SetPayload(p interface{}) error {
	b, err := json.Marshal(p)
	if err != nil {
		return err
	}
	ci.Payload = datatypes.JSON(b)
	return nil
}
