package coursetree

import (
	"strings"

	"coursebase/models/course"
	"coursebase/videosource"
)

// ItemValidation is the per-item validation verdict: OK with an empty missing
// list, or the names of the fields that block publishing.
type ItemValidation struct {
	OK            bool     `json:"ok"`
	MissingFields []string `json:"missing_fields,omitempty"`
}

// ItemProblem locates an invalid item inside the course tree.
type ItemProblem struct {
	ChapterID     string   `json:"chapter_id"`
	ItemID        string   `json:"item_id"`
	MissingFields []string `json:"missing_fields"`
}

// CourseValidation is the whole-course publish check result.
type CourseValidation struct {
	Publishable bool          `json:"publishable"`
	Reasons     []string      `json:"reasons,omitempty"`
	Items       []ItemProblem `json:"items,omitempty"`
}

// ValidateItem checks an item's completeness for its kind. It is side-effect
// free; a video whose link never resolved reports a missing embed URL instead
// of failing hard.
func ValidateItem(item *course.ContentItem) ItemValidation {
	var missing []string

	if strings.TrimSpace(item.Title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(item.Description) == "" {
		missing = append(missing, "description")
	}

	switch item.Kind {
	case course.KindVideo:
		payload, err := item.Video()
		switch {
		case err != nil:
			missing = append(missing, "payload")
		case payload.Provider == videosource.ProviderUpload:
			if payload.UploadedAssetRef == "" {
				missing = append(missing, "uploaded_asset_ref")
			}
		default:
			if payload.CanonicalEmbedURL == "" {
				missing = append(missing, "canonical_embed_url")
			}
		}
	case course.KindText:
		payload, err := item.Text()
		if err != nil || strings.TrimSpace(payload.RichContent) == "" {
			missing = append(missing, "rich_content")
		}
	case course.KindPDF:
		payload, err := item.PDF()
		if err != nil || payload.AssetRef == "" {
			missing = append(missing, "asset_ref")
		}
	default:
		missing = append(missing, "kind")
	}

	return ItemValidation{OK: len(missing) == 0, MissingFields: missing}
}

// ValidateCourse runs the publish check: at least one chapter, and every item
// in every chapter complete. Draft saves deliberately bypass this; only the
// transition to PUBLISHED enforces it.
func ValidateCourse(c *course.Course) CourseValidation {
	result := CourseValidation{Publishable: true}

	if strings.TrimSpace(c.Title) == "" {
		result.Publishable = false
		result.Reasons = append(result.Reasons, "course title is required")
	}
	if len(c.Chapters) == 0 {
		result.Publishable = false
		result.Reasons = append(result.Reasons, "course must have at least one chapter")
	}

	for ci := range c.Chapters {
		ch := &c.Chapters[ci]
		for ii := range ch.Items {
			if v := ValidateItem(&ch.Items[ii]); !v.OK {
				result.Publishable = false
				result.Items = append(result.Items, ItemProblem{
					ChapterID:     ch.ID,
					ItemID:        ch.Items[ii].ID,
					MissingFields: v.MissingFields,
				})
			}
		}
	}

	return result
}
