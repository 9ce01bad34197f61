package course

import "time"

// Course status values. ARCHIVED is a soft delete: the course is kept in
// storage but excluded from every listing.
const (
	StatusDraft     = "DRAFT"
	StatusPublished = "PUBLISHED"
	StatusArchived  = "ARCHIVED"
)

// Course content types. Fixed at creation; constrains which item kinds the
// course's chapters may contain.
const (
	ContentTypeVideo = "VIDEO"
	ContentTypeText  = "TEXT"
)

// Course represents a learning course with its ordered chapter tree.
// DisplayOrder is the cross-course listing position and is owned exclusively
// by the reorder engine; authoring operations never touch it.
type Course struct {
	ID             string    `json:"id" gorm:"primaryKey"`
	Title          string    `json:"title"`
	Description    string    `json:"description" gorm:"type:text"`
	Category       string    `json:"category" gorm:"index"`
	TargetAudience string    `json:"target_audience"`
	ContentType    string    `json:"content_type"` // VIDEO, TEXT
	ThumbnailRef   string    `json:"thumbnail_ref"`
	Status         string    `json:"status" gorm:"default:'DRAFT';index"` // DRAFT, PUBLISHED, ARCHIVED
	DisplayOrder   int       `json:"display_order" gorm:"default:0"`
	Chapters       []Chapter `json:"chapters" gorm:"foreignKey:CourseID"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ValidContentType reports whether ct is one of the allowed course content types.
func ValidContentType(ct string) bool {
	return ct == ContentTypeVideo || ct == ContentTypeText
}

// ValidStatus reports whether s is one of the allowed course statuses.
func ValidStatus(s string) bool {
	return s == StatusDraft || s == StatusPublished || s == StatusArchived
}
