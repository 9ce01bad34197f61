package course

import "time"

// Chapter is an ordered section within a course. OrderIndex is dense and
// zero-based among the chapters of one course.
type Chapter struct {
	ID          string        `json:"id" gorm:"primaryKey"`
	CourseID    string        `json:"course_id" gorm:"index;not null"`
	Title       string        `json:"title"`
	Description string        `json:"description" gorm:"type:text"`
	OrderIndex  int           `json:"order_index" gorm:"default:0"`
	Items       []ContentItem `json:"items" gorm:"foreignKey:ChapterID"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}
