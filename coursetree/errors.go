package coursetree

import (
	"errors"
	"fmt"
)

var (
	// ErrChapterNotFound is returned when a chapter id does not exist in the course.
	ErrChapterNotFound = errors.New("chapter not found in course")
	// ErrItemNotFound is returned when an item id does not exist in the chapter.
	ErrItemNotFound = errors.New("content item not found in chapter")
	// ErrKindImmutable is returned when a patch attempts to change an existing
	// item's kind. The item is left untouched.
	ErrKindImmutable = errors.New("content kind cannot be changed after creation")
)

// IncompatibleKindError reports an item kind that the owning course's content
// type does not allow.
type IncompatibleKindError struct {
	Kind        string
	ContentType string
}

func (e *IncompatibleKindError) Error() string {
	return fmt.Sprintf("item kind %s is not allowed in a %s course", e.Kind, e.ContentType)
}
