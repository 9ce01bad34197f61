// Package store defines the persistence collaborators consumed by the
// authoring and listing flows, plus their concrete implementations.
package store

import (
	"context"
	"errors"
	"mime/multipart"
	"strings"

	"coursebase/models/course"
	"coursebase/reorder"
)

// ErrCourseNotFound is returned when a fetched course id does not exist.
var ErrCourseNotFound = errors.New("course not found")

// Asset kinds accepted by the upload collaborator.
const (
	AssetImage = "IMAGE"
	AssetVideo = "VIDEO"
	AssetPDF   = "PDF"
)

// CourseFilter narrows FetchCourseList. Zero values mean "any"; archived
// courses are excluded unless IncludeArchived is set.
type CourseFilter struct {
	Category        string
	ContentType     string
	Status          string
	IncludeArchived bool
}

// CourseStore persists and serves whole course trees and flat sibling
// orders. PersistCourse replaces the stored tree with the given one;
// PersistOrder is idempotent.
type CourseStore interface {
	PersistCourse(ctx context.Context, c *course.Course) (*course.Course, error)
	FetchCourse(ctx context.Context, id string) (*course.Course, error)
	FetchCourseList(ctx context.Context, filter CourseFilter) ([]course.Course, error)
	PersistOrder(ctx context.Context, scopeID string, ordered []reorder.Sibling) error
	FetchOrder(ctx context.Context, scopeID string) ([]reorder.Sibling, error)
}

// AssetStore receives uploaded files and returns an opaque asset reference.
type AssetStore interface {
	UploadAsset(kind string, file *multipart.FileHeader) (string, error)
}

// Sibling scopes. The listing scope orders courses by display order; course
// and chapter scopes order their direct children.
const ScopeListing = "listing"

// ScopeCourse names the chapter order scope of one course.
func ScopeCourse(courseID string) string { return "course:" + courseID }

// ScopeChapter names the item order scope of one chapter.
func ScopeChapter(chapterID string) string { return "chapter:" + chapterID }

func splitScope(scopeID string) (kind, id string) {
	if scopeID == ScopeListing {
		return ScopeListing, ""
	}
	kind, id, _ = strings.Cut(scopeID, ":")
	return kind, id
}
