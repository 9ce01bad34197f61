package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"coursebase/models/course"
	"coursebase/reorder"
)

// GormStore is the SQL-backed CourseStore. Course trees are persisted with
// replace semantics: the stored chapters and items of a course are swapped
// for the submitted tree in one transaction.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore wraps a GORM handle.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// PersistCourse creates or replaces a course and its whole chapter/item tree.
// DisplayOrder is owned by the reorder engine: an existing course keeps its
// stored value, a new course is appended at the end of the listing.
func (s *GormStore) PersistCourse(ctx context.Context, c *course.Course) (*course.Course, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing course.Course
		found := tx.Select("id", "display_order").First(&existing, "id = ?", c.ID).Error
		isNew := found == gorm.ErrRecordNotFound
		switch {
		case found == nil:
			c.DisplayOrder = existing.DisplayOrder
		case isNew:
			var count int64
			if err := tx.Model(&course.Course{}).Count(&count).Error; err != nil {
				return err
			}
			c.DisplayOrder = int(count)
		default:
			return found
		}

		// replace semantics: drop the stored tree, re-insert the submitted one
		if err := tx.Where("chapter_id IN (?)",
			tx.Model(&course.Chapter{}).Select("id").Where("course_id = ?", c.ID),
		).Delete(&course.ContentItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("course_id = ?", c.ID).Delete(&course.Chapter{}).Error; err != nil {
			return err
		}

		if isNew {
			if err := tx.Omit("Chapters").Create(c).Error; err != nil {
				return err
			}
		} else if err := tx.Omit("Chapters").Save(c).Error; err != nil {
			return err
		}
		for i := range c.Chapters {
			ch := &c.Chapters[i]
			ch.CourseID = c.ID
			if err := tx.Omit("Items").Create(ch).Error; err != nil {
				return err
			}
			for j := range ch.Items {
				ch.Items[j].ChapterID = ch.ID
				if err := tx.Create(&ch.Items[j]).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("persist course %s: %w", c.ID, err)
	}
	return c, nil
}

// FetchCourse loads a course with its chapters and items in stored order.
func (s *GormStore) FetchCourse(ctx context.Context, id string) (*course.Course, error) {
	var c course.Course
	err := s.db.WithContext(ctx).
		Preload("Chapters", func(db *gorm.DB) *gorm.DB { return db.Order("order_index asc") }).
		Preload("Chapters.Items", func(db *gorm.DB) *gorm.DB { return db.Order("order_index asc") }).
		First(&c, "id = ?", id).Error
	if err == gorm.ErrRecordNotFound {
		return nil, ErrCourseNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// FetchCourseList returns courses ordered for the listing view. The chapter
// trees are deliberately not loaded; the listing only needs flat metadata.
func (s *GormStore) FetchCourseList(ctx context.Context, filter CourseFilter) ([]course.Course, error) {
	q := s.db.WithContext(ctx).Model(&course.Course{})
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.ContentType != "" {
		q = q.Where("content_type = ?", filter.ContentType)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	} else if !filter.IncludeArchived {
		q = q.Where("status <> ?", course.StatusArchived)
	}

	var courses []course.Course
	if err := q.Order("display_order asc").Find(&courses).Error; err != nil {
		return nil, err
	}
	return courses, nil
}

// PersistOrder writes a full sibling order for one scope in a transaction.
// Resubmitting the same payload rewrites the same values, so the call is
// idempotent.
func (s *GormStore) PersistOrder(ctx context.Context, scopeID string, ordered []reorder.Sibling) error {
	kind, id := splitScope(scopeID)
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, sib := range ordered {
			var res *gorm.DB
			switch kind {
			case ScopeListing:
				res = tx.Model(&course.Course{}).Where("id = ?", sib.ID).
					Update("display_order", sib.OrderIndex)
			case "course":
				res = tx.Model(&course.Chapter{}).Where("id = ? AND course_id = ?", sib.ID, id).
					Update("order_index", sib.OrderIndex)
			case "chapter":
				res = tx.Model(&course.ContentItem{}).Where("id = ? AND chapter_id = ?", sib.ID, id).
					Update("order_index", sib.OrderIndex)
			default:
				return fmt.Errorf("unknown order scope %q", scopeID)
			}
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return fmt.Errorf("sibling %s not found in scope %q", sib.ID, scopeID)
			}
		}
		return nil
	})
}

// FetchOrder reads the authoritative sibling order for one scope. The listing
// scope excludes archived courses, matching what the listing view shows.
func (s *GormStore) FetchOrder(ctx context.Context, scopeID string) ([]reorder.Sibling, error) {
	kind, id := splitScope(scopeID)
	db := s.db.WithContext(ctx)

	type row struct {
		ID         string
		OrderIndex int
	}
	var rows []row

	switch kind {
	case ScopeListing:
		err := db.Model(&course.Course{}).
			Select("id", "display_order as order_index").
			Where("status <> ?", course.StatusArchived).
			Order("display_order asc").
			Scan(&rows).Error
		if err != nil {
			return nil, err
		}
	case "course":
		err := db.Model(&course.Chapter{}).
			Select("id", "order_index").
			Where("course_id = ?", id).
			Order("order_index asc").
			Scan(&rows).Error
		if err != nil {
			return nil, err
		}
	case "chapter":
		err := db.Model(&course.ContentItem{}).
			Select("id", "order_index").
			Where("chapter_id = ?", id).
			Order("order_index asc").
			Scan(&rows).Error
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown order scope %q", scopeID)
	}

	siblings := make([]reorder.Sibling, len(rows))
	for i, r := range rows {
		siblings[i] = reorder.Sibling{ID: r.ID, OrderIndex: r.OrderIndex}
	}
	return siblings, nil
}
