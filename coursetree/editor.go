// Package coursetree is the in-memory authoring editor for a course's
// chapter/item tree. All operations are synchronous, mutate only the caller's
// private copy of the course, and keep order indexes dense (0..n-1) after
// every mutation. Nothing here talks to storage; saving the mutated tree is
// the caller's job.
package coursetree

import (
	"github.com/google/uuid"

	"coursebase/models/course"
	"coursebase/videosource"
)

// ChapterPatch carries the updatable chapter fields. Empty strings leave the
// current value alone.
type ChapterPatch struct {
	Title       string
	Description string
}

// VideoDraft is the video payload supplied when creating or updating a VIDEO
// item. For UPLOAD the asset reference comes from the upload transport; for
// link providers the raw URL is resolved into a canonical embed URL.
type VideoDraft struct {
	Provider         string
	RawURL           string
	UploadedAssetRef string
	DurationLabel    string
}

// ItemDraft describes a new content item. Exactly one of the kind payloads is
// consulted, matching Kind.
type ItemDraft struct {
	Kind        string
	Title       string
	Description string
	Video       *VideoDraft
	RichContent string
	AssetRef    string
}

// ItemPatch carries the updatable item fields. Empty strings leave the
// current value alone; a non-empty Kind differing from the item's kind is
// rejected outright.
type ItemPatch struct {
	Kind        string
	Title       string
	Description string
	Video       *VideoDraft
	RichContent *string
	AssetRef    string
}

// AddChapter appends a chapter at the end of the course's chapter list and
// returns a copy of it. The tree on c is the single source of truth; later
// mutations do not flow into the returned value.
func AddChapter(c *course.Course, title, description string) course.Chapter {
	ch := course.Chapter{
		ID:          uuid.NewString(),
		CourseID:    c.ID,
		Title:       title,
		Description: description,
		OrderIndex:  len(c.Chapters),
		Items:       []course.ContentItem{},
	}
	c.Chapters = append(c.Chapters, ch)
	return ch
}

// UpdateChapter applies a patch to the chapter with the given id.
func UpdateChapter(c *course.Course, chapterID string, patch ChapterPatch) (*course.Chapter, error) {
	ch := findChapter(c, chapterID)
	if ch == nil {
		return nil, ErrChapterNotFound
	}
	if patch.Title != "" {
		ch.Title = patch.Title
	}
	if patch.Description != "" {
		ch.Description = patch.Description
	}
	return ch, nil
}

// RemoveChapter deletes a chapter and all of its items, then re-indexes the
// remaining chapters so order stays dense.
func RemoveChapter(c *course.Course, chapterID string) error {
	idx := -1
	for i := range c.Chapters {
		if c.Chapters[i].ID == chapterID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrChapterNotFound
	}
	c.Chapters = append(c.Chapters[:idx], c.Chapters[idx+1:]...)
	reindexChapters(c)
	return nil
}

// AddItem appends a content item at the end of a chapter and returns a copy
// of it. The draft's kind must be compatible with the course's content type.
// For link-provider videos the canonical embed URL is derived here; a link
// that does not resolve still creates the item (it simply fails validation
// until the author fixes it).
func AddItem(c *course.Course, chapterID string, draft ItemDraft) (course.ContentItem, error) {
	ch := findChapter(c, chapterID)
	if ch == nil {
		return course.ContentItem{}, ErrChapterNotFound
	}
	if !kindAllowed(draft.Kind, c.ContentType) {
		return course.ContentItem{}, &IncompatibleKindError{Kind: draft.Kind, ContentType: c.ContentType}
	}

	item := course.ContentItem{
		ID:          uuid.NewString(),
		ChapterID:   ch.ID,
		Kind:        draft.Kind,
		Title:       draft.Title,
		Description: draft.Description,
		OrderIndex:  len(ch.Items),
	}

	var err error
	switch draft.Kind {
	case course.KindVideo:
		payload := course.VideoPayload{}
		if draft.Video != nil {
			payload = resolveVideo(*draft.Video)
		}
		err = item.SetPayload(payload)
	case course.KindText:
		err = item.SetPayload(course.TextPayload{RichContent: draft.RichContent})
	case course.KindPDF:
		err = item.SetPayload(course.PDFPayload{AssetRef: draft.AssetRef})
	}
	if err != nil {
		return course.ContentItem{}, err
	}

	ch.Items = append(ch.Items, item)
	return item, nil
}

// UpdateItem applies a patch to an item. Any attempt to change the item's
// kind is rejected with ErrKindImmutable before anything is mutated.
func UpdateItem(c *course.Course, chapterID, itemID string, patch ItemPatch) (*course.ContentItem, error) {
	ch := findChapter(c, chapterID)
	if ch == nil {
		return nil, ErrChapterNotFound
	}
	item := findItem(ch, itemID)
	if item == nil {
		return nil, ErrItemNotFound
	}
	if patch.Kind != "" && patch.Kind != item.Kind {
		return nil, ErrKindImmutable
	}

	if patch.Title != "" {
		item.Title = patch.Title
	}
	if patch.Description != "" {
		item.Description = patch.Description
	}

	switch item.Kind {
	case course.KindVideo:
		if patch.Video != nil {
			if err := item.SetPayload(resolveVideo(*patch.Video)); err != nil {
				return nil, err
			}
		}
	case course.KindText:
		if patch.RichContent != nil {
			if err := item.SetPayload(course.TextPayload{RichContent: *patch.RichContent}); err != nil {
				return nil, err
			}
		}
	case course.KindPDF:
		if patch.AssetRef != "" {
			if err := item.SetPayload(course.PDFPayload{AssetRef: patch.AssetRef}); err != nil {
				return nil, err
			}
		}
	}
	return item, nil
}

// RemoveItem deletes an item and re-indexes the chapter's remaining items.
func RemoveItem(c *course.Course, chapterID, itemID string) error {
	ch := findChapter(c, chapterID)
	if ch == nil {
		return ErrChapterNotFound
	}
	idx := -1
	for i := range ch.Items {
		if ch.Items[i].ID == itemID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrItemNotFound
	}
	ch.Items = append(ch.Items[:idx], ch.Items[idx+1:]...)
	reindexItems(ch)
	return nil
}

// resolveVideo derives the canonical embed URL for a video draft. Resolution
// failure is not an error here: the item keeps the raw URL and stays invalid
// until the author supplies a working link.
func resolveVideo(draft VideoDraft) course.VideoPayload {
	payload := course.VideoPayload{
		Provider:         draft.Provider,
		RawURL:           draft.RawURL,
		UploadedAssetRef: draft.UploadedAssetRef,
		DurationLabel:    draft.DurationLabel,
	}
	source := draft.RawURL
	if draft.Provider == videosource.ProviderUpload {
		source = draft.UploadedAssetRef
	}
	if ref, err := videosource.Resolve(source, draft.Provider); err == nil {
		payload.CanonicalEmbedURL = ref.EmbedURL
	}
	return payload
}

// kindAllowed maps the course content type to the item kinds it may contain.
// PDF attachments are allowed alongside either primary type.
func kindAllowed(kind, contentType string) bool {
	switch contentType {
	case course.ContentTypeVideo:
		return kind == course.KindVideo || kind == course.KindPDF
	case course.ContentTypeText:
		return kind == course.KindText || kind == course.KindPDF
	}
	return false
}

func findChapter(c *course.Course, chapterID string) *course.Chapter {
	for i := range c.Chapters {
		if c.Chapters[i].ID == chapterID {
			return &c.Chapters[i]
		}
	}
	return nil
}

func findItem(ch *course.Chapter, itemID string) *course.ContentItem {
	for i := range ch.Items {
		if ch.Items[i].ID == itemID {
			return &ch.Items[i]
		}
	}
	return nil
}

func reindexChapters(c *course.Course) {
	for i := range c.Chapters {
		c.Chapters[i].OrderIndex = i
	}
}

func reindexItems(ch *course.Chapter) {
	for i := range ch.Items {
		ch.Items[i].OrderIndex = i
	}
}
