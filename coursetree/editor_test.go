package coursetree

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coursebase/models/course"
)

func newVideoCourse() *course.Course {
	return &course.Course{
		ID:          uuid.NewString(),
		Title:       "Go from scratch",
		Description: "A video course",
		ContentType: course.ContentTypeVideo,
		Status:      course.StatusDraft,
	}
}

func requireDense(t *testing.T, c *course.Course) {
	t.Helper()
	for i := range c.Chapters {
		require.Equal(t, i, c.Chapters[i].OrderIndex, "chapter order must be dense")
		for j := range c.Chapters[i].Items {
			require.Equal(t, j, c.Chapters[i].Items[j].OrderIndex, "item order must be dense")
		}
	}
}

func TestAddChapterAppendsDense(t *testing.T) {
	c := newVideoCourse()

	first := AddChapter(c, "Basics", "Start here")
	second := AddChapter(c, "Advanced", "Go deeper")

	require.Len(t, c.Chapters, 2)
	assert.Equal(t, 0, first.OrderIndex)
	assert.Equal(t, 1, second.OrderIndex)
	assert.NotEqual(t, first.ID, second.ID)
	requireDense(t, c)
}

func TestRemoveChapterReindexesAndCascades(t *testing.T) {
	c := newVideoCourse()
	a := AddChapter(c, "A", "a")
	b := AddChapter(c, "B", "b")
	d := AddChapter(c, "C", "c")

	_, err := AddItem(c, b.ID, ItemDraft{
		Kind: course.KindVideo, Title: "clip", Description: "d",
		Video: &VideoDraft{Provider: "YOUTUBE", RawURL: "https://youtu.be/dQw4w9WgXcQ"},
	})
	require.NoError(t, err)

	require.NoError(t, RemoveChapter(c, b.ID))

	require.Len(t, c.Chapters, 2)
	assert.Equal(t, a.ID, c.Chapters[0].ID)
	assert.Equal(t, d.ID, c.Chapters[1].ID)
	requireDense(t, c)

	// the removed chapter's items went with it
	for i := range c.Chapters {
		assert.Empty(t, c.Chapters[i].Items)
	}

	assert.ErrorIs(t, RemoveChapter(c, "missing"), ErrChapterNotFound)
}

func TestAddItemRejectsIncompatibleKind(t *testing.T) {
	c := newVideoCourse()
	ch := AddChapter(c, "Basics", "d")

	_, err := AddItem(c, ch.ID, ItemDraft{Kind: course.KindText, Title: "t", Description: "d", RichContent: "<p>hi</p>"})
	var kindErr *IncompatibleKindError
	require.ErrorAs(t, err, &kindErr)
	assert.Equal(t, course.KindText, kindErr.Kind)
	assert.Empty(t, c.Chapters[0].Items, "rejected item must not be added")

	// PDF attachments ride along with either content type
	_, err = AddItem(c, ch.ID, ItemDraft{Kind: course.KindPDF, Title: "slides", Description: "d", AssetRef: "uploads/pdf/slides.pdf"})
	require.NoError(t, err)
}

func TestAddItemResolvesVideoLink(t *testing.T) {
	c := newVideoCourse()
	ch := AddChapter(c, "Basics", "d")

	item, err := AddItem(c, ch.ID, ItemDraft{
		Kind: course.KindVideo, Title: "intro", Description: "d",
		Video: &VideoDraft{Provider: "VIMEO", RawURL: "https://vimeo.com/824804225"},
	})
	require.NoError(t, err)

	payload, err := item.Video()
	require.NoError(t, err)
	assert.Equal(t, "https://player.vimeo.com/video/824804225", payload.CanonicalEmbedURL)
	assert.Equal(t, "https://vimeo.com/824804225", payload.RawURL)
}

func TestAddItemKeepsUnresolvableLink(t *testing.T) {
	c := newVideoCourse()
	ch := AddChapter(c, "Basics", "d")

	item, err := AddItem(c, ch.ID, ItemDraft{
		Kind: course.KindVideo, Title: "broken", Description: "d",
		Video: &VideoDraft{Provider: "YOUTUBE", RawURL: "not a url"},
	})
	require.NoError(t, err, "an unresolvable link is a validation problem, not an operation failure")

	payload, err := item.Video()
	require.NoError(t, err)
	assert.Empty(t, payload.CanonicalEmbedURL)
	assert.False(t, ValidateItem(&item).OK)
}

func TestUpdateItemKindIsImmutable(t *testing.T) {
	c := newVideoCourse()
	ch := AddChapter(c, "Basics", "d")
	item, err := AddItem(c, ch.ID, ItemDraft{
		Kind: course.KindVideo, Title: "intro", Description: "d",
		Video: &VideoDraft{Provider: "VIMEO", RawURL: "https://vimeo.com/824804225"},
	})
	require.NoError(t, err)

	_, err = UpdateItem(c, ch.ID, item.ID, ItemPatch{Kind: course.KindPDF, Title: "changed"})
	assert.ErrorIs(t, err, ErrKindImmutable)
	stored := c.Chapters[0].Items[0]
	assert.Equal(t, "intro", stored.Title, "rejected patch must not mutate the item")
	assert.Equal(t, course.KindVideo, stored.Kind)
}

func TestUpdateItemPatchesFields(t *testing.T) {
	c := newVideoCourse()
	ch := AddChapter(c, "Basics", "d")
	item, err := AddItem(c, ch.ID, ItemDraft{
		Kind: course.KindVideo, Title: "intro", Description: "d",
		Video: &VideoDraft{Provider: "YOUTUBE", RawURL: "https://youtu.be/dQw4w9WgXcQ"},
	})
	require.NoError(t, err)

	updated, err := UpdateItem(c, ch.ID, item.ID, ItemPatch{
		Title: "welcome",
		Video: &VideoDraft{Provider: "YOUTUBE", RawURL: "https://www.youtube.com/watch?v=aqz-KE-bpKQ"},
	})
	require.NoError(t, err)
	assert.Equal(t, "welcome", updated.Title)
	assert.Equal(t, "d", updated.Description)

	payload, err := updated.Video()
	require.NoError(t, err)
	assert.Equal(t, "https://www.youtube.com/embed/aqz-KE-bpKQ", payload.CanonicalEmbedURL)
}

func TestRemoveItemReindexes(t *testing.T) {
	c := newVideoCourse()
	ch := AddChapter(c, "Basics", "d")

	var ids []string
	for _, title := range []string{"one", "two", "three"} {
		item, err := AddItem(c, ch.ID, ItemDraft{
			Kind: course.KindVideo, Title: title, Description: "d",
			Video: &VideoDraft{Provider: "YOUTUBE", RawURL: "https://youtu.be/dQw4w9WgXcQ"},
		})
		require.NoError(t, err)
		ids = append(ids, item.ID)
	}

	require.NoError(t, RemoveItem(c, ch.ID, ids[1]))

	ch = c.Chapters[0]
	require.Len(t, ch.Items, 2)
	assert.Equal(t, ids[0], ch.Items[0].ID)
	assert.Equal(t, ids[2], ch.Items[1].ID)
	requireDense(t, c)

	assert.ErrorIs(t, RemoveItem(c, ch.ID, "missing"), ErrItemNotFound)
	assert.ErrorIs(t, RemoveItem(c, "missing", ids[0]), ErrChapterNotFound)
}

func TestAddReturnsDetachedCopies(t *testing.T) {
	c := newVideoCourse()

	first := AddChapter(c, "Basics", "d")
	item, err := AddItem(c, first.ID, ItemDraft{
		Kind: course.KindVideo, Title: "intro", Description: "d",
		Video: &VideoDraft{Provider: "YOUTUBE", RawURL: "https://youtu.be/dQw4w9WgXcQ"},
	})
	require.NoError(t, err)

	// grow both slices far enough to force reallocation
	for i := 0; i < 16; i++ {
		AddChapter(c, "filler", "d")
		_, err := AddItem(c, first.ID, ItemDraft{Kind: course.KindPDF, Title: "p", Description: "d", AssetRef: "uploads/documents/p.pdf"})
		require.NoError(t, err)
	}

	assert.Equal(t, "Basics", first.Title)
	assert.Equal(t, 0, first.OrderIndex)
	assert.Equal(t, "intro", item.Title)
	assert.Equal(t, first.ID, c.Chapters[0].ID)
	assert.Equal(t, item.ID, c.Chapters[0].Items[0].ID)

	first.Title = "mutated copy"
	item.Title = "mutated copy"
	assert.Equal(t, "Basics", c.Chapters[0].Title, "the returned copy must not alias the tree")
	assert.Equal(t, "intro", c.Chapters[0].Items[0].Title, "the returned copy must not alias the tree")
}

func TestDensityAfterMixedOperations(t *testing.T) {
	c := newVideoCourse()
	for i := 0; i < 5; i++ {
		AddChapter(c, "ch", "d")
	}
	require.NoError(t, RemoveChapter(c, c.Chapters[0].ID))
	require.NoError(t, RemoveChapter(c, c.Chapters[2].ID))
	AddChapter(c, "tail", "d")

	requireDense(t, c)
	require.Len(t, c.Chapters, 4)
}
