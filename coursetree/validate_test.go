package coursetree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coursebase/models/course"
)

func TestValidateItemPerKind(t *testing.T) {
	c := newVideoCourse()
	ch := AddChapter(c, "Basics", "d")

	video, err := AddItem(c, ch.ID, ItemDraft{
		Kind: course.KindVideo, Title: "intro", Description: "watch this",
		Video: &VideoDraft{Provider: "VIMEO", RawURL: "https://vimeo.com/824804225"},
	})
	require.NoError(t, err)
	assert.True(t, ValidateItem(&video).OK)

	upload, err := AddItem(c, ch.ID, ItemDraft{
		Kind: course.KindVideo, Title: "lesson", Description: "d",
		Video: &VideoDraft{Provider: "UPLOAD", UploadedAssetRef: "uploads/videos/a.mp4"},
	})
	require.NoError(t, err)
	assert.True(t, ValidateItem(&upload).OK)

	pdf, err := AddItem(c, ch.ID, ItemDraft{Kind: course.KindPDF, Title: "slides", Description: "d"})
	require.NoError(t, err)
	v := ValidateItem(&pdf)
	assert.False(t, v.OK)
	assert.Contains(t, v.MissingFields, "asset_ref")
}

func TestValidateItemMissingFields(t *testing.T) {
	c := &course.Course{ID: "c1", Title: "t", ContentType: course.ContentTypeText}
	ch := AddChapter(c, "Basics", "d")

	item, err := AddItem(c, ch.ID, ItemDraft{Kind: course.KindText})
	require.NoError(t, err)

	v := ValidateItem(&item)
	assert.False(t, v.OK)
	assert.ElementsMatch(t, []string{"title", "description", "rich_content"}, v.MissingFields)
}

func TestValidateItemUnresolvedVideoLink(t *testing.T) {
	c := newVideoCourse()
	ch := AddChapter(c, "Basics", "d")

	item, err := AddItem(c, ch.ID, ItemDraft{
		Kind: course.KindVideo, Title: "broken", Description: "d",
		Video: &VideoDraft{Provider: "LOOM", RawURL: "https://loom.com/share/nope"},
	})
	require.NoError(t, err)

	v := ValidateItem(&item)
	assert.False(t, v.OK)
	assert.Equal(t, []string{"canonical_embed_url"}, v.MissingFields)
}

func TestValidateCourseRequiresChapters(t *testing.T) {
	c := newVideoCourse()

	v := ValidateCourse(c)
	assert.False(t, v.Publishable)
	assert.Contains(t, v.Reasons, "course must have at least one chapter")

	// a draft with zero chapters is still storable; only publishing is blocked
	assert.Equal(t, course.StatusDraft, c.Status)
}

func TestValidateCourseCollectsItemProblems(t *testing.T) {
	c := newVideoCourse()
	ch := AddChapter(c, "Basics", "d")

	good, err := AddItem(c, ch.ID, ItemDraft{
		Kind: course.KindVideo, Title: "intro", Description: "d",
		Video: &VideoDraft{Provider: "VIMEO", RawURL: "https://vimeo.com/824804225"},
	})
	require.NoError(t, err)
	bad, err := AddItem(c, ch.ID, ItemDraft{
		Kind: course.KindVideo, Title: "", Description: "d",
		Video: &VideoDraft{Provider: "YOUTUBE", RawURL: "nope"},
	})
	require.NoError(t, err)

	v := ValidateCourse(c)
	assert.False(t, v.Publishable)
	require.Len(t, v.Items, 1)
	assert.Equal(t, bad.ID, v.Items[0].ItemID)
	assert.NotEqual(t, good.ID, v.Items[0].ItemID)
	assert.ElementsMatch(t, []string{"title", "canonical_embed_url"}, v.Items[0].MissingFields)
}

func TestValidateCoursePublishableScenario(t *testing.T) {
	c := newVideoCourse()
	ch := AddChapter(c, "Chapter 1", "d")
	_, err := AddItem(c, ch.ID, ItemDraft{
		Kind: course.KindVideo, Title: "lesson", Description: "d",
		Video: &VideoDraft{Provider: "VIMEO", RawURL: "https://vimeo.com/824804225"},
	})
	require.NoError(t, err)

	v := ValidateCourse(c)
	assert.True(t, v.Publishable)
	assert.Empty(t, v.Reasons)
	assert.Empty(t, v.Items)
}
