package controllers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"coursebase/coursetree"
	"coursebase/middleware"
	"coursebase/store"
	"coursebase/videosource"
	validators "coursebase/validators/course"
)

// AdminCreateContent appends a content item to a chapter and saves the tree.
// The item kind must be compatible with the course's content type.
func AdminCreateContent(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(string)
	chapterID := c.Locals("chapterID").(string)

	reqData, ok := c.Locals("validatedContent").(*validators.CreateContentRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	existing, err := courseStore.FetchCourse(c.Context(), courseID)
	if err != nil {
		if errors.Is(err, store.ErrCourseNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch course!", nil)
	}

	draft := coursetree.ItemDraft{
		Kind:        reqData.Kind,
		Title:       reqData.Title,
		Description: reqData.Description,
		RichContent: reqData.RichContent,
		AssetRef:    reqData.AssetRef,
	}
	if reqData.Video != nil {
		draft.Video = &coursetree.VideoDraft{
			Provider:         reqData.Video.Provider,
			RawURL:           reqData.Video.RawURL,
			UploadedAssetRef: reqData.Video.UploadedAssetRef,
			DurationLabel:    lookupDuration(c, reqData.Video),
		}
	}

	item, err := coursetree.AddItem(existing, chapterID, draft)
	if err != nil {
		var kindErr *coursetree.IncompatibleKindError
		switch {
		case errors.As(err, &kindErr):
			return middleware.JsonResponse(c, fiber.StatusUnprocessableEntity, false, kindErr.Error(), nil)
		case errors.Is(err, coursetree.ErrChapterNotFound):
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Chapter not found!", nil)
		default:
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create content!", nil)
		}
	}
	if _, err := courseStore.PersistCourse(c.Context(), existing); err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create content!", nil)
	}
	orderEngine.Invalidate(store.ScopeChapter(chapterID))

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Content created successfully!", fiber.Map{
		"item":       item,
		"validation": coursetree.ValidateItem(&item),
	})
}

// AdminUpdateContent patches an item. Kind changes are rejected outright.
func AdminUpdateContent(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(string)
	chapterID := c.Locals("chapterID").(string)
	itemID := c.Locals("itemID").(string)

	reqData, ok := c.Locals("validatedContentUpdate").(*validators.UpdateContentRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	existing, err := courseStore.FetchCourse(c.Context(), courseID)
	if err != nil {
		if errors.Is(err, store.ErrCourseNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch course!", nil)
	}

	patch := coursetree.ItemPatch{
		Kind:        reqData.Kind,
		Title:       reqData.Title,
		Description: reqData.Description,
		RichContent: reqData.RichContent,
		AssetRef:    reqData.AssetRef,
	}
	if reqData.Video != nil {
		patch.Video = &coursetree.VideoDraft{
			Provider:         reqData.Video.Provider,
			RawURL:           reqData.Video.RawURL,
			UploadedAssetRef: reqData.Video.UploadedAssetRef,
			DurationLabel:    lookupDuration(c, reqData.Video),
		}
	}

	item, err := coursetree.UpdateItem(existing, chapterID, itemID, patch)
	if err != nil {
		switch {
		case errors.Is(err, coursetree.ErrKindImmutable):
			return middleware.JsonResponse(c, fiber.StatusUnprocessableEntity, false, "Content kind cannot be changed after creation!", nil)
		case errors.Is(err, coursetree.ErrChapterNotFound):
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Chapter not found!", nil)
		case errors.Is(err, coursetree.ErrItemNotFound):
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Content not found!", nil)
		default:
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update content!", nil)
		}
	}
	updated := *item

	if _, err := courseStore.PersistCourse(c.Context(), existing); err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update content!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Content updated successfully!", fiber.Map{
		"item":       updated,
		"validation": coursetree.ValidateItem(&updated),
	})
}

// AdminDeleteContent removes an item, keeping the chapter's item order dense.
func AdminDeleteContent(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(string)
	chapterID := c.Locals("chapterID").(string)
	itemID := c.Locals("itemID").(string)

	existing, err := courseStore.FetchCourse(c.Context(), courseID)
	if err != nil {
		if errors.Is(err, store.ErrCourseNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch course!", nil)
	}

	if err := coursetree.RemoveItem(existing, chapterID, itemID); err != nil {
		if errors.Is(err, coursetree.ErrChapterNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Chapter not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Content not found!", nil)
	}

	if _, err := courseStore.PersistCourse(c.Context(), existing); err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete content!", nil)
	}
	orderEngine.Invalidate(store.ScopeChapter(chapterID))

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Content deleted successfully!", nil)
}

// AdminUploadAsset stores an uploaded thumbnail, video, or document and
// returns its asset reference.
func AdminUploadAsset(c *fiber.Ctx) error {
	kind := c.Locals("assetKind").(string)

	file, err := c.FormFile("file")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "File is required!", nil)
	}

	ref, err := assetStore.UploadAsset(kind, file)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnprocessableEntity, false, err.Error(), nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Asset uploaded successfully!", fiber.Map{
		"asset_ref": ref,
	})
}

// lookupDuration asks the provider's oEmbed endpoint for the video length.
// Best-effort enrichment: uploads and lookup failures leave the label empty.
func lookupDuration(c *fiber.Ctx, video *validators.VideoRequest) string {
	if videoMeta == nil || video.Provider == videosource.ProviderUpload {
		return ""
	}
	ref, err := videosource.Resolve(video.RawURL, video.Provider)
	if err != nil {
		return ""
	}
	meta, err := videoMeta.Fetch(c.Context(), ref)
	if err != nil {
		log.Printf("oEmbed lookup failed for %s: %v", video.Provider, err)
		return ""
	}
	return meta.DurationLabel
}
