package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"coursebase/coursetree"
	"coursebase/middleware"
	"coursebase/store"
	validators "coursebase/validators/course"
)

// AdminCreateChapter appends a chapter to a course's tree and saves the tree.
func AdminCreateChapter(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(string)

	reqData, ok := c.Locals("validatedChapter").(*validators.ChapterRequest)
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

	chapter := coursetree.AddChapter(existing, reqData.Title, reqData.Description)

	if _, err := courseStore.PersistCourse(c.Context(), existing); err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create chapter!", nil)
	}
	orderEngine.Invalidate(store.ScopeCourse(courseID))

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Chapter created successfully!", chapter)
}

// AdminUpdateChapter patches a chapter's title/description.
func AdminUpdateChapter(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(string)
	chapterID := c.Locals("chapterID").(string)

	reqData, ok := c.Locals("validatedChapterUpdate").(*validators.ChapterRequest)
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

	chapter, err := coursetree.UpdateChapter(existing, chapterID, coursetree.ChapterPatch{
		Title:       reqData.Title,
		Description: reqData.Description,
	})
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Chapter not found!", nil)
	}
	updated := *chapter

	if _, err := courseStore.PersistCourse(c.Context(), existing); err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update chapter!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Chapter updated successfully!", updated)
}

// AdminDeleteChapter removes a chapter and all of its items, keeping the
// remaining chapter order dense.
func AdminDeleteChapter(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(string)
	chapterID := c.Locals("chapterID").(string)

	existing, err := courseStore.FetchCourse(c.Context(), courseID)
	if err != nil {
		if errors.Is(err, store.ErrCourseNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch course!", nil)
	}

	if err := coursetree.RemoveChapter(existing, chapterID); err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Chapter not found!", nil)
	}

	if _, err := courseStore.PersistCourse(c.Context(), existing); err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete chapter!", nil)
	}
	orderEngine.Invalidate(store.ScopeCourse(courseID))
	orderEngine.Invalidate(store.ScopeChapter(chapterID))

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Chapter deleted successfully!", nil)
}
