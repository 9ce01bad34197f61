package controllers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"coursebase/coursetree"
	"coursebase/middleware"
	"coursebase/models"
	courseModels "coursebase/models/course"
	"coursebase/store"
	"coursebase/utils"
	validators "coursebase/validators/course"
)

// AdminCreateCourse creates a new course as DRAFT or, when the tree already
// satisfies the publish check, directly as PUBLISHED.
func AdminCreateCourse(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedCourse").(*validators.CreateCourseRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	newCourse := &courseModels.Course{
		ID:             uuid.NewString(),
		Title:          reqData.Title,
		Description:    reqData.Description,
		Category:       reqData.Category,
		TargetAudience: reqData.TargetAudience,
		ContentType:    reqData.ContentType,
		ThumbnailRef:   reqData.ThumbnailRef,
		Status:         reqData.Status,
		Chapters:       []courseModels.Chapter{},
	}

	// publishing on first save runs the full publish check; drafts bypass it
	if newCourse.Status == courseModels.StatusPublished {
		if v := coursetree.ValidateCourse(newCourse); !v.Publishable {
			return middleware.JsonResponse(c, fiber.StatusUnprocessableEntity, false, "Course is not publishable!", v)
		}
	}

	saved, err := courseStore.PersistCourse(c.Context(), newCourse)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}
	orderEngine.Invalidate(store.ScopeListing)

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created successfully!", saved)
}

// AdminUpdateCourse updates course metadata and status. The content type is
// locked at creation; status moves to PUBLISHED only through the publish
// check. A persist failure leaves nothing lost: the submitted tree is simply
// not stored.
func AdminUpdateCourse(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(string)

	reqData, ok := c.Locals("validatedCourseUpdate").(*validators.UpdateCourseRequest)
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

	if reqData.Title != "" {
		existing.Title = reqData.Title
	}
	if reqData.Description != "" {
		existing.Description = reqData.Description
	}
	if reqData.Category != "" {
		existing.Category = reqData.Category
	}
	if reqData.TargetAudience != "" {
		existing.TargetAudience = reqData.TargetAudience
	}
	if reqData.ThumbnailRef != "" {
		existing.ThumbnailRef = reqData.ThumbnailRef
	}

	becamePublished := false
	statusChanged := false
	if reqData.Status != "" && reqData.Status != existing.Status {
		statusChanged = true
		if reqData.Status == courseModels.StatusPublished {
			if v := coursetree.ValidateCourse(existing); !v.Publishable {
				return middleware.JsonResponse(c, fiber.StatusUnprocessableEntity, false, "Course is not publishable!", v)
			}
			becamePublished = true
		}
		existing.Status = reqData.Status
	}

	saved, err := courseStore.PersistCourse(c.Context(), existing)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
	}
	if statusChanged {
		// status transitions change which courses the listing scope contains
		orderEngine.Invalidate(store.ScopeListing)
	}

	if becamePublished {
		notifyPublished(c, saved)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course updated successfully!", saved)
}

// AdminArchiveCourse soft deletes a course by marking it ARCHIVED. The course
// disappears from every listing but stays in storage until the retention
// purge.
func AdminArchiveCourse(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(string)

	existing, err := courseStore.FetchCourse(c.Context(), courseID)
	if err != nil {
		if errors.Is(err, store.ErrCourseNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch course!", nil)
	}

	existing.Status = courseModels.StatusArchived
	if _, err := courseStore.PersistCourse(c.Context(), existing); err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to archive course!", nil)
	}
	orderEngine.Invalidate(store.ScopeListing)
	orderEngine.Invalidate(store.ScopeCourse(courseID))

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course archived successfully!", nil)
}

// AdminGetCourse returns a course with its full chapter/item tree.
func AdminGetCourse(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(string)

	found, err := courseStore.FetchCourse(c.Context(), courseID)
	if err != nil {
		if errors.Is(err, store.ErrCourseNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course fetched successfully!", found)
}

// AdminListCourses lists courses for the authoring dashboard, drafts and
// archived included when asked.
func AdminListCourses(c *fiber.Ctx) error {
	filter := store.CourseFilter{
		Category:        c.Locals("filterCategory").(string),
		ContentType:     c.Locals("filterContentType").(string),
		Status:          c.Locals("filterStatus").(string),
		IncludeArchived: c.Query("include_archived") == "true",
	}

	courses, err := courseStore.FetchCourseList(c.Context(), filter)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
		"courses": courses,
	})
}

// AdminValidateCourse runs the publish check without changing anything.
func AdminValidateCourse(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(string)

	found, err := courseStore.FetchCourse(c.Context(), courseID)
	if err != nil {
		if errors.Is(err, store.ErrCourseNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course validated!", coursetree.ValidateCourse(found))
}

// notifyPublished sends the publish notification to the acting admin.
// Best-effort: failures are logged, never surfaced to the request.
func notifyPublished(c *fiber.Ctx, published *courseModels.Course) {
	user, ok := c.Locals("user").(models.User)
	if !ok {
		return
	}
	go func(email, name, title string) {
		if err := utils.SendCoursePublishedEmail(email, name, title); err != nil {
			log.Printf("Failed to send publish notification for %q: %v", title, err)
		}
	}(user.Email, user.Name, published.Title)
}
