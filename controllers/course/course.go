package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"coursebase/middleware"
	courseModels "coursebase/models/course"
	"coursebase/store"
)

// GetAllCourses lists published courses for the gallery, ordered by their
// display position.
func GetAllCourses(c *fiber.Ctx) error {
	filter := store.CourseFilter{
		Category:    c.Locals("filterCategory").(string),
		ContentType: c.Locals("filterContentType").(string),
		Status:      courseModels.StatusPublished,
	}

	courses, err := courseStore.FetchCourseList(c.Context(), filter)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
		"courses": courses,
	})
}

// GetCourseDetails returns one published course with its full content tree.
func GetCourseDetails(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(string)

	found, err := courseStore.FetchCourse(c.Context(), courseID)
	if err != nil {
		if errors.Is(err, store.ErrCourseNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch course!", nil)
	}

	if found.Status != courseModels.StatusPublished {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course fetched successfully!", found)
}
