package courseValidator

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"coursebase/middleware"
)

// ChapterRequest is the validated payload for chapter create/update.
type ChapterRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// CreateChapter validates chapter creation requests
func CreateChapter() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID := strings.TrimSpace(c.Params("id"))
		if courseID == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course ID is required!", nil)
		}

		reqData := new(ChapterRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.Title = strings.TrimSpace(reqData.Title)
		reqData.Description = strings.TrimSpace(reqData.Description)

		if reqData.Title == "" {
			errors["title"] = "Title is required!"
		} else if len(reqData.Title) < 3 {
			errors["title"] = "Title must be at least 3 characters long!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("courseID", courseID)
		c.Locals("validatedChapter", reqData)
		return c.Next()
	}
}

// UpdateChapter validates chapter update requests
func UpdateChapter() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID := strings.TrimSpace(c.Params("course_id"))
		chapterID := strings.TrimSpace(c.Params("chapter_id"))
		if courseID == "" || chapterID == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course and chapter IDs are required!", nil)
		}

		reqData := new(ChapterRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Title = strings.TrimSpace(reqData.Title)
		reqData.Description = strings.TrimSpace(reqData.Description)

		if reqData.Title != "" && len(reqData.Title) < 3 {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"title": "Title must be at least 3 characters long!",
			})
		}

		c.Locals("courseID", courseID)
		c.Locals("chapterID", chapterID)
		c.Locals("validatedChapterUpdate", reqData)
		return c.Next()
	}
}

// ChapterParam validates the course/chapter id path parameters
func ChapterParam() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID := strings.TrimSpace(c.Params("course_id"))
		chapterID := strings.TrimSpace(c.Params("chapter_id"))
		if courseID == "" || chapterID == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course and chapter IDs are required!", nil)
		}
		c.Locals("courseID", courseID)
		c.Locals("chapterID", chapterID)
		return c.Next()
	}
}
