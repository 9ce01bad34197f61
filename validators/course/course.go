package courseValidator

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"coursebase/middleware"
	courseModels "coursebase/models/course"
)

// CreateCourseRequest is the validated payload for course creation.
type CreateCourseRequest struct {
	Title          string `json:"title"`
	Description    string `json:"description"`
	Category       string `json:"category"`
	TargetAudience string `json:"target_audience"`
	ContentType    string `json:"content_type"`
	ThumbnailRef   string `json:"thumbnail_ref"`
	Status         string `json:"status"`
}

// UpdateCourseRequest is the validated payload for course metadata updates.
type UpdateCourseRequest struct {
	Title          string `json:"title"`
	Description    string `json:"description"`
	Category       string `json:"category"`
	TargetAudience string `json:"target_audience"`
	ThumbnailRef   string `json:"thumbnail_ref"`
	Status         string `json:"status"`
}

// CreateCourse validates course creation requests
func CreateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreateCourseRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.Title = strings.TrimSpace(reqData.Title)
		reqData.Description = strings.TrimSpace(reqData.Description)
		reqData.Category = strings.TrimSpace(reqData.Category)
		reqData.Status = strings.TrimSpace(reqData.Status)

		if reqData.Title == "" {
			errors["title"] = "Title is required!"
		} else if len(reqData.Title) < 3 {
			errors["title"] = "Title must be at least 3 characters long!"
		}

		if reqData.Description == "" {
			errors["description"] = "Description is required!"
		}

		if !courseModels.ValidContentType(reqData.ContentType) {
			errors["content_type"] = "Content type must be VIDEO or TEXT!"
		}

		if reqData.Status == "" {
			reqData.Status = courseModels.StatusDraft
		} else if reqData.Status != courseModels.StatusDraft && reqData.Status != courseModels.StatusPublished {
			errors["status"] = "Status must be DRAFT or PUBLISHED on creation!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}

// UpdateCourse validates course update requests
func UpdateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID := strings.TrimSpace(c.Params("id"))
		if courseID == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course ID is required!", nil)
		}

		reqData := new(UpdateCourseRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.Title = strings.TrimSpace(reqData.Title)
		reqData.Status = strings.TrimSpace(reqData.Status)

		if reqData.Title != "" && len(reqData.Title) < 3 {
			errors["title"] = "Title must be at least 3 characters long!"
		}

		if reqData.Status != "" && !courseModels.ValidStatus(reqData.Status) {
			errors["status"] = "Status must be DRAFT, PUBLISHED, or ARCHIVED!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("courseID", courseID)
		c.Locals("validatedCourseUpdate", reqData)
		return c.Next()
	}
}

// CourseIDParam validates the course id path parameter
func CourseIDParam() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID := strings.TrimSpace(c.Params("id"))
		if courseID == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course ID is required!", nil)
		}
		c.Locals("courseID", courseID)
		return c.Next()
	}
}

// CourseList validates listing query parameters
func CourseList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		contentType := strings.TrimSpace(c.Query("content_type"))
		if contentType != "" && !courseModels.ValidContentType(contentType) {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid content_type filter!", nil)
		}

		status := strings.TrimSpace(c.Query("status"))
		if status != "" && !courseModels.ValidStatus(status) {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid status filter!", nil)
		}

		c.Locals("filterCategory", strings.TrimSpace(c.Query("category")))
		c.Locals("filterContentType", contentType)
		c.Locals("filterStatus", status)
		return c.Next()
	}
}
