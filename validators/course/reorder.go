package courseValidator

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"coursebase/middleware"
)

// ReorderRequest is the validated payload for a drag-and-drop reorder: the
// moved sibling and the index it was dropped at.
type ReorderRequest struct {
	MovedID     string `json:"moved_id"`
	TargetIndex int    `json:"target_index"`
}

// Reorder validates reorder requests
func Reorder() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(ReorderRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.MovedID = strings.TrimSpace(reqData.MovedID)
		if reqData.MovedID == "" {
			errors["moved_id"] = "Moved ID is required!"
		}
		if reqData.TargetIndex < 0 {
			errors["target_index"] = "Target index must not be negative!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedReorder", reqData)
		return c.Next()
	}
}
