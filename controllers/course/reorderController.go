package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"coursebase/middleware"
	"coursebase/reorder"
	"coursebase/store"
	validators "coursebase/validators/course"
)

// applyReorder runs one drag gesture through the reconciler and renders the
// outcome. A settled reorder confirms the optimistic order; a rolled-back one
// hands the caller the server's authoritative order to re-render.
func applyReorder(c *fiber.Ctx, scopeID string) error {
	reqData, ok := c.Locals("validatedReorder").(*validators.ReorderRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	outcome, err := orderEngine.Reorder(c.Context(), scopeID, reqData.MovedID, reqData.TargetIndex)
	if err != nil {
		if errors.Is(err, reorder.ErrSiblingNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Moved item not found in this scope!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to reorder!", nil)
	}

	if outcome.State == reorder.StateRolledBack {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Reorder could not be saved; order restored from server!", outcome)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Reorder saved successfully!", outcome)
}

// ReorderCourses moves a course within the listing.
func ReorderCourses(c *fiber.Ctx) error {
	return applyReorder(c, store.ScopeListing)
}

// ReorderChapters moves a chapter within its course.
func ReorderChapters(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(string)
	return applyReorder(c, store.ScopeCourse(courseID))
}

// ReorderItems moves an item within its chapter.
func ReorderItems(c *fiber.Ctx) error {
	chapterID := c.Locals("chapterID").(string)
	return applyReorder(c, store.ScopeChapter(chapterID))
}

// GetListingOrder returns the current listing order, hydrating the
// reconciler's view from the store on first use.
func GetListingOrder(c *fiber.Ctx) error {
	siblings, err := orderEngine.Load(c.Context(), store.ScopeListing)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch listing order!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Listing order fetched successfully!", fiber.Map{
		"siblings": siblings,
	})
}
