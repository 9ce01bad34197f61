package courseValidator

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"coursebase/middleware"
	courseModels "coursebase/models/course"
	"coursebase/store"
	"coursebase/videosource"
)

// VideoRequest is the video payload of a content item request.
type VideoRequest struct {
	Provider         string `json:"provider"`
	RawURL           string `json:"raw_url"`
	UploadedAssetRef string `json:"uploaded_asset_ref"`
}

// CreateContentRequest is the validated payload for item creation.
type CreateContentRequest struct {
	Kind        string        `json:"kind"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Video       *VideoRequest `json:"video"`
	RichContent string        `json:"rich_content"`
	AssetRef    string        `json:"asset_ref"`
}

// UpdateContentRequest is the validated payload for item updates.
type UpdateContentRequest struct {
	Kind        string        `json:"kind"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Video       *VideoRequest `json:"video"`
	RichContent *string       `json:"rich_content"`
	AssetRef    string        `json:"asset_ref"`
}

// CreateContent validates item creation requests
func CreateContent() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID := strings.TrimSpace(c.Params("course_id"))
		chapterID := strings.TrimSpace(c.Params("chapter_id"))
		if courseID == "" || chapterID == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course and chapter IDs are required!", nil)
		}

		reqData := new(CreateContentRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.Kind = strings.TrimSpace(reqData.Kind)
		reqData.Title = strings.TrimSpace(reqData.Title)

		if !courseModels.ValidKind(reqData.Kind) {
			errors["kind"] = "Kind must be VIDEO, TEXT, or PDF!"
		}

		if reqData.Kind == courseModels.KindVideo {
			if reqData.Video == nil {
				errors["video"] = "Video payload is required for VIDEO items!"
			} else if !videosource.ValidProvider(reqData.Video.Provider) {
				errors["video.provider"] = "Provider must be UPLOAD, YOUTUBE, VIMEO, or LOOM!"
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("courseID", courseID)
		c.Locals("chapterID", chapterID)
		c.Locals("validatedContent", reqData)
		return c.Next()
	}
}

// UpdateContent validates item update requests
func UpdateContent() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID := strings.TrimSpace(c.Params("course_id"))
		chapterID := strings.TrimSpace(c.Params("chapter_id"))
		itemID := strings.TrimSpace(c.Params("item_id"))
		if courseID == "" || chapterID == "" || itemID == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course, chapter, and item IDs are required!", nil)
		}

		reqData := new(UpdateContentRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.Kind = strings.TrimSpace(reqData.Kind)
		if reqData.Kind != "" && !courseModels.ValidKind(reqData.Kind) {
			errors["kind"] = "Kind must be VIDEO, TEXT, or PDF!"
		}
		if reqData.Video != nil && !videosource.ValidProvider(reqData.Video.Provider) {
			errors["video.provider"] = "Provider must be UPLOAD, YOUTUBE, VIMEO, or LOOM!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("courseID", courseID)
		c.Locals("chapterID", chapterID)
		c.Locals("itemID", itemID)
		c.Locals("validatedContentUpdate", reqData)
		return c.Next()
	}
}

// ContentParam validates the course/chapter/item id path parameters
func ContentParam() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID := strings.TrimSpace(c.Params("course_id"))
		chapterID := strings.TrimSpace(c.Params("chapter_id"))
		itemID := strings.TrimSpace(c.Params("item_id"))
		if courseID == "" || chapterID == "" || itemID == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course, chapter, and item IDs are required!", nil)
		}
		c.Locals("courseID", courseID)
		c.Locals("chapterID", chapterID)
		c.Locals("itemID", itemID)
		return c.Next()
	}
}

// UploadAsset validates asset upload requests
func UploadAsset() fiber.Handler {
	return func(c *fiber.Ctx) error {
		kind := strings.ToUpper(strings.TrimSpace(c.Query("kind")))
		if kind != store.AssetImage && kind != store.AssetVideo && kind != store.AssetPDF {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Asset kind must be IMAGE, VIDEO, or PDF!", nil)
		}
		c.Locals("assetKind", kind)
		return c.Next()
	}
}
