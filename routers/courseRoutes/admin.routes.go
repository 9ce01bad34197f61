package courseRoutes

import (
	controllers "coursebase/controllers/course"
	"coursebase/middleware"
	validators "coursebase/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupAdminCourseRoutes sets up all admin authoring routes
func SetupAdminCourseRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin/course", middleware.JWTMiddleware, middleware.RequireAdmin)

	// Course CRUD
	adminGroup.Post("/create", validators.CreateCourse(), controllers.AdminCreateCourse)
	adminGroup.Get("/list", validators.CourseList(), controllers.AdminListCourses)
	adminGroup.Post("/reorder", validators.Reorder(), controllers.ReorderCourses)
	adminGroup.Put("/:id", validators.UpdateCourse(), controllers.AdminUpdateCourse)
	adminGroup.Delete("/:id", validators.CourseIDParam(), controllers.AdminArchiveCourse)
	adminGroup.Get("/:id", validators.CourseIDParam(), controllers.AdminGetCourse)
	adminGroup.Get("/:id/validate", validators.CourseIDParam(), controllers.AdminValidateCourse)

	// Chapter management
	adminGroup.Post("/:id/chapter", validators.CreateChapter(), controllers.AdminCreateChapter)
	adminGroup.Post("/:id/chapters/reorder", validators.CourseIDParam(), validators.Reorder(), controllers.ReorderChapters)
	adminGroup.Put("/:course_id/chapter/:chapter_id", validators.UpdateChapter(), controllers.AdminUpdateChapter)
	adminGroup.Delete("/:course_id/chapter/:chapter_id", validators.ChapterParam(), controllers.AdminDeleteChapter)

	// Content management
	adminGroup.Post("/:course_id/chapter/:chapter_id/content", validators.CreateContent(), controllers.AdminCreateContent)
	adminGroup.Post("/:course_id/chapter/:chapter_id/content/reorder", validators.ChapterParam(), validators.Reorder(), controllers.ReorderItems)
	adminGroup.Put("/:course_id/chapter/:chapter_id/content/:item_id", validators.UpdateContent(), controllers.AdminUpdateContent)
	adminGroup.Delete("/:course_id/chapter/:chapter_id/content/:item_id", validators.ContentParam(), controllers.AdminDeleteContent)

	// Asset uploads
	assetGroup := app.Group("/admin/assets", middleware.JWTMiddleware, middleware.RequireAdmin)
	assetGroup.Post("/upload", validators.UploadAsset(), controllers.AdminUploadAsset)
}
