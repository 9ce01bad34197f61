package courseRoutes

import (
	controllers "coursebase/controllers/course"
	validators "coursebase/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up the public listing routes
func SetupCourseRoutes(app *fiber.App) {
	courseGroup := app.Group("/course")

	// Course gallery (published courses only, in display order)
	courseGroup.Get("/list", validators.CourseList(), controllers.GetAllCourses)
	courseGroup.Get("/order", controllers.GetListingOrder)
	courseGroup.Get("/:id", validators.CourseIDParam(), controllers.GetCourseDetails)
}
