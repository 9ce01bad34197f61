package main

import (
	"context"
	"log"

	"github.com/google/uuid"

	"coursebase/config"
	"coursebase/coursetree"
	"coursebase/database"
	"coursebase/models"
	"coursebase/models/course"
	"coursebase/store"
)

// Seeds an admin account and a small sample catalog. Run once against an
// empty database:
//
//	go run scripts/seedCourses.go
func main() {
	config.LoadConfig()
	database.ConnectDb()

	db := database.Database.Db
	courseStore := store.NewGormStore(db)
	ctx := context.Background()

	admin := models.User{
		ID:    uuid.NewString(),
		Name:  "Seed Admin",
		Email: "admin@coursebase.local",
		Role:  "ADMIN",
	}
	if err := db.Where("email = ?", admin.Email).FirstOrCreate(&admin).Error; err != nil {
		log.Fatalf("Failed to seed admin user: %v", err)
	}
	log.Printf("Admin user ready: %s (%s)", admin.Email, admin.ID)

	videoCourse := &course.Course{
		ID:             uuid.NewString(),
		Title:          "Go for Backend Engineers",
		Description:    "A hands-on video course covering HTTP services, persistence and deployment.",
		Category:       "programming",
		TargetAudience: "Backend engineers new to Go",
		ContentType:    course.ContentTypeVideo,
		Status:         course.StatusPublished,
	}

	intro := coursetree.AddChapter(videoCourse, "Getting Started", "Tooling and first steps")
	if _, err := coursetree.AddItem(videoCourse, intro.ID, coursetree.ItemDraft{
		Kind:        course.KindVideo,
		Title:       "Why Go",
		Description: "Where Go fits in a backend stack",
		Video: &coursetree.VideoDraft{
			Provider: "YOUTUBE",
			RawURL:   "https://www.youtube.com/watch?v=446E-r0rXHI",
		},
	}); err != nil {
		log.Fatalf("Failed to seed intro item: %v", err)
	}
	if _, err := coursetree.AddItem(videoCourse, intro.ID, coursetree.ItemDraft{
		Kind:        course.KindPDF,
		Title:       "Setup Checklist",
		Description: "Printable environment checklist",
		AssetRef:    "uploads/documents/setup-checklist.pdf",
	}); err != nil {
		log.Fatalf("Failed to seed checklist item: %v", err)
	}

	services := coursetree.AddChapter(videoCourse, "Building Services", "HTTP handlers and middleware")
	if _, err := coursetree.AddItem(videoCourse, services.ID, coursetree.ItemDraft{
		Kind:        course.KindVideo,
		Title:       "Routing and Handlers",
		Description: "From a blank main to a working API",
		Video: &coursetree.VideoDraft{
			Provider: "VIMEO",
			RawURL:   "https://vimeo.com/824804225",
		},
	}); err != nil {
		log.Fatalf("Failed to seed routing item: %v", err)
	}

	if _, err := courseStore.PersistCourse(ctx, videoCourse); err != nil {
		log.Fatalf("Failed to persist video course: %v", err)
	}
	log.Printf("Seeded course %q (%s)", videoCourse.Title, videoCourse.ID)

	textCourse := &course.Course{
		ID:             uuid.NewString(),
		Title:          "Technical Writing Essentials",
		Description:    "A reading course on clear documentation for engineering teams.",
		Category:       "writing",
		TargetAudience: "Engineers who write docs",
		ContentType:    course.ContentTypeText,
		Status:         course.StatusDraft,
	}

	basics := coursetree.AddChapter(textCourse, "Principles", "What makes documentation useful")
	if _, err := coursetree.AddItem(textCourse, basics.ID, coursetree.ItemDraft{
		Kind:        course.KindText,
		Title:       "Write for the Reader",
		Description: "Audience-first documentation",
		RichContent: "<h2>Write for the Reader</h2><p>Every document answers a question someone actually has.</p>",
	}); err != nil {
		log.Fatalf("Failed to seed text item: %v", err)
	}

	if _, err := courseStore.PersistCourse(ctx, textCourse); err != nil {
		log.Fatalf("Failed to persist text course: %v", err)
	}
	log.Printf("Seeded course %q (%s)", textCourse.Title, textCourse.ID)

	log.Println("Seeding complete")
}
