package utils

import (
	"fmt"
	"log"
	"time"

	"github.com/jinzhu/now"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"coursebase/config"
	"coursebase/database"
	courseModels "coursebase/models/course"
)

// logMaintenance logs scheduler events with timestamp
func logMaintenance(message string) {
	log.Printf("[MAINTENANCE %s] %s", time.Now().Format(time.RFC3339), message)
}

// CompactDisplayOrder renumbers the listing order of all non-archived courses
// to a dense 0..n-1 sequence. Archiving leaves gaps behind; this closes them
// so the listing order stays well-formed.
func CompactDisplayOrder() {
	db := database.Database.Db

	var courses []courseModels.Course
	if err := db.Select("id", "display_order").
		Where("status <> ?", courseModels.StatusArchived).
		Order("display_order asc").
		Find(&courses).Error; err != nil {
		logMaintenance("Error fetching courses for compaction: " + err.Error())
		return
	}

	changed := 0
	for i, c := range courses {
		if c.DisplayOrder == i {
			continue
		}
		if err := db.Model(&courseModels.Course{}).Where("id = ?", c.ID).
			Update("display_order", i).Error; err != nil {
			logMaintenance("Error compacting display order: " + err.Error())
			return
		}
		changed++
	}

	if changed > 0 {
		logMaintenance(fmt.Sprintf("Compacted display order for %d courses", changed))
	}
}

// PurgeArchivedCourses deletes courses that have been archived longer than
// the retention window, together with their chapters and items.
func PurgeArchivedCourses() {
	db := database.Database.Db
	cutoff := now.BeginningOfDay().AddDate(0, 0, -config.AppConfig.ArchiveRetentionDays)

	var stale []courseModels.Course
	if err := db.Select("id").
		Where("status = ? AND updated_at < ?", courseModels.StatusArchived, cutoff).
		Find(&stale).Error; err != nil {
		logMaintenance("Error fetching archived courses: " + err.Error())
		return
	}
	if len(stale) == 0 {
		return
	}

	ids := make([]string, len(stale))
	for i, c := range stale {
		ids[i] = c.ID
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("chapter_id IN (?)",
			tx.Model(&courseModels.Chapter{}).Select("id").Where("course_id IN ?", ids),
		).Delete(&courseModels.ContentItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("course_id IN ?", ids).Delete(&courseModels.Chapter{}).Error; err != nil {
			return err
		}
		return tx.Where("id IN ?", ids).Delete(&courseModels.Course{}).Error
	})
	if err != nil {
		logMaintenance("Error purging archived courses: " + err.Error())
		return
	}

	logMaintenance(fmt.Sprintf("Purged %d archived courses older than %d days", len(ids), config.AppConfig.ArchiveRetentionDays))
}

// StartMaintenanceScheduler registers the nightly jobs and starts the cron
// runner. The returned cron can be stopped on shutdown.
func StartMaintenanceScheduler() *cron.Cron {
	c := cron.New()

	if _, err := c.AddFunc("0 3 * * *", CompactDisplayOrder); err != nil {
		log.Fatalf("Failed to schedule display order compaction: %v", err)
	}
	if _, err := c.AddFunc("30 3 * * *", PurgeArchivedCourses); err != nil {
		log.Fatalf("Failed to schedule archive purge: %v", err)
	}

	c.Start()
	logMaintenance("Maintenance scheduler started")
	return c
}
