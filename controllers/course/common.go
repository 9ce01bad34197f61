package controllers

import (
	"coursebase/config"
	"coursebase/database"
	"coursebase/reorder"
	"coursebase/store"
	"coursebase/videosource"
)

// Shared collaborators for the course controllers, wired once at startup.
var (
	courseStore store.CourseStore
	orderEngine *reorder.Reconciler
	assetStore  store.AssetStore
	videoMeta   *videosource.MetadataClient
)

// Setup wires the controllers to the database-backed store and the reorder
// engine. Call after config and database are initialized.
func Setup() {
	gs := store.NewGormStore(database.Database.Db)
	courseStore = gs
	orderEngine = reorder.NewReconciler(gs)
	assetStore = store.NewLocalAssetStore(config.AppConfig.UploadDir)
	if config.AppConfig.OEmbedEnabled {
		videoMeta = videosource.NewMetadataClient()
	}
}
