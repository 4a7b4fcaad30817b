package service

import (
	"photo-bridge/internal/broadcast"
	"photo-bridge/internal/config"
	"photo-bridge/internal/logging"
	"photo-bridge/internal/processor"
	"photo-bridge/internal/repository"
	"photo-bridge/internal/service/bridge"
	"photo-bridge/internal/service/event"
	"photo-bridge/internal/service/gallery"
	"photo-bridge/internal/service/photo"
	"photo-bridge/internal/storage"
	"photo-bridge/internal/watcher"
)

type Services struct {
	Event   event.Service
	Photo   photo.Service
	Bridge  *bridge.Manager
	Gallery gallery.Service
}

func NewServices(repos *repository.Repositories, store storage.ObjectStore, status broadcast.Publisher, cfg *config.Config, log logging.Logger) *Services {
	pipeline := bridge.NewPipeline(
		processor.New(cfg.CompressMaxDimension, cfg.CompressJPEGQuality),
		store,
		storage.NewKeyGenerator(cfg.StoragePrefix),
		repos.Photo,
		status,
		log,
	)

	watch := bridge.FSWatch(watcher.Options{
		StabilityWindow: cfg.StabilityWindow,
		PollInterval:    cfg.StabilityPollInterval,
	})

	return &Services{
		Event:   event.NewService(repos.Event),
		Photo:   photo.NewService(repos.Photo, repos.Event, store, pipeline, log),
		Bridge:  bridge.NewManager(watch, repos.Event, pipeline, status, log, cfg.MaxConcurrentUploads),
		Gallery: gallery.NewService(repos.Event, repos.Photo, cfg.JWTSecret, cfg.GalleryTokenExpiry),
	}
}
