package handler

import (
	"photo-bridge/internal/broadcast"
	"photo-bridge/internal/config"
	"photo-bridge/internal/service"
)

type Handlers struct {
	Event   *EventHandler
	Photo   *PhotoHandler
	Bridge  *BridgeHandler
	Live    *LiveHandler
	Gallery *GalleryHandler
}

func NewHandlers(services *service.Services, broadcaster broadcast.Broadcaster, cfg *config.Config) *Handlers {
	return &Handlers{
		Event:   NewEventHandler(services.Event),
		Photo:   NewPhotoHandler(services.Photo, cfg.MaxManualUploadBytes),
		Bridge:  NewBridgeHandler(services.Bridge),
		Live:    NewLiveHandler(broadcaster),
		Gallery: NewGalleryHandler(services.Gallery),
	}
}
