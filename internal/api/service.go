package api

import (
	"ad-platforms/internal/database"
	"ad-platforms/internal/platform"
)

// PlatformService defines the platform store operations used by the API handlers.
type PlatformService interface {
	Load(platforms []platform.Platform)
	Search(location string) []string
	Platforms() []platform.Platform
}

// UploadHistory records processed uploads and looks them up.
type UploadHistory interface {
	SaveUpload(u *database.Upload) error
	Recent(limit int) ([]database.Upload, error)
	FindByID(id uint) (*database.Upload, error)
}
