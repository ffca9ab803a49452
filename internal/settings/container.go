package settings

import "gorm.io/gorm"

type SettingsContainer struct {
	Handler *Handler
	Service SettingsService
}

func NewSettingsContainer(db *gorm.DB) *SettingsContainer {
	service := NewService(NewRepository(db))
	return &SettingsContainer{
		Handler: NewHandler(service),
		Service: service,
	}
}
