package reflection

import "gorm.io/gorm"

type ReflectionContainer struct {
	Handler *Handler
}

func NewReflectionContainer(db *gorm.DB) *ReflectionContainer {
	repo := NewRepository(db)
	service := NewService(repo)
	return &ReflectionContainer{Handler: NewHandler(service)}
}
