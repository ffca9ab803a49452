package reflection

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrNotFound = errors.New("record not found")

type ReflectionRepository interface {
	Create(r *Reflection) error
	FindByIDAndUserID(id, userID uuid.UUID) (*Reflection, error)
	ListByUser(userID uuid.UUID, t ReflectionType) ([]*Reflection, error)
	Update(r *Reflection) error
	Delete(id, userID uuid.UUID) error
}

type reflectionRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) ReflectionRepository {
	return &reflectionRepository{db: db}
}

func (r *reflectionRepository) Create(ref *Reflection) error {
	return r.db.Create(ref).Error
}

func (r *reflectionRepository) FindByIDAndUserID(id, userID uuid.UUID) (*Reflection, error) {
	var ref Reflection
	if err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&ref).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &ref, nil
}

// ListByUser returns the user's reflections, newest first. An empty type lists all.
func (r *reflectionRepository) ListByUser(userID uuid.UUID, t ReflectionType) ([]*Reflection, error) {
	var refs []*Reflection
	q := r.db.Where("user_id = ?", userID)
	if t != "" {
		q = q.Where("type = ?", t)
	}
	if err := q.Order("date DESC, created_at DESC").Find(&refs).Error; err != nil {
		return nil, err
	}
	return refs, nil
}

func (r *reflectionRepository) Update(ref *Reflection) error {
	return r.db.Save(ref).Error
}

func (r *reflectionRepository) Delete(id, userID uuid.UUID) error {
	res := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&Reflection{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
