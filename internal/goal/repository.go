package goal

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrNotFound = errors.New("record not found")

type GoalRepository interface {
	Create(g *Goal) error
	CreateBatch(goals []*Goal) error
	FindByIDAndUserID(id, userID uuid.UUID) (*Goal, error)
	ListByUser(userID uuid.UUID, includeArchived bool) ([]*Goal, error)
	Update(g *Goal) error
	Delete(id, userID uuid.UUID) error
}

type goalRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) GoalRepository {
	return &goalRepository{db: db}
}

func (r *goalRepository) Create(g *Goal) error {
	return r.db.Create(g).Error
}

func (r *goalRepository) CreateBatch(goals []*Goal) error {
	if len(goals) == 0 {
		return nil
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&goals).Error
	})
}

func (r *goalRepository) FindByIDAndUserID(id, userID uuid.UUID) (*Goal, error) {
	var g Goal
	if err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&g).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &g, nil
}

func (r *goalRepository) ListByUser(userID uuid.UUID, includeArchived bool) ([]*Goal, error) {
	var goals []*Goal
	q := r.db.Where("user_id = ?", userID)
	if !includeArchived {
		q = q.Where("is_archived = ?", false)
	}
	if err := q.Order("created_at ASC").Find(&goals).Error; err != nil {
		return nil, err
	}
	return goals, nil
}

func (r *goalRepository) Update(g *Goal) error {
	return r.db.Save(g).Error
}

func (r *goalRepository) Delete(id, userID uuid.UUID) error {
	res := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&Goal{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
