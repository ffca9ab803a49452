package task

import (
	"errors"

	"github.com/google/uuid"
	util "github.com/saulo-duarte/coach-lambda/internal/utils"
	"gorm.io/gorm"
)

var ErrNotFound = errors.New("record not found")

type TaskRepository interface {
	Create(t *Task) error
	CreateBatch(tasks []*Task) error
	FindByIdAndUserId(id, userID uuid.UUID) (*Task, error)
	ListByUser(userID uuid.UUID) ([]*Task, error)
	ListByUserAndDate(userID uuid.UUID, date util.LocalDate) ([]*Task, error)
	ListByUserBetween(userID uuid.UUID, from, to util.LocalDate) ([]*Task, error)
	Update(t *Task) error
	Delete(id, userID uuid.UUID) error
}

type taskRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) TaskRepository {
	return &taskRepository{db: db}
}

func (r *taskRepository) Create(t *Task) error {
	return r.db.Create(t).Error
}

func (r *taskRepository) CreateBatch(tasks []*Task) error {
	if len(tasks) == 0 {
		return nil
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&tasks).Error
	})
}

func (r *taskRepository) FindByIdAndUserId(id, userID uuid.UUID) (*Task, error) {
	var t Task
	if err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&t).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *taskRepository) ListByUser(userID uuid.UUID) ([]*Task, error) {
	var tasks []*Task
	if err := r.db.
		Where("user_id = ?", userID).
		Order("date DESC, created_at ASC").
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *taskRepository) ListByUserAndDate(userID uuid.UUID, date util.LocalDate) ([]*Task, error) {
	var tasks []*Task
	if err := r.db.
		Where("user_id = ? AND date = ?", userID, date).
		Order("created_at ASC").
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// ListByUserBetween returns tasks dated within [from, to], both inclusive.
func (r *taskRepository) ListByUserBetween(userID uuid.UUID, from, to util.LocalDate) ([]*Task, error) {
	var tasks []*Task
	if err := r.db.
		Where("user_id = ? AND date >= ? AND date <= ?", userID, from, to).
		Order("date ASC, created_at ASC").
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *taskRepository) Update(t *Task) error {
	return r.db.Save(t).Error
}

func (r *taskRepository) Delete(id, userID uuid.UUID) error {
	res := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&Task{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
