package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Tsathyapriya80/fwfps-field-work-planning-system/internal/model"
)

// TaskRepository is the data access interface for workplan tasks.
type TaskRepository interface {
	Create(ctx context.Context, task *model.Task) error
	// Get returns the task only if it belongs to workplanID.
	Get(ctx context.Context, workplanID, taskID int64) (*model.Task, error)
	ListByWorkplan(ctx context.Context, workplanID int64) ([]model.Task, error)
	ListByWorkplanIDs(ctx context.Context, workplanIDs []int64) ([]model.Task, error)
	CountByWorkplanIDs(ctx context.Context, workplanIDs []int64) (map[int64]int, error)
	Update(ctx context.Context, task *model.Task) error
	Delete(ctx context.Context, workplanID, taskID int64) error
}

type taskRepo struct {
	db *gorm.DB
}

// NewTaskRepo creates a TaskRepository.
func NewTaskRepo(db *gorm.DB) TaskRepository {
	return &taskRepo{db: db}
}

func (r *taskRepo) Create(ctx context.Context, task *model.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

func (r *taskRepo) Get(ctx context.Context, workplanID, taskID int64) (*model.Task, error) {
	var task model.Task
	err := r.db.WithContext(ctx).
		Where("id = ? AND workplan_id = ?", taskID, workplanID).
		First(&task).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *taskRepo) ListByWorkplan(ctx context.Context, workplanID int64) ([]model.Task, error) {
	var tasks []model.Task
	err := r.db.WithContext(ctx).
		Where("workplan_id = ?", workplanID).
		Order("created_at ASC, id ASC").
		Find(&tasks).Error
	return tasks, err
}

func (r *taskRepo) ListByWorkplanIDs(ctx context.Context, workplanIDs []int64) ([]model.Task, error) {
	if len(workplanIDs) == 0 {
		return nil, nil
	}
	var tasks []model.Task
	err := r.db.WithContext(ctx).
		Where("workplan_id IN ?", workplanIDs).
		Order("created_at ASC, id ASC").
		Find(&tasks).Error
	return tasks, err
}

func (r *taskRepo) CountByWorkplanIDs(ctx context.Context, workplanIDs []int64) (map[int64]int, error) {
	if len(workplanIDs) == 0 {
		return map[int64]int{}, nil
	}
	var rows []parentCount
	err := r.db.WithContext(ctx).
		Model(&model.Task{}).
		Select("workplan_id AS parent_id, COUNT(*) AS n").
		Where("workplan_id IN ?", workplanIDs).
		Group("workplan_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return countsToMap(rows), nil
}

func (r *taskRepo) Update(ctx context.Context, task *model.Task) error {
	return r.db.WithContext(ctx).Save(task).Error
}

func (r *taskRepo) Delete(ctx context.Context, workplanID, taskID int64) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND workplan_id = ?", taskID, workplanID).
		Delete(&model.Task{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
