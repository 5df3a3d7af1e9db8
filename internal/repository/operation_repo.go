package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Tsathyapriya80/fwfps-field-work-planning-system/internal/model"
)

// OperationFilter narrows an operation listing. Empty fields are ignored.
type OperationFilter struct {
	Type      string
	Status    string
	Priority  string
	Inspector string // case-insensitive substring
}

// OperationStats holds dashboard counters.
type OperationStats struct {
	Total        int64
	Scheduled    int64
	InProgress   int64
	Completed    int64
	Inspections  int64
	Samplings    int64
	Audits       int64
	HighPriority int64
}

// OperationRepository is the data access interface for PAC operations.
type OperationRepository interface {
	Create(ctx context.Context, op *model.PacOperation) error
	GetByID(ctx context.Context, id int64) (*model.PacOperation, error)
	List(ctx context.Context, filter OperationFilter) ([]model.PacOperation, error)
	Recent(ctx context.Context, limit int) ([]model.PacOperation, error)
	Update(ctx context.Context, op *model.PacOperation) error
	// Delete removes the operation and all of its samples atomically.
	Delete(ctx context.Context, id int64) error
	Stats(ctx context.Context) (*OperationStats, error)
}

type operationRepo struct {
	db *gorm.DB
}

// NewOperationRepo creates an OperationRepository.
func NewOperationRepo(db *gorm.DB) OperationRepository {
	return &operationRepo{db: db}
}

func (r *operationRepo) Create(ctx context.Context, op *model.PacOperation) error {
	return r.db.WithContext(ctx).Create(op).Error
}

func (r *operationRepo) GetByID(ctx context.Context, id int64) (*model.PacOperation, error) {
	var op model.PacOperation
	if err := r.db.WithContext(ctx).First(&op, id).Error; err != nil {
		return nil, err
	}
	return &op, nil
}

func (r *operationRepo) List(ctx context.Context, filter OperationFilter) ([]model.PacOperation, error) {
	q := r.db.WithContext(ctx).Model(&model.PacOperation{})
	if filter.Type != "" {
		q = q.Where("operation_type = ?", filter.Type)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Priority != "" {
		q = q.Where("priority = ?", filter.Priority)
	}
	if filter.Inspector != "" {
		q = q.Where(`LOWER(inspector) LIKE ? ESCAPE '\'`, containsPattern(filter.Inspector))
	}

	var ops []model.PacOperation
	err := q.Order("operation_date DESC, id DESC").Find(&ops).Error
	return ops, err
}

func (r *operationRepo) Recent(ctx context.Context, limit int) ([]model.PacOperation, error) {
	var ops []model.PacOperation
	err := r.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&ops).Error
	return ops, err
}

func (r *operationRepo) Update(ctx context.Context, op *model.PacOperation) error {
	return r.db.WithContext(ctx).Save(op).Error
}

func (r *operationRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("operation_id = ?", id).Delete(&model.PacSample{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&model.PacOperation{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *operationRepo) Stats(ctx context.Context) (*OperationStats, error) {
	var s OperationStats
	err := r.db.WithContext(ctx).
		Model(&model.PacOperation{}).
		Select(`COUNT(*) AS total,
			COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS scheduled,
			COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS in_progress,
			COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS completed,
			COALESCE(SUM(CASE WHEN operation_type = ? THEN 1 ELSE 0 END), 0) AS inspections,
			COALESCE(SUM(CASE WHEN operation_type = ? THEN 1 ELSE 0 END), 0) AS samplings,
			COALESCE(SUM(CASE WHEN operation_type = ? THEN 1 ELSE 0 END), 0) AS audits,
			COALESCE(SUM(CASE WHEN priority = ? THEN 1 ELSE 0 END), 0) AS high_priority`,
			model.OperationScheduled, model.OperationInProgress, model.OperationCompleted,
			model.OperationInspection, model.OperationSampling, model.OperationAudit,
			model.PriorityHigh).
		Scan(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}
