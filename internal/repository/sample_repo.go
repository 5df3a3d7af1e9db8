package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Tsathyapriya80/fwfps-field-work-planning-system/internal/model"
)

// SampleRepository is the data access interface for PAC samples.
type SampleRepository interface {
	Create(ctx context.Context, sample *model.PacSample) error
	// Get returns the sample only if it belongs to operationID.
	Get(ctx context.Context, operationID, sampleID int64) (*model.PacSample, error)
	ListByOperation(ctx context.Context, operationID int64) ([]model.PacSample, error)
	ListByOperationIDs(ctx context.Context, operationIDs []int64) ([]model.PacSample, error)
	CountByOperationIDs(ctx context.Context, operationIDs []int64) (map[int64]int, error)
	Update(ctx context.Context, sample *model.PacSample) error
	Delete(ctx context.Context, operationID, sampleID int64) error
}

type sampleRepo struct {
	db *gorm.DB
}

// NewSampleRepo creates a SampleRepository.
func NewSampleRepo(db *gorm.DB) SampleRepository {
	return &sampleRepo{db: db}
}

func (r *sampleRepo) Create(ctx context.Context, sample *model.PacSample) error {
	return r.db.WithContext(ctx).Create(sample).Error
}

func (r *sampleRepo) Get(ctx context.Context, operationID, sampleID int64) (*model.PacSample, error) {
	var s model.PacSample
	err := r.db.WithContext(ctx).
		Where("id = ? AND operation_id = ?", sampleID, operationID).
		First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *sampleRepo) ListByOperation(ctx context.Context, operationID int64) ([]model.PacSample, error) {
	var samples []model.PacSample
	err := r.db.WithContext(ctx).
		Where("operation_id = ?", operationID).
		Order("collection_date ASC, id ASC").
		Find(&samples).Error
	return samples, err
}

func (r *sampleRepo) ListByOperationIDs(ctx context.Context, operationIDs []int64) ([]model.PacSample, error) {
	if len(operationIDs) == 0 {
		return nil, nil
	}
	var samples []model.PacSample
	err := r.db.WithContext(ctx).
		Where("operation_id IN ?", operationIDs).
		Order("collection_date ASC, id ASC").
		Find(&samples).Error
	return samples, err
}

func (r *sampleRepo) CountByOperationIDs(ctx context.Context, operationIDs []int64) (map[int64]int, error) {
	if len(operationIDs) == 0 {
		return map[int64]int{}, nil
	}
	var rows []parentCount
	err := r.db.WithContext(ctx).
		Model(&model.PacSample{}).
		Select("operation_id AS parent_id, COUNT(*) AS n").
		Where("operation_id IN ?", operationIDs).
		Group("operation_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return countsToMap(rows), nil
}

func (r *sampleRepo) Update(ctx context.Context, sample *model.PacSample) error {
	return r.db.WithContext(ctx).Save(sample).Error
}

func (r *sampleRepo) Delete(ctx context.Context, operationID, sampleID int64) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND operation_id = ?", sampleID, operationID).
		Delete(&model.PacSample{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
