package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Tsathyapriya80/fwfps-field-work-planning-system/internal/model"
)

// WorkplanFilter narrows a workplan listing. Empty fields are ignored.
type WorkplanFilter struct {
	Status     string
	Priority   string
	AssignedTo string // case-sensitive substring
}

// WorkplanStats holds dashboard counters.
type WorkplanStats struct {
	Total        int64
	Active       int64
	Completed    int64
	Planned      int64
	HighPriority int64
}

// WorkplanRepository is the data access interface for workplans.
type WorkplanRepository interface {
	Create(ctx context.Context, wp *model.Workplan) error
	GetByID(ctx context.Context, id int64) (*model.Workplan, error)
	List(ctx context.Context, filter WorkplanFilter) ([]model.Workplan, error)
	Recent(ctx context.Context, limit int) ([]model.Workplan, error)
	Update(ctx context.Context, wp *model.Workplan) error
	// Delete removes the workplan and all of its tasks atomically.
	Delete(ctx context.Context, id int64) error
	Stats(ctx context.Context) (*WorkplanStats, error)
}

type workplanRepo struct {
	db *gorm.DB
}

// NewWorkplanRepo creates a WorkplanRepository.
func NewWorkplanRepo(db *gorm.DB) WorkplanRepository {
	return &workplanRepo{db: db}
}

func (r *workplanRepo) Create(ctx context.Context, wp *model.Workplan) error {
	return r.db.WithContext(ctx).Create(wp).Error
}

func (r *workplanRepo) GetByID(ctx context.Context, id int64) (*model.Workplan, error) {
	var wp model.Workplan
	if err := r.db.WithContext(ctx).First(&wp, id).Error; err != nil {
		return nil, err
	}
	return &wp, nil
}

func (r *workplanRepo) List(ctx context.Context, filter WorkplanFilter) ([]model.Workplan, error) {
	q := r.db.WithContext(ctx).Model(&model.Workplan{})
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Priority != "" {
		q = q.Where("priority = ?", filter.Priority)
	}
	if filter.AssignedTo != "" {
		q = q.Where(containsExpr(r.db, "assigned_to"), filter.AssignedTo)
	}

	var wps []model.Workplan
	err := q.Order("created_at DESC, id DESC").Find(&wps).Error
	return wps, err
}

func (r *workplanRepo) Recent(ctx context.Context, limit int) ([]model.Workplan, error) {
	var wps []model.Workplan
	err := r.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&wps).Error
	return wps, err
}

func (r *workplanRepo) Update(ctx context.Context, wp *model.Workplan) error {
	return r.db.WithContext(ctx).Save(wp).Error
}

func (r *workplanRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("workplan_id = ?", id).Delete(&model.Task{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&model.Workplan{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *workplanRepo) Stats(ctx context.Context) (*WorkplanStats, error) {
	var s WorkplanStats
	err := r.db.WithContext(ctx).
		Model(&model.Workplan{}).
		Select(`COUNT(*) AS total,
			COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS active,
			COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS completed,
			COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS planned,
			COALESCE(SUM(CASE WHEN priority = ? THEN 1 ELSE 0 END), 0) AS high_priority`,
			model.WorkplanActive, model.WorkplanCompleted, model.WorkplanPlanned, model.PriorityHigh).
		Scan(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}
