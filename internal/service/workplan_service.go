package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Tsathyapriya80/fwfps-field-work-planning-system/internal/dto"
	"github.com/Tsathyapriya80/fwfps-field-work-planning-system/internal/model"
	"github.com/Tsathyapriya80/fwfps-field-work-planning-system/internal/repository"
	apperrors "github.com/Tsathyapriya80/fwfps-field-work-planning-system/pkg/errors"
)

// ── workplan errors ──

var (
	ErrWorkplanNotFound = errors.New("workplan not found")
	ErrTaskNotFound     = errors.New("task not found")
)

// WorkplanService manages workplans and their tasks.
type WorkplanService interface {
	List(ctx context.Context, q *dto.WorkplanListQuery) ([]dto.WorkplanResponse, error)
	// ListSummary is List without hydrated tasks; only task_count is set.
	ListSummary(ctx context.Context, q *dto.WorkplanListQuery) ([]dto.WorkplanSummary, error)
	Get(ctx context.Context, id int64) (*dto.WorkplanResponse, error)
	Create(ctx context.Context, req *dto.WorkplanRequest, createdBy *int64) (*dto.WorkplanResponse, error)
	// Update replaces the workplan with req; omitted fields are cleared.
	Update(ctx context.Context, id int64, req *dto.WorkplanRequest) (*dto.WorkplanResponse, error)
	Delete(ctx context.Context, id int64) error

	ListTasks(ctx context.Context, workplanID int64) ([]model.Task, error)
	CreateTask(ctx context.Context, workplanID int64, req *dto.TaskRequest) (*model.Task, error)
	UpdateTask(ctx context.Context, workplanID, taskID int64, req *dto.TaskRequest) (*model.Task, error)
	DeleteTask(ctx context.Context, workplanID, taskID int64) error

	Dashboard(ctx context.Context) (*dto.WorkplanDashboard, error)
}

type workplanService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewWorkplanService creates a WorkplanService.
func NewWorkplanService(repo *repository.Repository, logger *zap.Logger) WorkplanService {
	return &workplanService{repo: repo, logger: logger, now: utcNow}
}

// ────── Read ──────

func (s *workplanService) List(ctx context.Context, q *dto.WorkplanListQuery) ([]dto.WorkplanResponse, error) {
	wps, err := s.repo.Workplan.List(ctx, workplanFilter(q))
	if err != nil {
		s.logger.Error("failed to list workplans", zap.Error(err))
		return nil, err
	}

	ids := workplanIDs(wps)
	tasks, err := s.repo.Task.ListByWorkplanIDs(ctx, ids)
	if err != nil {
		s.logger.Error("failed to load tasks for workplans", zap.Int("workplans", len(ids)), zap.Error(err))
		return nil, err
	}
	byParent := make(map[int64][]model.Task, len(wps))
	for _, t := range tasks {
		byParent[t.WorkplanID] = append(byParent[t.WorkplanID], t)
	}

	out := make([]dto.WorkplanResponse, 0, len(wps))
	for _, wp := range wps {
		out = append(out, newWorkplanResponse(wp, byParent[wp.ID]))
	}
	return out, nil
}

func (s *workplanService) ListSummary(ctx context.Context, q *dto.WorkplanListQuery) ([]dto.WorkplanSummary, error) {
	wps, err := s.repo.Workplan.List(ctx, workplanFilter(q))
	if err != nil {
		s.logger.Error("failed to list workplans", zap.Error(err))
		return nil, err
	}
	return s.summarize(ctx, wps)
}

func (s *workplanService) Get(ctx context.Context, id int64) (*dto.WorkplanResponse, error) {
	wp, err := s.getWorkplan(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.hydrate(ctx, wp)
}

// ────── Write ──────

func (s *workplanService) Create(ctx context.Context, req *dto.WorkplanRequest, createdBy *int64) (*dto.WorkplanResponse, error) {
	now := s.now()
	wp := &model.Workplan{
		CreatedBy: createdBy,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := applyWorkplanRequest(wp, req); err != nil {
		return nil, err
	}
	wp.Progress = progressOrZero(wp.Progress)

	if err := s.repo.Workplan.Create(ctx, wp); err != nil {
		s.logger.Error("failed to create workplan", zap.String("title", wp.Title), zap.Error(err))
		return nil, err
	}

	s.logger.Info("workplan created", zap.Int64("workplan_id", wp.ID))
	resp := newWorkplanResponse(*wp, nil)
	return &resp, nil
}

func (s *workplanService) Update(ctx context.Context, id int64, req *dto.WorkplanRequest) (*dto.WorkplanResponse, error) {
	wp, err := s.getWorkplan(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applyWorkplanRequest(wp, req); err != nil {
		return nil, err
	}
	wp.UpdatedAt = nextUpdatedAt(wp.UpdatedAt, s.now())

	if err := s.repo.Workplan.Update(ctx, wp); err != nil {
		s.logger.Error("failed to update workplan", zap.Int64("workplan_id", id), zap.Error(err))
		return nil, err
	}
	return s.hydrate(ctx, wp)
}

func (s *workplanService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Workplan.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrWorkplanNotFound
		}
		s.logger.Error("failed to delete workplan", zap.Int64("workplan_id", id), zap.Error(err))
		return err
	}
	s.logger.Info("workplan deleted", zap.Int64("workplan_id", id))
	return nil
}

// ────── Tasks ──────

func (s *workplanService) ListTasks(ctx context.Context, workplanID int64) ([]model.Task, error) {
	if _, err := s.getWorkplan(ctx, workplanID); err != nil {
		return nil, err
	}
	tasks, err := s.repo.Task.ListByWorkplan(ctx, workplanID)
	if err != nil {
		s.logger.Error("failed to list tasks", zap.Int64("workplan_id", workplanID), zap.Error(err))
		return nil, err
	}
	if tasks == nil {
		tasks = []model.Task{}
	}
	return tasks, nil
}

func (s *workplanService) CreateTask(ctx context.Context, workplanID int64, req *dto.TaskRequest) (*model.Task, error) {
	if _, err := s.getWorkplan(ctx, workplanID); err != nil {
		return nil, err
	}

	now := s.now()
	task := &model.Task{
		WorkplanID: workplanID,
		CreatedAt:  now,
	}
	if err := applyTaskRequest(task, req, now); err != nil {
		return nil, err
	}
	task.Progress = progressOrZero(task.Progress)

	if err := s.repo.Task.Create(ctx, task); err != nil {
		s.logger.Error("failed to create task", zap.Int64("workplan_id", workplanID), zap.Error(err))
		return nil, err
	}
	return task, nil
}

func (s *workplanService) UpdateTask(ctx context.Context, workplanID, taskID int64, req *dto.TaskRequest) (*model.Task, error) {
	if _, err := s.getWorkplan(ctx, workplanID); err != nil {
		return nil, err
	}
	task, err := s.repo.Task.Get(ctx, workplanID, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		s.logger.Error("failed to load task", zap.Int64("task_id", taskID), zap.Error(err))
		return nil, err
	}

	if err := applyTaskRequest(task, req, s.now()); err != nil {
		return nil, err
	}
	if err := s.repo.Task.Update(ctx, task); err != nil {
		s.logger.Error("failed to update task", zap.Int64("task_id", taskID), zap.Error(err))
		return nil, err
	}
	return task, nil
}

func (s *workplanService) DeleteTask(ctx context.Context, workplanID, taskID int64) error {
	if _, err := s.getWorkplan(ctx, workplanID); err != nil {
		return err
	}
	if err := s.repo.Task.Delete(ctx, workplanID, taskID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		s.logger.Error("failed to delete task", zap.Int64("task_id", taskID), zap.Error(err))
		return err
	}
	return nil
}

// ────── Dashboard ──────

func (s *workplanService) Dashboard(ctx context.Context) (*dto.WorkplanDashboard, error) {
	stats, err := s.repo.Workplan.Stats(ctx)
	if err != nil {
		s.logger.Error("failed to count workplans", zap.Error(err))
		return nil, err
	}
	recent, err := s.repo.Workplan.Recent(ctx, recentLimit)
	if err != nil {
		s.logger.Error("failed to load recent workplans", zap.Error(err))
		return nil, err
	}
	summaries, err := s.summarize(ctx, recent)
	if err != nil {
		return nil, err
	}

	return &dto.WorkplanDashboard{
		TotalWorkplans:     stats.Total,
		ActiveWorkplans:    stats.Active,
		CompletedWorkplans: stats.Completed,
		PlannedWorkplans:   stats.Planned,
		HighPriority:       stats.HighPriority,
		RecentWorkplans:    summaries,
	}, nil
}

// ── helpers ──

func (s *workplanService) getWorkplan(ctx context.Context, id int64) (*model.Workplan, error) {
	wp, err := s.repo.Workplan.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWorkplanNotFound
		}
		s.logger.Error("failed to load workplan", zap.Int64("workplan_id", id), zap.Error(err))
		return nil, err
	}
	return wp, nil
}

func (s *workplanService) hydrate(ctx context.Context, wp *model.Workplan) (*dto.WorkplanResponse, error) {
	tasks, err := s.repo.Task.ListByWorkplan(ctx, wp.ID)
	if err != nil {
		s.logger.Error("failed to load tasks", zap.Int64("workplan_id", wp.ID), zap.Error(err))
		return nil, err
	}
	resp := newWorkplanResponse(*wp, tasks)
	return &resp, nil
}

func (s *workplanService) summarize(ctx context.Context, wps []model.Workplan) ([]dto.WorkplanSummary, error) {
	counts, err := s.repo.Task.CountByWorkplanIDs(ctx, workplanIDs(wps))
	if err != nil {
		s.logger.Error("failed to count tasks", zap.Error(err))
		return nil, err
	}
	out := make([]dto.WorkplanSummary, 0, len(wps))
	for _, wp := range wps {
		out = append(out, dto.WorkplanSummary{Workplan: wp, TaskCount: counts[wp.ID]})
	}
	return out, nil
}

func newWorkplanResponse(wp model.Workplan, tasks []model.Task) dto.WorkplanResponse {
	if tasks == nil {
		tasks = []model.Task{}
	}
	return dto.WorkplanResponse{Workplan: wp, TaskCount: len(tasks), Tasks: tasks}
}

func workplanFilter(q *dto.WorkplanListQuery) repository.WorkplanFilter {
	if q == nil {
		return repository.WorkplanFilter{}
	}
	return repository.WorkplanFilter{
		Status:     q.Status,
		Priority:   q.Priority,
		AssignedTo: q.AssignedTo,
	}
}

func workplanIDs(wps []model.Workplan) []int64 {
	ids := make([]int64, len(wps))
	for i, wp := range wps {
		ids[i] = wp.ID
	}
	return ids
}

// applyWorkplanRequest overwrites every client-owned field of wp.
func applyWorkplanRequest(wp *model.Workplan, req *dto.WorkplanRequest) error {
	title, err := requiredString(req.Title, "title", "Title")
	if err != nil {
		return err
	}
	status, err := enumOr(req.Status, model.WorkplanStatuses, "status", model.WorkplanPlanned)
	if err != nil {
		return err
	}
	priority, err := enumOr(req.Priority, model.Priorities, "priority", model.PriorityMedium)
	if err != nil {
		return err
	}
	start, err := optionalDate(req.StartDate, "start_date")
	if err != nil {
		return err
	}
	end, err := optionalDate(req.EndDate, "end_date")
	if err != nil {
		return err
	}
	if start != nil && end != nil && end.Before(start.Time) {
		return apperrors.Invalid("end_date must not be before start_date")
	}
	progress, err := optionalProgress(req.Progress)
	if err != nil {
		return err
	}

	wp.Title = title
	wp.Description = req.Description
	wp.Status = status
	wp.Priority = priority
	wp.StartDate = start
	wp.EndDate = end
	wp.AssignedTo = req.AssignedTo
	wp.Progress = progress
	return nil
}

// applyTaskRequest overwrites every client-owned field of task and keeps
// completed_at in step with the status.
func applyTaskRequest(task *model.Task, req *dto.TaskRequest, now time.Time) error {
	title, err := requiredString(req.Title, "title", "Title")
	if err != nil {
		return err
	}
	status, err := enumOr(req.Status, model.TaskStatuses, "status", model.TaskPending)
	if err != nil {
		return err
	}
	priority, err := enumOr(req.Priority, model.Priorities, "priority", model.PriorityMedium)
	if err != nil {
		return err
	}
	due, err := optionalDate(req.DueDate, "due_date")
	if err != nil {
		return err
	}
	progress, err := optionalProgress(req.Progress)
	if err != nil {
		return err
	}

	task.CompletedAt = completionStamp(task.Status, task.CompletedAt, status, model.TaskCompleted, now)
	task.Title = title
	task.Description = req.Description
	task.Status = status
	task.Priority = priority
	task.DueDate = due
	task.AssignedTo = req.AssignedTo
	task.Progress = progress
	return nil
}
