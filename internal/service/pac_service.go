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
)

// ── PAC errors ──

var (
	ErrOperationNotFound = errors.New("operation not found")
	ErrSampleNotFound    = errors.New("sample not found")
)

// PacOptions holds the static pick lists of the PAC module.
type PacOptions struct {
	OperationTypes []model.Option
	Statuses       []model.Option
	Priorities     []model.Option
}

// PacService manages PAC operations and their samples.
type PacService interface {
	List(ctx context.Context, q *dto.OperationListQuery) ([]dto.OperationResponse, error)
	ListSummary(ctx context.Context, q *dto.OperationListQuery) ([]dto.OperationSummary, error)
	Get(ctx context.Context, id int64) (*dto.OperationResponse, error)
	// Create stores a new operation; inspectorID is used when the request
	// names none.
	Create(ctx context.Context, req *dto.OperationRequest, inspectorID *int64) (*dto.OperationResponse, error)
	Update(ctx context.Context, id int64, req *dto.OperationRequest) (*dto.OperationResponse, error)
	Delete(ctx context.Context, id int64) error

	ListSamples(ctx context.Context, operationID int64) ([]model.PacSample, error)
	CreateSample(ctx context.Context, operationID int64, req *dto.SampleRequest) (*model.PacSample, error)
	UpdateSample(ctx context.Context, operationID, sampleID int64, req *dto.SampleRequest) (*model.PacSample, error)
	DeleteSample(ctx context.Context, operationID, sampleID int64) error

	Dashboard(ctx context.Context) (*dto.PacDashboard, error)
	Options() PacOptions
}

type pacService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewPacService creates a PacService.
func NewPacService(repo *repository.Repository, logger *zap.Logger) PacService {
	return &pacService{repo: repo, logger: logger, now: utcNow}
}

// ────── Read ──────

func (s *pacService) List(ctx context.Context, q *dto.OperationListQuery) ([]dto.OperationResponse, error) {
	ops, err := s.repo.Operation.List(ctx, operationFilter(q))
	if err != nil {
		s.logger.Error("failed to list operations", zap.Error(err))
		return nil, err
	}

	ids := operationIDs(ops)
	samples, err := s.repo.Sample.ListByOperationIDs(ctx, ids)
	if err != nil {
		s.logger.Error("failed to load samples for operations", zap.Int("operations", len(ids)), zap.Error(err))
		return nil, err
	}
	byParent := make(map[int64][]model.PacSample, len(ops))
	for _, smp := range samples {
		byParent[smp.OperationID] = append(byParent[smp.OperationID], smp)
	}

	out := make([]dto.OperationResponse, 0, len(ops))
	for _, op := range ops {
		out = append(out, newOperationResponse(op, byParent[op.ID]))
	}
	return out, nil
}

func (s *pacService) ListSummary(ctx context.Context, q *dto.OperationListQuery) ([]dto.OperationSummary, error) {
	ops, err := s.repo.Operation.List(ctx, operationFilter(q))
	if err != nil {
		s.logger.Error("failed to list operations", zap.Error(err))
		return nil, err
	}
	return s.summarize(ctx, ops)
}

func (s *pacService) Get(ctx context.Context, id int64) (*dto.OperationResponse, error) {
	op, err := s.getOperation(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.hydrate(ctx, op)
}

// ────── Write ──────

func (s *pacService) Create(ctx context.Context, req *dto.OperationRequest, inspectorID *int64) (*dto.OperationResponse, error) {
	now := s.now()
	op := &model.PacOperation{
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := applyOperationRequest(op, req, now); err != nil {
		return nil, err
	}
	op.InspectorID = req.InspectorID
	if op.InspectorID == nil {
		op.InspectorID = inspectorID
	}

	if err := s.repo.Operation.Create(ctx, op); err != nil {
		s.logger.Error("failed to create operation", zap.String("facility", op.FacilityName), zap.Error(err))
		return nil, err
	}

	s.logger.Info("operation created", zap.Int64("operation_id", op.ID), zap.String("type", op.OperationType))
	resp := newOperationResponse(*op, nil)
	return &resp, nil
}

func (s *pacService) Update(ctx context.Context, id int64, req *dto.OperationRequest) (*dto.OperationResponse, error) {
	op, err := s.getOperation(ctx, id)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if err := applyOperationRequest(op, req, now); err != nil {
		return nil, err
	}
	// The assigned inspector survives updates that do not name one.
	if req.InspectorID != nil {
		op.InspectorID = req.InspectorID
	}
	op.UpdatedAt = nextUpdatedAt(op.UpdatedAt, now)

	if err := s.repo.Operation.Update(ctx, op); err != nil {
		s.logger.Error("failed to update operation", zap.Int64("operation_id", id), zap.Error(err))
		return nil, err
	}
	return s.hydrate(ctx, op)
}

func (s *pacService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Operation.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOperationNotFound
		}
		s.logger.Error("failed to delete operation", zap.Int64("operation_id", id), zap.Error(err))
		return err
	}
	s.logger.Info("operation deleted", zap.Int64("operation_id", id))
	return nil
}

// ────── Samples ──────

func (s *pacService) ListSamples(ctx context.Context, operationID int64) ([]model.PacSample, error) {
	if _, err := s.getOperation(ctx, operationID); err != nil {
		return nil, err
	}
	samples, err := s.repo.Sample.ListByOperation(ctx, operationID)
	if err != nil {
		s.logger.Error("failed to list samples", zap.Int64("operation_id", operationID), zap.Error(err))
		return nil, err
	}
	if samples == nil {
		samples = []model.PacSample{}
	}
	return samples, nil
}

func (s *pacService) CreateSample(ctx context.Context, operationID int64, req *dto.SampleRequest) (*model.PacSample, error) {
	if _, err := s.getOperation(ctx, operationID); err != nil {
		return nil, err
	}

	now := s.now()
	smp := &model.PacSample{
		OperationID:    operationID,
		CollectionDate: now,
		CreatedAt:      now,
	}
	if err := applySampleRequest(smp, req); err != nil {
		return nil, err
	}

	if err := s.repo.Sample.Create(ctx, smp); err != nil {
		s.logger.Error("failed to create sample", zap.Int64("operation_id", operationID), zap.Error(err))
		return nil, err
	}
	return smp, nil
}

func (s *pacService) UpdateSample(ctx context.Context, operationID, sampleID int64, req *dto.SampleRequest) (*model.PacSample, error) {
	if _, err := s.getOperation(ctx, operationID); err != nil {
		return nil, err
	}
	smp, err := s.repo.Sample.Get(ctx, operationID, sampleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSampleNotFound
		}
		s.logger.Error("failed to load sample", zap.Int64("sample_id", sampleID), zap.Error(err))
		return nil, err
	}

	if err := applySampleRequest(smp, req); err != nil {
		return nil, err
	}
	if err := s.repo.Sample.Update(ctx, smp); err != nil {
		s.logger.Error("failed to update sample", zap.Int64("sample_id", sampleID), zap.Error(err))
		return nil, err
	}
	return smp, nil
}

func (s *pacService) DeleteSample(ctx context.Context, operationID, sampleID int64) error {
	if _, err := s.getOperation(ctx, operationID); err != nil {
		return err
	}
	if err := s.repo.Sample.Delete(ctx, operationID, sampleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSampleNotFound
		}
		s.logger.Error("failed to delete sample", zap.Int64("sample_id", sampleID), zap.Error(err))
		return err
	}
	return nil
}

// ────── Dashboard ──────

func (s *pacService) Dashboard(ctx context.Context) (*dto.PacDashboard, error) {
	stats, err := s.repo.Operation.Stats(ctx)
	if err != nil {
		s.logger.Error("failed to count operations", zap.Error(err))
		return nil, err
	}
	recent, err := s.repo.Operation.Recent(ctx, recentLimit)
	if err != nil {
		s.logger.Error("failed to load recent operations", zap.Error(err))
		return nil, err
	}
	summaries, err := s.summarize(ctx, recent)
	if err != nil {
		return nil, err
	}

	return &dto.PacDashboard{
		TotalOperations:      stats.Total,
		ScheduledOperations:  stats.Scheduled,
		InProgressOperations: stats.InProgress,
		CompletedOperations:  stats.Completed,
		Inspections:          stats.Inspections,
		Samplings:            stats.Samplings,
		Audits:               stats.Audits,
		HighPriority:         stats.HighPriority,
		RecentOperations:     summaries,
	}, nil
}

func (s *pacService) Options() PacOptions {
	return PacOptions{
		OperationTypes: model.OperationTypes,
		Statuses:       model.OperationStatuses,
		Priorities:     model.Priorities,
	}
}

// ── helpers ──

func (s *pacService) getOperation(ctx context.Context, id int64) (*model.PacOperation, error) {
	op, err := s.repo.Operation.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOperationNotFound
		}
		s.logger.Error("failed to load operation", zap.Int64("operation_id", id), zap.Error(err))
		return nil, err
	}
	return op, nil
}

func (s *pacService) hydrate(ctx context.Context, op *model.PacOperation) (*dto.OperationResponse, error) {
	samples, err := s.repo.Sample.ListByOperation(ctx, op.ID)
	if err != nil {
		s.logger.Error("failed to load samples", zap.Int64("operation_id", op.ID), zap.Error(err))
		return nil, err
	}
	resp := newOperationResponse(*op, samples)
	return &resp, nil
}

func (s *pacService) summarize(ctx context.Context, ops []model.PacOperation) ([]dto.OperationSummary, error) {
	counts, err := s.repo.Sample.CountByOperationIDs(ctx, operationIDs(ops))
	if err != nil {
		s.logger.Error("failed to count samples", zap.Error(err))
		return nil, err
	}
	out := make([]dto.OperationSummary, 0, len(ops))
	for _, op := range ops {
		out = append(out, dto.OperationSummary{PacOperation: op, SampleCount: counts[op.ID]})
	}
	return out, nil
}

func newOperationResponse(op model.PacOperation, samples []model.PacSample) dto.OperationResponse {
	if samples == nil {
		samples = []model.PacSample{}
	}
	return dto.OperationResponse{PacOperation: op, SampleCount: len(samples), Samples: samples}
}

func operationFilter(q *dto.OperationListQuery) repository.OperationFilter {
	if q == nil {
		return repository.OperationFilter{}
	}
	return repository.OperationFilter{
		Type:      q.Type,
		Status:    q.Status,
		Priority:  q.Priority,
		Inspector: q.Inspector,
	}
}

func operationIDs(ops []model.PacOperation) []int64 {
	ids := make([]int64, len(ops))
	for i, op := range ops {
		ids[i] = op.ID
	}
	return ids
}

// applyOperationRequest overwrites every client-owned field of op except
// inspector_id and keeps completed_at in step with the status.
func applyOperationRequest(op *model.PacOperation, req *dto.OperationRequest, now time.Time) error {
	opType, err := requiredString(req.OperationType, "operation_type", "Operation type")
	if err != nil {
		return err
	}
	if opType, err = enumOr(&opType, model.OperationTypes, "operation_type", ""); err != nil {
		return err
	}
	facility, err := requiredString(req.FacilityName, "facility_name", "Facility name")
	if err != nil {
		return err
	}
	if _, err := requiredString(req.OperationDate, "operation_date", "Operation date"); err != nil {
		return err
	}
	date, err := optionalDateTime(req.OperationDate, "operation_date")
	if err != nil {
		return err
	}
	status, err := enumOr(req.Status, model.OperationStatuses, "status", model.OperationScheduled)
	if err != nil {
		return err
	}
	priority, err := enumOr(req.Priority, model.Priorities, "priority", model.PriorityMedium)
	if err != nil {
		return err
	}
	risk, err := enumOr(req.RiskLevel, model.RiskLevels, "risk_level", model.RiskLow)
	if err != nil {
		return err
	}
	compliance, err := enumOr(req.ComplianceStatus, model.ComplianceStatuses, "compliance_status", model.CompliancePending)
	if err != nil {
		return err
	}

	op.CompletedAt = completionStamp(op.Status, op.CompletedAt, status, model.OperationCompleted, now)
	op.OperationType = opType
	op.FacilityName = facility
	op.FacilityID = req.FacilityID
	op.FacilityAddress = req.FacilityAddress
	op.OperationDate = *date
	op.Status = status
	op.Priority = priority
	op.Inspector = req.Inspector
	op.Notes = req.Notes
	op.Findings = req.Findings
	op.RiskLevel = risk
	op.ComplianceStatus = compliance
	return nil
}

// applySampleRequest overwrites every client-owned field of smp. A missing
// collection_date keeps the current one.
func applySampleRequest(smp *model.PacSample, req *dto.SampleRequest) error {
	sampleType, err := requiredString(req.SampleType, "sample_type", "Sample type")
	if err != nil {
		return err
	}
	status, err := enumOr(req.Status, model.SampleStatuses, "status", model.SampleCollected)
	if err != nil {
		return err
	}
	collected, err := optionalDateTime(req.CollectionDate, "collection_date")
	if err != nil {
		return err
	}

	smp.SampleType = sampleType
	smp.SampleDescription = req.SampleDescription
	if collected != nil {
		smp.CollectionDate = *collected
	}
	smp.SampleLocation = req.SampleLocation
	smp.TestType = req.TestType
	smp.Status = status
	smp.Results = req.Results
	smp.LabID = req.LabID
	return nil
}
