package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Tsathyapriya80/fwfps-field-work-planning-system/internal/model"
	"github.com/Tsathyapriya80/fwfps-field-work-planning-system/internal/repository"
	"github.com/Tsathyapriya80/fwfps-field-work-planning-system/internal/testutil"
)

// ═══════════════════════════════════════════════════════════
// Test Setup
// ═══════════════════════════════════════════════════════════

var baseTime = time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC)

func setupRepo(t *testing.T) (*repository.Repository, *gorm.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return repository.NewRepository(db), db
}

func newWorkplan(title, status, priority string, assigned *string, offset time.Duration) *model.Workplan {
	at := baseTime.Add(offset)
	return &model.Workplan{
		Title:      title,
		Status:     status,
		Priority:   priority,
		AssignedTo: assigned,
		Progress:   testutil.IntPtr(0),
		CreatedAt:  at,
		UpdatedAt:  at,
	}
}

func newOperation(facility, opType, status, priority string, inspector *string, date time.Time) *model.PacOperation {
	return &model.PacOperation{
		OperationType:    opType,
		FacilityName:     facility,
		OperationDate:    date,
		Status:           status,
		Priority:         priority,
		Inspector:        inspector,
		RiskLevel:        model.RiskLow,
		ComplianceStatus: model.CompliancePending,
		CreatedAt:        date,
		UpdatedAt:        date,
	}
}

// ═══════════════════════════════════════════════════════════
// Users
// ═══════════════════════════════════════════════════════════

func TestUserRepo_CreateAndLookup(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()

	u := &model.User{
		Username:     "analyst",
		Email:        "analyst@fda.gov",
		PasswordHash: "$2a$10$placeholder",
		FullName:     "Data Analyst",
		Role:         model.RoleUser,
		IsActive:     true,
		CreatedAt:    baseTime,
	}
	require.NoError(t, repo.User.Create(ctx, u))
	require.NotZero(t, u.ID)

	byName, err := repo.User.GetByUsername(ctx, "analyst")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byName.ID)

	byEmail, err := repo.User.GetByEmail(ctx, "analyst@fda.gov")
	require.NoError(t, err)
	assert.Equal(t, "Data Analyst", byEmail.FullName)

	_, err = repo.User.GetByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	n, err := repo.User.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestUserRepo_DuplicateUsername(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()

	first := &model.User{Username: "admin", Email: "a@fda.gov", PasswordHash: "x", FullName: "A", Role: model.RoleAdmin, IsActive: true, CreatedAt: baseTime}
	require.NoError(t, repo.User.Create(ctx, first))

	dup := &model.User{Username: "admin", Email: "b@fda.gov", PasswordHash: "x", FullName: "B", Role: model.RoleUser, IsActive: true, CreatedAt: baseTime}
	err := repo.User.Create(ctx, dup)
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestUserRepo_UpdateLastLogin(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()

	u := &model.User{Username: "admin", Email: "a@fda.gov", PasswordHash: "x", FullName: "A", Role: model.RoleAdmin, IsActive: true, CreatedAt: baseTime}
	require.NoError(t, repo.User.Create(ctx, u))

	at := baseTime.Add(time.Hour)
	require.NoError(t, repo.User.UpdateLastLogin(ctx, u.ID, at))

	got, err := repo.User.GetByID(ctx, u.ID)
	require.NoError(t, err)
	require.NotNil(t, got.LastLogin)
	assert.True(t, got.LastLogin.Equal(at))

	assert.ErrorIs(t, repo.User.UpdateLastLogin(ctx, 9999, at), gorm.ErrRecordNotFound)
}

// ═══════════════════════════════════════════════════════════
// Workplans
// ═══════════════════════════════════════════════════════════

func TestWorkplanRepo_ListFilters(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()

	wps := []*model.Workplan{
		newWorkplan("FDA Team Alpha", model.WorkplanActive, model.PriorityHigh, testutil.StrPtr("Team Alpha"), 0),
		newWorkplan("FDA Team Beta", model.WorkplanPlanned, model.PriorityMedium, testutil.StrPtr("Team Beta"), time.Minute),
		newWorkplan("FDA Team Gamma", model.WorkplanActive, model.PriorityMedium, testutil.StrPtr("team alpha support"), 2*time.Minute),
		newWorkplan("Unassigned", model.WorkplanActive, model.PriorityHigh, nil, 3*time.Minute),
	}
	for _, wp := range wps {
		require.NoError(t, repo.Workplan.Create(ctx, wp))
	}

	all, err := repo.Workplan.List(ctx, repository.WorkplanFilter{})
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, "Unassigned", all[0].Title, "newest first")
	assert.Equal(t, "FDA Team Alpha", all[3].Title)

	alpha, err := repo.Workplan.List(ctx, repository.WorkplanFilter{AssignedTo: "Alpha"})
	require.NoError(t, err)
	require.Len(t, alpha, 1)
	assert.Equal(t, "FDA Team Alpha", alpha[0].Title)

	lower, err := repo.Workplan.List(ctx, repository.WorkplanFilter{AssignedTo: "alpha"})
	require.NoError(t, err)
	require.Len(t, lower, 1, "match is case-sensitive")
	assert.Equal(t, "FDA Team Gamma", lower[0].Title)

	combined, err := repo.Workplan.List(ctx, repository.WorkplanFilter{
		Status:     model.WorkplanActive,
		Priority:   model.PriorityHigh,
		AssignedTo: "Alpha",
	})
	require.NoError(t, err)
	require.Len(t, combined, 1)
	assert.Equal(t, "FDA Team Alpha", combined[0].Title)

	none, err := repo.Workplan.List(ctx, repository.WorkplanFilter{Status: model.WorkplanCancelled})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestWorkplanRepo_WildcardsAreLiteral(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Workplan.Create(ctx, newWorkplan("A", model.WorkplanPlanned, model.PriorityLow, testutil.StrPtr("Team_1"), 0)))
	require.NoError(t, repo.Workplan.Create(ctx, newWorkplan("B", model.WorkplanPlanned, model.PriorityLow, testutil.StrPtr("TeamX1"), time.Minute)))
	require.NoError(t, repo.Workplan.Create(ctx, newWorkplan("C", model.WorkplanPlanned, model.PriorityLow, testutil.StrPtr("100% field"), 2*time.Minute)))

	got, err := repo.Workplan.List(ctx, repository.WorkplanFilter{AssignedTo: "Team_"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "A", got[0].Title)

	got, err = repo.Workplan.List(ctx, repository.WorkplanFilter{AssignedTo: "%"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "C", got[0].Title)
}

func TestWorkplanRepo_UpdateNullsOptionalFields(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()

	wp := newWorkplan("Q1 Review", model.WorkplanPlanned, model.PriorityHigh, testutil.StrPtr("Team Alpha"), 0)
	start := model.NewDate(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	wp.StartDate = &start
	wp.Description = testutil.StrPtr("first quarter")
	require.NoError(t, repo.Workplan.Create(ctx, wp))

	got, err := repo.Workplan.GetByID(ctx, wp.ID)
	require.NoError(t, err)
	require.NotNil(t, got.StartDate)
	assert.Equal(t, "2025-01-01", got.StartDate.String())

	got.Description = nil
	got.AssignedTo = nil
	got.StartDate = nil
	got.Progress = testutil.IntPtr(40)
	got.UpdatedAt = baseTime.Add(time.Hour)
	require.NoError(t, repo.Workplan.Update(ctx, got))

	reloaded, err := repo.Workplan.GetByID(ctx, wp.ID)
	require.NoError(t, err)
	assert.Nil(t, reloaded.Description)
	assert.Nil(t, reloaded.AssignedTo)
	assert.Nil(t, reloaded.StartDate)
	require.NotNil(t, reloaded.Progress)
	assert.Equal(t, 40, *reloaded.Progress)
	assert.True(t, reloaded.CreatedAt.Equal(wp.CreatedAt))
	assert.True(t, reloaded.UpdatedAt.Equal(baseTime.Add(time.Hour)))
}

func TestWorkplanRepo_ProgressCheckConstraint(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()

	wp := newWorkplan("Bad", model.WorkplanPlanned, model.PriorityLow, nil, 0)
	wp.Progress = testutil.IntPtr(101)
	assert.Error(t, repo.Workplan.Create(ctx, wp))
}

func TestWorkplanRepo_DeleteCascadesTasks(t *testing.T) {
	repo, db := setupRepo(t)
	ctx := context.Background()

	wp := newWorkplan("Q1 Review", model.WorkplanActive, model.PriorityHigh, nil, 0)
	require.NoError(t, repo.Workplan.Create(ctx, wp))
	other := newWorkplan("Other", model.WorkplanActive, model.PriorityLow, nil, time.Minute)
	require.NoError(t, repo.Workplan.Create(ctx, other))

	for i, wpID := range []int64{wp.ID, wp.ID, other.ID} {
		task := &model.Task{
			WorkplanID: wpID,
			Title:      "task",
			Status:     model.TaskPending,
			Priority:   model.PriorityMedium,
			CreatedAt:  baseTime.Add(time.Duration(i) * time.Second),
		}
		require.NoError(t, repo.Task.Create(ctx, task))
	}

	require.NoError(t, repo.Workplan.Delete(ctx, wp.ID))

	_, err := repo.Workplan.GetByID(ctx, wp.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	var orphans int64
	require.NoError(t, db.Model(&model.Task{}).Where("workplan_id = ?", wp.ID).Count(&orphans).Error)
	assert.Zero(t, orphans)

	remaining, err := repo.Task.ListByWorkplan(ctx, other.ID)
	require.NoError(t, err)
	assert.Len(t, remaining, 1)

	assert.ErrorIs(t, repo.Workplan.Delete(ctx, wp.ID), gorm.ErrRecordNotFound)
}

func TestWorkplanRepo_StatsAndRecent(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()

	empty, err := repo.Workplan.Stats(ctx)
	require.NoError(t, err)
	assert.Zero(t, empty.Total)
	assert.Zero(t, empty.HighPriority)

	specs := []struct {
		status, priority string
	}{
		{model.WorkplanActive, model.PriorityHigh},
		{model.WorkplanActive, model.PriorityCritical},
		{model.WorkplanCompleted, model.PriorityHigh},
		{model.WorkplanPlanned, model.PriorityLow},
		{model.WorkplanPlanned, model.PriorityMedium},
		{model.WorkplanCancelled, model.PriorityMedium},
	}
	for i, s := range specs {
		wp := newWorkplan("wp", s.status, s.priority, nil, time.Duration(i)*time.Minute)
		require.NoError(t, repo.Workplan.Create(ctx, wp))
	}

	stats, err := repo.Workplan.Stats(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 6, stats.Total)
	assert.EqualValues(t, 2, stats.Active)
	assert.EqualValues(t, 1, stats.Completed)
	assert.EqualValues(t, 2, stats.Planned)
	assert.EqualValues(t, 2, stats.HighPriority, "critical is not counted as high")

	recent, err := repo.Workplan.Recent(ctx, 5)
	require.NoError(t, err)
	require.Len(t, recent, 5)
	assert.Equal(t, model.WorkplanCancelled, recent[0].Status)
}

// ═══════════════════════════════════════════════════════════
// Tasks
// ═══════════════════════════════════════════════════════════

func TestTaskRepo_ScopedToWorkplan(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()

	a := newWorkplan("A", model.WorkplanActive, model.PriorityLow, nil, 0)
	b := newWorkplan("B", model.WorkplanActive, model.PriorityLow, nil, time.Minute)
	require.NoError(t, repo.Workplan.Create(ctx, a))
	require.NoError(t, repo.Workplan.Create(ctx, b))

	task := &model.Task{WorkplanID: a.ID, Title: "Collect data", Status: model.TaskPending, Priority: model.PriorityHigh, CreatedAt: baseTime}
	require.NoError(t, repo.Task.Create(ctx, task))

	_, err := repo.Task.Get(ctx, b.ID, task.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.ErrorIs(t, repo.Task.Delete(ctx, b.ID, task.ID), gorm.ErrRecordNotFound)

	got, err := repo.Task.Get(ctx, a.ID, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "Collect data", got.Title)

	now := baseTime.Add(time.Hour)
	got.Status = model.TaskCompleted
	got.CompletedAt = &now
	require.NoError(t, repo.Task.Update(ctx, got))

	reloaded, err := repo.Task.Get(ctx, a.ID, task.ID)
	require.NoError(t, err)
	assert.Equal(t, model.TaskCompleted, reloaded.Status)
	require.NotNil(t, reloaded.CompletedAt)

	require.NoError(t, repo.Task.Delete(ctx, a.ID, task.ID))
	_, err = repo.Task.Get(ctx, a.ID, task.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestTaskRepo_BatchLookups(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()

	a := newWorkplan("A", model.WorkplanActive, model.PriorityLow, nil, 0)
	b := newWorkplan("B", model.WorkplanActive, model.PriorityLow, nil, time.Minute)
	c := newWorkplan("C", model.WorkplanActive, model.PriorityLow, nil, 2*time.Minute)
	for _, wp := range []*model.Workplan{a, b, c} {
		require.NoError(t, repo.Workplan.Create(ctx, wp))
	}
	for i, wpID := range []int64{a.ID, a.ID, b.ID} {
		task := &model.Task{WorkplanID: wpID, Title: "t", Status: model.TaskPending, Priority: model.PriorityLow, CreatedAt: baseTime.Add(time.Duration(i) * time.Second)}
		require.NoError(t, repo.Task.Create(ctx, task))
	}

	counts, err := repo.Task.CountByWorkplanIDs(ctx, []int64{a.ID, b.ID, c.ID})
	require.NoError(t, err)
	assert.Equal(t, 2, counts[a.ID])
	assert.Equal(t, 1, counts[b.ID])
	assert.Equal(t, 0, counts[c.ID])

	tasks, err := repo.Task.ListByWorkplanIDs(ctx, []int64{a.ID, c.ID})
	require.NoError(t, err)
	assert.Len(t, tasks, 2)

	empty, err := repo.Task.CountByWorkplanIDs(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestTaskRepo_ForeignKeyEnforced(t *testing.T) {
	repo, _ := setupRepo(t)
	task := &model.Task{WorkplanID: 4242, Title: "orphan", Status: model.TaskPending, Priority: model.PriorityLow, CreatedAt: baseTime}
	assert.Error(t, repo.Task.Create(context.Background(), task))
}

// ═══════════════════════════════════════════════════════════
// PAC operations and samples
// ═══════════════════════════════════════════════════════════

func TestOperationRepo_ListFiltersAndOrder(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()

	ops := []*model.PacOperation{
		newOperation("ABC Pharma", model.OperationInspection, model.OperationScheduled, model.PriorityHigh, testutil.StrPtr("John Smith"), baseTime),
		newOperation("XYZ Foods", model.OperationSampling, model.OperationInProgress, model.PriorityMedium, testutil.StrPtr("Sarah Johnson"), baseTime.Add(48*time.Hour)),
		newOperation("MedDevice Corp", model.OperationAudit, model.OperationCompleted, model.PriorityLow, testutil.StrPtr("Mike Chen"), baseTime.Add(24*time.Hour)),
	}
	for _, op := range ops {
		require.NoError(t, repo.Operation.Create(ctx, op))
	}

	all, err := repo.Operation.List(ctx, repository.OperationFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "XYZ Foods", all[0].FacilityName)
	assert.Equal(t, "MedDevice Corp", all[1].FacilityName)
	assert.Equal(t, "ABC Pharma", all[2].FacilityName)

	byInspector, err := repo.Operation.List(ctx, repository.OperationFilter{Inspector: "SMITH"})
	require.NoError(t, err)
	require.Len(t, byInspector, 1)
	assert.Equal(t, "ABC Pharma", byInspector[0].FacilityName)

	mismatch, err := repo.Operation.List(ctx, repository.OperationFilter{Type: model.OperationInspection, Status: model.OperationCompleted})
	require.NoError(t, err)
	assert.Empty(t, mismatch)

	byType, err := repo.Operation.List(ctx, repository.OperationFilter{Type: model.OperationAudit, Priority: model.PriorityLow})
	require.NoError(t, err)
	require.Len(t, byType, 1)
	assert.Equal(t, "MedDevice Corp", byType[0].FacilityName)
}

func TestOperationRepo_StatsAndCascade(t *testing.T) {
	repo, db := setupRepo(t)
	ctx := context.Background()

	ops := []*model.PacOperation{
		newOperation("A", model.OperationInspection, model.OperationScheduled, model.PriorityHigh, nil, baseTime),
		newOperation("B", model.OperationSampling, model.OperationInProgress, model.PriorityCritical, nil, baseTime.Add(time.Hour)),
		newOperation("C", model.OperationAudit, model.OperationCompleted, model.PriorityHigh, nil, baseTime.Add(2*time.Hour)),
		newOperation("D", model.OperationInvestigation, model.OperationCancelled, model.PriorityLow, nil, baseTime.Add(3*time.Hour)),
	}
	for _, op := range ops {
		require.NoError(t, repo.Operation.Create(ctx, op))
	}

	stats, err := repo.Operation.Stats(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 4, stats.Total)
	assert.EqualValues(t, 1, stats.Scheduled)
	assert.EqualValues(t, 1, stats.InProgress)
	assert.EqualValues(t, 1, stats.Completed)
	assert.EqualValues(t, 1, stats.Inspections)
	assert.EqualValues(t, 1, stats.Samplings)
	assert.EqualValues(t, 1, stats.Audits)
	assert.EqualValues(t, 2, stats.HighPriority)

	sample := &model.PacSample{OperationID: ops[1].ID, SampleType: "Food", CollectionDate: baseTime, Status: model.SampleCollected, CreatedAt: baseTime}
	require.NoError(t, repo.Sample.Create(ctx, sample))

	counts, err := repo.Sample.CountByOperationIDs(ctx, []int64{ops[0].ID, ops[1].ID})
	require.NoError(t, err)
	assert.Equal(t, 1, counts[ops[1].ID])
	assert.Equal(t, 0, counts[ops[0].ID])

	require.NoError(t, repo.Operation.Delete(ctx, ops[1].ID))

	var left int64
	require.NoError(t, db.Model(&model.PacSample{}).Where("operation_id = ?", ops[1].ID).Count(&left).Error)
	assert.Zero(t, left)

	_, err = repo.Operation.GetByID(ctx, ops[1].ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestSampleRepo_ScopedToOperation(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()

	op := newOperation("XYZ Foods", model.OperationSampling, model.OperationInProgress, model.PriorityMedium, nil, baseTime)
	other := newOperation("Other", model.OperationSampling, model.OperationInProgress, model.PriorityMedium, nil, baseTime)
	require.NoError(t, repo.Operation.Create(ctx, op))
	require.NoError(t, repo.Operation.Create(ctx, other))

	s := &model.PacSample{OperationID: op.ID, SampleType: "Food", CollectionDate: baseTime, Status: model.SampleCollected, CreatedAt: baseTime}
	require.NoError(t, repo.Sample.Create(ctx, s))

	_, err := repo.Sample.Get(ctx, other.ID, s.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	got, err := repo.Sample.Get(ctx, op.ID, s.ID)
	require.NoError(t, err)
	got.Status = model.SampleTesting
	got.LabID = testutil.StrPtr("LAB-7")
	require.NoError(t, repo.Sample.Update(ctx, got))

	list, err := repo.Sample.ListByOperation(ctx, op.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, model.SampleTesting, list[0].Status)
	assert.Equal(t, "LAB-7", *list[0].LabID)

	require.NoError(t, repo.Sample.Delete(ctx, op.ID, s.ID))
	assert.ErrorIs(t, repo.Sample.Delete(ctx, op.ID, s.ID), gorm.ErrRecordNotFound)
}

// ═══════════════════════════════════════════════════════════
// Transactions
// ═══════════════════════════════════════════════════════════

func TestTransaction_Rollback(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()

	boom := errors.New("boom")
	err := repo.Transaction(ctx, func(txRepo *repository.Repository) error {
		wp := newWorkplan("rolled back", model.WorkplanPlanned, model.PriorityLow, nil, 0)
		if err := txRepo.Workplan.Create(ctx, wp); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	all, err := repo.Workplan.List(ctx, repository.WorkplanFilter{})
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestTransaction_Commit(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()

	var id int64
	err := repo.Transaction(ctx, func(txRepo *repository.Repository) error {
		wp := newWorkplan("committed", model.WorkplanPlanned, model.PriorityLow, nil, 0)
		if err := txRepo.Workplan.Create(ctx, wp); err != nil {
			return err
		}
		id = wp.ID
		return txRepo.Task.Create(ctx, &model.Task{WorkplanID: wp.ID, Title: "t", Status: model.TaskPending, Priority: model.PriorityLow, CreatedAt: baseTime})
	})
	require.NoError(t, err)

	tasks, err := repo.Task.ListByWorkplan(ctx, id)
	require.NoError(t, err)
	assert.Len(t, tasks, 1)
}
