package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Tsathyapriya80/fwfps-field-work-planning-system/internal/model"
	"github.com/Tsathyapriya80/fwfps-field-work-planning-system/internal/repository"
)

var errStoreDown = errors.New("store unavailable")

// fixedClock returns a clock that starts at t and advances by step on
// every call.
func fixedClock(t time.Time, step time.Duration) func() time.Time {
	cur := t.Add(-step)
	return func() time.Time {
		cur = cur.Add(step)
		return cur
	}
}

// ── Mock UserRepository ──

type mockUserRepo struct {
	users  map[int64]*model.User
	nextID int64
	err    error
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[int64]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if m.err != nil {
		return m.err
	}
	for _, u := range m.users {
		if u.Username == user.Username || u.Email == user.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	m.nextID++
	user.ID = m.nextID
	cp := *user
	m.users[user.ID] = &cp
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id int64) (*model.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	if u, ok := m.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByUsername(_ context.Context, username string) (*model.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, u := range m.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) List(_ context.Context) ([]model.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	var result []model.User
	for _, u := range m.users {
		result = append(result, *u)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID > result[j].ID })
	return result, nil
}

func (m *mockUserRepo) UpdateLastLogin(_ context.Context, id int64, at time.Time) error {
	u, ok := m.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.LastLogin = &at
	return nil
}

func (m *mockUserRepo) Count(_ context.Context) (int64, error) {
	return int64(len(m.users)), nil
}

// ── Mock WorkplanRepository ──

type mockWorkplanRepo struct {
	workplans map[int64]*model.Workplan
	tasks     *mockTaskRepo
	nextID    int64
	err       error
}

func newMockWorkplanRepo(tasks *mockTaskRepo) *mockWorkplanRepo {
	return &mockWorkplanRepo{workplans: make(map[int64]*model.Workplan), tasks: tasks}
}

func (m *mockWorkplanRepo) Create(_ context.Context, wp *model.Workplan) error {
	if m.err != nil {
		return m.err
	}
	m.nextID++
	wp.ID = m.nextID
	cp := *wp
	m.workplans[wp.ID] = &cp
	return nil
}

func (m *mockWorkplanRepo) GetByID(_ context.Context, id int64) (*model.Workplan, error) {
	if m.err != nil {
		return nil, m.err
	}
	if wp, ok := m.workplans[id]; ok {
		cp := *wp
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockWorkplanRepo) List(_ context.Context, f repository.WorkplanFilter) ([]model.Workplan, error) {
	if m.err != nil {
		return nil, m.err
	}
	var result []model.Workplan
	for _, wp := range m.workplans {
		if f.Status != "" && wp.Status != f.Status {
			continue
		}
		if f.Priority != "" && wp.Priority != f.Priority {
			continue
		}
		if f.AssignedTo != "" && (wp.AssignedTo == nil ||
			!strings.Contains(*wp.AssignedTo, f.AssignedTo)) {
			continue
		}
		result = append(result, *wp)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID > result[j].ID })
	return result, nil
}

func (m *mockWorkplanRepo) Recent(ctx context.Context, limit int) ([]model.Workplan, error) {
	all, err := m.List(ctx, repository.WorkplanFilter{})
	if err != nil {
		return nil, err
	}
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (m *mockWorkplanRepo) Update(_ context.Context, wp *model.Workplan) error {
	if m.err != nil {
		return m.err
	}
	cp := *wp
	m.workplans[wp.ID] = &cp
	return nil
}

func (m *mockWorkplanRepo) Delete(_ context.Context, id int64) error {
	if m.err != nil {
		return m.err
	}
	if _, ok := m.workplans[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.workplans, id)
	for tid, t := range m.tasks.tasks {
		if t.WorkplanID == id {
			delete(m.tasks.tasks, tid)
		}
	}
	return nil
}

func (m *mockWorkplanRepo) Stats(_ context.Context) (*repository.WorkplanStats, error) {
	if m.err != nil {
		return nil, m.err
	}
	s := &repository.WorkplanStats{}
	for _, wp := range m.workplans {
		s.Total++
		switch wp.Status {
		case model.WorkplanActive:
			s.Active++
		case model.WorkplanCompleted:
			s.Completed++
		case model.WorkplanPlanned:
			s.Planned++
		}
		if wp.Priority == model.PriorityHigh {
			s.HighPriority++
		}
	}
	return s, nil
}

// ── Mock TaskRepository ──

type mockTaskRepo struct {
	tasks  map[int64]*model.Task
	nextID int64
}

func newMockTaskRepo() *mockTaskRepo {
	return &mockTaskRepo{tasks: make(map[int64]*model.Task)}
}

func (m *mockTaskRepo) Create(_ context.Context, task *model.Task) error {
	m.nextID++
	task.ID = m.nextID
	cp := *task
	m.tasks[task.ID] = &cp
	return nil
}

func (m *mockTaskRepo) Get(_ context.Context, workplanID, taskID int64) (*model.Task, error) {
	if t, ok := m.tasks[taskID]; ok && t.WorkplanID == workplanID {
		cp := *t
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTaskRepo) ListByWorkplan(_ context.Context, workplanID int64) ([]model.Task, error) {
	return m.collect(map[int64]bool{workplanID: true}), nil
}

func (m *mockTaskRepo) ListByWorkplanIDs(_ context.Context, ids []int64) ([]model.Task, error) {
	set := make(map[int64]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return m.collect(set), nil
}

func (m *mockTaskRepo) CountByWorkplanIDs(_ context.Context, ids []int64) (map[int64]int, error) {
	set := make(map[int64]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	counts := make(map[int64]int)
	for _, t := range m.tasks {
		if set[t.WorkplanID] {
			counts[t.WorkplanID]++
		}
	}
	return counts, nil
}

func (m *mockTaskRepo) Update(_ context.Context, task *model.Task) error {
	cp := *task
	m.tasks[task.ID] = &cp
	return nil
}

func (m *mockTaskRepo) Delete(_ context.Context, workplanID, taskID int64) error {
	if t, ok := m.tasks[taskID]; ok && t.WorkplanID == workplanID {
		delete(m.tasks, taskID)
		return nil
	}
	return gorm.ErrRecordNotFound
}

func (m *mockTaskRepo) collect(set map[int64]bool) []model.Task {
	var result []model.Task
	for _, t := range m.tasks {
		if set[t.WorkplanID] {
			result = append(result, *t)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

// ── Mock OperationRepository ──

type mockOperationRepo struct {
	ops     map[int64]*model.PacOperation
	samples *mockSampleRepo
	nextID  int64
	err     error
}

func newMockOperationRepo(samples *mockSampleRepo) *mockOperationRepo {
	return &mockOperationRepo{ops: make(map[int64]*model.PacOperation), samples: samples}
}

func (m *mockOperationRepo) Create(_ context.Context, op *model.PacOperation) error {
	if m.err != nil {
		return m.err
	}
	m.nextID++
	op.ID = m.nextID
	cp := *op
	m.ops[op.ID] = &cp
	return nil
}

func (m *mockOperationRepo) GetByID(_ context.Context, id int64) (*model.PacOperation, error) {
	if m.err != nil {
		return nil, m.err
	}
	if op, ok := m.ops[id]; ok {
		cp := *op
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockOperationRepo) List(_ context.Context, f repository.OperationFilter) ([]model.PacOperation, error) {
	if m.err != nil {
		return nil, m.err
	}
	var result []model.PacOperation
	for _, op := range m.ops {
		if f.Type != "" && op.OperationType != f.Type {
			continue
		}
		if f.Status != "" && op.Status != f.Status {
			continue
		}
		if f.Priority != "" && op.Priority != f.Priority {
			continue
		}
		if f.Inspector != "" && (op.Inspector == nil ||
			!strings.Contains(strings.ToLower(*op.Inspector), strings.ToLower(f.Inspector))) {
			continue
		}
		result = append(result, *op)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].OperationDate.After(result[j].OperationDate) })
	return result, nil
}

func (m *mockOperationRepo) Recent(_ context.Context, limit int) ([]model.PacOperation, error) {
	var result []model.PacOperation
	for _, op := range m.ops {
		result = append(result, *op)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID > result[j].ID })
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (m *mockOperationRepo) Update(_ context.Context, op *model.PacOperation) error {
	if m.err != nil {
		return m.err
	}
	cp := *op
	m.ops[op.ID] = &cp
	return nil
}

func (m *mockOperationRepo) Delete(_ context.Context, id int64) error {
	if _, ok := m.ops[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.ops, id)
	for sid, s := range m.samples.samples {
		if s.OperationID == id {
			delete(m.samples.samples, sid)
		}
	}
	return nil
}

func (m *mockOperationRepo) Stats(_ context.Context) (*repository.OperationStats, error) {
	s := &repository.OperationStats{}
	for _, op := range m.ops {
		s.Total++
		switch op.Status {
		case model.OperationScheduled:
			s.Scheduled++
		case model.OperationInProgress:
			s.InProgress++
		case model.OperationCompleted:
			s.Completed++
		}
		switch op.OperationType {
		case model.OperationInspection:
			s.Inspections++
		case model.OperationSampling:
			s.Samplings++
		case model.OperationAudit:
			s.Audits++
		}
		if op.Priority == model.PriorityHigh {
			s.HighPriority++
		}
	}
	return s, nil
}

// ── Mock SampleRepository ──

type mockSampleRepo struct {
	samples map[int64]*model.PacSample
	nextID  int64
}

func newMockSampleRepo() *mockSampleRepo {
	return &mockSampleRepo{samples: make(map[int64]*model.PacSample)}
}

func (m *mockSampleRepo) Create(_ context.Context, s *model.PacSample) error {
	m.nextID++
	s.ID = m.nextID
	cp := *s
	m.samples[s.ID] = &cp
	return nil
}

func (m *mockSampleRepo) Get(_ context.Context, operationID, sampleID int64) (*model.PacSample, error) {
	if s, ok := m.samples[sampleID]; ok && s.OperationID == operationID {
		cp := *s
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSampleRepo) ListByOperation(_ context.Context, operationID int64) ([]model.PacSample, error) {
	return m.collect(map[int64]bool{operationID: true}), nil
}

func (m *mockSampleRepo) ListByOperationIDs(_ context.Context, ids []int64) ([]model.PacSample, error) {
	set := make(map[int64]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return m.collect(set), nil
}

func (m *mockSampleRepo) CountByOperationIDs(_ context.Context, ids []int64) (map[int64]int, error) {
	set := make(map[int64]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	counts := make(map[int64]int)
	for _, s := range m.samples {
		if set[s.OperationID] {
			counts[s.OperationID]++
		}
	}
	return counts, nil
}

func (m *mockSampleRepo) Update(_ context.Context, s *model.PacSample) error {
	cp := *s
	m.samples[s.ID] = &cp
	return nil
}

func (m *mockSampleRepo) Delete(_ context.Context, operationID, sampleID int64) error {
	if s, ok := m.samples[sampleID]; ok && s.OperationID == operationID {
		delete(m.samples, sampleID)
		return nil
	}
	return gorm.ErrRecordNotFound
}

func (m *mockSampleRepo) collect(set map[int64]bool) []model.PacSample {
	var result []model.PacSample
	for _, s := range m.samples {
		if set[s.OperationID] {
			result = append(result, *s)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

// ── setup ──

type mockRepos struct {
	user      *mockUserRepo
	workplan  *mockWorkplanRepo
	task      *mockTaskRepo
	operation *mockOperationRepo
	sample    *mockSampleRepo
}

func newMockRepository() (*repository.Repository, *mockRepos) {
	tasks := newMockTaskRepo()
	samples := newMockSampleRepo()
	m := &mockRepos{
		user:      newMockUserRepo(),
		workplan:  newMockWorkplanRepo(tasks),
		task:      tasks,
		operation: newMockOperationRepo(samples),
		sample:    samples,
	}
	return &repository.Repository{
		User:      m.user,
		Workplan:  m.workplan,
		Task:      m.task,
		Operation: m.operation,
		Sample:    m.sample,
	}, m
}

func nopLogger() *zap.Logger { return zap.NewNop() }
