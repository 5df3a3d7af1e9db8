package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"
)

// Repository aggregates all repositories.
type Repository struct {
	User      UserRepository
	Workplan  WorkplanRepository
	Task      TaskRepository
	Operation OperationRepository
	Sample    SampleRepository

	db *gorm.DB
}

// NewRepository creates the GORM-backed repositories.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		User:      NewUserRepo(db),
		Workplan:  NewWorkplanRepo(db),
		Task:      NewTaskRepo(db),
		Operation: NewOperationRepo(db),
		Sample:    NewSampleRepo(db),
		db:        db,
	}
}

// Transaction runs fn with repositories bound to one database
// transaction. fn must only use the repositories it is given.
func (r *Repository) Transaction(ctx context.Context, fn func(txRepo *Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepository(tx))
	})
}

// containsExpr is a case-sensitive "col contains ?" condition. SQLite's
// LIKE ignores ASCII case, so both dialects use a position function.
func containsExpr(db *gorm.DB, col string) string {
	if db.Dialector.Name() == "postgres" {
		return "strpos(" + col + ", ?) > 0"
	}
	return "instr(" + col + ", ?) > 0"
}

// containsPattern builds a lowercase LIKE pattern matching s anywhere.
// Use it with `LOWER(col) LIKE ? ESCAPE '\'`.
func containsPattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(strings.ToLower(s)) + "%"
}

type parentCount struct {
	ParentID int64
	N        int
}

func countsToMap(rows []parentCount) map[int64]int {
	m := make(map[int64]int, len(rows))
	for _, r := range rows {
		m[r.ParentID] = r.N
	}
	return m
}
