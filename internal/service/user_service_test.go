package service

import (
	"context"
	"errors"
	"testing"
)

func TestUserList_NewestFirst(t *testing.T) {
	repo, mocks := newMockRepository()
	svc := NewUserService(repo, nopLogger())

	seedUser(t, mocks, "admin", "admin123")
	seedUser(t, mocks, "analyst", "analyst123")

	users, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users))
	}
	if users[0].Username != "analyst" {
		t.Errorf("expected analyst first, got %s", users[0].Username)
	}
}

func TestUserList_Empty(t *testing.T) {
	repo, _ := newMockRepository()
	svc := NewUserService(repo, nopLogger())

	users, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if users == nil || len(users) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", users)
	}
}

func TestUserList_StoreError(t *testing.T) {
	repo, mocks := newMockRepository()
	mocks.user.err = errStoreDown
	svc := NewUserService(repo, nopLogger())

	if _, err := svc.List(context.Background()); !errors.Is(err, errStoreDown) {
		t.Errorf("expected store error, got %v", err)
	}
}
