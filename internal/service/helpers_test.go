package service_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/msomdec/interview-room/internal/domain"
	"github.com/msomdec/interview-room/internal/repository/sqlite"
	"github.com/msomdec/interview-room/internal/service"
)

const testJWTSecret = "test-secret-key-for-unit-tests-0123456789"

func newTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := sqlite.New(dbPath)
	if err != nil {
		t.Fatalf("New DB: %v", err)
	}
	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func newTestAuthService(t *testing.T) (*service.AuthService, *sqlite.DB) {
	t.Helper()
	db := newTestDB(t)
	// Use cost 4 for fast tests.
	return service.NewAuthService(db.Users(), testJWTSecret, 4), db
}

func register(t *testing.T, auth *service.AuthService, email, name string, role domain.Role) *domain.User {
	t.Helper()
	user, err := auth.Register(context.Background(), service.RegisterInput{
		Email:           email,
		DisplayName:     name,
		Role:            role,
		Password:        "password123",
		ConfirmPassword: "password123",
	})
	if err != nil {
		t.Fatalf("Register %s: %v", email, err)
	}
	return user
}

func scheduleInterview(t *testing.T, db *sqlite.DB, candidateID string) *domain.Interview {
	t.Helper()
	iv := &domain.Interview{
		Title:       "Pairing session",
		CandidateID: candidateID,
		CallID:      candidateID + "-call-" + time.Now().Format("150405.000000000"),
		Status:      domain.InterviewStatusUpcoming,
		StartTime:   time.Now().Add(time.Hour),
	}
	if err := db.Interviews().Create(context.Background(), iv); err != nil {
		t.Fatalf("create interview: %v", err)
	}
	return iv
}
