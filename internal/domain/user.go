package domain

import (
	"context"
	"time"
)

// Role classifies an account. Candidates are interviewed; interviewers and
// admins run interviews and leave feedback.
type Role string

const (
	RoleCandidate   Role = "candidate"
	RoleInterviewer Role = "interviewer"
	RoleAdmin       Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleCandidate, RoleInterviewer, RoleAdmin:
		return true
	}
	return false
}

// User represents a registered user of the application.
type User struct {
	ID           int64
	ExternalID   string // Stable public identifier, e.g. "user_3f2a..."
	Email        string
	DisplayName  string
	ImageURL     string
	Role         Role
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Identity returns the read-only view of the user shared with other components.
func (u *User) Identity() *Identity {
	return &Identity{
		ID:       u.ExternalID,
		Name:     u.DisplayName,
		ImageURL: u.ImageURL,
		Role:     u.Role,
	}
}

// UserRepository defines persistence operations for users.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByExternalID(ctx context.Context, externalID string) (*User, error)
	List(ctx context.Context) ([]User, error)
}
