package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/msomdec/interview-room/internal/domain"
)

// Fallback display values for interviewers missing from the directory.
const (
	UnknownInterviewerName     = "Unknown Interviewer"
	UnknownInterviewerInitials = "UI"
)

// DisplayInfo is what a comment shows about its author.
type DisplayInfo struct {
	Name     string
	Image    string
	Initials string
}

// DirectoryService lists users for rendering comment authors.
type DirectoryService struct {
	users domain.UserRepository
}

func NewDirectoryService(users domain.UserRepository) *DirectoryService {
	return &DirectoryService{users: users}
}

func (s *DirectoryService) List(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// Resolve finds the interviewer in users. A miss returns the fixed
// placeholder instead of failing.
func Resolve(users []domain.User, interviewerID string) DisplayInfo {
	for _, u := range users {
		if u.ExternalID != interviewerID {
			continue
		}
		info := DisplayInfo{Name: u.DisplayName, Image: u.ImageURL, Initials: Initials(u.DisplayName)}
		if info.Name == "" {
			info.Name = UnknownInterviewerName
		}
		if info.Initials == "" {
			info.Initials = UnknownInterviewerInitials
		}
		return info
	}
	return DisplayInfo{Name: UnknownInterviewerName, Initials: UnknownInterviewerInitials}
}

// Initials joins the first letter of each word of name.
func Initials(name string) string {
	var b strings.Builder
	for _, word := range strings.Fields(name) {
		r, _ := utf8.DecodeRuneInString(word)
		b.WriteRune(r)
	}
	return b.String()
}
