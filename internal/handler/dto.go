package handler

import (
	"time"

	"github.com/msomdec/interview-room/internal/domain"
)

// UserDTO is the JSON representation of a user.
type UserDTO struct {
	ID          string `json:"id"`
	Email       string `json:"email,omitempty"`
	DisplayName string `json:"displayName"`
	ImageURL    string `json:"imageUrl"`
	Role        string `json:"role"`
	CreatedAt   string `json:"createdAt"`
}

func toUserDTO(u *domain.User) UserDTO {
	return UserDTO{
		ID:          u.ExternalID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		ImageURL:    u.ImageURL,
		Role:        string(u.Role),
		CreatedAt:   u.CreatedAt.Format(time.RFC3339),
	}
}

// toDirectoryDTOs omits emails; the directory is visible to every reviewer.
func toDirectoryDTOs(users []domain.User) []UserDTO {
	dtos := make([]UserDTO, len(users))
	for i := range users {
		dtos[i] = toUserDTO(&users[i])
		dtos[i].Email = ""
	}
	return dtos
}

// InterviewDTO is the JSON representation of an interview.
type InterviewDTO struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	CandidateID string `json:"candidateId"`
	CallID      string `json:"callId"`
	Status      string `json:"status"`
	StartTime   string `json:"startTime"`
	CreatedAt   string `json:"createdAt"`
}

func toInterviewDTO(iv *domain.Interview) InterviewDTO {
	return InterviewDTO{
		ID:          iv.ID,
		Title:       iv.Title,
		Description: iv.Description,
		CandidateID: iv.CandidateID,
		CallID:      iv.CallID,
		Status:      string(iv.Status),
		StartTime:   iv.StartTime.Format(time.RFC3339),
		CreatedAt:   iv.CreatedAt.Format(time.RFC3339),
	}
}

func toInterviewDTOs(interviews []domain.Interview) []InterviewDTO {
	dtos := make([]InterviewDTO, len(interviews))
	for i := range interviews {
		dtos[i] = toInterviewDTO(&interviews[i])
	}
	return dtos
}

// CommentDTO is the JSON representation of a comment.
type CommentDTO struct {
	ID            int64  `json:"id"`
	InterviewID   int64  `json:"interviewId"`
	InterviewerID string `json:"interviewerId"`
	Content       string `json:"content"`
	Rating        int    `json:"rating"`
	CreatedAt     string `json:"createdAt"`
}

func toCommentDTO(c *domain.Comment) CommentDTO {
	return CommentDTO{
		ID:            c.ID,
		InterviewID:   c.InterviewID,
		InterviewerID: c.InterviewerID,
		Content:       c.Content,
		Rating:        c.Rating,
		CreatedAt:     c.CreatedAt.Format(time.RFC3339Nano),
	}
}

func toCommentDTOs(comments []domain.Comment) []CommentDTO {
	dtos := make([]CommentDTO, len(comments))
	for i := range comments {
		dtos[i] = toCommentDTO(&comments[i])
	}
	return dtos
}
