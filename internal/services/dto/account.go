package dto

import (
	"time"

	"github.com/chaitali929/coremodeling/internal/models"
)

// AccountResponse is the public shape of an account. It never carries credentials.
type AccountResponse struct {
	ID          string                `json:"id"`
	Name        string                `json:"name"`
	Email       string                `json:"email"`
	Role        models.AccountRole    `json:"role"`
	Status      *models.AccountStatus `json:"status,omitempty"`
	Contact     string                `json:"contact,omitempty"`
	Gender      string                `json:"gender,omitempty"`
	DOB         string                `json:"dob,omitempty"`
	City        string                `json:"city,omitempty"`
	State       string                `json:"state,omitempty"`
	Country     string                `json:"country,omitempty"`
	Language    string                `json:"language,omitempty"`
	Description string                `json:"description,omitempty"`
	Identity    string                `json:"identity,omitempty"`
	Photos      []string              `json:"photos"`
	Videos      []string              `json:"videos"`
	ProfilePic  *string               `json:"profilePic,omitempty"`
	CreatedAt   time.Time             `json:"createdAt"`
}

func NewAccountResponse(a *models.Account) *AccountResponse {
	return &AccountResponse{
		ID:          a.ID,
		Name:        a.Name,
		Email:       a.Email,
		Role:        a.Role,
		Status:      a.Status,
		Contact:     a.Contact,
		Gender:      a.Gender,
		DOB:         a.DOB,
		City:        a.City,
		State:       a.State,
		Country:     a.Country,
		Language:    a.Language,
		Description: a.Description,
		Identity:    a.Identity,
		Photos:      nonNil(a.Photos),
		Videos:      nonNil(a.Videos),
		ProfilePic:  a.ProfilePic,
		CreatedAt:   a.CreatedAt,
	}
}

func NewAccountResponses(accounts []models.Account) []*AccountResponse {
	out := make([]*AccountResponse, 0, len(accounts))
	for i := range accounts {
		out = append(out, NewAccountResponse(&accounts[i]))
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

type SetStatusRequest struct {
	Status models.AccountStatus `json:"status" validate:"required"`
}

type SetStatusResponse struct {
	Message string           `json:"message"`
	Artist  *AccountResponse `json:"artist"`
}

type RegisterRequest struct {
	Name     string             `json:"name" validate:"required,min=2,max=100"`
	Email    string             `json:"email" validate:"required,email"`
	Password string             `json:"password" validate:"required,min=8"`
	Role     models.AccountRole `json:"role" validate:"required,is-registrable-role"`
	Contact  string             `json:"contact" validate:"omitempty,max=30"`
	Gender   string             `json:"gender" validate:"omitempty,is-gender"`
	City     string             `json:"city" validate:"omitempty,max=100"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	Token   string           `json:"token"`
	Account *AccountResponse `json:"account"`
}
