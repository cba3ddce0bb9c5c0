package handler

import (
	"time"

	"github.com/vidshare/platform/internal/core/domain"
)

type registerRequest struct {
	Username string `json:"username" validate:"required,max=64"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type registerResponse struct {
	Message string `json:"message"`
	UserID  string `json:"user_id"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token     string           `json:"token"`
	ExpiresAt time.Time        `json:"expires_at"`
	User      *domain.Identity `json:"user"`
}

// updateUserRequest is a partial update: omitted fields are left unchanged.
type updateUserRequest struct {
	Username *string `json:"username" validate:"omitempty,max=64"`
	Email    *string `json:"email"    validate:"omitempty,email"`
}

// setRoleRequest.Role is checked by the service, after existence and permission.
type setRoleRequest struct {
	Role string `json:"role"`
}

// updateVideoRequest is a partial update: omitted fields are left unchanged.
type updateVideoRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

type attachCodeRequest struct {
	Code string `json:"code"`
}

type commentRequest struct {
	Text string `json:"text"`
}

type updateCommentRequest struct {
	Text *string `json:"text"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type errorResponse struct {
	Error string `json:"error"`
}
