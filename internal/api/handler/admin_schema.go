package handler

import "time"

type setRoleRequest struct {
	UserID string `json:"user_id" validate:"required"`
	Role   string `json:"role"    validate:"required,oneof=user admin super-admin"`
}

type banUserRequest struct {
	UserID           string `json:"user_id" validate:"required"`
	Reason           string `json:"reason"`
	ExpiresInSeconds int64  `json:"expires_in_seconds" validate:"gte=0"`
}

type userIDRequest struct {
	UserID string `json:"user_id" validate:"required"`
}

type userResponse struct {
	ID         string     `json:"id"`
	Name       string     `json:"name,omitempty"`
	Email      string     `json:"email"`
	Role       string     `json:"role"`
	Banned     bool       `json:"banned"`
	BanReason  string     `json:"ban_reason,omitempty"`
	BanExpires *time.Time `json:"ban_expires,omitempty"`
	CreatedAt  *time.Time `json:"created_at,omitempty"`
}

type listUsersResponse struct {
	Users []userResponse `json:"users"`
}

type statusResponse struct {
	Status string `json:"status"`
}
