// Package handler contains the HTTP handlers for the delivery layer.
package handler

import (
	"time"

	"userhub/internal/domain/entity"
)

// userResponse is the client-facing projection of a user. The password hash
// never leaves the service.
type userResponse struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Age       *int      `json:"age,omitempty"`
	Roles     []string  `json:"roles"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

func newUserResponse(user *entity.User) *userResponse {
	return &userResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Age:       user.Age,
		Roles:     user.Roles.ToStrings(),
		IsActive:  user.IsActive,
		CreatedAt: user.CreatedAt,
	}
}

func newUserListResponse(users []*entity.User) []*userResponse {
	out := make([]*userResponse, len(users))
	for i, u := range users {
		out[i] = newUserResponse(u)
	}

	return out
}
