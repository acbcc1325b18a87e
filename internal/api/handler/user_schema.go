package handler

import "github.com/mongotech/users-api/internal/core/domain"

// createUserRequest is the payload for POST /api/v1/users. The id is
// optional: when absent the store assigns one. Name bounds are distinct
// per field on purpose.
type createUserRequest struct {
	ID        string `json:"_id,omitempty"`
	FirstName string `json:"first_name" validate:"required,min=1,max=50"`
	LastName  string `json:"last_name" validate:"required,min=2,max=100"`
	Role      string `json:"role" validate:"required,oneof='simple mortal' admin"`
	Password  string `json:"password" validate:"required"`
}

// updateUserRequest is the partial payload for PUT /api/v1/users/admin/:id.
// Nil fields are dropped before the write.
type updateUserRequest struct {
	FirstName *string `json:"first_name" validate:"omitempty,min=1,max=50"`
	LastName  *string `json:"last_name" validate:"omitempty,min=2,max=100"`
	Role      *string `json:"role" validate:"omitempty,oneof='simple mortal' admin"`
	IsActive  *bool   `json:"is_active"`
	LastLogin *string `json:"last_login"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// userResponse is the read shape of a user record. The credential hash
// stays out of every read endpoint; only the 201 create body carries it.
type userResponse struct {
	ID        string `json:"_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"`
	IsActive  bool   `json:"is_active"`
	CreatedAt string `json:"created_at,omitempty"`
	LastLogin string `json:"last_login,omitempty"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      u.Role,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		LastLogin: u.LastLogin,
	}
}

func toUserResponses(users []domain.User) []userResponse {
	out := make([]userResponse, 0, len(users))
	for i := range users {
		out = append(out, toUserResponse(&users[i]))
	}
	return out
}
