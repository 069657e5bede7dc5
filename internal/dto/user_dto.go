package dto

import "reviewhub/internal/models"

// UserResponse: user representation returned by the account endpoints.
type UserResponse struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Bio       string `json:"bio"`
	Role      string `json:"role"`
}

// CreateUserRequest: admin-side user creation.
type CreateUserRequest struct {
	Username  string  `json:"username" binding:"required,max=150"`
	Email     string  `json:"email" binding:"required,email,max=254"`
	FirstName *string `json:"first_name" binding:"omitempty,max=150"`
	LastName  *string `json:"last_name" binding:"omitempty,max=150"`
	Bio       *string `json:"bio"`
	Role      *string `json:"role" binding:"omitempty,oneof=user moderator admin"`
}

// UpdateUserRequest: admin-side partial update, nil means leave untouched.
type UpdateUserRequest struct {
	Username  *string `json:"username" binding:"omitempty,max=150"`
	Email     *string `json:"email" binding:"omitempty,email,max=254"`
	FirstName *string `json:"first_name" binding:"omitempty,max=150"`
	LastName  *string `json:"last_name" binding:"omitempty,max=150"`
	Bio       *string `json:"bio"`
	Role      *string `json:"role" binding:"omitempty,oneof=user moderator admin"`
}

// UpdateMeRequest: self-service profile update. Role is deliberately
// absent so callers cannot escalate themselves.
type UpdateMeRequest struct {
	Username  *string `json:"username" binding:"omitempty,max=150"`
	Email     *string `json:"email" binding:"omitempty,email,max=254"`
	FirstName *string `json:"first_name" binding:"omitempty,max=150"`
	LastName  *string `json:"last_name" binding:"omitempty,max=150"`
	Bio       *string `json:"bio"`
}

func FromUser(u *models.User) UserResponse {
	resp := UserResponse{
		Username: u.Username,
		Email:    u.Email,
		Role:     string(u.Role),
	}
	if u.FirstName != nil {
		resp.FirstName = *u.FirstName
	}
	if u.LastName != nil {
		resp.LastName = *u.LastName
	}
	if u.Bio != nil {
		resp.Bio = *u.Bio
	}
	return resp
}

func FromUsers(users []models.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, FromUser(&users[i]))
	}
	return out
}

func (r *CreateUserRequest) ToModel() *models.User {
	u := &models.User{
		Username:  r.Username,
		Email:     r.Email,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Bio:       r.Bio,
		Role:      models.RoleUser,
	}
	if r.Role != nil {
		u.Role = models.Role(*r.Role)
	}
	return u
}

func (r *UpdateUserRequest) ApplyTo(u *models.User) {
	if r.Username != nil {
		u.Username = *r.Username
	}
	if r.Email != nil {
		u.Email = *r.Email
	}
	if r.FirstName != nil {
		u.FirstName = r.FirstName
	}
	if r.LastName != nil {
		u.LastName = r.LastName
	}
	if r.Bio != nil {
		u.Bio = r.Bio
	}
	if r.Role != nil {
		u.Role = models.Role(*r.Role)
	}
}

func (r *UpdateMeRequest) ApplyTo(u *models.User) {
	if r.Username != nil {
		u.Username = *r.Username
	}
	if r.Email != nil {
		u.Email = *r.Email
	}
	if r.FirstName != nil {
		u.FirstName = r.FirstName
	}
	if r.LastName != nil {
		u.LastName = r.LastName
	}
	if r.Bio != nil {
		u.Bio = r.Bio
	}
}
