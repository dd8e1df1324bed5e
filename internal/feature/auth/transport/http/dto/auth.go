// Package dto defines data transfer objects for the auth feature's HTTP transport layer.
package dto

import (
	"encoding/base64"
	"time"

	"recipe_backend/internal/feature/auth/domain/entity"
)

// RegisterReq is the body of POST /users/register.
// It binds from JSON or multipart form fields; the picture arrives as a separate file part.
type RegisterReq struct {
	Name     string `json:"name" form:"name"`
	Surname  string `json:"surname" form:"surname"`
	Email    string `json:"email" form:"email" binding:"required,email"`
	Username string `json:"username" form:"username" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

// LoginReq は/users/loginエンドポイントのリクエストボディを表します。
type LoginReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UpdateProfileReq is the body of PUT /users/profile. Empty fields are left unchanged.
type UpdateProfileReq struct {
	Name        string `json:"name"`
	Email       string `json:"email" binding:"omitempty,email"`
	Password    string `json:"password"`
	NewPassword string `json:"newPassword"`
}

// UserRes is the public view of a user. It never carries the password hash.
type UserRes struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Surname        string    `json:"surname"`
	Email          string    `json:"email"`
	Username       string    `json:"username"`
	Role           string    `json:"role"`
	ProfilePicture []byte    `json:"profilePicture,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// ProfileRes is the reduced view returned by GET /users/profile.
type ProfileRes struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	ProfilePicture string `json:"profilePicture,omitempty"`
}

type UserEnvelope struct {
	Message string  `json:"message"`
	User    UserRes `json:"user"`
}

type ProfileEnvelope struct {
	Message string     `json:"message"`
	User    ProfileRes `json:"user"`
}

type LoginRes struct {
	Token string  `json:"token"`
	User  UserRes `json:"user"`
}

// NewUserRes converts a user entity to its public view.
func NewUserRes(u *entity.User) UserRes {
	return UserRes{
		ID:             u.ID,
		Name:           u.Name,
		Surname:        u.Surname,
		Email:          u.Email,
		Username:       u.Username,
		Role:           u.Role,
		ProfilePicture: u.ProfilePicture,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}

// NewProfileRes converts a user entity to the profile view, base64 encoding the picture.
func NewProfileRes(u *entity.User) ProfileRes {
	res := ProfileRes{Name: u.Name, Email: u.Email}
	if len(u.ProfilePicture) > 0 {
		res.ProfilePicture = base64.StdEncoding.EncodeToString(u.ProfilePicture)
	}
	return res
}
