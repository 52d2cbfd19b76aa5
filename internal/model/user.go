package model

import (
	"time"

	"github.com/google/uuid"
)

type UserRegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UserLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type UserResponse struct {
	Id             uuid.UUID `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	EmailConfirmed bool      `json:"emailConfirmed"`
	DateCreated    time.Time `json:"dateCreated"`
	DateModified   time.Time `json:"dateModified"`
}

type User struct {
	Id             uuid.UUID
	Username       string
	Email          string
	Password       string
	EmailConfirmed bool
	DateCreated    time.Time
	DateModified   time.Time
}

func (user User) Response() UserResponse {
	return UserResponse{
		Id:             user.Id,
		Username:       user.Username,
		Email:          user.Email,
		EmailConfirmed: user.EmailConfirmed,
		DateCreated:    user.DateCreated,
		DateModified:   user.DateModified,
	}
}
