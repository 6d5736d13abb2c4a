// Package dto defines the transport representations of accounts. The
// password hash never leaves the application layer.
package dto

import (
	"time"

	"mainta/internal/domain/user"
)

type UserDTO struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Matricule *string   `json:"matricule,omitempty"`
	Email     *string   `json:"email,omitempty"`
	Role      string    `json:"role"`
	Service   string    `json:"service"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

func FromUser(u *user.User) UserDTO {
	return UserDTO{
		ID:        u.UserID(),
		Name:      u.Name(),
		Matricule: u.Matricule(),
		Email:     u.Email(),
		Role:      string(u.Role()),
		Service:   string(u.Service()),
		IsActive:  u.IsActive(),
		CreatedAt: u.CreatedAt(),
	}
}
