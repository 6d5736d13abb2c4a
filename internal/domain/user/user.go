// Package user holds the account aggregate. Accounts are soft-deleted by
// deactivation so closed issues keep valid reporter and assignee
// references.
package user

import (
	"fmt"
	"strings"
	"time"

	"mainta/internal/shared/authorization"
)

type User struct {
	id           uint
	userID       string
	matricule    *string
	name         string
	email        *string
	passwordHash string
	service      authorization.Service
	role         authorization.Role
	isActive     bool
	createdAt    time.Time
	updatedAt    time.Time
}

func NewUser(
	userID string,
	name string,
	passwordHash string,
	role authorization.Role,
	service authorization.Service,
) (*User, error) {
	userID = strings.TrimSpace(userID)
	if len(userID) == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	name = strings.TrimSpace(name)
	if len(name) == 0 {
		return nil, fmt.Errorf("name is required")
	}
	if len(passwordHash) == 0 {
		return nil, fmt.Errorf("password hash is required")
	}
	if !role.IsValid() {
		return nil, fmt.Errorf("invalid role: %s", role)
	}
	if !service.IsValid() {
		return nil, fmt.Errorf("invalid service: %s", service)
	}

	now := time.Now()
	return &User{
		userID:       userID,
		name:         name,
		passwordHash: passwordHash,
		role:         role,
		service:      service,
		isActive:     true,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

func ReconstructUser(
	id uint,
	userID string,
	matricule *string,
	name string,
	email *string,
	passwordHash string,
	role authorization.Role,
	service authorization.Service,
	isActive bool,
	createdAt, updatedAt time.Time,
) (*User, error) {
	if id == 0 {
		return nil, fmt.Errorf("user ID cannot be zero")
	}
	if len(userID) == 0 {
		return nil, fmt.Errorf("user public ID is required")
	}
	if !role.IsValid() {
		return nil, fmt.Errorf("invalid role: %s", role)
	}
	if !service.IsValid() {
		return nil, fmt.Errorf("invalid service: %s", service)
	}

	return &User{
		id:           id,
		userID:       userID,
		matricule:    matricule,
		name:         name,
		email:        email,
		passwordHash: passwordHash,
		role:         role,
		service:      service,
		isActive:     isActive,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}, nil
}

func (u *User) ID() uint {
	return u.id
}

func (u *User) UserID() string {
	return u.userID
}

func (u *User) Matricule() *string {
	return u.matricule
}

func (u *User) Name() string {
	return u.name
}

func (u *User) Email() *string {
	return u.email
}

func (u *User) PasswordHash() string {
	return u.passwordHash
}

func (u *User) Role() authorization.Role {
	return u.role
}

func (u *User) Service() authorization.Service {
	return u.service
}

func (u *User) IsActive() bool {
	return u.isActive
}

func (u *User) CreatedAt() time.Time {
	return u.createdAt
}

func (u *User) UpdatedAt() time.Time {
	return u.updatedAt
}

func (u *User) SetID(id uint) error {
	if u.id != 0 {
		return fmt.Errorf("user ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("user ID cannot be zero")
	}
	u.id = id
	return nil
}

func (u *User) SetMatricule(matricule string) {
	matricule = strings.TrimSpace(matricule)
	if matricule == "" {
		u.matricule = nil
	} else {
		u.matricule = &matricule
	}
	u.updatedAt = time.Now()
}

func (u *User) SetEmail(email string) {
	email = strings.TrimSpace(email)
	if email == "" {
		u.email = nil
	} else {
		u.email = &email
	}
	u.updatedAt = time.Now()
}

func (u *User) Rename(name string) error {
	name = strings.TrimSpace(name)
	if len(name) == 0 {
		return fmt.Errorf("name is required")
	}
	u.name = name
	u.updatedAt = time.Now()
	return nil
}

func (u *User) ChangeRole(role authorization.Role) error {
	if !role.IsValid() {
		return fmt.Errorf("invalid role: %s", role)
	}
	u.role = role
	u.updatedAt = time.Now()
	return nil
}

func (u *User) ChangeService(service authorization.Service) error {
	if !service.IsValid() {
		return fmt.Errorf("invalid service: %s", service)
	}
	u.service = service
	u.updatedAt = time.Now()
	return nil
}

func (u *User) ChangePasswordHash(hash string) error {
	if len(hash) == 0 {
		return fmt.Errorf("password hash cannot be empty")
	}
	u.passwordHash = hash
	u.updatedAt = time.Now()
	return nil
}

func (u *User) Deactivate() {
	u.isActive = false
	u.updatedAt = time.Now()
}

func (u *User) Activate() {
	u.isActive = true
	u.updatedAt = time.Now()
}

// Actor converts the account into the identity used by permission checks.
func (u *User) Actor() authorization.Actor {
	return authorization.Actor{
		ID:      u.id,
		UserID:  u.userID,
		Role:    u.role,
		Service: u.service,
		Active:  u.isActive,
	}
}
