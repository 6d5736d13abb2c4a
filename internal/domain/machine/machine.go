// Package machine holds the equipment registry aggregate. Machines are
// referenced by issues; a machine with open history cannot be removed.
package machine

import (
	"fmt"
	"strings"
	"time"
)

type Status string

const (
	StatusActive      Status = "active"
	StatusInactive    Status = "inactive"
	StatusMaintenance Status = "maintenance"
)

func NewStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid machine status: %s", s)
	}
	return status, nil
}

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusInactive, StatusMaintenance:
		return true
	}
	return false
}

type Machine struct {
	id        uint
	publicID  string
	name      string
	location  string
	status    Status
	createdAt time.Time
	updatedAt time.Time
}

func NewMachine(name, location string) (*Machine, error) {
	name = strings.TrimSpace(name)
	if len(name) == 0 {
		return nil, fmt.Errorf("machine name is required")
	}
	if len(name) > 100 {
		return nil, fmt.Errorf("machine name exceeds maximum length of 100 characters")
	}

	now := time.Now()
	return &Machine{
		name:      name,
		location:  strings.TrimSpace(location),
		status:    StatusActive,
		createdAt: now,
		updatedAt: now,
	}, nil
}

func ReconstructMachine(
	id uint,
	publicID string,
	name string,
	location string,
	status Status,
	createdAt, updatedAt time.Time,
) (*Machine, error) {
	if id == 0 {
		return nil, fmt.Errorf("machine ID cannot be zero")
	}
	if len(publicID) == 0 {
		return nil, fmt.Errorf("machine public ID is required")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid machine status")
	}

	return &Machine{
		id:        id,
		publicID:  publicID,
		name:      name,
		location:  location,
		status:    status,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}, nil
}

func (m *Machine) ID() uint {
	return m.id
}

func (m *Machine) PublicID() string {
	return m.publicID
}

func (m *Machine) Name() string {
	return m.name
}

func (m *Machine) Location() string {
	return m.location
}

func (m *Machine) Status() Status {
	return m.status
}

func (m *Machine) CreatedAt() time.Time {
	return m.createdAt
}

func (m *Machine) UpdatedAt() time.Time {
	return m.updatedAt
}

func (m *Machine) SetID(id uint) error {
	if m.id != 0 {
		return fmt.Errorf("machine ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("machine ID cannot be zero")
	}
	m.id = id
	return nil
}

func (m *Machine) SetPublicID(publicID string) error {
	if len(m.publicID) > 0 {
		return fmt.Errorf("machine public ID is already set")
	}
	if len(publicID) == 0 {
		return fmt.Errorf("machine public ID cannot be empty")
	}
	m.publicID = publicID
	return nil
}

func (m *Machine) Rename(name string) error {
	name = strings.TrimSpace(name)
	if len(name) == 0 {
		return fmt.Errorf("machine name is required")
	}
	m.name = name
	m.updatedAt = time.Now()
	return nil
}

func (m *Machine) Relocate(location string) {
	m.location = strings.TrimSpace(location)
	m.updatedAt = time.Now()
}

func (m *Machine) ChangeStatus(status Status) error {
	if !status.IsValid() {
		return fmt.Errorf("invalid machine status: %s", status)
	}
	m.status = status
	m.updatedAt = time.Now()
	return nil
}
