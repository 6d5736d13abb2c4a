package dto

import (
	"time"

	"mainta/internal/domain/machine"
)

type MachineDTO struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Location  string    `json:"location"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

func FromMachine(m *machine.Machine) MachineDTO {
	return MachineDTO{
		ID:        m.PublicID(),
		Name:      m.Name(),
		Location:  m.Location(),
		Status:    m.Status().String(),
		CreatedAt: m.CreatedAt(),
	}
}
