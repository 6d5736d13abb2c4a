package mappers

import (
	"mainta/internal/domain/machine"
	"mainta/internal/infrastructure/persistence/models"
)

// MachineMapper handles the conversion between Machine domain entities and persistence models.
type MachineMapper interface {
	ToModel(m *machine.Machine) *models.MachineModel
	ToDomain(model *models.MachineModel) (*machine.Machine, error)
}

type MachineMapperImpl struct{}

func NewMachineMapper() MachineMapper {
	return &MachineMapperImpl{}
}

func (mm *MachineMapperImpl) ToModel(m *machine.Machine) *models.MachineModel {
	return &models.MachineModel{
		ID:        m.ID(),
		PublicID:  m.PublicID(),
		Name:      m.Name(),
		Location:  m.Location(),
		Status:    m.Status().String(),
		CreatedAt: m.CreatedAt().UnixMilli(),
		UpdatedAt: m.UpdatedAt().UnixMilli(),
	}
}

func (mm *MachineMapperImpl) ToDomain(model *models.MachineModel) (*machine.Machine, error) {
	status, err := machine.NewStatus(model.Status)
	if err != nil {
		return nil, err
	}

	return machine.ReconstructMachine(
		model.ID,
		model.PublicID,
		model.Name,
		model.Location,
		status,
		millisToTime(model.CreatedAt),
		millisToTime(model.UpdatedAt),
	)
}
