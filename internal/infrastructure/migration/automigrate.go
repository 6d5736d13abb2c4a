package migration

import (
	"mainta/internal/infrastructure/persistence/models"
)

func AutoMigrateModels() []interface{} {
	return []interface{}{
		&models.UserModel{},
		&models.MachineModel{},
		&models.IssueModel{},
		&models.NoteModel{},
	}
}
