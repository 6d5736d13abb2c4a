package models

type MachineModel struct {
	ID        uint   `gorm:"primaryKey"`
	PublicID  string `gorm:"uniqueIndex;size:50;not null"`
	Name      string `gorm:"size:100;not null"`
	Location  string `gorm:"size:100"`
	Status    string `gorm:"size:20;not null;index"`
	CreatedAt int64  `gorm:"autoCreateTime:milli;not null"`
	UpdatedAt int64  `gorm:"autoUpdateTime:milli;not null"`
}

func (MachineModel) TableName() string {
	return "machines"
}
