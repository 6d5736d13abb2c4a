package models

type UserModel struct {
	ID           uint    `gorm:"primaryKey"`
	UserID       string  `gorm:"uniqueIndex;size:20;not null"`
	Matricule    *string `gorm:"uniqueIndex;size:20"`
	Name         string  `gorm:"size:100;not null"`
	Email        *string `gorm:"uniqueIndex;size:120"`
	PasswordHash string  `gorm:"size:255;not null"`
	Service      string  `gorm:"size:20;not null;index"`
	Role         string  `gorm:"size:20;not null;index"`
	IsActive     bool    `gorm:"not null;default:true;index"`
	CreatedAt    int64   `gorm:"autoCreateTime:milli;not null"`
	UpdatedAt    int64   `gorm:"autoUpdateTime:milli;not null"`
}

func (UserModel) TableName() string {
	return "users"
}
