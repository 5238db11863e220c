package entity

import "database/sql"

type Community struct {
	Base
	Handle      string `gorm:"uniqueIndex;size:64"`
	DisplayName string
	Description string
	LogoURL     string
	GameID      sql.NullInt64
	CreatedBy   int64 `gorm:"index"`

	CreatedByUser User `gorm:"foreignKey:CreatedBy"`
}

type CommunityMember struct {
	Edge
	UserID      int64 `gorm:"primaryKey;autoIncrement:false"`
	CommunityID int64 `gorm:"primaryKey;autoIncrement:false;index"`

	User      User      `gorm:"foreignKey:UserID"`
	Community Community `gorm:"foreignKey:CommunityID"`
}
