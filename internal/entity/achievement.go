package entity

import "time"

// Names of the relationship kinds, achievements are unlocked by their counts.
const (
	FollowKindName  = "follow"
	MemberKindName  = "member"
	LibraryKindName = "library"
)

type Achievement struct {
	ID          int64  `gorm:"primaryKey"`
	Name        string `gorm:"uniqueIndex;size:64"`
	Description string
	IconURL     string

	// Kind is the relationship kind whose count unlocks this achievement.
	Kind      string `gorm:"index;size:32"`
	Threshold int64
}

type UserAchievement struct {
	UserID        int64 `gorm:"primaryKey;autoIncrement:false"`
	AchievementID int64 `gorm:"primaryKey;autoIncrement:false"`
	CreatedAt     time.Time

	Achievement Achievement `gorm:"foreignKey:AchievementID"`
}

type Migration struct {
	Version   int `gorm:"primaryKey;autoIncrement:false"`
	CreatedAt time.Time
}
