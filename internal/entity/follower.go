package entity

type Follower struct {
	Edge
	FollowerID  int64 `gorm:"primaryKey;autoIncrement:false"`
	FollowingID int64 `gorm:"primaryKey;autoIncrement:false;index"`

	Follower  User `gorm:"foreignKey:FollowerID"`
	Following User `gorm:"foreignKey:FollowingID"`
}
