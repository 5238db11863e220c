package entity

import (
	"time"

	"github.com/playden-lab/backend/pkg/enum"
)

type ReactionEntityType string

var (
	ReactionComment       = enum.New(ReactionEntityType("COMMENT"))
	ReactionCommunityPost = enum.New(ReactionEntityType("COMMUNITY_POST"))
)

// Reaction has no tombstone, removing a reaction deletes its row.
type Reaction struct {
	UserID     int64              `gorm:"primaryKey;autoIncrement:false"`
	EntityID   int64              `gorm:"primaryKey;autoIncrement:false;index:idx_reactions_entity,priority:1"`
	EntityType ReactionEntityType `gorm:"primaryKey;size:32;index:idx_reactions_entity,priority:2"`
	IsLike     bool
	CreatedAt  time.Time

	User User `gorm:"foreignKey:UserID"`
}
