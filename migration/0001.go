package migration

import (
	"context"

	"github.com/playden-lab/backend/internal/entity"
	"github.com/playden-lab/backend/pkg/xcontext"
	"gorm.io/gorm/clause"
)

// migrate0001 seeds the achievements unlocked by relationship counts.
func migrate0001(ctx context.Context) error {
	achievements := []entity.Achievement{
		{
			Name:        "SOCIAL_BUTTERFLY",
			Description: "Follow 5 players",
			Kind:        entity.FollowKindName,
			Threshold:   5,
		},
		{
			Name:        "COMMUNITY_REGULAR",
			Description: "Join 5 communities",
			Kind:        entity.MemberKindName,
			Threshold:   5,
		},
		{
			Name:        "COLLECTOR",
			Description: "Add 5 games to your library",
			Kind:        entity.LibraryKindName,
			Threshold:   5,
		},
	}

	return xcontext.DB(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&achievements).Error
}
