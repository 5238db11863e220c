package migration

import (
	"context"

	"github.com/playden-lab/backend/internal/entity"
	"github.com/playden-lab/backend/pkg/xcontext"
)

// migrate0000 creates every table.
func migrate0000(ctx context.Context) error {
	return xcontext.DB(ctx).AutoMigrate(
		&entity.User{},
		&entity.Follower{},
		&entity.Community{},
		&entity.CommunityMember{},
		&entity.Post{},
		&entity.Comment{},
		&entity.Reaction{},
		&entity.Game{},
		&entity.LibraryItem{},
		&entity.GameList{},
		&entity.GameListItem{},
		&entity.CatalogToken{},
		&entity.Achievement{},
		&entity.UserAchievement{},
	)
}
