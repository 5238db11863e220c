package migration

import (
	"context"

	"github.com/playden-lab/backend/internal/entity"
	"github.com/playden-lab/backend/pkg/xcontext"
)

// migrate0002 speeds up listing the comments of a post by their parent.
func migrate0002(ctx context.Context) error {
	db := xcontext.DB(ctx)
	if db.Migrator().HasIndex(&entity.Comment{}, "idx_comments_post_parent") {
		return nil
	}

	return db.Exec("CREATE INDEX idx_comments_post_parent ON comments (post_id, parent_id)").Error
}
