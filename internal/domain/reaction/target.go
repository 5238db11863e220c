package reaction

import (
	"context"

	"github.com/playden-lab/backend/internal/entity"
	"github.com/playden-lab/backend/pkg/enum"
	"github.com/playden-lab/backend/pkg/errorx"
)

// TargetResolver tells whether a reaction target exists and is not soft
// deleted.
type TargetResolver interface {
	IsLive(ctx context.Context, id int64) (bool, error)
}

type ResolverFunc func(ctx context.Context, id int64) (bool, error)

func (f ResolverFunc) IsLive(ctx context.Context, id int64) (bool, error) {
	return f(ctx, id)
}

func ParseTargetType(s string) (entity.ReactionEntityType, error) {
	t, err := enum.ToEnum[entity.ReactionEntityType](s)
	if err != nil {
		return "", errorx.New(errorx.InvalidTargetType, "Invalid target type %s", s)
	}

	return t, nil
}

func targetName(t entity.ReactionEntityType) string {
	switch t {
	case entity.ReactionComment:
		return "comment"
	case entity.ReactionCommunityPost:
		return "post"
	default:
		return "target"
	}
}
