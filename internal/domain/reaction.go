package domain

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/playden-lab/backend/internal/domain/reaction"
	"github.com/playden-lab/backend/internal/entity"
	"github.com/playden-lab/backend/internal/model"
	"github.com/playden-lab/backend/pkg/pubsub"
	"github.com/playden-lab/backend/pkg/xcontext"
)

const ReactionTopic = "reaction"

// ReactionEvent is published after every applied like or dislike.
type ReactionEvent struct {
	UserID     int64  `json:"user_id"`
	TargetID   int64  `json:"target_id"`
	TargetType string `json:"target_type"`
	State      string `json:"state"`
}

type ReactionDomain interface {
	Like(context.Context, *model.ReactRequest) (*model.ReactResponse, error)
	Dislike(context.Context, *model.ReactRequest) (*model.ReactResponse, error)
	GetLikers(context.Context, *model.GetReactorsRequest) (*model.GetReactorsResponse, error)
	GetDislikers(context.Context, *model.GetReactorsRequest) (*model.GetReactorsResponse, error)
}

type reactionDomain struct {
	reactionMachine reaction.Machine
	publisher       pubsub.Publisher
}

// NewReactionDomain creates the domain, publisher can be nil.
func NewReactionDomain(reactionMachine reaction.Machine, publisher pubsub.Publisher) *reactionDomain {
	return &reactionDomain{
		reactionMachine: reactionMachine,
		publisher:       publisher,
	}
}

func (d *reactionDomain) Like(ctx context.Context, req *model.ReactRequest) (*model.ReactResponse, error) {
	return d.react(ctx, req, d.reactionMachine.ApplyLike)
}

func (d *reactionDomain) Dislike(ctx context.Context, req *model.ReactRequest) (*model.ReactResponse, error) {
	return d.react(ctx, req, d.reactionMachine.ApplyDislike)
}

func (d *reactionDomain) GetLikers(
	ctx context.Context, req *model.GetReactorsRequest,
) (*model.GetReactorsResponse, error) {
	return d.reactors(ctx, req, d.reactionMachine.ListLikers)
}

func (d *reactionDomain) GetDislikers(
	ctx context.Context, req *model.GetReactorsRequest,
) (*model.GetReactorsResponse, error) {
	return d.reactors(ctx, req, d.reactionMachine.ListDislikers)
}

type applyFunc func(ctx context.Context, userID, targetID int64, targetType entity.ReactionEntityType) (reaction.State, error)

func (d *reactionDomain) react(
	ctx context.Context, req *model.ReactRequest, apply applyFunc,
) (*model.ReactResponse, error) {
	userID, err := requireLogin(ctx)
	if err != nil {
		return nil, err
	}

	targetType, err := reaction.ParseTargetType(req.TargetType)
	if err != nil {
		return nil, err
	}

	state, err := apply(ctx, userID, req.TargetID, targetType)
	if err != nil {
		return nil, err
	}

	counts, err := d.reactionMachine.Count(ctx, req.TargetID, targetType)
	if err != nil {
		return nil, err
	}

	d.publish(ctx, ReactionEvent{
		UserID:     userID,
		TargetID:   req.TargetID,
		TargetType: string(targetType),
		State:      string(state),
	})

	return &model.ReactResponse{
		State:    string(state),
		Likes:    counts.Likes,
		Dislikes: counts.Dislikes,
	}, nil
}

type listFunc func(
	ctx context.Context, targetID int64, targetType entity.ReactionEntityType, offset, limit int,
) ([]entity.User, error)

func (d *reactionDomain) reactors(
	ctx context.Context, req *model.GetReactorsRequest, list listFunc,
) (*model.GetReactorsResponse, error) {
	if err := checkPagination(ctx, &req.Pagination); err != nil {
		return nil, err
	}

	targetType, err := reaction.ParseTargetType(req.TargetType)
	if err != nil {
		return nil, err
	}

	users, err := list(ctx, req.TargetID, targetType, req.Offset, req.Limit)
	if err != nil {
		return nil, err
	}

	return &model.GetReactorsResponse{Users: model.ConvertUsers(users)}, nil
}

func (d *reactionDomain) publish(ctx context.Context, event ReactionEvent) {
	if d.publisher == nil {
		return
	}

	b, err := json.Marshal(event)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot marshal reaction event: %v", err)
		return
	}

	err = d.publisher.Publish(ctx, ReactionTopic, &pubsub.Pack{
		Key: []byte(strconv.FormatInt(event.TargetID, 10)),
		Msg: b,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot publish reaction event: %v", err)
	}
}
