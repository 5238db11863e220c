package reaction

import (
	"context"
	"errors"
	"time"

	"github.com/playden-lab/backend/internal/entity"
	"github.com/playden-lab/backend/pkg/errorx"
	"github.com/playden-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type State string

const (
	None     State = "NONE"
	Liked    State = "LIKED"
	Disliked State = "DISLIKED"
)

type Counts struct {
	Likes    int64
	Dislikes int64
}

type Machine interface {
	ApplyLike(ctx context.Context, userID, targetID int64, targetType entity.ReactionEntityType) (State, error)
	ApplyDislike(ctx context.Context, userID, targetID int64, targetType entity.ReactionEntityType) (State, error)

	ListLikers(ctx context.Context, targetID int64, targetType entity.ReactionEntityType, offset, limit int) ([]entity.User, error)
	ListDislikers(ctx context.Context, targetID int64, targetType entity.ReactionEntityType, offset, limit int) ([]entity.User, error)

	State(ctx context.Context, userID, targetID int64, targetType entity.ReactionEntityType) (State, error)
	Count(ctx context.Context, targetID int64, targetType entity.ReactionEntityType) (Counts, error)

	States(ctx context.Context, userID int64, targetIDs []int64, targetType entity.ReactionEntityType) (map[int64]State, error)
	Counts(ctx context.Context, targetIDs []int64, targetType entity.ReactionEntityType) (map[int64]Counts, error)
}

type machine struct {
	resolvers map[entity.ReactionEntityType]TargetResolver
}

func NewMachine(resolvers map[entity.ReactionEntityType]TargetResolver) *machine {
	return &machine{resolvers: resolvers}
}

func (m *machine) ApplyLike(
	ctx context.Context, userID, targetID int64, targetType entity.ReactionEntityType,
) (State, error) {
	return m.apply(ctx, userID, targetID, targetType, true)
}

func (m *machine) ApplyDislike(
	ctx context.Context, userID, targetID int64, targetType entity.ReactionEntityType,
) (State, error) {
	return m.apply(ctx, userID, targetID, targetType, false)
}

// apply inserts the reaction if there is none, deletes it if it has the same
// polarity and flips it in place otherwise.
func (m *machine) apply(
	ctx context.Context, userID, targetID int64, targetType entity.ReactionEntityType, isLike bool,
) (State, error) {
	if err := m.checkTarget(ctx, targetID, targetType); err != nil {
		return "", err
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	var rows []entity.Reaction
	err := m.reaction(ctx, userID, targetID, targetType).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Limit(1).
		Find(&rows).Error
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get reaction: %v", err)
		return "", errorx.Unknown
	}

	var state State
	switch {
	case len(rows) == 0:
		if err := m.insert(ctx, userID, targetID, targetType, isLike); err != nil {
			return "", err
		}
		state = toState(isLike)

	case rows[0].IsLike == isLike:
		err = m.reaction(ctx, userID, targetID, targetType).Delete(&entity.Reaction{}).Error
		state = None

	default:
		err = m.reaction(ctx, userID, targetID, targetType).Update("is_like", isLike).Error
		state = toState(isLike)
	}

	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot apply reaction: %v", err)
		return "", errorx.Unknown
	}

	if _, err := xcontext.WithCommitDBTransaction(ctx); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot commit reaction: %v", err)
		return "", errorx.Unknown
	}

	return state, nil
}

// insert creates the reaction row. Losing the race against another request of
// the same user on the same target violates the unique index.
func (m *machine) insert(
	ctx context.Context, userID, targetID int64, targetType entity.ReactionEntityType, isLike bool,
) error {
	err := xcontext.DB(ctx).Create(&entity.Reaction{
		UserID:     userID,
		EntityID:   targetID,
		EntityType: targetType,
		IsLike:     isLike,
		CreatedAt:  time.Now(),
	}).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errorx.New(errorx.AlreadyExists, "The reaction is being changed by another request")
		}

		xcontext.Logger(ctx).Errorf("Cannot insert reaction: %v", err)
		return errorx.Unknown
	}

	return nil
}

func (m *machine) ListLikers(
	ctx context.Context, targetID int64, targetType entity.ReactionEntityType, offset, limit int,
) ([]entity.User, error) {
	return m.listUsers(ctx, targetID, targetType, true, offset, limit)
}

func (m *machine) ListDislikers(
	ctx context.Context, targetID int64, targetType entity.ReactionEntityType, offset, limit int,
) ([]entity.User, error) {
	return m.listUsers(ctx, targetID, targetType, false, offset, limit)
}

func (m *machine) listUsers(
	ctx context.Context,
	targetID int64,
	targetType entity.ReactionEntityType,
	isLike bool,
	offset, limit int,
) ([]entity.User, error) {
	if err := m.checkTarget(ctx, targetID, targetType); err != nil {
		return nil, err
	}

	// Querying the user model filters out deactivated accounts.
	var users []entity.User
	err := xcontext.DB(ctx).Model(&entity.User{}).
		Joins("JOIN reactions ON reactions.user_id = users.id").
		Where("reactions.entity_id = ? AND reactions.entity_type = ? AND reactions.is_like = ?",
			targetID, targetType, isLike).
		Order("reactions.created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&users).Error
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot list reacting users: %v", err)
		return nil, errorx.Unknown
	}

	return users, nil
}

func (m *machine) State(
	ctx context.Context, userID, targetID int64, targetType entity.ReactionEntityType,
) (State, error) {
	states, err := m.States(ctx, userID, []int64{targetID}, targetType)
	if err != nil {
		return "", err
	}

	return states[targetID], nil
}

func (m *machine) Count(
	ctx context.Context, targetID int64, targetType entity.ReactionEntityType,
) (Counts, error) {
	counts, err := m.Counts(ctx, []int64{targetID}, targetType)
	if err != nil {
		return Counts{}, err
	}

	return counts[targetID], nil
}

// States returns the reaction state of a user on each target, targets without
// reaction are mapped to None.
func (m *machine) States(
	ctx context.Context, userID int64, targetIDs []int64, targetType entity.ReactionEntityType,
) (map[int64]State, error) {
	result := make(map[int64]State, len(targetIDs))
	for _, id := range targetIDs {
		result[id] = None
	}

	if userID == 0 || len(targetIDs) == 0 {
		return result, nil
	}

	var rows []entity.Reaction
	err := xcontext.DB(ctx).
		Where("user_id = ? AND entity_type = ? AND entity_id IN (?)", userID, targetType, targetIDs).
		Find(&rows).Error
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get reactions of user: %v", err)
		return nil, errorx.Unknown
	}

	for _, r := range rows {
		result[r.EntityID] = toState(r.IsLike)
	}

	return result, nil
}

func (m *machine) Counts(
	ctx context.Context, targetIDs []int64, targetType entity.ReactionEntityType,
) (map[int64]Counts, error) {
	result := make(map[int64]Counts, len(targetIDs))
	if len(targetIDs) == 0 {
		return result, nil
	}

	var rows []struct {
		EntityID int64
		IsLike   bool
		Total    int64
	}
	err := xcontext.DB(ctx).Model(&entity.Reaction{}).
		Select("entity_id, is_like, COUNT(*) AS total").
		Where("entity_type = ? AND entity_id IN (?)", targetType, targetIDs).
		Group("entity_id, is_like").
		Scan(&rows).Error
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count reactions: %v", err)
		return nil, errorx.Unknown
	}

	for _, row := range rows {
		c := result[row.EntityID]
		if row.IsLike {
			c.Likes = row.Total
		} else {
			c.Dislikes = row.Total
		}
		result[row.EntityID] = c
	}

	return result, nil
}

func (m *machine) checkTarget(ctx context.Context, targetID int64, targetType entity.ReactionEntityType) error {
	resolver, ok := m.resolvers[targetType]
	if !ok {
		return errorx.New(errorx.InvalidTargetType, "Invalid target type %s", targetType)
	}

	live, err := resolver.IsLive(ctx, targetID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot find %s: %v", targetName(targetType), err)
		return errorx.Unknown
	}

	if !live {
		return errorx.New(errorx.NotFound, "Not found %s", targetName(targetType))
	}

	return nil
}

func (m *machine) reaction(
	ctx context.Context, userID, targetID int64, targetType entity.ReactionEntityType,
) *gorm.DB {
	return xcontext.DB(ctx).Model(&entity.Reaction{}).
		Where("user_id = ? AND entity_id = ? AND entity_type = ?", userID, targetID, targetType)
}

func toState(isLike bool) State {
	if isLike {
		return Liked
	}

	return Disliked
}
