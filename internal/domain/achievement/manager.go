package achievement

import (
	"context"
	"sync/atomic"

	"github.com/playden-lab/backend/internal/common"
	"github.com/playden-lab/backend/internal/entity"
	"github.com/playden-lab/backend/internal/repository"
	"github.com/playden-lab/backend/pkg/xcontext"
	"github.com/puzpuzpuz/xsync"
)

// Manager unlocks the achievements of a relationship kind whose threshold is
// reached.
type Manager struct {
	achievementRepo     repository.AchievementRepository
	userAchievementRepo repository.UserAchievementRepository

	// Definitions never change at runtime, they are loaded once.
	definitions *xsync.MapOf[string, []entity.Achievement]
	loaded      atomic.Bool
}

func NewManager(
	achievementRepo repository.AchievementRepository,
	userAchievementRepo repository.UserAchievementRepository,
) *Manager {
	return &Manager{
		achievementRepo:     achievementRepo,
		userAchievementRepo: userAchievementRepo,
		definitions:         xsync.NewMapOf[[]entity.Achievement](),
	}
}

func (m *Manager) NotifyCountReached(ctx context.Context, subjectID int64, kind string, count int64) error {
	definitions, err := m.definitionsOf(ctx, kind)
	if err != nil {
		return err
	}

	for _, achievement := range definitions {
		if count < achievement.Threshold {
			continue
		}

		unlocked, err := m.userAchievementRepo.Create(ctx, &entity.UserAchievement{
			UserID:        subjectID,
			AchievementID: achievement.ID,
		})
		if err != nil {
			return err
		}

		if unlocked {
			xcontext.Logger(ctx).Infof("User %d unlocked achievement %s", subjectID, achievement.Name)
			common.PromCounters[common.AchievementUnlockedTotal].WithLabelValues(achievement.Name).Inc()
		}
	}

	return nil
}

func (m *Manager) GetAll(ctx context.Context) ([]entity.Achievement, error) {
	if err := m.load(ctx); err != nil {
		return nil, err
	}

	var result []entity.Achievement
	m.definitions.Range(func(_ string, achievements []entity.Achievement) bool {
		result = append(result, achievements...)
		return true
	})

	return result, nil
}

func (m *Manager) definitionsOf(ctx context.Context, kind string) ([]entity.Achievement, error) {
	if err := m.load(ctx); err != nil {
		return nil, err
	}

	definitions, _ := m.definitions.Load(kind)
	return definitions, nil
}

func (m *Manager) load(ctx context.Context) error {
	if m.loaded.Load() {
		return nil
	}

	achievements, err := m.achievementRepo.GetAll(ctx)
	if err != nil {
		return err
	}

	byKind := map[string][]entity.Achievement{}
	for _, a := range achievements {
		byKind[a.Kind] = append(byKind[a.Kind], a)
	}

	for kind, definitions := range byKind {
		m.definitions.Store(kind, definitions)
	}

	m.loaded.Store(true)
	return nil
}
