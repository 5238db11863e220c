package testutil

import (
	"context"
	"database/sql"
	"time"

	"github.com/playden-lab/backend/internal/entity"
	"github.com/playden-lab/backend/pkg/xcontext"
	"golang.org/x/crypto/bcrypt"
)

// FixturePassword is the password of every fixture user.
const FixturePassword = "correct-horse"

var (
	// User1 created Community1 and Post1.
	User1 = entity.User{
		Base:        entity.Base{ID: 1001},
		Username:    "alice",
		Email:       "alice@playden.test",
		DisplayName: "Alice",
		Role:        entity.RoleUser,
	}

	// User2 wrote Comment1.
	User2 = entity.User{
		Base:        entity.Base{ID: 1002},
		Username:    "bob",
		Email:       "bob@playden.test",
		DisplayName: "Bob",
		Role:        entity.RoleUser,
	}

	User3 = entity.User{
		Base:        entity.Base{ID: 1003},
		Username:    "carol",
		Email:       "carol@playden.test",
		DisplayName: "Carol",
		Role:        entity.RoleAdmin,
	}

	// DeactivatedUser is soft deleted.
	DeactivatedUser = entity.User{
		Base:        entity.Base{ID: 1004},
		Username:    "dave",
		Email:       "dave@playden.test",
		DisplayName: "Dave",
		Role:        entity.RoleUser,
	}

	Community1 = entity.Community{
		Base:        entity.Base{ID: 2001},
		Handle:      "speedrunners",
		DisplayName: "Speedrunners",
		Description: "Any percent glitchless runs",
		GameID:      sql.NullInt64{Int64: Game1.ID, Valid: true},
		CreatedBy:   User1.ID,
	}

	Post1 = entity.Post{
		Base:        entity.Base{ID: 3001},
		CommunityID: Community1.ID,
		AuthorID:    User1.ID,
		Title:       "Any% world record",
		Content:     "New route skips the second dungeon",
	}

	Comment1 = entity.Comment{
		Base:     entity.Base{ID: 4001},
		PostID:   Post1.ID,
		AuthorID: User2.ID,
		Content:  "Insane skip",
	}

	Game1 = entity.Game{
		ID:         1942,
		Name:       "The Witcher 3: Wild Hunt",
		Slug:       "the-witcher-3-wild-hunt",
		Summary:    "Open world role playing game",
		Genres:     entity.Array[string]{"Role-playing (RPG)", "Adventure"},
		Rating:     92.5,
		ReleasedAt: sql.NullTime{Time: time.Date(2015, 5, 19, 0, 0, 0, 0, time.UTC), Valid: true},
	}

	Game2 = entity.Game{
		ID:      1020,
		Name:    "Grand Theft Auto V",
		Slug:    "grand-theft-auto-v",
		Summary: "Open world action",
		Genres:  entity.Array[string]{"Shooter"},
		Rating:  89,
	}
)

// CreateFixtureDb inserts the fixture rows. User1 is an active member of
// Community1.
func CreateFixtureDb(ctx context.Context) {
	hash, err := bcrypt.GenerateFromPassword([]byte(FixturePassword), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}

	db := xcontext.DB(ctx)
	for _, u := range []entity.User{User1, User2, User3, DeactivatedUser} {
		u.PasswordHash = string(hash)
		if err := db.Create(&u).Error; err != nil {
			panic(err)
		}
	}

	if err := db.Delete(&entity.User{}, DeactivatedUser.ID).Error; err != nil {
		panic(err)
	}

	rows := []any{
		&[]entity.Game{Game1, Game2},
		ptr(Community1),
		&entity.CommunityMember{
			Edge:        entity.Edge{CreatedAt: time.Now()},
			UserID:      User1.ID,
			CommunityID: Community1.ID,
		},
		ptr(Post1),
		ptr(Comment1),
	}

	for _, row := range rows {
		if err := db.Create(row).Error; err != nil {
			panic(err)
		}
	}
}

func ptr[T any](v T) *T {
	return &v
}
