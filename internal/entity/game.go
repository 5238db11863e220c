package entity

import (
	"database/sql"
	"time"

	"github.com/playden-lab/backend/pkg/enum"
)

// Game is a local copy of a catalog game, its id is the catalog id.
type Game struct {
	ID         int64 `gorm:"primaryKey;autoIncrement:false"`
	Name       string
	Slug       string `gorm:"index;size:255"`
	Summary    string
	CoverURL   string
	Genres     Array[string]
	Rating     float64
	ReleasedAt sql.NullTime
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type LibraryStatus string

var (
	LibraryWantToPlay = enum.New(LibraryStatus("WANT_TO_PLAY"))
	LibraryPlaying    = enum.New(LibraryStatus("PLAYING"))
	LibraryCompleted  = enum.New(LibraryStatus("COMPLETED"))
	LibraryDropped    = enum.New(LibraryStatus("DROPPED"))
)

type LibraryItem struct {
	Edge
	UserID int64 `gorm:"primaryKey;autoIncrement:false"`
	GameID int64 `gorm:"primaryKey;autoIncrement:false;index"`
	Status LibraryStatus
	Rating sql.NullInt32

	Game Game `gorm:"foreignKey:GameID"`
}

type GameList struct {
	Base
	UserID      int64 `gorm:"index"`
	Name        string
	Description string
}

type GameListItem struct {
	ListID    int64 `gorm:"primaryKey;autoIncrement:false"`
	GameID    int64 `gorm:"primaryKey;autoIncrement:false"`
	Position  int
	CreatedAt time.Time

	Game Game `gorm:"foreignKey:GameID"`
}

// CatalogToken is an app access token of the game catalog.
type CatalogToken struct {
	ID          int64 `gorm:"primaryKey"`
	AccessToken string
	ExpiresAt   time.Time `gorm:"index"`
	CreatedAt   time.Time
}

