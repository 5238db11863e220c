package catalog

import "time"

type Game struct {
	ID         int64
	Name       string
	Slug       string
	Summary    string
	CoverURL   string
	Genres     []string
	Rating     float64
	ReleasedAt time.Time
}

type Token struct {
	AccessToken string
	ExpiresAt   time.Time
}

type rawGame struct {
	ID               int64   `mapstructure:"id"`
	Name             string  `mapstructure:"name"`
	Slug             string  `mapstructure:"slug"`
	Summary          string  `mapstructure:"summary"`
	TotalRating      float64 `mapstructure:"total_rating"`
	FirstReleaseDate int64   `mapstructure:"first_release_date"`
	Cover            struct {
		URL string `mapstructure:"url"`
	} `mapstructure:"cover"`
	Genres []struct {
		Name string `mapstructure:"name"`
	} `mapstructure:"genres"`
}

func (r rawGame) toGame() Game {
	g := Game{
		ID:       r.ID,
		Name:     r.Name,
		Slug:     r.Slug,
		Summary:  r.Summary,
		CoverURL: r.Cover.URL,
		Rating:   r.TotalRating,
	}

	if r.FirstReleaseDate > 0 {
		g.ReleasedAt = time.Unix(r.FirstReleaseDate, 0).UTC()
	}

	for _, genre := range r.Genres {
		g.Genres = append(g.Genres, genre.Name)
	}

	return g
}

type rawToken struct {
	AccessToken string `mapstructure:"access_token"`
	ExpiresIn   int64  `mapstructure:"expires_in"`
	TokenType   string `mapstructure:"token_type"`
}
