package model

type SearchGamesRequest struct {
	Q     string `json:"q" form:"q" validate:"required,max=100"`
	Limit int    `json:"limit" form:"limit" validate:"min=0"`
}

type SearchGamesResponse struct {
	Games []Game `json:"games"`
}

type GetGameRequest struct {
	GameID int64 `json:"game_id,string" form:"game_id" validate:"required"`
}

type GetGameResponse struct {
	Game Game `json:"game"`
}

type GetGamesRequest struct {
	// Q searches the games already known locally.
	Q string `json:"q" form:"q"`
	Pagination
}

type GetGamesResponse struct {
	Games []Game `json:"games"`
}
