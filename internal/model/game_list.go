package model

type CreateGameListRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"max=1000"`
}

type CreateGameListResponse struct {
	List GameList `json:"list"`
}

type GetGameListsRequest struct {
	UserID int64 `json:"user_id,string" form:"user_id" validate:"required"`
}

type GetGameListsResponse struct {
	Lists []GameList `json:"lists"`
}

type GetGameListRequest struct {
	ListID int64 `json:"list_id,string" form:"list_id" validate:"required"`
}

type GetGameListResponse struct {
	List  GameList       `json:"list"`
	Items []GameListItem `json:"items"`
}

type UpdateGameListRequest struct {
	ListID      int64  `json:"list_id,string" validate:"required"`
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"max=1000"`
}

type UpdateGameListResponse struct {
	List GameList `json:"list"`
}

type DeleteGameListRequest struct {
	ListID int64 `json:"list_id,string" validate:"required"`
}

type DeleteGameListResponse struct{}

type AddGameToListRequest struct {
	ListID int64 `json:"list_id,string" validate:"required"`
	GameID int64 `json:"game_id,string" validate:"required"`
}

type AddGameToListResponse struct {
	Item GameListItem `json:"item"`
}

type RemoveGameFromListRequest struct {
	ListID int64 `json:"list_id,string" validate:"required"`
	GameID int64 `json:"game_id,string" validate:"required"`
}

type RemoveGameFromListResponse struct{}
