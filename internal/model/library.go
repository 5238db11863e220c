package model

type AddToLibraryRequest struct {
	GameID int64  `json:"game_id,string" validate:"required"`
	Status string `json:"status" validate:"omitempty,oneof=WANT_TO_PLAY PLAYING COMPLETED DROPPED"`
}

type AddToLibraryResponse struct {
	Item  LibraryItem `json:"item"`
	Games int64       `json:"games"`
}

type RemoveFromLibraryRequest struct {
	GameID int64 `json:"game_id,string" validate:"required"`
}

type RemoveFromLibraryResponse struct{}

type UpdateLibraryItemRequest struct {
	GameID int64  `json:"game_id,string" validate:"required"`
	Status string `json:"status" validate:"required,oneof=WANT_TO_PLAY PLAYING COMPLETED DROPPED"`

	// Rating is cleared when it is null.
	Rating *int32 `json:"rating" validate:"omitempty,min=1,max=10"`
}

type UpdateLibraryItemResponse struct {
	Item LibraryItem `json:"item"`
}

type GetLibraryRequest struct {
	UserID int64  `json:"user_id,string" form:"user_id" validate:"required"`
	Status string `json:"status" form:"status" validate:"omitempty,oneof=WANT_TO_PLAY PLAYING COMPLETED DROPPED"`
	Pagination
}

type GetLibraryResponse struct {
	Items []LibraryItem `json:"items"`
}

type GetGameStatsRequest struct {
	GameID int64 `json:"game_id,string" form:"game_id" validate:"required"`
}

type GetGameStatsResponse struct {
	InLibrary     int64            `json:"in_library"`
	AverageRating *float64         `json:"average_rating"`
	ByStatus      map[string]int64 `json:"by_status"`
}
