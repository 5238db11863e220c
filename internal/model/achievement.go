package model

type GetAchievementsRequest struct{}

type GetAchievementsResponse struct {
	Achievements []Achievement `json:"achievements"`
}

type GetMyAchievementsRequest struct{}

type GetMyAchievementsResponse struct {
	Achievements []Achievement `json:"achievements"`
}

type GetUserAchievementsRequest struct {
	UserID int64 `json:"user_id,string" form:"user_id" validate:"required"`
}

type GetUserAchievementsResponse struct {
	Achievements []Achievement `json:"achievements"`
}
