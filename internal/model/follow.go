package model

type FollowRequest struct {
	UserID int64 `json:"user_id,string" validate:"required"`
}

type FollowResponse struct {
	Following int64 `json:"following"`
}

type UnfollowRequest struct {
	UserID int64 `json:"user_id,string" validate:"required"`
}

type UnfollowResponse struct{}

type GetFollowersRequest struct {
	UserID int64 `json:"user_id,string" form:"user_id" validate:"required"`
	Pagination
}

type GetFollowersResponse struct {
	Users []User `json:"users"`
}

type GetFollowingRequest struct {
	UserID int64 `json:"user_id,string" form:"user_id" validate:"required"`
	Pagination
}

type GetFollowingResponse struct {
	Users []User `json:"users"`
}

type IsFollowingRequest struct {
	UserID int64 `json:"user_id,string" form:"user_id" validate:"required"`
}

type IsFollowingResponse struct {
	IsFollowing bool `json:"is_following"`
}

type CountFollowRequest struct {
	UserID int64 `json:"user_id,string" form:"user_id" validate:"required"`
}

type CountFollowResponse struct {
	Followers int64 `json:"followers"`
	Following int64 `json:"following"`
}
