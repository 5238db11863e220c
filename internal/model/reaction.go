package model

type ReactRequest struct {
	TargetID   int64  `json:"target_id,string" validate:"required"`
	TargetType string `json:"target_type" validate:"required"`
}

type ReactResponse struct {
	State    string `json:"state"`
	Likes    int64  `json:"likes"`
	Dislikes int64  `json:"dislikes"`
}

type GetReactorsRequest struct {
	TargetID   int64  `json:"target_id,string" form:"target_id" validate:"required"`
	TargetType string `json:"target_type" form:"target_type" validate:"required"`
	Pagination
}

type GetReactorsResponse struct {
	Users []User `json:"users"`
}
