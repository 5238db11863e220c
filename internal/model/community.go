package model

type CreateCommunityRequest struct {
	Handle      string `json:"handle" validate:"required"`
	DisplayName string `json:"display_name" validate:"required,max=128"`
	Description string `json:"description" validate:"max=2000"`
	GameID      int64  `json:"game_id,string"`
}

type CreateCommunityResponse struct {
	Community Community `json:"community"`
}

type GetCommunityRequest struct {
	CommunityHandle string `json:"community_handle" form:"community_handle" validate:"required"`
}

type GetCommunityResponse struct {
	Community Community `json:"community"`
	IsMember  bool      `json:"is_member"`
}

type GetCommunitiesRequest struct {
	Q string `json:"q" form:"q"`
	Pagination
}

type GetCommunitiesResponse struct {
	Communities []Community `json:"communities"`
}

type UpdateCommunityRequest struct {
	CommunityHandle string `json:"community_handle" validate:"required"`
	DisplayName     string `json:"display_name" validate:"max=128"`
	Description     string `json:"description" validate:"max=2000"`
	GameID          int64  `json:"game_id,string"`
}

type UpdateCommunityResponse struct {
	Community Community `json:"community"`
}

type DeleteCommunityRequest struct {
	CommunityHandle string `json:"community_handle" validate:"required"`
}

type DeleteCommunityResponse struct{}

type GetInactiveCommunitiesRequest struct{}

type GetInactiveCommunitiesResponse struct {
	Communities []Community `json:"communities"`
}

type ReactivateCommunityRequest struct {
	CommunityHandle string `json:"community_handle" validate:"required"`
}

type ReactivateCommunityResponse struct {
	Community Community `json:"community"`
}

type JoinCommunityRequest struct {
	CommunityHandle string `json:"community_handle" validate:"required"`
}

type JoinCommunityResponse struct {
	Communities int64 `json:"communities"`
}

type LeaveCommunityRequest struct {
	CommunityHandle string `json:"community_handle" validate:"required"`
}

type LeaveCommunityResponse struct{}

type GetMembersRequest struct {
	CommunityHandle string `json:"community_handle" form:"community_handle" validate:"required"`
	Pagination
}

type GetMembersResponse struct {
	Users []User `json:"users"`
}

type GetMyCommunitiesRequest struct {
	Pagination
}

type GetMyCommunitiesResponse struct {
	Communities []Community `json:"communities"`
}

type GetUserCommunitiesRequest struct {
	UserID int64 `json:"user_id,string" form:"user_id" validate:"required"`
	Pagination
}

type GetUserCommunitiesResponse struct {
	Communities []Community `json:"communities"`
}

// UploadCommunityLogoRequest is a multipart form with the fields
// community_handle and image.
type UploadCommunityLogoRequest struct{}

type UploadCommunityLogoResponse struct {
	LogoURL string `json:"logo_url"`
}
