package model

type GetMeRequest struct{}

type GetMeResponse User

type GetUserRequest struct {
	UserID   int64  `json:"user_id,string" form:"user_id"`
	Username string `json:"username" form:"username"`
}

type GetUserResponse struct {
	User      User  `json:"user"`
	Followers int64 `json:"followers"`
	Following int64 `json:"following"`
}

type UpdateUserRequest struct {
	DisplayName string `json:"display_name" validate:"max=64"`
	Bio         string `json:"bio" validate:"max=500"`
}

type UpdateUserResponse struct {
	User User `json:"user"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8,max=72"`
}

type ChangePasswordResponse struct{}

type DeactivateMeRequest struct {
	Password string `json:"password" validate:"required"`
}

type DeactivateMeResponse struct{}

type UploadAvatarRequest struct{}

type UploadAvatarResponse struct {
	AvatarURL string `json:"avatar_url"`
}
