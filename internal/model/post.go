package model

type CreatePostRequest struct {
	CommunityHandle string `json:"community_handle" validate:"required"`
	Title           string `json:"title" validate:"required,max=300"`
	Content         string `json:"content" validate:"max=20000"`
}

type CreatePostResponse struct {
	Post Post `json:"post"`
}

type GetPostRequest struct {
	PostID int64 `json:"post_id,string" form:"post_id" validate:"required"`
}

type GetPostResponse struct {
	Post Post `json:"post"`
}

type GetPostsRequest struct {
	CommunityHandle string `json:"community_handle" form:"community_handle" validate:"required"`
	Pagination
}

type GetPostsResponse struct {
	Posts []Post `json:"posts"`
}

type UpdatePostRequest struct {
	PostID  int64  `json:"post_id,string" validate:"required"`
	Title   string `json:"title" validate:"required,max=300"`
	Content string `json:"content" validate:"max=20000"`
}

type UpdatePostResponse struct {
	Post Post `json:"post"`
}

type DeletePostRequest struct {
	PostID int64 `json:"post_id,string" validate:"required"`
}

type DeletePostResponse struct{}
