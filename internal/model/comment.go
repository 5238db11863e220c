package model

type CreateCommentRequest struct {
	PostID   int64  `json:"post_id,string" validate:"required"`
	ParentID int64  `json:"parent_id,string"`
	Content  string `json:"content" validate:"required,max=5000"`
}

type CreateCommentResponse struct {
	Comment Comment `json:"comment"`
}

type GetCommentsRequest struct {
	PostID  int64  `json:"post_id,string" form:"post_id" validate:"required"`
	OrderBy string `json:"order_by" form:"order_by" validate:"omitempty,oneof=NEWEST OLDEST MOST_LIKED"`
	Pagination
}

type GetCommentsResponse struct {
	Comments []Comment `json:"comments"`
}

type GetRepliesRequest struct {
	CommentID int64  `json:"comment_id,string" form:"comment_id" validate:"required"`
	OrderBy   string `json:"order_by" form:"order_by" validate:"omitempty,oneof=NEWEST OLDEST MOST_LIKED"`
	Pagination
}

type GetRepliesResponse struct {
	Comments []Comment `json:"comments"`
}

type UpdateCommentRequest struct {
	CommentID int64  `json:"comment_id,string" validate:"required"`
	Content   string `json:"content" validate:"required,max=5000"`
}

type UpdateCommentResponse struct {
	Comment Comment `json:"comment"`
}

type DeleteCommentRequest struct {
	CommentID int64 `json:"comment_id,string" validate:"required"`
}

type DeleteCommentResponse struct{}
