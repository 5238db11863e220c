package entity

import "database/sql"

type Post struct {
	Base
	CommunityID int64 `gorm:"index"`
	AuthorID    int64 `gorm:"index"`
	Title       string
	Content     string

	Community Community `gorm:"foreignKey:CommunityID"`
	Author    User      `gorm:"foreignKey:AuthorID"`
}

// Comment is a reply to a post when ParentID is null, otherwise it is a reply
// to the parent comment of the same post.
type Comment struct {
	Base
	PostID   int64 `gorm:"index"`
	AuthorID int64 `gorm:"index"`
	ParentID sql.NullInt64 `gorm:"index"`
	Content  string

	Post   Post `gorm:"foreignKey:PostID"`
	Author User `gorm:"foreignKey:AuthorID"`
}
