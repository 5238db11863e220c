package model

// Ids are snowflakes which do not fit in a javascript number, they are encoded
// as json strings.

type User struct {
	ID          int64  `json:"id,string"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	Bio         string `json:"bio"`
	AvatarURL   string `json:"avatar_url"`
	Email       string `json:"email,omitempty"`
	Role        string `json:"role,omitempty"`
	CreatedAt   string `json:"created_at"`
}

type Community struct {
	ID          int64  `json:"id,string"`
	Handle      string `json:"handle"`
	DisplayName string `json:"display_name"`
	Description string `json:"description"`
	LogoURL     string `json:"logo_url"`
	GameID      int64  `json:"game_id,string,omitempty"`
	CreatedBy   int64  `json:"created_by,string"`
	Members     int64  `json:"members"`
	CreatedAt   string `json:"created_at"`
	DeletedAt   string `json:"deleted_at,omitempty"`
}

type Post struct {
	ID          int64  `json:"id,string"`
	CommunityID int64  `json:"community_id,string"`
	Author      User   `json:"author"`
	Title       string `json:"title"`
	Content     string `json:"content"`
	Likes       int64  `json:"likes"`
	Dislikes    int64  `json:"dislikes"`
	MyReaction  string `json:"my_reaction"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

type Comment struct {
	ID         int64  `json:"id,string"`
	PostID     int64  `json:"post_id,string"`
	ParentID   int64  `json:"parent_id,string,omitempty"`
	Author     User   `json:"author"`
	Content    string `json:"content"`
	Replies    int64  `json:"replies"`
	Likes      int64  `json:"likes"`
	Dislikes   int64  `json:"dislikes"`
	MyReaction string `json:"my_reaction"`
	CreatedAt  string `json:"created_at"`
}

type Game struct {
	ID         int64    `json:"id,string"`
	Name       string   `json:"name"`
	Slug       string   `json:"slug"`
	Summary    string   `json:"summary"`
	CoverURL   string   `json:"cover_url"`
	Genres     []string `json:"genres"`
	Rating     float64  `json:"rating"`
	ReleasedAt string   `json:"released_at,omitempty"`
}

type LibraryItem struct {
	Game    Game   `json:"game"`
	Status  string `json:"status"`
	Rating  *int32 `json:"rating"`
	AddedAt string `json:"added_at"`
}

type GameList struct {
	ID          int64  `json:"id,string"`
	UserID      int64  `json:"user_id,string"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Games       int64  `json:"games"`
	CreatedAt   string `json:"created_at"`
}

type GameListItem struct {
	Game     Game `json:"game"`
	Position int  `json:"position"`
}

type Achievement struct {
	ID          int64  `json:"id,string"`
	Name        string `json:"name"`
	Description string `json:"description"`
	IconURL     string `json:"icon_url"`
	Kind        string `json:"kind"`
	Threshold   int64  `json:"threshold"`
	UnlockedAt  string `json:"unlocked_at,omitempty"`
}

type Pagination struct {
	Offset int `json:"offset" form:"offset" validate:"min=0"`
	Limit  int `json:"limit" form:"limit" validate:"min=0"`
}
