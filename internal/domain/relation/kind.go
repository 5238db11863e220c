package relation

import "github.com/playden-lab/backend/internal/entity"

// Kind maps a relationship kind to the table storing its edges. Every table
// has a unique key on (SubjectColumn, ObjectColumn) and the tombstone columns
// of entity.Edge.
type Kind struct {
	Name          string
	Table         string
	SubjectColumn string
	ObjectColumn  string
}

var (
	FollowKind = Kind{
		Name:          entity.FollowKindName,
		Table:         "followers",
		SubjectColumn: "follower_id",
		ObjectColumn:  "following_id",
	}

	MemberKind = Kind{
		Name:          entity.MemberKindName,
		Table:         "community_members",
		SubjectColumn: "user_id",
		ObjectColumn:  "community_id",
	}

	LibraryKind = Kind{
		Name:          entity.LibraryKindName,
		Table:         "library_items",
		SubjectColumn: "user_id",
		ObjectColumn:  "game_id",
	}
)

type State string

const (
	Absent  State = "ABSENT"
	Active  State = "ACTIVE"
	Removed State = "REMOVED"
)
