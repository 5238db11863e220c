package model

import (
	"time"

	"github.com/playden-lab/backend/internal/entity"
)

const DefaultTimeLayout string = time.RFC3339Nano
const DefaultDateLayout string = "2006-01-02"

func ConvertUser(user *entity.User, includeSensitive bool) User {
	if user == nil {
		return User{}
	}

	u := User{
		ID:          user.ID,
		Username:    user.Username,
		DisplayName: user.DisplayName,
		Bio:         user.Bio,
		AvatarURL:   user.AvatarURL,
		CreatedAt:   user.CreatedAt.Format(DefaultTimeLayout),
	}

	if includeSensitive {
		u.Email = user.Email
		u.Role = string(user.Role)
	}

	return u
}

func ConvertUsers(users []entity.User) []User {
	result := []User{}
	for i := range users {
		result = append(result, ConvertUser(&users[i], false))
	}

	return result
}

func ConvertCommunity(community *entity.Community, members int64) Community {
	if community == nil {
		return Community{}
	}

	c := Community{
		ID:          community.ID,
		Handle:      community.Handle,
		DisplayName: community.DisplayName,
		Description: community.Description,
		LogoURL:     community.LogoURL,
		GameID:      community.GameID.Int64,
		CreatedBy:   community.CreatedBy,
		Members:     members,
		CreatedAt:   community.CreatedAt.Format(DefaultTimeLayout),
	}

	if community.DeletedAt.Valid {
		c.DeletedAt = community.DeletedAt.Time.Format(DefaultTimeLayout)
	}

	return c
}

func ConvertPost(post *entity.Post, likes, dislikes int64, myReaction string) Post {
	if post == nil {
		return Post{}
	}

	return Post{
		ID:          post.ID,
		CommunityID: post.CommunityID,
		Author:      ConvertUser(&post.Author, false),
		Title:       post.Title,
		Content:     post.Content,
		Likes:       likes,
		Dislikes:    dislikes,
		MyReaction:  myReaction,
		CreatedAt:   post.CreatedAt.Format(DefaultTimeLayout),
		UpdatedAt:   post.UpdatedAt.Format(DefaultTimeLayout),
	}
}

func ConvertComment(comment *entity.Comment, replies, likes, dislikes int64, myReaction string) Comment {
	if comment == nil {
		return Comment{}
	}

	return Comment{
		ID:         comment.ID,
		PostID:     comment.PostID,
		ParentID:   comment.ParentID.Int64,
		Author:     ConvertUser(&comment.Author, false),
		Content:    comment.Content,
		Replies:    replies,
		Likes:      likes,
		Dislikes:   dislikes,
		MyReaction: myReaction,
		CreatedAt:  comment.CreatedAt.Format(DefaultTimeLayout),
	}
}

func ConvertGame(game *entity.Game) Game {
	if game == nil {
		return Game{}
	}

	g := Game{
		ID:       game.ID,
		Name:     game.Name,
		Slug:     game.Slug,
		Summary:  game.Summary,
		CoverURL: game.CoverURL,
		Genres:   []string(game.Genres),
		Rating:   game.Rating,
	}

	if g.Genres == nil {
		g.Genres = []string{}
	}

	if game.ReleasedAt.Valid {
		g.ReleasedAt = game.ReleasedAt.Time.Format(DefaultDateLayout)
	}

	return g
}

func ConvertGames(games []entity.Game) []Game {
	result := []Game{}
	for i := range games {
		result = append(result, ConvertGame(&games[i]))
	}

	return result
}

func ConvertLibraryItem(item *entity.LibraryItem) LibraryItem {
	if item == nil {
		return LibraryItem{}
	}

	l := LibraryItem{
		Game:    ConvertGame(&item.Game),
		Status:  string(item.Status),
		AddedAt: item.CreatedAt.Format(DefaultTimeLayout),
	}

	if item.Rating.Valid {
		rating := item.Rating.Int32
		l.Rating = &rating
	}

	return l
}

func ConvertGameList(list *entity.GameList, games int64) GameList {
	if list == nil {
		return GameList{}
	}

	return GameList{
		ID:          list.ID,
		UserID:      list.UserID,
		Name:        list.Name,
		Description: list.Description,
		Games:       games,
		CreatedAt:   list.CreatedAt.Format(DefaultTimeLayout),
	}
}

func ConvertAchievement(achievement *entity.Achievement, unlockedAt time.Time) Achievement {
	if achievement == nil {
		return Achievement{}
	}

	a := Achievement{
		ID:          achievement.ID,
		Name:        achievement.Name,
		Description: achievement.Description,
		IconURL:     achievement.IconURL,
		Kind:        achievement.Kind,
		Threshold:   achievement.Threshold,
	}

	if !unlockedAt.IsZero() {
		a.UnlockedAt = unlockedAt.Format(DefaultTimeLayout)
	}

	return a
}
