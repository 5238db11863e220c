package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/playden-lab/backend/internal/middleware"
	"github.com/playden-lab/backend/pkg/prometheus"
	"github.com/playden-lab/backend/pkg/router"
	"github.com/playden-lab/backend/pkg/xcontext"
	"github.com/urfave/cli/v2"
)

func (s *srv) startApi(*cli.Context) error {
	s.loadDatabase()
	s.loadRedisClient()
	s.loadPublisher()
	s.loadStorage()
	s.loadSearcher()
	s.loadRepos()
	s.loadCatalog()
	s.loadMachines()
	s.loadAchievementManager()
	s.loadDomains()
	s.loadRouter()

	cfg := xcontext.Configs(s.ctx).ApiServer
	s.server = &http.Server{
		Addr:    cfg.Address(),
		Handler: s.router.Handler(cfg.AllowedOrigins),
	}

	ctx, stop := signal.NotifyContext(s.ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := s.server.Shutdown(shutdownCtx); err != nil {
			xcontext.Logger(s.ctx).Errorf("Cannot shutdown server: %v", err)
		}
	}()

	xcontext.Logger(s.ctx).Infof("Starting server on %s", s.server.Addr)
	var err error
	if cfg.Cert != "" && cfg.Key != "" {
		err = s.server.ListenAndServeTLS(cfg.Cert, cfg.Key)
	} else {
		err = s.server.ListenAndServe()
	}

	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	s.searcher.Close()
	xcontext.Logger(s.ctx).Infof("Server stopped")
	return nil
}

func (s *srv) loadRouter() {
	s.router = router.New(s.ctx)
	s.router.Before(middleware.WithStartTime())
	s.router.Before(middleware.Authenticate())
	s.router.AddCloser(middleware.Logger())
	s.router.AddCloser(middleware.Prometheus())
	s.router.Mount(http.MethodGet, "/metrics", prometheus.NewHandler())

	// Public API, the caller is optional.
	{
		router.POST(s.router, "/register", s.authDomain.Register)
		router.POST(s.router, "/login", s.authDomain.Login)
		router.POST(s.router, "/reactivate", s.authDomain.Reactivate)

		router.GET(s.router, "/getUser", s.userDomain.GetUser)
		router.GET(s.router, "/getFollowers", s.followDomain.GetFollowers)
		router.GET(s.router, "/getFollowing", s.followDomain.GetFollowing)
		router.GET(s.router, "/countFollow", s.followDomain.CountFollow)

		router.GET(s.router, "/getCommunity", s.communityDomain.Get)
		router.GET(s.router, "/getCommunities", s.communityDomain.GetList)
		router.GET(s.router, "/getCommunityMembers", s.communityDomain.GetMembers)
		router.GET(s.router, "/getUserCommunities", s.communityDomain.GetUserCommunities)

		router.GET(s.router, "/getPost", s.postDomain.Get)
		router.GET(s.router, "/getPosts", s.postDomain.GetList)
		router.GET(s.router, "/getComments", s.commentDomain.GetComments)
		router.GET(s.router, "/getReplies", s.commentDomain.GetReplies)
		router.GET(s.router, "/getLikers", s.reactionDomain.GetLikers)
		router.GET(s.router, "/getDislikers", s.reactionDomain.GetDislikers)

		router.GET(s.router, "/searchGames", s.gameDomain.SearchGames)
		router.GET(s.router, "/getGame", s.gameDomain.GetGame)
		router.GET(s.router, "/getGames", s.gameDomain.GetGames)
		router.GET(s.router, "/getLibrary", s.libraryDomain.GetLibrary)
		router.GET(s.router, "/getGameStats", s.libraryDomain.GetGameStats)
		router.GET(s.router, "/getGameLists", s.gameListDomain.GetLists)
		router.GET(s.router, "/getGameList", s.gameListDomain.Get)

		router.GET(s.router, "/getAchievements", s.achievementDomain.GetAchievements)
		router.GET(s.router, "/getUserAchievements", s.achievementDomain.GetUserAchievements)
	}

	// These following APIs need an access token.
	authRouter := s.router.Branch()
	authRouter.Before(middleware.RequireAuthentication())
	{
		// User API
		router.GET(authRouter, "/getMe", s.userDomain.GetMe)
		router.POST(authRouter, "/updateUser", s.userDomain.UpdateUser)
		router.POST(authRouter, "/changePassword", s.userDomain.ChangePassword)
		router.POST(authRouter, "/deactivateMe", s.userDomain.DeactivateMe)
		router.POST(authRouter, "/uploadAvatar", s.userDomain.UploadAvatar)
		router.GET(authRouter, "/getMyAchievements", s.achievementDomain.GetMyAchievements)

		// Follow API
		router.POST(authRouter, "/follow", s.followDomain.Follow)
		router.POST(authRouter, "/unfollow", s.followDomain.Unfollow)
		router.GET(authRouter, "/isFollowing", s.followDomain.IsFollowing)

		// Community API
		router.POST(authRouter, "/createCommunity", s.communityDomain.Create)
		router.POST(authRouter, "/updateCommunity", s.communityDomain.Update)
		router.POST(authRouter, "/deleteCommunity", s.communityDomain.Delete)
		router.GET(authRouter, "/getInactiveCommunities", s.communityDomain.GetInactive)
		router.POST(authRouter, "/reactivateCommunity", s.communityDomain.Reactivate)
		router.POST(authRouter, "/joinCommunity", s.communityDomain.Join)
		router.POST(authRouter, "/leaveCommunity", s.communityDomain.Leave)
		router.GET(authRouter, "/getMyCommunities", s.communityDomain.GetMyCommunities)
		router.POST(authRouter, "/uploadCommunityLogo", s.communityDomain.UploadLogo)

		// Post and comment API
		router.POST(authRouter, "/createPost", s.postDomain.Create)
		router.POST(authRouter, "/updatePost", s.postDomain.Update)
		router.POST(authRouter, "/deletePost", s.postDomain.Delete)
		router.POST(authRouter, "/createComment", s.commentDomain.Create)
		router.POST(authRouter, "/updateComment", s.commentDomain.Update)
		router.POST(authRouter, "/deleteComment", s.commentDomain.Delete)

		// Reaction API
		router.POST(authRouter, "/like", s.reactionDomain.Like)
		router.POST(authRouter, "/dislike", s.reactionDomain.Dislike)

		// Library API
		router.POST(authRouter, "/addToLibrary", s.libraryDomain.Add)
		router.POST(authRouter, "/removeFromLibrary", s.libraryDomain.Remove)
		router.POST(authRouter, "/updateLibraryItem", s.libraryDomain.UpdateItem)

		// Game list API
		router.POST(authRouter, "/createGameList", s.gameListDomain.Create)
		router.POST(authRouter, "/updateGameList", s.gameListDomain.Update)
		router.POST(authRouter, "/deleteGameList", s.gameListDomain.Delete)
		router.POST(authRouter, "/addGameToList", s.gameListDomain.AddGame)
		router.POST(authRouter, "/removeGameFromList", s.gameListDomain.RemoveGame)
	}
}
