package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/playden-lab/backend/config"
	"github.com/playden-lab/backend/internal/domain"
	"github.com/playden-lab/backend/internal/domain/achievement"
	"github.com/playden-lab/backend/internal/domain/reaction"
	"github.com/playden-lab/backend/internal/domain/relation"
	"github.com/playden-lab/backend/internal/domain/search"
	"github.com/playden-lab/backend/internal/entity"
	"github.com/playden-lab/backend/internal/repository"
	"github.com/playden-lab/backend/pkg/api/catalog"
	"github.com/playden-lab/backend/pkg/authenticator"
	"github.com/playden-lab/backend/pkg/kafka"
	"github.com/playden-lab/backend/pkg/logger"
	"github.com/playden-lab/backend/pkg/pubsub"
	"github.com/playden-lab/backend/pkg/router"
	"github.com/playden-lab/backend/pkg/storage"
	"github.com/playden-lab/backend/pkg/xcontext"
	"github.com/playden-lab/backend/pkg/xredis"
	"github.com/urfave/cli/v2"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type srv struct {
	app *cli.App
	ctx context.Context

	userRepo            repository.UserRepository
	followerRepo        repository.FollowerRepository
	communityRepo       repository.CommunityRepository
	communityMemberRepo repository.CommunityMemberRepository
	postRepo            repository.PostRepository
	commentRepo         repository.CommentRepository
	gameRepo            repository.GameRepository
	libraryItemRepo     repository.LibraryItemRepository
	gameListRepo        repository.GameListRepository
	achievementRepo     repository.AchievementRepository
	userAchievementRepo repository.UserAchievementRepository
	catalogTokenRepo    repository.CatalogTokenRepository

	followMachine   relation.Machine
	memberMachine   relation.Machine
	libraryMachine  relation.Machine
	reactionMachine reaction.Machine

	authDomain        domain.AuthDomain
	userDomain        domain.UserDomain
	followDomain      domain.FollowDomain
	communityDomain   domain.CommunityDomain
	postDomain        domain.PostDomain
	commentDomain     domain.CommentDomain
	reactionDomain    domain.ReactionDomain
	gameDomain        domain.GameDomain
	libraryDomain     domain.LibraryDomain
	gameListDomain    domain.GameListDomain
	achievementDomain domain.AchievementDomain

	achievementManager *achievement.Manager
	trigger            achievement.Trigger

	redisClient xredis.Client
	publisher   pubsub.Publisher
	storage     storage.Storage
	searcher    search.Searcher
	catalog     catalog.IEndpoint

	router *router.Router
	server *http.Server
}

func (s *srv) loadConfig(cctx *cli.Context) error {
	cfg, err := config.Load(cctx.String("config"))
	if err != nil {
		return err
	}

	s.ctx = xcontext.WithConfigs(s.ctx, cfg)
	s.ctx = xcontext.WithHTTPClient(s.ctx, &http.Client{Timeout: 10 * time.Second})
	s.ctx = xcontext.WithTokenEngine(s.ctx, authenticator.NewTokenEngine[authenticator.AccessToken](
		cfg.Auth.TokenSecret, cfg.Auth.AccessToken.Expiration.Duration))

	s.loadLogger()
	return nil
}

func (s *srv) loadLogger() {
	cfg := xcontext.Configs(s.ctx)
	s.ctx = xcontext.WithLogger(s.ctx, logger.NewLogger(cfg.Env, logger.ParseLevel(cfg.LogLevel)))
}

func (s *srv) loadDatabase() {
	s.ctx = xcontext.WithDB(s.ctx, s.newDatabase())
}

func (s *srv) newDatabase() *gorm.DB {
	cfg := xcontext.Configs(s.ctx).Database

	var dialector gorm.Dialector
	switch cfg.Driver {
	case "postgres":
		dialector = postgres.Open(cfg.ConnectionString())
	case "sqlite":
		dialector = sqlite.Open(cfg.ConnectionString())
	case "mysql":
		dialector = mysql.New(mysql.Config{
			DSN:                       cfg.ConnectionString(),
			DefaultStringSize:         256,
			DisableDatetimePrecision:  true,
			DontSupportRenameIndex:    true,
			DontSupportRenameColumn:   true,
			SkipInitializeWithVersion: false,
		})
	default:
		panic(fmt.Sprintf("unsupported database driver %q", cfg.Driver))
	}

	db, err := gorm.Open(dialector, &gorm.Config{TranslateError: true})
	if err != nil {
		panic(err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		panic(err)
	}

	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime.Duration > 0 {
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime.Duration)
	}

	return db
}

func (s *srv) loadRedisClient() {
	var err error
	s.redisClient, err = xredis.NewClient(s.ctx)
	if err != nil {
		panic(err)
	}
}

// loadPublisher connects to kafka when an address is configured. The
// asynchronous achievement trigger cannot work without it.
func (s *srv) loadPublisher() {
	cfg := xcontext.Configs(s.ctx)
	if cfg.Kafka.Addr == "" {
		if cfg.Achievement.Async {
			panic("kafka address is required by the asynchronous achievement trigger")
		}

		xcontext.Logger(s.ctx).Warnf("Kafka is not configured, domain events are disabled")
		return
	}

	publisher, err := kafka.NewPublisher("api", []string{cfg.Kafka.Addr})
	if err != nil {
		panic(err)
	}

	s.publisher = publisher
}

func (s *srv) loadStorage() {
	var err error
	s.storage, err = storage.NewS3Storage(xcontext.Configs(s.ctx).Storage)
	if err != nil {
		panic(err)
	}
}

func (s *srv) loadSearcher() {
	s.searcher = search.NewBleveIndex(s.ctx)
}

func (s *srv) loadRepos() {
	s.userRepo = repository.NewUserRepository(s.redisClient)
	s.followerRepo = repository.NewFollowerRepository()
	s.communityRepo = repository.NewCommunityRepository(s.searcher)
	s.communityMemberRepo = repository.NewCommunityMemberRepository()
	s.postRepo = repository.NewPostRepository()
	s.commentRepo = repository.NewCommentRepository()
	s.gameRepo = repository.NewGameRepository()
	s.libraryItemRepo = repository.NewLibraryItemRepository()
	s.gameListRepo = repository.NewGameListRepository()
	s.achievementRepo = repository.NewAchievementRepository()
	s.userAchievementRepo = repository.NewUserAchievementRepository()
	s.catalogTokenRepo = repository.NewCatalogTokenRepository()
}

func (s *srv) loadCatalog() {
	cfg := xcontext.Configs(s.ctx).Catalog
	tokenProvider := domain.NewCatalogTokenProvider(
		s.catalogTokenRepo, catalog.NewTokenIssuer(cfg), s.redisClient)
	s.catalog = catalog.New(cfg, tokenProvider)
}

func (s *srv) loadMachines() {
	s.followMachine = relation.NewMachine(relation.FollowKind)
	s.memberMachine = relation.NewMachine(relation.MemberKind)
	s.libraryMachine = relation.NewMachine(relation.LibraryKind)
	s.reactionMachine = reaction.NewMachine(map[entity.ReactionEntityType]reaction.TargetResolver{
		entity.ReactionComment:       s.commentRepo,
		entity.ReactionCommunityPost: s.postRepo,
	})
}

func (s *srv) loadAchievementManager() {
	s.achievementManager = achievement.NewManager(s.achievementRepo, s.userAchievementRepo)

	cfg := xcontext.Configs(s.ctx).Achievement
	if cfg.Async {
		s.trigger = achievement.NewPublisher(s.publisher, cfg.Topic)
	} else {
		s.trigger = s.achievementManager
	}
}

func (s *srv) loadDomains() {
	fetcher := domain.NewGameFetcher(s.gameRepo, s.catalog, s.redisClient, s.searcher)

	s.authDomain = domain.NewAuthDomain(s.ctx, s.userRepo)
	s.userDomain = domain.NewUserDomain(s.userRepo, s.followMachine, s.storage)
	s.followDomain = domain.NewFollowDomain(s.userRepo, s.followerRepo, s.followMachine, s.trigger)
	s.communityDomain = domain.NewCommunityDomain(s.communityRepo, s.communityMemberRepo,
		s.gameRepo, s.memberMachine, s.trigger, s.storage)
	s.postDomain = domain.NewPostDomain(s.postRepo, s.communityRepo, s.memberMachine, s.reactionMachine)
	s.commentDomain = domain.NewCommentDomain(s.commentRepo, s.postRepo, s.reactionMachine)
	s.reactionDomain = domain.NewReactionDomain(s.reactionMachine, s.publisher)
	s.gameDomain = domain.NewGameDomain(s.gameRepo, s.searcher, fetcher)
	s.libraryDomain = domain.NewLibraryDomain(s.libraryItemRepo, s.libraryMachine, fetcher, s.trigger)
	s.gameListDomain = domain.NewGameListDomain(s.gameListRepo, fetcher)
	s.achievementDomain = domain.NewAchievementDomain(s.achievementManager, s.userAchievementRepo)
}
