package testutil

import (
	"context"
	"time"

	"github.com/playden-lab/backend/config"
	"github.com/playden-lab/backend/migration"
	"github.com/playden-lab/backend/pkg/authenticator"
	"github.com/playden-lab/backend/pkg/logger"
	"github.com/playden-lab/backend/pkg/xcontext"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func MockContext() context.Context {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		panic(err)
	}

	// Every connection of an in-memory sqlite database has its own database.
	sqlDB, err := db.DB()
	if err != nil {
		panic(err)
	}
	sqlDB.SetMaxOpenConns(1)

	cfg := config.Default()
	cfg.Env = "test"
	cfg.ApiServer.MaxLimit = 50
	cfg.ApiServer.DefaultLimit = 1
	cfg.Auth.TokenSecret = "secret"
	cfg.Auth.AccessToken.Expiration = config.Duration{Duration: time.Minute}
	cfg.Auth.LoginRate = 100
	cfg.Auth.LoginBurst = 100
	cfg.Storage.Bucket = "playden"

	ctx := context.Background()
	ctx = xcontext.WithConfigs(ctx, cfg)
	ctx = xcontext.WithLogger(ctx, logger.NewNopLogger())
	ctx = xcontext.WithTokenEngine(ctx, authenticator.NewTokenEngine[authenticator.AccessToken](
		cfg.Auth.TokenSecret, cfg.Auth.AccessToken.Expiration.Duration))
	ctx = xcontext.WithDB(ctx, db)

	if err := migration.Migrate(ctx); err != nil {
		panic(err)
	}

	return ctx
}

func MockContextWithUserID(userID int64) context.Context {
	return xcontext.WithRequestUserID(MockContext(), userID)
}
