package xcontext

import (
	"context"
	"net/http"
	"time"

	"github.com/playden-lab/backend/config"
	"github.com/playden-lab/backend/pkg/authenticator"
	"github.com/playden-lab/backend/pkg/logger"
	"gorm.io/gorm"
)

type (
	configsKey     struct{}
	loggerKey      struct{}
	dbKey          struct{}
	dbTxKey        struct{}
	userIDKey      struct{}
	tokenEngineKey struct{}
	httpRequestKey struct{}
	httpWriterKey  struct{}
	httpClientKey  struct{}
	startTimeKey   struct{}
	errorKey       struct{}
)

func WithConfigs(ctx context.Context, cfg config.Configs) context.Context {
	return context.WithValue(ctx, configsKey{}, cfg)
}

func Configs(ctx context.Context) config.Configs {
	cfg, ok := ctx.Value(configsKey{}).(config.Configs)
	if !ok {
		return config.Default()
	}

	return cfg
}

func WithLogger(ctx context.Context, l logger.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

func Logger(ctx context.Context) logger.Logger {
	l, ok := ctx.Value(loggerKey{}).(logger.Logger)
	if !ok {
		return logger.NewNopLogger()
	}

	return l
}

func WithDB(ctx context.Context, db *gorm.DB) context.Context {
	return context.WithValue(ctx, dbKey{}, db)
}

type dbTx struct {
	tx     *gorm.DB
	nested bool
}

// DB returns the running transaction if there is one, otherwise it returns the
// database bound to this context.
func DB(ctx context.Context) *gorm.DB {
	if t, ok := ctx.Value(dbTxKey{}).(*dbTx); ok && t != nil {
		return t.tx
	}

	return ctx.Value(dbKey{}).(*gorm.DB).WithContext(ctx)
}

// WithDBTransaction begins a transaction, every later call of DB(ctx) returns
// this transaction. Calling it when a transaction is already running joins that
// transaction, only the outermost caller commits or rollbacks.
func WithDBTransaction(ctx context.Context) context.Context {
	if t, ok := ctx.Value(dbTxKey{}).(*dbTx); ok && t != nil {
		return context.WithValue(ctx, dbTxKey{}, &dbTx{tx: t.tx, nested: true})
	}

	return context.WithValue(ctx, dbTxKey{}, &dbTx{tx: DB(ctx).Begin()})
}

// WithCommitDBTransaction commits the transaction opened by the outermost
// WithDBTransaction. A nested caller only gets its context back, the outer
// caller reports the result of the commit.
func WithCommitDBTransaction(ctx context.Context) (context.Context, error) {
	t, ok := ctx.Value(dbTxKey{}).(*dbTx)
	if !ok || t == nil || t.nested {
		return ctx, nil
	}

	err := t.tx.Commit().Error
	return context.WithValue(ctx, dbTxKey{}, (*dbTx)(nil)), err
}

// WithRollbackDBTransaction rollbacks the transaction. It is safe to defer it
// right after WithDBTransaction, rolling back a committed transaction is a
// no-op.
func WithRollbackDBTransaction(ctx context.Context) context.Context {
	t, ok := ctx.Value(dbTxKey{}).(*dbTx)
	if !ok || t == nil || t.nested {
		return ctx
	}

	t.tx.Rollback()
	return context.WithValue(ctx, dbTxKey{}, (*dbTx)(nil))
}

func WithRequestUserID(ctx context.Context, id int64) context.Context {
	return context.WithValue(ctx, userIDKey{}, id)
}

// RequestUserID returns the id of the authenticated user, zero means the
// request is anonymous.
func RequestUserID(ctx context.Context) int64 {
	id, _ := ctx.Value(userIDKey{}).(int64)
	return id
}

func WithTokenEngine(ctx context.Context, engine authenticator.TokenEngine[authenticator.AccessToken]) context.Context {
	return context.WithValue(ctx, tokenEngineKey{}, engine)
}

func TokenEngine(ctx context.Context) authenticator.TokenEngine[authenticator.AccessToken] {
	return ctx.Value(tokenEngineKey{}).(authenticator.TokenEngine[authenticator.AccessToken])
}

func WithHTTPRequest(ctx context.Context, req *http.Request) context.Context {
	return context.WithValue(ctx, httpRequestKey{}, req)
}

func HTTPRequest(ctx context.Context) *http.Request {
	req, _ := ctx.Value(httpRequestKey{}).(*http.Request)
	return req
}

func WithHTTPWriter(ctx context.Context, w http.ResponseWriter) context.Context {
	return context.WithValue(ctx, httpWriterKey{}, w)
}

func HTTPWriter(ctx context.Context) http.ResponseWriter {
	w, _ := ctx.Value(httpWriterKey{}).(http.ResponseWriter)
	return w
}

func WithHTTPClient(ctx context.Context, client *http.Client) context.Context {
	return context.WithValue(ctx, httpClientKey{}, client)
}

func HTTPClient(ctx context.Context) *http.Client {
	client, ok := ctx.Value(httpClientKey{}).(*http.Client)
	if !ok {
		return http.DefaultClient
	}

	return client
}

func WithStartTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, startTimeKey{}, t)
}

func StartTime(ctx context.Context) time.Time {
	t, _ := ctx.Value(startTimeKey{}).(time.Time)
	return t
}

func WithError(ctx context.Context, err error) context.Context {
	return context.WithValue(ctx, errorKey{}, err)
}

func Error(ctx context.Context) error {
	err, _ := ctx.Value(errorKey{}).(error)
	return err
}
