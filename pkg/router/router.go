package router

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/playden-lab/backend/pkg/validation"
	"github.com/rs/cors"
)

type HandlerFunc[Request, Response any] func(ctx context.Context, req *Request) (*Response, error)

// MiddlewareFunc runs before the handler. It may enrich the context, a non-nil
// error stops the request.
type MiddlewareFunc func(ctx context.Context) (context.Context, error)

// CloserFunc runs after the response was written, both on success and failure.
type CloserFunc func(ctx context.Context)

type Router struct {
	engine    *gin.Engine
	ctx       context.Context
	validator *validation.Validator

	befores []MiddlewareFunc
	closers []CloserFunc
}

// New creates a router whose handlers receive every value of ctx (configs,
// logger, database...) together with the cancellation of the http request.
func New(ctx context.Context) *Router {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	return &Router{
		engine:    engine,
		ctx:       ctx,
		validator: validation.New(),
	}
}

// Branch returns a router sharing the same engine, its middlewares are
// inherited but new ones only apply to the branch.
func (r *Router) Branch() *Router {
	return &Router{
		engine:    r.engine,
		ctx:       r.ctx,
		validator: r.validator,
		befores:   append([]MiddlewareFunc{}, r.befores...),
		closers:   append([]CloserFunc{}, r.closers...),
	}
}

func (r *Router) Before(m MiddlewareFunc) {
	r.befores = append(r.befores, m)
}

func (r *Router) AddCloser(c CloserFunc) {
	r.closers = append(r.closers, c)
}

// Mount serves a plain http.Handler, it is used by /metrics.
func (r *Router) Mount(method, pattern string, h http.Handler) {
	r.engine.Handle(method, pattern, gin.WrapH(h))
}

func (r *Router) Handler(allowedOrigins []string) http.Handler {
	if len(allowedOrigins) == 0 {
		return cors.AllowAll().Handler(r.engine)
	}

	return cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}).Handler(r.engine)
}

func GET[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.engine.GET(pattern, wrapHandler(r, http.MethodGet, handler))
}

func POST[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.engine.POST(pattern, wrapHandler(r, http.MethodPost, handler))
}
