package router

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/playden-lab/backend/pkg/errorx"
	"github.com/playden-lab/backend/pkg/xcontext"
)

func wrapHandler[Request, Response any](
	router *Router,
	method string,
	handler HandlerFunc[Request, Response],
) gin.HandlerFunc {
	return func(c *gin.Context) {
		var ctx context.Context = requestContext{Context: c.Request.Context(), values: router.ctx}
		ctx = xcontext.WithHTTPRequest(ctx, c.Request)
		ctx = xcontext.WithHTTPWriter(ctx, c.Writer)

		resp, ctx, err := serve(ctx, router, c, method, handler)
		if err != nil {
			ctx = xcontext.WithError(ctx, err)
		}

		writeResponse(ctx, c, resp, err)

		for _, closer := range router.closers {
			closer(ctx)
		}
	}
}

func serve[Request, Response any](
	ctx context.Context,
	router *Router,
	c *gin.Context,
	method string,
	handler HandlerFunc[Request, Response],
) (*Response, context.Context, error) {
	for _, before := range router.befores {
		newCtx, err := before(ctx)
		if err != nil {
			return nil, ctx, err
		}

		if newCtx != nil {
			ctx = newCtx
		}
	}

	req := new(Request)
	if err := bind(c, method, req); err != nil {
		xcontext.Logger(ctx).Debugf("Cannot bind request: %v", err)
		return nil, ctx, errorx.New(errorx.BadRequest, "Invalid request format")
	}

	if err := router.validator.Validate(req); err != nil {
		return nil, ctx, err
	}

	resp, err := handler(ctx, req)
	return resp, ctx, err
}

func bind(c *gin.Context, method string, req any) error {
	if method == "GET" {
		return c.ShouldBindQuery(req)
	}

	// Multipart requests are read by the handler itself.
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		return nil
	}

	if err := c.ShouldBindJSON(req); err != nil && !errors.Is(err, io.EOF) {
		return err
	}

	return nil
}
