package router

import "context"

// requestContext carries the lifetime of the http request while looking up
// values in the long-lived server context.
type requestContext struct {
	context.Context
	values context.Context
}

func (c requestContext) Value(key any) any {
	if v := c.Context.Value(key); v != nil {
		return v
	}

	return c.values.Value(key)
}
