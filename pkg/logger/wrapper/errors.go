package wrap

import (
	"context"
	"errors"
)

// errorWithLogCtx carries the LogCtx that was active where the error happened.
type errorWithLogCtx struct {
	err    error
	logCtx LogCtx
}

func (e *errorWithLogCtx) Error() string {
	return e.err.Error()
}

func (e *errorWithLogCtx) Unwrap() error {
	return e.err
}

// Error attaches the LogCtx of ctx to err. Nil stays nil. If err already
// carries a LogCtx the fields set in ctx take precedence over it.
func Error(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}

	lc := fromCtx(ctx)

	var e *errorWithLogCtx
	if errors.As(err, &e) {
		lc = merge(e.logCtx, lc)
	}

	return &errorWithLogCtx{
		err:    err,
		logCtx: lc,
	}
}

// ErrorCtx returns ctx enriched with the LogCtx carried by err, if any.
func ErrorCtx(ctx context.Context, err error) context.Context {
	var e *errorWithLogCtx
	if errors.As(err, &e) && e != nil {
		return context.WithValue(ctx, LogCtxKey, merge(fromCtx(ctx), e.logCtx))
	}
	return ctx
}

// merge returns base with every non-empty field of top applied.
func merge(base, top LogCtx) LogCtx {
	if top.Action != "" {
		base.Action = top.Action
	}
	if top.RequestID != "" {
		base.RequestID = top.RequestID
	}
	if top.SessionID != "" {
		base.SessionID = top.SessionID
	}
	if top.Page != "" {
		base.Page = top.Page
	}
	return base
}
