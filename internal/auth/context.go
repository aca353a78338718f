package auth

import (
	"context"
	"errors"
)

type ctxKey int

const (
	ctxUserID ctxKey = iota
	ctxUsername
)

func WithIdentity(ctx context.Context, userID int, username string) context.Context {
	ctx = context.WithValue(ctx, ctxUserID, userID)
	ctx = context.WithValue(ctx, ctxUsername, username)
	return ctx
}

var ErrNoIdentity = errors.New("auth: no identity in context")

func UserID(ctx context.Context) (int, error) {
	if v, ok := ctx.Value(ctxUserID).(int); ok && v > 0 {
		return v, nil
	}
	return 0, ErrNoIdentity
}

func Username(ctx context.Context) (string, error) {
	if v, ok := ctx.Value(ctxUsername).(string); ok && v != "" {
		return v, nil
	}
	return "", ErrNoIdentity
}
