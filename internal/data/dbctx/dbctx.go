package dbctx

import (
	"context"

	"gorm.io/gorm"

	"github.com/yungbote/codelearn-backend/internal/platform/ctxutil"
)

// Context bundles a request context with an optional GORM transaction.
type Context struct {
	Ctx context.Context
	Tx  *gorm.DB
}

func New(ctx context.Context) Context {
	return Context{Ctx: ctx}
}

// WithTx returns a copy bound to tx.
func (c Context) WithTx(tx *gorm.DB) Context {
	return Context{Ctx: c.Ctx, Tx: tx}
}

// DB picks the bound transaction, or fallback when there is none.
func (c Context) DB(fallback *gorm.DB) *gorm.DB {
	ctx := ctxutil.Default(c.Ctx)
	if c.Tx != nil {
		return c.Tx.WithContext(ctx)
	}
	return fallback.WithContext(ctx)
}
