package repositories

import (
	"context"
)

// UnitOfWork runs fn inside a single storage transaction. Repository calls made
// with the ctx passed to fn join that transaction; a nested Do joins the outer one.
// The transaction commits when fn returns nil and rolls back otherwise.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
