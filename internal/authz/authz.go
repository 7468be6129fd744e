// Package authz centralizes ownership checks for campgrounds and comments.
package authz

import (
	"context"

	"campwild/internal/models"
)

// Requester describes the caller of a guarded operation.
type Requester struct {
	Authenticated bool
	UserID        uint
	IsAdmin       bool
}

// Owned is any entity with a single owning user.
type Owned interface {
	OwnerID() uint
}

// LookupFunc loads the entity under authorization. A not-found condition must
// be returned as a models.AppError with CodeNotFound.
type LookupFunc[T Owned] func(ctx context.Context) (T, error)

// Authorize loads the entity and checks the requester against it. Failures are
// reported in a fixed order: authentication first, then existence, then
// ownership, so an anonymous caller learns nothing about what exists. Admins
// pass the ownership check on any entity.
func Authorize[T Owned](ctx context.Context, req Requester, lookup LookupFunc[T]) (T, error) {
	var zero T

	if !req.Authenticated {
		return zero, models.NewUnauthenticatedError("You need to be logged in to do that!")
	}

	entity, err := lookup(ctx)
	if err != nil {
		return zero, err
	}

	if req.IsAdmin || entity.OwnerID() == req.UserID {
		return entity, nil
	}

	return zero, models.NewForbiddenError("You don't have permission to do that!")
}
