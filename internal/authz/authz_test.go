package authz

import (
	"context"
	"testing"

	"campwild/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func campgroundLookup(ownerID uint) LookupFunc[*models.Campground] {
	return func(_ context.Context) (*models.Campground, error) {
		return &models.Campground{ID: 1, AuthorID: ownerID}, nil
	}
}

func missingCampground(_ context.Context) (*models.Campground, error) {
	return nil, models.NewNotFoundError("Campground", 1)
}

func assertAppErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok, "expected *models.AppError, got %T", err)
	assert.Equal(t, code, appErr.Code)
}

func TestAuthorize(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("owner allowed", func(t *testing.T) {
		t.Parallel()
		entity, err := Authorize(ctx, Requester{Authenticated: true, UserID: 5}, campgroundLookup(5))
		require.NoError(t, err)
		assert.Equal(t, uint(5), entity.AuthorID)
	})

	t.Run("admin allowed on foreign entity", func(t *testing.T) {
		t.Parallel()
		entity, err := Authorize(ctx, Requester{Authenticated: true, UserID: 99, IsAdmin: true}, campgroundLookup(5))
		require.NoError(t, err)
		assert.Equal(t, uint(5), entity.AuthorID)
	})

	t.Run("non-owner forbidden", func(t *testing.T) {
		t.Parallel()
		_, err := Authorize(ctx, Requester{Authenticated: true, UserID: 99}, campgroundLookup(5))
		assertAppErrorCode(t, err, models.CodeForbidden)
	})

	t.Run("anonymous unauthenticated before lookup", func(t *testing.T) {
		t.Parallel()
		called := false
		_, err := Authorize(ctx, Requester{}, LookupFunc[*models.Campground](func(_ context.Context) (*models.Campground, error) {
			called = true
			return nil, nil
		}))
		assertAppErrorCode(t, err, models.CodeUnauthenticated)
		assert.False(t, called)
	})

	t.Run("missing entity reported before ownership", func(t *testing.T) {
		t.Parallel()
		_, err := Authorize(ctx, Requester{Authenticated: true, UserID: 99}, LookupFunc[*models.Campground](missingCampground))
		assertAppErrorCode(t, err, models.CodeNotFound)
	})

	t.Run("comment ownership", func(t *testing.T) {
		t.Parallel()
		lookup := func(_ context.Context) (*models.Comment, error) {
			return &models.Comment{ID: 2, AuthorID: 7}, nil
		}

		_, err := Authorize(ctx, Requester{Authenticated: true, UserID: 8}, LookupFunc[*models.Comment](lookup))
		assertAppErrorCode(t, err, models.CodeForbidden)

		comment, err := Authorize(ctx, Requester{Authenticated: true, UserID: 7}, LookupFunc[*models.Comment](lookup))
		require.NoError(t, err)
		assert.Equal(t, uint(2), comment.ID)
	})

	t.Run("user self management", func(t *testing.T) {
		t.Parallel()
		lookup := func(_ context.Context) (*models.User, error) {
			return &models.User{ID: 3}, nil
		}

		_, err := Authorize(ctx, Requester{Authenticated: true, UserID: 4}, LookupFunc[*models.User](lookup))
		assertAppErrorCode(t, err, models.CodeForbidden)

		user, err := Authorize(ctx, Requester{Authenticated: true, UserID: 3}, LookupFunc[*models.User](lookup))
		require.NoError(t, err)
		assert.Equal(t, uint(3), user.ID)
	})
}
