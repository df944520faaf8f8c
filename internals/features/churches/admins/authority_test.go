package admins

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLinkage struct {
	links   map[[2]uuid.UUID]bool // [user, church]
	legacy  map[uuid.UUID]*uuid.UUID
	linkErr error
}

func (f *fakeLinkage) HasLink(_ context.Context, userID, churchID uuid.UUID) (bool, error) {
	if f.linkErr != nil {
		return false, f.linkErr
	}
	return f.links[[2]uuid.UUID{userID, churchID}], nil
}

func (f *fakeLinkage) LegacyAdminID(_ context.Context, churchID uuid.UUID) (*uuid.UUID, error) {
	return f.legacy[churchID], nil
}

func TestIsAdminOfViaLinkage(t *testing.T) {
	user, church := uuid.New(), uuid.New()
	linkage := &fakeLinkage{
		links:  map[[2]uuid.UUID]bool{{user, church}: true},
		legacy: map[uuid.UUID]*uuid.UUID{},
	}

	ok, err := NewResolver(linkage).IsAdminOf(context.Background(), user, church)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestIsAdminOfViaLegacyColumnOnly(t *testing.T) {
	user, church := uuid.New(), uuid.New()
	linkage := &fakeLinkage{
		links:  map[[2]uuid.UUID]bool{},
		legacy: map[uuid.UUID]*uuid.UUID{church: &user},
	}

	ok, err := NewResolver(linkage).IsAdminOf(context.Background(), user, church)
	require.NoError(t, err)
	assert.True(t, ok, "pre-linkage churches resolve through the legacy column")
}

func TestIsAdminOfLegacyFallbackOnLinkageError(t *testing.T) {
	user, church := uuid.New(), uuid.New()
	linkage := &fakeLinkage{
		linkErr: errors.New("relation unavailable"),
		legacy:  map[uuid.UUID]*uuid.UUID{church: &user},
	}

	ok, err := NewResolver(linkage).IsAdminOf(context.Background(), user, church)
	require.NoError(t, err)
	assert.True(t, ok, "a failing linkage lookup still falls through to the legacy check")
}

func TestIsAdminOfNeitherPath(t *testing.T) {
	user, church, other := uuid.New(), uuid.New(), uuid.New()
	linkage := &fakeLinkage{
		links:  map[[2]uuid.UUID]bool{},
		legacy: map[uuid.UUID]*uuid.UUID{church: &other},
	}

	ok, err := NewResolver(linkage).IsAdminOf(context.Background(), user, church)
	require.NoError(t, err)
	assert.False(t, ok)
}
