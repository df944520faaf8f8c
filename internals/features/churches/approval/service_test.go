package approval

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	churchModel "churchfinder_backend/internals/features/churches/churches/model"
)

type fakeChurch struct {
	status   string
	verified bool
}

type fakeStore struct {
	churches map[uuid.UUID]*fakeChurch
}

func (s *fakeStore) Decide(_ context.Context, id uuid.UUID, status string, verified bool) (bool, error) {
	ch, ok := s.churches[id]
	if !ok || ch.status != churchModel.StatusPending {
		return false, nil
	}
	ch.status = status
	if verified {
		ch.verified = true
	}
	return true, nil
}

func (s *fakeStore) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	_, ok := s.churches[id]
	return ok, nil
}

func TestDecideApprovalSetsVerified(t *testing.T) {
	id := uuid.New()
	store := &fakeStore{churches: map[uuid.UUID]*fakeChurch{
		id: {status: churchModel.StatusPending},
	}}
	svc := NewService(store)

	require.NoError(t, svc.Decide(context.Background(), id, churchModel.StatusApproved))
	assert.Equal(t, churchModel.StatusApproved, store.churches[id].status)
	assert.True(t, store.churches[id].verified)
}

func TestDecideRejectionLeavesVerifiedAlone(t *testing.T) {
	id := uuid.New()
	store := &fakeStore{churches: map[uuid.UUID]*fakeChurch{
		id: {status: churchModel.StatusPending},
	}}
	svc := NewService(store)

	require.NoError(t, svc.Decide(context.Background(), id, churchModel.StatusRejected))
	assert.Equal(t, churchModel.StatusRejected, store.churches[id].status)
	assert.False(t, store.churches[id].verified)
}

func TestDecideOnlyFromPending(t *testing.T) {
	approved, rejected := uuid.New(), uuid.New()
	store := &fakeStore{churches: map[uuid.UUID]*fakeChurch{
		approved: {status: churchModel.StatusApproved, verified: true},
		rejected: {status: churchModel.StatusRejected},
	}}
	svc := NewService(store)

	err := svc.Decide(context.Background(), approved, churchModel.StatusRejected)
	assert.ErrorIs(t, err, ErrNotPending)
	assert.Equal(t, churchModel.StatusApproved, store.churches[approved].status)
	assert.True(t, store.churches[approved].verified, "a settled decision never flips back")

	err = svc.Decide(context.Background(), rejected, churchModel.StatusApproved)
	assert.ErrorIs(t, err, ErrNotPending)
}

func TestDecideUnknownChurch(t *testing.T) {
	store := &fakeStore{churches: map[uuid.UUID]*fakeChurch{}}
	svc := NewService(store)

	err := svc.Decide(context.Background(), uuid.New(), churchModel.StatusApproved)
	assert.ErrorIs(t, err, ErrChurchNotFound)
}

func TestDecideRejectsUnknownTarget(t *testing.T) {
	store := &fakeStore{churches: map[uuid.UUID]*fakeChurch{}}
	svc := NewService(store)

	err := svc.Decide(context.Background(), uuid.New(), "archived")
	assert.ErrorIs(t, err, ErrInvalidTarget)
}
