package poller

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"post-service/internal/mocks"
	"post-service/internal/models"
)

func TestPollReturnsNewPosts(t *testing.T) {
	repo := new(mocks.PostRepositoryMock)
	repo.On("GetUpdates", mock.Anything, int64(7), int64(11)).
		Return(models.PostUpdate{Status: models.UpdateAvailable, Posts: []models.Post{{ID: 12, GroupID: 7}}}, nil).Once()

	res, err := New(repo).Poll(context.Background(), 7, 11)
	require.NoError(t, err)
	require.Equal(t, models.UpdateAvailable, res.Status)
	require.Len(t, res.Posts, 1)
	require.Equal(t, int64(12), res.Posts[0].ID)
	repo.AssertExpectations(t)
}

func TestPollNoUpdateIsNotAnError(t *testing.T) {
	repo := new(mocks.PostRepositoryMock)
	repo.On("GetUpdates", mock.Anything, int64(7), int64(12)).
		Return(models.PostUpdate{Status: models.NoUpdate, Posts: []models.Post{}}, nil).Once()

	res, err := New(repo).Poll(context.Background(), 7, 12)
	require.NoError(t, err)
	require.Equal(t, models.NoUpdate, res.Status)
	require.NotNil(t, res.Posts)
	require.Empty(t, res.Posts)
}

func TestPollStorageFailure(t *testing.T) {
	repo := new(mocks.PostRepositoryMock)
	repo.On("GetUpdates", mock.Anything, int64(7), int64(12)).
		Return(models.PostUpdate{}, assert.AnError).Once()

	_, err := New(repo).Poll(context.Background(), 7, 12)
	require.ErrorIs(t, err, assert.AnError)
}

func TestPollEmptyPageIsNoUpdate(t *testing.T) {
	repo := new(mocks.PostRepositoryMock)
	repo.On("GetUpdates", mock.Anything, int64(7), int64(12)).
		Return(models.PostUpdate{Status: models.UpdateAvailable}, nil).Once()

	res, err := New(repo).Poll(context.Background(), 7, 12)
	require.NoError(t, err)
	require.Equal(t, models.NoUpdate, res.Status)
	require.NotNil(t, res.Posts)
}

func TestUpdateStatusString(t *testing.T) {
	require.Equal(t, "updated", models.UpdateAvailable.String())
	require.Equal(t, "no_update", models.NoUpdate.String())
}
