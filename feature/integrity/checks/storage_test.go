package checks

import (
	"context"
	"testing"

	"catalog-sync/core/storage/mocks"
	"catalog-sync/feature/catalog/models"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCheckBucket(t *testing.T) {
	mockClient := new(mocks.Client)
	mockClient.On("BucketExists", mock.Anything, "playlists").Return(false, nil)

	report, err := CheckBucket(context.Background(), mockClient, "playlists")

	require.NoError(t, err)
	assert.False(t, report.Exists)
	assert.Equal(t, "playlists", report.Bucket)
}

func TestCheckBucket_Error(t *testing.T) {
	mockClient := new(mocks.Client)
	mockClient.On("BucketExists", mock.Anything, "playlists").Return(false, assert.AnError)

	_, err := CheckBucket(context.Background(), mockClient, "playlists")

	assert.ErrorContains(t, err, "failed to check bucket existence")
}

func TestFixBucket(t *testing.T) {
	mockClient := new(mocks.Client)
	mockClient.On("BucketExists", mock.Anything, "playlists").Return(false, nil)
	mockClient.On("MakeBucket", mock.Anything, "playlists", minio.MakeBucketOptions{Region: "eu-west-1"}).Return(nil)

	err := FixBucket(context.Background(), mockClient, "playlists", "eu-west-1", zap.NewNop())

	assert.NoError(t, err)
	mockClient.AssertExpectations(t)
}

func TestCheckPlaylists(t *testing.T) {
	mockClient := new(mocks.Client)
	accounts := []models.Account{
		{ID: "present", PlaylistPath: "s3://playlists/present/tv.m3u"},
		{ID: "gone", PlaylistPath: "s3://playlists/gone/tv.m3u"},
		{ID: "broken", PlaylistPath: "s3://playlists"},
		{ID: "local", PlaylistPath: "/srv/tv.m3u"},
		{ID: "remote", URL: "http://example.com/tv.m3u"},
	}
	mockClient.On("StatObject", mock.Anything, "playlists", "present/tv.m3u", mock.Anything).Return(minio.ObjectInfo{}, nil)
	mockClient.On("StatObject", mock.Anything, "playlists", "gone/tv.m3u", mock.Anything).
		Return(minio.ObjectInfo{}, minio.ErrorResponse{Code: "NoSuchKey"})

	missing, err := CheckPlaylists(context.Background(), mockClient, accounts)

	require.NoError(t, err)
	require.Len(t, missing, 2)
	assert.Equal(t, "gone", missing[0].AccountID)
	assert.Equal(t, "object not found", missing[0].Reason)
	assert.Equal(t, "broken", missing[1].AccountID)
	mockClient.AssertNumberOfCalls(t, "StatObject", 2)
}

func TestCheckPlaylists_StorageError(t *testing.T) {
	mockClient := new(mocks.Client)
	mockClient.On("StatObject", mock.Anything, "playlists", "a/tv.m3u", mock.Anything).
		Return(minio.ObjectInfo{}, minio.ErrorResponse{Code: "AccessDenied"})

	_, err := CheckPlaylists(context.Background(), mockClient, []models.Account{{ID: "a", PlaylistPath: "s3://playlists/a/tv.m3u"}})

	assert.ErrorContains(t, err, "failed to stat s3://playlists/a/tv.m3u")
}
