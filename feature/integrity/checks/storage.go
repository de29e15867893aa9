package checks

import (
	"context"
	"fmt"

	"catalog-sync/core/storage"
	"catalog-sync/feature/catalog/models"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// BucketReport describes the playlist bucket.
type BucketReport struct {
	Bucket string `json:"bucket"`
	Exists bool   `json:"exists"`
}

// CheckBucket reports whether the playlist bucket exists.
func CheckBucket(ctx context.Context, client storage.Client, bucket string) (*BucketReport, error) {
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	return &BucketReport{Bucket: bucket, Exists: exists}, nil
}

// FixBucket creates the playlist bucket when it is missing.
func FixBucket(ctx context.Context, client storage.Client, bucket, region string, logger *zap.Logger) error {
	if err := storage.EnsureBucket(ctx, client, bucket, region); err != nil {
		logger.Error("Failed to create bucket", zap.String("bucket", bucket), zap.Error(err))
		return err
	}
	logger.Info("Playlist bucket ready", zap.String("bucket", bucket))
	return nil
}

// MissingPlaylist is an account whose uploaded playlist is gone.
type MissingPlaylist struct {
	AccountID string `json:"account_id"`
	Locator   string `json:"locator"`
	Reason    string `json:"reason"`
}

// CheckPlaylists stats the object behind every s3:// playlist path. Accounts
// reading a URL or a local file are not checked.
func CheckPlaylists(ctx context.Context, client storage.Client, accounts []models.Account) ([]MissingPlaylist, error) {
	missing := []MissingPlaylist{}
	for _, account := range accounts {
		if !storage.IsLocator(account.PlaylistPath) {
			continue
		}

		bucket, object, err := storage.ParseLocator(account.PlaylistPath)
		if err != nil {
			missing = append(missing, MissingPlaylist{AccountID: account.ID, Locator: account.PlaylistPath, Reason: err.Error()})
			continue
		}

		_, err = client.StatObject(ctx, bucket, object, minio.StatObjectOptions{})
		if err == nil {
			continue
		}
		if !storage.IsNotFound(err) {
			return nil, fmt.Errorf("failed to stat %s: %w", account.PlaylistPath, err)
		}
		missing = append(missing, MissingPlaylist{AccountID: account.ID, Locator: account.PlaylistPath, Reason: "object not found"})
	}
	return missing, nil
}
