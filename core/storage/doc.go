// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client behind the Client interface so playlist uploads
// and reads can be mocked in tests (see core/storage/mocks). Uploaded playlists
// are referenced from accounts through s3://bucket/key locators.
//
// # Operations
//
//   - BucketExists, MakeBucket and EnsureBucket: bucket setup at startup.
//   - PutObject, GetObject, StatObject: playlist upload and download.
//   - RemoveObject and Remove: replaced and orphaned uploads are deleted.
//
// # Usage
//
//	client, err := storage.NewClient(config)
//	err = storage.EnsureBucket(ctx, client, config.Bucket, config.Region)
package storage
