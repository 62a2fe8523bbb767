// Package storage provides object storage for archived reports.
//
// It wraps the MinIO Go client behind the Client interface so S3 and
// self-hosted MinIO both work, and so archives can be tested against the
// testify mock in core/storage/mocks.
//
// # Helpers
//
//   - EnsureBucket: creates the archive bucket on first use.
//   - List: lists objects under a prefix, newest first.
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	err = storage.EnsureBucket(ctx, client, cfg.Storage.Bucket, cfg.Storage.Region)
package storage
