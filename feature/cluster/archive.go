package cluster

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path"
	"strings"
	"time"

	"dns-fleet/core/storage"

	"github.com/minio/minio-go/v7"
)

// Archive stores drift reports as JSON objects.
type Archive struct {
	client storage.Client
	bucket string
	prefix string
	now    func() time.Time
}

// NewArchive creates an archive writing under prefix in bucket.
func NewArchive(client storage.Client, bucket, prefix string) *Archive {
	return &Archive{
		client: client,
		bucket: bucket,
		prefix: strings.Trim(prefix, "/"),
		now:    time.Now,
	}
}

// Save uploads a report and returns its object key,
// <prefix>/<a>-<b>-<unix>.json.
func (a *Archive) Save(ctx context.Context, report *DriftReport) (string, error) {
	body, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode drift report: %w", err)
	}

	key := path.Join(a.prefix, fmt.Sprintf("%s-%s-%d.json", report.A, report.B, a.now().Unix()))
	_, err = a.client.PutObject(ctx, a.bucket, key, bytes.NewReader(body), int64(len(body)),
		minio.PutObjectOptions{ContentType: "application/json"})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}
	return key, nil
}

// List returns archived reports, newest first.
func (a *Archive) List(ctx context.Context) ([]storage.Object, error) {
	prefix := a.prefix
	if prefix != "" {
		prefix += "/"
	}
	return storage.List(ctx, a.client, a.bucket, prefix)
}

// Load downloads one archived report.
func (a *Archive) Load(ctx context.Context, key string) (*DriftReport, error) {
	if a.prefix != "" && !strings.HasPrefix(key, a.prefix+"/") {
		return nil, fmt.Errorf("%w: %s", ErrUnknownArchive, key)
	}

	obj, err := a.client.GetObject(ctx, a.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("download %s: %w", key, err)
	}
	defer obj.Close()

	var report DriftReport
	if err := json.NewDecoder(obj).Decode(&report); err != nil {
		return nil, fmt.Errorf("decode %s: %w", key, err)
	}
	return &report, nil
}
