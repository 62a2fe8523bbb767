package cluster

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	"dns-fleet/core/reconcile"
	"dns-fleet/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func sampleReport() *DriftReport {
	return &DriftReport{
		A: "ns1",
		B: "ns2",
		Drift: &reconcile.DriftResult{Count: 1, Groups: []reconcile.GroupDrift{
			{Name: "kids", Missing: reconcile.SideB},
		}},
		GeneratedAt: t0,
	}
}

func TestArchive_Save(t *testing.T) {
	ctx := context.Background()
	client := new(mocks.Client)

	var uploaded []byte
	client.On("PutObject", ctx, "fleet", "reports/drift/ns1-ns2-1772366400.json", mock.Anything, mock.AnythingOfType("int64"),
		minio.PutObjectOptions{ContentType: "application/json"}).
		Run(func(args mock.Arguments) {
			uploaded, _ = io.ReadAll(args.Get(3).(io.Reader))
		}).
		Return(minio.UploadInfo{}, nil)

	archive := NewArchive(client, "fleet", "/reports/drift/")
	archive.now = func() time.Time { return t0 }

	key, err := archive.Save(ctx, sampleReport())
	require.NoError(t, err)
	assert.Equal(t, "reports/drift/ns1-ns2-1772366400.json", key)
	client.AssertExpectations(t)

	var decoded DriftReport
	require.NoError(t, json.Unmarshal(uploaded, &decoded))
	assert.Equal(t, 1, decoded.Drift.Count)
	assert.Equal(t, "kids", decoded.Drift.Groups[0].Name)
}

func TestArchive_Load(t *testing.T) {
	ctx := context.Background()
	body, err := json.Marshal(sampleReport())
	require.NoError(t, err)

	client := new(mocks.Client)
	client.On("GetObject", ctx, "fleet", "reports/drift/ns1-ns2-1.json", mock.Anything).
		Return(io.NopCloser(bytes.NewReader(body)), nil)

	archive := NewArchive(client, "fleet", "reports/drift")

	report, err := archive.Load(ctx, "reports/drift/ns1-ns2-1.json")
	require.NoError(t, err)
	assert.Equal(t, "ns1", report.A)

	_, err = archive.Load(ctx, "secrets/other.json")
	assert.ErrorIs(t, err, ErrUnknownArchive)
}

func TestService_ArchiveDrift(t *testing.T) {
	ctx := context.Background()

	t.Run("Disabled", func(t *testing.T) {
		svc := newTestService(t, map[string]*fakeSource{}, testConfig(), nil)
		_, err := svc.ArchiveDrift(ctx, sampleReport())
		assert.ErrorIs(t, err, ErrArchiveDisabled)
		_, err = svc.Archives(ctx)
		assert.ErrorIs(t, err, ErrArchiveDisabled)
	})

	t.Run("Upload failure", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("PutObject", ctx, "fleet", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(minio.UploadInfo{}, errors.New("bucket does not exist"))

		svc := newTestService(t, map[string]*fakeSource{}, testConfig(), NewArchive(client, "fleet", "reports/drift"))
		_, err := svc.ArchiveDrift(ctx, sampleReport())
		assert.ErrorContains(t, err, "bucket does not exist")
	})

	t.Run("Empty report", func(t *testing.T) {
		svc := newTestService(t, map[string]*fakeSource{}, testConfig(), NewArchive(new(mocks.Client), "fleet", ""))
		_, err := svc.ArchiveDrift(ctx, &DriftReport{})
		assert.ErrorIs(t, err, reconcile.ErrMalformedInput)
	})
}
