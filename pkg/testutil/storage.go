package testutil

import (
	"context"
	"fmt"

	"github.com/playden-lab/backend/pkg/storage"
)

// MockStorage pretends every upload succeeds unless a func is set. Uploaded
// objects are kept in Uploaded.
type MockStorage struct {
	UploadFunc     func(context.Context, *storage.UploadObject) (*storage.UploadResponse, error)
	BulkUploadFunc func(context.Context, []*storage.UploadObject) ([]*storage.UploadResponse, error)

	Uploaded []*storage.UploadObject
}

func (m *MockStorage) Upload(
	ctx context.Context, obj *storage.UploadObject,
) (*storage.UploadResponse, error) {
	if m.UploadFunc != nil {
		return m.UploadFunc(ctx, obj)
	}

	m.Uploaded = append(m.Uploaded, obj)
	return mockUploadResponse(obj), nil
}

func (m *MockStorage) BulkUpload(
	ctx context.Context, objs []*storage.UploadObject,
) ([]*storage.UploadResponse, error) {
	if m.BulkUploadFunc != nil {
		return m.BulkUploadFunc(ctx, objs)
	}

	resps := make([]*storage.UploadResponse, 0, len(objs))
	for _, obj := range objs {
		m.Uploaded = append(m.Uploaded, obj)
		resps = append(resps, mockUploadResponse(obj))
	}

	return resps, nil
}

func mockUploadResponse(obj *storage.UploadObject) *storage.UploadResponse {
	return &storage.UploadResponse{
		Url:      fmt.Sprintf("https://storage.test/%s/%s/%s", obj.Bucket, obj.Prefix, obj.FileName),
		FileName: obj.FileName,
	}
}
