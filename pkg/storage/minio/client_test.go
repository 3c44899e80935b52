package minio

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/angelmondragon/talentconnect-backend/pkg/storage"
	miniogo "github.com/minio/minio-go/v7"
)

type fakeAPI struct {
	objects   map[string]string
	types     map[string]string
	bucketOK  bool
	removeErr error
	removed   []string
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{objects: map[string]string{}, types: map[string]string{}, bucketOK: true}
}

func (f *fakeAPI) PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts miniogo.PutObjectOptions) (miniogo.UploadInfo, error) {
	b, err := io.ReadAll(reader)
	if err != nil {
		return miniogo.UploadInfo{}, err
	}
	f.objects[objectName] = string(b)
	f.types[objectName] = opts.ContentType
	return miniogo.UploadInfo{Bucket: bucketName, Key: objectName, Size: int64(len(b))}, nil
}

func (f *fakeAPI) RemoveObject(ctx context.Context, bucketName, objectName string, opts miniogo.RemoveObjectOptions) error {
	if f.removeErr != nil {
		return f.removeErr
	}
	f.removed = append(f.removed, objectName)
	delete(f.objects, objectName)
	return nil
}

func (f *fakeAPI) BucketExists(ctx context.Context, bucketName string) (bool, error) {
	return f.bucketOK, nil
}

func TestUploadAndDelete(t *testing.T) {
	api := newFakeAPI()
	client := &Client{api: api, bucket: "talent", publicBase: "http://localhost:9000/talent"}

	obj, err := client.Upload(context.Background(), storage.UploadInput{
		Key:         "talentconnect/equipment/u1/img.png",
		ContentType: "image/png",
		Size:        3,
		Body:        strings.NewReader("png"),
	})
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if obj.SecureURL != "http://localhost:9000/talent/talentconnect/equipment/u1/img.png" {
		t.Fatalf("unexpected url %q", obj.SecureURL)
	}
	if api.types["talentconnect/equipment/u1/img.png"] != "image/png" {
		t.Fatalf("content type not forwarded")
	}

	if err := client.Delete(context.Background(), obj.SecureURL); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if len(api.removed) != 1 || api.removed[0] != "talentconnect/equipment/u1/img.png" {
		t.Fatalf("unexpected removals %v", api.removed)
	}
}

func TestDeleteError(t *testing.T) {
	api := newFakeAPI()
	api.removeErr = errors.New("access denied")
	client := &Client{api: api, bucket: "talent", publicBase: "http://localhost:9000/talent"}

	if err := client.Delete(context.Background(), "talentconnect/cv/a.pdf"); err == nil {
		t.Fatal("expected delete error")
	}
}

func TestPingMissingBucket(t *testing.T) {
	api := newFakeAPI()
	api.bucketOK = false
	client := &Client{api: api, bucket: "talent"}
	if err := client.Ping(context.Background()); err == nil {
		t.Fatal("expected missing bucket error")
	}

	api.bucketOK = true
	if err := client.Ping(context.Background()); err != nil {
		t.Fatalf("Ping: %v", err)
	}
}

func TestObjectKeyOnlyStripsOwnPrefix(t *testing.T) {
	client := &Client{api: newFakeAPI(), bucket: "talent", publicBase: "http://localhost:9000/talent"}
	if got := client.ObjectKey("http://localhost:9000/talent/talentconnect/cv/u1/a.pdf"); got != "talentconnect/cv/u1/a.pdf" {
		t.Fatalf("unexpected key %q", got)
	}
	if got := client.ObjectKey("https://elsewhere.example.com/talentconnect/cv/u1/a.pdf"); strings.HasPrefix(got, "talentconnect/") {
		t.Fatalf("foreign url resolved to an owned key %q", got)
	}
}
