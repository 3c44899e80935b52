// Package storage defines the media store contract shared by the object storage backends.
package storage

import (
	"context"
	"errors"
	"io"
	"strings"
)

// ErrNotConfigured is returned when no media backend is wired.
var ErrNotConfigured = errors.New("media store not configured")

// UploadInput describes one object to write.
type UploadInput struct {
	Key         string
	ContentType string
	Size        int64
	Body        io.Reader
}

// Object is the stored reference returned to clients.
type Object struct {
	SecureURL string `json:"secureUrl"`
	PublicID  string `json:"publicId"`
}

// Store uploads and deletes media by reference.
type Store interface {
	Upload(ctx context.Context, in UploadInput) (*Object, error)
	Delete(ctx context.Context, ref string) error
	Ping(ctx context.Context) error
}

// KeyFromRef converts a public URL or object key into an object key. baseURL is
// the public prefix that precedes object keys in URLs.
func KeyFromRef(ref, baseURL string) string {
	ref = strings.TrimSpace(ref)
	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if base != "" && strings.HasPrefix(ref, base+"/") {
		return strings.TrimPrefix(ref, base+"/")
	}
	return strings.TrimLeft(ref, "/")
}

// KeyResolver is implemented by stores that know the public prefix of their URLs.
type KeyResolver interface {
	ObjectKey(ref string) string
}

// ObjectKey resolves ref into the key store would act on. Stores without a
// public prefix get the ref treated as a bare key.
func ObjectKey(store Store, ref string) string {
	if r, ok := store.(KeyResolver); ok {
		return r.ObjectKey(ref)
	}
	return KeyFromRef(ref, "")
}

// Disabled is the Store used when no backend is configured.
type Disabled struct{}

func (Disabled) Upload(context.Context, UploadInput) (*Object, error) {
	return nil, ErrNotConfigured
}

func (Disabled) Delete(context.Context, string) error {
	return ErrNotConfigured
}

func (Disabled) Ping(context.Context) error {
	return nil
}
