package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"unicode"

	"github.com/angelmondragon/talentconnect-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/talentconnect-backend/pkg/errors"
	"github.com/angelmondragon/talentconnect-backend/pkg/logger"
	"github.com/angelmondragon/talentconnect-backend/pkg/storage"
	"github.com/google/uuid"
)

const (
	keyPrefix       = "talentconnect"
	sniffBytes      = 3072
	defaultMaxBytes = 10 << 20
)

// Service uploads user files into the media store.
type Service interface {
	Upload(ctx context.Context, userID uuid.UUID, input UploadInput) (*storage.Object, error)
	MaxBytes() int64
}

// UploadInput is one multipart file plus the folder it belongs to.
type UploadInput struct {
	Folder   string
	FileName string
	Size     int64
	Body     io.Reader
}

type ServiceParams struct {
	Store    storage.Store
	Logger   *logger.Logger
	MaxBytes int64
	NewID    func() uuid.UUID
}

type service struct {
	store    storage.Store
	logg     *logger.Logger
	maxBytes int64
	newID    func() uuid.UUID
}

func NewService(params ServiceParams) (Service, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	store := params.Store
	if store == nil {
		store = storage.Disabled{}
	}
	maxBytes := params.MaxBytes
	if maxBytes <= 0 {
		maxBytes = defaultMaxBytes
	}
	newID := params.NewID
	if newID == nil {
		newID = uuid.New
	}
	return &service{store: store, logg: params.Logger, maxBytes: maxBytes, newID: newID}, nil
}

func (s *service) MaxBytes() int64 { return s.maxBytes }

func (s *service) Upload(ctx context.Context, userID uuid.UUID, input UploadInput) (*storage.Object, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	folder, err := enums.ParseMediaFolder(input.Folder)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid folder").
			WithDetails(map[string]any{"folder": "must be one of cv, certificates, equipment, avatars"})
	}
	if input.Body == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "file is required")
	}
	if input.Size <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "file is empty")
	}
	if input.Size > s.maxBytes {
		return nil, pkgerrors.Newf(pkgerrors.CodeValidation, "file must be at most %d MB", s.maxBytes>>20)
	}

	head := make([]byte, sniffBytes)
	n, err := io.ReadFull(input.Body, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "read upload")
	}
	head = head[:n]
	contentType, ok := allowedMime(folder, sniffMimeType(head))
	if !ok {
		return nil, pkgerrors.Newf(pkgerrors.CodeValidation, "%s uploads must be %s", folder, allowedMimeDescription(folder))
	}

	key := buildObjectKey(folder, userID, s.newID(), input.FileName)
	obj, err := s.store.Upload(ctx, storage.UploadInput{
		Key:         key,
		ContentType: contentType,
		Size:        input.Size,
		Body:        io.MultiReader(bytes.NewReader(head), input.Body),
	})
	if errors.Is(err, storage.ErrNotConfigured) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "media storage is not configured")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "upload media")
	}

	logCtx := s.logg.WithFields(ctx, map[string]any{
		"user_id":      userID.String(),
		"folder":       string(folder),
		"content_type": contentType,
		"size_bytes":   input.Size,
	})
	s.logg.Info(logCtx, "media.uploaded")
	return obj, nil
}

// OwnedPrefix is the key prefix under which uploads of userID into folder land.
func OwnedPrefix(folder enums.MediaFolder, userID uuid.UUID) string {
	return path.Join(keyPrefix, string(folder), userID.String()) + "/"
}

// IsOwnedKey reports whether key is a plain object key inside the upload area
// of userID in folder.
func IsOwnedKey(key string, folder enums.MediaFolder, userID uuid.UUID) bool {
	prefix := OwnedPrefix(folder, userID)
	return len(key) > len(prefix) && strings.HasPrefix(key, prefix) && path.Clean(key) == key
}

func buildObjectKey(folder enums.MediaFolder, userID, id uuid.UUID, fileName string) string {
	name := id.String()
	if cleanName := sanitizeFileName(fileName); cleanName != "" {
		name += "-" + cleanName
	}
	return OwnedPrefix(folder, userID) + name
}

func sanitizeFileName(name string) string {
	clean := path.Base(strings.ReplaceAll(strings.TrimSpace(name), "\\", "/"))
	if clean == "" || clean == "." || clean == "/" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(clean))
	for _, r := range clean {
		switch {
		case unicode.IsControl(r):
			continue
		case unicode.IsSpace(r):
			b.WriteRune('-')
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '.' || r == '-' || r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return strings.Trim(b.String(), "-_.")
}
