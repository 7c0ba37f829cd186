// Package storage persists uploaded document bytes. Keys are opaque to callers.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/changhyeonkim/together-culture/go-api-server/internal/config"
	"github.com/google/uuid"
)

var ErrObjectNotFound = errors.New("storage: object not found")

type Store interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}

// New selects the backend from STORAGE_DRIVER
func New(ctx context.Context, cfg *config.Config) (Store, error) {
	switch cfg.Storage.Driver {
	case config.StorageLocal:
		return NewLocalStore(cfg.Storage.UploadDir)
	case config.StorageMinio:
		return NewMinioStore(ctx, cfg.Storage)
	default:
		return nil, fmt.Errorf("지원하지 않는 STORAGE_DRIVER: %s", cfg.Storage.Driver)
	}
}

// maxKeyNameBytes keeps "<uuid>_<name>" well under the 255 byte filename limit of local disks
const maxKeyNameBytes = 128

// BaseName strips any client-supplied directories (either separator) and control characters
func BaseName(fileName string) string {
	base := filepath.Base(strings.ReplaceAll(fileName, "\\", "/"))
	base = strings.Map(func(r rune) rune {
		switch {
		case r == '/' || r == '\\' || r == ':' || r < 0x20:
			return '_'
		}
		return r
	}, base)
	if base == "." || base == "" {
		base = "file"
	}
	return base
}

// TruncateName shortens name to at most maxBytes, keeping a short extension and never
// splitting a UTF-8 sequence.
func TruncateName(name string, maxBytes int) string {
	if len(name) <= maxBytes {
		return name
	}
	ext := filepath.Ext(name)
	if len(ext) > 16 || len(ext) >= maxBytes {
		ext = ""
	}
	stem := strings.TrimSuffix(name, ext)
	cut := maxBytes - len(ext)
	for cut > 0 && !utf8.RuneStart(stem[cut]) {
		cut--
	}
	return stem[:cut] + ext
}

// GenerateKey builds the unique stored name "<uuid>_<basename>" for an uploaded file
func GenerateKey(fileName string) string {
	return uuid.NewString() + "_" + TruncateName(BaseName(fileName), maxKeyNameBytes)
}
