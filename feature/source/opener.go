package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"catalog-sync/core/fetch"
	"catalog-sync/core/storage"

	"github.com/minio/minio-go/v7"
)

// ErrNoStorage is returned for s3:// locators when no object storage is configured.
var ErrNoStorage = errors.New("object storage is not configured")

// Opener resolves playlist and feed locators to readable streams.
// Supported locators are http(s) URLs, s3://bucket/key, file:// URLs and plain paths.
type Opener struct {
	http    *fetch.Client
	storage storage.Client
}

// NewOpener creates an Opener. storage may be nil.
func NewOpener(http *fetch.Client, storage storage.Client) *Opener {
	return &Opener{http: http, storage: storage}
}

// Open returns the content behind locator. The caller closes it.
func (o *Opener) Open(ctx context.Context, locator string) (io.ReadCloser, error) {
	locator = strings.TrimSpace(locator)
	if locator == "" {
		return nil, errors.New("locator is blank")
	}

	switch {
	case storage.IsLocator(locator):
		return o.openObject(ctx, locator)
	case IsRemote(locator):
		return o.http.Open(ctx, locator, nil)
	default:
		return openFile(locator)
	}
}

func (o *Opener) openObject(ctx context.Context, locator string) (io.ReadCloser, error) {
	if o.storage == nil {
		return nil, ErrNoStorage
	}
	bucket, object, err := storage.ParseLocator(locator)
	if err != nil {
		return nil, err
	}
	reader, err := o.storage.GetObject(ctx, bucket, object, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get object %s: %w", locator, err)
	}
	return reader, nil
}

func openFile(locator string) (io.ReadCloser, error) {
	path := locator
	if strings.HasPrefix(strings.ToLower(locator), "file://") {
		u, err := url.Parse(locator)
		if err != nil {
			return nil, fmt.Errorf("invalid file locator: %w", err)
		}
		path = u.Path
	}
	file, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	return file, nil
}

// IsRemote reports whether locator is an http(s) URL.
func IsRemote(locator string) bool {
	lower := strings.ToLower(strings.TrimSpace(locator))
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}
