package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/minio/minio-go/v7"
)

// Scheme prefixes object locators stored on accounts.
const Scheme = "s3://"

// Locator returns the s3:// locator of an object.
func Locator(bucket, object string) string {
	return Scheme + bucket + "/" + strings.TrimPrefix(object, "/")
}

// IsLocator reports whether s is an s3:// locator.
func IsLocator(s string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(s)), Scheme)
}

// ParseLocator splits an s3://bucket/object locator.
func ParseLocator(s string) (bucket, object string, err error) {
	s = strings.TrimSpace(s)
	if !IsLocator(s) {
		return "", "", fmt.Errorf("not an object locator: %q", s)
	}
	rest := s[len(Scheme):]
	bucket, object, ok := strings.Cut(rest, "/")
	if !ok || bucket == "" || object == "" {
		return "", "", fmt.Errorf("object locator needs a bucket and a key: %q", s)
	}
	return bucket, object, nil
}

// Remove deletes the object behind locator. A missing object is not an error.
func Remove(ctx context.Context, client Client, locator string) error {
	bucket, object, err := ParseLocator(locator)
	if err != nil {
		return err
	}
	if err := client.RemoveObject(ctx, bucket, object, minio.RemoveObjectOptions{}); err != nil && !IsNotFound(err) {
		return fmt.Errorf("failed to remove %s: %w", locator, err)
	}
	return nil
}
