// Package storage holds committed document attachments in an S3-compatible
// object store. Objects are streamed; nothing touches local disk.
package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// PutObjectOptions describe an upload. Size is -1 when unknown.
type PutObjectOptions struct {
	Size        int64
	ContentType string
	Metadata    map[string]string
}

// ObjectInfo contains basic information about a stored object.
type ObjectInfo struct {
	Key          string
	Size         int64
	ETag         string
	ContentType  string
	LastModified time.Time
	Metadata     map[string]string
}

// Storage is the attachment bucket.
type Storage interface {
	Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error)
	Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error)
	Delete(ctx context.Context, key string) error
	// PresignGet returns a time-limited download URL that needs no credentials.
	PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error)
	// Ping checks that the bucket is reachable.
	Ping(ctx context.Context) error
}

// AttachmentKey returns a fresh object key attachments/<documentID>/<uuid><ext>.
// Files of a document that has no id yet go under attachments/new/.
// The original name only contributes its lower-cased extension.
func AttachmentKey(documentID int64, name string) string {
	ext := strings.ToLower(path.Ext(strings.ReplaceAll(name, "\\", "/")))
	if len(ext) > 16 || strings.ContainsAny(ext, " /?#") {
		ext = ""
	}
	scope := "new"
	if documentID > 0 {
		scope = strconv.FormatInt(documentID, 10)
	}
	return fmt.Sprintf("attachments/%s/%s%s", scope, uuid.NewString(), ext)
}
