package port

import (
	"context"
	"io"
)

// PutObjectInput describes an object to store. FileName, when set, becomes
// the download name offered to whoever opens the object.
type PutObjectInput struct {
	Bucket      string
	Key         string
	Body        io.Reader
	ContentType string
	FileName    string
	Metadata    map[string]string
}

// PutObjectOutput contains the result of a successful upload.
type PutObjectOutput struct {
	Location string
	ETag     string
}

// ObjectStorage abstracts the bucket where exported reports are published.
type ObjectStorage interface {
	Put(ctx context.Context, input PutObjectInput) (*PutObjectOutput, error)
	PresignGet(ctx context.Context, bucket, key string, expirySeconds int64) (string, error)
}
