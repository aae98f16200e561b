package interfaces

import "context"

// DocumentStore keeps uploaded documents. A ref is what gets stored on the
// employee row: a relative /Uploads path or an absolute URL.
type DocumentStore interface {
	Put(ctx context.Context, name, contentType string, b []byte) (ref string, err error)
	Delete(ctx context.Context, ref string) error
	Exists(ctx context.Context, ref string) (bool, error)
	// Read returns the content of a stored file by its bare name. Missing
	// files yield an error wrapping fs.ErrNotExist.
	Read(ctx context.Context, name string) ([]byte, error)
}
