// Package host describes the capabilities the note collection exposes to the
// analysis workflow: enumerating and reading documents, creating and opening
// new ones, showing notices and persisting a small settings blob.
package host

import (
	"context"
	"path"
	"strings"
)

// Document is a note owned by the host. It is read-only to callers.
type Document struct {
	Path  string // relative to the collection root, forward slashes
	Title string // basename without extension; the [[wikilink]] target
}

// NewDocument builds a Document for a collection-relative path.
func NewDocument(p string) Document {
	return Document{Path: p, Title: TitleOf(p)}
}

// TitleOf returns the link title for a document path.
func TitleOf(p string) string {
	base := path.Base(strings.ReplaceAll(p, "\\", "/"))
	return strings.TrimSuffix(base, path.Ext(base))
}

// Host is the set of capabilities the workflow needs.
type Host interface {
	ListDocuments(ctx context.Context) ([]Document, error)
	ReadDocument(ctx context.Context, doc Document) (string, error)
	// CreateDocument must fail rather than overwrite an existing document.
	CreateDocument(ctx context.Context, path, content string) (Document, error)
	OpenDocument(ctx context.Context, doc Document) error
	Notice(msg string)

	// LoadData returns nil, nil when nothing has been persisted.
	LoadData() ([]byte, error)
	SaveData(data []byte) error
}
