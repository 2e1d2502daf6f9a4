package host

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrExists is returned by Fake.CreateDocument for an already used path.
var ErrExists = errors.New("document already exists")

// Fake is an in-memory Host for tests.
type Fake struct {
	mu sync.Mutex

	Bodies  map[string]string // path -> body
	Data    []byte
	Notices []string
	Created []Document
	Opened  []Document

	ListErr error
	ReadErr error
	SaveErr error
}

// NewFake returns a Fake holding the given path -> body documents.
func NewFake(bodies map[string]string) *Fake {
	f := &Fake{Bodies: make(map[string]string)}
	for p, b := range bodies {
		f.Bodies[p] = b
	}
	return f
}

func (f *Fake) ListDocuments(ctx context.Context) ([]Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	paths := make([]string, 0, len(f.Bodies))
	for p := range f.Bodies {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	docs := make([]Document, len(paths))
	for i, p := range paths {
		docs[i] = NewDocument(p)
	}
	return docs, nil
}

func (f *Fake) ReadDocument(ctx context.Context, doc Document) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ReadErr != nil {
		return "", f.ReadErr
	}
	body, ok := f.Bodies[doc.Path]
	if !ok {
		return "", fmt.Errorf("read %s: not found", doc.Path)
	}
	return body, nil
}

func (f *Fake) CreateDocument(ctx context.Context, path, content string) (Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.Bodies[path]; ok {
		return Document{}, fmt.Errorf("create %s: %w", path, ErrExists)
	}
	f.Bodies[path] = content
	doc := NewDocument(path)
	f.Created = append(f.Created, doc)
	return doc, nil
}

func (f *Fake) OpenDocument(ctx context.Context, doc Document) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Opened = append(f.Opened, doc)
	return nil
}

func (f *Fake) Notice(msg string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Notices = append(f.Notices, msg)
}

func (f *Fake) LoadData() ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.Data, nil
}

func (f *Fake) SaveData(data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.SaveErr != nil {
		return f.SaveErr
	}
	f.Data = append([]byte(nil), data...)
	return nil
}
