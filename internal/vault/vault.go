// Package vault implements host.Host over an Obsidian vault directory.
package vault

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/suykerbuyk/note-connections/internal/host"
)

var (
	noticePrefix = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF"))
	noticeBody   = lipgloss.NewStyle().Foreground(lipgloss.Color("#DDDDDD"))
)

// Opener launches an external handler for uri.
type Opener func(ctx context.Context, uri string) error

// Vault is a host.Host backed by the filesystem.
type Vault struct {
	Root         string
	SettingsPath string
	Out          io.Writer // notices; defaults to os.Stderr
	Open         Opener    // nil disables opening
}

// New returns a Vault rooted at root that opens documents with openCommand.
// An empty openCommand disables opening.
func New(root, settingsPath, openCommand string) *Vault {
	v := &Vault{Root: root, SettingsPath: settingsPath, Out: os.Stderr}
	if openCommand != "" {
		v.Open = CommandOpener(openCommand)
	}
	return v
}

// CommandOpener runs command with the URI as its only argument.
func CommandOpener(command string) Opener {
	return func(ctx context.Context, uri string) error {
		return exec.CommandContext(ctx, command, uri).Start()
	}
}

// ListDocuments returns every markdown file in the vault, sorted by path.
// Dot-directories (.obsidian, .trash, state dirs) are skipped.
func (v *Vault) ListDocuments(ctx context.Context) ([]host.Document, error) {
	var docs []host.Document

	err := filepath.WalkDir(v.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == v.Root {
				return err
			}
			return nil // skip inaccessible entries
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		name := d.Name()
		if d.IsDir() {
			if path != v.Root && strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.EqualFold(filepath.Ext(name), ".md") {
			return nil
		}

		rel, err := filepath.Rel(v.Root, path)
		if err != nil {
			return nil
		}
		docs = append(docs, host.NewDocument(filepath.ToSlash(rel)))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list vault %s: %w", v.Root, err)
	}

	sort.Slice(docs, func(i, j int) bool { return docs[i].Path < docs[j].Path })
	return docs, nil
}

// ReadDocument returns the full body of doc.
func (v *Vault) ReadDocument(ctx context.Context, doc host.Document) (string, error) {
	abs, err := v.resolve(doc.Path)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", doc.Path, err)
	}
	return string(data), nil
}

// CreateDocument writes a new file. An existing file is left untouched and
// reported as an error wrapping fs.ErrExist.
func (v *Vault) CreateDocument(ctx context.Context, path, content string) (host.Document, error) {
	abs, err := v.resolve(path)
	if err != nil {
		return host.Document{}, err
	}
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return host.Document{}, fmt.Errorf("create dir for %s: %w", path, err)
	}

	f, err := os.OpenFile(abs, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return host.Document{}, fmt.Errorf("create %s: %w", path, err)
	}
	if _, err := f.WriteString(content); err != nil {
		f.Close()
		return host.Document{}, fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return host.Document{}, fmt.Errorf("close %s: %w", path, err)
	}

	return host.NewDocument(filepath.ToSlash(path)), nil
}

// OpenDocument hands the document's obsidian:// URI to the opener.
func (v *Vault) OpenDocument(ctx context.Context, doc host.Document) error {
	if v.Open == nil {
		return nil
	}
	if err := v.Open(ctx, URI(v.Root, doc)); err != nil {
		return fmt.Errorf("open %s: %w", doc.Path, err)
	}
	return nil
}

// URI returns the obsidian:// link that opens doc in the vault at root.
func URI(root string, doc host.Document) string {
	q := url.Values{}
	q.Set("vault", filepath.Base(root))
	q.Set("file", doc.Path)
	return "obsidian://open?" + strings.ReplaceAll(q.Encode(), "+", "%20")
}

// Notice prints a one-line styled message.
func (v *Vault) Notice(msg string) {
	out := v.Out
	if out == nil {
		out = os.Stderr
	}
	fmt.Fprintln(out, noticePrefix.Render("note-connections:")+" "+noticeBody.Render(msg))
}

// LoadData reads the settings blob; a missing file is not an error.
func (v *Vault) LoadData() ([]byte, error) {
	data, err := os.ReadFile(v.SettingsPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read settings: %w", err)
	}
	return data, nil
}

// SaveData replaces the settings blob. The file holds an API key, so it is
// written owner-only.
func (v *Vault) SaveData(data []byte) error {
	if err := os.MkdirAll(filepath.Dir(v.SettingsPath), 0o755); err != nil {
		return fmt.Errorf("create settings dir: %w", err)
	}
	tmp := v.SettingsPath + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	if err := os.Rename(tmp, v.SettingsPath); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replace settings: %w", err)
	}
	return nil
}

// resolve maps a vault-relative path to an absolute one, refusing escapes.
func (v *Vault) resolve(rel string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(rel))
	if filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("path %q escapes the vault", rel)
	}
	return filepath.Join(v.Root, clean), nil
}
