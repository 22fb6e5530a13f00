package model

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Source is a handle to document content that lives outside the Document itself,
// such as a local file or an object in storage.
type Source interface {
	// Name returns the base file name used to default the document name and extension.
	Name() string
	// Open returns a reader over the content. Callers must close it.
	Open(ctx context.Context) (io.ReadCloser, error)
}

// FileSource reads document content from the local filesystem.
type FileSource struct {
	Path string
}

func (f FileSource) Name() string { return filepath.Base(f.Path) }

func (f FileSource) Open(_ context.Context) (io.ReadCloser, error) {
	return os.Open(f.Path)
}

// Document is a file to be signed. Exactly one of Data, Encoded or Source carries the payload.
// Documents reconstructed from a server listing carry no payload, only ID, Name, Extension and URI.
type Document struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Extension string `json:"extension,omitempty"`
	URI       string `json:"uri,omitempty"`

	Data    []byte `json:"-"` // raw inline payload
	Encoded string `json:"-"` // base64 inline payload
	Source  Source `json:"-"`
}

// NewDocumentFromSource creates a document backed by a source, with name and extension
// taken from the source's base name.
func NewDocumentFromSource(src Source) *Document {
	d := &Document{Source: src}
	d.ApplyDefaults()
	return d
}

func (d *Document) Identifier() int      { return d.ID }
func (d *Document) SetIdentifier(id int) { d.ID = id }

// ApplyDefaults fills Name and Extension from the source's base name when they are empty.
func (d *Document) ApplyDefaults() {
	if d.Source == nil {
		return
	}
	base := d.Source.Name()
	ext := filepath.Ext(base)
	if d.Name == "" {
		d.Name = strings.TrimSuffix(base, ext)
	}
	if d.Extension == "" {
		d.Extension = strings.TrimPrefix(ext, ".")
	}
}

// PayloadCount returns how many payload slots are populated.
func (d *Document) PayloadCount() int {
	n := 0
	if len(d.Data) > 0 {
		n++
	}
	if d.Encoded != "" {
		n++
	}
	if d.Source != nil {
		n++
	}
	return n
}

// Problems lists the reasons this document cannot be submitted. An empty result means valid.
func (d *Document) Problems() []string {
	var out []string
	if d.ID < 0 {
		out = append(out, "identifier must be positive")
	}
	if strings.TrimSpace(d.Name) == "" {
		out = append(out, "name is required")
	}
	if strings.TrimSpace(d.Extension) == "" {
		out = append(out, "extension is required")
	}
	switch d.PayloadCount() {
	case 0:
		out = append(out, "payload or source is required")
	case 1:
	default:
		out = append(out, "only one of data, encoded data or source may be set")
	}
	return out
}

// FileName is the name used in the multipart content disposition.
func (d *Document) FileName() string {
	if d.Extension == "" {
		return d.Name
	}
	return d.Name + "." + d.Extension
}
