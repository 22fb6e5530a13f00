// Package manifest reads declarative envelope descriptions from YAML or JSON.
package manifest

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"hancock/internal/model"
	"hancock/internal/storage"
)

// Manifest describes one envelope. Documents and recipients are declared once under a key
// and referenced by that key from signature requests.
type Manifest struct {
	Email             Email       `yaml:"email" json:"email"`
	Documents         []Document  `yaml:"documents" json:"documents"`
	Recipients        []Recipient `yaml:"recipients" json:"recipients"`
	SignatureRequests []Request   `yaml:"signature_requests" json:"signature_requests"`
}

type Email struct {
	Subject string `yaml:"subject" json:"subject"`
	Blurb   string `yaml:"blurb" json:"blurb"`
}

// Document names exactly one payload: a local file, an object key, inline text, base64
// data or the name of an uploaded file.
type Document struct {
	Key       string `yaml:"key" json:"key"`
	ID        int    `yaml:"id,omitempty" json:"id,omitempty"`
	Name      string `yaml:"name,omitempty" json:"name,omitempty"`
	Extension string `yaml:"extension,omitempty" json:"extension,omitempty"`
	File      string `yaml:"file,omitempty" json:"file,omitempty"`
	Object    string `yaml:"object,omitempty" json:"object,omitempty"`
	Data      string `yaml:"data,omitempty" json:"data,omitempty"`
	Encoded   string `yaml:"encoded,omitempty" json:"encoded,omitempty"`
	Upload    string `yaml:"upload,omitempty" json:"upload,omitempty"`
}

type Recipient struct {
	Key          string              `yaml:"key" json:"key"`
	ID           int                 `yaml:"id,omitempty" json:"id,omitempty"`
	Name         string              `yaml:"name" json:"name"`
	Email        string              `yaml:"email" json:"email"`
	Type         model.RecipientType `yaml:"type,omitempty" json:"type,omitempty"`
	RoutingOrder int                 `yaml:"routing_order,omitempty" json:"routing_order,omitempty"`
}

type Request struct {
	Recipient string `yaml:"recipient" json:"recipient"`
	Document  string `yaml:"document" json:"document"`
	Tabs      []Tab  `yaml:"tabs" json:"tabs"`
}

// Tab takes its attributes inline next to the type, with snake_case keys.
type Tab struct {
	model.TabAttributes `yaml:",inline"`

	Type model.TabType `yaml:"type" json:"type"`
}

// Sources resolves document payloads that live outside the manifest.
type Sources struct {
	// BaseDir anchors relative file paths, normally the manifest's directory.
	BaseDir string
	// Store serves object keys. Nil when no object storage is configured.
	Store storage.Storage
	// Uploads maps upload names to files received alongside the manifest.
	Uploads map[string]model.Source
	// NoLocalFiles rejects file documents, for manifests from untrusted callers.
	NoLocalFiles bool
}

// Error lists every problem found while parsing or building a manifest.
type Error struct {
	Problems []string
}

func (e *Error) Error() string {
	return "invalid manifest: " + strings.Join(e.Problems, "; ")
}

// Parse decodes a manifest. JSON is accepted since it is valid YAML. Unknown keys are rejected.
func Parse(r io.Reader) (*Manifest, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var m Manifest
	if err := dec.Decode(&m); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &Error{Problems: []string{"manifest is empty"}}
		}
		return nil, &Error{Problems: []string{err.Error()}}
	}
	return &m, nil
}

// Load parses the manifest file at path.
func Load(path string) (*Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open manifest: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Build turns a manifest into an unsent envelope. Identifiers given in the manifest are kept;
// the rest are allocated on submission.
func Build(m *Manifest, src Sources) (*model.Envelope, error) {
	var problems []string
	env := model.NewEnvelope()
	env.Email = model.Email{Subject: m.Email.Subject, Blurb: m.Email.Blurb}

	docs := make(map[string]*model.Document, len(m.Documents))
	for i, d := range m.Documents {
		label := fmt.Sprintf("documents[%d]", i)
		if d.Key == "" {
			problems = append(problems, label+": key is required")
			continue
		}
		if _, dup := docs[d.Key]; dup {
			problems = append(problems, fmt.Sprintf("%s: duplicate key %q", label, d.Key))
			continue
		}
		doc, err := buildDocument(d, src)
		if err != nil {
			problems = append(problems, fmt.Sprintf("%s (%s): %s", label, d.Key, err))
			continue
		}
		docs[d.Key] = doc
		env.AddDocument(doc)
	}

	recipients := make(map[string]*model.Recipient, len(m.Recipients))
	for i, r := range m.Recipients {
		label := fmt.Sprintf("recipients[%d]", i)
		if r.Key == "" {
			problems = append(problems, label+": key is required")
			continue
		}
		if _, dup := recipients[r.Key]; dup {
			problems = append(problems, fmt.Sprintf("%s: duplicate key %q", label, r.Key))
			continue
		}
		rec := model.NewRecipient(r.Name, r.Email)
		rec.ID = r.ID
		rec.RoutingOrder = r.RoutingOrder
		if r.Type != "" {
			rec.Type = r.Type
		}
		recipients[r.Key] = rec
	}

	for i, req := range m.SignatureRequests {
		label := fmt.Sprintf("signature_requests[%d]", i)
		rec, ok := recipients[req.Recipient]
		if !ok {
			problems = append(problems, fmt.Sprintf("%s: unknown recipient %q", label, req.Recipient))
		}
		doc, ok2 := docs[req.Document]
		if !ok2 {
			problems = append(problems, fmt.Sprintf("%s: unknown document %q", label, req.Document))
		}
		if !ok || !ok2 {
			continue
		}
		tabs := make([]model.Tab, 0, len(req.Tabs))
		for _, t := range req.Tabs {
			tabs = append(tabs, model.NewTab(t.Type, t.TabAttributes))
		}
		env.AddSignatureRequest(rec, doc, tabs...)
	}

	// recipients without a request still belong to the envelope, after the requested ones
	for _, r := range m.Recipients {
		if rec, ok := recipients[r.Key]; ok {
			env.AddRecipient(rec)
		}
	}

	if len(problems) > 0 {
		return nil, &Error{Problems: problems}
	}
	return env, nil
}

func buildDocument(d Document, src Sources) (*model.Document, error) {
	set := 0
	for _, v := range []string{d.File, d.Object, d.Data, d.Encoded, d.Upload} {
		if v != "" {
			set++
		}
	}
	if set != 1 {
		return nil, errors.New("exactly one of file, object, data, encoded or upload is required")
	}

	doc := &model.Document{ID: d.ID, Name: d.Name, Extension: d.Extension}
	switch {
	case d.File != "":
		if src.NoLocalFiles {
			return nil, fmt.Errorf("file %q: local files are not accepted here", d.File)
		}
		path := d.File
		if !filepath.IsAbs(path) && src.BaseDir != "" {
			path = filepath.Join(src.BaseDir, path)
		}
		doc.Source = model.FileSource{Path: path}
	case d.Object != "":
		if src.Store == nil {
			return nil, fmt.Errorf("object %q: no object storage configured", d.Object)
		}
		doc.Source = storage.ObjectSource{Store: src.Store, Key: d.Object}
	case d.Data != "":
		doc.Data = []byte(d.Data)
	case d.Encoded != "":
		doc.Encoded = d.Encoded
	case d.Upload != "":
		up, ok := src.Uploads[d.Upload]
		if !ok {
			return nil, fmt.Errorf("upload %q was not received", d.Upload)
		}
		doc.Source = up
	}
	doc.ApplyDefaults()
	return doc, nil
}
