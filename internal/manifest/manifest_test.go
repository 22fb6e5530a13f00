package manifest

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"hancock/internal/model"
	"hancock/internal/storage"
	"hancock/internal/storage/mocks"
)

const leaseYAML = `
email:
  subject: Lease for 42 Main St
documents:
  - key: lease
    file: lease.pdf
  - key: addendum
    id: 6
    name: Addendum
    extension: txt
    data: "Pets are allowed."
recipients:
  - key: tenant
    name: Bob
    email: b@mail.com
    routing_order: 1
  - key: landlord
    id: 3
    name: Edna
    email: e@mail.com
    type: editor
  - key: agent
    name: Fump
    email: f@mail.com
    type: carbon_copy
signature_requests:
  - recipient: tenant
    document: lease
    tabs:
      - type: sign_here
        page_number: 1
        x_position: 100
        y_position: 200
      - type: initial_here
        anchor_string: "Initial:"
        anchor_x_offset: 10
  - recipient: landlord
    document: addendum
    tabs:
      - type: date_signed
        page_number: 1
`

func TestParseAndBuild(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "lease.pdf"), []byte("%PDF"), 0o600))

	m, err := Parse(strings.NewReader(leaseYAML))
	require.NoError(t, err)

	env, err := Build(m, Sources{BaseDir: dir})
	require.NoError(t, err)

	assert.Equal(t, "Lease for 42 Main St", env.Email.Subject)
	assert.Equal(t, model.StateUnsent, env.State())

	require.Len(t, env.Documents, 2)
	lease := env.Documents[0]
	assert.Equal(t, "lease", lease.Name)
	assert.Equal(t, "pdf", lease.Extension)
	assert.Equal(t, model.FileSource{Path: filepath.Join(dir, "lease.pdf")}, lease.Source)
	assert.Equal(t, 6, env.Documents[1].ID)
	assert.Equal(t, []byte("Pets are allowed."), env.Documents[1].Data)

	require.Len(t, env.Recipients, 3)
	assert.Equal(t, "Bob", env.Recipients[0].Name)
	assert.Equal(t, model.RecipientSigner, env.Recipients[0].Type)
	assert.Equal(t, 1, env.Recipients[0].RoutingOrder)
	assert.Equal(t, model.RecipientEditor, env.Recipients[1].Type)
	assert.Equal(t, 3, env.Recipients[1].ID)
	assert.Equal(t, "Fump", env.Recipients[2].Name)

	require.Len(t, env.SignatureRequests, 2)
	tabs := env.SignatureRequests[0].Tabs
	require.Len(t, tabs, 2)
	assert.Equal(t, model.NewTab(model.TabSignHere, model.TabAttributes{PageNumber: 1, XPosition: 100, YPosition: 200}), tabs[0])
	assert.Equal(t, "Initial:", tabs[1].Attributes.AnchorString)
	assert.Equal(t, 10, tabs[1].Attributes.AnchorXOffset)
	assert.Same(t, env.Recipients[0], env.SignatureRequests[0].Recipient)
	assert.Same(t, lease, env.SignatureRequests[0].Document)
}

func TestParse_JSON(t *testing.T) {
	m, err := Parse(strings.NewReader(`{
		"documents": [{"key": "d", "name": "note", "extension": "txt", "encoded": "SGk="}],
		"recipients": [{"key": "r", "name": "Bob", "email": "b@mail.com"}],
		"signature_requests": [{"recipient": "r", "document": "d", "tabs": [{"type": "sign_here", "page_number": 2}]}]
	}`))
	require.NoError(t, err)

	env, err := Build(m, Sources{})
	require.NoError(t, err)
	assert.Equal(t, "SGk=", env.Documents[0].Encoded)
	assert.Equal(t, 2, env.SignatureRequests[0].Tabs[0].Attributes.PageNumber)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{name: "empty", input: "", wantErr: "manifest is empty"},
		{name: "unknown key", input: "documents: []\nsurprise: true\n", wantErr: "surprise"},
		{name: "bad yaml", input: "documents: [\n", wantErr: "invalid manifest"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.input))
			var merr *Error
			require.ErrorAs(t, err, &merr)
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestBuild_Problems(t *testing.T) {
	m := &Manifest{
		Documents: []Document{
			{Key: "a", Data: "x", File: "a.pdf"},
			{Key: "b"},
			{Key: "c", Object: "docs/c.pdf"},
			{Key: "d", Upload: "d.pdf"},
			{Key: "e", Data: "x", Name: "e", Extension: "txt"},
			{Key: "e", Data: "y"},
			{Data: "z"},
		},
		Recipients: []Recipient{
			{Key: "r", Name: "Bob", Email: "b@mail.com"},
			{Key: "r", Name: "Bob again", Email: "b2@mail.com"},
		},
		SignatureRequests: []Request{
			{Recipient: "ghost", Document: "e"},
			{Recipient: "r", Document: "missing"},
		},
	}

	_, err := Build(m, Sources{})
	var merr *Error
	require.ErrorAs(t, err, &merr)
	assert.Equal(t, []string{
		"documents[0] (a): exactly one of file, object, data, encoded or upload is required",
		"documents[1] (b): exactly one of file, object, data, encoded or upload is required",
		`documents[2] (c): object "docs/c.pdf": no object storage configured`,
		`documents[3] (d): upload "d.pdf" was not received`,
		`documents[5]: duplicate key "e"`,
		"documents[6]: key is required",
		`recipients[1]: duplicate key "r"`,
		`signature_requests[0]: unknown recipient "ghost"`,
		`signature_requests[1]: unknown document "missing"`,
	}, merr.Problems)
}

type memSource struct {
	name string
	data []byte
}

func (s memSource) Name() string { return s.name }
func (s memSource) Open(context.Context) (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(s.data)), nil
}

func TestBuild_ObjectAndUploadSources(t *testing.T) {
	store := new(mocks.MockStorage)
	store.On("Get", mock.Anything, "contracts/nda.pdf").
		Return(io.NopCloser(strings.NewReader("nda")), storage.ObjectInfo{}, nil)

	m := &Manifest{
		Documents: []Document{
			{Key: "nda", Object: "contracts/nda.pdf"},
			{Key: "scan", Upload: "scan.png"},
		},
	}
	env, err := Build(m, Sources{
		Store:   store,
		Uploads: map[string]model.Source{"scan.png": memSource{name: "scan.png", data: []byte("png")}},
	})
	require.NoError(t, err)

	nda := env.Documents[0]
	assert.Equal(t, "nda", nda.Name)
	assert.Equal(t, "pdf", nda.Extension)
	rc, err := nda.Source.Open(context.Background())
	require.NoError(t, err)
	b, _ := io.ReadAll(rc)
	assert.Equal(t, "nda", string(b))

	assert.Equal(t, "scan", env.Documents[1].Name)
	assert.Equal(t, "png", env.Documents[1].Extension)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "envelope.yaml")
	require.NoError(t, os.WriteFile(path, []byte(leaseYAML), 0o600))

	m, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, m.Documents, 2)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "open manifest")
}

func TestBuild_NoLocalFiles(t *testing.T) {
	m := &Manifest{Documents: []Document{{Key: "p", File: "/etc/passwd"}}}
	_, err := Build(m, Sources{NoLocalFiles: true})
	assert.ErrorContains(t, err, "local files are not accepted here")
}
