package payload

import (
	"bytes"
	"fmt"
	"io"
	"mime"
	"strings"

	"hancock/internal/model"
)

const crlf = "\r\n"

// Header is a single part header. Order is preserved on the wire.
type Header struct {
	Key   string
	Value string
}

// Part is one section of a multipart body.
type Part struct {
	Headers []Header
	Body    []byte
}

// Multipart assembles parts into a body delimited by a fixed boundary. The same boundary
// must appear in the request's Content-Type header; use ContentType for that.
type Multipart struct {
	boundary string
	parts    []Part
}

func NewMultipart(boundary string) *Multipart {
	return &Multipart{boundary: boundary}
}

func (m *Multipart) Boundary() string { return m.boundary }

// ContentType is the request header value matching this body.
func (m *Multipart) ContentType() string {
	return "multipart/form-data; boundary=" + m.boundary
}

func (m *Multipart) Add(p Part) {
	m.parts = append(m.parts, p)
}

func (m *Multipart) Parts() []Part { return m.parts }

// WriteTo serializes the body: a leading CRLF, each part opened by its delimiter and
// followed by CRLF, and the closing delimiter.
func (m *Multipart) WriteTo(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString(crlf)
	for _, p := range m.parts {
		buf.WriteString("--" + m.boundary + crlf)
		for _, h := range p.Headers {
			buf.WriteString(h.Key + ": " + h.Value + crlf)
		}
		buf.WriteString(crlf)
		buf.Write(p.Body)
		buf.WriteString(crlf)
	}
	buf.WriteString("--" + m.boundary + "--" + crlf)
	return buf.WriteTo(w)
}

func (m *Multipart) Bytes() []byte {
	var buf bytes.Buffer
	_, _ = m.WriteTo(&buf)
	return buf.Bytes()
}

// JSONPart wraps the envelope definition.
func JSONPart(body []byte) Part {
	return Part{
		Headers: []Header{
			{Key: "Content-Type", Value: "application/json"},
			{Key: "Content-Disposition", Value: "form-data"},
		},
		Body: body,
	}
}

// DocumentPart wraps already loaded document content. When encoded is true the content is
// base64 text and is labelled as such.
func DocumentPart(d *model.Document, content []byte, encoded bool) Part {
	headers := []Header{
		{Key: "Content-Type", Value: contentTypeFor(d.Extension)},
		{Key: "Content-Disposition", Value: fmt.Sprintf("file; filename=%s; documentid=%d", quoteParam(d.FileName()), d.ID)},
	}
	if encoded {
		headers = append(headers, Header{Key: "Content-Transfer-Encoding", Value: "base64"})
	}
	return Part{Headers: headers, Body: content}
}

var paramEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\r", "", "\n", "")

// quoteParam renders v as a header quoted-string. Line breaks are dropped so a file name
// cannot end the header.
func quoteParam(v string) string {
	return `"` + paramEscaper.Replace(v) + `"`
}

func contentTypeFor(ext string) string {
	ext = strings.TrimPrefix(strings.TrimSpace(ext), ".")
	if ext == "" {
		return "application/octet-stream"
	}
	if t := mime.TypeByExtension("." + strings.ToLower(ext)); t != "" {
		return t
	}
	return "application/octet-stream"
}
