package payload

import (
	"bytes"
	"encoding/json"
	"fmt"

	"hancock/internal/model"
)

// DocumentRef cross-references a multipart document part by its id.
type DocumentRef struct {
	DocumentID int    `json:"documentId"`
	Name       string `json:"name"`
}

// EnvelopeDefinition is the JSON metadata part of an envelope submission.
// Field order is the wire order.
type EnvelopeDefinition struct {
	EmailBlurb   string          `json:"emailBlurb"`
	EmailSubject string          `json:"emailSubject"`
	Status       string          `json:"status"`
	Documents    []DocumentRef   `json:"documents"`
	Recipients   RecipientGroups `json:"recipients"`
}

// NewDefinition builds the metadata for env. Subject and blurb fall back to the template
// independently when the envelope leaves them empty.
func NewDefinition(env *model.Envelope, status model.EnvelopeStatus, fallback model.Email, groups RecipientGroups) EnvelopeDefinition {
	def := EnvelopeDefinition{
		EmailBlurb:   env.Email.Blurb,
		EmailSubject: env.Email.Subject,
		Status:       string(status),
		Documents:    make([]DocumentRef, 0, len(env.Documents)),
		Recipients:   groups,
	}
	if def.EmailBlurb == "" {
		def.EmailBlurb = fallback.Blurb
	}
	if def.EmailSubject == "" {
		def.EmailSubject = fallback.Subject
	}
	for _, d := range env.Documents {
		def.Documents = append(def.Documents, DocumentRef{DocumentID: d.ID, Name: d.Name})
	}
	return def
}

// Marshal encodes the definition without HTML escaping and without a trailing newline.
func (d EnvelopeDefinition) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(d); err != nil {
		return nil, fmt.Errorf("encode envelope definition: %w", err)
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// BuildEnvelopeBody assembles the JSON definition followed by the document parts, in the order given.
func BuildEnvelopeBody(boundary string, def EnvelopeDefinition, documents []Part) (*Multipart, error) {
	js, err := def.Marshal()
	if err != nil {
		return nil, err
	}
	m := NewMultipart(boundary)
	m.Add(JSONPart(js))
	for _, p := range documents {
		m.Add(p)
	}
	return m, nil
}
