package model

// EnvelopeStatus mirrors the status reported by the remote service. Unknown values are kept verbatim.
type EnvelopeStatus string

const (
	StatusCreated   EnvelopeStatus = "created"
	StatusSent      EnvelopeStatus = "sent"
	StatusDelivered EnvelopeStatus = "delivered"
	StatusSigned    EnvelopeStatus = "signed"
	StatusCompleted EnvelopeStatus = "completed"
	StatusDeclined  EnvelopeStatus = "declined"
	StatusVoided    EnvelopeStatus = "voided"
	StatusDeleted   EnvelopeStatus = "deleted"
)

// StateUnsent is reported by Envelope.State for envelopes that have never been submitted.
const StateUnsent = "unsent"

// Email is the subject and blurb recipients see in the notification email.
type Email struct {
	Subject string `json:"subject"`
	Blurb   string `json:"blurb"`
}

// SignatureRequest asks one recipient to act on one document at the given tabs.
type SignatureRequest struct {
	Recipient *Recipient
	Document  *Document
	Tabs      []Tab
}

// Envelope is one signature transaction. It is not safe for concurrent use.
type Envelope struct {
	ID                string             `json:"id,omitempty"`
	Status            EnvelopeStatus     `json:"status,omitempty"`
	Email             Email              `json:"email"`
	Documents         []*Document        `json:"documents"`
	Recipients        []*Recipient       `json:"recipients"`
	SignatureRequests []SignatureRequest `json:"-"`
}

// NewEnvelope returns an empty, unsent envelope.
func NewEnvelope() *Envelope {
	return &Envelope{
		Documents:  []*Document{},
		Recipients: []*Recipient{},
	}
}

// State is "unsent" until the envelope has an identifier, then the reported status.
func (e *Envelope) State() string {
	if e.ID == "" {
		return StateUnsent
	}
	return string(e.Status)
}

func (e *Envelope) AddDocument(d *Document) {
	e.Documents = append(e.Documents, d)
}

func (e *Envelope) AddRecipient(r *Recipient) {
	if e.HasRecipient(r) {
		return
	}
	e.Recipients = append(e.Recipients, r)
}

// AddSignatureRequest records the request and adds its recipient to the envelope if missing.
func (e *Envelope) AddSignatureRequest(r *Recipient, d *Document, tabs ...Tab) {
	e.SignatureRequests = append(e.SignatureRequests, SignatureRequest{
		Recipient: r,
		Document:  d,
		Tabs:      tabs,
	})
	e.AddRecipient(r)
}

func (e *Envelope) HasDocument(d *Document) bool {
	for _, existing := range e.Documents {
		if existing == d {
			return true
		}
	}
	return false
}

func (e *Envelope) HasRecipient(r *Recipient) bool {
	for _, existing := range e.Recipients {
		if existing == r {
			return true
		}
	}
	return false
}
