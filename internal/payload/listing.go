package payload

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"hancock/internal/model"
)

// looseString accepts JSON strings and numbers; the service reports numeric ids as either.
type looseString string

func (s *looseString) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*s = looseString(v)
		return nil
	}
	if string(b) == "null" {
		*s = ""
		return nil
	}
	*s = looseString(b)
	return nil
}

// EnvelopeSummary is the envelope resource returned by GET .../envelopes/{id}.
type EnvelopeSummary struct {
	EnvelopeID   string `json:"envelopeId"`
	Status       string `json:"status"`
	EmailSubject string `json:"emailSubject"`
	EmailBlurb   string `json:"emailBlurb"`
}

func (s EnvelopeSummary) Email() model.Email {
	return model.Email{Subject: s.EmailSubject, Blurb: s.EmailBlurb}
}

type listedDocument struct {
	DocumentID looseString `json:"documentId"`
	Name       string      `json:"name"`
	Type       string      `json:"type"`
	URI        string      `json:"uri"`
}

// DocumentListing is the body of GET .../envelopes/{id}/documents.
type DocumentListing struct {
	EnvelopeDocuments []listedDocument `json:"envelopeDocuments"`
}

// Documents converts the listing in server order. Entries without a numeric id, such as the
// signing certificate, are not envelope documents and are skipped.
func (l DocumentListing) Documents() []*model.Document {
	out := make([]*model.Document, 0, len(l.EnvelopeDocuments))
	for _, d := range l.EnvelopeDocuments {
		id, err := strconv.Atoi(string(d.DocumentID))
		if err != nil || id <= 0 {
			continue
		}
		out = append(out, &model.Document{
			ID:        id,
			Name:      d.Name,
			Extension: strings.TrimPrefix(filepath.Ext(d.Name), "."),
			URI:       d.URI,
		})
	}
	return out
}

type listedRecipient struct {
	RecipientID  looseString `json:"recipientId"`
	Email        string      `json:"email"`
	Name         string      `json:"name"`
	RoutingOrder looseString `json:"routingOrder"`
	Status       string      `json:"status"`
}

// RecipientListing is the body of GET .../envelopes/{id}/recipients.
type RecipientListing struct {
	Signers      []listedRecipient `json:"signers"`
	Editors      []listedRecipient `json:"editors"`
	CarbonCopies []listedRecipient `json:"carbonCopies"`
}

// Recipients converts the listing: signers, then editors, then carbon copies, each in server order.
func (l RecipientListing) Recipients() ([]*model.Recipient, error) {
	out := make([]*model.Recipient, 0, len(l.Signers)+len(l.Editors)+len(l.CarbonCopies))
	partitions := []struct {
		kind  model.RecipientType
		items []listedRecipient
	}{
		{model.RecipientSigner, l.Signers},
		{model.RecipientEditor, l.Editors},
		{model.RecipientCarbonCopy, l.CarbonCopies},
	}
	for _, p := range partitions {
		for _, r := range p.items {
			id, err := strconv.Atoi(string(r.RecipientID))
			if err != nil {
				return nil, fmt.Errorf("recipient %q: invalid recipientId %q", r.Email, r.RecipientID)
			}
			order, _ := strconv.Atoi(string(r.RoutingOrder))
			out = append(out, &model.Recipient{
				ID:           id,
				Email:        r.Email,
				Name:         r.Name,
				Type:         p.kind,
				RoutingOrder: order,
				Status:       r.Status,
			})
		}
	}
	return out, nil
}
