package model

import "strings"

// RecipientType is the role a recipient plays on an envelope.
type RecipientType string

const (
	RecipientSigner     RecipientType = "signer"
	RecipientEditor     RecipientType = "editor"
	RecipientCarbonCopy RecipientType = "carbon_copy"
)

// Recipient is a participant on an envelope. Status is only set when reloaded from the server.
type Recipient struct {
	ID           int           `json:"id"`
	Email        string        `json:"email"`
	Name         string        `json:"name"`
	Type         RecipientType `json:"type"`
	RoutingOrder int           `json:"routing_order,omitempty"`
	Status       string        `json:"status,omitempty"`
}

// NewRecipient creates a signer unless a different type is given later.
func NewRecipient(name, email string) *Recipient {
	return &Recipient{Name: name, Email: email, Type: RecipientSigner}
}

func (r *Recipient) Identifier() int      { return r.ID }
func (r *Recipient) SetIdentifier(id int) { r.ID = id }

// Problems lists the reasons this recipient cannot be submitted.
func (r *Recipient) Problems() []string {
	var out []string
	if r.ID < 0 {
		out = append(out, "identifier must be positive")
	}
	if strings.TrimSpace(r.Email) == "" {
		out = append(out, "email is required")
	}
	if strings.TrimSpace(r.Name) == "" {
		out = append(out, "name is required")
	}
	return out
}
