package model

import "slices"

// Callback is a Connect configuration: where the remote service publishes envelope and
// recipient events for this account.
type Callback struct {
	ID               string   `json:"id,omitempty"`
	Name             string   `json:"name"`
	URL              string   `json:"url"`
	Active           bool     `json:"active"`
	Logging          bool     `json:"logging"`
	EnvelopeEvents   []string `json:"envelope_events"`
	RecipientEvents  []string `json:"recipient_events"`
	IncludeDocuments bool     `json:"include_documents"`
	AllUsers         bool     `json:"all_users"`
}

// Equal compares every configured attribute, identifier included.
func (c Callback) Equal(o Callback) bool {
	return c.ID == o.ID &&
		c.Name == o.Name &&
		c.URL == o.URL &&
		c.Active == o.Active &&
		c.Logging == o.Logging &&
		slices.Equal(c.EnvelopeEvents, o.EnvelopeEvents) &&
		slices.Equal(c.RecipientEvents, o.RecipientEvents) &&
		c.IncludeDocuments == o.IncludeDocuments &&
		c.AllUsers == o.AllUsers
}

