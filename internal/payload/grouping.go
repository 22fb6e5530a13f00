package payload

import (
	"encoding/json"
	"fmt"

	"hancock/internal/model"
)

// TabPayload is a tab's attributes plus the document it sits on.
type TabPayload struct {
	model.TabAttributes
	DocumentID int `json:"documentId"`
}

// tabWire is TabPayload on the wire. Coordinates of the placement in use are always sent,
// so a tab at x=0 or an anchor offset of 0 keeps its field.
type tabWire struct {
	TabLabel                 string `json:"tabLabel,omitempty"`
	Name                     string `json:"name,omitempty"`
	Value                    string `json:"value,omitempty"`
	PageNumber               *int   `json:"pageNumber,omitempty"`
	XPosition                *int   `json:"xPosition,omitempty"`
	YPosition                *int   `json:"yPosition,omitempty"`
	AnchorString             string `json:"anchorString,omitempty"`
	AnchorXOffset            *int   `json:"anchorXOffset,omitempty"`
	AnchorYOffset            *int   `json:"anchorYOffset,omitempty"`
	AnchorUnits              string `json:"anchorUnits,omitempty"`
	AnchorIgnoreIfNotPresent *bool  `json:"anchorIgnoreIfNotPresent,omitempty"`
	Width                    int    `json:"width,omitempty"`
	Height                   int    `json:"height,omitempty"`
	Optional                 bool   `json:"optional,omitempty"`
	Locked                   bool   `json:"locked,omitempty"`
	DocumentID               int    `json:"documentId"`
}

func (t TabPayload) MarshalJSON() ([]byte, error) {
	a := t.TabAttributes
	w := tabWire{
		TabLabel:     a.TabLabel,
		Name:         a.Name,
		Value:        a.Value,
		AnchorString: a.AnchorString,
		AnchorUnits:  a.AnchorUnits,
		Width:        a.Width,
		Height:       a.Height,
		Optional:     a.Optional,
		Locked:       a.Locked,
		DocumentID:   t.DocumentID,
	}
	if a.PageNumber > 0 {
		w.PageNumber, w.XPosition, w.YPosition = &a.PageNumber, &a.XPosition, &a.YPosition
	}
	if a.AnchorString != "" {
		w.AnchorXOffset, w.AnchorYOffset = &a.AnchorXOffset, &a.AnchorYOffset
		w.AnchorIgnoreIfNotPresent = &a.AnchorIgnoreIfNotPresent
	}
	return json.Marshal(w)
}

// GroupedRecipient is one recipient with every tab from all of its signature requests.
type GroupedRecipient struct {
	Email        string                  `json:"email"`
	Name         string                  `json:"name"`
	RecipientID  int                     `json:"recipientId"`
	RoutingOrder int                     `json:"routingOrder,omitempty"`
	Tabs         map[string][]TabPayload `json:"tabs,omitempty"`
}

// RecipientGroups partitions recipients by role. Signers and editors are always present on the wire.
type RecipientGroups struct {
	Signers      []GroupedRecipient `json:"signers"`
	Editors      []GroupedRecipient `json:"editors"`
	CarbonCopies []GroupedRecipient `json:"carbonCopies,omitempty"`
}

// UngroupedRecipientError is returned when a recipient's type maps to no partition.
type UngroupedRecipientError struct {
	RecipientID int
	Type        model.RecipientType
}

func (e *UngroupedRecipientError) Error() string {
	return fmt.Sprintf("recipient %d has unsupported type %q", e.RecipientID, e.Type)
}

func (g *RecipientGroups) partition(t model.RecipientType) (*[]GroupedRecipient, bool) {
	switch t {
	case model.RecipientSigner:
		return &g.Signers, true
	case model.RecipientEditor:
		return &g.Editors, true
	case model.RecipientCarbonCopy:
		return &g.CarbonCopies, true
	default:
		return nil, false
	}
}

// Len is the number of grouped recipients across all partitions.
func (g RecipientGroups) Len() int {
	return len(g.Signers) + len(g.Editors) + len(g.CarbonCopies)
}

// GroupRecipients merges signature requests into one entry per recipient, in first-seen order,
// with tabs bucketed by type in the order they were encountered. Recipient and document
// identifiers must already be assigned.
func GroupRecipients(requests []model.SignatureRequest) (RecipientGroups, error) {
	groups := RecipientGroups{
		Signers: []GroupedRecipient{},
		Editors: []GroupedRecipient{},
	}

	type slot struct {
		part  *[]GroupedRecipient
		index int
	}
	seen := make(map[*model.Recipient]slot)

	for _, req := range requests {
		r := req.Recipient
		s, ok := seen[r]
		if !ok {
			part, known := groups.partition(r.Type)
			if !known {
				return RecipientGroups{}, &UngroupedRecipientError{RecipientID: r.ID, Type: r.Type}
			}
			*part = append(*part, GroupedRecipient{
				Email:        r.Email,
				Name:         r.Name,
				RecipientID:  r.ID,
				RoutingOrder: r.RoutingOrder,
				Tabs:         map[string][]TabPayload{},
			})
			s = slot{part: part, index: len(*part) - 1}
			seen[r] = s
		}

		entry := &(*s.part)[s.index]
		for _, tab := range req.Tabs {
			key := tab.Type.Key()
			entry.Tabs[key] = append(entry.Tabs[key], TabPayload{
				TabAttributes: tab.Attributes,
				DocumentID:    req.Document.ID,
			})
		}
	}

	return groups, nil
}
