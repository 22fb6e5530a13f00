package payload

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hancock/internal/model"
)

func TestGroupRecipients(t *testing.T) {
	doc1 := &model.Document{ID: 1}
	doc2 := &model.Document{ID: 2}
	bob := &model.Recipient{ID: 1, Email: "b@mail.com", Name: "Bob", Type: model.RecipientSigner}
	edna := &model.Recipient{ID: 2, Email: "e@mail.com", Name: "Edna", Type: model.RecipientSigner}
	fump := &model.Recipient{ID: 3, Email: "f@mail.com", Name: "Fump", Type: model.RecipientEditor}

	initial := model.NewTab(model.TabInitialHere, model.TabAttributes{PageNumber: 1, XPosition: 10})
	sign := model.NewTab(model.TabSignHere, model.TabAttributes{PageNumber: 2, XPosition: 20})

	requests := []model.SignatureRequest{
		{Recipient: bob, Document: doc1, Tabs: []model.Tab{initial}},
		{Recipient: bob, Document: doc2, Tabs: []model.Tab{initial, sign}},
		{Recipient: edna, Document: doc1, Tabs: []model.Tab{sign}},
		{Recipient: edna, Document: doc2, Tabs: []model.Tab{initial}},
		{Recipient: fump, Document: doc2, Tabs: []model.Tab{sign}},
	}

	got, err := GroupRecipients(requests)
	require.NoError(t, err)

	at := func(tab model.Tab, docID int) TabPayload {
		return TabPayload{TabAttributes: tab.Attributes, DocumentID: docID}
	}
	want := RecipientGroups{
		Signers: []GroupedRecipient{
			{
				Email: "b@mail.com", Name: "Bob", RecipientID: 1,
				Tabs: map[string][]TabPayload{
					"initialHereTabs": {at(initial, 1), at(initial, 2)},
					"signHereTabs":    {at(sign, 2)},
				},
			},
			{
				Email: "e@mail.com", Name: "Edna", RecipientID: 2,
				Tabs: map[string][]TabPayload{
					"initialHereTabs": {at(initial, 2)},
					"signHereTabs":    {at(sign, 1)},
				},
			},
		},
		Editors: []GroupedRecipient{
			{
				Email: "f@mail.com", Name: "Fump", RecipientID: 3,
				Tabs: map[string][]TabPayload{
					"signHereTabs": {at(sign, 2)},
				},
			},
		},
	}
	assert.Equal(t, want, got)
	assert.Equal(t, 3, got.Len())
}

func TestGroupRecipients_WireShape(t *testing.T) {
	doc := &model.Document{ID: 4}
	bob := &model.Recipient{ID: 7, Email: "b@mail.com", Name: "Bob", Type: model.RecipientSigner}
	tab := model.NewTab(model.TabSignHere, model.TabAttributes{PageNumber: 1, XPosition: 100, YPosition: 200})

	got, err := GroupRecipients([]model.SignatureRequest{{Recipient: bob, Document: doc, Tabs: []model.Tab{tab}}})
	require.NoError(t, err)

	b, err := json.Marshal(got)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"signers": [{
			"email": "b@mail.com",
			"name": "Bob",
			"recipientId": 7,
			"tabs": {"signHereTabs": [{"pageNumber": 1, "xPosition": 100, "yPosition": 200, "documentId": 4}]}
		}],
		"editors": []
	}`, string(b))
	assert.Contains(t, string(b), `"yPosition":200,"documentId":4`)
}

func TestGroupRecipients_Empty(t *testing.T) {
	got, err := GroupRecipients(nil)
	require.NoError(t, err)

	b, err := json.Marshal(got)
	require.NoError(t, err)
	assert.Equal(t, `{"signers":[],"editors":[]}`, string(b))
}

func TestGroupRecipients_CarbonCopies(t *testing.T) {
	doc := &model.Document{ID: 1}
	cc := &model.Recipient{ID: 5, Email: "c@mail.com", Name: "Cee", Type: model.RecipientCarbonCopy, RoutingOrder: 2}

	got, err := GroupRecipients([]model.SignatureRequest{{Recipient: cc, Document: doc}})
	require.NoError(t, err)
	require.Len(t, got.CarbonCopies, 1)
	assert.Equal(t, 2, got.CarbonCopies[0].RoutingOrder)
	assert.Empty(t, got.Signers)

	b, err := json.Marshal(got.CarbonCopies[0])
	require.NoError(t, err)
	assert.NotContains(t, string(b), "tabs")
}

func TestGroupRecipients_UnknownType(t *testing.T) {
	doc := &model.Document{ID: 1}
	odd := &model.Recipient{ID: 9, Email: "o@mail.com", Name: "Odd", Type: "witness"}

	_, err := GroupRecipients([]model.SignatureRequest{{Recipient: odd, Document: doc}})

	var ungrouped *UngroupedRecipientError
	require.True(t, errors.As(err, &ungrouped))
	assert.Equal(t, 9, ungrouped.RecipientID)
	assert.Equal(t, model.RecipientType("witness"), ungrouped.Type)
}

func TestTabPayload_MarshalKeepsZeroCoordinates(t *testing.T) {
	tests := []struct {
		name string
		tab  model.Tab
		want string
	}{
		{
			name: "positioned at the page edge",
			tab:  model.NewTab(model.TabSignHere, model.TabAttributes{PageNumber: 1, YPosition: 20}),
			want: `{"pageNumber":1,"xPosition":0,"yPosition":20,"documentId":7}`,
		},
		{
			name: "anchored without offset",
			tab:  model.NewAnchoredTab(model.TabInitialHere, "Initial:", 5, 0),
			want: `{"anchorString":"Initial:","anchorXOffset":5,"anchorYOffset":0,"anchorUnits":"pixels","anchorIgnoreIfNotPresent":false,"documentId":7}`,
		},
		{
			name: "labelled text tab",
			tab:  model.NewTab(model.TabText, model.TabAttributes{TabLabel: "Company", PageNumber: 2, XPosition: 10, YPosition: 10, Locked: true}),
			want: `{"tabLabel":"Company","pageNumber":2,"xPosition":10,"yPosition":10,"locked":true,"documentId":7}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := json.Marshal(TabPayload{TabAttributes: tt.tab.Attributes, DocumentID: 7})
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(b))
		})
	}
}
