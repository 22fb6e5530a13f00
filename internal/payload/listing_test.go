package payload

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hancock/internal/model"
)

func TestDocumentListing_Documents(t *testing.T) {
	body := `{
		"envelopeId": "a-crazy-envelope-id",
		"envelopeDocuments": [
			{"documentId": "1", "name": "lease.pdf", "type": "content", "uri": "/envelopes/a/documents/1"},
			{"documentId": 2, "name": "addendum", "type": "content", "uri": "/envelopes/a/documents/2"},
			{"documentId": "certificate", "name": "Summary", "type": "summary"}
		]
	}`

	var listing DocumentListing
	require.NoError(t, json.Unmarshal([]byte(body), &listing))

	docs := listing.Documents()
	require.Len(t, docs, 2)
	assert.Equal(t, &model.Document{ID: 1, Name: "lease.pdf", Extension: "pdf", URI: "/envelopes/a/documents/1"}, docs[0])
	assert.Equal(t, 2, docs[1].ID)
	assert.Equal(t, "", docs[1].Extension)
}

func TestRecipientListing_Recipients(t *testing.T) {
	body := `{
		"signers": [
			{"recipientId": "1", "email": "b@mail.com", "name": "Bob", "routingOrder": "1", "status": "sent"},
			{"recipientId": 2, "email": "e@mail.com", "name": "Edna", "routingOrder": 2, "status": "created"}
		],
		"editors": [{"recipientId": "3", "email": "f@mail.com", "name": "Fump", "status": "created"}],
		"carbonCopies": [],
		"recipientCount": "3"
	}`

	var listing RecipientListing
	require.NoError(t, json.Unmarshal([]byte(body), &listing))

	recipients, err := listing.Recipients()
	require.NoError(t, err)
	require.Len(t, recipients, 3)
	assert.Equal(t, &model.Recipient{ID: 1, Email: "b@mail.com", Name: "Bob", Type: model.RecipientSigner, RoutingOrder: 1, Status: "sent"}, recipients[0])
	assert.Equal(t, 2, recipients[1].RoutingOrder)
	assert.Equal(t, model.RecipientEditor, recipients[2].Type)
	assert.Equal(t, 0, recipients[2].RoutingOrder)
}

func TestRecipientListing_InvalidID(t *testing.T) {
	var listing RecipientListing
	require.NoError(t, json.Unmarshal([]byte(`{"signers":[{"recipientId":"abc","email":"x@mail.com"}]}`), &listing))

	_, err := listing.Recipients()
	assert.ErrorContains(t, err, "invalid recipientId")
}

func TestEnvelopeSummary_Email(t *testing.T) {
	var s EnvelopeSummary
	require.NoError(t, json.Unmarshal([]byte(`{"envelopeId":"x","status":"sent","emailSubject":"Subjacked","emailBlurb":"Blurble"}`), &s))
	assert.Equal(t, model.Email{Subject: "Subjacked", Blurb: "Blurble"}, s.Email())
	assert.Equal(t, "sent", s.Status)
}
