package service

import (
	"fmt"

	"hancock/internal/ident"
	"hancock/internal/model"
)

// validate checks an envelope before any identifier is allocated or request sent.
// Document defaults are applied first so a file-backed document gets its name.
func validate(env *model.Envelope) error {
	var problems []string

	if len(env.Documents) == 0 {
		problems = append(problems, "at least one document is required")
	}
	if len(env.Recipients) == 0 {
		problems = append(problems, "at least one recipient is required")
	}

	for i, d := range env.Documents {
		if d == nil {
			problems = append(problems, fmt.Sprintf("document %d: is nil", i+1))
			continue
		}
		d.ApplyDefaults()
		for _, p := range d.Problems() {
			problems = append(problems, fmt.Sprintf("document %d: %s", i+1, p))
		}
	}
	for i, r := range env.Recipients {
		if r == nil {
			problems = append(problems, fmt.Sprintf("recipient %d: is nil", i+1))
			continue
		}
		for _, p := range r.Problems() {
			problems = append(problems, fmt.Sprintf("recipient %d: %s", i+1, p))
		}
	}
	if len(problems) == 0 {
		for _, id := range ident.Duplicates(env.Documents) {
			problems = append(problems, fmt.Sprintf("document identifier %d is used more than once", id))
		}
		for _, id := range ident.Duplicates(env.Recipients) {
			problems = append(problems, fmt.Sprintf("recipient identifier %d is used more than once", id))
		}
	}

	for i, req := range env.SignatureRequests {
		n := i + 1
		switch {
		case req.Document == nil:
			problems = append(problems, fmt.Sprintf("signature request %d: document is required", n))
		case !env.HasDocument(req.Document):
			problems = append(problems, fmt.Sprintf("signature request %d: document %q is not part of the envelope", n, req.Document.Name))
		}
		switch {
		case req.Recipient == nil:
			problems = append(problems, fmt.Sprintf("signature request %d: recipient is required", n))
		case !env.HasRecipient(req.Recipient):
			problems = append(problems, fmt.Sprintf("signature request %d: recipient %q is not part of the envelope", n, req.Recipient.Email))
		}
		for j, tab := range req.Tabs {
			for _, p := range tab.Problems() {
				problems = append(problems, fmt.Sprintf("signature request %d tab %d: %s", n, j+1, p))
			}
		}
	}

	if len(problems) > 0 {
		return &InvalidEnvelopeError{Problems: problems}
	}
	return nil
}
