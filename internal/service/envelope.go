package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"hancock/internal/config"
	"hancock/internal/docusign"
	"hancock/internal/ident"
	"hancock/internal/logger"
	"hancock/internal/model"
	"hancock/internal/payload"
)

var tracer = otel.Tracer("hancock/internal/service")

// EnvelopeService defines the envelope lifecycle against the remote signature service.
type EnvelopeService interface {
	// Save submits the envelope as a draft (status "created"). No email is sent.
	Save(ctx context.Context, env *model.Envelope) error

	// Send submits the envelope with status "sent", which emails the recipients.
	Send(ctx context.Context, env *model.Envelope) error

	// Reload replaces status, email, documents and recipients with the server's view.
	// It does nothing for an envelope without an identifier.
	Reload(ctx context.Context, env *model.Envelope) error

	// Find fetches an existing envelope by its identifier.
	Find(ctx context.Context, id string) (*model.Envelope, error)
}

type envelopeService struct {
	transport docusign.Transport
	cfg       config.DocuSignConfig
}

// NewEnvelopeService constructs a new EnvelopeService.
func NewEnvelopeService(transport docusign.Transport, cfg config.DocuSignConfig) EnvelopeService {
	return &envelopeService{transport: transport, cfg: cfg}
}

func (s *envelopeService) Save(ctx context.Context, env *model.Envelope) error {
	return s.submit(ctx, env, model.StatusCreated)
}

func (s *envelopeService) Send(ctx context.Context, env *model.Envelope) error {
	return s.submit(ctx, env, model.StatusSent)
}

func (s *envelopeService) submit(ctx context.Context, env *model.Envelope, status model.EnvelopeStatus) (err error) {
	ctx, span := tracer.Start(ctx, "envelope.submit", trace.WithAttributes(attribute.String("envelope.status", string(status))))
	defer func() { endSpan(span, err) }()

	if !s.cfg.Configured() {
		return ErrConfigurationMissing
	}
	if env == nil {
		return &InvalidEnvelopeError{Problems: []string{"envelope is required"}}
	}
	if err := validate(env); err != nil {
		return err
	}

	// Allocated ids stay on the entities when the submission fails; a retry reuses them.
	ident.Assign(env.Documents)
	ident.Assign(env.Recipients)

	groups, err := payload.GroupRecipients(env.SignatureRequests)
	if err != nil {
		return err
	}

	parts := make([]payload.Part, 0, len(env.Documents))
	for _, d := range env.Documents {
		p, err := documentPart(ctx, d)
		if err != nil {
			return err
		}
		parts = append(parts, p)
	}

	fallback := model.Email{Subject: s.cfg.EmailTemplate.Subject, Blurb: s.cfg.EmailTemplate.Blurb}
	def := payload.NewDefinition(env, status, fallback, groups)
	body, err := payload.BuildEnvelopeBody(s.cfg.Boundary, def, parts)
	if err != nil {
		return err
	}

	headers := http.Header{}
	headers.Set("Content-Type", body.ContentType())
	resp, err := s.transport.PostMultipart(ctx, s.accountPath("/envelopes"), body.Bytes(), headers)
	if err != nil {
		return fmt.Errorf("submit envelope: %w", err)
	}
	if !resp.Success() {
		derr := docusignError(resp)
		logger.Warn(ctx, "envelope rejected",
			"status_code", derr.StatusCode,
			"error_code", derr.ErrorCode,
			"message", derr.Message,
		)
		return derr
	}

	env.ID = resp.Field("envelopeId")
	if env.ID == "" {
		return fmt.Errorf("submit envelope: response carried no envelopeId")
	}
	ctx = logger.WithEnvelopeID(ctx, env.ID)
	span.SetAttributes(attribute.String("envelope.id", env.ID))
	logger.Info(ctx, "envelope submitted",
		"status", string(status),
		"documents", len(env.Documents),
		"recipients", groups.Len(),
	)

	return s.Reload(ctx, env)
}

func (s *envelopeService) Reload(ctx context.Context, env *model.Envelope) (err error) {
	if env == nil || env.ID == "" {
		return nil
	}
	ctx, span := tracer.Start(ctx, "envelope.reload", trace.WithAttributes(attribute.String("envelope.id", env.ID)))
	defer func() { endSpan(span, err) }()

	if !s.cfg.Configured() {
		return ErrConfigurationMissing
	}

	base := s.envelopePath(env.ID)

	var summary payload.EnvelopeSummary
	if err := s.getJSON(ctx, base, &summary); err != nil {
		return err
	}
	var docs payload.DocumentListing
	if err := s.getJSON(ctx, base+"/documents", &docs); err != nil {
		return err
	}
	var recips payload.RecipientListing
	if err := s.getJSON(ctx, base+"/recipients", &recips); err != nil {
		return err
	}
	recipients, err := recips.Recipients()
	if err != nil {
		return fmt.Errorf("reload envelope %s: %w", env.ID, err)
	}

	env.Status = model.EnvelopeStatus(summary.Status)
	env.Email = summary.Email()
	env.Documents = docs.Documents()
	env.Recipients = recipients
	return nil
}

func (s *envelopeService) Find(ctx context.Context, id string) (*model.Envelope, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	if !s.cfg.Configured() {
		return nil, ErrConfigurationMissing
	}

	var summary payload.EnvelopeSummary
	if err := s.getJSON(ctx, s.envelopePath(id), &summary); err != nil {
		return nil, err
	}

	env := model.NewEnvelope()
	env.ID = summary.EnvelopeID
	if env.ID == "" {
		env.ID = id
	}
	env.Status = model.EnvelopeStatus(summary.Status)
	if err := s.Reload(ctx, env); err != nil {
		return nil, err
	}
	return env, nil
}

func (s *envelopeService) getJSON(ctx context.Context, path string, v any) error {
	resp, err := s.transport.Get(ctx, path)
	if err != nil {
		return fmt.Errorf("get %s: %w", path, err)
	}
	if !resp.Success() {
		return docusignError(resp)
	}
	if err := resp.Decode(v); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func (s *envelopeService) accountPath(suffix string) string {
	return "/accounts/" + url.PathEscape(s.cfg.AccountID) + suffix
}

func (s *envelopeService) envelopePath(id string) string {
	return s.accountPath("/envelopes/" + url.PathEscape(id))
}

// documentPart resolves the document payload: raw data as is, encoded data marked base64,
// and a source read in full.
func documentPart(ctx context.Context, d *model.Document) (payload.Part, error) {
	switch {
	case len(d.Data) > 0:
		return payload.DocumentPart(d, d.Data, false), nil
	case d.Encoded != "":
		if _, err := base64.StdEncoding.DecodeString(d.Encoded); err != nil {
			return payload.Part{}, &InvalidEnvelopeError{Problems: []string{
				fmt.Sprintf("document %d: encoded data is not valid base64", d.ID),
			}}
		}
		return payload.DocumentPart(d, []byte(d.Encoded), true), nil
	case d.Source != nil:
		rc, err := d.Source.Open(ctx)
		if err != nil {
			return payload.Part{}, fmt.Errorf("open document %d: %w", d.ID, err)
		}
		defer rc.Close()
		b, err := io.ReadAll(rc)
		if err != nil {
			return payload.Part{}, fmt.Errorf("read document %d: %w", d.ID, err)
		}
		return payload.DocumentPart(d, b, false), nil
	default:
		return payload.Part{}, &InvalidEnvelopeError{Problems: []string{
			fmt.Sprintf("document %d: payload or source is required", d.ID),
		}}
	}
}

func docusignError(resp *docusign.Response) *DocusignError {
	return &DocusignError{
		StatusCode: resp.StatusCode,
		ErrorCode:  resp.Field("errorCode"),
		Message:    resp.Field("message"),
	}
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
