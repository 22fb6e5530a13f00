package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"hancock/internal/config"
	"hancock/internal/docusign"
	"hancock/internal/logger"
	"hancock/internal/model"
)

// CallbackService manages the account's Connect configurations, which tell the remote
// service where to publish envelope and recipient events.
type CallbackService interface {
	All(ctx context.Context) ([]model.Callback, error)
	FindByName(ctx context.Context, name string) (*model.Callback, error)
	// Save updates the configuration with the same name if one exists, otherwise creates it.
	// cb.ID is set from the server's reply.
	Save(ctx context.Context, cb *model.Callback) error
}

type callbackService struct {
	transport docusign.Transport
	cfg       config.DocuSignConfig
}

// NewCallbackService constructs a new CallbackService.
func NewCallbackService(transport docusign.Transport, cfg config.DocuSignConfig) CallbackService {
	return &callbackService{transport: transport, cfg: cfg}
}

func (s *callbackService) path() string {
	return "/accounts/" + url.PathEscape(s.cfg.AccountID) + "/connect"
}

func (s *callbackService) All(ctx context.Context) ([]model.Callback, error) {
	if !s.cfg.Configured() {
		return nil, ErrConfigurationMissing
	}
	resp, err := s.transport.Get(ctx, s.path())
	if err != nil {
		return nil, fmt.Errorf("list callbacks: %w", err)
	}
	if !resp.Success() {
		return nil, docusignError(resp)
	}

	var out struct {
		Configurations []connectConfiguration `json:"configurations"`
	}
	if err := resp.Decode(&out); err != nil {
		return nil, fmt.Errorf("decode callbacks: %w", err)
	}
	callbacks := make([]model.Callback, 0, len(out.Configurations))
	for _, c := range out.Configurations {
		callbacks = append(callbacks, c.callback())
	}
	return callbacks, nil
}

func (s *callbackService) FindByName(ctx context.Context, name string) (*model.Callback, error) {
	all, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	for i := range all {
		if all[i].Name == name {
			return &all[i], nil
		}
	}
	return nil, ErrCallbackNotFound
}

func (s *callbackService) Save(ctx context.Context, cb *model.Callback) error {
	if cb == nil || strings.TrimSpace(cb.Name) == "" {
		return ErrCallbackNameRequired
	}

	existing, err := s.FindByName(ctx, cb.Name)
	if err != nil && !errors.Is(err, ErrCallbackNotFound) {
		return err
	}

	wire := newConnectConfiguration(*cb)
	if existing != nil {
		wire.ConnectID = existing.ID
	}
	body, err := json.Marshal(wire)
	if err != nil {
		return fmt.Errorf("encode callback: %w", err)
	}

	headers := http.Header{}
	headers.Set("Content-Type", "application/json")
	var resp *docusign.Response
	if existing != nil {
		resp, err = s.transport.Put(ctx, s.path(), body, headers)
	} else {
		resp, err = s.transport.PostJSON(ctx, s.path(), body, headers)
	}
	if err != nil {
		return fmt.Errorf("save callback: %w", err)
	}
	if !resp.Success() {
		return docusignError(resp)
	}

	cb.ID = resp.Field("connectId")
	logger.Info(ctx, "callback saved", "name", cb.Name, "connect_id", cb.ID, "updated", existing != nil)
	return nil
}

// connectConfiguration is the wire form of a Connect configuration.
type connectConfiguration struct {
	ConnectID            string    `json:"connectId,omitempty"`
	Name                 string    `json:"name"`
	URLToPublishTo       string    `json:"urlToPublishTo"`
	AllowEnvelopePublish flag      `json:"allowEnvelopePublish"`
	EnableLog            flag      `json:"enableLog"`
	EnvelopeEvents       eventList `json:"envelopeEvents"`
	RecipientEvents      eventList `json:"recipientEvents"`
	IncludeDocuments     flag      `json:"includeDocuments"`
	AllUsers             flag      `json:"allUsers"`
	UseSoapInterface     string    `json:"useSoapInterface,omitempty"`
}

func newConnectConfiguration(cb model.Callback) connectConfiguration {
	return connectConfiguration{
		ConnectID:            cb.ID,
		Name:                 cb.Name,
		URLToPublishTo:       cb.URL,
		AllowEnvelopePublish: flag(cb.Active),
		EnableLog:            flag(cb.Logging),
		EnvelopeEvents:       eventList(cb.EnvelopeEvents),
		RecipientEvents:      eventList(cb.RecipientEvents),
		IncludeDocuments:     flag(cb.IncludeDocuments),
		AllUsers:             flag(cb.AllUsers),
		UseSoapInterface:     "false",
	}
}

func (c connectConfiguration) callback() model.Callback {
	return model.Callback{
		ID:               c.ConnectID,
		Name:             c.Name,
		URL:              c.URLToPublishTo,
		Active:           bool(c.AllowEnvelopePublish),
		Logging:          bool(c.EnableLog),
		EnvelopeEvents:   []string(c.EnvelopeEvents),
		RecipientEvents:  []string(c.RecipientEvents),
		IncludeDocuments: bool(c.IncludeDocuments),
		AllUsers:         bool(c.AllUsers),
	}
}

// flag is a boolean sent as "true"/"false". Either a JSON bool or string is accepted.
type flag bool

func (f flag) MarshalJSON() ([]byte, error) {
	if f {
		return []byte(`"true"`), nil
	}
	return []byte(`"false"`), nil
}

func (f *flag) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*f = flag(strings.EqualFold(strings.TrimSpace(s), "true"))
		return nil
	}
	var v bool
	if err := json.Unmarshal(b, &v); err != nil {
		return fmt.Errorf("flag: %w", err)
	}
	*f = flag(v)
	return nil
}

// eventList is sent comma separated. Either a string or an array is accepted.
type eventList []string

func (e eventList) MarshalJSON() ([]byte, error) {
	return json.Marshal(strings.Join(e, ","))
}

func (e *eventList) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		var out []string
		for _, ev := range strings.Split(s, ",") {
			if ev = strings.TrimSpace(ev); ev != "" {
				out = append(out, ev)
			}
		}
		*e = out
		return nil
	}
	var list []string
	if err := json.Unmarshal(b, &list); err != nil {
		return fmt.Errorf("event list: %w", err)
	}
	*e = list
	return nil
}
