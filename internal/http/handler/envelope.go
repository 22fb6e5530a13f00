package handler

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"strings"

	"github.com/gofiber/fiber/v2"

	"hancock/internal/manifest"
	"hancock/internal/model"
	"hancock/internal/service"
	"hancock/internal/storage"
)

const (
	actionSave = "save"
	actionSend = "send"
)

// uploadSource is a document received as a multipart file.
type uploadSource struct {
	fh *multipart.FileHeader
}

func (u uploadSource) Name() string { return u.fh.Filename }

func (u uploadSource) Open(_ context.Context) (io.ReadCloser, error) {
	return u.fh.Open()
}

// envelopeView is the response body for an envelope.
type envelopeView struct {
	ID         string             `json:"id"`
	State      string             `json:"state"`
	Status     string             `json:"status"`
	Email      model.Email        `json:"email"`
	Documents  []*model.Document  `json:"documents"`
	Recipients []*model.Recipient `json:"recipients"`
}

func newEnvelopeView(env *model.Envelope) envelopeView {
	return envelopeView{
		ID:         env.ID,
		State:      env.State(),
		Status:     string(env.Status),
		Email:      env.Email,
		Documents:  env.Documents,
		Recipients: env.Recipients,
	}
}

// SubmitEnvelope builds an envelope from a manifest and saves it as a draft or sends it.
// The manifest is either the JSON/YAML request body or the "manifest" field of a multipart
// form whose files are referenced by name from "upload" documents.
//
// @Summary Submit an envelope
// @Tags envelopes
// @Accept json,mpfd
// @Produce json
// @Param action query string false "save (draft) or send" Enums(save, send)
// @Success 201 {object} envelopeView
// @Failure 400 {object} errorPayload
// @Failure 422 {object} errorPayload
// @Failure 502 {object} errorPayload
// @Failure 503 {object} errorPayload
// @Router /envelopes [post]
func SubmitEnvelope(svc service.EnvelopeService, store storage.Storage) fiber.Handler {
	return func(c *fiber.Ctx) error {
		action := c.Query("action", actionSave)
		if action != actionSave && action != actionSend {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ACTION", "action must be save or send")
		}

		raw, uploads, err := readManifest(c)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_MANIFEST", err.Error())
		}
		m, err := manifest.Parse(bytes.NewReader(raw))
		if err != nil {
			return writeServiceError(c, err)
		}
		env, err := manifest.Build(m, manifest.Sources{
			Store:        store,
			Uploads:      uploads,
			NoLocalFiles: true,
		})
		if err != nil {
			return writeServiceError(c, err)
		}

		if action == actionSend {
			err = svc.Send(c.UserContext(), env)
		} else {
			err = svc.Save(c.UserContext(), env)
		}
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(newEnvelopeView(env))
	}
}

func readManifest(c *fiber.Ctx) ([]byte, map[string]model.Source, error) {
	uploads := map[string]model.Source{}
	if !strings.HasPrefix(string(c.Request().Header.ContentType()), fiber.MIMEMultipartForm) {
		body := c.Body()
		if len(bytes.TrimSpace(body)) == 0 {
			return nil, nil, fiber.NewError(fiber.StatusBadRequest, "manifest is required")
		}
		return body, uploads, nil
	}

	form, err := c.MultipartForm()
	if err != nil {
		return nil, nil, fiber.NewError(fiber.StatusBadRequest, "invalid multipart form")
	}
	values := form.Value["manifest"]
	if len(values) == 0 || strings.TrimSpace(values[0]) == "" {
		return nil, nil, fiber.NewError(fiber.StatusBadRequest, "manifest field is required")
	}
	for _, files := range form.File {
		for _, fh := range files {
			uploads[fh.Filename] = uploadSource{fh: fh}
		}
	}
	return []byte(values[0]), uploads, nil
}

// GetEnvelope returns an existing envelope with its documents and recipients.
//
// @Summary Get an envelope
// @Tags envelopes
// @Produce json
// @Param id path string true "Envelope ID"
// @Success 200 {object} envelopeView
// @Failure 404 {object} errorPayload
// @Failure 502 {object} errorPayload
// @Router /envelopes/{id} [get]
func GetEnvelope(svc service.EnvelopeService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		env, err := svc.Find(c.UserContext(), c.Params("id"))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(newEnvelopeView(env))
	}
}
