package service

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrConfigurationMissing = errors.New("docusign configuration is missing or incomplete")
	ErrIDRequired           = errors.New("id is required")
	ErrCallbackNotFound     = errors.New("callback not found")
	ErrCallbackNameRequired = errors.New("callback name is required")
)

// InvalidEnvelopeError lists every reason an envelope was rejected before submission.
type InvalidEnvelopeError struct {
	Problems []string
}

func (e *InvalidEnvelopeError) Error() string {
	return "invalid envelope: " + strings.Join(e.Problems, "; ")
}

// DocusignError is a non-success reply from the remote service. Message is the server's
// message, unchanged.
type DocusignError struct {
	StatusCode int
	ErrorCode  string
	Message    string
}

func (e *DocusignError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.ErrorCode != "" {
		return e.ErrorCode
	}
	return fmt.Sprintf("docusign request failed with status %d", e.StatusCode)
}
