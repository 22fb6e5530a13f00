package docusign

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hancock/internal/config"
)

func TestClient_PostMultipart(t *testing.T) {
	var gotAuth map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/restapi/v2.1/accounts/123/envelopes", r.URL.Path)
		assert.Equal(t, "multipart/form-data; boundary=MYBOUNDARY", r.Header.Get("Content-Type"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		require.NoError(t, json.Unmarshal([]byte(r.Header.Get("X-DocuSign-Authentication")), &gotAuth))

		body, _ := io.ReadAll(r.Body)
		assert.Equal(t, "payload", string(body))

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"envelopeId":"a-crazy-envelope-id","status":"sent"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/restapi/v2.1/", LegacyAuth{Username: "u", Password: "p", IntegratorKey: "k"})
	headers := http.Header{}
	headers.Set("Content-Type", "multipart/form-data; boundary=MYBOUNDARY")

	resp, err := c.PostMultipart(context.Background(), "/accounts/123/envelopes", []byte("payload"), headers)
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "a-crazy-envelope-id", resp.Field("envelopeId"))
	assert.Equal(t, map[string]string{"Username": "u", "Password": "p", "IntegratorKey": "k"}, gotAuth)
}

func TestClient_PostMultipartRequiresBoundary(t *testing.T) {
	c := NewClient("http://127.0.0.1:1", BearerAuth{Token: "t"})
	_, err := c.PostMultipart(context.Background(), "/x", []byte("b"), http.Header{})
	assert.ErrorContains(t, err, "multipart content type")
}

func TestClient_NonSuccessIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"errorCode":"INVALID_REQUEST_BODY","message":"Ruh roh"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, BearerAuth{Token: "t"})
	resp, err := c.Get(context.Background(), "/accounts/123/envelopes/abc")
	require.NoError(t, err)
	assert.False(t, resp.Success())
	assert.Equal(t, "Ruh roh", resp.Field("message"))
}

func TestClient_PostJSONAndPutSetContentType(t *testing.T) {
	var methods []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		methods = append(methods, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, BearerAuth{Token: "tok"})
	_, err := c.PostJSON(context.Background(), "/connect", []byte(`{}`), nil)
	require.NoError(t, err)
	_, err = c.Put(context.Background(), "/connect", []byte(`{}`), nil)
	require.NoError(t, err)
	assert.Equal(t, []string{http.MethodPost, http.MethodPut}, methods)
}

func TestClient_AuthFailureStopsRequest(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	c := NewClient(srv.URL, LegacyAuth{})
	_, err := c.Get(context.Background(), "/x")
	assert.ErrorContains(t, err, "apply auth")
	assert.False(t, called)
}

func TestClient_Ping(t *testing.T) {
	status := http.StatusOK
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/login_information", r.URL.Path)
		w.WriteHeader(status)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, BearerAuth{Token: "t"})
	assert.NoError(t, c.Ping(context.Background()))

	status = http.StatusUnauthorized
	assert.ErrorContains(t, c.Ping(context.Background()), "status 401")
}

func TestClient_Metrics(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	reg := prometheus.NewRegistry()
	m, err := NewMetrics(reg)
	require.NoError(t, err)

	c := NewClient(srv.URL, BearerAuth{Token: "t"}, WithMetrics(m))
	_, err = c.Get(context.Background(), "/x")
	require.NoError(t, err)
	_, err = c.Get(context.Background(), "/y")
	require.NoError(t, err)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requests.WithLabelValues(http.MethodGet, "200")))

	_, err = NewMetrics(reg)
	assert.Error(t, err, "registering twice must fail")
}

func TestNewFromConfig(t *testing.T) {
	c, err := NewFromConfig(config.DocuSignConfig{BaseURL: "http://example.test", OAuthToken: "tok", TimeoutSec: 5})
	require.NoError(t, err)
	assert.IsType(t, BearerAuth{}, c.auth)
	assert.Equal(t, "5s", c.httpClient.Timeout.String())

	_, err = NewFromConfig(config.DocuSignConfig{BaseURL: "http://example.test"})
	assert.ErrorIs(t, err, ErrNoCredentials)
}

func TestWithTimeout_LeavesCallerClientAlone(t *testing.T) {
	own := &http.Client{Timeout: time.Minute}

	c := NewClient("http://example.test", nil, WithHTTPClient(own), WithTimeout(3*time.Second))

	assert.Equal(t, time.Minute, own.Timeout)
	assert.Equal(t, 3*time.Second, c.httpClient.Timeout)
	assert.NotSame(t, own, c.httpClient)
}

func TestNewFromConfig_TimeoutCoversCustomClient(t *testing.T) {
	own := &http.Client{}

	c, err := NewFromConfig(
		config.DocuSignConfig{BaseURL: "http://example.test", OAuthToken: "tok", TimeoutSec: 7},
		WithHTTPClient(own),
	)
	require.NoError(t, err)

	assert.Equal(t, 7*time.Second, c.httpClient.Timeout)
	assert.Zero(t, own.Timeout)
}
