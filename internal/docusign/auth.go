package docusign

import (
	"context"
	"crypto/rsa"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"hancock/internal/config"
)

// ErrNoCredentials is returned when the configuration carries no usable credential set.
var ErrNoCredentials = errors.New("docusign credentials are not configured")

// AuthStrategy adds authentication to an outgoing request.
type AuthStrategy interface {
	Apply(ctx context.Context, req *http.Request) error
}

// LegacyAuth sends username, password and integrator key in the X-DocuSign-Authentication header.
type LegacyAuth struct {
	Username      string
	Password      string
	IntegratorKey string
}

func (a LegacyAuth) Apply(_ context.Context, req *http.Request) error {
	if a.Username == "" || a.Password == "" || a.IntegratorKey == "" {
		return errors.New("username, password and integrator key are required")
	}
	b, err := json.Marshal(struct {
		Username      string `json:"Username"`
		Password      string `json:"Password"`
		IntegratorKey string `json:"IntegratorKey"`
	}{a.Username, a.Password, a.IntegratorKey})
	if err != nil {
		return err
	}
	req.Header.Set("X-DocuSign-Authentication", string(b))
	return nil
}

// BearerAuth sends a pre-acquired OAuth access token.
type BearerAuth struct {
	Token string
}

func (a BearerAuth) Apply(_ context.Context, req *http.Request) error {
	if strings.TrimSpace(a.Token) == "" {
		return errors.New("oauth token is required")
	}
	req.Header.Set("Authorization", "Bearer "+a.Token)
	return nil
}

const (
	jwtGrantType   = "urn:ietf:params:oauth:grant-type:jwt-bearer"
	defaultScope   = "signature impersonation"
	assertionTTL   = time.Hour
	tokenLeeway    = time.Minute
	defaultOAuthTo = 10 * time.Second
)

// JWTAuth exchanges an RS256-signed assertion for an access token and caches it until
// shortly before it expires. Safe for concurrent use.
type JWTAuth struct {
	IntegratorKey string
	UserID        string
	PrivateKey    *rsa.PrivateKey
	// OAuthHost is the authorization server host, e.g. "account-d.docusign.com".
	// A full URL is accepted as well.
	OAuthHost  string
	Scope      string
	HTTPClient *http.Client
	Now        func() time.Time

	mu        sync.Mutex
	token     string
	expiresAt time.Time
}

// NewJWTAuth loads the PEM private key at keyPath.
func NewJWTAuth(integratorKey, userID, keyPath, oauthHost string) (*JWTAuth, error) {
	pem, err := os.ReadFile(keyPath)
	if err != nil {
		return nil, fmt.Errorf("read private key: %w", err)
	}
	key, err := jwt.ParseRSAPrivateKeyFromPEM(pem)
	if err != nil {
		return nil, fmt.Errorf("parse private key: %w", err)
	}
	return &JWTAuth{
		IntegratorKey: integratorKey,
		UserID:        userID,
		PrivateKey:    key,
		OAuthHost:     oauthHost,
	}, nil
}

func (a *JWTAuth) Apply(ctx context.Context, req *http.Request) error {
	token, err := a.Token(ctx)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	return nil
}

// Token returns a cached access token or requests a new one.
func (a *JWTAuth) Token(ctx context.Context) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	now := a.now()
	if a.token != "" && now.Before(a.expiresAt.Add(-tokenLeeway)) {
		return a.token, nil
	}

	base, audience := a.endpoint()
	scope := a.Scope
	if scope == "" {
		scope = defaultScope
	}
	claims := jwt.MapClaims{
		"iss":   a.IntegratorKey,
		"sub":   a.UserID,
		"aud":   audience,
		"iat":   now.Unix(),
		"exp":   now.Add(assertionTTL).Unix(),
		"scope": scope,
	}
	assertion, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(a.PrivateKey)
	if err != nil {
		return "", fmt.Errorf("sign jwt assertion: %w", err)
	}

	form := url.Values{}
	form.Set("grant_type", jwtGrantType)
	form.Set("assertion", assertion)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, base+"/oauth/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	client := a.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: defaultOAuthTo}
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("jwt grant: %w", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("jwt grant: read body: %w", err)
	}

	var out struct {
		AccessToken      string `json:"access_token"`
		ExpiresIn        int    `json:"expires_in"`
		Error            string `json:"error"`
		ErrorDescription string `json:"error_description"`
	}
	_ = json.Unmarshal(body, &out)
	if resp.StatusCode != http.StatusOK || out.AccessToken == "" {
		msg := out.ErrorDescription
		if msg == "" {
			msg = out.Error
		}
		return "", fmt.Errorf("jwt grant: status %d: %s", resp.StatusCode, msg)
	}

	a.token = out.AccessToken
	a.expiresAt = now.Add(time.Duration(out.ExpiresIn) * time.Second)
	return a.token, nil
}

func (a *JWTAuth) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

// endpoint returns the token server base URL and the audience claim for it.
func (a *JWTAuth) endpoint() (string, string) {
	host := strings.TrimRight(a.OAuthHost, "/")
	if u, err := url.Parse(host); err == nil && u.Scheme != "" && u.Host != "" {
		return host, u.Host
	}
	return "https://" + host, host
}

// AuthFromConfig picks the credential set present in cfg: OAuth token, then JWT grant,
// then legacy header authentication.
func AuthFromConfig(cfg config.DocuSignConfig) (AuthStrategy, error) {
	switch {
	case cfg.OAuthToken != "":
		return BearerAuth{Token: cfg.OAuthToken}, nil
	case cfg.HasJWTCredentials():
		return NewJWTAuth(cfg.IntegratorKey, cfg.UserID, cfg.PrivateKeyPath, cfg.OAuthHost)
	case cfg.HasLegacyCredentials():
		return LegacyAuth{Username: cfg.Username, Password: cfg.Password, IntegratorKey: cfg.IntegratorKey}, nil
	default:
		return nil, ErrNoCredentials
	}
}
