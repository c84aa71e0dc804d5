// Package gitlab implements the core HTTP client for the GitLab REST API:
// authenticated GET/POST/PUT/DELETE calls, URL and query construction,
// inbound webhook secret-token validation and an optional TLS trust bypass
// for development endpoints. Endpoint-specific wrappers and response
// deserialization live with the caller.
package gitlab

import (
	"crypto/tls"
	"fmt"
	"net/http"
	"strings"
	"sync"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// Header names used by the client.
const (
	privateTokenHeader  = "PRIVATE-TOKEN"
	authorizationHeader = "Authorization"
	sudoHeader          = "Sudo"

	// SecretTokenHeader carries the pre-shared secret on inbound webhook calls.
	SecretTokenHeader = "X-Gitlab-Token"
)

// TokenType selects how the auth token is presented to the server.
type TokenType int

const (
	// TokenTypePrivate sends the token in the PRIVATE-TOKEN header.
	TokenTypePrivate TokenType = iota

	// TokenTypeAccess sends the token as an Authorization bearer token.
	TokenTypeAccess
)

// APIVersion selects the URL namespace suffix of the GitLab REST API.
type APIVersion string

const (
	V3 APIVersion = "v3"
	V4 APIVersion = "v4"
)

func (v APIVersion) namespace() string {
	return "/api/" + string(v)
}

// Config carries everything needed to construct a Client. HostURL and
// AuthToken are required; every other field has a usable zero value.
type Config struct {
	// HostURL is the base URL of the GitLab server, e.g. "https://gitlab.example.com".
	// A trailing slash is stripped and the API version namespace appended.
	HostURL string

	// APIVersion defaults to V4.
	APIVersion APIVersion

	// TokenType defaults to TokenTypePrivate.
	TokenType TokenType

	// AuthToken authenticates every outbound request.
	AuthToken string

	// SecretToken, when non-blank, is the pre-shared secret inbound webhook
	// calls must carry in the X-Gitlab-Token header.
	SecretToken string

	// SudoID, when positive, impersonates that user on every request.
	SudoID int

	// Transport, when set, is cloned and used as the base transport instead
	// of the tuned default.
	Transport *http.Transport
}

func (c Config) validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.HostURL, validation.Required, is.URL),
		validation.Field(&c.AuthToken, validation.Required),
	)
}

// Client is the GitLab API core client. A single instance caches one HTTP
// transport handle, rebuilt lazily after a trust-mode or sudo change.
type Client struct {
	baseURL     string
	tokenType   TokenType
	authToken   string
	secretToken string

	mu             sync.Mutex
	sudoID         int
	insecure       bool
	tlsConfig      *tls.Config
	httpClient     *http.Client
	baseTransport  *http.Transport
	newInsecureTLS func() (*tls.Config, error)
}

// New builds a Client from the given config. The host URL is normalized so
// that the resulting base URL never ends with "/" and always carries the
// API version namespace.
func New(cfg Config) (*Client, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid client config: %w", err)
	}

	if cfg.APIVersion == "" {
		cfg.APIVersion = V4
	}

	c := &Client{
		baseURL:        strings.TrimRight(cfg.HostURL, "/") + cfg.APIVersion.namespace(),
		tokenType:      cfg.TokenType,
		authToken:      cfg.AuthToken,
		secretToken:    strings.TrimSpace(cfg.SecretToken),
		sudoID:         cfg.SudoID,
		baseTransport:  cfg.Transport,
		newInsecureTLS: insecureTLSConfig,
	}

	return c, nil
}

// BaseURL returns the normalized API base URL, e.g.
// "https://gitlab.example.com/api/v4".
func (c *Client) BaseURL() string {
	return c.baseURL
}

// SudoID returns the ID of the user requests are impersonating, or 0.
func (c *Client) SudoID() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sudoID
}

// SetSudoID sets the ID of the user to impersonate on subsequent requests.
// A non-positive ID disables impersonation.
func (c *Client) SetSudoID(id int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sudoID = id
	c.httpClient = nil
}

// ValidSecretToken reports whether the X-Gitlab-Token header matches the
// configured secret token. Validation always succeeds when no secret token
// is configured; it fails when the header is absent, and otherwise compares
// byte-exact and case-sensitive. This guards inbound webhook calls, not
// outbound API calls.
func (c *Client) ValidSecretToken(header http.Header) bool {
	if c.secretToken == "" {
		return true
	}

	got := header.Get(SecretTokenHeader)
	if got == "" {
		return false
	}

	return got == c.secretToken
}
