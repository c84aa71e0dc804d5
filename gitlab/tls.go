package gitlab

import (
	"crypto/tls"
	"errors"
	"fmt"
)

// ErrTrustBypass is returned when the permissive TLS context could not be
// built; the client stays on the secure transport.
var ErrTrustBypass = errors.New("unable to ignore certificate errors")

// insecureTLSConfig builds a TLS config that accepts every certificate
// chain and hostname.
func insecureTLSConfig() (*tls.Config, error) {
	return &tls.Config{InsecureSkipVerify: true}, nil
}

// IgnoreCertificateErrors reports whether the client is set up to ignore
// TLS certificate errors.
func (c *Client) IgnoreCertificateErrors() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.insecure
}

// SetIgnoreCertificateErrors toggles TLS certificate and hostname
// validation; use only against trusted test endpoints. Setting the current
// value is a no-op. Any change invalidates the cached transport handle so
// the next request rebuilds it. If the permissive TLS context cannot be
// built the flag stays false, the handle is invalidated and ErrTrustBypass
// is returned, so the client is never silently insecure nor left reporting
// an insecure mode it does not have.
func (c *Client) SetIgnoreCertificateErrors(ignore bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.insecure == ignore {
		return nil
	}

	if !ignore {
		c.insecure = false
		c.tlsConfig = nil
		c.httpClient = nil
		return nil
	}

	tlsConfig, err := c.newInsecureTLS()
	if err != nil {
		c.insecure = false
		c.tlsConfig = nil
		c.httpClient = nil
		return fmt.Errorf("%w: %v", ErrTrustBypass, err)
	}

	c.tlsConfig = tlsConfig
	c.insecure = true
	c.httpClient = nil
	return nil
}
