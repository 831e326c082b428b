package ldapauth

import (
	"crypto/tls"
	"log/slog"
	"time"

	"github.com/go-ldap/ldap/v3"
)

// Option represents a functional option for configuring a Client.
type Option func(*Client)

// WithLogger sets a custom structured logger for diagnostics.
//
// Example:
//
//	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
//	client, err := New(config, adminDN, adminPassword, WithLogger(logger))
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithTLS sets the TLS configuration used for connection setup. It overrides
// Config.TLSConfig.
func WithTLS(tlsConfig *tls.Config) Option {
	return func(c *Client) {
		if tlsConfig != nil {
			c.config.TLSConfig = tlsConfig
		}
	}
}

// WithTimeout sets the timeout applied to connection establishment and to
// every request sent on the connection. It overrides Config.DialTimeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.config.DialTimeout = timeout
		}
	}
}

// WithDialOptions appends custom dial options for connection establishment.
//
// Example:
//
//	client, err := New(config, adminDN, adminPassword,
//	    WithDialOptions(ldap.DialWithDialer(&net.Dialer{Timeout: 10 * time.Second})))
func WithDialOptions(dialOpts ...ldap.DialOpt) Option {
	return func(c *Client) {
		if len(dialOpts) > 0 {
			c.config.DialOptions = append(c.config.DialOptions, dialOpts...)
		}
	}
}
