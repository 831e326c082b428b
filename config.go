package ldapauth

import (
	"crypto/tls"
	"log/slog"
	"time"

	"github.com/go-ldap/ldap/v3"
)

// DefaultDialTimeout is applied when Config.DialTimeout is zero. The same
// duration bounds connection establishment and each request on the
// connection (bind, search, modify).
const DefaultDialTimeout = 5 * time.Second

// Config contains the connection and search parameters shared by every
// operation of a Client. It is not modified after New returns.
type Config struct {
	// Server is the directory endpoint as a URL, e.g. "ldap://host:389"
	// or "ldaps://host:636".
	Server string
	// UserSearchBase is the DN of the subtree users are located under.
	UserSearchBase string
	// UserSearchAttribute is the attribute matched against the username,
	// e.g. "uid" or "sAMAccountName".
	UserSearchAttribute string

	// DialTimeout bounds connection establishment and every request sent
	// on the connection. Zero means DefaultDialTimeout.
	DialTimeout time.Duration
	// TLSConfig, if set, is passed through unmodified to the underlying
	// connection setup. Nil means plaintext transport (or whatever the
	// URL scheme implies).
	TLSConfig *tls.Config
	// Logger receives structured diagnostics. Nil means slog.Default().
	Logger *slog.Logger
	// DialOptions are appended to the dial options derived from the
	// fields above, for callers that need lower-level control.
	DialOptions []ldap.DialOpt
}

// validate checks the required fields. It runs before any network activity.
func (c *Config) validate() error {
	if c.Server == "" {
		return NewConfigError("Server", "server URL cannot be empty")
	}
	if c.UserSearchBase == "" {
		return NewConfigError("UserSearchBase", "user search base DN cannot be empty")
	}
	if c.UserSearchAttribute == "" {
		return NewConfigError("UserSearchAttribute", "user search attribute cannot be empty")
	}
	return nil
}

// dialTimeout returns the configured timeout, defaulted.
func (c *Config) dialTimeout() time.Duration {
	if c.DialTimeout > 0 {
		return c.DialTimeout
	}
	return DefaultDialTimeout
}
