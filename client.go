package ldapauth

import (
	"context"
	"log/slog"
	"net"
	"time"

	"github.com/go-ldap/ldap/v3"
)

// ldapConn is the subset of *ldap.Conn the client drives. It exists so the
// orchestration logic can be exercised against a mock transport.
type ldapConn interface {
	Bind(username, password string) error
	Search(req *ldap.SearchRequest) (*ldap.SearchResult, error)
	Modify(req *ldap.ModifyRequest) error
	SetTimeout(timeout time.Duration)
	Close() error
}

var _ ldapConn = (*ldap.Conn)(nil)

// Client performs single-result user lookups and credential verification
// against one directory endpoint. Each operation dials its own connection;
// a Client holds no network state and is safe for concurrent use.
type Client struct {
	config        *Config
	adminDN       string
	adminPassword string
	logger        *slog.Logger

	// dial establishes an unbound connection. Overridden in tests.
	dial func(ctx context.Context) (ldapConn, error)
}

// New creates a Client for the given configuration and administrative
// identity. All required fields are validated here, before any network
// activity; a violation is a *ConfigError.
func New(config *Config, adminDN, adminPassword string, opts ...Option) (*Client, error) {
	if config == nil {
		return nil, NewConfigError("", "config cannot be nil")
	}
	if err := config.validate(); err != nil {
		return nil, err
	}
	if adminDN == "" {
		return nil, NewConfigError("adminDN", "administrative DN cannot be empty")
	}
	if adminPassword == "" {
		return nil, NewConfigError("adminPassword", "administrative password cannot be empty")
	}

	// The configuration is copied so later option application never
	// mutates the caller's struct.
	cfg := *config

	logger := slog.Default()
	if cfg.Logger != nil {
		logger = cfg.Logger
	}

	client := &Client{
		config:        &cfg,
		adminDN:       adminDN,
		adminPassword: adminPassword,
		logger:        logger,
	}
	client.dial = client.dialDirect

	for _, opt := range opts {
		opt(client)
	}

	return client, nil
}

// WithCredentials creates a new Client with the same configuration but a
// different administrative identity.
func (c *Client) WithCredentials(dn, password string) (*Client, error) {
	return New(c.config, dn, password, WithLogger(c.logger))
}

// dialDirect establishes a connection per the configured URL, TLS settings
// and timeout.
func (c *Client) dialDirect(_ context.Context) (ldapConn, error) {
	dialOpts := make([]ldap.DialOpt, 0, len(c.config.DialOptions)+2)
	dialOpts = append(dialOpts, ldap.DialWithDialer(&net.Dialer{Timeout: c.config.dialTimeout()}))
	if c.config.TLSConfig != nil {
		dialOpts = append(dialOpts, ldap.DialWithTLSConfig(c.config.TLSConfig))
	}
	dialOpts = append(dialOpts, c.config.DialOptions...)

	conn, err := ldap.DialURL(c.config.Server, dialOpts...)
	if err != nil {
		return nil, err
	}
	return conn, nil
}

// connResult carries the single settlement of a dial+bind attempt.
type connResult struct {
	conn ldapConn
	err  error
}

// dialAndBind establishes a connection and binds it as the given identity.
// The returned connection is owned by the caller and must be closed on every
// exit path.
//
// The blocking work runs in a goroutine that settles exactly once through a
// buffered channel. If the context wins the race, the eventual result is
// drained and its connection closed, so a slow dial can neither leak a
// connection nor overwrite an outcome that was already delivered.
func (c *Client) dialAndBind(ctx context.Context, dn, password string) (ldapConn, error) {
	start := time.Now()

	c.logger.Debug("ldap_connection_establishing",
		slog.String("server", c.config.Server),
		slog.String("bind_dn", maskSensitiveData(dn)))

	settled := make(chan connResult, 1)
	go func() {
		conn, err := c.dial(ctx)
		if err != nil {
			settled <- connResult{err: dialError(c.config.Server, err)}
			return
		}

		// Bound requests on this connection time out like the dial does.
		conn.SetTimeout(c.config.dialTimeout())

		if err := conn.Bind(dn, password); err != nil {
			_ = conn.Close()
			settled <- connResult{err: bindError(c.config.Server, dn, err)}
			return
		}
		settled <- connResult{conn: conn}
	}()

	select {
	case <-ctx.Done():
		go func() {
			// Late settlement: observed for cleanup only.
			if r := <-settled; r.conn != nil {
				_ = r.conn.Close()
			}
		}()
		c.logger.Debug("ldap_connection_cancelled",
			slog.String("server", c.config.Server),
			slog.String("error", ctx.Err().Error()),
			slog.Duration("duration", time.Since(start)))
		return nil, NewLDAPError("Bind", c.config.Server, ctx.Err()).WithDN(dn)
	case r := <-settled:
		if r.err != nil {
			c.logger.Debug("ldap_connection_failed",
				slog.String("server", c.config.Server),
				slog.String("bind_dn", maskSensitiveData(dn)),
				slog.String("error", r.err.Error()),
				slog.Duration("duration", time.Since(start)))
			return nil, r.err
		}
		c.logger.Debug("ldap_connection_established",
			slog.String("server", c.config.Server),
			slog.String("bind_dn", maskSensitiveData(dn)),
			slog.Duration("duration", time.Since(start)))
		return r.conn, nil
	}
}
