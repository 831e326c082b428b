package ldapauth

import (
	"context"
	"log/slog"
	"time"
)

// SingleSearch locates the user entry whose configured search attribute
// equals username, using the administrative identity.
//
// It returns (nil, nil) when no entry matches; that outcome is not an error.
// Administrative bind rejections, connection failures and directory errors
// are returned as they were classified at their origin.
func (c *Client) SingleSearch(username string) (*UserEntry, error) {
	return c.SingleSearchContext(context.Background(), username)
}

// SingleSearchContext is SingleSearch with a caller-supplied context.
//
// The administrative connection is dialed, bound, used for exactly one
// search and unbound before this method returns, whatever the outcome.
func (c *Client) SingleSearchContext(ctx context.Context, username string) (*UserEntry, error) {
	start := time.Now()

	if username == "" {
		return nil, validationError("username", "cannot be empty")
	}

	conn, err := c.dialAndBind(ctx, c.adminDN, c.adminPassword)
	if err != nil {
		c.logger.Warn("admin_bind_failed",
			slog.String("server", c.config.Server),
			slog.String("error", err.Error()),
			slog.Duration("duration", time.Since(start)))
		return nil, err
	}
	defer func() { _ = conn.Close() }()

	entry, err := c.findUser(conn, username)
	if err != nil {
		c.logger.Warn("user_search_failed",
			slog.String("server", c.config.Server),
			slog.String("username", maskSensitiveData(username)),
			slog.String("error", err.Error()),
			slog.Duration("duration", time.Since(start)))
		return nil, err
	}

	if entry == nil {
		c.logger.Debug("user_not_found",
			slog.String("username", maskSensitiveData(username)),
			slog.Duration("duration", time.Since(start)))
		return nil, nil
	}

	c.logger.Debug("user_located",
		slog.String("username", maskSensitiveData(username)),
		slog.String("dn", maskSensitiveData(entry.DN())),
		slog.Duration("duration", time.Since(start)))
	return entry, nil
}

// SingleAuthentication verifies an end user's password: it locates the user
// entry via SingleSearch, then binds as that entry's DN with the supplied
// password on a fresh connection.
//
// A login that must be rejected — unknown user, or known user with a wrong
// password — is reported as *InvalidUserCredentialsError. Every other
// failure (administrative bind, connection, timeout, directory error)
// propagates unmodified, because it does not indicate a credentials problem.
func (c *Client) SingleAuthentication(username, password string) (*UserEntry, error) {
	return c.SingleAuthenticationContext(context.Background(), username, password)
}

// SingleAuthenticationContext is SingleAuthentication with a caller-supplied
// context.
func (c *Client) SingleAuthenticationContext(ctx context.Context, username, password string) (*UserEntry, error) {
	start := time.Now()

	if password == "" {
		return nil, validationError("password", "cannot be empty")
	}

	entry, err := c.SingleSearchContext(ctx, username)
	if err != nil {
		return nil, err
	}

	if entry == nil {
		c.logger.Info("authentication_failed",
			slog.String("username", maskSensitiveData(username)),
			slog.Bool("user_found", false),
			slog.Duration("duration", time.Since(start)))
		return nil, &InvalidUserCredentialsError{Username: username, UserFound: false}
	}

	conn, err := c.dialAndBind(ctx, entry.DN(), password)
	if err != nil {
		if IsCredentialError(err) {
			c.logger.Info("authentication_failed",
				slog.String("username", maskSensitiveData(username)),
				slog.Bool("user_found", true),
				slog.Duration("duration", time.Since(start)))
			return nil, &InvalidUserCredentialsError{Username: username, UserFound: true}
		}
		return nil, err
	}
	// The bind itself was the verification; the session has no further use.
	_ = conn.Close()

	c.logger.Info("authentication_successful",
		slog.String("username", maskSensitiveData(username)),
		slog.Duration("duration", time.Since(start)))
	return entry, nil
}
