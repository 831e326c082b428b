package ldapauth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-ldap/ldap/v3"
	"golang.org/x/text/encoding/unicode"
)

var utf16le = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

// encodePassword encodes a password for the Active Directory unicodePwd
// attribute: the quoted password in UTF-16LE.
// See: https://learn.microsoft.com/en-us/openspecs/windows_protocols/ms-adts/6e803168-f140-4d23-b2d3-c3a8ab5917d2
func encodePassword(password string) (string, error) {
	encoded, err := utf16le.NewEncoder().String("\"" + password + "\"")
	if err != nil {
		return "", err
	}
	return encoded, nil
}

// ChangePassword changes a user's password after verifying the old one.
// The user is located like SingleSearch does, the old password is verified
// by binding as the user, and the change is submitted as a unicodePwd
// delete/add modify.
//
// Active Directory refuses unicodePwd modifications over plaintext, so the
// configured server URL must use the ldaps scheme.
func (c *Client) ChangePassword(username, oldPassword, newPassword string) error {
	return c.ChangePasswordContext(context.Background(), username, oldPassword, newPassword)
}

// ChangePasswordContext is ChangePassword with a caller-supplied context.
func (c *Client) ChangePasswordContext(ctx context.Context, username, oldPassword, newPassword string) error {
	start := time.Now()

	if oldPassword == "" {
		return validationError("oldPassword", "cannot be empty")
	}
	if newPassword == "" {
		return validationError("newPassword", "cannot be empty")
	}
	if !strings.HasPrefix(c.config.Server, "ldaps://") {
		return fmt.Errorf("password change for user %s on server %s: %w",
			username, c.config.Server, ErrPasswordChangeRequiresLDAPS)
	}

	entry, err := c.SingleSearchContext(ctx, username)
	if err != nil {
		return err
	}
	if entry == nil {
		return &InvalidUserCredentialsError{Username: username, UserFound: false}
	}

	// Binding as the user verifies the old password; the same session then
	// carries the modify.
	conn, err := c.dialAndBind(ctx, entry.DN(), oldPassword)
	if err != nil {
		if IsCredentialError(err) {
			c.logger.Info("password_change_rejected",
				slog.String("username", maskSensitiveData(username)),
				slog.Duration("duration", time.Since(start)))
			return &InvalidUserCredentialsError{Username: username, UserFound: true}
		}
		return err
	}
	defer func() { _ = conn.Close() }()

	oldEncoded, err := encodePassword(oldPassword)
	if err != nil {
		return fmt.Errorf("failed to encode old password: %w", err)
	}
	newEncoded, err := encodePassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to encode new password: %w", err)
	}

	// A delete of the old value followed by an add of the new one is what
	// the server treats as a user-initiated password change.
	modify := ldap.NewModifyRequest(entry.DN(), nil)
	modify.Delete("unicodePwd", []string{oldEncoded})
	modify.Add("unicodePwd", []string{newEncoded})

	if err := conn.Modify(modify); err != nil {
		c.logger.Warn("password_change_failed",
			slog.String("username", maskSensitiveData(username)),
			slog.String("error", err.Error()),
			slog.Duration("duration", time.Since(start)))
		return NewLDAPError("Modify", c.config.Server, err).WithDN(entry.DN())
	}

	c.logger.Info("password_change_successful",
		slog.String("username", maskSensitiveData(username)),
		slog.Duration("duration", time.Since(start)))
	return nil
}
