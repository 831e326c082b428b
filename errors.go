package ldapauth

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/go-ldap/ldap/v3"
)

// LDAPError wraps a failure from the underlying directory transport with the
// operation that produced it. The original error stays reachable through
// Unwrap, so result-code checks like ldap.IsErrorWithCode keep working on
// wrapped errors.
type LDAPError struct {
	// Op is the operation name (e.g. "Dial", "Bind", "Search").
	Op string
	// DN is the distinguished name involved in the operation, if any.
	DN string
	// Server is the LDAP server URL.
	Server string
	// Code is the LDAP result code, or -1 when the failure never reached
	// the directory.
	Code int
	// Err is the underlying error.
	Err error
	// Timestamp indicates when the error occurred.
	Timestamp time.Time
}

// Error implements the error interface.
func (e *LDAPError) Error() string {
	if e.DN != "" {
		return fmt.Sprintf("ldap %s failed for DN %q on server %q: %v", e.Op, e.DN, e.Server, e.Err)
	}
	return fmt.Sprintf("ldap %s failed on server %q: %v", e.Op, e.Server, e.Err)
}

// Unwrap implements the Go 1.13+ error unwrapping interface.
func (e *LDAPError) Unwrap() error {
	return e.Err
}

// Is treats two LDAPErrors as equivalent when operation and result code
// match; anything else is delegated to the wrapped error.
func (e *LDAPError) Is(target error) bool {
	if other, ok := target.(*LDAPError); ok {
		return e.Op == other.Op && e.Code == other.Code
	}
	return errors.Is(e.Err, target)
}

// NewLDAPError creates a new LDAPError for the given operation. The result
// code is extracted from err when it carries one.
func NewLDAPError(op, server string, err error) *LDAPError {
	return &LDAPError{
		Op:        op,
		Server:    server,
		Code:      GetLDAPResultCode(err),
		Err:       err,
		Timestamp: time.Now(),
	}
}

// WithDN adds the distinguished name involved in the failed operation.
func (e *LDAPError) WithDN(dn string) *LDAPError {
	e.DN = dn
	return e
}

// InvalidUserCredentialsError is the authentication outcome for a login
// attempt that must be rejected: either the user does not exist, or the user
// exists and supplied a wrong password. UserFound tells the two apart.
//
// It is only ever returned by SingleAuthentication (and ChangePassword's old
// password verification); lookups report "not found" as a nil entry, not as
// an error.
type InvalidUserCredentialsError struct {
	Username  string
	UserFound bool
}

// Error implements the error interface.
func (e *InvalidUserCredentialsError) Error() string {
	if e.UserFound {
		return fmt.Sprintf("Invalid password for user %s.", e.Username)
	}
	return fmt.Sprintf("User %s not found.", e.Username)
}

// IsInvalidUserCredentials reports whether err is (or wraps) an
// InvalidUserCredentialsError.
func IsInvalidUserCredentials(err error) bool {
	var target *InvalidUserCredentialsError
	return errors.As(err, &target)
}

// ConfigError reports a missing or unusable configuration value. It is
// raised synchronously, before any network activity.
type ConfigError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (c *ConfigError) Error() string {
	if c.Field != "" {
		return fmt.Sprintf("configuration error in field %q: %s", c.Field, c.Message)
	}
	return fmt.Sprintf("configuration error: %s", c.Message)
}

// NewConfigError creates a new configuration error.
func NewConfigError(field, message string) *ConfigError {
	return &ConfigError{Field: field, Message: message}
}

// ErrPasswordChangeRequiresLDAPS is returned when attempting to change a
// password over an unencrypted connection. Active Directory refuses
// unicodePwd modifications unless the connection uses LDAPS.
var ErrPasswordChangeRequiresLDAPS = errors.New("password changes require an ldaps:// connection")

// GetLDAPResultCode extracts the LDAP result code from an error, if
// available. Returns -1 if no LDAP result code is found.
func GetLDAPResultCode(err error) int {
	var ldapErr *ldap.Error
	if errors.As(err, &ldapErr) {
		return int(ldapErr.ResultCode)
	}
	var wrapped *LDAPError
	if errors.As(err, &wrapped) {
		return wrapped.Code
	}
	return -1
}

// ExtractOperation extracts the operation name from a wrapped LDAPError.
// Returns an empty string if the error carries no operation context.
func ExtractOperation(err error) string {
	var wrapped *LDAPError
	if errors.As(err, &wrapped) {
		return wrapped.Op
	}
	return ""
}

// ExtractDN extracts the distinguished name from a wrapped LDAPError.
// Returns an empty string if the error carries no DN.
func ExtractDN(err error) string {
	var wrapped *LDAPError
	if errors.As(err, &wrapped) {
		return wrapped.DN
	}
	return ""
}

// IsCredentialError reports whether err is a bind rejection for the identity
// that attempted it (LDAP invalidCredentials). On the administrative bind
// this means the service account is misconfigured; on the subject bind it is
// translated into InvalidUserCredentialsError before callers see it.
func IsCredentialError(err error) bool {
	return GetLDAPResultCode(err) == int(ldap.LDAPResultInvalidCredentials)
}

// IsConnectionError reports whether err means the connection could not be
// established or maintained within the configured timeout: network dial
// failures, socket timeouts and context deadlines all land here.
func IsConnectionError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	switch GetLDAPResultCode(err) {
	case int(ldap.ErrorNetwork), int(ldap.LDAPResultUnavailable), int(ldap.LDAPResultServerDown):
		return true
	}
	return false
}

// IsDirectoryError reports whether err is a directory-reported protocol
// failure, such as a search against an unreachable or invalid base DN.
func IsDirectoryError(err error) bool {
	switch GetLDAPResultCode(err) {
	case int(ldap.LDAPResultNoSuchObject), int(ldap.LDAPResultInvalidDNSyntax), int(ldap.LDAPResultProtocolError):
		return true
	}
	return false
}
