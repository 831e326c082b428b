package ldapauth

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/go-ldap/ldap/v3"
)

func TestInvalidUserCredentialsErrorMessages(t *testing.T) {
	notFound := &InvalidUserCredentialsError{Username: "jdoe", UserFound: false}
	if got, want := notFound.Error(), "User jdoe not found."; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}

	wrongPassword := &InvalidUserCredentialsError{Username: "jdoe", UserFound: true}
	if got, want := wrongPassword.Error(), "Invalid password for user jdoe."; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestIsInvalidUserCredentials(t *testing.T) {
	err := &InvalidUserCredentialsError{Username: "jdoe", UserFound: true}
	if !IsInvalidUserCredentials(err) {
		t.Error("expected direct error to be recognized")
	}

	wrapped := fmt.Errorf("login rejected: %w", err)
	if !IsInvalidUserCredentials(wrapped) {
		t.Error("expected wrapped error to be recognized")
	}

	var target *InvalidUserCredentialsError
	if !errors.As(wrapped, &target) {
		t.Fatal("errors.As failed on wrapped error")
	}
	if !target.UserFound || target.Username != "jdoe" {
		t.Errorf("unexpected fields: %+v", target)
	}

	if IsInvalidUserCredentials(errors.New("unrelated")) {
		t.Error("unrelated error misclassified")
	}
}

func TestLDAPErrorFormatting(t *testing.T) {
	base := errors.New("connection refused")

	withDN := NewLDAPError("Bind", "ldaps://test.example", base).WithDN("cn=admin,dc=example,dc=com")
	want := `ldap Bind failed for DN "cn=admin,dc=example,dc=com" on server "ldaps://test.example": connection refused`
	if withDN.Error() != want {
		t.Errorf("expected %q, got %q", want, withDN.Error())
	}

	withoutDN := NewLDAPError("Dial", "ldaps://test.example", base)
	want = `ldap Dial failed on server "ldaps://test.example": connection refused`
	if withoutDN.Error() != want {
		t.Errorf("expected %q, got %q", want, withoutDN.Error())
	}
}

func TestLDAPErrorPreservesUnderlyingError(t *testing.T) {
	underlying := ldap.NewError(ldap.LDAPResultNoSuchObject, errors.New("no such object"))
	wrapped := searchError("ldap://test.example", "ou=missing,dc=example,dc=com", underlying)

	if !ldap.IsErrorWithCode(wrapped, ldap.LDAPResultNoSuchObject) {
		t.Error("result code not matchable through the wrapper")
	}
	if !errors.Is(wrapped, underlying) {
		t.Error("underlying error not reachable via errors.Is")
	}
	if got := GetLDAPResultCode(wrapped); got != int(ldap.LDAPResultNoSuchObject) {
		t.Errorf("expected code %d, got %d", ldap.LDAPResultNoSuchObject, got)
	}
	if got := ExtractOperation(wrapped); got != "Search" {
		t.Errorf("expected operation Search, got %q", got)
	}
	if got := ExtractDN(wrapped); got != "ou=missing,dc=example,dc=com" {
		t.Errorf("unexpected DN %q", got)
	}
}

func TestGetLDAPResultCode(t *testing.T) {
	if got := GetLDAPResultCode(errors.New("plain")); got != -1 {
		t.Errorf("expected -1 for plain error, got %d", got)
	}

	direct := ldap.NewError(ldap.LDAPResultInvalidCredentials, errors.New("invalid credentials"))
	if got := GetLDAPResultCode(direct); got != int(ldap.LDAPResultInvalidCredentials) {
		t.Errorf("expected %d, got %d", ldap.LDAPResultInvalidCredentials, got)
	}
}

func TestClassificationHelpers(t *testing.T) {
	invalidCreds := bindError("ldap://test.example", "cn=admin",
		ldap.NewError(ldap.LDAPResultInvalidCredentials, errors.New("invalid credentials")))
	if !IsCredentialError(invalidCreds) {
		t.Error("invalid credentials not classified as credential error")
	}
	if IsConnectionError(invalidCreds) {
		t.Error("credential error misclassified as connection error")
	}

	network := dialError("ldap://test.example",
		ldap.NewError(ldap.ErrorNetwork, errors.New("connection refused")))
	if !IsConnectionError(network) {
		t.Error("network failure not classified as connection error")
	}
	if IsCredentialError(network) {
		t.Error("network failure misclassified as credential error")
	}

	deadline := NewLDAPError("Bind", "ldap://test.example", context.DeadlineExceeded)
	if !IsConnectionError(deadline) {
		t.Error("context deadline not classified as connection error")
	}

	noSuchObject := searchError("ldap://test.example", "ou=bad",
		ldap.NewError(ldap.LDAPResultNoSuchObject, errors.New("no such object")))
	if !IsDirectoryError(noSuchObject) {
		t.Error("noSuchObject not classified as directory error")
	}
	if IsDirectoryError(network) {
		t.Error("network failure misclassified as directory error")
	}
}

func TestConfigErrorMessage(t *testing.T) {
	withField := NewConfigError("Server", "server URL cannot be empty")
	if got, want := withField.Error(), `configuration error in field "Server": server URL cannot be empty`; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}

	withoutField := NewConfigError("", "config cannot be nil")
	if got, want := withoutField.Error(), "configuration error: config cannot be nil"; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}
