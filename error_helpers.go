package ldapauth

import "fmt"

// Error helper functions shared by the lookup and authentication paths.

// bindError wraps a bind rejection with the identity that attempted it.
func bindError(server, dn string, err error) error {
	return NewLDAPError("Bind", server, err).WithDN(dn)
}

// dialError wraps a failed connection attempt.
func dialError(server string, err error) error {
	return NewLDAPError("Dial", server, err)
}

// searchError wraps a failed search, keeping the directory-reported error
// reachable for result-code matching.
func searchError(server, baseDN string, err error) error {
	return NewLDAPError("Search", server, err).WithDN(baseDN)
}

// validationError reports a per-call precondition violation.
func validationError(field, reason string) error {
	return fmt.Errorf("validation failed for %s: %s", field, reason)
}
