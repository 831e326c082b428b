package ldapauth

import (
	"fmt"

	"github.com/go-ldap/ldap/v3"
)

// findUser issues the capped equality search on an already bound connection
// and consumes the result.
//
// Zero entries is not an error: the caller gets (nil, nil) and decides what
// "not found" means at its layer. Directory-reported failures (for example
// noSuchObject on a bad search base) are wrapped with operation context but
// stay reachable through errors.As / ldap.IsErrorWithCode.
func (c *Client) findUser(conn ldapConn, username string) (*UserEntry, error) {
	filter := fmt.Sprintf("(%s=%s)", c.config.UserSearchAttribute, ldap.EscapeFilter(username))

	req := ldap.NewSearchRequest(
		c.config.UserSearchBase,
		ldap.ScopeWholeSubtree,
		ldap.NeverDerefAliases,
		1, // at most one entry is ever consumed
		0,
		false,
		filter,
		nil,
		nil,
	)

	result, err := conn.Search(req)
	if err != nil {
		// A directory holding several matches answers sizeLimitExceeded
		// alongside the first entry; that entry is the result.
		if ldap.IsErrorWithCode(err, ldap.LDAPResultSizeLimitExceeded) &&
			result != nil && len(result.Entries) > 0 {
			return newUserEntry(result.Entries[0]), nil
		}
		return nil, searchError(c.config.Server, c.config.UserSearchBase, err)
	}

	if len(result.Entries) == 0 {
		return nil, nil
	}
	return newUserEntry(result.Entries[0]), nil
}
