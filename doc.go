// Package ldapauth provides LDAP-backed user lookup and credential
// verification on top of go-ldap/ldap.
//
// The package exposes two operations:
//   - SingleSearch locates a user entry by a searchable attribute under a
//     configured base DN, using an administrative bind.
//   - SingleAuthentication verifies an end user's password by locating their
//     entry and then binding as that entry's distinguished name.
//
// Every call dials a fresh connection, uses it for exactly one bind/search
// sequence and unbinds it before returning. There is no connection pooling,
// no caching and no retry logic; callers that need those layers should build
// them on top.
//
// # Basic Usage
//
//	config := &ldapauth.Config{
//		Server:              "ldaps://ldap.example.com:636",
//		UserSearchBase:      "ou=people,dc=example,dc=com",
//		UserSearchAttribute: "uid",
//	}
//
//	client, err := ldapauth.New(config, "cn=admin,dc=example,dc=com", "secret")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Look a user up without touching their credentials.
//	entry, err := client.SingleSearch("jdoe")
//	if err != nil {
//		log.Printf("lookup failed: %v", err)
//		return
//	}
//	if entry == nil {
//		log.Print("no such user")
//		return
//	}
//
//	// Verify an end user's password.
//	entry, err = client.SingleAuthentication("jdoe", "their-password")
//	var invalid *ldapauth.InvalidUserCredentialsError
//	if errors.As(err, &invalid) {
//		// Reject the login attempt; invalid.UserFound tells the two
//		// cases apart.
//		return
//	}
//	if err != nil {
//		// Connection, administrative or directory failure; alert
//		// operations rather than the end user.
//		return
//	}
//
// # Error Classification
//
// Failures keep their origin visible: administrative bind rejections,
// connection and timeout failures and directory errors (such as a bad search
// base) propagate unmodified, wrapped with operation context. Only the
// authentication flow translates a subject bind rejection into
// *InvalidUserCredentialsError, so callers can separate "my service account
// is misconfigured" from "this user typed the wrong password" with
// errors.As and the Is* helper predicates.
package ldapauth
