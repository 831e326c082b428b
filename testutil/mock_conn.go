// Package testutil provides a mock directory transport for exercising the
// lookup and authentication flows without a live LDAP server.
package testutil

import (
	"errors"
	"sync"
	"time"

	"github.com/go-ldap/ldap/v3"
)

// MockConn is a configurable stand-in for one LDAP connection. Behavior is
// injected through the *Func fields; every call is recorded for assertions.
// The zero value rejects binds and returns empty search results.
type MockConn struct {
	mu sync.Mutex

	// Configuration
	BindFunc   func(dn, password string) error
	SearchFunc func(req *ldap.SearchRequest) (*ldap.SearchResult, error)
	ModifyFunc func(req *ldap.ModifyRequest) error

	// State tracking
	BindCalls   []BindCall
	SearchCalls []*ldap.SearchRequest
	ModifyCalls []*ldap.ModifyRequest
	Timeout     time.Duration
	Closed      bool
	CloseCount  int
}

// BindCall records one bind attempt.
type BindCall struct {
	DN       string
	Password string
}

// Bind records the attempt and delegates to BindFunc.
func (m *MockConn) Bind(dn, password string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.BindCalls = append(m.BindCalls, BindCall{DN: dn, Password: password})
	if m.BindFunc != nil {
		return m.BindFunc(dn, password)
	}
	return ldap.NewError(ldap.LDAPResultInvalidCredentials, errors.New("invalid credentials"))
}

// Search records the request and delegates to SearchFunc.
func (m *MockConn) Search(req *ldap.SearchRequest) (*ldap.SearchResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SearchCalls = append(m.SearchCalls, req)
	if m.SearchFunc != nil {
		return m.SearchFunc(req)
	}
	return &ldap.SearchResult{}, nil
}

// Modify records the request and delegates to ModifyFunc.
func (m *MockConn) Modify(req *ldap.ModifyRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ModifyCalls = append(m.ModifyCalls, req)
	if m.ModifyFunc != nil {
		return m.ModifyFunc(req)
	}
	return nil
}

// SetTimeout records the request timeout applied to the connection.
func (m *MockConn) SetTimeout(timeout time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Timeout = timeout
}

// Close marks the connection released. Closing twice is recorded, not an
// error, matching the underlying transport.
func (m *MockConn) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Closed = true
	m.CloseCount++
	return nil
}

// IsClosed reports whether Close has been called.
func (m *MockConn) IsClosed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Closed
}

// NewEntry builds a search entry from an attribute map.
func NewEntry(dn string, attributes map[string][]string) *ldap.Entry {
	entry := &ldap.Entry{DN: dn}
	for name, values := range attributes {
		entry.Attributes = append(entry.Attributes, &ldap.EntryAttribute{
			Name:   name,
			Values: values,
		})
	}
	return entry
}
