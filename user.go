package ldapauth

import (
	"sort"

	"github.com/go-ldap/ldap/v3"
)

// UserEntry is the directory record located by a search: a distinguished
// name plus the entry's attributes. The DN identifies the entry and is what
// the authentication flow binds as.
type UserEntry struct {
	dn         string
	attributes map[string][]string
}

// newUserEntry converts a raw search entry.
func newUserEntry(entry *ldap.Entry) *UserEntry {
	attributes := make(map[string][]string, len(entry.Attributes))
	for _, attr := range entry.Attributes {
		values := make([]string, len(attr.Values))
		copy(values, attr.Values)
		attributes[attr.Name] = values
	}
	return &UserEntry{dn: entry.DN, attributes: attributes}
}

// DN returns the entry's distinguished name.
func (e *UserEntry) DN() string {
	return e.dn
}

// GetAttributeValue returns the first value of the named attribute, or the
// empty string when the attribute is absent.
func (e *UserEntry) GetAttributeValue(name string) string {
	if values := e.attributes[name]; len(values) > 0 {
		return values[0]
	}
	return ""
}

// GetAttributeValues returns all values of the named attribute.
func (e *UserEntry) GetAttributeValues(name string) []string {
	return e.attributes[name]
}

// AttributeNames returns the names of the entry's attributes, sorted.
func (e *UserEntry) AttributeNames() []string {
	names := make([]string, 0, len(e.attributes))
	for name := range e.attributes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
