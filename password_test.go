package ldapauth

import (
	"testing"
)

func TestEncodePassword(t *testing.T) {
	encoded, err := encodePassword("newPassword")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The encoding is the quoted password in UTF-16LE.
	decoded, err := utf16le.NewDecoder().String(encoded)
	if err != nil {
		t.Fatalf("round trip failed: %v", err)
	}
	if want := `"newPassword"`; decoded != want {
		t.Errorf("expected %q, got %q", want, decoded)
	}
}

func TestEncodePasswordNonASCII(t *testing.T) {
	encoded, err := encodePassword("pässwörd§")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	decoded, err := utf16le.NewDecoder().String(encoded)
	if err != nil {
		t.Fatalf("round trip failed: %v", err)
	}
	if want := `"pässwörd§"`; decoded != want {
		t.Errorf("expected %q, got %q", want, decoded)
	}
}
