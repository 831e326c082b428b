package ldapauth

// maskSensitiveData shortens identifiers (usernames, DNs) for log output so
// diagnostics never carry a full identity.
func maskSensitiveData(data string) string {
	if len(data) <= 4 {
		return "***"
	}
	return data[:2] + "***" + data[len(data)-2:]
}
