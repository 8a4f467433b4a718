package core

import "strings"

// ContainsIgnoreCase reports whether substr is within s, case-insensitive.
func ContainsIgnoreCase(s, substr string) bool {
	if substr == "" {
		return true
	}
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// anyContains reports whether any of fields contains term, ignoring case.
func anyContains(term string, fields ...string) bool {
	for _, f := range fields {
		if f != "" && ContainsIgnoreCase(f, term) {
			return true
		}
	}
	return false
}

// DisplayUserName shortens an e-mail style username to its local part.
func DisplayUserName(username string) string {
	if username == "" {
		return "Usuario"
	}
	if i := strings.Index(username, "@"); i > 0 {
		return username[:i]
	}
	return username
}
