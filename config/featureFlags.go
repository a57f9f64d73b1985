package config

import (
	"os"
	"strings"
)

// StrictDocImmutability enables guardrails on priced documents:
// accepted bid sheets and approved print estimates cannot be edited;
// they must be duplicated and re-issued.
//
// Set via env:
// - STRICT_DOC_IMMUTABLE=true
func StrictDocImmutability() bool {
	v := strings.ToLower(strings.TrimSpace(os.Getenv("STRICT_DOC_IMMUTABLE")))
	return v == "1" || v == "true" || v == "yes" || v == "y"
}
