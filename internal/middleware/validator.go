package middleware

import (
	"fmt"
	"regexp"
	"strings"
)

// Input validation and sanitization utilities

var (
	tenantPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{1,64}$`)
	// claim and document ids come from the upstream claims platform; safe
	// identifier shape, not necessarily UUIDs
	idPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{1,64}$`)
)

// ValidateTenantID validates tenant ID format
func ValidateTenantID(tenant string) error {
	if tenant == "" {
		return fmt.Errorf("tenant ID cannot be empty")
	}
	if !tenantPattern.MatchString(tenant) {
		return fmt.Errorf("invalid tenant ID format (alphanumeric, dash, underscore only, max 64 chars)")
	}
	return nil
}

// ValidateClaimID validates claim ID format
func ValidateClaimID(claimID string) error {
	if claimID == "" {
		return fmt.Errorf("claim ID cannot be empty")
	}
	if !idPattern.MatchString(claimID) {
		return fmt.Errorf("invalid claim ID format")
	}
	return nil
}

// ValidateDocumentID validates document ID format
func ValidateDocumentID(documentID string) error {
	if documentID == "" {
		return fmt.Errorf("document ID cannot be empty")
	}
	if !idPattern.MatchString(documentID) {
		return fmt.Errorf("invalid document ID format")
	}
	return nil
}

// SanitizeString removes dangerous characters from strings
func SanitizeString(input string) string {
	// Remove null bytes
	input = strings.ReplaceAll(input, "\x00", "")

	// Remove control characters
	var result strings.Builder
	for _, r := range input {
		if r >= 32 || r == '\t' || r == '\n' {
			result.WriteRune(r)
		}
	}

	return strings.TrimSpace(result.String())
}
