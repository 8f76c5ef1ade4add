package config

import (
	"fmt"
	"strings"
)

// ValidateNonEmpty checks that s is not empty after trimming whitespace.
func ValidateNonEmpty(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("value is required")
	}
	return nil
}

// ValidateCount checks that s is a positive integer.
func ValidateCount(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return fmt.Errorf("value is required")
	}
	n := 0
	for _, c := range s {
		if c < '0' || c > '9' {
			return fmt.Errorf("must be a number")
		}
		n = n*10 + int(c-'0')
	}
	if n < 1 {
		return fmt.Errorf("must be at least 1")
	}
	return nil
}

// ValidateOptionalCount checks a positive integer only if non-empty.
// An empty value means "keep the default".
func ValidateOptionalCount(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return ValidateCount(s)
}
