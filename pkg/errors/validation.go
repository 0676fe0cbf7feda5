package errors

import (
	"net/url"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ValidateEntityID validates an entity key received from an untrusted surface
// such as an HTTP path parameter.
//
// Keys are opaque strings in the dataset, so only empty keys, control
// characters and absurd lengths are rejected.
func ValidateEntityID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "entity ID cannot be empty")
	}
	if len(id) > 512 {
		return New(ErrCodeInvalidInput, "entity ID too long (max 512 characters)")
	}
	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "entity ID contains invalid control characters")
		}
	}
	return nil
}

// ValidateDelimiter validates a field delimiter for the CSV decoder.
// It must be a single rune that is not a quote, a line break or the
// Unicode replacement character.
func ValidateDelimiter(d string) error {
	if utf8.RuneCountInString(d) != 1 {
		return New(ErrCodeInvalidConfig, "delimiter must be a single character, got %q", d)
	}
	r, _ := utf8.DecodeRuneInString(d)
	switch r {
	case '"', '\r', '\n', utf8.RuneError:
		return New(ErrCodeInvalidConfig, "delimiter %q is not allowed", d)
	}
	return nil
}

// ValidateColumnName validates a header column name from configuration.
func ValidateColumnName(field, name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeInvalidConfig, "column %s cannot be empty", field)
	}
	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https) and a host.
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidSource, "URL cannot be empty")
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return Wrap(ErrCodeInvalidSource, err, "invalid URL")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return New(ErrCodeInvalidSource, "URL must use http or https scheme")
	}
	if u.Host == "" {
		return New(ErrCodeInvalidSource, "URL must include a host")
	}
	return nil
}

// IsURL reports whether source looks like an http(s) URL rather than a path.
func IsURL(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// ValidateSource validates a dataset source: either an http(s) URL or a
// non-empty local path without null bytes.
func ValidateSource(source string) error {
	if source == "" {
		return New(ErrCodeInvalidSource, "source cannot be empty")
	}
	if IsURL(source) {
		return ValidateURL(source)
	}
	if strings.ContainsRune(source, '\x00') {
		return New(ErrCodeInvalidSource, "source path contains a null byte")
	}
	return nil
}
