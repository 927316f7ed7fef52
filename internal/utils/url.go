package utils

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

var ErrInsecureURL = errors.New("insecure URL rejected")

func ParseSecureURL(raw string) (*url.URL, error) {
	parsed, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse URL: %w", err)
	}
	if parsed.Scheme != "https" {
		return nil, ErrInsecureURL
	}
	return parsed, nil
}

// JoinURL appends name to base, tolerating a missing or doubled slash.
func JoinURL(base, name string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(name, "/")
}
