package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Prefixes of the external resource identifiers.
const (
	DiagnosisIDPrefix = "dgs-"
	MessageIDPrefix   = "msg-"
)

// ErrInvalidID is returned when an external identifier cannot be parsed.
var ErrInvalidID = errors.New("invalid resource identifier")

// FormatDiagnosisID renders the external id of a diagnosis, e.g. "dgs-3".
func FormatDiagnosisID(id uint) string {
	return DiagnosisIDPrefix + strconv.FormatUint(uint64(id), 10)
}

// ParseDiagnosisID parses "dgs-<n>".
func ParseDiagnosisID(s string) (uint, error) {
	return parsePrefixedID(s, DiagnosisIDPrefix, false)
}

// FormatMessageID renders the external id of a message, e.g. "msg-1".
func FormatMessageID(id uint) string {
	return MessageIDPrefix + strconv.FormatUint(uint64(id), 10)
}

// ParseMessageID parses "msg-<n>".
func ParseMessageID(s string) (uint, error) {
	return parsePrefixedID(s, MessageIDPrefix, false)
}

// ParseMessageRef parses a message reference found in a request body, which
// may be either "msg-<n>" or the bare number.
func ParseMessageRef(s string) (uint, error) {
	return parsePrefixedID(s, MessageIDPrefix, true)
}

// FormatUserID renders the external id of a user.
func FormatUserID(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

// ParseUserID parses a bare positive user id.
func ParseUserID(s string) (uint, error) {
	return parseNumericID(strings.TrimSpace(s))
}

func parsePrefixedID(s, prefix string, prefixOptional bool) (uint, error) {
	s = strings.TrimSpace(s)
	rest, found := strings.CutPrefix(s, prefix)
	if !found && !prefixOptional {
		return 0, fmt.Errorf("%w: %q lacks prefix %q", ErrInvalidID, s, prefix)
	}
	return parseNumericID(rest)
}

func parseNumericID(s string) (uint, error) {
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil || n == 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidID, s)
	}
	return uint(n), nil
}
