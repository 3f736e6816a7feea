package relay

import (
	"bytes"
	"regexp"
	"strconv"
	"strings"
)

var (
	statusPattern   = regexp.MustCompile(`\d\d\d`)
	locationPattern = regexp.MustCompile(`Location: (.*)`)
)

// locationPrefixLen is the length of "Location: " removed from a matched line.
const locationPrefixLen = len("Location: ")

// rawHead is the status and redirect target scanned out of raw response text.
type rawHead struct {
	Status   int
	Location string
}

// isRawHead reports whether body is itself a raw HTTP response head, as
// returned by backends that echo the head on capture paths.
func isRawHead(body []byte) bool {
	return bytes.HasPrefix(body, []byte("HTTP/1."))
}

// scanHead takes the first three-digit token of raw as the status code and
// the first Location line as the redirect target.
func scanHead(raw []byte) (rawHead, error) {
	token := statusPattern.Find(raw)
	if token == nil {
		return rawHead{}, ErrHeadNotFound
	}
	status, err := strconv.Atoi(string(token))
	if err != nil {
		return rawHead{}, err
	}

	head := rawHead{Status: status}
	if line := locationPattern.Find(raw); line != nil {
		head.Location = strings.TrimSpace(string(line[locationPrefixLen:]))
	}
	return head, nil
}
