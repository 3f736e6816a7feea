package transport

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/poiesic/seekr/core"
)

// Decode parses a response body. token is the callback name expected on a
// wrapped payload; bare JSON is accepted whatever the token.
func Decode(body []byte, token string) (*core.Response, error) {
	payload, err := unwrap(body, token)
	if err != nil {
		return nil, err
	}

	var resp core.Response
	if err := json.Unmarshal(payload, &resp); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedPayload, err)
	}
	return &resp, nil
}

// unwrap strips a "<name>(...)" callback wrapper, with an optional trailing
// semicolon, and checks name against token.
func unwrap(body []byte, token string) ([]byte, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return nil, fmt.Errorf("%w: empty body", ErrMalformedPayload)
	}
	if body[0] == '{' {
		return body, nil
	}

	open := bytes.IndexByte(body, '(')
	if open <= 0 {
		return nil, fmt.Errorf("%w: not json", ErrMalformedPayload)
	}
	end := bytes.TrimSuffix(body, []byte(";"))
	end = bytes.TrimSpace(end)
	if end[len(end)-1] != ')' {
		return nil, fmt.Errorf("%w: unterminated callback", ErrMalformedPayload)
	}

	name := string(bytes.TrimSpace(body[:open]))
	if name != token {
		return nil, fmt.Errorf("%w: got %q, want %q", ErrTokenMismatch, name, token)
	}
	return end[open+1 : len(end)-1], nil
}
