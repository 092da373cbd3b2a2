package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"

	"securelocal/internal/domain"
)

var errNotObject = errors.New("content is not a JSON object")

// decodeResult carries the decoded document together with the reason it had
// to fall back to an empty one, so callers decide whether to surface it.
type decodeResult struct {
	doc domain.Document
	err error
}

// decode parses section content. Blank content is the empty document.
// Anything that is not a JSON object decodes to the empty document with err
// set.
func decode(raw string) decodeResult {
	if strings.TrimSpace(raw) == "" {
		return decodeResult{doc: domain.Document{}}
	}
	var doc domain.Document
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return decodeResult{doc: domain.Document{}, err: err}
	}
	if doc == nil {
		return decodeResult{doc: domain.Document{}, err: errNotObject}
	}
	return decodeResult{doc: doc}
}

// encode serializes doc compactly, without HTML escaping. NaN and ±Inf
// numbers cannot be represented and return an error, so a Set carrying one
// fails without touching the section.
func encode(doc domain.Document) (string, error) {
	if doc == nil {
		doc = domain.Document{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(doc); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}
