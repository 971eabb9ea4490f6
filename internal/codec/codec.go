// Package codec turns an entry list into a share token and back, and
// derives the short card identity used as the marks persistence key.
package codec

import (
	"encoding/base64"
	"encoding/json"
	"strings"

	"github.com/Makepad-fr/bingo/internal/model"
)

// QueryParam is the share link parameter that carries the token.
const QueryParam = "entries"

// Encode serializes entries as a JSON array of strings in unpadded
// URL-safe base64, so the token needs no escaping inside a query string.
func Encode(entries model.Entries) string {
	if entries == nil {
		entries = model.Entries{}
	}
	// a []string always marshals
	b, _ := json.Marshal([]string(entries))
	return base64.RawURLEncoding.EncodeToString(b)
}

// Decode reverses Encode. It also accepts the standard alphabet with or
// without padding, and spaces standing in for '+' after query unescaping.
// Entries come back verbatim; callers normalize if they need to.
func Decode(token string) (model.Entries, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, &MalformedTokenError{Reason: "empty token"}
	}
	payload, err := decodeB64(token)
	if err != nil {
		return nil, &MalformedTokenError{Reason: "not base64", Err: err}
	}

	// Pointers let us tell a JSON null apart from an empty string.
	var raw []*string
	if err := json.Unmarshal(payload, &raw); err != nil {
		return nil, &MalformedTokenError{Reason: "payload is not a list of strings", Err: err}
	}
	if raw == nil {
		return nil, &MalformedTokenError{Reason: "payload is null"}
	}
	out := make(model.Entries, 0, len(raw))
	for _, s := range raw {
		if s == nil {
			return nil, &MalformedTokenError{Reason: "payload contains null"}
		}
		out = append(out, *s)
	}
	return out, nil
}

func decodeB64(s string) ([]byte, error) {
	s = strings.ReplaceAll(s, " ", "+")
	s = strings.TrimRight(s, "=")
	dec, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		dec2, err2 := base64.RawStdEncoding.DecodeString(s)
		if err2 != nil {
			return nil, err
		}
		return dec2, nil
	}
	return dec, nil
}
