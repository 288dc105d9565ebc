package dashclient

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// DecodeClaims reads the payload segment of a JWT without checking the
// signature. The result drives display and local expiry checks only; nothing
// decoded here is ever trusted for authorization, which stays server-side.
// Returns nil on any malformed input rather than an error so callers can
// treat "no claims" and "bad token" the same way.
func DecodeClaims(token string) map[string]interface{} {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return nil
	}

	payload := strings.ReplaceAll(parts[1], "-", "+")
	payload = strings.ReplaceAll(payload, "_", "/")
	if rem := len(payload) % 4; rem != 0 {
		payload += strings.Repeat("=", 4-rem)
	}

	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var claims map[string]interface{}
	if err := dec.Decode(&claims); err != nil {
		return nil
	}
	return claims
}

// ExtractStoreID pulls the store scope out of decoded claims. Tokens have
// carried the id both as a JSON number and as a numeric string, so both are
// accepted.
func ExtractStoreID(claims map[string]interface{}) (int64, bool) {
	v, ok := claims["store_id"]
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case json.Number:
		id, err := n.Int64()
		if err != nil {
			return 0, false
		}
		return id, true
	case string:
		id, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64)
		if err != nil {
			return 0, false
		}
		return id, true
	}
	return 0, false
}

// ExpiresAt reads the exp claim.
func ExpiresAt(claims map[string]interface{}) (time.Time, bool) {
	n, ok := claims["exp"].(json.Number)
	if !ok {
		return time.Time{}, false
	}
	secs, err := n.Int64()
	if err != nil {
		return time.Time{}, false
	}
	return time.Unix(secs, 0), true
}
