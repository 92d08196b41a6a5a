package journal

import (
	"encoding/json"
	"fmt"

	"github.com/modernice/notify/notification"
)

// EncodePayload returns the JSON encoding of p, or nil if p is empty. Every
// Store persists payloads in this encoding.
func EncodePayload(p notification.Payload) ([]byte, error) {
	if len(p) == 0 {
		return nil, nil
	}
	b, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}
	return b, nil
}

// DecodePayload decodes a payload that was encoded by EncodePayload. Values
// come back as JSON types: numbers are float64, nested objects are
// map[string]any and arrays are []any.
func DecodePayload(b []byte) (notification.Payload, error) {
	if len(b) == 0 {
		return nil, nil
	}
	var p notification.Payload
	if err := json.Unmarshal(b, &p); err != nil {
		return nil, fmt.Errorf("unmarshal payload: %w", err)
	}
	return p, nil
}
