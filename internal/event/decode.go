package event

import (
	"encoding/json"
	"fmt"
)

// DecodePayload converts an event payload into T. Payloads published in-process
// already have the right type; payloads read back from JSON arrive as maps and are re-encoded.
func DecodePayload[T any](payload interface{}) (T, error) {
	if typed, ok := payload.(T); ok {
		return typed, nil
	}

	var out T
	raw, err := json.Marshal(payload)
	if err != nil {
		return out, fmt.Errorf("%s: %w", ErrMsgPayloadDecodeFailed, err)
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("%s: %w", ErrMsgPayloadDecodeFailed, err)
	}
	return out, nil
}
