package request

import (
	"encoding/json"
	"errors"
	"strings"
)

var (
	errDepositBodyNotJSON    = errors.New("request body is not valid json")
	errEmptyWrappedMPPayload = errors.New("mp_payload cannot be empty")
)

// DecodeDepositPayload accepts either a raw Mercado Pago payment request or
// one wrapped as {"mp_payload": {...}}. An empty body yields "{}".
func DecodeDepositPayload(raw []byte) (json.RawMessage, error) {
	if len(strings.TrimSpace(string(raw))) == 0 {
		return json.RawMessage("{}"), nil
	}
	if !json.Valid(raw) {
		return nil, errDepositBodyNotJSON
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(raw, &envelope); err == nil {
		if wrapped, ok := envelope["mp_payload"]; ok {
			trimmed := strings.TrimSpace(string(wrapped))
			if trimmed == "" || trimmed == "null" {
				return nil, errEmptyWrappedMPPayload
			}
			return wrapped, nil
		}
	}
	return json.RawMessage(raw), nil
}
