package session

import (
	"bytes"
	"encoding/json"
)

// decodeObject exige um objeto JSON no payload.
func decodeObject(payload json.RawMessage, v any) error {
	trimmed := bytes.TrimSpace(payload)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return invalid("expected an object")
	}
	if err := json.Unmarshal(trimmed, v); err != nil {
		return invalid("%v", err)
	}
	return nil
}

// decodeRoom aceita o código da sala como string pura ou como {"room": "..."}.
func decodeRoom(payload json.RawMessage) (string, error) {
	trimmed := bytes.TrimSpace(payload)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var room string
		if err := json.Unmarshal(trimmed, &room); err != nil {
			return "", invalid("%v", err)
		}
		return room, nil
	}

	var req struct {
		Room string `json:"room"`
	}
	if err := decodeObject(trimmed, &req); err != nil {
		return "", err
	}
	return req.Room, nil
}

// splitStroke separa o código da sala do resto do traço, que segue intacto.
func splitStroke(payload json.RawMessage) (string, json.RawMessage, error) {
	var fields map[string]json.RawMessage
	if err := decodeObject(payload, &fields); err != nil {
		return "", nil, err
	}

	var room string
	if raw, ok := fields["room"]; ok {
		if err := json.Unmarshal(raw, &room); err != nil {
			return "", nil, invalid("'room' must be a string")
		}
		delete(fields, "room")
	}

	stroke, err := json.Marshal(fields)
	if err != nil {
		return "", nil, invalid("%v", err)
	}
	return room, stroke, nil
}
