package store

import (
	"encoding/json"
	"fmt"

	"songvault/model"
)

// responseShape classifies the payload a table backend hands back. Client
// libraries have shipped several envelope formats over time, so the decoder
// inspects the payload instead of pinning one version's shape.
type responseShape int

const (
	// shapeObject is {"data": ..., "error": ...}.
	shapeObject responseShape = iota
	// shapeMapping is the same keys with the rows nested one level deeper
	// under "data".
	shapeMapping
	// shapePair is a two-element [data, error] pair.
	shapePair
	// shapeUnrecognized is anything else. Unrecognized payloads are treated
	// as successful data with no error, so a client-library format change
	// degrades to a permissive success instead of a spurious failure.
	shapeUnrecognized
)

func (s responseShape) String() string {
	switch s {
	case shapeObject:
		return "object"
	case shapeMapping:
		return "mapping"
	case shapePair:
		return "pair"
	default:
		return "unrecognized"
	}
}

// coerceResponse extracts the (data, error) pair from a decoded payload.
func coerceResponse(raw interface{}) (data interface{}, errText string, shape responseShape) {
	switch v := raw.(type) {
	case map[string]interface{}:
		_, hasData := v["data"]
		errVal, hasErr := v["error"]
		if !hasData && !hasErr {
			return raw, "", shapeUnrecognized
		}
		shape = shapeObject
		data = v["data"]
		// Some client versions nest the rows one level deeper.
		if inner, ok := data.(map[string]interface{}); ok {
			if nested, ok := inner["data"]; ok {
				data = nested
				shape = shapeMapping
			}
		}
		if hasErr && errVal != nil {
			return data, stringifyError(errVal), shape
		}
		return data, "", shape

	case []interface{}:
		if len(v) == 2 {
			if v[1] == nil {
				return v[0], "", shapePair
			}
			if s, ok := v[1].(string); ok {
				return v[0], s, shapePair
			}
		}
		return raw, "", shapeUnrecognized

	default:
		return raw, "", shapeUnrecognized
	}
}

// stringifyError renders a backend error value as text. Structured errors
// usually carry a "message" field.
func stringifyError(errVal interface{}) string {
	switch e := errVal.(type) {
	case string:
		return e
	case map[string]interface{}:
		if msg, ok := e["message"].(string); ok && msg != "" {
			return msg
		}
	}
	b, err := json.Marshal(errVal)
	if err != nil {
		return fmt.Sprintf("%v", errVal)
	}
	return string(b)
}

// decodeResult turns a raw response body into a Result. Rows that do not
// decode as songs are dropped rather than failing the whole call.
func decodeResult(body []byte) (*Result, error) {
	if len(body) == 0 {
		return &Result{}, nil
	}

	var raw interface{}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode backend response: %w", err)
	}

	data, errText, _ := coerceResponse(raw)
	res := &Result{Err: errText}
	if data == nil {
		return res, nil
	}

	rows := data
	if m, ok := rows.(map[string]interface{}); ok {
		rows = []interface{}{m} // single-row payload
	}
	encoded, err := json.Marshal(rows)
	if err != nil {
		return res, nil
	}
	var songs []model.Song
	if err := json.Unmarshal(encoded, &songs); err == nil {
		res.Data = songs
	}
	return res, nil
}
