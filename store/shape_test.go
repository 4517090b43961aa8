package store

import (
	"testing"
)

func TestCoerceResponseObjectStyle(t *testing.T) {
	raw := map[string]interface{}{
		"data":  []interface{}{map[string]interface{}{"id": float64(1)}},
		"error": nil,
	}

	data, errText, shape := coerceResponse(raw)
	if shape != shapeObject {
		t.Fatalf("expected object shape, got %s", shape)
	}
	if errText != "" {
		t.Fatalf("expected no error, got %q", errText)
	}
	rows, ok := data.([]interface{})
	if !ok || len(rows) != 1 {
		t.Fatalf("unexpected data: %#v", data)
	}
}

func TestCoerceResponseObjectStyleError(t *testing.T) {
	raw := map[string]interface{}{
		"data":  nil,
		"error": map[string]interface{}{"message": "duplicate key"},
	}

	_, errText, shape := coerceResponse(raw)
	if shape != shapeObject {
		t.Fatalf("expected object shape, got %s", shape)
	}
	if errText != "duplicate key" {
		t.Fatalf("expected error text %q, got %q", "duplicate key", errText)
	}
}

func TestCoerceResponseNestedMapping(t *testing.T) {
	raw := map[string]interface{}{
		"data": map[string]interface{}{
			"data": []interface{}{map[string]interface{}{"id": float64(7)}},
		},
	}

	data, errText, shape := coerceResponse(raw)
	if shape != shapeMapping {
		t.Fatalf("expected mapping shape, got %s", shape)
	}
	if errText != "" {
		t.Fatalf("expected no error, got %q", errText)
	}
	rows, ok := data.([]interface{})
	if !ok || len(rows) != 1 {
		t.Fatalf("unexpected data: %#v", data)
	}
}

func TestCoerceResponsePair(t *testing.T) {
	raw := []interface{}{
		[]interface{}{map[string]interface{}{"id": float64(3)}},
		nil,
	}

	data, errText, shape := coerceResponse(raw)
	if shape != shapePair {
		t.Fatalf("expected pair shape, got %s", shape)
	}
	if errText != "" {
		t.Fatalf("expected no error, got %q", errText)
	}
	if data == nil {
		t.Fatal("expected data from pair")
	}
}

func TestCoerceResponsePairError(t *testing.T) {
	raw := []interface{}{nil, "connection refused"}

	_, errText, shape := coerceResponse(raw)
	if shape != shapePair {
		t.Fatalf("expected pair shape, got %s", shape)
	}
	if errText != "connection refused" {
		t.Fatalf("expected pair error text, got %q", errText)
	}
}

// Unrecognized payloads degrade to a permissive success with the payload
// as data, never to a failure.
func TestCoerceResponseUnrecognizedFallback(t *testing.T) {
	cases := []struct {
		name string
		raw  interface{}
	}{
		{"bare row array", []interface{}{
			map[string]interface{}{"id": float64(1)},
			map[string]interface{}{"id": float64(2)},
		}},
		{"scalar", "ok"},
		{"mapping without data or error keys", map[string]interface{}{"rows": 2}},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			data, errText, shape := coerceResponse(tc.raw)
			if shape != shapeUnrecognized {
				t.Fatalf("expected unrecognized shape, got %s", shape)
			}
			if errText != "" {
				t.Fatalf("expected no error, got %q", errText)
			}
			if data == nil {
				t.Fatal("expected payload preserved as data")
			}
		})
	}
}

func TestDecodeResultRows(t *testing.T) {
	body := []byte(`{"data":[{"id":1,"name":"Intro","file_path":"http://x/intro.mp3","duration":12.5,"play_count":0,"last_played":null}],"error":null}`)

	res, err := decodeResult(body)
	if err != nil {
		t.Fatalf("decodeResult error: %v", err)
	}
	if !res.OK() {
		t.Fatalf("expected OK result, got error %q", res.Err)
	}
	if len(res.Data) != 1 || res.Data[0].Name != "Intro" || res.Data[0].Duration != 12.5 {
		t.Fatalf("unexpected rows: %#v", res.Data)
	}
	if res.Data[0].LastPlayed != nil {
		t.Fatalf("expected nil last_played, got %v", *res.Data[0].LastPlayed)
	}
}

func TestDecodeResultBareArray(t *testing.T) {
	body := []byte(`[{"id":1,"name":"A","file_path":"u","duration":1,"play_count":0,"last_played":null},{"id":2,"name":"B","file_path":"v","duration":2,"play_count":3,"last_played":"2024-01-01T00:00:00"}]`)

	res, err := decodeResult(body)
	if err != nil {
		t.Fatalf("decodeResult error: %v", err)
	}
	if !res.OK() {
		t.Fatalf("expected OK result, got error %q", res.Err)
	}
	if len(res.Data) != 2 || res.Data[1].PlayCount != 3 {
		t.Fatalf("unexpected rows: %#v", res.Data)
	}
	if res.Data[1].LastPlayed == nil || *res.Data[1].LastPlayed != "2024-01-01T00:00:00" {
		t.Fatalf("expected verbatim last_played, got %#v", res.Data[1].LastPlayed)
	}
}

func TestDecodeResultEmptyBody(t *testing.T) {
	res, err := decodeResult(nil)
	if err != nil {
		t.Fatalf("decodeResult error: %v", err)
	}
	if !res.OK() || len(res.Data) != 0 {
		t.Fatalf("expected empty OK result, got %#v", res)
	}
}

func TestDecodeResultMalformedJSON(t *testing.T) {
	if _, err := decodeResult([]byte(`{"data":`)); err == nil {
		t.Fatal("expected error for malformed JSON")
	}
}
