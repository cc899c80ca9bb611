package results

import (
	"errors"
	"slices"
	"strings"
	"testing"
	"time"

	"typingracer/internal/model"
)

func TestDecode_Minimal(t *testing.T) {
	in, err := Decode(strings.NewReader(`{
		"wpm": 30.0, "accuracy": 85.0, "time_taken": 180.0,
		"characters_typed": 100, "mistakes": 15, "text_length": 120,
		"timestamp": "2024-05-01T10:00:00.123456"
	}`))
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	if in.UserID != nil {
		t.Errorf("UserID = %q, want nil", *in.UserID)
	}
	if *in.WPM != 30 || *in.TextLength != 120 {
		t.Errorf("decoded %+v", in)
	}
}

func TestDecode_IgnoresClientResultID(t *testing.T) {
	in, err := Decode(strings.NewReader(`{
		"result_id": "client-chosen",
		"wpm": 1, "accuracy": 1, "time_taken": 1,
		"characters_typed": 1, "mistakes": 0, "text_length": 1,
		"timestamp": "2024-05-01T10:00:00Z"
	}`))
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	rec := in.record("server-id", time.Now())
	if rec.ResultID != "server-id" {
		t.Errorf("ResultID = %q, want server-assigned id", rec.ResultID)
	}
}

func TestDecode_MissingFields(t *testing.T) {
	_, err := Decode(strings.NewReader(`{"wpm": 10, "accuracy": 90}`))
	var ve *model.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("Decode() error = %v, want *model.ValidationError", err)
	}
	for _, f := range []string{"time_taken", "characters_typed", "mistakes", "text_length", "timestamp"} {
		if !slices.Contains(ve.Fields, f) {
			t.Errorf("missing field %q not reported: %v", f, ve.Fields)
		}
	}
	if slices.Contains(ve.Fields, "wpm") {
		t.Error("wpm was supplied and should not be reported")
	}
}

func TestDecode_WrongType(t *testing.T) {
	_, err := Decode(strings.NewReader(`{
		"wpm": "fast", "accuracy": 1, "time_taken": 1,
		"characters_typed": 1, "mistakes": 0, "text_length": 1,
		"timestamp": "2024-05-01T10:00:00Z"
	}`))
	var ve *model.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("Decode() error = %v, want *model.ValidationError", err)
	}
}

func TestDecode_MalformedJSON(t *testing.T) {
	_, err := Decode(strings.NewReader(`{"wpm":`))
	var ve *model.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("Decode() error = %v, want *model.ValidationError", err)
	}
}

func TestDecode_OutOfRange(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"negative wpm", `"wpm": -1, "accuracy": 1, "time_taken": 1, "characters_typed": 1, "mistakes": 0, "text_length": 1`, "wpm"},
		{"zero time", `"wpm": 1, "accuracy": 1, "time_taken": 0, "characters_typed": 1, "mistakes": 0, "text_length": 1`, "time_taken"},
		{"negative mistakes", `"wpm": 1, "accuracy": 1, "time_taken": 1, "characters_typed": 1, "mistakes": -2, "text_length": 1`, "mistakes"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := `{` + tt.body + `, "timestamp": "2024-05-01T10:00:00Z"}`
			_, err := Decode(strings.NewReader(body))
			var ve *model.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("Decode() error = %v, want *model.ValidationError", err)
			}
			if !slices.Contains(ve.Fields, tt.field) {
				t.Errorf("Fields = %v, want to contain %q", ve.Fields, tt.field)
			}
		})
	}
}

func TestClientTime_Formats(t *testing.T) {
	want := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	tests := []struct {
		in   string
		want time.Time
	}{
		{`"2024-05-01T10:00:00Z"`, want},
		{`"2024-05-01T12:00:00+02:00"`, want},
		{`"2024-05-01T10:00:00"`, want},
		{`"2024-05-01T10:00:00.5"`, want.Add(500 * time.Millisecond)},
		{`"2024-05-01 10:00:00"`, want},
		{`1714557600`, want},
	}
	for _, tt := range tests {
		var ct ClientTime
		if err := ct.UnmarshalJSON([]byte(tt.in)); err != nil {
			t.Errorf("UnmarshalJSON(%s) error: %v", tt.in, err)
			continue
		}
		if !ct.Equal(tt.want) {
			t.Errorf("UnmarshalJSON(%s) = %v, want %v", tt.in, ct.Time, tt.want)
		}
	}
}

func TestClientTime_Invalid(t *testing.T) {
	for _, in := range []string{`"yesterday"`, `"2024-13-01T00:00:00Z"`, `true`, `null`} {
		var ct ClientTime
		if err := ct.UnmarshalJSON([]byte(in)); err == nil {
			t.Errorf("UnmarshalJSON(%s) should fail", in)
		}
	}
}
