package results

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"typingracer/internal/model"
)

// Input is a result submission as sent by the client. Pointer fields
// distinguish "missing" from a zero value.
type Input struct {
	UserID          *string     `json:"user_id"`
	WPM             *float64    `json:"wpm"`
	Accuracy        *float64    `json:"accuracy"`
	TimeTaken       *float64    `json:"time_taken"`
	CharactersTyped *int        `json:"characters_typed"`
	Mistakes        *int        `json:"mistakes"`
	TextLength      *int        `json:"text_length"`
	Timestamp       *ClientTime `json:"timestamp"`
}

// Decode reads and validates a submission.
func Decode(r io.Reader) (Input, error) {
	var in Input
	if err := json.NewDecoder(r).Decode(&in); err != nil {
		return Input{}, &model.ValidationError{Msg: "invalid JSON body: " + err.Error()}
	}
	if err := in.Validate(); err != nil {
		return Input{}, err
	}
	return in, nil
}

// Validate checks that every required field is present and in range.
func (in Input) Validate() error {
	var missing []string
	if in.WPM == nil {
		missing = append(missing, "wpm")
	}
	if in.Accuracy == nil {
		missing = append(missing, "accuracy")
	}
	if in.TimeTaken == nil {
		missing = append(missing, "time_taken")
	}
	if in.CharactersTyped == nil {
		missing = append(missing, "characters_typed")
	}
	if in.Mistakes == nil {
		missing = append(missing, "mistakes")
	}
	if in.TextLength == nil {
		missing = append(missing, "text_length")
	}
	if in.Timestamp == nil {
		missing = append(missing, "timestamp")
	}
	if len(missing) > 0 {
		return &model.ValidationError{Fields: missing, Msg: "missing required fields"}
	}

	var invalid []string
	if *in.WPM < 0 {
		invalid = append(invalid, "wpm")
	}
	if *in.Accuracy < 0 {
		invalid = append(invalid, "accuracy")
	}
	if *in.TimeTaken <= 0 {
		invalid = append(invalid, "time_taken")
	}
	if *in.CharactersTyped < 0 {
		invalid = append(invalid, "characters_typed")
	}
	if *in.Mistakes < 0 {
		invalid = append(invalid, "mistakes")
	}
	if *in.TextLength < 0 {
		invalid = append(invalid, "text_length")
	}
	if len(invalid) > 0 {
		return &model.ValidationError{Fields: invalid, Msg: "values out of range"}
	}
	return nil
}

// record builds the stored form. The client timestamp is dropped in favour of
// the receipt time.
func (in Input) record(id string, receivedAt time.Time) model.Result {
	var userID *string
	if in.UserID != nil {
		if u := strings.TrimSpace(*in.UserID); u != "" {
			userID = &u
		}
	}
	return model.Result{
		ResultID:        id,
		UserID:          userID,
		WPM:             *in.WPM,
		Accuracy:        *in.Accuracy,
		TimeTaken:       *in.TimeTaken,
		CharactersTyped: *in.CharactersTyped,
		Mistakes:        *in.Mistakes,
		TextLength:      *in.TextLength,
		Timestamp:       receivedAt,
	}
}

// ClientTime accepts the timestamp formats browsers and scripts actually
// send: RFC 3339, ISO 8601 without a zone (read as UTC) and Unix seconds.
type ClientTime struct {
	time.Time
}

var clientTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
}

func (t *ClientTime) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return errors.New("timestamp must not be null")
	}

	if len(data) > 0 && data[0] != '"' {
		secs, err := strconv.ParseFloat(string(data), 64)
		if err != nil {
			return fmt.Errorf("invalid timestamp %s", data)
		}
		whole := int64(secs)
		t.Time = time.Unix(whole, int64((secs-float64(whole))*1e9)).UTC()
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	for _, layout := range clientTimeLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed.UTC()
			return nil
		}
	}
	return fmt.Errorf("invalid timestamp %q", s)
}
