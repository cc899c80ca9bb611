package model

import "time"

type Difficulty string

const (
	Easy   = Difficulty("easy")
	Medium = Difficulty("medium")
	Hard   = Difficulty("hard")
)

// Difficulties returns every tier, easiest first.
func Difficulties() []Difficulty {
	return []Difficulty{Easy, Medium, Hard}
}

type PracticeText struct {
	Text       string     `json:"text"`
	Difficulty Difficulty `json:"difficulty"`
}

// Result is one stored typing session. It is built once when the session is
// saved and never modified afterwards.
type Result struct {
	ResultID        string    `json:"result_id"`
	UserID          *string   `json:"user_id"`
	WPM             float64   `json:"wpm"`
	Accuracy        float64   `json:"accuracy"`
	TimeTaken       float64   `json:"time_taken"`
	CharactersTyped int       `json:"characters_typed"`
	Mistakes        int       `json:"mistakes"`
	TextLength      int       `json:"text_length"`
	Timestamp       time.Time `json:"timestamp"`
}

// Owner returns the user the result belongs to, or "" for anonymous sessions.
func (r Result) Owner() string {
	if r.UserID == nil {
		return ""
	}
	return *r.UserID
}
