package model

import (
	"errors"
	"testing"
)

func TestResult_Owner(t *testing.T) {
	anon := Result{}
	if anon.Owner() != "" {
		t.Errorf("Owner() = %q, want empty for anonymous result", anon.Owner())
	}

	id := "alice"
	named := Result{UserID: &id}
	if named.Owner() != "alice" {
		t.Errorf("Owner() = %q, want %q", named.Owner(), "alice")
	}
}

func TestDifficulties_Order(t *testing.T) {
	got := Difficulties()
	want := []Difficulty{Easy, Medium, Hard}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Difficulties()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestStorageError_Unwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := error(&StorageError{Op: "save", Err: cause})

	if !errors.Is(err, cause) {
		t.Error("StorageError should unwrap to its cause")
	}
	var se *StorageError
	if !errors.As(err, &se) || se.Op != "save" {
		t.Errorf("errors.As failed or wrong op: %+v", se)
	}
	if err.Error() != "save: connection refused" {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestValidationError_Message(t *testing.T) {
	err := &ValidationError{Fields: []string{"wpm", "timestamp"}, Msg: "missing required fields"}
	if err.Error() != "missing required fields: wpm, timestamp" {
		t.Errorf("Error() = %q", err.Error())
	}

	bare := &ValidationError{Msg: "invalid JSON body"}
	if bare.Error() != "invalid JSON body" {
		t.Errorf("Error() = %q", bare.Error())
	}
}
