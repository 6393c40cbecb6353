package assessment

import (
	"errors"
	"testing"
)

func TestDecode(t *testing.T) {
	want := map[int]Risk{0: RiskHigh, 1: RiskLow, 2: RiskModerate}
	for class, risk := range want {
		got, err := Decode(class)
		if err != nil {
			t.Fatalf("class %d: unexpected error: %v", class, err)
		}
		if got != risk {
			t.Fatalf("class %d: expected %s, got %s", class, risk, got)
		}
	}
}

func TestDecodeUnknownClass(t *testing.T) {
	for _, class := range []int{-1, 3, 42} {
		_, err := Decode(class)
		if !errors.Is(err, ErrUnknownClass) {
			t.Fatalf("class %d: expected ErrUnknownClass, got %v", class, err)
		}
		var classErr *ClassError
		if !errors.As(err, &classErr) || classErr.Class != class {
			t.Fatalf("class %d: expected *ClassError, got %v", class, err)
		}
	}
}

func TestRiskDisplay(t *testing.T) {
	tests := []struct {
		risk     Risk
		color    string
		severity int
	}{
		{RiskHigh, "red", 3},
		{RiskModerate, "orange", 2},
		{RiskLow, "green", 1},
	}
	for _, tt := range tests {
		if tt.risk.Color() != tt.color {
			t.Errorf("%s: expected color %s, got %s", tt.risk, tt.color, tt.risk.Color())
		}
		if tt.risk.Severity() != tt.severity {
			t.Errorf("%s: expected severity %d, got %d", tt.risk, tt.severity, tt.risk.Severity())
		}
	}
}

func TestErrorKind(t *testing.T) {
	if ErrorKind(&FieldError{Field: "x"}) != "invalid_input" {
		t.Fatal("expected invalid_input")
	}
	if ErrorKind(&ClassError{Class: 9}) != "unknown_class" {
		t.Fatal("expected unknown_class")
	}
	if ErrorKind(errors.New("boom")) != "internal" {
		t.Fatal("expected internal")
	}
}
