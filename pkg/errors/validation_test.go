package errors

import (
	"strings"
	"testing"
)

func TestValidateSectionID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "stalls", false},
		{"valid with dash", "upper-circle", false},
		{"valid with space", "Upper Circle", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 200), true},
		{"leading space", " stalls", true},
		{"slash", "a/b", true},
		{"backslash", "a\\b", true},
		{"control char", "foo\x01bar", true},
		{"newline", "foo\nbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSectionID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateSectionID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidSection) {
				t.Errorf("ValidateSectionID(%q) returned wrong error code: %v", tt.input, err)
			}
		})
	}
}

func TestValidatePrefix(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"S", false},
		{"UC2", false},
		{"", true},
		{"U-C", true},
		{"TOOLONGPREFIX", true},
	}
	for _, tt := range tests {
		if err := ValidatePrefix(tt.input); (err != nil) != tt.wantErr {
			t.Errorf("ValidatePrefix(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
	}
}

func TestValidateLetter(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"A", false},
		{"i", false},
		{"AB", false},
		{"", true},
		{"ABC", true},
		{"1", true},
	}
	for _, tt := range tests {
		if err := ValidateLetter(tt.input); (err != nil) != tt.wantErr {
			t.Errorf("ValidateLetter(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
	}
}

func TestValidateSeatID(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"S-A1", false},
		{"L-C-AA12", false},
		{"F-ST-042", false},
		{"", true},
		{"S A1", true},
		{"S-A1\n", true},
		{strings.Repeat("x", 129), true},
	}
	for _, tt := range tests {
		err := ValidateSeatID(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateSeatID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
		if err != nil && !Is(err, ErrCodeInvalidOverride) {
			t.Errorf("ValidateSeatID(%q) returned wrong error code: %v", tt.input, err)
		}
	}
}

func TestValidateColor(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"", false},
		{"#fff", false},
		{"#1a2B3c", false},
		{"gold", false},
		{"#ffff", true},
		{"rgb(0,0,0)", true},
		{"Gold", true},
	}
	for _, tt := range tests {
		if err := ValidateColor(tt.input); (err != nil) != tt.wantErr {
			t.Errorf("ValidateColor(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
	}
}
