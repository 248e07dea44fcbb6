package errors

import (
	"strings"
	"testing"
)

func TestValidateNodeID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "root", false},
		{"path", "/home/user", false},
		{"unicode", "根", false},
		{"spaces", "a b", false},

		{"empty", "", true},
		{"too long", strings.Repeat("x", MaxIDLength+1), true},
		{"newline", "a\nb", true},
		{"null byte", "a\x00b", true},
		{"tab", "a\tb", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateNodeID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateNodeID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidID) {
				t.Errorf("ValidateNodeID(%q) returned wrong error code: %v", tt.input, err)
			}
		})
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"absolute", "/home/user/Documents", false},
		{"relative", "src/main.go", false},
		{"root", "/", false},
		{"with dots", "v1.2.3/package.json", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 5000), true},
		{"null byte", "foo\x00bar", true},
		{"backslash", "foo\\bar", true},
		{"control char", "foo\x01bar", true},
		{"newline", "foo\nbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidPath) {
				t.Errorf("ValidatePath(%q) returned wrong error code: %v", tt.input, err)
			}
		})
	}
}

func TestValidateRedisURL(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"redis", "redis://localhost:6379/0", false},
		{"tls", "rediss://cache.internal:6380", false},

		{"empty", "", true},
		{"http", "http://localhost:6379", true},
		{"bare host", "localhost:6379", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRedisURL(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRedisURL(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestErrorCodesAreUnique(t *testing.T) {
	codes := []Code{
		ErrCodeInvalidInput,
		ErrCodeInvalidFormat,
		ErrCodeInvalidID,
		ErrCodeInvalidPath,
		ErrCodeInvalidTree,
		ErrCodeNotFound,
		ErrCodeFileNotFound,
		ErrCodeNodeNotFound,
		ErrCodeFormatting,
		ErrCodeCache,
		ErrCodeTimeout,
		ErrCodeInternal,
		ErrCodeUnsupported,
	}

	seen := make(map[Code]bool)
	for _, code := range codes {
		if seen[code] {
			t.Errorf("Duplicate error code: %s", code)
		}
		seen[code] = true
	}
}
