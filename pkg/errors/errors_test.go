package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "WithoutCause",
			err:  New(ErrCodeInvalidCategory, "unknown category: %s", "geothermal"),
			want: "INVALID_CATEGORY: unknown category: geothermal",
		},
		{
			name: "WithCause",
			err:  Wrap(ErrCodeStore, fmt.Errorf("connection refused"), "list components"),
			want: "STORE_ERROR: list components: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIs(t *testing.T) {
	err := New(ErrCodeComponentNotFound, "no component %q", "s1")
	wrapped := fmt.Errorf("handler: %w", err)

	if !Is(wrapped, ErrCodeComponentNotFound) {
		t.Error("Is() should match code through wrapping")
	}
	if Is(wrapped, ErrCodeStore) {
		t.Error("Is() should not match a different code")
	}
	if Is(stderrors.New("plain"), ErrCodeStore) {
		t.Error("Is() should not match plain errors")
	}
}

func TestUnwrap(t *testing.T) {
	cause := stderrors.New("disk full")
	err := Wrap(ErrCodeStore, cause, "put component")

	if !stderrors.Is(err, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}
	if GetCode(err) != ErrCodeStore {
		t.Errorf("GetCode() = %q, want %q", GetCode(err), ErrCodeStore)
	}
}

func TestUserMessage(t *testing.T) {
	err := New(ErrCodeInvalidComponent, "component name cannot be empty")
	if got := UserMessage(err); strings.Contains(got, "INVALID_COMPONENT") {
		t.Errorf("UserMessage() should not include the code prefix, got %q", got)
	}

	plain := stderrors.New("plain failure")
	if got := UserMessage(plain); got != "plain failure" {
		t.Errorf("UserMessage(plain) = %q", got)
	}
}

func TestValidateComponentID(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantErr bool
	}{
		{"Valid", "solar-roof-1", false},
		{"ValidUUID", "5f9c2d1e-4b7a-4f39-9c8a-2f1d3e4a5b6c", false},
		{"Empty", "", true},
		{"Whitespace", "solar 1", true},
		{"Slash", "solar/1", true},
		{"Control", "solar\x001", true},
		{"TooLong", strings.Repeat("a", 129), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateComponentID(tt.id)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateComponentID(%q) error = %v, wantErr %v", tt.id, err, tt.wantErr)
			}
		})
	}
}

func TestValidateComponentName(t *testing.T) {
	if err := ValidateComponentName("Roof PV (south)"); err != nil {
		t.Errorf("valid name rejected: %v", err)
	}
	if err := ValidateComponentName(""); err == nil {
		t.Error("empty name accepted")
	}
	if err := ValidateComponentName("bad\x07name"); err == nil {
		t.Error("control character accepted")
	}
}
