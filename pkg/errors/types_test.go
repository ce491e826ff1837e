package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodePaletteUnknown, "palette neon not found")

	if err == nil {
		t.Fatal("New should return non-nil error")
	}

	if err.Code != ErrCodePaletteUnknown {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodePaletteUnknown)
	}

	if err.Message != "palette neon not found" {
		t.Errorf("Message = %v, want 'palette neon not found'", err.Message)
	}

	if err.Underlying != nil {
		t.Error("Underlying should be nil for New error")
	}

	if len(err.Stack) == 0 {
		t.Error("Stack should be captured")
	}
}

func TestNewf(t *testing.T) {
	err := Newf(ErrCodeInvalidInput, "bad key %q", "f13")
	if err.Message != `bad key "f13"` {
		t.Errorf("Message = %q", err.Message)
	}
	if len(err.Stack) == 0 {
		t.Error("Stack should be captured")
	}
}

func TestWrap(t *testing.T) {
	underlying := errors.New("original error")
	err := Wrap(underlying, ErrCodeTerminalInit, "failed to init terminal")

	if err == nil {
		t.Fatal("Wrap should return non-nil error")
	}

	if err.Underlying != underlying {
		t.Error("Underlying should be preserved")
	}

	if err.Code != ErrCodeTerminalInit {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeTerminalInit)
	}

	if !strings.Contains(err.Error(), "original error") {
		t.Error("Error string should include underlying error")
	}
}

func TestWrap_Nil(t *testing.T) {
	err := Wrap(nil, ErrCodeInternal, "test")

	if err != nil {
		t.Error("Wrap of nil should return nil")
	}
}

func TestWithContext(t *testing.T) {
	err := New(ErrCodePaletteParse, "bad color")
	err.WithContext("key", "button.fg")
	err.WithContext("line", 12)

	if err.Context["key"] != "button.fg" {
		t.Error("Context should contain 'key' key")
	}

	if err.Context["line"] != 12 {
		t.Error("Context should contain 'line' key")
	}

	errStr := err.Error()
	if !strings.Contains(errStr, "key: button.fg") {
		t.Error("Error string should include context")
	}
}

func TestError_ContextSorted(t *testing.T) {
	err := New(ErrCodeConfigInvalid, "bad").
		WithContext("zeta", 1).
		WithContext("alpha", 2)

	want := "[CONFIG_INVALID] bad {alpha: 2, zeta: 1}"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestError_WithUnderlying(t *testing.T) {
	underlying := errors.New("file not found")
	err := Wrap(underlying, ErrCodeConfigLoad, "failed to read")

	errStr := err.Error()

	if !strings.Contains(errStr, "file not found") {
		t.Error("Error string should include underlying error")
	}

	if !strings.Contains(errStr, "CONFIG_LOAD") {
		t.Error("Error string should include error code")
	}
}

func TestUnwrap(t *testing.T) {
	underlying := errors.New("underlying")
	err := Wrap(underlying, ErrCodeInternal, "wrapped")

	if err.Unwrap() != underlying {
		t.Error("Unwrap should return underlying error")
	}
	if !errors.Is(err, underlying) {
		t.Error("errors.Is should reach the underlying error")
	}
}

func TestIs_MatchesByCode(t *testing.T) {
	sentinel := New(ErrCodeTerminalIncompatible, "terminal incompatible")
	other := New(ErrCodeTerminalIncompatible, "another instance")
	wrapped := fmt.Errorf("run: %w", other)

	if !errors.Is(wrapped, sentinel) {
		t.Error("errors.Is should match errors with the same code")
	}
	if errors.Is(New(ErrCodeInternal, "x"), sentinel) {
		t.Error("errors.Is should not match a different code")
	}
}

func TestIsCode(t *testing.T) {
	err := New(ErrCodePaletteParse, "parse error")

	if !IsCode(err, ErrCodePaletteParse) {
		t.Error("IsCode should return true for matching code")
	}

	if IsCode(err, ErrCodeConfigParse) {
		t.Error("IsCode should return false for non-matching code")
	}

	if IsCode(nil, ErrCodePaletteParse) {
		t.Error("IsCode should return false for nil error")
	}

	stdErr := errors.New("standard error")
	if IsCode(stdErr, ErrCodeInternal) {
		t.Error("IsCode should return false for plain errors")
	}

	if !IsCode(fmt.Errorf("ctx: %w", err), ErrCodePaletteParse) {
		t.Error("IsCode should see through wrapping")
	}
}

func TestGetCode(t *testing.T) {
	err := New(ErrCodeConfigParse, "yaml")

	if code := GetCode(err); code != ErrCodeConfigParse {
		t.Errorf("GetCode = %v, want %v", code, ErrCodeConfigParse)
	}

	if GetCode(nil) != "" {
		t.Error("GetCode should return empty string for nil")
	}

	stdErr := errors.New("standard")
	if GetCode(stdErr) != ErrCodeInternal {
		t.Error("GetCode should return ErrCodeInternal for plain errors")
	}
}

func TestStackTrace(t *testing.T) {
	err := New(ErrCodeInternal, "test error")

	trace := err.StackTrace()

	if !strings.Contains(trace, "Stack trace:") {
		t.Error("StackTrace should contain header")
	}

	if len(err.Stack) == 0 {
		t.Error("Stack should have frames")
	}
}

func TestCaptureStack(t *testing.T) {
	frames := captureStack(0)

	if len(frames) == 0 {
		t.Error("captureStack should return at least one frame")
	}

	found := false
	for _, frame := range frames {
		if strings.Contains(frame.Function, "Test") || strings.Contains(frame.Function, "errors") {
			found = true
			break
		}
	}

	if !found {
		t.Error("Stack should contain test or errors package frames")
	}
}

func TestChaining(t *testing.T) {
	err := New(ErrCodeTerminalIncompatible, "detection failed").
		WithContext("term", "dumb").
		WithUserMessage("This terminal is not supported.").
		WithRemediation("set TUIKIT_FORCE_INCOMPATIBLE=1")

	if err.Code != ErrCodeTerminalIncompatible {
		t.Error("Chaining should preserve code")
	}
	if len(err.Context) != 1 {
		t.Error("Chaining should add all context")
	}
	if err.UserMessage == "" || len(err.Remediation) != 1 {
		t.Error("Chaining should set user message and remediation")
	}
}
