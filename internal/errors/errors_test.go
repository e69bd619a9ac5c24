package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		wantMsg string
		wantCat Category
	}{
		{
			name:    "config error",
			code:    "E101",
			wantMsg: "Mount target not found",
			wantCat: CategoryConfig,
		},
		{
			name:    "validation error",
			code:    "E202",
			wantMsg: "Duplicate key in sibling group",
			wantCat: CategoryValidation,
		},
		{
			name:    "lookup error",
			code:    "E301",
			wantMsg: "Listener not registered",
			wantCat: CategoryLookup,
		},
		{
			name:    "unknown error code",
			code:    "E999",
			wantMsg: "Unknown error",
			wantCat: CategoryRuntime,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code)
			if err.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", err.Message, tt.wantMsg)
			}
			if err.Category != tt.wantCat {
				t.Errorf("Category = %q, want %q", err.Category, tt.wantCat)
			}
			if err.Code != tt.code {
				t.Errorf("Code = %q, want %q", err.Code, tt.code)
			}
		})
	}
}

func TestError_Error(t *testing.T) {
	err := New("E202").WithDetail(`key "a" is used twice`)
	want := `E202: Duplicate key in sibling group: key "a" is used twice`
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}

	plain := Newf(CategoryRuntime, "boom %d", 1)
	if plain.Error() != "boom 1" {
		t.Errorf("Error() = %q, want %q", plain.Error(), "boom 1")
	}
}

func TestCategoryPredicates(t *testing.T) {
	wrapped := fmt.Errorf("render: %w", New("E201"))

	if !IsValidation(wrapped) {
		t.Error("IsValidation should see through fmt wrapping")
	}
	if IsLookup(wrapped) || IsConfiguration(wrapped) {
		t.Error("wrapped validation error matched another category")
	}
	if !IsLookup(New("E301")) {
		t.Error("E301 should be a lookup error")
	}
	if !IsConfiguration(New("E103")) {
		t.Error("E103 should be a configuration error")
	}
	if CategoryOf(stderrors.New("plain")) != "" {
		t.Error("plain errors have no category")
	}
}

func TestWrapAndFromError(t *testing.T) {
	cause := stderrors.New("disk full")
	err := FromError(cause, "E104")
	if !stderrors.Is(err, cause) {
		t.Error("FromError should wrap the cause")
	}
	if err.Code != "E104" {
		t.Errorf("Code = %q, want E104", err.Code)
	}

	existing := New("E201")
	if FromError(existing, "E104") != existing {
		t.Error("FromError should return an existing *Error unchanged")
	}
	if FromError(nil, "E104") != nil {
		t.Error("FromError(nil) should be nil")
	}
}

func TestFormat(t *testing.T) {
	DisableColors()
	defer EnableColors()

	err := New("E202").
		WithPath("root > ul > li").
		WithDetail(`key "3" is used twice`).
		WithSuggestion("derive keys from a stable identifier")

	out := err.Format()
	for _, want := range []string{
		"ERROR E202: Duplicate key in sibling group",
		"at root > ul > li",
		`key "3" is used twice`,
		"Hint: derive keys from a stable identifier",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Format() missing %q in:\n%s", want, out)
		}
	}
}

func TestFormatCompact(t *testing.T) {
	err := New("E301").WithPath("root > button")
	got := err.FormatCompact()
	if !strings.HasPrefix(got, "root > button: E301: Listener not registered") {
		t.Errorf("FormatCompact() = %q", got)
	}
}

func TestGetAllCodesSorted(t *testing.T) {
	codes := GetAllCodes()
	if len(codes) == 0 {
		t.Fatal("GetAllCodes() should return codes")
	}
	for i := 1; i < len(codes); i++ {
		if codes[i-1] > codes[i] {
			t.Fatalf("codes not sorted: %v", codes)
		}
	}
}

func TestRegister(t *testing.T) {
	Register("E999", ErrorTemplate{
		Category: CategoryRuntime,
		Message:  "Custom test error",
	})
	defer delete(registry, "E999")

	err := New("E999")
	if err.Message != "Custom test error" {
		t.Errorf("Message = %q, want %q", err.Message, "Custom test error")
	}
}

func TestWrapText(t *testing.T) {
	got := wrapText("short text", 100)
	if len(got) != 1 || got[0] != "short text" {
		t.Errorf("wrapText short text: got %v", got)
	}

	got = wrapText("this is a longer text that should be wrapped", 20)
	if len(got) != 3 {
		t.Errorf("wrapText long text: expected 3 lines, got %d: %v", len(got), got)
	}

	if got := wrapText("", 10); len(got) != 0 {
		t.Errorf("wrapText empty: expected empty, got %v", got)
	}
}

func TestFprint(t *testing.T) {
	DisableColors()
	defer EnableColors()

	var b strings.Builder
	Fprint(&b, New("E101").WithDetail(`no node matches "#app"`))
	if !strings.Contains(b.String(), "ERROR E101: Mount target not found [config]") {
		t.Errorf("Fprint(*Error) = %q", b.String())
	}

	b.Reset()
	Fprint(&b, stderrors.New("plain"))
	if !strings.Contains(b.String(), "ERROR: plain") {
		t.Errorf("Fprint(error) = %q", b.String())
	}
}
