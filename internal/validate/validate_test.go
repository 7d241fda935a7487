package validate

import (
	"strings"
	"testing"
)

func TestListNameReady(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want bool
	}{
		{"", false},
		{"   ", false},
		{"ab", false},
		{"  ab  ", false},
		{"abc", true},
		{"  abc ", true},
		{"Groceries", true},
		{"ééé", true},
		{strings.Repeat("x", 100), true},
	}
	for _, tt := range tests {
		if got := ListNameReady(tt.in); got != tt.want {
			t.Fatalf("ListNameReady(%q)=%v, want %v", tt.in, got, tt.want)
		}
		if ListName(tt.in).IsError {
			t.Fatalf("ListName(%q) should never report an error", tt.in)
		}
	}
}

func TestTaskDescription_UpperBound(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		wantErr bool
	}{
		{"", false},
		{"short", false},
		{strings.Repeat("d", 256), false},
		{"  " + strings.Repeat("d", 256) + "  ", false},
		{strings.Repeat("d", 257), true},
		{strings.Repeat("ü", 257), true},
	}
	for _, tt := range tests {
		res := TaskDescription(tt.in)
		if res.IsError != tt.wantErr {
			t.Fatalf("TaskDescription(len=%d).IsError=%v, want %v", len(tt.in), res.IsError, tt.wantErr)
		}
		title := Check("Buy milk", TaskTitle)
		desc := Check(tt.in, TaskDescription)
		if tt.wantErr && CanSubmit(title, desc) {
			t.Fatalf("expected creation disabled for len=%d", len(tt.in))
		}
	}
}

func TestTaskTitle_BothBoundsReachable(t *testing.T) {
	t.Parallel()

	if !TaskTitle("ab").IsError {
		t.Fatalf("expected too short")
	}
	if TaskTitle("abc").IsError {
		t.Fatalf("expected ok")
	}
	res := TaskTitle(strings.Repeat("t", 33))
	if !res.IsError || !strings.Contains(res.Message, "maximum") {
		t.Fatalf("expected too long error, got %+v", res)
	}
}

func TestRegisterEmail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		wantErr bool
	}{
		{"john@doe.com", false},
		{"john+tag@doe", false},
		{"j.o_h-n@d-o.e", false},
		{"johndoe.com", true},
		{"", true},
		{"   ", true},
		{"john@@doe.com", true},
		{"john doe@doe.com", true},
		{"@doe.com", true},
	}
	for _, tt := range tests {
		if got := RegisterEmail(tt.in).IsError; got != tt.wantErr {
			t.Fatalf("RegisterEmail(%q).IsError=%v, want %v", tt.in, got, tt.wantErr)
		}
	}
}

func TestRegisterName_UpperBoundReachable(t *testing.T) {
	t.Parallel()

	if !RegisterName("Jo").IsError {
		t.Fatalf("expected too short")
	}
	if RegisterName("Joanna").IsError {
		t.Fatalf("expected ok")
	}
	res := RegisterName(strings.Repeat("n", 33))
	if !res.IsError || res.Message != "The name can be maximum 32 characters long." {
		t.Fatalf("expected too long, got %+v", res)
	}
}

func TestLoginPassword(t *testing.T) {
	t.Parallel()

	res := LoginPassword("ab")
	if !res.IsError || !strings.Contains(res.Message, "too short") {
		t.Fatalf("expected too short error, got %+v", res)
	}
	if LoginPassword("abcd").IsError {
		t.Fatalf("expected no error for abcd")
	}
	if LoginPassword("").IsError {
		t.Fatalf("expected no error for empty")
	}

	email := Check("john@doe.com", LoginEmail)
	if CanSubmit(email, Check("", LoginPassword)) {
		t.Fatalf("expected submit disabled with empty password")
	}
	if !CanSubmit(email, Check("abcd", LoginPassword)) {
		t.Fatalf("expected submit enabled")
	}
}

func TestCanSubmit(t *testing.T) {
	t.Parallel()

	if CanSubmit() {
		t.Fatalf("no fields should not be submittable")
	}
	if CanSubmit(Field{Value: "x", Result: Result{IsError: true, Message: "bad"}}) {
		t.Fatalf("error field should block submit")
	}
	if CanSubmit(Field{Value: "  "}) {
		t.Fatalf("blank field should block submit")
	}
	if !CanSubmit(Field{Value: "x"}, Field{Value: "y"}) {
		t.Fatalf("expected submittable")
	}
}
