package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"

	"github.com/idilsaglam/todolists/internal/validate"
)

func withProfile(t *testing.T, p termenv.Profile) {
	t.Helper()
	old := lipgloss.ColorProfile()
	lipgloss.SetColorProfile(p)
	SetTheme("classic")
	t.Cleanup(func() {
		lipgloss.SetColorProfile(old)
		SetTheme("classic")
	})
}

func TestProgressBar(t *testing.T) {
	tests := []struct {
		done, total, width int
		want               string
	}{
		{0, 0, 10, "░░░░░░░░░░   0%"},
		{1, 2, 10, "█████░░░░░  50%"},
		{3, 3, 4, "█████ 100%"},
	}
	for _, tt := range tests {
		if got := ProgressBar(tt.done, tt.total, tt.width); got != tt.want {
			t.Fatalf("ProgressBar(%d,%d,%d)=%q, want %q", tt.done, tt.total, tt.width, got, tt.want)
		}
	}
}

func TestButton_VariantsUseDistinctColors(t *testing.T) {
	withProfile(t, termenv.ANSI256)

	seen := map[string]Variant{}
	for _, v := range []Variant{Primary, Secondary, Success, Warning, Danger} {
		out := Button("Go", v, true, true)
		if !strings.Contains(xansi.Strip(out), "[Go]") {
			t.Fatalf("%s: expected focused label, got %q", v, xansi.Strip(out))
		}
		if prev, dup := seen[out]; dup {
			t.Fatalf("%s renders identically to %s", v, prev)
		}
		seen[out] = v
	}
}

func TestButton_DisabledIsNeverFocused(t *testing.T) {
	withProfile(t, termenv.Ascii)

	out := Button("Log In", Primary, false, true)
	if strings.Contains(out, "[") {
		t.Fatalf("disabled button should not render focus brackets: %q", out)
	}
	if !strings.Contains(out, "Log In") {
		t.Fatalf("expected label in %q", out)
	}
}

func TestOverlay_CentersBoxAndDimsBackground(t *testing.T) {
	withProfile(t, termenv.ANSI256)

	red := lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	bg := strings.Join([]string{
		red.Render("0123456789"),
		red.Render("0123456789"),
		red.Render("0123456789"),
	}, "\n")
	out := Overlay(bg, "XX", 10, 3)

	if strings.Contains(out, "38;5;196") {
		t.Fatalf("expected inner foreground to be stripped; got %q", out)
	}
	if !strings.Contains(out, "38;5;241") {
		t.Fatalf("expected backdrop color in output; got %q", out)
	}
	lines := strings.Split(xansi.Strip(out), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[1] != "0123XX6789" {
		t.Fatalf("expected box centered on middle line, got %q", lines[1])
	}
	if lines[0] != "0123456789" {
		t.Fatalf("expected background kept on other lines, got %q", lines[0])
	}
}

func TestOverlay_GrowsToFitBox(t *testing.T) {
	withProfile(t, termenv.Ascii)

	out := Overlay("ab", "wide box", 0, 0)
	if !strings.Contains(out, "wide box") {
		t.Fatalf("expected box in output, got %q", out)
	}
}

func TestField_ShowsMessageOnlyOnError(t *testing.T) {
	withProfile(t, termenv.Ascii)

	ok := Field("Your email address:", "@", "john@doe.com", validate.Result{}, false)
	if strings.Contains(ok, "too short") {
		t.Fatalf("unexpected error text: %q", ok)
	}
	bad := Field("Your email address:", "@", "j", validate.Result{IsError: true, Message: "This email is too short."}, true)
	if !strings.Contains(bad, "This email is too short.") {
		t.Fatalf("expected error text: %q", bad)
	}
}

func TestOKAndFail(t *testing.T) {
	withProfile(t, termenv.Ascii)

	var out, errOut bytes.Buffer
	OK(&out, "added")
	Fail(&errOut, "nope")
	if out.String() != "✔ added\n" {
		t.Fatalf("unexpected OK output %q", out.String())
	}
	if errOut.String() != "✖ nope\n" {
		t.Fatalf("unexpected Fail output %q", errOut.String())
	}
}

func TestSetTheme_FallsBackToClassic(t *testing.T) {
	withProfile(t, termenv.Ascii)

	SetTheme("does-not-exist")
	if Current().Name != "classic" {
		t.Fatalf("expected classic, got %q", Current().Name)
	}
	SetTheme("NEON")
	if Current().Name != "neon" || Current().BoxChecked != "◼" {
		t.Fatalf("expected neon, got %+v", Current())
	}
}
