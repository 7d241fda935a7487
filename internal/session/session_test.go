package session

import (
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func setup(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("TODOLISTS_CONFIG_DIR", dir)
	t.Setenv("TODOLISTS_SESSION", "")
	return dir
}

func TestLoad_NoSession(t *testing.T) {
	setup(t)

	info, err := Load("http://localhost:8080")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if info != nil {
		t.Fatalf("expected nil session, got %+v", info)
	}
}

func TestSave_LoadPerServer(t *testing.T) {
	dir := setup(t)

	if err := Save("http://a", []*http.Cookie{{Name: "jwt", Value: "aaa"}}); err != nil {
		t.Fatalf("Save a: %v", err)
	}
	if err := Save("http://b", []*http.Cookie{{Name: "jwt", Value: "bbb"}}); err != nil {
		t.Fatalf("Save b: %v", err)
	}

	fi, err := os.Stat(filepath.Join(dir, "session.json"))
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if fi.Mode().Perm() != 0o600 {
		t.Fatalf("expected 0600, got %v", fi.Mode().Perm())
	}

	info, err := Load("http://a")
	if err != nil || info == nil {
		t.Fatalf("Load a: %v %v", info, err)
	}
	if info.Source != "file" || info.Cookies[0].Value != "aaa" {
		t.Fatalf("unexpected session %+v", info)
	}
	hc := info.HTTPCookies()
	if len(hc) != 1 || hc[0].Path != "/" || hc[0].Value != "aaa" {
		t.Fatalf("unexpected http cookies %+v", hc)
	}

	if err := Clear("http://a"); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if info, _ := Load("http://a"); info != nil {
		t.Fatalf("expected a cleared, got %+v", info)
	}
	if info, _ := Load("http://b"); info == nil {
		t.Fatalf("expected b to survive clearing a")
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	setup(t)
	t.Setenv("TODOLISTS_SESSION", "jwt=tok123")

	info, err := Load("http://a")
	if err != nil || info == nil {
		t.Fatalf("Load: %v %v", info, err)
	}
	if info.Source != "env" || info.Cookies[0].Value != "tok123" || info.Cookies[0].Name != "jwt" {
		t.Fatalf("unexpected env session %+v", info)
	}
}

func TestExpiry(t *testing.T) {
	t.Parallel()

	exp := time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC)
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    "1",
		ExpiresAt: jwt.NewNumericDate(exp),
	}).SignedString([]byte("k"))
	if err != nil {
		t.Fatal(err)
	}

	info := &Info{Cookies: []Cookie{{Name: "jwt", Value: tok}}}
	got, ok := info.Expiry()
	if !ok || !got.Equal(exp) {
		t.Fatalf("Expiry()=%v,%v want %v", got, ok, exp)
	}

	opaque := &Info{Cookies: []Cookie{{Name: "jwt", Value: "not-a-jwt"}}}
	if _, ok := opaque.Expiry(); ok {
		t.Fatalf("expected opaque token to report unknown expiry")
	}

	var none *Info
	if _, ok := none.Expiry(); ok {
		t.Fatalf("expected nil session to report unknown expiry")
	}
}
