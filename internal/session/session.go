package session

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/idilsaglam/todolists/internal/config"
	"github.com/idilsaglam/todolists/internal/store/jsonstore"
)

const (
	fileName   = "session.json"
	cookieName = "jwt"
	envVar     = "TODOLISTS_SESSION"
)

// Cookie is the persisted form of an http.Cookie.
type Cookie struct {
	Name    string     `json:"name"`
	Value   string     `json:"value"`
	Path    string     `json:"path,omitempty"`
	Expires *time.Time `json:"expires,omitempty"`
}

// Info is the saved session for one server.
type Info struct {
	Server  string    `json:"server"`
	Source  string    `json:"source"` // "env" | "file"
	SavedAt time.Time `json:"saved_at"`
	Cookies []Cookie  `json:"cookies"`
}

// file holds one session per server URL.
type file struct {
	Sessions map[string]Info `json:"sessions"`
}

func filePath() (string, error) {
	dir, err := config.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, fileName), nil
}

// Load returns the session for server, or nil when there is none.
// TODOLISTS_SESSION overrides the file with a raw jwt cookie value.
func Load(server string) (*Info, error) {
	if env := strings.TrimSpace(os.Getenv(envVar)); env != "" {
		return &Info{
			Server:  server,
			Source:  "env",
			Cookies: []Cookie{{Name: cookieName, Value: stripCookieName(env), Path: "/"}},
		}, nil
	}

	p, err := filePath()
	if err != nil {
		return nil, err
	}
	var f file
	if _, err := jsonstore.Load(p, &f); err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}
	info, ok := f.Sessions[server]
	if !ok || len(info.Cookies) == 0 {
		return nil, nil
	}
	info.Source = "file"
	return &info, nil
}

// Save stores cookies for server with owner-only permissions. Saving an
// empty set removes the server's entry.
func Save(server string, cookies []*http.Cookie) error {
	p, err := filePath()
	if err != nil {
		return err
	}
	var f file
	if _, err := jsonstore.Load(p, &f); err != nil {
		return fmt.Errorf("read session: %w", err)
	}
	if f.Sessions == nil {
		f.Sessions = map[string]Info{}
	}
	if len(cookies) == 0 {
		delete(f.Sessions, server)
	} else {
		f.Sessions[server] = Info{
			Server:  server,
			Source:  "file",
			SavedAt: time.Now().UTC(),
			Cookies: fromHTTP(cookies),
		}
	}
	return jsonstore.Save(p, f, 0o600)
}

// Clear forgets the session for server.
func Clear(server string) error {
	return Save(server, nil)
}

// HTTPCookies converts the saved cookies for use in a cookie jar.
func (i *Info) HTTPCookies() []*http.Cookie {
	if i == nil {
		return nil
	}
	out := make([]*http.Cookie, 0, len(i.Cookies))
	for _, c := range i.Cookies {
		hc := &http.Cookie{Name: c.Name, Value: c.Value, Path: c.Path}
		if hc.Path == "" {
			hc.Path = "/"
		}
		if c.Expires != nil {
			hc.Expires = *c.Expires
		}
		out = append(out, hc)
	}
	return out
}

// Expiry decodes the exp claim of the session cookie without verifying
// it. ok is false for opaque tokens.
func (i *Info) Expiry() (exp time.Time, ok bool) {
	if i == nil {
		return time.Time{}, false
	}
	for _, c := range i.Cookies {
		if c.Name != cookieName {
			continue
		}
		claims := &jwt.RegisteredClaims{}
		if _, _, err := jwt.NewParser().ParseUnverified(c.Value, claims); err != nil {
			return time.Time{}, false
		}
		if claims.ExpiresAt == nil {
			return time.Time{}, false
		}
		return claims.ExpiresAt.Time, true
	}
	return time.Time{}, false
}

func fromHTTP(cookies []*http.Cookie) []Cookie {
	out := make([]Cookie, 0, len(cookies))
	for _, c := range cookies {
		pc := Cookie{Name: c.Name, Value: c.Value, Path: c.Path}
		if !c.Expires.IsZero() {
			exp := c.Expires.UTC()
			pc.Expires = &exp
		}
		out = append(out, pc)
	}
	return out
}

func stripCookieName(s string) string {
	if strings.HasPrefix(strings.ToLower(s), cookieName+"=") {
		return strings.TrimSpace(s[len(cookieName)+1:])
	}
	return s
}
