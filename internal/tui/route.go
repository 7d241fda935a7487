package tui

import "strings"

type routeKind int

const (
	routeRoot routeKind = iota
	routeRegister
	routeList
)

type route struct {
	kind routeKind
	slug string
}

// parseRoute maps a path onto the route table. Anything unknown is "/".
func parseRoute(path string) route {
	path = strings.TrimSpace(path)
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	path = "/" + strings.Trim(path, "/")

	switch {
	case path == "/register":
		return route{kind: routeRegister}
	case strings.HasPrefix(path, "/lists/"):
		slug := strings.TrimPrefix(path, "/lists/")
		if slug != "" && !strings.Contains(slug, "/") {
			return route{kind: routeList, slug: slug}
		}
	}
	return route{kind: routeRoot}
}

func (r route) path() string {
	switch r.kind {
	case routeRegister:
		return "/register"
	case routeList:
		return "/lists/" + r.slug
	}
	return "/"
}

func listPath(slug string) string { return "/lists/" + slug }
