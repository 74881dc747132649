// Package guard decides whether the shell may enter a route given the
// current session, mirroring the desktop client's router guard.
package guard

import (
	"context"

	"github.com/dmitrijs2005/gochat/internal/logging"
)

// Route names known to the shell.
const (
	RouteAuth = "auth"
	RouteChat = "chat"
)

type Route struct {
	Name         string
	RequiresAuth bool
}

// Decision is the outcome of Authorize. When Allow is false, Redirect names
// the route to go to instead.
type Decision struct {
	Allow    bool
	Redirect string
}

// Session is the part of the session controller the guard depends on.
type Session interface {
	Known() bool
	Initialize(ctx context.Context)
	IsAuthenticated() bool
}

type Guard struct {
	session Session
	routes  map[string]Route
	log     logging.Logger
}

// DefaultRoutes is the route table of the chat client.
func DefaultRoutes() []Route {
	return []Route{
		{Name: RouteChat, RequiresAuth: true},
		{Name: RouteAuth},
	}
}

func New(s Session, log logging.Logger, routes ...Route) *Guard {
	if len(routes) == 0 {
		routes = DefaultRoutes()
	}
	g := &Guard{
		session: s,
		routes:  make(map[string]Route, len(routes)),
		log:     log.With("component", "guard"),
	}
	for _, r := range routes {
		g.routes[r.Name] = r
	}
	return g
}

// Lookup returns the registered route with the given name.
func (g *Guard) Lookup(name string) (Route, bool) {
	r, ok := g.routes[name]
	return r, ok
}

// Authorize decides whether route may be entered. If the authentication
// status is not known yet, it runs Initialize first and waits for it.
func (g *Guard) Authorize(ctx context.Context, route Route) Decision {
	if !g.session.Known() {
		g.session.Initialize(ctx)
	}

	if _, ok := g.routes[route.Name]; !ok {
		g.log.Debug(ctx, "unknown route", "route", route.Name)
		return Decision{Redirect: RouteAuth}
	}

	if route.RequiresAuth && !g.session.IsAuthenticated() {
		g.log.Debug(ctx, "route requires authentication", "route", route.Name)
		return Decision{Redirect: RouteAuth}
	}
	return Decision{Allow: true}
}

// AuthorizeName is Authorize for a route looked up by name.
func (g *Guard) AuthorizeName(ctx context.Context, name string) Decision {
	r, ok := g.Lookup(name)
	if !ok {
		r = Route{Name: name}
	}
	return g.Authorize(ctx, r)
}
