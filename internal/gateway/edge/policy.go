// Package edge decides, before a page renders, whether a browser request may
// continue or must be sent to a login surface or a role specific landing page.
package edge

import (
	"context"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/aussiebroadwan/mudras/pkg/authsdk"
	"github.com/aussiebroadwan/mudras/pkg/sessionx"
)

// Landing and login surfaces.
const (
	BusinessLogin   = "/login"
	ClientLogin     = "/cliente"
	BusinessLanding = "/panel"
	ClientLanding   = "/cliente/panel"

	// NextParam carries the originally requested location across a login.
	NextParam = "siguiente"
)

var (
	businessPanel = regexp.MustCompile(`^/panel(/.*)?$`)
	clientPanel   = regexp.MustCompile(`^/cliente/panel(/.*)?$`)
)

var (
	allowPrefixes = []string{"/api/auth", "/_next", "/images"}
	allowExact    = []string{"/", BusinessLogin, ClientLogin}

	// Never seen by the gate at all.
	staticPrefixes = []string{"/_next/static/", "/_next/image", "/favicon.ico", "/logo.svg"}
)

// ProfileFetcher resolves the owner of a bearer token. *authsdk.Client
// satisfies it.
type ProfileFetcher interface {
	Perfil(ctx context.Context, bearer string) (*authsdk.Perfil, error)
}

// Policy is the gate configuration. The zero value gates paths but never
// fetches profiles.
type Policy struct {
	// Profiles is nil when no backend is configured; role checks then fail
	// open.
	Profiles ProfileFetcher

	// ProfileTimeout bounds the profile fetch. Zero means 5 seconds.
	ProfileTimeout time.Duration

	// RedirectAuthenticatedLogin sends a visitor that already holds a token
	// away from /login to the business panel.
	RedirectAuthenticatedLogin bool
}

// Action is what the gate does with a request.
type Action int

const (
	Pass Action = iota
	Redirect
)

func (a Action) String() string {
	if a == Redirect {
		return "redirect"
	}
	return "pass"
}

// Decision is the outcome for one request. Location is set for Redirect.
type Decision struct {
	Action   Action
	Location string
	Reason   string
}

func pass(reason string) Decision { return Decision{Action: Pass, Reason: reason} }

func redirect(location, reason string) Decision {
	return Decision{Action: Redirect, Location: location, Reason: reason}
}

// IsStatic reports paths that bypass the gate entirely.
func IsStatic(path string) bool {
	for _, p := range staticPrefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

func allowListed(path string) bool {
	for _, p := range allowExact {
		if path == p {
			return true
		}
	}
	for _, p := range allowPrefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

// underCliente matches /cliente/... but not /clientes. This deliberately
// stops at the segment boundary instead of matching every path that starts
// with "/cliente": /clientes is a business page and must not bounce
// business users back to /panel.
func underCliente(path string) bool {
	return strings.HasPrefix(path, ClientLogin+"/")
}

// Decide classifies r. It reads nothing but the URL and cookies, plus one
// profile fetch when a role check is needed, so calling it twice on the same
// request yields the same decision.
func (p *Policy) Decide(ctx context.Context, r *http.Request) Decision {
	path := r.URL.Path
	token, hasToken := sessionx.TokenFromRequest(r)

	if IsStatic(path) {
		return pass("static asset")
	}

	if p.RedirectAuthenticatedLogin && hasToken && path == BusinessLogin {
		return redirect(BusinessLanding, "authenticated visit to login")
	}

	if allowListed(path) {
		return pass("allow-listed")
	}

	business := businessPanel.MatchString(path)
	client := clientPanel.MatchString(path)
	roleChecked := business || client || underCliente(path)

	if !roleChecked {
		return pass("open route")
	}

	if !hasToken {
		if !business && !client {
			return pass("open route")
		}
		login := BusinessLogin
		if client {
			login = ClientLogin
		}
		return redirect(loginLocation(login, r.URL), "no session cookie")
	}

	perfil, ok := p.fetchProfile(ctx, token)
	if !ok {
		return pass("profile unavailable, failing open")
	}

	switch {
	case perfil.Typ == authsdk.TypeCliente && business:
		return redirect(ClientLanding, "client on business panel")
	case perfil.Typ == authsdk.TypeEmpresa && underCliente(path) && !client:
		return redirect(BusinessLanding, "business user on client area")
	}
	return pass("role allowed")
}

func (p *Policy) fetchProfile(ctx context.Context, token string) (*authsdk.Perfil, bool) {
	if p.Profiles == nil {
		return nil, false
	}

	timeout := p.ProfileTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	perfil, err := p.Profiles.Perfil(ctx, sessionx.NormalizeBearer(token))
	if err != nil || perfil == nil {
		return nil, false
	}
	return perfil, true
}

// loginLocation builds login?siguiente=<path[?query]>.
func loginLocation(login string, u *url.URL) string {
	next := u.Path
	if u.RawQuery != "" {
		next += "?" + u.RawQuery
	}
	return login + "?" + url.Values{NextParam: {next}}.Encode()
}
