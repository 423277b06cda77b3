package modkit

import (
	"net/http"
	"strings"

	phttp "landingrouter/internal/platform/net/http"
)

// Base implements Module from applied options; modules embed it
type Base struct {
	name     string
	prefix   string
	mw       []func(http.Handler) http.Handler
	ports    any
	register []func(phttp.Router)
}

// Build applies defaults then opts, later options win
// the name must be non blank and the prefix must start with a slash
func Build(defaults []Option, opts ...Option) Base {
	var c buildCfg
	for _, o := range append(append([]Option(nil), defaults...), opts...) {
		o(&c)
	}
	if strings.TrimSpace(c.name) == "" {
		panic("modkit: module name is required")
	}
	if c.prefix != "" && !strings.HasPrefix(c.prefix, "/") {
		panic("modkit: module prefix must start with /: " + c.prefix)
	}
	return Base{
		name:     c.name,
		prefix:   strings.TrimSuffix(c.prefix, "/"),
		mw:       c.mw,
		ports:    c.ports,
		register: c.register,
	}
}

// Name returns the module name
func (b Base) Name() string { return b.name }

// Prefix returns the mount prefix, empty for the parent router itself
func (b Base) Prefix() string { return b.prefix }

// Ports returns the value set with WithPorts
func (b Base) Ports() any { return b.ports }

// Mount applies the module middleware under the prefix then runs own and the external registrations
func (b Base) Mount(r phttp.Router, own func(phttp.Router)) {
	attach := func(rr phttp.Router) {
		if len(b.mw) > 0 {
			rr.Use(b.mw...)
		}
		if own != nil {
			own(rr)
		}
		for _, fn := range b.register {
			fn(rr)
		}
	}
	if b.prefix == "" {
		r.Group(attach)
		return
	}
	r.Route(b.prefix, attach)
}
