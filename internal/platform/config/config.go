// Package config reads service settings from prefixed environment variables
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"landingrouter/internal/platform/logger"
)

// Conf is a namespaced view over the environment, e.g. Prefix("EDGE_")
type Conf struct{ prefix string }

// New returns the root view
func New() Conf { return Conf{} }

// Prefix returns a child view, prefixes compose left to right
func (c Conf) Prefix(p string) Conf { return Conf{prefix: c.prefix + p} }

func (c Conf) key(k string) string { return c.prefix + k }

// lookup returns the trimmed value and the full key name
func (c Conf) lookup(k string) (string, string) {
	full := c.key(k)
	return strings.TrimSpace(os.Getenv(full)), full
}

// MustString panics when the key is unset or blank
func (c Conf) MustString(key string) string {
	v, k := c.lookup(key)
	if v == "" {
		logger.Get().Panic().Str("key", k).Msg("missing required env")
	}
	return v
}

// MustPort returns a listen address like ":8080"; the value must be 1..65535
func (c Conf) MustPort(key string) string {
	s := c.MustString(key)
	return ":" + c.port(key, s)
}

// MayPort is MustPort with a default port used when the key is unset
func (c Conf) MayPort(key string, def int) string {
	s, _ := c.lookup(key)
	if s == "" {
		s = strconv.Itoa(def)
	}
	return ":" + c.port(key, s)
}

func (c Conf) port(key, s string) string {
	p, err := strconv.Atoi(s)
	if err != nil || p < 1 || p > 65535 {
		logger.Get().Panic().Str("key", c.key(key)).Str("value", s).Msg("invalid TCP port; expected 1..65535")
	}
	return s
}

// MustDuration panics when the key is unset or not a Go duration
func (c Conf) MustDuration(key string) time.Duration {
	s := c.MustString(key)
	d, err := time.ParseDuration(s)
	if err != nil {
		logger.Get().Panic().Str("key", c.key(key)).Str("value", s).Msg("invalid duration (e.g., 250ms, 2s, 1h)")
	}
	return d
}

// MayString returns def when the key is unset or blank
func (c Conf) MayString(key, def string) string {
	if v, _ := c.lookup(key); v != "" {
		return v
	}
	return def
}

// MayInt returns def when unset; an unparsable value logs a warning and yields def
func (c Conf) MayInt(key string, def int) int {
	s, k := c.lookup(key)
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		logger.Get().Warn().Str("key", k).Str("value", s).Int("default", def).Msg("invalid int; using default")
		return def
	}
	return v
}

// MayBool returns def when unset; an unparsable value logs a warning and yields def
func (c Conf) MayBool(key string, def bool) bool {
	s, k := c.lookup(key)
	if s == "" {
		return def
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		logger.Get().Warn().Str("key", k).Str("value", s).Bool("default", def).Msg("invalid bool; using default")
		return def
	}
	return v
}

// MayDuration returns def when unset; an unparsable or negative value logs a warning and yields def
func (c Conf) MayDuration(key string, def time.Duration) time.Duration {
	s, k := c.lookup(key)
	if s == "" {
		return def
	}
	d, err := time.ParseDuration(s)
	if err != nil || d < 0 {
		logger.Get().Warn().Str("key", k).Str("value", s).Dur("default", def).Msg("invalid duration; using default")
		return def
	}
	return d
}

// MayCSV splits a comma separated value, dropping blanks; def when nothing remains
// entries are lowercased since every list we read holds hostnames or labels
func (c Conf) MayCSV(key string, def []string) []string {
	s, _ := c.lookup(key)
	if s == "" {
		return def
	}
	var out []string
	for _, p := range strings.Split(s, ",") {
		if v := strings.ToLower(strings.TrimSpace(p)); v != "" {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

// MayEnum returns the value when it is one of allowed (case-insensitive), def when unset
// any other value panics
func (c Conf) MayEnum(key, def string, allowed ...string) string {
	v := c.MayString(key, def)
	if v == "" {
		return v
	}
	for _, a := range allowed {
		if strings.EqualFold(v, a) {
			return strings.ToLower(a)
		}
	}
	logger.Get().Panic().Str("key", c.key(key)).Str("value", v).Strs("allowed", allowed).Msg("invalid enum value")
	return ""
}
