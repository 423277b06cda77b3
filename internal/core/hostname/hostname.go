// Package hostname classifies raw request hosts into domain, subdomain and TLD parts
// Pipeline order
// 1 trim, unicode fold (NFKC, drop format chars, width fold) and per rune lowercase
// no full case folding: ß and final sigma must reach IDNA unchanged
// 2 keep the segment before the first colon and drop trailing dots
// 3 IDNA to ASCII for non ASCII hosts
// 4 strip a leading www label
// 5 split into labels and classify
// Parsing never fails; malformed input degrades to IsValidFormat false
package hostname

import (
	"net"
	"strings"
	"sync"
	"unicode"

	"golang.org/x/net/idna"
	"golang.org/x/net/publicsuffix"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// Parsed is the immutable classification of one raw host
type Parsed struct {
	Raw string `json:"raw"`

	// Host is lowercased, port stripped and trailing dot stripped, www kept
	Host string `json:"host"`

	// Normalized is Host after www removal and is the registry lookup form
	Normalized string `json:"normalized"`

	HadWWWPrefix  bool     `json:"had_www_prefix"`
	Labels        []string `json:"labels"`
	IsTLDOnly     bool     `json:"is_tld_only"`
	IsValidFormat bool     `json:"is_valid_format"`
	IsIP          bool     `json:"is_ip"`
	IsPreview     bool     `json:"is_preview"`

	// Subdomain is set only for allow-listed first labels
	Subdomain string `json:"subdomain,omitempty"`

	// RejectedSubdomain holds a first label that is not allow-listed
	RejectedSubdomain string `json:"rejected_subdomain,omitempty"`

	// informational, never used for routing
	PublicSuffix string `json:"public_suffix,omitempty"`
	Registrable  string `json:"registrable,omitempty"`
}

// HasSubdomain reports whether an allow-listed subdomain was detected
func (p Parsed) HasSubdomain() bool { return p.Subdomain != "" }

// Apex returns the domain part without an allow-listed subdomain
func (p Parsed) Apex() string {
	if p.HasSubdomain() {
		return strings.Join(p.Labels[1:], ".")
	}
	return p.Normalized
}

// Parent returns the host without its first label, empty below three labels
func (p Parsed) Parent() string {
	if len(p.Labels) < 3 {
		return ""
	}
	return strings.Join(p.Labels[1:], ".")
}

// TLD returns the last label, empty when there are no labels
func (p Parsed) TLD() string {
	if len(p.Labels) == 0 {
		return ""
	}
	return p.Labels[len(p.Labels)-1]
}

// foldPool holds transformer chains; chains are stateful so they are not shared
var foldPool = sync.Pool{
	New: func() any {
		return transform.Chain(
			norm.NFKC,
			runes.Remove(runes.In(unicode.Cf)),
			width.Fold,
		)
	},
}

func fold(s string) string {
	tr := foldPool.Get().(transform.Transformer)
	out, _, err := transform.String(tr, s)
	tr.Reset()
	foldPool.Put(tr)
	if err != nil {
		return strings.ToLower(s)
	}
	return strings.ToLower(out)
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}

// Parse classifies rawHost with DefaultPolicy
func Parse(rawHost string) Parsed { return ParseWith(DefaultPolicy, rawHost) }

// ParseWith classifies rawHost with the given policy
func ParseWith(policy Policy, rawHost string) Parsed {
	out := Parsed{Raw: rawHost}

	s := strings.TrimSpace(rawHost)
	if s == "" {
		return out
	}
	s = fold(s)

	// bracketed IPv6 literal, optionally with a port
	if strings.HasPrefix(s, "[") {
		inner := strings.TrimPrefix(s, "[")
		if i := strings.IndexByte(inner, ']'); i >= 0 {
			inner = inner[:i]
		}
		out.Host = inner
		out.Normalized = inner
		out.IsIP = net.ParseIP(inner) != nil
		return out
	}

	if i := strings.IndexByte(s, ':'); i >= 0 {
		s = s[:i]
	}
	s = strings.TrimRight(s, ".")
	if s == "" {
		return out
	}
	if !isASCII(s) {
		if a, err := idna.Lookup.ToASCII(s); err == nil {
			s = a
		}
	}
	s = strings.ToLower(s)
	out.Host = s

	if net.ParseIP(s) != nil {
		out.Normalized = s
		out.IsIP = true
		out.Labels = strings.Split(s, ".")
		return out
	}

	if strings.HasPrefix(s, "www.") && len(s) > len("www.") {
		s = strings.TrimPrefix(s, "www.")
		out.HadWWWPrefix = true
	}
	out.Normalized = s
	out.Labels = strings.Split(s, ".")

	for _, l := range out.Labels {
		if l == "" {
			// empty label like a..b degrades to invalid, no classification
			return out
		}
	}

	out.IsTLDOnly = len(out.Labels) == 1
	out.IsValidFormat = len(out.Labels) >= 2
	if !out.IsValidFormat {
		return out
	}

	if suffix, _ := publicsuffix.PublicSuffix(s); suffix != "" {
		out.PublicSuffix = suffix
	}
	if reg, err := publicsuffix.EffectiveTLDPlusOne(s); err == nil {
		out.Registrable = reg
	}

	if policy.IsPreview(s) {
		out.IsPreview = true
		return out
	}

	if len(out.Labels) >= 3 {
		first := out.Labels[0]
		if policy.AllowsSubdomain(first) {
			out.Subdomain = first
		} else {
			out.RejectedSubdomain = first
		}
	}
	return out
}
