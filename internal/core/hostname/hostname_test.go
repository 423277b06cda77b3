package hostname

import (
	"reflect"
	"strings"
	"testing"

	"golang.org/x/net/idna"
)

func TestParse_Table(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		raw        string
		normalized string
		labels     []string
		www        bool
		tldOnly    bool
		valid      bool
		ip         bool
		preview    bool
		sub        string
		rejected   string
	}{
		{name: "tld only", raw: "com", normalized: "com", labels: []string{"com"}, tldOnly: true},
		{name: "bare www is a single label", raw: "www", normalized: "www", labels: []string{"www"}, tldOnly: true},
		{name: "www plus tld", raw: "www.com", normalized: "com", labels: []string{"com"}, www: true, tldOnly: true},
		{name: "apex", raw: "example.com", normalized: "example.com", labels: []string{"example", "com"}, valid: true},
		{
			name: "www apex with port and case", raw: "WWW.Example.COM:3000", normalized: "example.com",
			labels: []string{"example", "com"}, www: true, valid: true,
		},
		{name: "trailing dot", raw: "example.com.", normalized: "example.com", labels: []string{"example", "com"}, valid: true},
		{
			name: "allowed subdomain", raw: "landing.example.com", normalized: "landing.example.com",
			labels: []string{"landing", "example", "com"}, valid: true, sub: "landing",
		},
		{
			name: "rejected subdomain", raw: "xyz.example.com", normalized: "xyz.example.com",
			labels: []string{"xyz", "example", "com"}, valid: true, rejected: "xyz",
		},
		{
			name: "www then allowed subdomain", raw: "www.app.example.com", normalized: "app.example.com",
			labels: []string{"app", "example", "com"}, www: true, valid: true, sub: "app",
		},
		{
			name: "ipv4 short circuits", raw: "1.2.3.4", normalized: "1.2.3.4",
			labels: []string{"1", "2", "3", "4"}, ip: true,
		},
		{name: "ipv4 with port", raw: "10.0.0.1:8080", normalized: "10.0.0.1", labels: []string{"10", "0", "0", "1"}, ip: true},
		{name: "ipv6 bracketed", raw: "[::1]:8080", normalized: "::1", ip: true},
		{
			name: "preview host skips subdomain logic", raw: "my-app-git-main.vercel.app", normalized: "my-app-git-main.vercel.app",
			labels: []string{"my-app-git-main", "vercel", "app"}, valid: true, preview: true,
		},
		{
			name: "preview host with allow-listed label", raw: "admin.vercel.app", normalized: "admin.vercel.app",
			labels: []string{"admin", "vercel", "app"}, valid: true, preview: true,
		},
		{name: "empty", raw: "", normalized: ""},
		{name: "whitespace", raw: "   ", normalized: ""},
		{name: "empty label", raw: "example..com", normalized: "example..com", labels: []string{"example", "", "com"}},
		{name: "fullwidth dot folds", raw: "example．com", normalized: "example.com", labels: []string{"example", "com"}, valid: true},
		{name: "idn to punycode", raw: "bücher.de", normalized: "xn--bcher-kva.de", labels: []string{"xn--bcher-kva", "de"}, valid: true},
		{name: "sharp s is not folded to ss", raw: "straße.de", normalized: "xn--strae-oqa.de", labels: []string{"xn--strae-oqa", "de"}, valid: true},
		{
			name: "www sharp s", raw: "www.Straße.de", normalized: "xn--strae-oqa.de",
			labels: []string{"xn--strae-oqa", "de"}, www: true, valid: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p := Parse(tt.raw)

			if p.Raw != tt.raw {
				t.Fatalf("Raw = %q want %q", p.Raw, tt.raw)
			}
			if p.Normalized != tt.normalized {
				t.Fatalf("Normalized = %q want %q", p.Normalized, tt.normalized)
			}
			if !reflect.DeepEqual(p.Labels, tt.labels) {
				t.Fatalf("Labels = %#v want %#v", p.Labels, tt.labels)
			}
			if p.HadWWWPrefix != tt.www {
				t.Fatalf("HadWWWPrefix = %v want %v", p.HadWWWPrefix, tt.www)
			}
			if p.IsTLDOnly != tt.tldOnly || p.IsValidFormat != tt.valid {
				t.Fatalf("tldOnly/valid = %v/%v want %v/%v", p.IsTLDOnly, p.IsValidFormat, tt.tldOnly, tt.valid)
			}
			if p.IsIP != tt.ip || p.IsPreview != tt.preview {
				t.Fatalf("ip/preview = %v/%v want %v/%v", p.IsIP, p.IsPreview, tt.ip, tt.preview)
			}
			if p.Subdomain != tt.sub || p.RejectedSubdomain != tt.rejected {
				t.Fatalf("sub/rejected = %q/%q want %q/%q", p.Subdomain, p.RejectedSubdomain, tt.sub, tt.rejected)
			}
		})
	}
}

func TestParse_NoDotsIsTLDOnly(t *testing.T) {
	t.Parallel()
	for _, h := range []string{"com", "net", "io", "LOCALHOST", "example:443", "a", strings.Repeat("x", 80)} {
		p := Parse(h)
		if !p.IsTLDOnly {
			t.Fatalf("%q: expected TLD only", h)
		}
		if p.IsValidFormat {
			t.Fatalf("%q: TLD only and valid format must be exclusive", h)
		}
		if p.Subdomain != "" || p.RejectedSubdomain != "" {
			t.Fatalf("%q: expected no subdomain, got %q/%q", h, p.Subdomain, p.RejectedSubdomain)
		}
	}
}

func TestParse_WWWStripping(t *testing.T) {
	t.Parallel()
	for _, d := range []string{"example.com", "Example.Org", "landing.shop.io", "a.b.c.d"} {
		p := Parse("www." + d)
		if !p.HadWWWPrefix {
			t.Fatalf("%q: expected www prefix flag", d)
		}
		if p.Normalized != strings.ToLower(d) {
			t.Fatalf("%q: Normalized = %q want %q", d, p.Normalized, strings.ToLower(d))
		}
		if p.Host != "www."+strings.ToLower(d) {
			t.Fatalf("%q: Host = %q", d, p.Host)
		}
	}
}

func TestParsed_Helpers(t *testing.T) {
	t.Parallel()

	sub := Parse("landing.example.co.uk")
	if sub.Apex() != "example.co.uk" {
		t.Fatalf("Apex = %q", sub.Apex())
	}
	if sub.TLD() != "uk" {
		t.Fatalf("TLD = %q", sub.TLD())
	}
	if sub.PublicSuffix != "co.uk" || sub.Registrable != "example.co.uk" {
		t.Fatalf("suffix/registrable = %q/%q", sub.PublicSuffix, sub.Registrable)
	}

	rej := Parse("xyz.example.com")
	if rej.Apex() != "xyz.example.com" {
		t.Fatalf("Apex for rejected = %q", rej.Apex())
	}
	if rej.Parent() != "example.com" {
		t.Fatalf("Parent = %q", rej.Parent())
	}
	if Parse("example.com").Parent() != "" {
		t.Fatalf("Parent below three labels must be empty")
	}
	if Parse("").TLD() != "" {
		t.Fatalf("TLD of empty must be empty")
	}
}

func TestParseWith_CustomPolicy(t *testing.T) {
	t.Parallel()
	pol := Policy{Subdomains: []string{"promo"}, PreviewSuffixes: []string{".preview.test"}}

	if p := ParseWith(pol, "promo.example.com"); p.Subdomain != "promo" {
		t.Fatalf("custom allow-list not applied: %+v", p)
	}
	if p := ParseWith(pol, "landing.example.com"); p.RejectedSubdomain != "landing" {
		t.Fatalf("landing must be rejected under custom policy: %+v", p)
	}
	if p := ParseWith(pol, "promo.preview.test"); !p.IsPreview || p.Subdomain != "" {
		t.Fatalf("custom preview suffix not applied: %+v", p)
	}
}

func TestParse_IDNMatchesLookupProfile(t *testing.T) {
	t.Parallel()
	for _, raw := range []string{"straße.de", "ς.gr.example", "bücher.de", "ΣΟΦΟΣ.gr"} {
		want, err := idna.Lookup.ToASCII(strings.ToLower(raw))
		if err != nil {
			t.Fatalf("%q: idna: %v", raw, err)
		}
		if got := Parse(raw).Normalized; got != want {
			t.Fatalf("%q: Normalized = %q want %q", raw, got, want)
		}
	}
}
