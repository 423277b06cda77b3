package bind

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	perr "landingrouter/internal/platform/errors"
)

type hostReq struct {
	Host string `json:"host" validate:"required,host_input"`
}

func post(body string) *http.Request {
	return httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
}

func TestParseJSON(t *testing.T) {
	got, err := ParseJSON[hostReq](post(`{"host":"www.example.com"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Host != "www.example.com" {
		t.Fatalf("got %+v", got)
	}
}

func TestParseJSON_DecodeErrors(t *testing.T) {
	cases := map[string]*http.Request{
		"empty":    httptest.NewRequest(http.MethodPost, "/", http.NoBody),
		"broken":   post(`{"host":`),
		"unknown":  post(`{"host":"a.com","extra":1}`),
		"trailing": post(`{"host":"a.com"}{"host":"b.com"}`),
		"too big":  post(`{"host":"` + strings.Repeat("a", 70<<10) + `"}`),
	}
	for name, req := range cases {
		_, err := ParseJSON[hostReq](req)
		if perr.CodeOf(err) != perr.ErrorCodeJSON {
			t.Fatalf("%s: code = %v (%v)", name, perr.CodeOf(err), err)
		}
	}
}

func TestParseJSON_Options(t *testing.T) {
	type loose struct {
		Host string `json:"host"`
	}
	got, err := ParseJSON[loose](httptest.NewRequest(http.MethodPost, "/", http.NoBody), Options{AllowEmptyBody: true})
	if err != nil || got.Host != "" {
		t.Fatalf("empty body allowed: %+v %v", got, err)
	}
	got, err = ParseJSON[loose](post(`{"host":"a.com","x":true}`), Options{AllowUnknown: true})
	if err != nil || got.Host != "a.com" {
		t.Fatalf("unknown allowed: %+v %v", got, err)
	}
}

func TestHostInputValidation(t *testing.T) {
	tests := []struct {
		host string
		ok   bool
	}{
		{"example.com", true},
		{"WWW.Example.COM:8080", true},
		{"com", true},
		{"bücher.de", true},
		{"[::1]:443", true},
		{"", false},
		{"   ", false},
		{"exa mple.com", false},
		{"example.com/path", false},
		{"user@example.com", false},
		{"bad\x00host", false},
		{strings.Repeat("a", MaxHostLen), true},
		{strings.Repeat("a", MaxHostLen+1), false},
	}
	for _, tt := range tests {
		err := Validate(hostReq{Host: tt.host})
		if (err == nil) != tt.ok {
			t.Fatalf("Validate(%q) err = %v, want ok=%v", tt.host, err, tt.ok)
		}
		if err == nil {
			continue
		}
		e, _ := perr.As(err)
		if e.Code() != perr.ErrorCodeValidation || e.Field() != "host" {
			t.Fatalf("Validate(%q) = code %v field %q", tt.host, e.Code(), e.Field())
		}
	}
}

func TestValidationMessages(t *testing.T) {
	err := Validate(hostReq{Host: "a b"})
	if err == nil || !strings.Contains(err.Error(), "host must be a host name") {
		t.Fatalf("message = %v", err)
	}

	type short struct {
		Note string `json:"note" validate:"max=3"`
	}
	err = Validate(short{Note: "toolong"})
	if err == nil || err.Error() != "note must be at most 3 characters" {
		t.Fatalf("max message = %v", err)
	}
}

func TestValidate_Misuse(t *testing.T) {
	if perr.CodeOf(Validate("not a struct")) != perr.ErrorCodeUnknown {
		t.Fatalf("non-struct validation should be an internal error")
	}
}

func TestFieldAndMessage(t *testing.T) {
	if f, m := FieldAndMessage(nil); f != "" || m != "" {
		t.Fatalf("nil = %q %q", f, m)
	}
	if f, m := FieldAndMessage(perr.JSONErrf("x")); f != "" || m != "x" {
		t.Fatalf("foreign = %q %q", f, m)
	}
}
