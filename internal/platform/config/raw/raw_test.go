package raw

import "testing"

func TestGet(t *testing.T) {
	t.Setenv("LOG_SERVICE", " landingrouter-edge ")
	log := New().Prefix("LOG_")

	if got := log.Get("SERVICE", "x"); got != "landingrouter-edge" {
		t.Fatalf("Get = %q", got)
	}
	if got := log.Get("MISSING", "fallback"); got != "fallback" {
		t.Fatalf("Get default = %q", got)
	}
	if got := New().Prefix("LOG_").Prefix("X_").Get("SERVICE", "nested"); got != "nested" {
		t.Fatalf("nested prefix must not read LOG_SERVICE, got %q", got)
	}
}

func TestGetBool(t *testing.T) {
	c := New().Prefix("B_")
	tests := []struct {
		env  string
		def  bool
		want bool
	}{
		{"true", false, true},
		{"1", false, true},
		{" YES ", false, true},
		{"on", false, true},
		{"false", true, false},
		{"0", true, false},
		{"garbage", true, false},
		{"", true, true},
		{"", false, false},
	}
	for _, tt := range tests {
		t.Setenv("B_V", tt.env)
		if got := c.GetBool("V", tt.def); got != tt.want {
			t.Fatalf("GetBool(%q, %v) = %v want %v", tt.env, tt.def, got, tt.want)
		}
	}
}

func TestGetInt(t *testing.T) {
	c := New().Prefix("N_")
	tests := []struct {
		env  string
		def  int
		want int
	}{
		{"42", 0, 42},
		{"  7 ", 1, 7},
		{"12x", 9, 9},
		{"-5", 3, 3},
		{"", 11, 11},
	}
	for _, tt := range tests {
		t.Setenv("N_V", tt.env)
		if got := c.GetInt("V", tt.def); got != tt.want {
			t.Fatalf("GetInt(%q) = %d want %d", tt.env, got, tt.want)
		}
	}
}
