package extractor

import "testing"

func TestHostFromFilename(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"animal_code.google.com", "code.google.com"},
		{"/logs/place_code.google.com", "code.google.com"},
		{"access.log", ""},
		{"animal_", ""},
		{"my_log", ""},
		{"/var/log/apache2/access_log.1", ""},
		{"logs/my_access.log", ""},
		{"ssl_access.log", ""},
		{"access_log.gz", ""},
		{"site_example.com", "example.com"},
		{"site_images.example.co.uk", "images.example.co.uk"},
		{"site_bad..example.com", ""},
		{"site_-bad.example.com", ""},
	}
	for _, tt := range tests {
		if got := HostFromFilename(tt.path); got != tt.want {
			t.Errorf("HostFromFilename(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestWithHostNormalizes(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"example.com", "example.com"},
		{"http://example.com", "example.com"},
		{"https://example.com/", "example.com"},
		{"", DefaultHost},
	}
	for _, tt := range tests {
		if got := New(WithHost(tt.in)).Host(); got != tt.want {
			t.Errorf("WithHost(%q).Host() = %q, want %q", tt.in, got, tt.want)
		}
	}
}
