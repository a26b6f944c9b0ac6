package extractor

import (
	"path/filepath"
	"regexp"
	"strings"
)

var hostLabel = regexp.MustCompile(`^[A-Za-z0-9]([A-Za-z0-9-]*[A-Za-z0-9])?$`)

// logSuffixes are file extensions that end rotated or renamed log files and
// never a top-level domain.
var logSuffixes = map[string]bool{
	"log": true,
	"txt": true,
	"out": true,
	"old": true,
	"bak": true,
	"gz":  true,
	"bz2": true,
	"zip": true,
}

// HostFromFilename derives the server name encoded in a log file name of the
// form "<animal>_<host>", e.g. "place_code.google.com". It returns "" when
// the part after the first underscore is not a plausible host name, so
// names like "access_log.1" or "ssl_access.log" carry no host.
func HostFromFilename(path string) string {
	base := filepath.Base(path)
	_, host, found := strings.Cut(base, "_")
	if !found || !looksLikeHost(host) {
		return ""
	}
	return host
}

// looksLikeHost requires at least two valid labels and an alphabetic
// top-level label that is not a log file extension.
func looksLikeHost(s string) bool {
	labels := strings.Split(s, ".")
	if len(labels) < 2 {
		return false
	}
	for _, label := range labels {
		if !hostLabel.MatchString(label) {
			return false
		}
	}

	tld := strings.ToLower(labels[len(labels)-1])
	if len(tld) < 2 || logSuffixes[tld] {
		return false
	}
	for _, r := range tld {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}

func normalizeHost(host string) string {
	host = strings.TrimPrefix(host, "http://")
	host = strings.TrimPrefix(host, "https://")
	return strings.TrimSuffix(host, "/")
}
