package embed

import "strings"

// Location is an embed URL split into the pieces the rewriter cares about:
// everything before the path, the path segments, and the query/fragment.
// String() reproduces the input byte for byte when nothing was set.
type Location struct {
	prefix   string
	segments []string
	suffix   string
}

// ParseLocation splits raw into a Location. It never fails; anything it does
// not recognise ends up in the prefix or suffix untouched.
func ParseLocation(raw string) Location {
	rest := raw
	var prefix string

	if i := strings.Index(rest, "://"); i >= 0 && !strings.ContainsAny(rest[:i], "/?#") {
		start := i + len("://")
		j := strings.IndexAny(rest[start:], "/?#")
		if j < 0 {
			return Location{prefix: raw}
		}
		prefix, rest = rest[:start+j], rest[start+j:]
	} else if strings.HasPrefix(rest, "//") {
		j := strings.IndexAny(rest[2:], "/?#")
		if j < 0 {
			return Location{prefix: raw}
		}
		prefix, rest = rest[:2+j], rest[2+j:]
	}

	var suffix string
	if k := strings.IndexAny(rest, "?#"); k >= 0 {
		rest, suffix = rest[:k], rest[k:]
	}

	var segments []string
	if rest != "" {
		segments = strings.Split(rest, "/")
	}
	return Location{prefix: prefix, segments: segments, suffix: suffix}
}

// String re-joins the location.
func (l Location) String() string {
	return l.prefix + strings.Join(l.segments, "/") + l.suffix
}

// Segments returns a copy of the path segments. A leading or trailing slash
// shows up as an empty first or last element.
func (l Location) Segments() []string {
	out := make([]string, len(l.segments))
	copy(out, l.segments)
	return out
}

// Value returns the value of the first /key/<value>/ pair in the path.
func (l Location) Value(key string) (string, bool) {
	for i := 1; i+2 < len(l.segments); i++ {
		if l.segments[i] == key && l.segments[i+1] != "" {
			return l.segments[i+1], true
		}
	}
	return "", false
}

// Set rewrites every /key/<old>/ pair whose old value satisfies match.
// The pair must sit between slashes: a key in the first position or a value
// in the last position is left alone. Keys that are absent are not added.
func (l Location) Set(key, value string, match func(string) bool) Location {
	out := Location{prefix: l.prefix, segments: l.Segments(), suffix: l.suffix}
	for i := 1; i+2 < len(out.segments); i++ {
		if out.segments[i] != key {
			continue
		}
		old := out.segments[i+1]
		if old == "" || !match(old) {
			continue
		}
		out.segments[i+1] = value
		i++
	}
	return out
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func anyValue(string) bool { return true }
