// Package embed turns a pasted GeoGebra embed snippet into an iframe tag
// sized and configured by the caller.
package embed

import (
	"fmt"
	"regexp"
	"strconv"
)

// Path keys understood by the GeoGebra material iframe URL.
const (
	KeyWidth       = "width"
	KeyHeight      = "height"
	KeyMenuBar     = "smb"
	KeyToolBar     = "stb"
	toolbarEnabled = "true"
)

// Request is one confirmation of the embed dialog.
type Request struct {
	Snippet     string `json:"snippet"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ShowToolbar bool   `json:"show_toolbar"`
}

// Result is the rewritten URL and the iframe markup built from it.
type Result struct {
	Source string `json:"source"` // src as found in the snippet
	URL    string `json:"url"`
	Markup string `json:"markup"`
}

var srcPattern = regexp.MustCompile(`src="([^"]*)"`)

// ExtractSource returns the value of the first non-empty src="..." attribute
// in snippet.
func ExtractSource(snippet string) (string, error) {
	for _, m := range srcPattern.FindAllStringSubmatch(snippet, -1) {
		if m[1] != "" {
			return m[1], nil
		}
	}
	return "", ErrParse
}

// RewriteWidth replaces the digits of every /width/<digits>/ pair.
// A non-positive width leaves the URL as is.
func RewriteWidth(rawURL string, width int) string {
	return rewriteDimension(rawURL, KeyWidth, width)
}

// RewriteHeight is RewriteWidth for /height/<digits>/.
func RewriteHeight(rawURL string, height int) string {
	return rewriteDimension(rawURL, KeyHeight, height)
}

func rewriteDimension(rawURL, key string, n int) string {
	if n <= 0 {
		return rawURL
	}
	return ParseLocation(rawURL).Set(key, strconv.Itoa(n), isDigits).String()
}

// RewriteToolbar forces the menu bar and tool bar flags on when show is set.
// When show is false the flags keep whatever the snippet had; they are not
// forced off.
func RewriteToolbar(rawURL string, show bool) string {
	if !show {
		return rawURL
	}
	loc := ParseLocation(rawURL)
	loc = loc.Set(KeyMenuBar, toolbarEnabled, anyValue)
	loc = loc.Set(KeyToolBar, toolbarEnabled, anyValue)
	return loc.String()
}

// Markup renders the iframe tag for an already rewritten URL.
func Markup(rawURL string, width, height int) string {
	return fmt.Sprintf(`<iframe scrolling="no" src="%s" width="%dpx" height="%dpx" style="border:0px;"></iframe>`,
		rawURL, width, height)
}

// Build extracts the snippet's source URL, applies the requested size and
// toolbar setting, and renders the iframe.
func Build(req Request) (Result, error) {
	src, err := ExtractSource(req.Snippet)
	if err != nil {
		return Result{}, err
	}

	u := RewriteWidth(src, req.Width)
	u = RewriteHeight(u, req.Height)
	u = RewriteToolbar(u, req.ShowToolbar)

	return Result{
		Source: src,
		URL:    u,
		Markup: Markup(u, req.Width, req.Height),
	}, nil
}
