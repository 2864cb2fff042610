// Package render formats a built embed for output.
package render

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/geoembed/geoembed/internal/embed"
)

// Renderer turns a built embed into text in a specific format.
type Renderer interface {
	Render(res embed.Result, req embed.Request) (string, error)
}

// registry maps format names to Renderer implementations.
var registry = map[string]Renderer{
	"html":     HTMLRenderer{},
	"json":     JSONRenderer{},
	"markdown": MarkdownRenderer{},
}

// Get returns the Renderer registered under name, and whether it was found.
func Get(name string) (Renderer, bool) {
	r, ok := registry[name]
	return r, ok
}

// ValidFormats returns the supported format names, sorted.
func ValidFormats() []string {
	formats := make([]string, 0, len(registry))
	for k := range registry {
		formats = append(formats, k)
	}
	sort.Strings(formats)
	return formats
}

// HTMLRenderer emits the bare iframe tag.
type HTMLRenderer struct{}

func (HTMLRenderer) Render(res embed.Result, _ embed.Request) (string, error) {
	return res.Markup + "\n", nil
}

// JSONRenderer emits the request parameters alongside the result.
type JSONRenderer struct{}

type jsonOutput struct {
	Source      string `json:"source"`
	URL         string `json:"url"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ShowToolbar bool   `json:"show_toolbar"`
	Markup      string `json:"markup"`
}

func (JSONRenderer) Render(res embed.Result, req embed.Request) (string, error) {
	b, err := json.MarshalIndent(jsonOutput{
		Source:      res.Source,
		URL:         res.URL,
		Width:       req.Width,
		Height:      req.Height,
		ShowToolbar: req.ShowToolbar,
		Markup:      res.Markup,
	}, "", "  ")
	if err != nil {
		return "", err
	}
	return string(b) + "\n", nil
}

// MarkdownRenderer wraps the markup in a fenced block for pasting into docs.
type MarkdownRenderer struct{}

func (MarkdownRenderer) Render(res embed.Result, req embed.Request) (string, error) {
	toolbar := "hidden"
	if req.ShowToolbar {
		toolbar = "shown"
	}
	return fmt.Sprintf("### Embed %dx%d (toolbar %s)\n\n```html\n%s\n```\n", req.Width, req.Height, toolbar, res.Markup), nil
}
