package render

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/geoembed/geoembed/internal/embed"
)

func sample(t *testing.T) (embed.Result, embed.Request) {
	t.Helper()
	req := embed.Request{
		Snippet:     `<iframe src="https://example.com/m/width/640/height/360/smb/false/stb/false/"></iframe>`,
		Width:       800,
		Height:      450,
		ShowToolbar: true,
	}
	res, err := embed.Build(req)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return res, req
}

func TestGet_ValidFormats(t *testing.T) {
	for _, name := range []string{"html", "json", "markdown"} {
		r, ok := Get(name)
		if !ok || r == nil {
			t.Errorf("Get(%q) returned %v, %v", name, r, ok)
		}
	}
}

func TestGet_InvalidFormat(t *testing.T) {
	if _, ok := Get("xml"); ok {
		t.Error("expected Get('xml') to return false")
	}
}

func TestValidFormats_Sorted(t *testing.T) {
	got := strings.Join(ValidFormats(), ",")
	if got != "html,json,markdown" {
		t.Errorf("got %q", got)
	}
}

func TestHTMLRenderer(t *testing.T) {
	res, req := sample(t)
	out, err := HTMLRenderer{}.Render(res, req)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if out != res.Markup+"\n" {
		t.Errorf("got %q", out)
	}
}

func TestJSONRenderer(t *testing.T) {
	res, req := sample(t)
	out, err := JSONRenderer{}.Render(res, req)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	var parsed map[string]any
	if err := json.Unmarshal([]byte(out), &parsed); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if parsed["url"] != res.URL {
		t.Errorf("url: got %v", parsed["url"])
	}
	if parsed["width"] != float64(800) {
		t.Errorf("width: got %v", parsed["width"])
	}
	if parsed["show_toolbar"] != true {
		t.Errorf("show_toolbar: got %v", parsed["show_toolbar"])
	}
	if parsed["markup"] != res.Markup {
		t.Errorf("markup: got %v", parsed["markup"])
	}
}

func TestMarkdownRenderer(t *testing.T) {
	res, req := sample(t)
	out, _ := MarkdownRenderer{}.Render(res, req)
	if !strings.HasPrefix(out, "### Embed 800x450 (toolbar shown)") {
		t.Errorf("heading: got %q", out)
	}
	if !strings.Contains(out, "```html\n"+res.Markup+"\n```") {
		t.Errorf("fenced block missing:\n%s", out)
	}
}
