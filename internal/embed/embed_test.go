package embed

import (
	"errors"
	"strings"
	"testing"
)

const sampleSnippet = `<iframe src="https://example.com/m/width/640/height/360/smb/false/stb/false/"></iframe>`

func TestExtractSource(t *testing.T) {
	tests := []struct {
		name    string
		snippet string
		want    string
		wantErr bool
	}{
		{"iframe", `<iframe src="https://www.geogebra.org/material/iframe/id/1/" width="10"></iframe>`, "https://www.geogebra.org/material/iframe/id/1/", false},
		{"first wins", `<iframe src="a"></iframe><img src="b">`, "a", false},
		{"multiline", "<iframe\n  scrolling=\"no\"\n  src=\"https://x/y/\">\n</iframe>", "https://x/y/", false},
		{"no src", `<iframe width="640"></iframe>`, "", true},
		{"empty src", `<iframe src=""></iframe>`, "", true},
		{"empty src skipped", `<img src=""><iframe src="https://x/width/1/"></iframe>`, "https://x/width/1/", false},
		{"single quotes", `<iframe src='https://x/'></iframe>`, "", true},
		{"empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractSource(tt.snippet)
			if tt.wantErr {
				if !errors.Is(err, ErrParse) {
					t.Fatalf("expected ErrParse, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRewriteWidth(t *testing.T) {
	tests := []struct {
		url   string
		width int
		want  string
	}{
		{"https://x/width/640/h/", 800, "https://x/width/800/h/"},
		{"https://x/width/640/", 800, "https://x/width/800/"},
		{"https://x/width/640", 800, "https://x/width/640"},
		{"https://x/width/abc/", 800, "https://x/width/abc/"},
		{"https://x/id/1/", 800, "https://x/id/1/"},
		{"https://x/width/640/", 0, "https://x/width/640/"},
		{"https://x/width/640/", -5, "https://x/width/640/"},
		{"https://x/width/1/a/width/2/", 9, "https://x/width/9/a/width/9/"},
		{"https://x/a/?width/640/", 800, "https://x/a/?width/640/"},
	}

	for _, tt := range tests {
		got := RewriteWidth(tt.url, tt.width)
		if got != tt.want {
			t.Errorf("RewriteWidth(%q, %d) = %q, want %q", tt.url, tt.width, got, tt.want)
		}
	}
}

func TestRewriteHeight(t *testing.T) {
	got := RewriteHeight("https://x/width/640/height/360/", 450)
	want := "https://x/width/640/height/450/"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRewrite_Idempotent(t *testing.T) {
	urls := []string{
		"https://example.com/m/width/640/height/360/smb/false/stb/false/",
		"https://example.com/plain",
		"//cdn.example.com/width/1/height/2/",
	}
	for _, u := range urls {
		once := RewriteHeight(RewriteWidth(u, 800), 450)
		twice := RewriteHeight(RewriteWidth(once, 800), 450)
		if once != twice {
			t.Errorf("not idempotent for %q: %q != %q", u, once, twice)
		}
		tb := RewriteToolbar(once, true)
		if RewriteToolbar(tb, true) != tb {
			t.Errorf("toolbar rewrite not idempotent for %q", u)
		}
	}
}

func TestRewriteToolbar(t *testing.T) {
	u := "https://x/smb/false/stb/0/sri/true/"

	if got := RewriteToolbar(u, true); got != "https://x/smb/true/stb/true/sri/true/" {
		t.Errorf("show: got %q", got)
	}
	if got := RewriteToolbar(u, false); got != u {
		t.Errorf("hide should leave URL unchanged, got %q", got)
	}
	if got := RewriteToolbar("https://x/id/1/", true); got != "https://x/id/1/" {
		t.Errorf("absent segments must not be injected, got %q", got)
	}
}

func TestBuild_Example(t *testing.T) {
	res, err := Build(Request{
		Snippet:     sampleSnippet,
		Width:       800,
		Height:      450,
		ShowToolbar: true,
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if res.Source != "https://example.com/m/width/640/height/360/smb/false/stb/false/" {
		t.Errorf("source: got %q", res.Source)
	}
	if !strings.Contains(res.URL, "/width/800/height/450/smb/true/stb/true/") {
		t.Errorf("url: got %q", res.URL)
	}

	want := `<iframe scrolling="no" src="https://example.com/m/width/800/height/450/smb/true/stb/true/" width="800px" height="450px" style="border:0px;"></iframe>`
	if res.Markup != want {
		t.Errorf("markup:\n got %s\nwant %s", res.Markup, want)
	}
}

func TestBuild_ToolbarOffKeepsSegments(t *testing.T) {
	res, err := Build(Request{Snippet: sampleSnippet, Width: 800, Height: 450})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !strings.Contains(res.URL, "/smb/false/stb/false/") {
		t.Errorf("toolbar segments changed: %q", res.URL)
	}
}

func TestBuild_NoSource(t *testing.T) {
	_, err := Build(Request{Snippet: "<div>nothing here</div>", Width: 1, Height: 1})
	if !errors.Is(err, ErrParse) {
		t.Fatalf("expected ErrParse, got %v", err)
	}
}
