package mcp

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/geoembed/geoembed/internal/embed"
	"github.com/geoembed/geoembed/internal/render"
)

func (s *Server) handleBuildEmbed(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	snippet, err := req.RequireString("snippet")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: snippet"), nil
	}

	format := req.GetString("format", s.cfg.Output.Format)
	renderer, ok := render.Get(strings.ToLower(format))
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("unknown format %q (valid: %s)",
			format, strings.Join(render.ValidFormats(), ", "))), nil
	}

	in := embed.FormInput{
		Snippet:     snippet,
		Width:       argText(req, "width", s.cfg.Defaults.Width),
		Height:      argText(req, "height", s.cfg.Defaults.Height),
		ShowToolbar: req.GetBool("show_toolbar", s.cfg.Defaults.ShowToolbar),
	}

	r, err := embed.ParseForm(in)
	if err != nil {
		return fieldErrorResult(err), nil
	}
	res, err := embed.Build(r)
	if err != nil {
		return fieldErrorResult(&embed.FieldError{Field: "snippet", Err: err}), nil
	}

	out, err := renderer.Render(res, r)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to render: %v", err)), nil
	}
	s.logger.Debug("built embed", "url", res.URL, "format", format)
	return mcp.NewToolResultText(out), nil
}

func (s *Server) handleInspectSnippet(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	snippet, err := req.RequireString("snippet")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: snippet"), nil
	}

	src, err := embed.ExtractSource(snippet)
	if err != nil {
		return fieldErrorResult(&embed.FieldError{Field: "snippet", Err: err}), nil
	}
	loc := embed.ParseLocation(src)

	var sb strings.Builder
	fmt.Fprintf(&sb, "Source: %s\n", src)
	for _, key := range []string{embed.KeyWidth, embed.KeyHeight, embed.KeyMenuBar, embed.KeyToolBar} {
		if v, ok := loc.Value(key); ok {
			fmt.Fprintf(&sb, "%-7s %s\n", key+":", v)
		} else {
			fmt.Fprintf(&sb, "%-7s (not set)\n", key+":")
		}
	}
	return mcp.NewToolResultText(sb.String()), nil
}

// argText returns a width/height argument as the raw field text. Clients
// send either strings or JSON numbers; both go through the same validation.
func argText(req mcp.CallToolRequest, key string, def int) string {
	v, ok := req.GetArguments()[key]
	if !ok || v == nil {
		return strconv.Itoa(def)
	}
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case int:
		return strconv.Itoa(x)
	}
	return fmt.Sprint(v)
}

func fieldErrorResult(err error) *mcp.CallToolResult {
	var lines []string
	for _, f := range embed.Fields(err) {
		lines = append(lines, f.Error())
	}
	return mcp.NewToolResultError(strings.Join(lines, "\n"))
}
