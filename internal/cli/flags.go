package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/geoembed/geoembed/internal/config"
	"github.com/geoembed/geoembed/internal/embed"
	"github.com/geoembed/geoembed/internal/render"
)

// embedFlags are the dialog fields shared by build, batch and watch.
type embedFlags struct {
	width   string
	height  string
	toolbar bool
	format  string
}

func (f *embedFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.width, "width", "W", "", "iframe width in pixels (default from config)")
	cmd.Flags().StringVarP(&f.height, "height", "H", "", "iframe height in pixels (default from config)")
	cmd.Flags().BoolVar(&f.toolbar, "toolbar", false, "show the GeoGebra menu bar and tool bar")
	cmd.Flags().StringVarP(&f.format, "format", "f", "", "output format: "+strings.Join(render.ValidFormats(), ", "))
}

// resolve fills unset flags from the config defaults.
func (f embedFlags) resolve(cmd *cobra.Command, cfg config.GlobalConfig) embedFlags {
	out := f
	if !cmd.Flags().Changed("width") {
		out.width = strconv.Itoa(cfg.Defaults.Width)
	}
	if !cmd.Flags().Changed("height") {
		out.height = strconv.Itoa(cfg.Defaults.Height)
	}
	if !cmd.Flags().Changed("toolbar") {
		out.toolbar = cfg.Defaults.ShowToolbar
	}
	if out.format == "" {
		out.format = cfg.Output.Format
	}
	out.format = strings.ToLower(out.format)
	return out
}

func (f embedFlags) form(snippet string) embed.FormInput {
	return embed.FormInput{
		Snippet:     snippet,
		Width:       f.width,
		Height:      f.height,
		ShowToolbar: f.toolbar,
	}
}

func lookupRenderer(format string) (render.Renderer, error) {
	r, ok := render.Get(strings.ToLower(format))
	if !ok {
		return nil, fmt.Errorf("unknown format %q; valid formats: %s",
			format, strings.Join(render.ValidFormats(), ", "))
	}
	return r, nil
}

// renderEmbed validates the fields, builds the embed and renders it.
func renderEmbed(in embed.FormInput, format string) (string, error) {
	renderer, err := lookupRenderer(format)
	if err != nil {
		return "", err
	}
	req, err := embed.ParseForm(in)
	if err != nil {
		return "", describeFieldErrors(err)
	}
	res, err := embed.Build(req)
	if err != nil {
		return "", describeFieldErrors(&embed.FieldError{Field: "snippet", Err: err})
	}
	return renderer.Render(res, req)
}

// fieldErrors keeps the wrapped validation errors reachable through
// errors.Is while printing one field per line.
type fieldErrors struct {
	err    error
	fields []*embed.FieldError
}

func (e *fieldErrors) Error() string {
	if len(e.fields) == 1 {
		return e.fields[0].Error()
	}
	var sb strings.Builder
	sb.WriteString("invalid embed settings:")
	for _, f := range e.fields {
		sb.WriteString("\n  - ")
		sb.WriteString(f.Error())
	}
	return sb.String()
}

func (e *fieldErrors) Unwrap() error { return e.err }

func describeFieldErrors(err error) error {
	var fe *embed.FieldError
	if !errors.As(err, &fe) {
		return err
	}
	return &fieldErrors{err: err, fields: embed.Fields(err)}
}
