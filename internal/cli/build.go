package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/geoembed/geoembed/internal/embed"
)

func newBuildCmd() *cobra.Command {
	var (
		flags   embedFlags
		snippet string
		file    string
		out     string
	)

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build an iframe tag from a GeoGebra embed code",
		Long: `Read a GeoGebra embed code, rewrite the width, height and toolbar
settings in its URL, and print the resulting iframe tag.

The embed code is taken from --snippet, --file, or standard input.

Examples:
  geoembed build --snippet '<iframe src="https://www.geogebra.org/material/iframe/id/1/width/640/height/360/"></iframe>'
  geoembed build --file embed.txt --width 800 --height 450 --toolbar
  pbpaste | geoembed build --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			f := flags.resolve(cmd, cfg)

			isTTY := term.IsTerminal(int(os.Stdin.Fd()))
			text, err := readSnippet(snippet, file, cmd.InOrStdin(), isTTY)
			if err != nil {
				return err
			}

			output, err := renderEmbed(f.form(text), f.format)
			if err != nil {
				return err
			}
			return writeOutput(out, output, cmd.OutOrStdout())
		},
	}

	flags.bind(cmd)
	cmd.Flags().StringVarP(&snippet, "snippet", "s", "", "embed code to convert")
	cmd.Flags().StringVar(&file, "file", "", "read the embed code from a file")
	cmd.Flags().StringVarP(&out, "out", "o", "", "write output to a file instead of stdout")
	cmd.MarkFlagsMutuallyExclusive("snippet", "file")

	return cmd
}

// readSnippet picks the embed code from the flag, the file, or stdin.
// An interactive stdin is never read so the command does not hang.
func readSnippet(flagValue, path string, stdin io.Reader, isTTY bool) (string, error) {
	switch {
	case flagValue != "":
		return flagValue, nil
	case path != "":
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("read embed code: %w", err)
		}
		return string(data), nil
	case !isTTY && stdin != nil:
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	return "", fmt.Errorf("%w: use --snippet, --file, or pipe it on stdin", embed.ErrMissingSnippet)
}

// writeOutput writes text to path, or to w when path is empty.
func writeOutput(path, text string, w io.Writer) error {
	if path == "" || path == "-" {
		_, err := io.WriteString(w, text)
		return err
	}
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	fmt.Fprintf(os.Stderr, "Wrote %s (%d bytes)\n", path, len(text))
	return nil
}
