package cli

import (
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/geoembed/geoembed/internal/batch"
)

func newBatchCmd() *cobra.Command {
	var (
		flags  embedFlags
		outDir string
	)

	cmd := &cobra.Command{
		Use:   "batch <dir>",
		Short: "Convert every saved embed code in a directory",
		Long: `Walk a directory, build an iframe for every snippet file
(by default *.txt and *.snippet) and write the result next to it, or under
--out. Files matched by the directory's .gitignore are skipped.

Examples:
  geoembed batch lessons/
  geoembed batch lessons/ --out public/embeds --width 800 --height 450`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			f := flags.resolve(cmd, cfg)

			opts := batch.Options{
				Root:        args[0],
				OutDir:      outDir,
				Extensions:  cfg.Batch.Extensions,
				OutputExt:   cfg.Batch.OutputExt,
				Format:      f.format,
				Width:       f.width,
				Height:      f.height,
				ShowToolbar: f.toolbar,
			}

			files, err := batch.Discover(opts)
			if err != nil {
				return err
			}
			if len(files) == 0 {
				fmt.Println("No snippet files found.")
				return nil
			}

			bar := progressbar.NewOptions(len(files),
				progressbar.OptionSetDescription("  Converting snippets"),
				progressbar.OptionSetWriter(os.Stderr),
				progressbar.OptionClearOnFinish(),
			)

			sum, err := batch.Convert(opts, files, func(batch.Outcome) {
				_ = bar.Add(1)
			})
			_ = bar.Finish()
			if err != nil {
				return err
			}

			for _, o := range sum.Outcomes {
				if o.Err != nil {
					fmt.Fprintf(os.Stderr, "  %s: %v\n", o.Path, describeFieldErrors(o.Err))
				}
			}
			fmt.Printf("Converted %d of %d snippet(s)\n", sum.Converted, len(files))

			if sum.Failed > 0 {
				return fmt.Errorf("%d snippet(s) failed", sum.Failed)
			}
			return nil
		},
	}

	flags.bind(cmd)
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "directory for rendered embeds (default: next to each snippet)")

	return cmd
}
