package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"newsdeck/internal/logging"
	"newsdeck/internal/site"
)

func newCountCommand(global *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "count DIR",
		Args:  cobra.ExactArgs(1),
		Short: "Write the page count manifest of a site directory",
		Long: `Count the pageN.html files of a site directory and write the page count
manifest the reader uses instead of probing.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := global.loadConfig()
			if err != nil {
				return err
			}
			setupConsoleLog(cfg)

			root, err := filepath.Abs(args[0])
			if err != nil {
				return fmt.Errorf("resolve %s: %w", args[0], err)
			}

			opts := sourceOptions(cfg)
			total, err := site.WriteManifest(afero.NewOsFs(), root, opts)
			if err != nil {
				return err
			}

			log := logging.NewLogger("count")
			log.Info().
				Str("root", root).
				Int("total_pages", total).
				Msg("manifest written")
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d pages\n", filepath.Join(root, filepath.FromSlash(opts.Manifest)), total)
			return nil
		},
	}
}
