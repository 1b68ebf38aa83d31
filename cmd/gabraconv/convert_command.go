package main

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"gabraconv/internal/config"
	"gabraconv/internal/convert"
	"gabraconv/internal/faults"
	"gabraconv/internal/logging"
)

type convertFlags struct {
	dump             string
	out              string
	workDir          string
	lexemeCleaners   []string
	wordformCleaners []string
	lexemeExporter   string
	wordformExporter string
	check            bool
}

func newConvertCommand(ctx *commandContext) *cobra.Command {
	var flags convertFlags

	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert a Ġabra dump archive into CSV tables",
		Long: "Extract a mongodump archive of the Ġabra database, run each row through the\n" +
			"configured cleaner chain, and write the surviving rows to --out.\n" +
			"The output directory must not exist.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			local, err := applyConvertFlags(cmd, *cfg, flags)
			if err != nil {
				return err
			}

			dump, err := config.ExpandPath(strings.TrimSpace(flags.dump))
			if err != nil {
				return faults.Wrap(faults.ErrConfiguration, "config", "dump", "", err)
			}
			opts := convert.OptionsFromConfig(&local, dump)

			out := cmd.OutOrStdout()
			if flags.check {
				if err := convert.Validate(opts); err != nil {
					return err
				}
				fmt.Fprintf(out, "Conversion of %s into %s is valid\n", dump, opts.OutDir)
				return nil
			}

			opts.RunID = uuid.NewString()
			if opts.Logger, err = newRunLogger(&local, opts.RunID); err != nil {
				return err
			}
			opts.Listener = newProgressPrinter(out, shouldRenderProgress(out))

			summary, err := convert.Run(cmd.Context(), opts)
			if err != nil {
				opts.Logger.Error("conversion failed",
					logging.String("category", faults.Category(err)),
					logging.Error(err),
				)
				return err
			}
			fmt.Fprint(out, renderSummary(summary))
			return nil
		},
	}

	cmd.Flags().StringVar(&flags.dump, "dump", "", "Path to the Ġabra dump (.tar.gz)")
	cmd.Flags().StringVar(&flags.out, "out", "", "Output directory (overrides paths.out_dir)")
	cmd.Flags().StringVar(&flags.workDir, "work-dir", "", "Scratch directory for the extracted dump (overrides paths.work_dir)")
	cmd.Flags().StringSliceVar(&flags.lexemeCleaners, "lexeme-cleaners", nil, "Comma-separated lexeme cleaner ids, in order")
	cmd.Flags().StringSliceVar(&flags.wordformCleaners, "wordform-cleaners", nil, "Comma-separated wordform cleaner ids, in order")
	cmd.Flags().StringVar(&flags.lexemeExporter, "lexeme-exporter", "", "Lexeme exporter id")
	cmd.Flags().StringVar(&flags.wordformExporter, "wordform-exporter", "", "Wordform exporter id")
	cmd.Flags().BoolVar(&flags.check, "check", false, "Validate the request without converting")
	_ = cmd.MarkFlagRequired("dump")

	return cmd
}

// applyConvertFlags layers explicitly set flags over cfg and revalidates.
func applyConvertFlags(cmd *cobra.Command, cfg config.Config, flags convertFlags) (config.Config, error) {
	changed := cmd.Flags().Changed
	if changed("out") {
		cfg.Paths.OutDir = flags.out
	}
	if changed("work-dir") {
		cfg.Paths.WorkDir = flags.workDir
	}
	if changed("lexeme-cleaners") {
		cfg.Lexemes.Cleaners = append([]string(nil), flags.lexemeCleaners...)
	}
	if changed("wordform-cleaners") {
		cfg.Wordforms.Cleaners = append([]string(nil), flags.wordformCleaners...)
	}
	if changed("lexeme-exporter") {
		cfg.Lexemes.Exporter = flags.lexemeExporter
	}
	if changed("wordform-exporter") {
		cfg.Wordforms.Exporter = flags.wordformExporter
	}
	if err := reload(&cfg); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}
