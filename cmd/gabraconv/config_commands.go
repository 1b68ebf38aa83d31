package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"gabraconv/internal/cleaner"
	"gabraconv/internal/config"
	"gabraconv/internal/export"
	"gabraconv/internal/pipeline"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration utilities",
	}

	configCmd.AddCommand(newConfigValidateCommand(ctx))
	configCmd.AddCommand(newConfigInitCommand())

	return configCmd
}

func newConfigInitCommand() *cobra.Command {
	var targetPath string
	var overwrite bool

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Create a sample configuration file",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			target := strings.TrimSpace(targetPath)
			var err error
			if target == "" {
				if target, err = config.DefaultConfigPath(); err != nil {
					return fmt.Errorf("determine default config path: %w", err)
				}
			} else if target, err = config.ExpandPath(target); err != nil {
				return fmt.Errorf("resolve config path: %w", err)
			}

			if !overwrite {
				if _, err := os.Stat(target); err == nil {
					return fmt.Errorf("config file already exists at %s (use --overwrite to replace it)", target)
				} else if !errors.Is(err, fs.ErrNotExist) {
					return fmt.Errorf("check config path: %w", err)
				}
			}

			if err := config.CreateSample(target); err != nil {
				return fmt.Errorf("create sample config: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote sample configuration to %s\n", target)
			fmt.Fprintln(out, "Edit the cleaner chains before converting; `gabraconv cleaners` lists the catalogue.")
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetPath, "path", "p", "", "Destination for the configuration file")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite existing configuration if present")
	return cmd
}

func newConfigValidateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file and cleaner chains",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if err := checkKind(pipeline.LexemeKind, cfg.Lexemes); err != nil {
				return err
			}
			if err := checkKind(pipeline.WordformKind, cfg.Wordforms); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Config path: %s\n", ctx.configPath)
			if !ctx.configExists {
				fmt.Fprintln(out, "Config file did not exist; defaults were used")
			}
			fmt.Fprintf(out, "Lexeme chain: %s -> %s\n", joinOrDash(cfg.Lexemes.Cleaners), cfg.Lexemes.Exporter)
			fmt.Fprintf(out, "Wordform chain: %s -> %s\n", joinOrDash(cfg.Wordforms.Cleaners), cfg.Wordforms.Exporter)
			fmt.Fprintln(out, "Configuration valid")
			return nil
		},
	}
}

// checkKind resolves one configured chain against the registries.
func checkKind(kind string, k config.Kind) error {
	var infos []cleaner.Info
	var exporter export.Info
	var err error
	switch kind {
	case pipeline.LexemeKind:
		var cleaners []cleaner.Lexeme
		if cleaners, err = cleaner.SelectLexeme(k.Cleaners); err != nil {
			return fmt.Errorf("%s: %w", kind, err)
		}
		infos = cleaner.Infos(cleaners)
		exporter, err = export.LookupLexeme(k.Exporter)
	default:
		var cleaners []cleaner.Wordform
		if cleaners, err = cleaner.SelectWordform(k.Cleaners); err != nil {
			return fmt.Errorf("%s: %w", kind, err)
		}
		infos = cleaner.Infos(cleaners)
		exporter, err = export.LookupWordform(k.Exporter)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", kind, err)
	}
	if missing := export.MissingCleaners(exporter, cleaner.IDs(infos)); len(missing) > 0 {
		return fmt.Errorf("%s: exporter %s requires cleaners: %s", kind, exporter.ID, strings.Join(missing, ", "))
	}
	if err := cleaner.ValidateChain(infos); err != nil {
		return fmt.Errorf("%s: %w", kind, err)
	}
	return nil
}
