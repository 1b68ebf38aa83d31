package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"gabraconv/internal/cleaner"
	"gabraconv/internal/export"
	"gabraconv/internal/pipeline"
)

func newCleanersCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "cleaners",
		Short:       "List the registered cleaners",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, cleanerTable(pipeline.LexemeKind, cleaner.Infos(cleaner.LexemeCleaners())).render())
			fmt.Fprintln(out, cleanerTable(pipeline.WordformKind, cleaner.Infos(cleaner.WordformCleaners())).render())
			return nil
		},
	}
}

func cleanerTable(kind string, infos []cleaner.Info) tableView {
	view := tableView{
		title:   kind + " cleaners",
		headers: []string{"ID", "Requires", "Description"},
	}
	for _, info := range infos {
		view.rows = append(view.rows, []string{info.ID, joinOrDash(info.Requires), info.Description})
	}
	return view
}

func newExportersCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "exporters",
		Short:       "List the registered exporters",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			view := tableView{
				title:   "exporters",
				headers: []string{"Kind", "ID", "Required cleaners", "Description"},
			}
			view.rows = appendExporterRows(view.rows, pipeline.LexemeKind, export.LexemeExporters())
			view.rows = appendExporterRows(view.rows, pipeline.WordformKind, export.WordformExporters())
			fmt.Fprintln(cmd.OutOrStdout(), view.render())
			return nil
		},
	}
}

func appendExporterRows(rows [][]string, kind string, infos []export.Info) [][]string {
	for _, info := range infos {
		rows = append(rows, []string{kind, info.ID, joinOrDash(info.RequiredCleaners), info.Description})
	}
	return rows
}
