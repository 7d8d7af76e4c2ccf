package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/bobinette/raddaran/paper"
)

func init() {
	RootCmd.AddCommand(&TemplatesCommand)
}

var TemplatesCommand = cobra.Command{
	Use:   "templates",
	Short: "List the paper templates",
	Long:  "List the templates papers can be generated from, with their sections and citation format",
	Run: func(cmd *cobra.Command, args []string) {
		for _, t := range paper.Templates() {
			cmd.Printf("%s (%s)\n", t.Key, t.CitationFormat)
			cmd.Printf("  %s\n", strings.Join(t.Sections, ", "))
		}
	},
}
