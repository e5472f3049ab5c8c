package cmd

import (
	"fmt"
	"strings"

	"qrlog/internal/generate"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(typesCmd)
}

var typesCmd = &cobra.Command{
	Use:   "types",
	Short: "List supported payload types",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%-8s %-8s %-32s %s\n", "KEY", "NAME", "FIELDS", "DESCRIPTION")
		fmt.Fprintln(out, "──────────────────────────────────────────────────────────────────────────")
		for _, t := range generate.ListTypes() {
			fmt.Fprintf(out, "%-8s %-8s %-32s %s\n", t.Key, t.Name, formatFields(t), t.Description)
		}
	},
}

// formatFields lists a type's flags, required ones marked with *.
func formatFields(t generate.TypeProfile) string {
	required := make(map[generate.Field]bool)
	for _, f := range t.Required {
		required[f] = true
	}
	var parts []string
	for _, f := range t.Fields {
		if required[f] {
			parts = append(parts, string(f)+"*")
		} else {
			parts = append(parts, string(f))
		}
	}
	return strings.Join(parts, ", ")
}
