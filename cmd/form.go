package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"nutririsk/assessment"
)

var formCmd = &cobra.Command{
	Use:   "form",
	Short: "List the assessment form fields, their options and bounds",
	RunE: func(cmd *cobra.Command, args []string) error {
		fields := assessment.Fields()
		asJSON, _ := cmd.Flags().GetBool("json")
		if asJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(fields)
		}

		heading := lipgloss.NewStyle().Bold(true).Underline(true)
		out := cmd.OutOrStdout()
		section := ""
		for i, f := range fields {
			if f.Section != section {
				section = f.Section
				fmt.Fprintln(out, heading.Render(section))
			}
			fmt.Fprintf(out, "  --%-11s %-28s %s\n", assessFlags[i].flag, f.Label, describeDomain(f))
		}
		return nil
	},
}

func init() {
	formCmd.Flags().Bool("json", false, "Print field descriptors as JSON")
}

func describeDomain(f assessment.Field) string {
	if len(f.Options) > 0 {
		return fmt.Sprintf("{%s} default %v", strings.Join(f.Options, ", "), f.Default)
	}
	if f.Integer() {
		return fmt.Sprintf("[%d, %d] default %v", int(f.Bounds.Min), int(f.Bounds.Max), f.Default)
	}
	return fmt.Sprintf("[%.1f, %.1f] step %.1f default %v", f.Bounds.Min, f.Bounds.Max, f.Bounds.Step, f.Default)
}
