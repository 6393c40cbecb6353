package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "nutririsk",
	Short: "Malnutrition risk assessment",
	Long: "nutririsk encodes household and child-health answers into a feature vector " +
		"and classifies them as High, Moderate or Low malnutrition risk using a pre-trained model.",
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to config file (overrides NUTRIRISK_CONFIG env var)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(assessCmd)
	rootCmd.AddCommand(formCmd)
	rootCmd.AddCommand(versionCmd)
}
