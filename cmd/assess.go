package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"nutririsk/assessment"
	"nutririsk/predictor"
)

// assessFlags maps short flag names to record fields.
var assessFlags = []struct {
	flag  string
	field string
}{
	{"education", assessment.FieldParentalEducation},
	{"healthcare", assessment.FieldAccessHealthcare},
	{"water", assessment.FieldCleanWater},
	{"sanitation", assessment.FieldSanitation},
	{"food", assessment.FieldFoodAvailability},
	{"seasonal", assessment.FieldSeasonalVariation},
	{"market", assessment.FieldMarketAccess},
	{"wfa", assessment.FieldWeightForAge},
	{"hfa", assessment.FieldHeightForAge},
	{"wfh", assessment.FieldWeightForHeight},
	{"diversity", assessment.FieldDietaryDiversity},
	{"frequency", assessment.FieldMealFrequency},
}

var assessCmd = &cobra.Command{
	Use:   "assess",
	Short: "Assess one record given on the command line",
	Example: "  nutririsk assess --education Primary --water Yes --wfa -2.1 --hfa -1.4 --wfh -0.8 " +
		"--diversity 3 --frequency 2",
	RunE: func(cmd *cobra.Command, args []string) error {
		record, err := recordFromFlags(cmd)
		if err != nil {
			return err
		}

		rt, err := bootstrap(cmd, nil)
		if err != nil {
			return err
		}
		defer func() { _ = rt.logger.Sync() }()

		result, err := rt.predictor.Assess(cmd.Context(), record)
		if err != nil {
			return err
		}

		asJSON, _ := cmd.Flags().GetBool("json")
		if asJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		}
		return renderAssessment(cmd.OutOrStdout(), result)
	},
}

func init() {
	addRecordFlags(assessCmd)
	assessCmd.Flags().Bool("json", false, "Print the full assessment as JSON")
}

func addRecordFlags(cmd *cobra.Command) {
	fields := assessment.Fields()
	for i, f := range assessFlags {
		cmd.Flags().String(f.flag, fmt.Sprint(fields[i].Default), fields[i].Label)
	}
}

func recordFromFlags(cmd *cobra.Command) (assessment.Record, error) {
	record := assessment.DefaultRecord()
	for _, f := range assessFlags {
		value, err := cmd.Flags().GetString(f.flag)
		if err != nil {
			return record, err
		}
		if err := record.Set(f.field, value); err != nil {
			return record, fmt.Errorf("--%s: %w", f.flag, err)
		}
	}
	return record, nil
}

func renderAssessment(w io.Writer, result predictor.Assessment) error {
	style := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(result.Risk.Hex())).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(result.Risk.Hex())).
		Padding(0, 2)

	_, err := fmt.Fprintln(w, style.Render("⚠ "+result.Risk.Message()))
	return err
}
