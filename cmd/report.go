package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/jsphweid/eartrainer/constants"
	"github.com/jsphweid/eartrainer/trainer"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(reportCmd)
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Prints the content tables",
	Long:  `Prints the drills and the content tables they draw from.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		tables, err := trainer.LoadTables(constants.GetTablesPath())
		if err != nil {
			return err
		}
		report(cmd.OutOrStdout(), tables)
		return nil
	},
}

func report(out io.Writer, t *trainer.Tables) {
	fmt.Fprintln(out, "Drills:")
	for _, d := range trainer.Drills() {
		fmt.Fprintf(out, "  %v\n", d.Name)
	}

	fmt.Fprintln(out, "Intervals:")
	for _, iv := range t.Intervals.Intervals() {
		fmt.Fprintf(out, "  %-3v %-12v %2d semitones\n", iv.Code, iv.Label, iv.Semitones)
	}

	fmt.Fprintln(out, "Difficulties:")
	for _, d := range t.Difficulties {
		var codes []string
		for _, iv := range d.Intervals {
			codes = append(codes, iv.Code)
		}
		fmt.Fprintf(out, "  %v: %v\n", d.Name, strings.Join(codes, " "))
	}

	fmt.Fprintln(out, "Chord qualities:")
	for _, q := range t.ChordQualities {
		fmt.Fprintf(out, "  %v %v\n", q.Name, q.Offsets)
	}

	fmt.Fprintln(out, "Guitar voicings:")
	for _, v := range t.GuitarVoicings {
		fmt.Fprintf(out, "  %v %v\n", v.Name, v.Offsets)
	}

	fmt.Fprintln(out, "Strum patterns:")
	for _, s := range t.StrumPatterns {
		fmt.Fprintf(out, "  %v\n", s.Label)
	}

	fmt.Fprintf(out, "Tempo: %v-%v BPM\n", t.Tempo.Min, t.Tempo.Max)

	fmt.Fprintln(out, "Subdivisions:")
	for _, s := range t.Subdivisions {
		fmt.Fprintf(out, "  %v\n", s.Label)
	}

	fmt.Fprintln(out, "Rhythms:")
	for _, r := range t.Rhythms {
		fmt.Fprintf(out, "  %v\n", r.Label)
	}
}
