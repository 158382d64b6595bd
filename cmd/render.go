package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jsphweid/eartrainer/constants"
	"github.com/jsphweid/eartrainer/midi"
	"github.com/spf13/cobra"
)

var (
	renderDifficulty string
	renderOut        string
	renderSeed       int64
)

func init() {
	renderCmd.Flags().StringVar(&renderDifficulty, "difficulty", "", "interval difficulty (easy, medium, hard)")
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "", "output file (defaults to <out dir>/<drill>.mid)")
	renderCmd.Flags().Int64Var(&renderSeed, "seed", 0, "random seed (0 uses the clock)")
	rootCmd.AddCommand(renderCmd)
}

var renderCmd = &cobra.Command{
	Use:   "render <drill>",
	Short: "Writes one prompt to a MIDI file",
	Long:  `Generates one prompt for a drill and writes its cues to a MIDI file.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return render(args[0])
	},
}

func render(drill string) error {
	tr, err := newTrainer(renderSeed)
	if err != nil {
		return err
	}
	prompt, err := tr.Generate(drill, renderDifficulty)
	if err != nil {
		return err
	}

	path := renderOut
	if path == "" {
		dir := constants.GetOutDir()
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
		name := filepath.Base(prompt.Drill)
		path = filepath.Join(dir, fmt.Sprintf("%v-%v.mid", prompt.Category, name))
	}
	if err := midi.WriteCueFile(path, prompt.Cues); err != nil {
		return err
	}

	fmt.Printf("Wrote %v\n", path)
	fmt.Printf("Candidates: %v\n", prompt.Candidates)
	fmt.Printf("Answer: %v\n", prompt.Correct)
	return nil
}
