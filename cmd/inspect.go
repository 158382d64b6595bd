package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/jsphweid/eartrainer/chord"
	"github.com/jsphweid/eartrainer/midi"
	"github.com/jsphweid/eartrainer/model"
	"github.com/jsphweid/eartrainer/pitch"
	"github.com/spf13/cobra"
)

// notes starting this close together are read as one chord
const chordWindow = 100 * time.Millisecond

func init() {
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <file.mid>",
	Short: "Lists the cues in a MIDI file",
	Long: `Lists the cues in a MIDI file and names every triad whose notes
start within 100ms of the first of them.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := midi.ReadMidiFile(args[0])
		if err != nil {
			return err
		}
		inspect(cmd.OutOrStdout(), midi.Decode(s))
		return nil
	},
}

func inspect(out io.Writer, cues []model.Cue) {
	for _, c := range cues {
		switch c.Kind {
		case model.CueNote:
			fmt.Fprintf(out, "%8.3fs  %-6v %.3fs\n", c.Offset.Seconds(), c.Pitch, c.Duration.Seconds())
		case model.CuePercussive:
			fmt.Fprintf(out, "%8.3fs  %-6v %.3fs\n", c.Offset.Seconds(), c.Percussion, c.Duration.Seconds())
		}
	}

	for _, group := range groupByOnset(cues) {
		notes := make([]pitch.Pitch, 0, len(group))
		for _, c := range group {
			notes = append(notes, c.Pitch)
		}
		if q, inv, ok := chord.Identify(notes, chord.Triads); ok {
			fmt.Fprintf(out, "chord at %.3fs: %v %v (%v)\n", group[0].Offset.Seconds(), q.Name, inv.Label(), chord.CreateChordKey(notes))
		}
	}
}

// groupByOnset splits the note cues of an offset-ordered list into runs
// that start within chordWindow of the run's first note.
func groupByOnset(cues []model.Cue) [][]model.Cue {
	var groups [][]model.Cue
	var current []model.Cue
	for _, c := range cues {
		if c.Kind != model.CueNote {
			continue
		}
		if len(current) > 0 && c.Offset-current[0].Offset > chordWindow {
			groups = append(groups, current)
			current = nil
		}
		current = append(current, c)
	}
	if len(current) > 0 {
		groups = append(groups, current)
	}
	return groups
}
