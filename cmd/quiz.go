package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jsphweid/eartrainer/constants"
	"github.com/jsphweid/eartrainer/player"
	"github.com/jsphweid/eartrainer/quiz"
	"github.com/jsphweid/eartrainer/trainer"
	"github.com/jsphweid/eartrainer/util"
	"github.com/spf13/cobra"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // autoregisters driver
)

type quizOptions struct {
	drill      string
	difficulty string
	rounds     int
	playerName string
	port       int
	seed       int64
}

var quizOpts quizOptions

func init() {
	f := quizCmd.Flags()
	f.StringVar(&quizOpts.drill, "drill", "piano/interval", "drill to run")
	f.StringVar(&quizOpts.difficulty, "difficulty", "", "interval difficulty (easy, medium, hard)")
	f.IntVar(&quizOpts.rounds, "rounds", 10, "number of rounds, 0 for no limit")
	f.StringVar(&quizOpts.playerName, "player", "midi", "how to play cues: midi, file or none")
	f.IntVar(&quizOpts.port, "port", 0, "MIDI out port number")
	f.Int64Var(&quizOpts.seed, "seed", 0, "random seed (0 uses the clock)")
	rootCmd.AddCommand(quizCmd)
}

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Runs a quiz in the terminal",
	Long: `Runs a quiz in the terminal. Answer with the number of a choice,
"r" to hear the prompt again or "q" to stop.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := trainer.FindDrill(quizOpts.drill); err != nil {
			return err
		}
		tr, err := newTrainer(quizOpts.seed)
		if err != nil {
			return err
		}
		pl, afterPlay, closer, err := openPlayer(quizOpts)
		if err != nil {
			return err
		}
		defer closer()
		return runQuiz(cmd.InOrStdin(), cmd.OutOrStdout(), tr, pl, afterPlay, quizOpts)
	},
}

// openPlayer returns the player plus a hook run after each round's cues
// are handed over.
func openPlayer(opts quizOptions) (player.Player, func(round int), func(), error) {
	noop := func() {}
	switch opts.playerName {
	case "none":
		return player.Nop{}, nil, noop, nil
	case "midi":
		out, err := player.OpenMIDIOut(opts.port)
		if err != nil {
			return nil, nil, noop, err
		}
		return out, nil, func() { out.Close() }, nil
	case "file":
		dir := constants.GetOutDir()
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, nil, noop, err
		}
		rec := &player.Recorder{}
		afterPlay := func(round int) {
			path := filepath.Join(dir, fmt.Sprintf("round-%03d.mid", round))
			if err := rec.WriteFile(path); err != nil {
				fmt.Printf("Could not write %v: %v\n", path, err)
			} else {
				fmt.Printf("Wrote %v\n", path)
			}
			rec.Reset()
		}
		return rec, afterPlay, noop, nil
	}
	return nil, nil, noop, fmt.Errorf("unknown player %q", opts.playerName)
}

func runQuiz(in io.Reader, out io.Writer, tr *trainer.Trainer, pl player.Player, afterPlay func(int), opts quizOptions) error {
	controller := quiz.NewController(quiz.NewSession(trainer.Categories...), quiz.ObserverFunc(func(o quiz.Outcome) {
		if o.IsCorrect {
			fmt.Fprintf(out, "Correct! ")
		} else {
			fmt.Fprintf(out, "Wrong, it was %v. ", o.CorrectLabel)
		}
		fmt.Fprintf(out, "%v score: %v/%v\n", o.Category, o.Tally.Correct, o.Tally.Total)
	}))

	scanner := bufio.NewScanner(in)
	for round := 1; opts.rounds == 0 || round <= opts.rounds; round++ {
		prompt, err := tr.Generate(opts.drill, opts.difficulty)
		if err != nil {
			return err
		}
		if _, err := controller.StartRound(prompt.Category, prompt.Correct, prompt.Candidates); err != nil {
			return err
		}

		play := func() {
			player.Play(pl, prompt.Cues)
			if afterPlay != nil {
				afterPlay(round)
			}
		}
		play()

		fmt.Fprintf(out, "\nRound %v (%v)\n", round, prompt.Drill)
		candidates := controller.Candidates()
		for i, c := range candidates {
			fmt.Fprintf(out, "  %v) %v\n", i+1, c)
		}

		for controller.State() == quiz.Presenting {
			fmt.Fprint(out, "> ")
			if !scanner.Scan() {
				printSummary(out, controller.Session())
				return scanner.Err()
			}
			answer := strings.TrimSpace(scanner.Text())
			switch answer {
			case "q":
				printSummary(out, controller.Session())
				return nil
			case "r":
				play()
				continue
			}
			n, err := strconv.Atoi(answer)
			if err != nil || n < 1 || n > len(candidates) {
				fmt.Fprintf(out, "Pick a number from 1 to %v\n", len(candidates))
				continue
			}
			controller.SelectAnswer(candidates[n-1])
		}
	}
	printSummary(out, controller.Session())
	return nil
}

func printSummary(out io.Writer, s *quiz.Session) {
	tallies := s.Tallies()
	fmt.Fprintln(out, "\nFinal scores")
	for _, cat := range util.GetSortedKeys(tallies) {
		t := tallies[cat]
		if t.Total == 0 {
			continue
		}
		fmt.Fprintf(out, "  %v: %v/%v (%.0f%%)\n", cat, t.Correct, t.Total, t.Accuracy()*100)
	}
}
