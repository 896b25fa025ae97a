package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dshills/fitcheck/internal/instrument"
)

type questionsFlags struct {
	instrumentName string
	list           bool
	withKey        bool
}

func newQuestionsCmd(rf *rootFlags) *cobra.Command {
	f := &questionsFlags{}

	cmd := &cobra.Command{
		Use:   "questions",
		Short: "Print an instrument's questions as Markdown",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuestions(cmd, rf, f)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.instrumentName, "instrument", instrument.DefaultName, "Built-in instrument name or path to an instrument YAML file")
	flags.BoolVar(&f.list, "list", false, "List built-in instruments")
	flags.BoolVar(&f.withKey, "key", false, "Mark the correct option of multiple-choice questions")

	return cmd
}

func runQuestions(cmd *cobra.Command, rf *rootFlags, f *questionsFlags) error {
	out := cmd.OutOrStdout()
	if f.list {
		names, err := instrument.List()
		if err != nil {
			return fmt.Errorf("failed to list instruments: %w", err)
		}
		_, err = fmt.Fprintln(out, strings.Join(names, "\n"))
		return err
	}

	cfg, _, err := setup(rf)
	if err != nil {
		return err
	}
	inst, err := instrument.Load(stringFlag(cmd, "instrument", f.instrumentName, cfg.Instrument))
	if err != nil {
		return exitError(exitInput, "failed to load instrument: %v", err)
	}
	_, err = fmt.Fprint(out, instrument.FormatMarkdown(inst, f.withKey))
	return err
}
