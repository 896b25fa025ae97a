package main

import (
	"errors"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dshills/fitcheck/internal/instrument"
	"github.com/dshills/fitcheck/internal/logging"
	"github.com/dshills/fitcheck/internal/session"
	"github.com/dshills/fitcheck/internal/tui"
)

type takeFlags struct {
	format         string
	out            string
	instrumentName string
	failOn         string
}

func newTakeCmd(rf *rootFlags) *cobra.Command {
	f := &takeFlags{}

	cmd := &cobra.Command{
		Use:   "take",
		Short: "Take the assessment interactively in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTake(cmd, rf, f)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.format, "format", "md", "Output format: json or md")
	flags.StringVar(&f.out, "out", "", "Output file path (default: stdout)")
	flags.StringVar(&f.instrumentName, "instrument", instrument.DefaultName, "Built-in instrument name or path to an instrument YAML file")
	flags.StringVar(&f.failOn, "fail-on", "none", "Exit 2 if the recommendation is at or below this tier: potential or poor")

	return cmd
}

func runTake(cmd *cobra.Command, rf *rootFlags, f *takeFlags) error {
	cfg, log, err := setup(rf)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	failOn := stringFlag(cmd, "fail-on", f.failOn, cfg.FailOn)
	instName := stringFlag(cmd, "instrument", f.instrumentName, cfg.Instrument)

	inst, err := instrument.Load(instName)
	if err != nil {
		return exitError(exitInput, "failed to load instrument: %v", err)
	}

	sess := session.New(inst)
	log.Debug("starting interactive session", zap.String("session", sess.ID), zap.String("instrument", inst.Name))

	// Interactive answers are always complete, so scoring is strict.
	// Logging stays quiet while the terminal UI owns the screen.
	tuiLog := logging.Nop()
	if rf.verbose {
		tuiLog = log
	}
	res, err := tui.Run(sess, inst.Engine(true), tuiLog)
	if errors.Is(err, tui.ErrAbandoned) {
		log.Debug("session abandoned", zap.String("session", sess.ID))
		return nil
	}
	if err != nil {
		return classifyScoringError(err)
	}
	res.Tool = toolName
	res.Version = version
	res.Instrument = inst.Name
	res.Input.Strict = true

	if err := writeResult(cmd, log, res, f.format, f.out); err != nil {
		return err
	}
	return checkFailOn(res, failOn)
}
