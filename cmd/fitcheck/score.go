package main

import (
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dshills/fitcheck/internal/instrument"
	"github.com/dshills/fitcheck/internal/record"
)

type scoreFlags struct {
	format         string
	out            string
	instrumentName string
	permissive     bool
	failOn         string
}

func newScoreCmd(rf *rootFlags) *cobra.Command {
	f := &scoreFlags{}

	cmd := &cobra.Command{
		Use:   "score <responses-file>",
		Short: "Score a YAML or JSON response document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScore(cmd, rf, f, args[0])
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.format, "format", "json", "Output format: json or md")
	flags.StringVar(&f.out, "out", "", "Output file path (default: stdout)")
	flags.StringVar(&f.instrumentName, "instrument", instrument.DefaultName, "Built-in instrument name or path to an instrument YAML file")
	flags.BoolVar(&f.permissive, "permissive", false, "Average responses as given instead of rejecting malformed documents")
	flags.StringVar(&f.failOn, "fail-on", "none", "Exit 2 if the recommendation is at or below this tier: potential or poor")

	return cmd
}

func runScore(cmd *cobra.Command, rf *rootFlags, f *scoreFlags, path string) error {
	cfg, log, err := setup(rf)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	format := stringFlag(cmd, "format", f.format, cfg.Format)
	failOn := stringFlag(cmd, "fail-on", f.failOn, cfg.FailOn)
	instName := stringFlag(cmd, "instrument", f.instrumentName, cfg.Instrument)
	strict := cfg.Strict
	if cmd.Flags().Changed("permissive") {
		strict = !f.permissive
	}

	log.Debug("loading instrument", zap.String("instrument", instName))
	inst, err := instrument.Load(instName)
	if err != nil {
		return exitError(exitInput, "failed to load instrument: %v", err)
	}

	log.Debug("loading responses", zap.String("path", path), zap.Bool("strict", strict))
	file, err := record.Load(path, inst, strict)
	if err != nil {
		return classifyLoadError(err)
	}
	rec, err := file.Document.Record(inst)
	if err != nil {
		return classifyScoringError(err)
	}

	res, err := inst.Engine(strict).Evaluate(rec)
	if err != nil {
		return classifyScoringError(err)
	}
	res.Tool = toolName
	res.Version = version
	res.AssessmentID = uuid.NewString()
	res.Instrument = inst.Name
	res.Input.RecordFile = filepath.Base(path)
	res.Input.RecordHash = file.Hash
	log.Debug("scored",
		zap.Int("overall", res.Overall),
		zap.String("recommendation", string(res.Recommendation)))

	if err := writeResult(cmd, log, res, format, f.out); err != nil {
		return err
	}
	return checkFailOn(res, failOn)
}

// classifyLoadError separates unreadable input from documents that do not
// match the instrument.
func classifyLoadError(err error) error {
	if isValidationFailure(err) {
		return exitError(exitValidation, "invalid responses: %v", err)
	}
	return exitError(exitInput, "failed to load responses: %v", err)
}
