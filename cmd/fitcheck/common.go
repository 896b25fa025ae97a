package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dshills/fitcheck/internal/assessment"
	"github.com/dshills/fitcheck/internal/config"
	"github.com/dshills/fitcheck/internal/logging"
	"github.com/dshills/fitcheck/internal/render"
	"github.com/dshills/fitcheck/internal/schema"
)

const toolName = "fitcheck"

// Exit codes.
const (
	exitGeneric    = 1
	exitFailOn     = 2
	exitInput      = 3
	exitValidation = 5
)

type exitErr struct {
	code int
	msg  string
}

func (e *exitErr) Error() string { return e.msg }

func exitError(code int, format string, args ...any) error {
	return &exitErr{code: code, msg: fmt.Sprintf(format, args...)}
}

// setup loads configuration and builds the logger for a command.
func setup(rf *rootFlags) (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(rf.configPath)
	if err != nil {
		return nil, nil, exitError(exitInput, "failed to load config: %v", err)
	}
	level := cfg.Log.Level
	if rf.verbose {
		level = "debug"
	}
	log, err := logging.New(level, cfg.Log.Format)
	if err != nil {
		return nil, nil, exitError(exitGeneric, "failed to build logger: %v", err)
	}
	return cfg, log, nil
}

// stringFlag returns the flag value when it was set on the command line and
// the configured value otherwise.
func stringFlag(cmd *cobra.Command, name, flagValue, configured string) string {
	if cmd.Flags().Changed(name) {
		return flagValue
	}
	return configured
}

// isValidationFailure reports whether err means the responses themselves are malformed.
func isValidationFailure(err error) bool {
	var ve *assessment.ValidationError
	return errors.As(err, &ve) || errors.Is(err, schema.ErrDocument) || errors.Is(err, assessment.ErrDivisionUndefined)
}

// classifyScoringError maps scoring failures onto exit codes.
func classifyScoringError(err error) error {
	if isValidationFailure(err) {
		return exitError(exitValidation, "invalid responses: %v", err)
	}
	return exitError(exitGeneric, "scoring failed: %v", err)
}

// writeResult renders res in format and writes it to out, or stdout when out is empty.
func writeResult(cmd *cobra.Command, log *zap.Logger, res *assessment.Result, format, out string) error {
	var output string
	switch format {
	case "json":
		data, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal output: %w", err)
		}
		output = string(data) + "\n"
	case "md":
		output = render.Markdown(res)
	default:
		return exitError(exitInput, "unknown format: %s", format)
	}

	if out != "" {
		log.Debug("writing output", zap.String("path", out))
		if err := os.WriteFile(out, []byte(output), 0o644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}
	_, err := fmt.Fprint(cmd.OutOrStdout(), output)
	return err
}

// meetsFailOn reports whether rec is at or below the failOn tier.
func meetsFailOn(rec assessment.Recommendation, failOn string) bool {
	threshold := map[string]int{
		"potential": assessment.RecommendationPotentialFit.Level(),
		"poor":      assessment.RecommendationPoorFit.Level(),
	}
	tl, ok := threshold[failOn]
	if !ok {
		return false
	}
	return rec.Level() >= tl
}

func checkFailOn(res *assessment.Result, failOn string) error {
	if meetsFailOn(res.Recommendation, failOn) {
		return exitError(exitFailOn, "recommendation %s meets fail threshold %s", res.Recommendation, failOn)
	}
	return nil
}
