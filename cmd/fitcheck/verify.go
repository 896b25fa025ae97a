package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dshills/fitcheck/internal/assessment"
	"github.com/dshills/fitcheck/internal/schema"
)

func newVerifyCmd(rf *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "verify <result.json>",
		Short: "Check that a results file is internally consistent",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVerify(cmd, rf, args[0])
		},
	}
}

func runVerify(cmd *cobra.Command, rf *rootFlags, path string) error {
	_, log, err := setup(rf)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	data, err := os.ReadFile(path)
	if err != nil {
		return exitError(exitInput, "failed to read result: %v", err)
	}
	var res assessment.Result
	if err := json.Unmarshal(data, &res); err != nil {
		return exitError(exitInput, "failed to parse result as JSON: %v", err)
	}

	errs := schema.ValidateResult(&res)
	log.Debug("verified result", zap.String("path", path), zap.Int("errors", len(errs)))
	if len(errs) > 0 {
		stderr := cmd.ErrOrStderr()
		for _, e := range errs {
			fmt.Fprintf(stderr, "  %s\n", e)
		}
		return exitError(exitValidation, "%s: %d inconsistencies", path, len(errs))
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (overall %d, %s)\n", path, res.Overall, res.Recommendation)
	return err
}
