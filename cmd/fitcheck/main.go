package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "0.1.0"

type rootFlags struct {
	configPath string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	rf := &rootFlags{}
	root := &cobra.Command{
		Use:           "fitcheck",
		Short:         "Score career-fit assessments and recommend whether to pursue a role",
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.PersistentFlags().StringVar(&rf.configPath, "config", "", "Config file (default: ./fitcheck.yaml if present)")
	root.PersistentFlags().BoolVar(&rf.verbose, "verbose", false, "Log processing steps to stderr")

	root.AddCommand(
		newScoreCmd(rf),
		newTakeCmd(rf),
		newQuestionsCmd(rf),
		newVerifyCmd(rf),
	)
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		var ee *exitErr
		if errors.As(err, &ee) {
			fmt.Fprintln(os.Stderr, ee.msg)
			os.Exit(ee.code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
