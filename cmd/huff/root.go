package main

import (
	"io"

	"github.com/seiflotfy/huff/internal/logger"
	"github.com/seiflotfy/huff/internal/metrics"
	"github.com/spf13/cobra"
)

// app carries the state shared by all subcommands of one invocation.
type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	verbose     bool
	metricsFile string

	log     logger.Logger
	metrics *metrics.Recorder
}

// run executes the command line and returns the process exit status.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	a := &app{
		stdin:   stdin,
		stdout:  stdout,
		stderr:  stderr,
		log:     logger.New(stderr, false),
		metrics: metrics.New(),
	}
	root := a.rootCommand()
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.Execute()
	if a.metricsFile != "" {
		if werr := a.metrics.WriteTextfile(a.metricsFile); werr != nil {
			a.log.Errorf("write metrics to %s: %v", a.metricsFile, werr)
			if err == nil {
				err = werr
			}
		} else {
			a.log.Infof("metrics written to %s", a.metricsFile)
		}
	}
	if err != nil {
		a.log.Errorf("%v", err)
	}
	_ = a.log.Sync()
	if err != nil {
		return 1
	}
	return 0
}

func (a *app) rootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "huff",
		Short:         "Static Huffman file compressor",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			a.log = logger.New(a.stderr, a.verbose)
		},
	}
	cmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log per-file details")
	cmd.PersistentFlags().StringVar(&a.metricsFile, "metrics-file", "", "write Prometheus metrics in text format to this file on exit")

	cmd.AddCommand(a.encodeCommand(), a.decodeCommand(), a.inspectCommand())
	return cmd
}
