package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"ell"
	"ell/internal/cliutil"
)

var (
	runParallel int
	runMaxTasks int
)

func init() {
	runCmd.Flags().IntVar(&runParallel, "parallel", 1, "number of independent event loops to run concurrently, one goroutine each")
	runCmd.Flags().IntVar(&runMaxTasks, "max-tasks", 0, "cap on live tasks per loop (0 = unbounded)")
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the built-in producer/consumer demo to completion",
	RunE: func(cmd *cobra.Command, args []string) error {
		colorMode, _ := cmd.Flags().GetString("color")
		quiet, _ := cmd.Flags().GetBool("quiet")
		enableColor := cliutil.ResolveColor(colorMode)

		if runParallel <= 1 {
			return runOne(cmd, 0, enableColor, quiet)
		}

		// Each loop gets its own goroutine: an EventLoop must only ever be
		// driven by the goroutine that created it (thread-affinity
		// invariant), so "parallel" here means N independent loops, not
		// one loop shared across goroutines.
		g := new(errgroup.Group)
		for i := 0; i < runParallel; i++ {
			i := i
			g.Go(func() error {
				return runOne(cmd, i, enableColor, quiet)
			})
		}
		return g.Wait()
	},
}

func runOne(cmd *cobra.Command, index int, enableColor, quiet bool) error {
	var opts []ell.Option
	if runMaxTasks > 0 {
		opts = append(opts, ell.WithMaxTasks(runMaxTasks))
	}
	if !quiet {
		opts = append(opts, ell.WithLog(cliutil.NewColorSink(os.Stdout, enableColor)))
	}

	loop, summary := buildDemoLoop(opts...)
	if err := ell.RunUntilComplete(loop, summary); err != nil {
		return err
	}
	result, err := summary.GetResult()
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "loop[%d]: %s\n", index, result)
	return nil
}
