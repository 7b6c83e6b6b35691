package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/vmihailenco/msgpack/v5"

	"ell"
)

type snapshotDump struct {
	Schema      uint16
	Active      int
	Inactive    int
	Sleeping    int
	HasTimer    bool
	NextTimerMs uint64
	Result      string
}

const inspectSchemaVersion uint16 = 1

var inspectOut string

func init() {
	inspectCmd.Flags().StringVar(&inspectOut, "out", "", "write the msgpack-encoded snapshot dump to this file instead of stdout")
}

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Run the demo to completion and dump a binary snapshot of its final scheduler state",
	RunE: func(cmd *cobra.Command, args []string) error {
		loop, summary := buildDemoLoop()
		if err := ell.RunUntilComplete(loop, summary); err != nil {
			return err
		}
		result, err := summary.GetResult()
		if err != nil {
			return err
		}
		snap := loop.Snapshot()
		dump := snapshotDump{
			Schema:      inspectSchemaVersion,
			Active:      snap.Active,
			Inactive:    snap.Inactive,
			Sleeping:    snap.Sleeping,
			HasTimer:    snap.HasTimer,
			NextTimerMs: snap.NextTimerMs,
			Result:      result,
		}

		out := cmd.OutOrStdout()
		if inspectOut != "" {
			f, err := os.Create(inspectOut)
			if err != nil {
				return err
			}
			defer f.Close()
			out = f
		}
		enc := msgpack.NewEncoder(out)
		if err := enc.Encode(dump); err != nil {
			return fmt.Errorf("encode snapshot: %w", err)
		}
		return nil
	},
}
