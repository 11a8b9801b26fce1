package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"gone/cpu"
	"gone/mem"
)

func newDebugCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "debug [program]",
		Short: "Step through a program one instruction at a time in a TUI",
		Args:  cobra.ExactArgs(1),
		RunE:  runDebug,
	}
}

func runDebug(_ *cobra.Command, args []string) error {
	program, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading program: %w", err)
	}

	c := cpu.New(mem.NewBus())
	c.Debug(program, loadAddr)
	return nil
}
