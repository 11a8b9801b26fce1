// Command gone loads a raw 6502 machine-code image and runs it to halt.
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"gone/cpu"
	"gone/mem"
)

var (
	trace    bool
	loadAddr uint16
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "gone [program]",
		Short: "A MOS 6502 interpreter",
		Args:  cobra.ExactArgs(1),
		RunE:  runHeadless,
	}
	root.Flags().BoolVar(&trace, "trace", false, "log every retired instruction")
	root.PersistentFlags().Uint16Var(&loadAddr, "load-addr", cpu.CodeSegmentStart, "address to load the program at")
	root.AddCommand(newDebugCmd())
	return root
}

func loadImage(c *cpu.Cpu, path string) error {
	program, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading program: %w", err)
	}
	if err := c.LoadAt(program, loadAddr); err != nil {
		return err
	}
	c.Reset()
	return nil
}

func runHeadless(_ *cobra.Command, args []string) error {
	c := cpu.New(mem.NewBus())
	if err := loadImage(c, args[0]); err != nil {
		return err
	}

	logger := log.New(os.Stderr)

	var hook func(*cpu.Cpu)
	if trace {
		logger.SetLevel(log.DebugLevel)
		hook = func(c *cpu.Cpu) {
			logger.Debug("tick", "pc", fmt.Sprintf("%#04x", c.PC()), "a", c.A(), "sp", fmt.Sprintf("%#04x", c.SP()))
		}
	}

	if err := c.RunWithHook(hook); err != nil {
		fmt.Fprintln(os.Stderr, "fatal:", err)
		fmt.Fprintln(os.Stderr, spew.Sdump(c))
		os.Exit(1)
	}
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
