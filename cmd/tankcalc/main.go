package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "tankcalc",
		Short: "Size atmospheric storage tanks for the acetanilide plant",
		Long: `tankcalc sizes vertical cylindrical storage tanks from daily volume
and storage time, then works out hydrostatic and design pressure and the
shell, roof and base thickness using thin-wall theory.

Examples:
  # Aniline tank, 14.634 m³/day for a week
  tankcalc calc --chemical aniline --vd 14.634

  # Manual geometry, CSV output
  tankcalc calc --chemical acetic_acid --vd 8 --mode manual --diameter 2 --height 3 --format csv

  # Reference plant tank E with a PDF report
  tankcalc preset E --pdf tank-e.pdf`,
		SilenceUsage: true,
	}
	root.AddCommand(
		newCalcCmd(),
		newValidateCmd(),
		newChemicalsCmd(),
		newPresetsCmd(),
		newPresetCmd(),
		newBatchCmd(),
		newWatchCmd(),
	)
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
