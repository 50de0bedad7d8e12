package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/Ruchit0807/chemicalplantdesign009/internal/calc/batch"
	"github.com/Ruchit0807/chemicalplantdesign009/internal/calc/importer"
	"github.com/Ruchit0807/chemicalplantdesign009/internal/calc/preset"
	"github.com/Ruchit0807/chemicalplantdesign009/internal/calc/tank"
	"github.com/Ruchit0807/chemicalplantdesign009/internal/chemical"
	"github.com/spf13/cobra"
)

// errInvalidInput is returned after the validation errors were printed.
var errInvalidInput = errors.New("invalid input")

func newCalcCmd() *cobra.Command {
	var (
		in  inputFlags
		out outputFlags
	)
	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Design one storage tank",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := out.validate(); err != nil {
				return err
			}
			input, err := in.input(cmd)
			if err != nil {
				return err
			}
			res, err := calculate(cmd, input)
			if err != nil {
				return err
			}
			return out.write(cmd.OutOrStdout(), input, res)
		},
	}
	in.register(cmd.Flags())
	out.register(cmd.Flags())
	return cmd
}

// calculate validates first so every problem is reported, not just the
// structural one.
func calculate(cmd *cobra.Command, in tank.Input) (tank.Output, error) {
	if v := tank.Validate(in); !v.IsValid {
		printValidation(cmd.ErrOrStderr(), v, nil)
		return tank.Output{}, errInvalidInput
	}
	return tank.Calculate(in)
}

func newValidateCmd() *cobra.Command {
	var in inputFlags
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check tank parameters without calculating",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := in.input(cmd)
			if err != nil {
				return err
			}
			v := tank.Validate(input)
			printValidation(cmd.OutOrStdout(), v, tank.CheckGuardrails(input, tank.DefaultGuardrails()))
			if !v.IsValid {
				return errInvalidInput
			}
			return nil
		},
	}
	in.register(cmd.Flags())
	return cmd
}

func newChemicalsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chemicals",
		Short: "List the chemicals in the reference table",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "KEY\tNAME\tDENSITY (kg/m³)\tMATERIAL")
			for _, c := range chemical.All() {
				fmt.Fprintf(w, "%s\t%s\t%g\t%s\n", c.Key, c.Name, c.DensityKgM3, c.DefaultMaterial)
			}
			w.Flush()
		},
	}
}

func newPresetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List the reference plant tanks",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tCHEMICAL\tVd (m³/day)")
			for _, p := range preset.All() {
				fmt.Fprintf(w, "%s\t%s\t%s\t%g\n", p.ID, p.Name, p.Chemical, p.DailyVolumeM3)
			}
			w.Flush()
		},
	}
}

func newPresetCmd() *cobra.Command {
	var out outputFlags
	cmd := &cobra.Command{
		Use:   "preset <id>",
		Short: "Design a reference plant tank and compare it with its recorded values",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := out.validate(); err != nil {
				return err
			}
			p, err := preset.ByID(args[0])
			if err != nil {
				return err
			}
			res, err := preset.Run(&tank.Handler{}, p)
			if err != nil {
				return err
			}
			if err := out.write(cmd.OutOrStdout(), res.Input, res.Output); err != nil {
				return err
			}
			if out.format == "table" {
				printComparison(cmd, res.Comparison)
			}
			return nil
		},
	}
	out.register(cmd.Flags())
	return cmd
}

func printComparison(cmd *cobra.Command, c preset.Comparison) {
	o := cmd.OutOrStdout()
	fmt.Fprintln(o)
	fmt.Fprintln(o, "Against recorded values:")
	w := tabwriter.NewWriter(o, 0, 0, 2, ' ', 0)
	for _, d := range c.Deviations {
		fmt.Fprintf(w, "  %s:\t%g\tvs %g\t(%.1f%%)\n", d.Field, d.Actual, d.Expected, d.Percent)
	}
	w.Flush()
	if !c.MaterialMatch {
		fmt.Fprintln(o, "  Suggested material differs from the recorded one.")
	}
}

func newBatchCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "batch <file.xlsx>",
		Short: "Design every tank listed in a spreadsheet",
		Long: `Reads the first sheet of an XLSX workbook. Row 1 is a header; the columns
are chemical, Vd, N, n, mode, D, H, material, corrosion. Only chemical and
Vd are required.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			rows, err := importer.ParseWorkbook(f)
			if err != nil {
				return err
			}
			res := importer.Calculate(&tank.Handler{}, rows)

			if format == "json" {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(res)
			}
			printBatch(cmd, res)
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format: table or json")
	return cmd
}

func printBatch(cmd *cobra.Command, res batch.Result) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ROW\tCHEMICAL\tD (m)\tH (m)\tt_shell (mm)\tt_roof (mm)\tt_base (mm)\tMATERIAL")
	for _, item := range res.Results {
		if !item.OK() {
			msg := item.Error
			if len(item.Errors) > 0 {
				msg = item.Errors[0]
			}
			fmt.Fprintf(w, "%d\t%s\terror: %s\n", item.Index, item.Input.Chemical, msg)
			continue
		}
		o := item.Output
		fmt.Fprintf(w, "%d\t%s\t%g\t%g\t%g\t%g\t%g\t%s\n",
			item.Index, item.Input.Chemical, o.DiameterM, o.HeightM, o.ShellMM, o.RoofMM, o.BaseMM, o.MaterialSuggested)
	}
	w.Flush()
	fmt.Fprintf(cmd.OutOrStdout(), "\n%d rows, %d failed\n", res.Count, res.Failed)
}
