package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/Ruchit0807/chemicalplantdesign009/internal/calc/report"
	"github.com/Ruchit0807/chemicalplantdesign009/internal/calc/tank"
	"github.com/spf13/pflag"
)

type outputFlags struct {
	format string
	pdf    string
	xlsx   string
}

func (o *outputFlags) register(fs *pflag.FlagSet) {
	fs.StringVarP(&o.format, "format", "f", "table", "Output format: table, csv or json")
	fs.StringVar(&o.pdf, "pdf", "", "Also write a PDF report to this file")
	fs.StringVar(&o.xlsx, "xlsx", "", "Also write an XLSX workbook to this file")
}

func (o *outputFlags) validate() error {
	switch o.format {
	case "table", "csv", "json":
		return nil
	}
	return fmt.Errorf("unknown format %q (want table, csv or json)", o.format)
}

// write prints the result and writes any requested report files.
func (o *outputFlags) write(w io.Writer, in tank.Input, out tank.Output) error {
	var err error
	switch o.format {
	case "csv":
		err = report.WriteCSV(w, in, out)
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		err = enc.Encode(out)
	default:
		err = printTable(w, in, out)
	}
	if err != nil {
		return err
	}

	if o.pdf != "" {
		if err := writeFile(o.pdf, func(f io.Writer) error {
			return report.WritePDF(f, report.Meta{}, in, out)
		}); err != nil {
			return err
		}
	}
	if o.xlsx != "" {
		if err := writeFile(o.xlsx, func(f io.Writer) error {
			return report.WriteXLSX(f, in, out)
		}); err != nil {
			return err
		}
	}
	return nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

func printTable(out io.Writer, in tank.Input, res tank.Output) error {
	fmt.Fprintf(out, "Tank design: %s, %g m³/day for %g days in %g tank(s)\n\n", in.Chemical, in.DailyVolumeM3, in.StorageDays, in.TankCount)

	fmt.Fprintln(out, "Volume & Geometry:")
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Required volume (Vr):\t%g m³\n", res.VrM3)
	fmt.Fprintf(w, "  Diameter (D):\t%g m\n", res.DiameterM)
	fmt.Fprintf(w, "  Height (H):\t%g m\n", res.HeightM)
	fmt.Fprintf(w, "  Height with safety:\t%g m\n", res.HeightSafetyM)
	fmt.Fprintf(w, "  Top area:\t%g m²\n", res.AreaTopM2)
	w.Flush()
	fmt.Fprintln(out)

	fmt.Fprintln(out, "Pressures:")
	w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Hydrostatic (Pg):\t%.2f kPa\n", res.PgPa/1000)
	fmt.Fprintf(w, "  Absolute (Pa):\t%.2f kPa\n", res.PaPa/1000)
	fmt.Fprintf(w, "  Design:\t%.2f kPa\n", res.PaDesignPa/1000)
	w.Flush()
	fmt.Fprintln(out)

	fmt.Fprintln(out, "Thickness:")
	w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Shell:\t%g mm\n", res.ShellMM)
	fmt.Fprintf(w, "  Roof:\t%g mm\n", res.RoofMM)
	fmt.Fprintf(w, "  Base:\t%g mm\n", res.BaseMM)
	fmt.Fprintf(w, "  Suggested material:\t%s\n", res.MaterialSuggested)
	w.Flush()

	if len(res.Warnings) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Warnings:")
		for _, warning := range res.Warnings {
			fmt.Fprintf(out, "  %s\n", warning)
		}
	}
	return nil
}

func printValidation(out io.Writer, v tank.ValidationResult, guardrails []string) {
	if v.IsValid {
		fmt.Fprintln(out, "Input is valid.")
	} else {
		fmt.Fprintln(out, "Input is invalid:")
		fmt.Fprintf(out, "  %s\n", strings.Join(v.Errors, "\n  "))
	}
	if len(guardrails) > 0 {
		fmt.Fprintln(out, "Outside recommended bounds:")
		fmt.Fprintf(out, "  %s\n", strings.Join(guardrails, "\n  "))
	}
}
