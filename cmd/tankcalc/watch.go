package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/Ruchit0807/chemicalplantdesign009/internal/calc/tank"
	"github.com/Ruchit0807/chemicalplantdesign009/internal/chemical"
	"github.com/Ruchit0807/chemicalplantdesign009/internal/debounce"
	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"
)

func newWatchCmd() *cobra.Command {
	var (
		in     inputFlags
		out    outputFlags
		window time.Duration
	)
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Recalculate as parameter changes arrive on stdin",
		Long: `Reads lines of key=value pairs from stdin, for example "vd=12 days=5",
and prints a fresh design once the input has been quiet for the debounce
window. Keys: chemical, vd, days, tanks, mode, d, h, safety, density,
stress, weld, material, corrosion.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := out.validate(); err != nil {
				return err
			}
			input, err := in.input(cmd)
			if err != nil {
				return err
			}
			return watch(cmd, clockwork.NewRealClock(), window, input, &out)
		},
	}
	in.register(cmd.Flags())
	out.register(cmd.Flags())
	cmd.Flags().DurationVar(&window, "window", debounce.DefaultWindow, "Quiet time before recalculating")
	return cmd
}

func watch(cmd *cobra.Command, clock clockwork.Clock, window time.Duration, input tank.Input, out *outputFlags) error {
	w := cmd.OutOrStdout()
	d := debounce.New(clock, window, func(in tank.Input) {
		if v := tank.Validate(in); !v.IsValid {
			printValidation(w, v, nil)
			return
		}
		res, err := tank.Calculate(in)
		if err != nil {
			fmt.Fprintln(w, err)
			return
		}
		if err := out.write(w, in, res); err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), err)
		}
		fmt.Fprintln(w)
	})
	defer d.Stop()

	d.Trigger(input)
	sc := bufio.NewScanner(cmd.InOrStdin())
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		next, err := applyUpdates(input, line)
		if err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), err)
			continue
		}
		input = next
		d.Trigger(input)
	}
	d.Flush()
	if err := sc.Err(); err != nil && err != io.EOF {
		return err
	}
	return nil
}

// applyUpdates applies "key=value" pairs to in. Changing the chemical
// resets density, material and stress to its defaults.
func applyUpdates(in tank.Input, line string) (tank.Input, error) {
	for _, pair := range strings.Fields(line) {
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			return in, fmt.Errorf("expected key=value, got %q", pair)
		}
		key = strings.ToLower(key)

		switch key {
		case "chemical":
			def, err := tank.DefaultInput(chemical.Key(value))
			if err != nil {
				return in, err
			}
			in.Chemical = def.Chemical
			in.DensityKgM3 = def.DensityKgM3
			in.Material = def.Material
			in.StressPa = def.StressPa
			continue
		case "mode":
			in.GeometryMode = tank.GeometryMode(value)
			continue
		case "material":
			m := chemical.Material(strings.ToUpper(value))
			if !chemical.ValidMaterial(m) {
				return in, fmt.Errorf("unknown material %q", value)
			}
			in.Material = m
			in.StressPa = tank.DefaultStress(m)
			continue
		case "safety":
			b, err := strconv.ParseBool(value)
			if err != nil {
				return in, fmt.Errorf("safety: %w", err)
			}
			in.SafetyHeight = b
			continue
		}

		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return in, fmt.Errorf("%s: %w", key, err)
		}
		switch key {
		case "vd":
			in.DailyVolumeM3 = v
		case "days":
			in.StorageDays = v
		case "tanks":
			in.TankCount = v
		case "d":
			in.DiameterM = tank.Float(v)
		case "h":
			in.HeightM = tank.Float(v)
		case "density":
			in.DensityKgM3 = v
		case "stress":
			in.StressPa = v
		case "weld":
			in.WeldEfficiency = v
		case "corrosion":
			in.CorrosionMM = v
		default:
			return in, fmt.Errorf("unknown key %q", key)
		}
	}
	return in, nil
}
