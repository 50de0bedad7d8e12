package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Ruchit0807/chemicalplantdesign009/internal/calc/preset"
	"github.com/Ruchit0807/chemicalplantdesign009/internal/calc/tank"
	"github.com/Ruchit0807/chemicalplantdesign009/internal/chemical"
)

const helpText = `Tank design bot
/calc <chemical> <Vd> [N] [n] - size a tank (Vd in m³/day, N storage days, n tanks)
/preset <A-F> - design a reference plant tank
/chemicals - list chemical keys`

// Respond turns a chat message into the bot's reply. Messages that are
// not commands get no reply.
func Respond(text string) string {
	fields := strings.Fields(text)
	if len(fields) == 0 || !strings.HasPrefix(fields[0], "/") {
		return ""
	}
	// Commands in groups arrive as /calc@BotName.
	cmd, _, _ := strings.Cut(fields[0], "@")
	args := fields[1:]

	switch cmd {
	case "/start", "/help":
		return helpText
	case "/chemicals":
		var sb strings.Builder
		for _, c := range chemical.All() {
			fmt.Fprintf(&sb, "%s - %s, %g kg/m³, %s\n", c.Key, c.Name, c.DensityKgM3, c.DefaultMaterial)
		}
		return strings.TrimSpace(sb.String())
	case "/calc":
		in, err := parseCalc(args)
		if err != nil {
			return err.Error() + "\nUsage: /calc <chemical> <Vd> [N] [n]"
		}
		return calcReply(in)
	case "/preset":
		if len(args) != 1 {
			return "Usage: /preset <A-F>"
		}
		p, err := preset.ByID(args[0])
		if err != nil {
			return "Unknown preset " + args[0]
		}
		in, err := p.Input()
		if err != nil {
			return err.Error()
		}
		return p.Name + "\n" + calcReply(in)
	}
	return "Unknown command. Try /help"
}

func parseCalc(args []string) (tank.Input, error) {
	if len(args) < 2 || len(args) > 4 {
		return tank.Input{}, fmt.Errorf("expected 2 to 4 arguments, got %d", len(args))
	}
	in, err := tank.DefaultInput(chemical.Key(strings.ToLower(args[0])))
	if err != nil {
		return tank.Input{}, fmt.Errorf("unknown chemical %q, see /chemicals", args[0])
	}
	dst := []*float64{&in.DailyVolumeM3, &in.StorageDays, &in.TankCount}
	for i, a := range args[1:] {
		v, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return tank.Input{}, fmt.Errorf("%q is not a number", a)
		}
		*dst[i] = v
	}
	return in, nil
}

func calcReply(in tank.Input) string {
	if v := tank.Validate(in); !v.IsValid {
		return "Invalid input:\n" + strings.Join(v.Errors, "\n")
	}
	out, err := tank.Calculate(in)
	if err != nil {
		return err.Error()
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "Vr = %g m³\n", out.VrM3)
	fmt.Fprintf(&sb, "D = %g m, H = %g m (%g m with safety)\n", out.DiameterM, out.HeightM, out.HeightSafetyM)
	fmt.Fprintf(&sb, "Design pressure = %.2f kPa\n", out.PaDesignPa/1000)
	fmt.Fprintf(&sb, "t_shell = %g mm, t_roof = %g mm, t_base = %g mm\n", out.ShellMM, out.RoofMM, out.BaseMM)
	fmt.Fprintf(&sb, "Material: %s", out.MaterialSuggested)
	for _, w := range out.Warnings {
		sb.WriteString("\n" + w)
	}
	return sb.String()
}
