package render

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"

	"github.com/hydromech/effmap/pkg/hst"
	"github.com/hydromech/effmap/pkg/types"
)

// RenderMap prints the efficiency map to the terminal as a colored cell
// raster, highest pressure on top.
func RenderMap(g *Grid, cfg hst.MachineConfig) {
	title := fmt.Sprintf("%s | %s | oil %s at %g C | charge %s",
		"HST total efficiency, %",
		types.CcPerRev(cfg.Displacement), cfg.OilGrade, cfg.OilTemp, types.Bar(g.Charge))

	pterm.Info.Printfln("speed %0.f..%0.f rpm, discharge %0.f..%0.f bar, %dx%d samples",
		g.Speeds[0], g.Speeds[len(g.Speeds)-1],
		g.Pressures[0], g.Pressures[len(g.Pressures)-1],
		len(g.Pressures), len(g.Speeds))
	pterm.DefaultBox.WithTitle(title).WithTitleTopLeft().Println(BuildMapString(g))
}

// BuildMapString renders the grid as text, one glyph per cell, with axis
// labels and a legend. Rows are downsampled to keep the raster readable.
func BuildMapString(g *Grid, maxCells ...int) string {
	limit := 40
	if len(maxCells) > 0 && maxCells[0] > 0 {
		limit = maxCells[0]
	}
	rowStep := stepFor(len(g.Pressures), limit)
	colStep := stepFor(len(g.Speeds), 2*limit)

	var b strings.Builder
	for i := len(g.Pressures) - 1; i >= 0; i -= rowStep {
		b.WriteString(fmt.Sprintf("%5.0f |", g.Pressures[i]))
		for j := 0; j < len(g.Speeds); j += colStep {
			b.WriteString(cellGlyph(g.TotalHST[i][j]))
		}
		b.WriteString("\n")
	}
	b.WriteString("  bar +")
	b.WriteString(strings.Repeat("-", (len(g.Speeds)+colStep-1)/colStep))
	b.WriteString("\n      ")
	b.WriteString(fmt.Sprintf("%-8.0f", g.Speeds[0]))
	b.WriteString(strings.Repeat(" ", max(0, (len(g.Speeds)+colStep-1)/colStep-16)))
	b.WriteString(fmt.Sprintf("%8.0f rpm\n", g.Speeds[len(g.Speeds)-1]))
	b.WriteString("legend: ")
	for _, band := range effBands {
		b.WriteString(band.color.Sprint("█"))
		b.WriteString(fmt.Sprintf(" %s  ", band.label))
	}
	b.WriteString("\n")
	return b.String()
}

type effBand struct {
	floor float64
	label string
	color pterm.Color
}

var effBands = []effBand{
	{90, ">=90%", pterm.FgRed},
	{85, "85-90%", pterm.FgYellow},
	{75, "75-85%", pterm.FgGreen},
	{60, "60-75%", pterm.FgCyan},
	{0, "<60%", pterm.FgBlue},
}

func cellGlyph(eff float64) string {
	for _, band := range effBands {
		if eff >= band.floor {
			return band.color.Sprint("█")
		}
	}
	return effBands[len(effBands)-1].color.Sprint("█")
}

// RenderPoint prints a boxed single-point report: efficiencies, performance
// and structural loads.
func RenderPoint(eff hst.EfficiencyResult, perf hst.PerformanceResult, loads hst.LoadResult) error {
	effTable := pterm.TableData{
		{"", "Volumetric", "Mechanical", "Total"},
		{"Pump", types.Percent(eff.Pump.Volumetric).String(), types.Percent(eff.Pump.Mechanical).String(), types.Percent(eff.Pump.Total).String()},
		{"Motor", types.Percent(eff.Motor.Volumetric).String(), types.Percent(eff.Motor.Mechanical).String(), types.Percent(eff.Motor.Total).String()},
		{"HST", types.Percent(eff.HST.Volumetric).String(), types.Percent(eff.HST.Mechanical).String(), types.Percent(eff.HST.Total).String()},
	}
	perfTable := pterm.TableData{
		{"", "Speed", "Torque", "Power"},
		{"Pump", types.Rpm(perf.Pump.Speed).String(), fmt.Sprintf("%.1f Nm", perf.Pump.Torque), fmt.Sprintf("%.1f kW", perf.Pump.Power)},
		{"Motor", types.Rpm(perf.Motor.Speed).String(), fmt.Sprintf("%.1f Nm", perf.Motor.Torque), fmt.Sprintf("%.1f kW", perf.Motor.Power)},
		{"Delta", types.Rpm(perf.Delta.Speed).String(), fmt.Sprintf("%.1f Nm", perf.Delta.Torque), fmt.Sprintf("%.1f kW", perf.Delta.Power)},
	}
	loadTable := pterm.TableData{
		{"Shaft radial", fmt.Sprintf("%.2f kN", loads.ShaftRadial)},
		{"Swash high side X/Z", fmt.Sprintf("%.2f / %.2f kN", loads.SwashHighX, loads.SwashHighZ)},
		{"Swash low side X/Z", fmt.Sprintf("%.2f / %.2f kN", loads.SwashLowX, loads.SwashLowZ)},
	}

	for _, section := range []struct {
		title  string
		data   pterm.TableData
		header bool
	}{
		{fmt.Sprintf("Efficiencies at %s / %s", types.Rpm(perf.Pump.Speed), types.Bar(perf.PressureDischarge)), effTable, true},
		{"Performance", perfTable, true},
		{"Structural loads", loadTable, false},
	} {
		printer := pterm.DefaultTable.WithData(section.data)
		if section.header {
			printer = printer.WithHasHeader()
		}
		s, err := printer.Srender()
		if err != nil {
			return err
		}
		pterm.DefaultBox.WithTitle(section.title).WithTitleTopLeft().Println(s)
	}
	return nil
}

func stepFor(n, limit int) int {
	step := n / limit
	if step < 1 {
		step = 1
	}
	return step
}
