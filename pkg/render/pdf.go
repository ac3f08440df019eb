package render

import (
	"fmt"
	"math"

	"github.com/phpdave11/gofpdf"
	"github.com/pkg/errors"

	"github.com/hydromech/effmap/pkg/catalog"
	"github.com/hydromech/effmap/pkg/hst"
	"github.com/hydromech/effmap/pkg/types"
)

// NoLoadLine is a precomputed linear no-load limit, pressure = Slope*speed +
// Intercept, in bar over rpm. The fit itself is done by the caller.
type NoLoadLine struct {
	Slope     float64
	Intercept float64
}

// Overlays selects the optional curves drawn on top of the efficiency map.
type Overlays struct {
	Engine          *catalog.EngineCurve
	GearRatio       float64
	MaxPowerInput   float64 // kW
	LimiterPressure float64 // bar, torque limiter setting
	RatedSpeeds     *hst.RatedSpeedBand
	NoLoad          *NoLoadLine
}

// Map geometry on the A4 landscape page, mm.
const (
	plotLeft   = 25.0
	plotTop    = 25.0
	plotWidth  = 230.0
	plotHeight = 150.0

	// Efficiency span mapped onto the color ramp.
	rampLo = 50.0
	rampHi = 95.0
)

// WritePDF renders the efficiency map with the requested overlays: engine
// torque curve reflected through the gear train, the torque hyperbola at
// maximum transmitted power, the pivot-turn point, the pressure-limiter
// setting and the rated-speed band.
func WritePDF(path string, g *Grid, m *hst.Machine, oil hst.OilPoint, ov Overlays) error {
	cfg := m.Config()
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, fmt.Sprintf("HST efficiency map, %s, oil %s at %g C",
		types.CcPerRev(cfg.Displacement), cfg.OilGrade, cfg.OilTemp))
	pdf.Ln(10)

	sx := func(speed float64) float64 {
		return plotLeft + plotWidth*(speed-g.Speeds[0])/(g.Speeds[len(g.Speeds)-1]-g.Speeds[0])
	}
	sy := func(pressure float64) float64 {
		return plotTop + plotHeight*(1-(pressure-g.Pressures[0])/(g.Pressures[len(g.Pressures)-1]-g.Pressures[0]))
	}

	// Cell raster.
	cw := plotWidth / float64(len(g.Speeds))
	ch := plotHeight / float64(len(g.Pressures))
	for i := range g.Pressures {
		for j := range g.Speeds {
			r, gc, b := rampColor((g.TotalHST[i][j] - rampLo) / (rampHi - rampLo))
			pdf.SetFillColor(r, gc, b)
			pdf.Rect(sx(g.Speeds[j]), sy(g.Pressures[i])-ch, cw, ch, "F")
		}
	}

	// Frame and axis labels.
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.3)
	pdf.Rect(plotLeft, plotTop, plotWidth, plotHeight, "D")
	pdf.SetFont("Helvetica", "", 9)
	pdf.Text(plotLeft+plotWidth/2-15, plotTop+plotHeight+10, "HST input speed, rpm")
	pdf.Text(5, plotTop+plotHeight/2, "bar")
	for _, speed := range []float64{g.Speeds[0], g.Speeds[len(g.Speeds)-1]} {
		pdf.Text(sx(speed)-4, plotTop+plotHeight+5, fmt.Sprintf("%.0f", speed))
	}
	for _, p := range []float64{g.Pressures[0], g.Pressures[len(g.Pressures)-1]} {
		pdf.Text(plotLeft-12, sy(p)+1, fmt.Sprintf("%.0f", p))
	}

	// Torque overlays share the pressure axis span: torque t maps through the
	// envelope range.
	tqLo, tqHi := minMax(g.TorqueEnvelope)
	ty := func(torque float64) float64 {
		return plotTop + plotHeight*(1-(torque-tqLo)/(tqHi-tqLo))
	}

	if ov.Engine != nil && ov.GearRatio > 0 {
		pdf.SetDrawColor(205, 92, 92)
		pdf.SetLineWidth(0.4)
		var px, py float64
		for k, speed := range ov.Engine.Speeds {
			x := sx(ov.GearRatio * speed)
			y := ty(ov.Engine.Torques[k] / ov.GearRatio)
			if k > 0 && inPlot(x, py) && inPlot(x, y) {
				pdf.Line(px, py, x, y)
			}
			px, py = x, y
		}

		if ov.MaxPowerInput > 0 {
			// Torque available at constant maximum power.
			pdf.SetDrawColor(70, 130, 180)
			prev := false
			for _, speed := range g.Speeds {
				t := types.TorqueFromPower(ov.MaxPowerInput, types.Rpm(speed))
				x, y := sx(speed), ty(t)
				if prev && inPlot(x, y) {
					pdf.Line(px, py, x, y)
				}
				prev = inPlot(x, y)
				px, py = x, y
			}

			// Pivot turn: discharge pressure needed to absorb max power at the
			// engine pivot speed through the gear train.
			pivotSpeed := ov.GearRatio * ov.Engine.PivotSpeed
			torquePivot := types.TorqueFromPower(ov.MaxPowerInput, types.Rpm(pivotSpeed))
			pressurePivot := torquePivot*2*math.Pi/(cfg.Displacement*1e-6)/1e5*g.MaxMechPump*1e-2 + g.Charge
			op := hst.OperatingPoint{SpeedPump: pivotSpeed, PressureDischarge: pressurePivot, PressureCharge: g.Charge}
			if _, perf, err := m.Efficiency(op, oil, nil); err == nil {
				pdf.SetFillColor(70, 130, 180)
				pdf.Circle(sx(pivotSpeed), ty(perf.Pump.Torque), 1.5, "F")
			}
		}
	}

	if ov.LimiterPressure > 0 {
		pdf.SetDrawColor(143, 188, 143)
		pdf.SetLineWidth(0.4)
		pdf.SetDashPattern([]float64{2, 2}, 0)
		pdf.Line(plotLeft, sy(ov.LimiterPressure), plotLeft+plotWidth, sy(ov.LimiterPressure))
		pdf.SetDashPattern([]float64{}, 0)
	}

	if ov.RatedSpeeds != nil {
		marks := []struct {
			speed   float64
			r, g, b int
		}{
			{ov.RatedSpeeds.Min, 34, 139, 34},
			{ov.RatedSpeeds.Nominal, 255, 165, 0},
			{ov.RatedSpeeds.Max, 200, 30, 30},
		}
		pdf.SetDashPattern([]float64{2, 2}, 0)
		for _, mk := range marks {
			x := sx(mk.speed)
			if !inPlot(x, plotTop+1) {
				continue
			}
			pdf.SetDrawColor(mk.r, mk.g, mk.b)
			pdf.Line(x, plotTop, x, plotTop+plotHeight)
		}
		pdf.SetDashPattern([]float64{}, 0)
	}

	if ov.NoLoad != nil {
		pdf.SetDrawColor(128, 0, 128)
		pdf.SetDashPattern([]float64{1.5, 1.5}, 0)
		x0, x1 := g.Speeds[0], g.Speeds[len(g.Speeds)-1]
		pdf.Line(sx(x0), sy(ov.NoLoad.Slope*x0+ov.NoLoad.Intercept),
			sx(x1), sy(ov.NoLoad.Slope*x1+ov.NoLoad.Intercept))
		pdf.SetDashPattern([]float64{}, 0)
	}

	// Legend.
	pdf.SetFont("Helvetica", "", 8)
	y := plotTop + plotHeight + 16
	for k := 0; k <= 8; k++ {
		eff := rampLo + (rampHi-rampLo)*float64(k)/8
		r, gc, b := rampColor(float64(k) / 8)
		pdf.SetFillColor(r, gc, b)
		pdf.Rect(plotLeft+float64(k)*22, y, 6, 4, "F")
		pdf.Text(plotLeft+float64(k)*22+7, y+3.5, fmt.Sprintf("%.0f%%", eff))
	}

	return errors.Wrap(pdf.OutputFileAndClose(path), "write pdf")
}

func inPlot(x, y float64) bool {
	return x >= plotLeft && x <= plotLeft+plotWidth && y >= plotTop && y <= plotTop+plotHeight
}

// rampColor maps t in [0,1] through blue -> green -> red.
func rampColor(t float64) (int, int, int) {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	type stop struct{ r, g, b float64 }
	lo, mid, hi := stop{39, 60, 245}, stop{60, 180, 90}, stop{220, 50, 40}
	var a, b stop
	var f float64
	if t < 0.5 {
		a, b, f = lo, mid, t*2
	} else {
		a, b, f = mid, hi, (t-0.5)*2
	}
	return int(a.r + (b.r-a.r)*f), int(a.g + (b.g-a.g)*f), int(a.b + (b.b-a.b)*f)
}

func minMax(vals []float64) (float64, float64) {
	lo, hi := vals[0], vals[0]
	for _, v := range vals {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	if hi == lo {
		hi = lo + 1
	}
	return lo, hi
}
