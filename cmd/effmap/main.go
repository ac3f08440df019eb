package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hydromech/effmap/pkg/catalog"
	"github.com/hydromech/effmap/pkg/hst"
	"github.com/hydromech/effmap/pkg/render"
)

type opts struct {
	// machine
	disp      float64
	swash     float64
	pistons   int
	oilGrade  string
	oilTemp   float64
	oilFile   string
	engine    string
	engFile   string
	gearRatio float64
	maxPower  float64

	// operating point
	speed     float64
	discharge float64
	charge    float64

	// sweep envelope
	speedMin    float64
	speedMax    float64
	pressureMin float64
	pressureMax float64
	res         int
	workers     int
	limiter     float64

	// rated speed band (externally fitted model)
	ratedSpeed float64
	ratedRMSE  float64

	// outputs
	csvPath  string
	jsonPath string
	xlsxPath string
	pdfPath  string
	pretty   bool
}

// fixedPredictor adapts an externally fitted rated-speed prediction supplied
// on the command line to the hst.SpeedPredictor capability.
type fixedPredictor struct {
	nominal float64
	rmse    float64
}

func (p fixedPredictor) Predict(float64) float64 { return p.nominal }
func (p fixedPredictor) ResidualRMSE() float64   { return p.rmse }

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	var o opts
	root := &cobra.Command{
		Use:   "effmap",
		Short: "Hydrostatic transmission efficiency maps",
		Long: `effmap sizes the pumping group of an axial-piston pump/motor pair,
evaluates its volumetric/mechanical efficiency model at an operating point,
and sweeps a speed x pressure envelope into an efficiency map with engine
torque and rated-speed overlays.

Examples:
  effmap --disp 100 --speed 2000 --discharge 300
  effmap --disp 130 --speed-max 3000 --pressure-max 480 --pdf map.pdf --xlsx map.xlsx`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(o)
		},
	}

	root.Flags().Float64Var(&o.disp, "disp", 100, "machine displacement, cc/rev")
	root.Flags().Float64Var(&o.swash, "swash", 18, "maximum swash angle, degrees")
	root.Flags().IntVar(&o.pistons, "pistons", 9, "piston count")
	root.Flags().StringVar(&o.oilGrade, "oil", "15w40", "oil grade (builtin: 15w40, 10w40, 5w30)")
	root.Flags().Float64Var(&o.oilTemp, "temp", 100, "oil temperature, C (exact table key)")
	root.Flags().StringVar(&o.oilFile, "oil-file", "", "YAML oil property table overriding the builtin grade")
	root.Flags().StringVar(&o.engine, "engine", "engine_1", "engine curve name (builtin: engine_1, engine_2)")
	root.Flags().StringVar(&o.engFile, "engine-file", "", "YAML engine curve overriding the builtin one")
	root.Flags().Float64Var(&o.gearRatio, "gear-ratio", 0.75, "input gear train ratio")
	root.Flags().Float64Var(&o.maxPower, "max-power", 680, "maximum transmitted power, kW")

	root.Flags().Float64VarP(&o.speed, "speed", "n", 2000, "pump input speed, rpm")
	root.Flags().Float64VarP(&o.discharge, "discharge", "p", 300, "discharge pressure, bar")
	root.Flags().Float64Var(&o.charge, "charge", 25, "charge pressure, bar")

	root.Flags().Float64Var(&o.speedMin, "speed-min", 1000, "map lower speed bound, rpm")
	root.Flags().Float64Var(&o.speedMax, "speed-max", 0, "map upper speed bound, rpm (0 = no sweep)")
	root.Flags().Float64Var(&o.pressureMin, "pressure-min", 75, "map lower discharge pressure bound, bar")
	root.Flags().Float64Var(&o.pressureMax, "pressure-max", 0, "map upper discharge pressure bound, bar (0 = no sweep)")
	root.Flags().IntVar(&o.res, "res", 100, "map samples per axis")
	root.Flags().IntVar(&o.workers, "workers", 0, "sweep workers (0 = NumCPU)")
	root.Flags().Float64Var(&o.limiter, "limiter", 480, "torque limiter setting drawn on the map, bar")

	root.Flags().Float64Var(&o.ratedSpeed, "rated-speed", 0, "externally predicted nominal rated speed, rpm (0 = no band)")
	root.Flags().Float64Var(&o.ratedRMSE, "rated-rmse", 0, "residual RMSE of the rated-speed prediction, rpm")

	root.Flags().StringVar(&o.csvPath, "csv", "", "write the swept map to a CSV file")
	root.Flags().StringVar(&o.jsonPath, "json", "", "write the swept map to a JSON file")
	root.Flags().StringVar(&o.xlsxPath, "xlsx", "", "write the swept map to a workbook")
	root.Flags().StringVar(&o.pdfPath, "pdf", "", "render the map with overlays to a PDF")
	root.Flags().BoolVar(&o.pretty, "pretty", true, "boxed tables and console map instead of plain rows")

	if err := root.Execute(); err != nil {
		sugar.Fatalw("effmap failed", "err", err)
	}
}

func run(o opts) error {
	oil, err := loadOil(o)
	if err != nil {
		return err
	}
	oilPoint, err := oil.At(o.oilTemp)
	if err != nil {
		return err
	}

	machine, err := hst.New(hst.MachineConfig{
		Displacement:   o.disp,
		SwashAngle:     o.swash,
		Pistons:        o.pistons,
		OilGrade:       oil.Grade,
		OilTemp:        o.oilTemp,
		InputGearRatio: o.gearRatio,
		MaxPowerInput:  o.maxPower,
	})
	if err != nil {
		return err
	}

	op := hst.OperatingPoint{
		SpeedPump:         o.speed,
		PressureDischarge: o.discharge,
		PressureCharge:    o.charge,
	}
	eff, perf, err := machine.Efficiency(op, oilPoint, nil)
	if err != nil {
		return err
	}
	loads, err := machine.Loads(o.discharge, o.charge)
	if err != nil {
		return err
	}

	if o.pretty {
		if err := render.RenderPoint(eff, perf, loads); err != nil {
			return err
		}
	} else {
		printPlain(eff, perf, loads)
	}

	if o.speedMax <= 0 || o.pressureMax <= 0 {
		return nil
	}
	return sweep(o, machine, oilPoint)
}

func loadOil(o opts) (*catalog.OilTable, error) {
	if o.oilFile != "" {
		return catalog.LoadOilYAML(o.oilFile)
	}
	return catalog.Oil(o.oilGrade)
}

func loadEngine(o opts) (*catalog.EngineCurve, error) {
	if o.engFile != "" {
		return catalog.LoadEngineYAML(o.engFile)
	}
	return catalog.Engine(o.engine)
}

func sweep(o opts, machine *hst.Machine, oilPoint hst.OilPoint) error {
	grid, err := render.Sweep(machine, oilPoint, nil, render.SweepOpts{
		SpeedMin:    o.speedMin,
		SpeedMax:    o.speedMax,
		PressureMin: o.pressureMin,
		PressureMax: o.pressureMax,
		Charge:      o.charge,
		Resolution:  o.res,
		Workers:     o.workers,
	})
	if err != nil {
		return err
	}

	if o.pretty {
		render.RenderMap(grid, machine.Config())
	}
	if o.csvPath != "" {
		if err := writeCSV(o.csvPath, grid); err != nil {
			return err
		}
	}
	if o.jsonPath != "" {
		if err := writeJSON(o.jsonPath, grid); err != nil {
			return err
		}
	}
	if o.xlsxPath != "" {
		if err := render.WriteXLSX(o.xlsxPath, grid); err != nil {
			return err
		}
	}
	if o.pdfPath != "" {
		engine, err := loadEngine(o)
		if err != nil {
			return err
		}
		ov := render.Overlays{
			Engine:          engine,
			GearRatio:       o.gearRatio,
			MaxPowerInput:   o.maxPower,
			LimiterPressure: o.limiter,
		}
		if o.ratedSpeed > 0 {
			band := hst.RatedSpeeds(o.disp, fixedPredictor{nominal: o.ratedSpeed, rmse: o.ratedRMSE})
			ov.RatedSpeeds = &band
		}
		if err := render.WritePDF(o.pdfPath, grid, machine, oilPoint, ov); err != nil {
			return err
		}
	}
	return nil
}

func printPlain(eff hst.EfficiencyResult, perf hst.PerformanceResult, loads hst.LoadResult) {
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "UNIT\tVOL %\tMECH %\tTOTAL %\tSPEED rpm\tTORQUE Nm\tPOWER kW")
	fmt.Fprintf(tw, "pump\t%.3f\t%.3f\t%.3f\t%.1f\t%.2f\t%.2f\n",
		eff.Pump.Volumetric, eff.Pump.Mechanical, eff.Pump.Total,
		perf.Pump.Speed, perf.Pump.Torque, perf.Pump.Power)
	fmt.Fprintf(tw, "motor\t%.3f\t%.3f\t%.3f\t%.1f\t%.2f\t%.2f\n",
		eff.Motor.Volumetric, eff.Motor.Mechanical, eff.Motor.Total,
		perf.Motor.Speed, perf.Motor.Torque, perf.Motor.Power)
	fmt.Fprintf(tw, "hst\t%.3f\t%.3f\t%.3f\t\t\t\n",
		eff.HST.Volumetric, eff.HST.Mechanical, eff.HST.Total)
	tw.Flush()
	fmt.Printf("loads: shaft radial %.2f kN, swash X %.2f/%.2f kN, swash Z %.2f/%.2f kN\n",
		loads.ShaftRadial, loads.SwashHighX, loads.SwashLowX, loads.SwashHighZ, loads.SwashLowZ)
}

func writeCSV(path string, g *render.Grid) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := make([]string, 0, len(g.Speeds)+1)
	header = append(header, "discharge_bar")
	for _, s := range g.Speeds {
		header = append(header, strconv.FormatFloat(s, 'f', 1, 64))
	}
	if err := w.Write(header); err != nil {
		return err
	}
	for i, p := range g.Pressures {
		row := make([]string, 0, len(g.Speeds)+1)
		row = append(row, strconv.FormatFloat(p, 'f', 1, 64))
		for _, v := range g.TotalHST[i] {
			row = append(row, strconv.FormatFloat(v, 'f', 4, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func writeJSON(path string, g *render.Grid) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	out := struct {
		Speeds    []float64   `json:"speeds_rpm"`
		Pressures []float64   `json:"pressures_bar"`
		Charge    float64     `json:"charge_bar"`
		TotalHST  [][]float64 `json:"hst_total_pct"`
	}{g.Speeds, g.Pressures, g.Charge, g.TotalHST}
	b, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}
