package render

import (
	"math"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/hydromech/effmap/pkg/hst"
	"github.com/hydromech/effmap/pkg/types"
)

// SweepOpts bounds the speed/pressure envelope of an efficiency map.
type SweepOpts struct {
	SpeedMin    float64 // rpm, default 1000
	SpeedMax    float64 // rpm
	PressureMin float64 // bar, default 75
	PressureMax float64 // bar
	Charge      float64 // bar, default 25
	Resolution  int     // samples per axis, default 100
	Workers     int     // default NumCPU
}

func (o SweepOpts) withDefaults() SweepOpts {
	if o.SpeedMin <= 0 {
		o.SpeedMin = 1000
	}
	if o.PressureMin <= 0 {
		o.PressureMin = 75
	}
	if o.Charge <= 0 {
		o.Charge = 25
	}
	if o.Resolution < 2 {
		o.Resolution = 100
	}
	if o.Workers <= 0 {
		o.Workers = runtime.NumCPU()
	}
	return o
}

// Grid is a swept efficiency map. Matrices are indexed [pressure][speed].
type Grid struct {
	Speeds    []float64 // rpm, ascending
	Pressures []float64 // bar, ascending
	Charge    float64   // bar

	TotalHST [][]float64 // HST total efficiency, %
	MechPump [][]float64 // pump mechanical efficiency, %

	// TorqueEnvelope[i] is the pump torque (Nm) at Pressures[i] using the
	// best mechanical efficiency seen at Speeds[i]; it bounds the secondary
	// torque axis on the rendered map.
	TorqueEnvelope []float64

	MaxMechPump float64 // grid-wide maximum pump mechanical efficiency, %
}

// Sweep evaluates the efficiency model over a Resolution^2 grid. Grid points
// are independent, so rows are fanned out over Workers goroutines; each point
// gets its own result values and no state is shared between evaluations.
func Sweep(m *hst.Machine, oil hst.OilPoint, lc *hst.LossCoefficients, opts SweepOpts) (*Grid, error) {
	opts = opts.withDefaults()

	// Warm the geometry cache before sharing the machine across workers.
	if _, err := m.Sizes(); err != nil {
		return nil, err
	}

	res := opts.Resolution
	g := &Grid{
		Speeds:    linspace(opts.SpeedMin, opts.SpeedMax, res),
		Pressures: linspace(opts.PressureMin, opts.PressureMax, res),
		Charge:    opts.Charge,
		TotalHST:  make([][]float64, res),
		MechPump:  make([][]float64, res),
	}

	var (
		wg       sync.WaitGroup
		errOnce  sync.Once
		firstErr error
		failed   atomic.Bool
	)
	rows := make(chan int)
	for w := 0; w < opts.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range rows {
				if failed.Load() {
					continue
				}
				total := make([]float64, res)
				mech := make([]float64, res)
				for j, speed := range g.Speeds {
					op := hst.OperatingPoint{
						SpeedPump:         speed,
						PressureDischarge: g.Pressures[i],
						PressureCharge:    opts.Charge,
					}
					eff, _, err := m.Efficiency(op, oil, lc)
					if err != nil {
						errOnce.Do(func() { firstErr = err })
						failed.Store(true)
						break
					}
					total[j] = eff.HST.Total
					mech[j] = eff.Pump.Mechanical
				}
				g.TotalHST[i] = total
				g.MechPump[i] = mech
			}
		}()
	}
	for i := 0; i < res; i++ {
		rows <- i
	}
	close(rows)
	wg.Wait()
	if firstErr != nil {
		return nil, firstErr
	}

	g.TorqueEnvelope = make([]float64, res)
	vd := types.CcPerRev(m.Config().Displacement).CubicMetres()
	for i := 0; i < res; i++ {
		best := 0.0
		for k := 0; k < res; k++ {
			if g.MechPump[k][i] > best {
				best = g.MechPump[k][i]
			}
		}
		if best > g.MaxMechPump {
			g.MaxMechPump = best
		}
		g.TorqueEnvelope[i] = vd * (g.Pressures[i] - opts.Charge) * 1e5 /
			(2 * math.Pi * best * 1e-2)
	}
	return g, nil
}

// At returns the HST total efficiency at grid indices (pressure i, speed j).
func (g *Grid) At(i, j int) float64 { return g.TotalHST[i][j] }

func linspace(lo, hi float64, n int) []float64 {
	out := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	out[n-1] = hi
	return out
}
