package hst

// SpeedPredictor maps a displacement (cc/rev) to a nominal rated pump speed
// (rpm). The model is fitted elsewhere; the core only consumes predictions
// and the fit's residual error.
type SpeedPredictor interface {
	Predict(displacement float64) float64
	ResidualRMSE() float64
}

// RatedSpeedBand is the ordered (min, nominal, max) rated pump speed in rpm.
type RatedSpeedBand struct {
	Min     float64
	Nominal float64
	Max     float64
}

// RatedSpeeds derives the rated-speed band for a displacement from an
// injected predictor: nominal prediction plus/minus the residual RMSE.
func RatedSpeeds(displacement float64, model SpeedPredictor) RatedSpeedBand {
	nominal := model.Predict(displacement)
	rmse := model.ResidualRMSE()
	return RatedSpeedBand{
		Min:     nominal - rmse,
		Nominal: nominal,
		Max:     nominal + rmse,
	}
}
