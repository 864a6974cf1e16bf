package spec

import "math"

const (
	PI  = 3.14159265358979323846
	RAD = PI / 180.0

	// EarthRadius is the RTCC reference radius in metres. One Earth radius
	// per hour is EarthRadius/3600 m/s.
	EarthRadius = 6373338.0

	// GRROffset is the time from guidance reference release to liftoff, s.
	GRROffset = 17.0

	// LbmPerKg converts kilograms to pounds mass (1 lbm = 0.45359237 kg).
	LbmPerKg = 0.45359237

	SecondsPerHour = 3600.0
)

// Conversion is a named unit conversion applied to a looked-up value.
type Conversion struct {
	Name  string
	Apply func(float64) float64
}

var (
	Identity = Conversion{"identity", func(v float64) float64 { return v }}

	// SecToHr converts seconds to hours.
	SecToHr = Conversion{"s->hr", func(v float64) float64 { return v / SecondsPerHour }}

	// DegToRad converts degrees to radians.
	DegToRad = Conversion{"deg->rad", func(v float64) float64 { return v * RAD }}

	// Energy converts m^2/s^2 to (Earth radii per hour)^2.
	Energy = Conversion{"m2/s2->er2/hr2", func(v float64) float64 {
		erph := EarthRadius / SecondsPerHour
		return v / (erph * erph)
	}}

	// MToER converts metres to Earth radii.
	MToER = Conversion{"m->er", func(v float64) float64 { return v / EarthRadius }}

	// MpsToERph converts m/s to Earth radii per hour.
	MpsToERph = Conversion{"m/s->er/hr", func(v float64) float64 { return v * SecondsPerHour / EarthRadius }}

	// MassFlow converts kg/s to lbm/hr.
	MassFlow = Conversion{"kg/s->lbm/hr", func(v float64) float64 { return v / LbmPerKg * SecondsPerHour }}

	// RatePerHr converts a per-second rate to per-hour.
	RatePerHr = Conversion{"1/s->1/hr", func(v float64) float64 { return v * SecondsPerHour }}

	// GRRToLiftoff shifts a GRR-relative time to liftoff, s.
	GRRToLiftoff = Conversion{"grr->lo", func(v float64) float64 { return v + GRROffset }}

	// GRRToLiftoffHr shifts a GRR-relative time to liftoff and converts to hours.
	GRRToLiftoffHr = Conversion{"grr->lo hr", func(v float64) float64 { return (v + GRROffset) / SecondsPerHour }}
)

// Poly converts the degree-deg coefficient of a polynomial in seconds with
// angular output in degrees to one in hours with output in radians.
func Poly(deg int) Conversion {
	scale := math.Pow(SecondsPerHour, float64(deg))
	return Conversion{
		Name:  "poly" + string(rune('0'+deg)),
		Apply: func(v float64) float64 { return v * RAD * scale },
	}
}
