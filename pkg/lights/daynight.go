package lights

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// DayNight animates a light orbiting the scene. Every output is a pure
// function of simulation time, so frames can be rendered in any order.
type DayNight struct {
	Center core.Vec3 // Orbit center
	Radius float64   // Orbit radius in the XY plane
	Depth  float64   // Fixed Z offset of the orbit plane from Center
	Period float64   // Seconds for a full day

	DayColor       core.Color
	NightColor     core.Color
	DayIntensity   float64
	NightIntensity float64

	DaySky   core.Color
	NightSky core.Color
}

// DefaultDayNight returns a two minute cycle around the origin
func DefaultDayNight() *DayNight {
	return &DayNight{
		Center:         core.NewVec3(0, 0, 0),
		Radius:         8.0,
		Depth:          2.0,
		Period:         120.0,
		DayColor:       core.NewColor(255, 244, 214),
		NightColor:     core.NewColor(90, 110, 190),
		DayIntensity:   1.5,
		NightIntensity: 0.2,
		DaySky:         core.NewColor(68, 142, 228),
		NightSky:       core.NewColor(8, 10, 32),
	}
}

// Angle returns the orbit angle in radians at simTime. t=0 is sunrise on +X.
func (d *DayNight) Angle(simTime float64) float64 {
	if d.Period <= 0 {
		return math.Pi / 2
	}
	return 2 * math.Pi * simTime / d.Period
}

// LightAt returns the light's state at simTime seconds
func (d *DayNight) LightAt(simTime float64) Light {
	angle := d.Angle(simTime)
	position := d.Center.Add(core.NewVec3(
		d.Radius*math.Cos(angle),
		d.Radius*math.Sin(angle),
		d.Depth,
	))

	h := d.heightFactor(position)
	return Light{
		Position:  position,
		Color:     d.NightColor.Lerp(d.DayColor, h),
		Intensity: d.NightIntensity + (d.DayIntensity-d.NightIntensity)*h,
	}
}

// SkyAt blends the night and day sky by the light's height
func (d *DayNight) SkyAt(light Light) core.Color {
	return d.NightSky.Lerp(d.DaySky, d.HeightFactor(light))
}

// HeightFactor maps the light's height on the orbit to [0, 1]:
// 0 at the lowest point, 0.5 on the horizon, 1 overhead.
func (d *DayNight) HeightFactor(light Light) float64 {
	return d.heightFactor(light.Position)
}

func (d *DayNight) heightFactor(position core.Vec3) float64 {
	if d.Radius <= 0 {
		return 1
	}
	h := (position.Y-d.Center.Y)/d.Radius*0.5 + 0.5
	return max(0, min(1, h))
}
