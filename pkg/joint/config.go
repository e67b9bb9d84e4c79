// Package joint turns a vertex of a frame into a printable joint: analysis
// of the incident struts into an ordered socket layout, then construction
// of a parametric solid with one friction-fit socket per strut.
package joint

import "math"

// Default sizing constants, in mm except where noted. The multipliers are
// ratios against the support size so the whole joint scales uniformly.
const (
	DefaultSupportSize    = 25.4
	DefaultCoreMultiplier = 2.03
	DefaultShellMult      = 0.3424
	DefaultLengthMult     = 2.1739
	DefaultLabelSizeMult  = 0.408
	DefaultGap            = 0.02
	DefaultClearanceAngle = math.Pi / 6 // 30 degrees
	DefaultEnlargeStep    = 1.0
	DefaultMaxEnlarge     = 8
	DefaultSegments       = 48
)

// Config carries every sizing and tolerance parameter of joint synthesis.
// The zero value is not usable; start from DefaultConfig.
type Config struct {
	// Scale is the uniform support-size scale for this run.
	Scale float64
	// SupportSize is the nominal strut channel size at Scale 1.
	SupportSize float64

	CoreMultiplier      float64
	ShellMultiplier     float64
	LengthMultiplier    float64
	LabelSizeMultiplier float64

	// Gap is the print-tolerance clearance added to each bore radius so
	// struts friction-fit without force or slop.
	Gap float64

	// ClearanceAngle is the minimum angular separation floor between
	// adjacent sockets before the layout is flagged as a collision risk.
	ClearanceAngle float64

	// EnlargeStep and MaxEnlargeAttempts bound the core-enlargement retry
	// loop the builder runs when sockets would overlap.
	EnlargeStep        float64
	MaxEnlargeAttempts int

	// Segments is the OpenSCAD facet count emitted in the script header.
	Segments int

	// LabelDepth is the engraving depth of embossed identification text.
	LabelDepth float64
}

// DefaultConfig returns the standard sizing chain at scale 1.
func DefaultConfig() Config {
	return Config{
		Scale:               1.0,
		SupportSize:         DefaultSupportSize,
		CoreMultiplier:      DefaultCoreMultiplier,
		ShellMultiplier:     DefaultShellMult,
		LengthMultiplier:    DefaultLengthMult,
		LabelSizeMultiplier: DefaultLabelSizeMult,
		Gap:                 DefaultGap,
		ClearanceAngle:      DefaultClearanceAngle,
		EnlargeStep:         DefaultEnlargeStep,
		MaxEnlargeAttempts:  DefaultMaxEnlarge,
		Segments:            DefaultSegments,
		LabelDepth:          1.5,
	}
}

// supportSize is the scaled nominal channel size.
func (c Config) supportSize() float64 {
	return c.SupportSize * c.Scale
}

// CoreRadius is the starting radius of the central joint body.
func (c Config) CoreRadius() float64 {
	return c.supportSize() * c.CoreMultiplier / 2
}

// ShellThickness is the wall thickness of a socket sleeve.
func (c Config) ShellThickness() float64 {
	return c.supportSize() * c.ShellMultiplier
}

// SocketLength is the length of a socket sleeve measured from the core
// surface outward.
func (c Config) SocketLength() float64 {
	return c.supportSize() * c.LengthMultiplier
}

// LabelSize is the font size of engraved identification text.
func (c Config) LabelSize() float64 {
	return c.supportSize() * c.LabelSizeMultiplier
}

// BoreRadius is the bore radius for a strut of the given nominal radius,
// including the print-tolerance gap.
func (c Config) BoreRadius(strutRadius float64) float64 {
	r := strutRadius
	if r <= 0 {
		r = c.supportSize() / 2
	}
	return r*c.Scale + c.Gap
}

// SleeveRadius is the outer radius of the sleeve wrapped around a bore.
func (c Config) SleeveRadius(strutRadius float64) float64 {
	return c.BoreRadius(strutRadius) + c.ShellThickness()
}

// Reach is the distance from the joint center to a sleeve tip at the
// starting core radius. Socket clearance is judged there: sleeves may
// merge near the core, but must not share material where the bores open.
func (c Config) Reach() float64 {
	return c.CoreRadius() + c.SocketLength()
}

// MinClearanceAngle is the minimum separation two adjacent sockets of the
// given strut radii need to keep their sleeve tips from sharing material,
// with ClearanceAngle as the printability floor.
func (c Config) MinClearanceAngle(radiusA, radiusB float64) float64 {
	needed := requiredSeparation(c.SleeveRadius(radiusA), c.SleeveRadius(radiusB), c.Reach())
	return math.Max(c.ClearanceAngle, needed)
}

// requiredSeparation is the angle two cylinders of the given outer radii
// need between their axes so they clear each other at core distance.
func requiredSeparation(outerA, outerB, coreRadius float64) float64 {
	if coreRadius <= 0 {
		return math.Pi
	}
	return halfAngle(outerA, coreRadius) + halfAngle(outerB, coreRadius)
}

func halfAngle(outer, dist float64) float64 {
	s := outer / dist
	if s >= 1 {
		return math.Pi / 2
	}
	return math.Asin(s)
}
