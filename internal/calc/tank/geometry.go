package tank

import (
	"errors"
	"fmt"
	"math"
)

var ErrManualDimensions = errors.New("Manual dimensions D and H must be provided when geometryMode is 'manual'")

type Geometry struct {
	DiameterM float64
	HeightM   float64
	// Advisory is set in manual mode when the dimensions miss the
	// required volume by more than 5%.
	Advisory string
}

// SolveGeometry resolves the tank diameter and height for the required
// volume vr. In derived mode H = 1.5D, so vr = (π·1.5/4)·D³.
func SolveGeometry(vr float64, mode GeometryMode, d, h *float64) (Geometry, error) {
	if mode == ModeDerived {
		D := math.Cbrt((4 * vr) / (math.Pi * heightToDiameter))
		return Geometry{DiameterM: D, HeightM: heightToDiameter * D}, nil
	}

	if !present(d) || !present(h) {
		return Geometry{}, ErrManualDimensions
	}
	g := Geometry{DiameterM: *d, HeightM: *h}

	calculated := CylinderVolume(g.DiameterM, g.HeightM)
	diff := math.Abs(calculated-vr) / vr
	if diff > volumeTolerance {
		g.Advisory = fmt.Sprintf("Warning: Volume mismatch: calculated %s m³ vs required %s m³ (%s%% difference)",
			fixed(calculated, 3), fixed(vr, 3), fixed(diff*100, 1))
	}
	return g, nil
}

func CylinderVolume(d, h float64) float64 {
	return math.Pi * d * d * h / 4
}

// present treats nil, zero and NaN as "not provided".
func present(v *float64) bool {
	return v != nil && *v != 0 && !math.IsNaN(*v)
}
