package tank

import (
	"math"
	"testing"

	"github.com/Ruchit0807/chemicalplantdesign009/internal/chemical"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSolveGeometry_Derived(t *testing.T) {
	for _, vr := range []float64{0.5, 21.951, 102.438, 7000} {
		g, err := SolveGeometry(vr, ModeDerived, nil, nil)
		require.NoError(t, err)
		assert.InDelta(t, 1.5, g.HeightM/g.DiameterM, 1e-12)
		assert.InDelta(t, vr, CylinderVolume(g.DiameterM, g.HeightM), vr*1e-12)
		assert.Empty(t, g.Advisory)
	}
}

func TestSolveGeometry_DerivedIgnoresManualValues(t *testing.T) {
	g, err := SolveGeometry(102.438, ModeDerived, Float(1), Float(1))
	require.NoError(t, err)
	assert.InDelta(t, 4.4302, g.DiameterM, 1e-4)
}

func TestSolveGeometry_ManualAdvisoryThreshold(t *testing.T) {
	d, h := 2.0, 3.0
	v := CylinderVolume(d, h)

	g, err := SolveGeometry(v*1.049, ModeManual, &d, &h)
	require.NoError(t, err)
	assert.Empty(t, g.Advisory)

	g, err = SolveGeometry(v*1.2, ModeManual, &d, &h)
	require.NoError(t, err)
	assert.Contains(t, g.Advisory, "Volume mismatch")
	assert.Equal(t, d, g.DiameterM)
	assert.Equal(t, h, g.HeightM)
}

func TestSolveGeometry_ManualNaNIsMissing(t *testing.T) {
	_, err := SolveGeometry(10, ModeManual, Float(math.NaN()), Float(2))
	assert.ErrorIs(t, err, ErrManualDimensions)
}

func TestPressureChain(t *testing.T) {
	p := PressureChain(1000, 10, 2, 100000, false)
	assert.Equal(t, 2.0, p.EffectiveHeightM)
	assert.Equal(t, 20000.0, p.GaugePa)
	assert.Equal(t, 120000.0, p.AbsolutePa)
	assert.InDelta(t, 134400.0, p.DesignPa, 1e-6)

	p = PressureChain(1000, 10, 2, 100000, true)
	assert.InDelta(t, 2.24, p.EffectiveHeightM, 1e-12)
	assert.InDelta(t, 22400.0, p.GaugePa, 1e-6)
	assert.InDelta(t, 122400.0*1.12, p.DesignPa, 1e-6)
}

func TestShellAndRoofThickness(t *testing.T) {
	p, d, s, e := 197025.80341357674, 4.430233840042128, 200e6, 0.85
	assert.InDelta(t, 2.5687543898286576, ShellThickness(p, d, s, e, 0), 1e-12)
	assert.InDelta(t, 1.2840049466919476, RoofThickness(p, d, s, e, 0), 1e-12)
	assert.InDelta(t, 3.5687543898286576, ShellThickness(p, d, s, e, 1), 1e-12)
}

func TestShellThickness_ZeroDenominator(t *testing.T) {
	// 2SE == P
	got := ShellThickness(1e6, 2, 1e6, 0.5, 0)
	assert.True(t, math.IsInf(got, 1))
}

func TestBaseThickness(t *testing.T) {
	assert.InDelta(t, 9.0, BaseThickness(1e6, 10, chemical.MaterialSS, 0), 1e-9)
	assert.InDelta(t, 13.5, BaseThickness(1e6, 10, chemical.MaterialHDPE, 0), 1e-9)
	assert.InDelta(t, 14.5, BaseThickness(1e6, 10, chemical.MaterialHDPE, 1), 1e-9)

	// floor applies before corrosion
	assert.Equal(t, 2.0, BaseThickness(160, 0.095, chemical.MaterialSS, 0))
	assert.Equal(t, 2.0, BaseThickness(0, 0, chemical.MaterialHDPE, 0))
	assert.InDelta(t, 2.75, BaseThickness(0, 0, chemical.MaterialSS, 0.75), 1e-12)

	// rounded to 3 decimals
	got := BaseThickness(123456, 20.3, chemical.MaterialSS, 0)
	assert.Equal(t, got, math.Round(got*1000)/1000)
}

func TestCheckWarnings(t *testing.T) {
	assert.Empty(t, CheckWarnings(200e6, 0.85, 2e5, 2, 3, 1000))

	w := CheckWarnings(1e5, 1, 2e5, 2, 0.9, 450.5)
	require.Len(t, w, 3)
	assert.Equal(t, thinWallWarning, w[0])
	assert.Equal(t, "Warning: H/D ratio (0.45) is outside recommended range (0.5-3)", w[1])
	assert.Equal(t, "Warning: Density (450.5 kg/m³) is outside typical range (500-1500 kg/m³)", w[2])

	// boundaries are inside the range
	assert.Empty(t, CheckWarnings(200e6, 0.85, 2e5, 2, 1, 500))
	assert.Empty(t, CheckWarnings(200e6, 0.85, 2e5, 2, 6, 1500))
}

func TestClassifyWarning(t *testing.T) {
	assert.Equal(t, WarningThinWall, ClassifyWarning(thinWallWarning))
	assert.Equal(t, WarningAspectRatio, ClassifyWarning("Warning: H/D ratio (9.00) is outside recommended range (0.5-3)"))
	assert.Equal(t, WarningDensity, ClassifyWarning("Warning: Density (1 kg/m³) is outside typical range (500-1500 kg/m³)"))
	assert.Equal(t, "other", ClassifyWarning("something else"))
}

func TestDefaultInput(t *testing.T) {
	in, err := DefaultInput(chemical.Aniline)
	require.NoError(t, err)
	assert.Equal(t, chemical.MaterialSS, in.Material)
	assert.Equal(t, 1021.6, in.DensityKgM3)
	assert.Equal(t, 200e6, in.StressPa)
	assert.Equal(t, 0.85, in.WeldEfficiency)
	assert.Equal(t, 10.0, in.DailyVolumeM3)
	assert.Equal(t, 7.0, in.StorageDays)
	assert.Equal(t, ModeDerived, in.GeometryMode)
	assert.True(t, in.SafetyHeight)

	in, err = DefaultInput(chemical.AceticAnhydride)
	require.NoError(t, err)
	assert.Equal(t, chemical.MaterialHDPE, in.Material)
	assert.Equal(t, 1080.7, in.DensityKgM3)
	assert.Equal(t, 23e6, in.StressPa)

	_, err = DefaultInput("water")
	assert.ErrorIs(t, err, chemical.ErrUnknown)
}

func TestDefaultInputIsValid(t *testing.T) {
	for _, key := range chemical.Keys() {
		in, err := DefaultInput(key)
		require.NoError(t, err)
		assert.True(t, Validate(in).IsValid, key)
		assert.Empty(t, CheckGuardrails(in, DefaultGuardrails()), key)
	}
}
