package preset

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Ruchit0807/chemicalplantdesign009/internal/calc/tank"
	"github.com/Ruchit0807/chemicalplantdesign009/internal/chemical"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAll(t *testing.T) {
	all := All()
	require.Len(t, all, 6)
	ids := make([]string, 0, len(all))
	for _, p := range all {
		ids = append(ids, p.ID)
		assert.True(t, chemical.Valid(p.Chemical), p.ID)
	}
	assert.Equal(t, []string{"A", "B", "C", "D", "E", "F"}, ids)

	all[0].Name = "changed"
	assert.Equal(t, "Aniline (Reactant)", All()[0].Name)
}

func TestByID(t *testing.T) {
	p, err := ByID("e")
	require.NoError(t, err)
	assert.Equal(t, chemical.Acetanilide, p.Chemical)
	assert.Equal(t, 16.406, p.DailyVolumeM3)

	_, err = ByID("Z")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestByChemical(t *testing.T) {
	got := ByChemical(chemical.AceticAnhydride)
	require.Len(t, got, 1)
	assert.Equal(t, "B", got[0].ID)

	assert.Empty(t, ByChemical("water"))
	assert.NotNil(t, ByChemical("water"))
}

func TestPresetInput(t *testing.T) {
	p, err := ByID("B")
	require.NoError(t, err)
	in, err := p.Input()
	require.NoError(t, err)

	assert.Equal(t, 3.79, in.DailyVolumeM3)
	assert.Equal(t, 7.0, in.StorageDays)
	assert.Equal(t, 1.0, in.TankCount)
	assert.Equal(t, tank.ModeDerived, in.GeometryMode)
	assert.Equal(t, 1080.7, in.DensityKgM3)
	assert.Equal(t, chemical.MaterialHDPE, in.Material)
	assert.Equal(t, tank.HDPEStress, in.StressPa)
	assert.True(t, tank.Validate(in).IsValid)
}

func TestRunPresetA(t *testing.T) {
	p, err := ByID("A")
	require.NoError(t, err)
	res, err := Run(&tank.Handler{}, p)
	require.NoError(t, err)

	assert.InDelta(t, 102.438, res.Output.VrM3, 1e-9)
	assert.InDelta(t, 4.43, res.Output.DiameterM, 1e-9)
	assert.InDelta(t, 2.57, res.Output.ShellMM, 1e-9)
	assert.True(t, res.Comparison.MaterialMatch)

	require.Len(t, res.Comparison.Deviations, 5)
	d := res.Comparison.Deviations[0]
	assert.Equal(t, "diameter_m", d.Field)
	assert.Equal(t, 2.65, d.Expected)
	assert.InDelta(t, 1.78, d.Diff, 1e-9)
	assert.InDelta(t, 67.17, d.Percent, 0.01)
}

func TestCompare_ZeroExpected(t *testing.T) {
	p := Preset{Expected: Expected{MaterialSuggested: chemical.MaterialSS}}
	c := Compare(p, tank.Output{DiameterM: 2, MaterialSuggested: chemical.MaterialHDPE})
	assert.False(t, c.MaterialMatch)
	assert.Equal(t, 2.0, c.Deviations[0].Diff)
	assert.Zero(t, c.Deviations[0].Percent)
}

func TestHandlerCalc(t *testing.T) {
	h := &Handler{}
	r := mux.NewRouter()
	r.HandleFunc("/presets/{id}/calc", h.Calc)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/presets/C/calc", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var res Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, "C", res.Preset.ID)
	assert.Equal(t, chemical.MaterialSS, res.Output.MaterialSuggested)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/presets/X/calc", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandlerList(t *testing.T) {
	rec := httptest.NewRecorder()
	(&Handler{}).List(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	var list []Preset
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Len(t, list, 6)
}
