package chemical

import (
	"errors"
	"fmt"
)

type Key string

const (
	Aniline                  Key = "aniline"
	AceticAnhydride          Key = "acetic_anhydride"
	UnreactedAniline         Key = "unreacted_aniline"
	UnreactedAceticAnhydride Key = "unreacted_acetic_anhydride"
	Acetanilide              Key = "acetanilide"
	AceticAcid               Key = "acetic_acid"
)

type Material string

const (
	MaterialSS   Material = "SS"
	MaterialHDPE Material = "HDPE"
)

var ErrUnknown = errors.New("unknown chemical")

type Properties struct {
	Key             Key      `json:"key"`
	Name            string   `json:"name"`
	DensityKgM3     float64  `json:"density_kg_m3"`
	DefaultMaterial Material `json:"default_material"`
	Description     string   `json:"description"`
	Color           string   `json:"color"`
}

// table order is the dropdown order
var table = [...]Properties{
	{Aniline, "Aniline", 1021.6, MaterialSS, "Primary reactant - aromatic amine", "#3B82F6"},
	{AceticAnhydride, "Acetic Anhydride", 1080.7, MaterialHDPE, "Primary reactant - acylating agent", "#10B981"},
	{UnreactedAniline, "Unreacted Aniline", 1021.6, MaterialSS, "Unreacted aniline for recycling", "#6366F1"},
	{UnreactedAceticAnhydride, "Unreacted Acetic Anhydride", 1080.7, MaterialHDPE, "Unreacted acetic anhydride for recycling", "#059669"},
	{Acetanilide, "Acetanilide", 1140.0, MaterialHDPE, "Main product - N-phenylacetamide", "#DC2626"},
	{AceticAcid, "Acetic Acid", 1049.0, MaterialHDPE, "Co-product - acetic acid", "#EA580C"},
}

// Lookup returns a copy of the reference record for key.
func Lookup(key Key) (Properties, error) {
	for _, p := range table {
		if p.Key == key {
			return p, nil
		}
	}
	return Properties{}, fmt.Errorf("%w: %q", ErrUnknown, string(key))
}

func All() []Properties {
	out := make([]Properties, len(table))
	copy(out, table[:])
	return out
}

func Keys() []Key {
	keys := make([]Key, 0, len(table))
	for _, p := range table {
		keys = append(keys, p.Key)
	}
	return keys
}

func Valid(key Key) bool {
	_, err := Lookup(key)
	return err == nil
}

func ValidMaterial(m Material) bool {
	return m == MaterialSS || m == MaterialHDPE
}
