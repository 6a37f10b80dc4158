package terrain

import (
	"fmt"
	"sort"
)

// The fixed empire set. Seeds are part of the shipped data: the server bakes
// elevation from this exact composition, so changing any constant here
// changes world geometry for every player.
var profiles = map[string]EmpireProfile{
	"verdania": {
		// Mountain/forest empire: rolling forest floor with a mountain
		// ramp rising toward the north edge.
		Name: "verdania",
		Base: NoiseParams{Seed: 9001, Frequency: 0.004, Amplitude: 18, Octaves: 4, Alpha: 2, Beta: 2},
		Detail: NoiseParams{
			Seed: 9002, Frequency: 0.09, Amplitude: 0.6, Octaves: 2, Alpha: 2, Beta: 2,
		},
		Features: []FeatureLayer{
			{
				Noise: NoiseParams{Seed: 9003, Frequency: 0.012, Amplitude: 55, Octaves: 5, Alpha: 2, Beta: 2},
				Gate:  Gate{Kind: GateNorth, Start: 0.55, End: 0.9},
			},
		},
		Village: VillagePlateau{CenterX: 0, CenterZ: 0, Radius: 90, Height: 12, RimHeight: 3},
		Carves: []Carve{
			// River flowing south out of the mountains, east of the village.
			{Kind: CarveRiver, AlongZ: true, Center: 210, HalfWidth: 26, SpanMin: -1024, SpanMax: 1024, BedHeight: 1.5},
		},
	},
	"sahradesh": {
		// Desert/plains empire: flat erg with dune fields in the corners
		// and an oasis depression near the village.
		Name: "sahradesh",
		Base: NoiseParams{Seed: 7101, Frequency: 0.003, Amplitude: 9, Octaves: 3, Alpha: 2, Beta: 2},
		Detail: NoiseParams{
			Seed: 7102, Frequency: 0.11, Amplitude: 0.4, Octaves: 2, Alpha: 2, Beta: 2,
		},
		Features: []FeatureLayer{
			{
				Noise: NoiseParams{Seed: 7103, Frequency: 0.02, Amplitude: 24, Octaves: 4, Alpha: 2, Beta: 2},
				Gate:  Gate{Kind: GateCorners, Start: 0.6, End: 0.95},
			},
		},
		Village: VillagePlateau{CenterX: 0, CenterZ: 0, Radius: 80, Height: 8, RimHeight: 2},
		Carves: []Carve{
			{Kind: CarveOasis, CenterX: 160, CenterZ: -140, Radius: 70, Depth: 5},
		},
	},
	"meristelle": {
		// Coastal empire: low cliffs strengthening toward the east edge
		// and a harbor cut to sea level on the south shore.
		Name: "meristelle",
		Base: NoiseParams{Seed: 3301, Frequency: 0.0045, Amplitude: 14, Octaves: 4, Alpha: 2, Beta: 2},
		Detail: NoiseParams{
			Seed: 3302, Frequency: 0.1, Amplitude: 0.5, Octaves: 2, Alpha: 2, Beta: 2,
		},
		Features: []FeatureLayer{
			{
				Noise: NoiseParams{Seed: 3303, Frequency: 0.015, Amplitude: 30, Octaves: 5, Alpha: 2, Beta: 2},
				Gate:  Gate{Kind: GateEast, Start: 0.5, End: 0.85},
			},
		},
		Village: VillagePlateau{CenterX: 0, CenterZ: 80, Radius: 85, Height: 10, RimHeight: 2.5},
		Carves: []Carve{
			{Kind: CarveHarbor, CenterX: -120, CenterZ: -380, Radius: 150},
		},
	},
}

// Profiles returns the names of all known empire profiles, sorted.
func Profiles() []string {
	names := make([]string, 0, len(profiles))
	for name := range profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ProfileFor returns the empire profile parameters for the given name.
func ProfileFor(name string) (EmpireProfile, error) {
	ep, ok := profiles[name]
	if !ok {
		return EmpireProfile{}, fmt.Errorf("unknown empire profile %q", name)
	}
	return ep, nil
}
