// Package model defines the data structures shared by the metrics pipeline.
package model

import "path/filepath"

// Path represents a file system path.
type Path string

// Layer identifies one of the test layers whose results are parsed independently.
type Layer string

const (
	// LayerUnit is the unit test layer (node test runner / TAP output).
	LayerUnit Layer = "unit"
	// LayerBDD is the Cucumber scenario layer.
	LayerBDD Layer = "bdd"
	// LayerAPI is the Newman collection run layer.
	LayerAPI Layer = "api"
	// LayerUI is the Selenium/Mocha browser test layer.
	LayerUI Layer = "ui"
)

// AllLayers lists the layers in aggregation order.
var AllLayers = []Layer{LayerUnit, LayerBDD, LayerAPI, LayerUI}

var layerLabels = map[Layer]string{
	LayerUnit: "Unit Tests",
	LayerBDD:  "BDD Scenarios",
	LayerAPI:  "API Assertions",
	LayerUI:   "UI Tests",
}

// Label returns the human-readable name used in reports.
func (l Layer) Label() string {
	if label, ok := layerLabels[l]; ok {
		return label
	}

	return string(l)
}

// ArtifactKind names a raw input file consumed by the parsers.
type ArtifactKind string

// Artifact kinds. A layer may consume more than one artifact.
const (
	ArtifactUnit     ArtifactKind = "unit"
	ArtifactUnitLcov ArtifactKind = "unit_lcov"
	ArtifactBDD      ArtifactKind = "bdd"
	ArtifactAPI      ArtifactKind = "api"
	ArtifactAPIJSON  ArtifactKind = "api_json"
	ArtifactUI       ArtifactKind = "ui"
)

// AllArtifactKinds lists artifact kinds in report index order.
var AllArtifactKinds = []ArtifactKind{
	ArtifactUnit,
	ArtifactUnitLcov,
	ArtifactBDD,
	ArtifactAPI,
	ArtifactAPIJSON,
	ArtifactUI,
}

// ArtifactPaths maps each artifact kind to its location on disk.
type ArtifactPaths map[ArtifactKind]Path

// DefaultArtifactPaths returns the locations the test scripts write to,
// relative to the project root.
func DefaultArtifactPaths() ArtifactPaths {
	return ArtifactPaths{
		ArtifactUnit:     "backend/unit-test-results.txt",
		ArtifactUnitLcov: "backend/coverage/lcov.info",
		ArtifactBDD:      "backend/bdd-test-results.txt",
		ArtifactAPI:      "backend/api-test-results.txt",
		ArtifactAPIJSON:  "backend/api-test-results.json",
		ArtifactUI:       "ui-tests/ui-test-results.txt",
	}
}

// Under returns a copy with every relative path joined onto base. Absolute
// and empty paths are kept as they are.
func (p ArtifactPaths) Under(base Path) ArtifactPaths {
	out := make(ArtifactPaths, len(p))

	for kind, path := range p {
		if path == "" || base == "" || filepath.IsAbs(string(path)) {
			out[kind] = path
			continue
		}

		out[kind] = Path(filepath.Join(string(base), string(path)))
	}

	return out
}

// ArtifactStatus records whether a configured artifact was found.
type ArtifactStatus struct {
	Kind  ArtifactKind `json:"kind" yaml:"kind"`
	Path  Path         `json:"path" yaml:"path"`
	Found bool         `json:"found" yaml:"found"`
}
