package widepath

import (
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/pkg/errors"
)

// Config Recognized conversion options
/*
	RushWidth is recognized and carried for non-clearway roads but the width
	model keeps those roads at BaseWidth all day; ScoreDensity feeds the score
	assignment which is retained but not serialized. Both stay on the surface
	for forward compatibility with the downstream solver.
*/
type Config struct {
	InputDir           string  `hcl:"input_dir,optional"`
	OutputDir          string  `hcl:"output_dir,optional"`
	BaseWidth          float64 `hcl:"base_width,optional"`
	RushWidth          float64 `hcl:"rush_width,optional"`
	ClearwayWidth      float64 `hcl:"clearway_width,optional"`
	ClearwayPercentage int     `hcl:"clearway_percentage,optional"`
	ScoreDensity       int     `hcl:"score_density,optional"`
	BaseSpeed          float64 `hcl:"base_speed,optional"`
}

// DefaultConfig Conversion defaults
func DefaultConfig() Config {
	return Config{
		InputDir:           "datasets",
		OutputDir:          "dataset",
		BaseWidth:          3.5,
		RushWidth:          2.5,
		ClearwayWidth:      4.5,
		ClearwayPercentage: 5,
		ScoreDensity:       20,
		BaseSpeed:          100.0,
	}
}

// LoadConfigFile Overlays an HCL configuration file onto the defaults
/*
	Every attribute is optional; absent attributes keep their default value.
*/
func LoadConfigFile(fname string) (Config, error) {
	cfg := DefaultConfig()
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCLFile(fname)
	if diags.HasErrors() {
		return cfg, errors.Wrapf(diags, "Can't parse config file '%s'", fname)
	}
	diags = gohcl.DecodeBody(hclFile.Body, nil, &cfg)
	if diags.HasErrors() {
		return cfg, errors.Wrapf(diags, "Can't decode config file '%s'", fname)
	}
	return cfg, nil
}
