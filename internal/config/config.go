// Package config loads and validates the YAML blade design configuration.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	"github.com/aeroforge/gobem/internal/airfoil"
	"github.com/aeroforge/gobem/internal/blade"
)

// Error reports a malformed or out-of-range configuration value. Fatal:
// nothing is computed from a configuration that fails validation.
type Error struct {
	Field  string
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("configuration: %s: %s", e.Field, e.Reason)
}

// Stem is the cylindrical mount between the hub and the first blade
// section. The aerodynamic blade starts where the stem ends.
type Stem struct {
	Start    float64 // m, from the rotation axis
	Length   float64 // m
	Diameter float64 // m
}

// End returns the radius where the stem stops and the blade begins
func (s Stem) End() float64 { return s.Start + s.Length }

// Hollow describes the optional hollowing of the manufactured blade. The
// solver ignores it; it is passed through for downstream solid-modeling
// tools.
type Hollow struct {
	Thickness float64 // m, wall thickness
	MinChord  float64 // m, smallest chord worth hollowing
}

// Config is the validated design configuration
type Config struct {
	Environment blade.Environment
	Targets     blade.Targets
	BladeCount  int
	SliceCount  int
	Stem        Stem
	Sections    []blade.SectionSpec
	Hollow      *Hollow
	FoilPath    string // optional external foil database directory
}

// YAML schema with optional fields as pointers, converted to the validated
// Config after unmarshalling
type yamlConfig struct {
	FreeStreamVelocity float64 `yaml:"free_stream_velocity"`
	FluidDensity       float64 `yaml:"fluid_density"`
	DynamicViscosity   float64 `yaml:"dynamic_viscosity"`

	TargetPower        float64 `yaml:"target_power"`
	ExpectedEfficiency float64 `yaml:"expected_efficiency"`
	TipSpeedRatio      float64 `yaml:"tip_speed_ratio"`

	BladeCount int `yaml:"blade_count"`
	SliceCount int `yaml:"slice_count"`

	Stem struct {
		Start    float64 `yaml:"start"`
		Length   float64 `yaml:"length"`
		Diameter float64 `yaml:"diameter"`
	} `yaml:"stem"`

	Sections []yamlSection `yaml:"sections"`

	Hollow *struct {
		Thickness float64 `yaml:"thickness"`
		MinChord  float64 `yaml:"min_chord"`
	} `yaml:"hollow,omitempty"`

	FoilData string `yaml:"foil_data,omitempty"`
}

type yamlSection struct {
	StartR        *float64 `yaml:"start_r,omitempty"`
	EndR          *float64 `yaml:"end_r,omitempty"`
	Airfoil       string   `yaml:"airfoil"`
	AngleOfAttack float64  `yaml:"angle_of_attack"`
	Thickness     *float64 `yaml:"thickness,omitempty"`
	ForcedChord   *float64 `yaml:"forced_chord,omitempty"`
}

// Load reads and validates a configuration file
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading configuration %s: %w", path, err)
	}
	return Parse(raw)
}

// Parse validates a raw YAML configuration
func Parse(raw []byte) (*Config, error) {
	var yc yamlConfig
	if err := yaml.UnmarshalStrict(raw, &yc); err != nil {
		return nil, &Error{Field: "yaml", Reason: err.Error()}
	}

	cfg := &Config{
		Environment: blade.Environment{
			FreeStreamVelocity: yc.FreeStreamVelocity,
			FluidDensity:       yc.FluidDensity,
			DynamicViscosity:   yc.DynamicViscosity,
		},
		Targets: blade.Targets{
			TargetPower:        yc.TargetPower,
			ExpectedEfficiency: yc.ExpectedEfficiency,
			TipSpeedRatio:      yc.TipSpeedRatio,
		},
		BladeCount: yc.BladeCount,
		SliceCount: yc.SliceCount,
		Stem: Stem{
			Start:    yc.Stem.Start,
			Length:   yc.Stem.Length,
			Diameter: yc.Stem.Diameter,
		},
		FoilPath: yc.FoilData,
	}
	if yc.Hollow != nil {
		cfg.Hollow = &Hollow{
			Thickness: yc.Hollow.Thickness,
			MinChord:  yc.Hollow.MinChord,
		}
	}

	if err := validateScalars(cfg); err != nil {
		return nil, err
	}

	sections, err := convertSections(yc.Sections, cfg.Stem)
	if err != nil {
		return nil, err
	}
	cfg.Sections = sections
	return cfg, nil
}

func validateScalars(cfg *Config) error {
	checks := []struct {
		field string
		ok    bool
	}{
		{"free_stream_velocity", cfg.Environment.FreeStreamVelocity > 0},
		{"fluid_density", cfg.Environment.FluidDensity > 0},
		{"dynamic_viscosity", cfg.Environment.DynamicViscosity > 0},
		{"target_power", cfg.Targets.TargetPower > 0},
		{"tip_speed_ratio", cfg.Targets.TipSpeedRatio > 0},
	}
	for _, c := range checks {
		if !c.ok {
			return &Error{Field: c.field, Reason: "must be positive"}
		}
	}
	if e := cfg.Targets.ExpectedEfficiency; e <= 0 || e > 1 {
		return &Error{Field: "expected_efficiency", Reason: "must be in (0, 1]"}
	}
	if cfg.BladeCount < 1 {
		return &Error{Field: "blade_count", Reason: "must be at least 1"}
	}
	if cfg.SliceCount < 2 {
		return &Error{Field: "slice_count", Reason: "must be at least 2"}
	}
	if cfg.Stem.Start < 0 || cfg.Stem.Length < 0 {
		return &Error{Field: "stem", Reason: "start and length must not be negative"}
	}
	if cfg.Stem.End() <= 0 {
		return &Error{Field: "stem", Reason: "stem must end at a positive radius"}
	}
	if cfg.Hollow != nil && cfg.Hollow.Thickness <= 0 {
		return &Error{Field: "hollow.thickness", Reason: "must be positive"}
	}
	return nil
}

func convertSections(in []yamlSection, stem Stem) ([]blade.SectionSpec, error) {
	if len(in) == 0 {
		return nil, &Error{Field: "sections", Reason: "at least one section is required"}
	}

	out := make([]blade.SectionSpec, len(in))
	for i, ys := range in {
		field := fmt.Sprintf("sections[%d]", i)

		spec := blade.SectionSpec{
			Airfoil:          ys.Airfoil,
			AngleOfAttackDeg: ys.AngleOfAttack,
		}
		if spec.Airfoil == "" {
			return nil, &Error{Field: field + ".airfoil", Reason: "required"}
		}

		// The first section starts where the stem ends unless it says
		// otherwise
		switch {
		case ys.StartR != nil:
			spec.StartR = *ys.StartR
		case i == 0:
			spec.StartR = stem.End()
		default:
			return nil, &Error{Field: field + ".start_r", Reason: "required"}
		}
		if spec.StartR <= 0 {
			return nil, &Error{Field: field + ".start_r", Reason: "must be positive"}
		}

		if ys.EndR != nil {
			spec.EndR = *ys.EndR
			if spec.EndR < spec.StartR {
				return nil, &Error{Field: field + ".end_r", Reason: "must not be before start_r"}
			}
		}

		if ys.Thickness != nil {
			spec.Thickness = *ys.Thickness
		} else if t, ok := airfoil.Thickness(ys.Airfoil); ok {
			spec.Thickness = t
		} else {
			return nil, &Error{Field: field + ".thickness",
				Reason: fmt.Sprintf("required: airfoil %q implies no thickness", ys.Airfoil)}
		}
		if spec.Thickness <= 0 {
			return nil, &Error{Field: field + ".thickness", Reason: "must be positive"}
		}

		if ys.ForcedChord != nil {
			spec.ForcedChord = *ys.ForcedChord
			if spec.ForcedChord <= 0 {
				return nil, &Error{Field: field + ".forced_chord", Reason: "must be positive"}
			}
			if ys.EndR == nil {
				return nil, &Error{Field: field + ".forced_chord", Reason: "requires end_r"}
			}
		}

		if i > 0 {
			prev := out[i-1]
			prevEnd := prev.StartR
			if prev.EndR > 0 {
				prevEnd = prev.EndR
			}
			if spec.StartR < prevEnd {
				return nil, &Error{Field: field + ".start_r",
					Reason: fmt.Sprintf("%.4f overlaps previous section ending at %.4f", spec.StartR, prevEnd)}
			}
		}

		out[i] = spec
	}

	if out[0].StartR < stem.End() {
		return nil, &Error{Field: "sections[0].start_r",
			Reason: fmt.Sprintf("%.4f lies inside the stem (ends at %.4f)", out[0].StartR, stem.End())}
	}
	return out, nil
}
