// Package config loads tuning parameters for posture analysis.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/banshee-data/posture.report/internal/orientation"
	"github.com/banshee-data/posture.report/internal/posture"
)

// DefaultConfigPath is the path to the canonical tuning defaults file.
// This is the single source of truth for all default tuning values.
const DefaultConfigPath = "config/tuning.defaults.json"

// TuningConfig represents the tunable analysis parameters. Fields are
// pointers so partial configs are safe: anything omitted from the JSON
// retains its default.
type TuningConfig struct {
	// Classifier params
	MinJointConfidence *float64 `json:"min_joint_confidence,omitempty"`

	// Orientation gate params
	VisibilityThreshold *float64 `json:"visibility_threshold,omitempty"`
	OcclusionThreshold  *float64 `json:"occlusion_threshold,omitempty"`

	// Severity cutoffs (degrees). Forward head is healthy above its
	// cutoffs; the other two checks are healthy below theirs.
	ForwardHeadNormalMin      *float64 `json:"forward_head_normal_min,omitempty"`
	ForwardHeadMildMin        *float64 `json:"forward_head_mild_min,omitempty"`
	RoundedShouldersNormalMax *float64 `json:"rounded_shoulders_normal_max,omitempty"`
	RoundedShouldersMildMax   *float64 `json:"rounded_shoulders_mild_max,omitempty"`
	BackSlouchNormalMax       *float64 `json:"back_slouch_normal_max,omitempty"`
	BackSlouchMildMax         *float64 `json:"back_slouch_mild_max,omitempty"`
}

// Helper functions to create pointers
func ptrFloat64(v float64) *float64 { return &v }

// EmptyTuningConfig returns a TuningConfig with all fields set to nil.
// Use LoadTuningConfig to load actual values from a file.
func EmptyTuningConfig() *TuningConfig {
	return &TuningConfig{}
}

// DefaultTuningConfig returns the standard tuning values.
func DefaultTuningConfig() *TuningConfig {
	return &TuningConfig{
		MinJointConfidence:        ptrFloat64(float64(posture.DefaultMinJointConfidence)),
		VisibilityThreshold:       ptrFloat64(float64(orientation.DefaultVisibilityThreshold)),
		OcclusionThreshold:        ptrFloat64(float64(orientation.DefaultOcclusionThreshold)),
		ForwardHeadNormalMin:      ptrFloat64(50),
		ForwardHeadMildMin:        ptrFloat64(45),
		RoundedShouldersNormalMax: ptrFloat64(30),
		RoundedShouldersMildMax:   ptrFloat64(40),
		BackSlouchNormalMax:       ptrFloat64(50),
		BackSlouchMildMax:         ptrFloat64(60),
	}
}

// LoadTuningConfig loads a TuningConfig from a JSON file. The file must
// have a .json extension and be under the max file size. Fields omitted
// from the JSON retain their default values via the Get* methods.
func LoadTuningConfig(path string) (*TuningConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptyTuningConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that the configuration values are consistent.
func (c *TuningConfig) Validate() error {
	for name, v := range map[string]*float64{
		"min_joint_confidence": c.MinJointConfidence,
		"visibility_threshold": c.VisibilityThreshold,
		"occlusion_threshold":  c.OcclusionThreshold,
	} {
		if v != nil && (*v < 0 || *v > 1) {
			return fmt.Errorf("%s must be between 0 and 1, got %f", name, *v)
		}
	}

	if c.VisibilityThreshold != nil && c.OcclusionThreshold != nil &&
		*c.OcclusionThreshold >= *c.VisibilityThreshold {
		return fmt.Errorf("occlusion_threshold (%f) must be below visibility_threshold (%f)",
			*c.OcclusionThreshold, *c.VisibilityThreshold)
	}

	// Mild cutoffs must sit on the abnormal side of the normal cutoff.
	if a, b := c.ForwardHeadMildMin, c.ForwardHeadNormalMin; a != nil && b != nil && *a >= *b {
		return fmt.Errorf("forward_head_mild_min (%f) must be below forward_head_normal_min (%f)", *a, *b)
	}
	if a, b := c.RoundedShouldersNormalMax, c.RoundedShouldersMildMax; a != nil && b != nil && *a >= *b {
		return fmt.Errorf("rounded_shoulders_normal_max (%f) must be below rounded_shoulders_mild_max (%f)", *a, *b)
	}
	if a, b := c.BackSlouchNormalMax, c.BackSlouchMildMax; a != nil && b != nil && *a >= *b {
		return fmt.Errorf("back_slouch_normal_max (%f) must be below back_slouch_mild_max (%f)", *a, *b)
	}

	return nil
}

// floatOr returns *v, or fallback when v is nil.
func floatOr(v *float64, fallback float64) float64 {
	if v != nil {
		return *v
	}
	return fallback
}

// GetMinJointConfidence returns the classifier confidence floor.
func (c *TuningConfig) GetMinJointConfidence() float64 {
	return floatOr(c.MinJointConfidence, float64(posture.DefaultMinJointConfidence))
}

// GetVisibilityThreshold returns the gate visibility threshold.
func (c *TuningConfig) GetVisibilityThreshold() float64 {
	return floatOr(c.VisibilityThreshold, float64(orientation.DefaultVisibilityThreshold))
}

// GetOcclusionThreshold returns the gate occlusion threshold.
func (c *TuningConfig) GetOcclusionThreshold() float64 {
	return floatOr(c.OcclusionThreshold, float64(orientation.DefaultOcclusionThreshold))
}

// ClassifierConfig converts the tuning values into a classifier config.
func (c *TuningConfig) ClassifierConfig() posture.Config {
	defaults := posture.DefaultThresholds()
	fh := defaults[posture.ForwardHead]
	rs := defaults[posture.RoundedShoulders]
	bs := defaults[posture.BackSlouch]

	return posture.Config{
		MinJointConfidence: float32(c.GetMinJointConfidence()),
		Thresholds: map[posture.CheckKind]posture.Thresholds{
			posture.ForwardHead: {
				NormalCutoff:   floatOr(c.ForwardHeadNormalMin, fh.NormalCutoff),
				MildCutoff:     floatOr(c.ForwardHeadMildMin, fh.MildCutoff),
				LargerIsBetter: true,
			},
			posture.RoundedShoulders: {
				NormalCutoff: floatOr(c.RoundedShouldersNormalMax, rs.NormalCutoff),
				MildCutoff:   floatOr(c.RoundedShouldersMildMax, rs.MildCutoff),
			},
			posture.BackSlouch: {
				NormalCutoff: floatOr(c.BackSlouchNormalMax, bs.NormalCutoff),
				MildCutoff:   floatOr(c.BackSlouchMildMax, bs.MildCutoff),
			},
		},
	}
}

// GateConfig converts the tuning values into an orientation gate config.
func (c *TuningConfig) GateConfig() orientation.Config {
	return orientation.Config{
		VisibilityThreshold: float32(c.GetVisibilityThreshold()),
		OcclusionThreshold:  float32(c.GetOcclusionThreshold()),
	}
}
