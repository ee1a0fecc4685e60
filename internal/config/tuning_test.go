package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/banshee-data/posture.report/internal/posture"
)

func TestDefaultTuningConfig(t *testing.T) {
	cfg := DefaultTuningConfig()

	if cfg.MinJointConfidence == nil || *cfg.MinJointConfidence != 0.5 {
		t.Errorf("Expected MinJointConfidence 0.5, got %v", cfg.MinJointConfidence)
	}
	if cfg.VisibilityThreshold == nil || *cfg.VisibilityThreshold != 0.5 {
		t.Errorf("Expected VisibilityThreshold 0.5, got %v", cfg.VisibilityThreshold)
	}
	if cfg.OcclusionThreshold == nil || *cfg.OcclusionThreshold != 0.1 {
		t.Errorf("Expected OcclusionThreshold 0.1, got %v", cfg.OcclusionThreshold)
	}
	if cfg.ForwardHeadNormalMin == nil || *cfg.ForwardHeadNormalMin != 50 {
		t.Errorf("Expected ForwardHeadNormalMin 50, got %v", cfg.ForwardHeadNormalMin)
	}
	if cfg.BackSlouchMildMax == nil || *cfg.BackSlouchMildMax != 60 {
		t.Errorf("Expected BackSlouchMildMax 60, got %v", cfg.BackSlouchMildMax)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate, got %v", err)
	}
}

func TestEmptyTuningConfigFallsBackToDefaults(t *testing.T) {
	cfg := EmptyTuningConfig()

	if got := cfg.GetMinJointConfidence(); got != 0.5 {
		t.Errorf("GetMinJointConfidence() = %v, want 0.5", got)
	}
	if got := cfg.GetVisibilityThreshold(); got != 0.5 {
		t.Errorf("GetVisibilityThreshold() = %v, want 0.5", got)
	}
	if got := cfg.GetOcclusionThreshold(); got != 0.1 {
		t.Errorf("GetOcclusionThreshold() = %v, want 0.1", got)
	}

	cc := cfg.ClassifierConfig()
	if cc.Thresholds[posture.ForwardHead].NormalCutoff != 50 {
		t.Errorf("ForwardHead NormalCutoff = %v, want 50", cc.Thresholds[posture.ForwardHead].NormalCutoff)
	}
	if !cc.Thresholds[posture.ForwardHead].LargerIsBetter {
		t.Error("ForwardHead must keep larger-is-better direction")
	}
	if cc.Thresholds[posture.BackSlouch].LargerIsBetter {
		t.Error("BackSlouch must keep smaller-is-better direction")
	}
}

func TestLoadTuningConfig(t *testing.T) {
	dir := t.TempDir()

	t.Run("partial config keeps defaults", func(t *testing.T) {
		path := filepath.Join(dir, "partial.json")
		content := `{"rounded_shoulders_normal_max": 25}`
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		cfg, err := LoadTuningConfig(path)
		if err != nil {
			t.Fatalf("LoadTuningConfig failed: %v", err)
		}
		cc := cfg.ClassifierConfig()
		if got := cc.Thresholds[posture.RoundedShoulders].NormalCutoff; got != 25 {
			t.Errorf("RoundedShoulders NormalCutoff = %v, want 25", got)
		}
		if got := cc.Thresholds[posture.RoundedShoulders].MildCutoff; got != 40 {
			t.Errorf("RoundedShoulders MildCutoff = %v, want default 40", got)
		}
	})

	t.Run("rejects non-json extension", func(t *testing.T) {
		if _, err := LoadTuningConfig(filepath.Join(dir, "tuning.yaml")); err == nil {
			t.Error("expected error for non-.json file")
		}
	})

	t.Run("rejects missing file", func(t *testing.T) {
		if _, err := LoadTuningConfig(filepath.Join(dir, "absent.json")); err == nil {
			t.Error("expected error for missing file")
		}
	})

	t.Run("rejects malformed json", func(t *testing.T) {
		path := filepath.Join(dir, "broken.json")
		if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}
		if _, err := LoadTuningConfig(path); err == nil {
			t.Error("expected error for malformed JSON")
		}
	})
}

func TestValidateRejectsInconsistentCutoffs(t *testing.T) {
	tests := []struct {
		name string
		cfg  TuningConfig
	}{
		{"confidence out of range", TuningConfig{MinJointConfidence: ptrFloat64(1.5)}},
		{"negative threshold", TuningConfig{OcclusionThreshold: ptrFloat64(-0.1)}},
		{"occlusion above visibility", TuningConfig{
			VisibilityThreshold: ptrFloat64(0.2),
			OcclusionThreshold:  ptrFloat64(0.4),
		}},
		{"forward head mild above normal", TuningConfig{
			ForwardHeadNormalMin: ptrFloat64(45),
			ForwardHeadMildMin:   ptrFloat64(50),
		}},
		{"rounded shoulders inverted", TuningConfig{
			RoundedShouldersNormalMax: ptrFloat64(45),
			RoundedShouldersMildMax:   ptrFloat64(40),
		}},
		{"back slouch inverted", TuningConfig{
			BackSlouchNormalMax: ptrFloat64(60),
			BackSlouchMildMax:   ptrFloat64(60),
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestDefaultsFileMatchesCode(t *testing.T) {
	cfg, err := LoadTuningConfig("../../" + DefaultConfigPath)
	if err != nil {
		t.Fatalf("cannot load %s: %v", DefaultConfigPath, err)
	}
	want := DefaultTuningConfig()
	if cfg.GetMinJointConfidence() != want.GetMinJointConfidence() {
		t.Errorf("defaults file min_joint_confidence = %v, want %v",
			cfg.GetMinJointConfidence(), want.GetMinJointConfidence())
	}
	if *cfg.ForwardHeadMildMin != *want.ForwardHeadMildMin {
		t.Errorf("defaults file forward_head_mild_min = %v, want %v",
			*cfg.ForwardHeadMildMin, *want.ForwardHeadMildMin)
	}
}
