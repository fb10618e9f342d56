package config

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/popsim/internal/dynamo"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if _, err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
	if cfg.Output.CSV != "population_data.csv" {
		t.Errorf("expected csv population_data.csv, got %s", cfg.Output.CSV)
	}
	if cfg.Output.Every != 10 {
		t.Errorf("expected every 10, got %d", cfg.Output.Every)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("city")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.GrowthRate != 0.03 || cfg.CarryingCapacity != 100000 || cfg.InitialPopulation != 5000 {
		t.Errorf("unexpected city preset: %+v", cfg)
	}
	if cfg.MaxTime != 200 {
		t.Errorf("expected max time 200, got %f", cfg.MaxTime)
	}
	if cfg.Output.CSV == "" {
		t.Error("preset missing default output")
	}

	cfg.GrowthRate = 99
	if Presets["city"].GrowthRate == 99 {
		t.Error("GetPreset returned shared preset")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets()
	expected := []string{"bacteria", "city", "fish"}
	if len(presets) != len(expected) {
		t.Fatalf("expected %v, got %v", expected, presets)
	}
	for i := range expected {
		if presets[i] != expected[i] {
			t.Errorf("preset %d: expected %s, got %s", i, expected[i], presets[i])
		}
	}
}

func TestPresetsAreValid(t *testing.T) {
	for _, name := range ListPresets() {
		warnings, err := GetPreset(name).Validate()
		if err != nil {
			t.Errorf("preset %s invalid: %v", name, err)
		}
		if len(warnings) != 0 {
			t.Errorf("preset %s has warnings: %v", name, warnings)
		}
	}
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Dt = 0
	if _, err := cfg.Validate(); !errors.Is(err, dynamo.ErrParameterBounds) {
		t.Errorf("expected ErrParameterBounds, got %v", err)
	}

	cfg = DefaultConfig()
	cfg.InitialPopulation = 2000
	warnings, err := cfg.Validate()
	if err != nil {
		t.Fatalf("P0 >= K must not be fatal: %v", err)
	}
	if len(warnings) != 1 {
		t.Errorf("expected one warning, got %v", warnings)
	}

	cfg = DefaultConfig()
	cfg.Output.Every = 0
	if _, err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}
	if cfg.Output.Every != 1 {
		t.Errorf("expected every clamped to 1, got %d", cfg.Output.Every)
	}
}

func TestLoadSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fish.yaml")

	if err := Save(path, GetPreset("fish")); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	want := GetPreset("fish").Params()
	if cfg.Params() != want {
		t.Errorf("round trip: got %+v, want %+v", cfg.Params(), want)
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	if err := os.WriteFile(path, []byte("growth_rate: 0.7\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.GrowthRate != 0.7 {
		t.Errorf("expected growth rate 0.7, got %f", cfg.GrowthRate)
	}
	if cfg.CarryingCapacity != DefaultCarryingCapacity || cfg.Output.Every != DefaultEvery {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestLoadIntoKeepsPreset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	if err := os.WriteFile(path, []byte("max_time: 400\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := GetPreset("city")
	if err := LoadInto(path, cfg); err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.MaxTime != 400 {
		t.Errorf("expected max time 400, got %v", cfg.MaxTime)
	}
	if cfg.GrowthRate != 0.03 || cfg.CarryingCapacity != 100000 || cfg.InitialPopulation != 5000 {
		t.Errorf("preset values lost: %+v", cfg)
	}
}

func TestLoadMissing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestEncode(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, GetPreset("fish")); err != nil {
		t.Fatalf("encode failed: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"growth_rate: 0.2", "carrying_capacity: 500", "initial_population: 20", "  csv: population_data.csv"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
}
