package config

import (
	"os"
	"strings"
	"testing"

	"github.com/marcus/freeform/internal/workdir"
)

func writeConfig(t *testing.T, dir workdir.Board, body string) {
	t.Helper()
	if err := dir.EnsureDir(); err != nil {
		t.Fatalf("setup: mkdir failed: %v", err)
	}
	if err := os.WriteFile(dir.ConfigPath(), []byte(body), 0644); err != nil {
		t.Fatalf("setup: write failed: %v", err)
	}
}

func TestLoad(t *testing.T) {
	t.Run("non-existent file returns defaults", func(t *testing.T) {
		cfg, err := Load(workdir.At(t.TempDir()))
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if *cfg != *Default() {
			t.Errorf("got %+v, want defaults", cfg)
		}
	})

	t.Run("comments and partial override", func(t *testing.T) {
		dir := workdir.At(t.TempDir())
		writeConfig(t, dir, `{
			// bigger dead zone for trackpads
			"drag_threshold": 8,
			"auto_scroll": {
				"speed": 10, /* per frame */
			},
		}`)

		cfg, err := Load(dir)
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if cfg.DragThreshold != 8 {
			t.Errorf("DragThreshold: got %v, want 8", cfg.DragThreshold)
		}
		if cfg.AutoScroll.Speed != 10 {
			t.Errorf("AutoScroll.Speed: got %v, want 10", cfg.AutoScroll.Speed)
		}
		if cfg.AutoScroll.Threshold != 50 || cfg.AutoScroll.MaxSpeed != 20 {
			t.Errorf("unset auto_scroll fields lost defaults: %+v", cfg.AutoScroll)
		}
		if !cfg.SelectionEnabled || cfg.EdgeRatio != 0.40 {
			t.Errorf("unset fields lost defaults: %+v", cfg)
		}
	})

	t.Run("invalid json", func(t *testing.T) {
		dir := workdir.At(t.TempDir())
		writeConfig(t, dir, `{"drag_threshold": }`)
		if _, err := Load(dir); err == nil {
			t.Error("expected parse error")
		}
	})

	t.Run("invalid values", func(t *testing.T) {
		dir := workdir.At(t.TempDir())
		writeConfig(t, dir, `{"edge_min": -1}`)
		_, err := Load(dir)
		if err == nil || !strings.Contains(err.Error(), "edge_min") {
			t.Errorf("err = %v, want edge_min error", err)
		}
	})
}

func TestSaveRoundTrip(t *testing.T) {
	dir := workdir.At(t.TempDir())
	cfg := Default()
	cfg.DragEnabled = false
	cfg.ContainerInset = 12

	if err := Save(dir, cfg); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	got, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if *got != *cfg {
		t.Errorf("got %+v, want %+v", got, cfg)
	}
}

func TestSet(t *testing.T) {
	tests := []struct {
		key, value string
		wantErr    bool
		check      func(*Options) bool
	}{
		{"drag_threshold", "12", false, func(o *Options) bool { return o.DragThreshold == 12 }},
		{"drag-enabled", "false", false, func(o *Options) bool { return !o.DragEnabled }},
		{"auto_scroll.max_speed", "40", false, func(o *Options) bool { return o.AutoScroll.MaxSpeed == 40 }},
		{"auto_scroll.max_speed", "2", true, nil},
		{"edge_ratio", "-0.1", true, nil},
		{"cell_width", "0", true, nil},
		{"disabled", "maybe", true, nil},
		{"no_such_key", "1", true, nil},
	}
	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			cfg := Default()
			err := cfg.Set(tt.key, tt.value)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Set error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if *cfg != *Default() {
					t.Error("failed Set modified options")
				}
				return
			}
			if !tt.check(cfg) {
				t.Errorf("Set did not apply: %+v", cfg)
			}
		})
	}
}

func TestGetAndKeys(t *testing.T) {
	cfg := Default()
	for _, k := range Keys() {
		if _, err := cfg.Get(k); err != nil {
			t.Errorf("Get(%q): %v", k, err)
		}
	}
	if v, _ := cfg.Get("edge_ratio"); v != "0.4" {
		t.Errorf("edge_ratio = %q, want 0.4", v)
	}
	if v, _ := cfg.Get("selection_enabled"); v != "true" {
		t.Errorf("selection_enabled = %q", v)
	}
	if _, err := cfg.Get("bogus"); err == nil {
		t.Error("expected unknown key error")
	}
}

func TestSetValuePersists(t *testing.T) {
	dir := workdir.At(t.TempDir())
	if err := SetValue(dir, "row_tolerance", "30"); err != nil {
		t.Fatalf("SetValue: %v", err)
	}
	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.RowTolerance != 30 {
		t.Errorf("RowTolerance = %v, want 30", cfg.RowTolerance)
	}
}

func TestZoneOptions(t *testing.T) {
	cfg := Default()
	cfg.EdgeMin = 10
	zo := cfg.ZoneOptions()
	if zo.DragThreshold != 5 || zo.ContainerInset != 20 || zo.Resolver.EdgeMin != 10 {
		t.Errorf("ZoneOptions = %+v", zo)
	}
	if got := zo.Resolver.EdgeThreshold(100); got != 40 {
		t.Errorf("EdgeThreshold(100) = %v, want 40", got)
	}
}
