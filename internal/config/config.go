package config

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/marcus/freeform/internal/autoscroll"
	"github.com/marcus/freeform/internal/geom"
	"github.com/marcus/freeform/internal/workdir"
	"github.com/marcus/freeform/internal/zone"
	"github.com/tidwall/jsonc"
)

// Options is the on-disk configuration. Zero values are never written by
// Default, so a partial file only overrides what it names.
type Options struct {
	DragThreshold    float64 `json:"drag_threshold"`
	SelectionEnabled bool    `json:"selection_enabled"`
	DragEnabled      bool    `json:"drag_enabled"`
	Disabled         bool    `json:"disabled"`

	AutoScroll autoscroll.Options `json:"auto_scroll"`

	// CellWidth and CellHeight map one terminal cell to logical pixels so
	// pixel thresholds keep their meaning on the board.
	CellWidth  float64 `json:"cell_width"`
	CellHeight float64 `json:"cell_height"`

	RowTolerance   float64 `json:"row_tolerance"`
	EdgeRatio      float64 `json:"edge_ratio"`
	EdgeMin        float64 `json:"edge_min"`
	ContainerInset float64 `json:"container_inset"`
}

// Default returns the built-in configuration.
func Default() *Options {
	return &Options{
		DragThreshold:    zone.DefaultDragThreshold,
		SelectionEnabled: true,
		DragEnabled:      true,
		AutoScroll:       autoscroll.DefaultOptions(),
		CellWidth:        8,
		CellHeight:       16,
		RowTolerance:     geom.DefaultRowTolerance,
		EdgeRatio:        geom.DefaultEdgeRatio,
		EdgeMin:          geom.DefaultEdgeMin,
		ContainerInset:   zone.DefaultContainerInset,
	}
}

// Load reads the config from disk. Comments and trailing commas are
// allowed. A missing file yields the defaults.
func Load(b workdir.Board) (*Options, error) {
	configPath := b.ConfigPath()

	cfg := Default()
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := json.Unmarshal(jsonc.ToJSON(data), cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", configPath, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", configPath, err)
	}
	return cfg, nil
}

// Save writes the config to disk
func Save(b workdir.Board, cfg *Options) error {
	if err := b.EnsureDir(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(b.ConfigPath(), data, 0644)
}

// Validate rejects settings no zone can run with.
func (o *Options) Validate() error {
	checks := []struct {
		key string
		v   float64
	}{
		{"drag_threshold", o.DragThreshold},
		{"auto_scroll.threshold", o.AutoScroll.Threshold},
		{"auto_scroll.speed", o.AutoScroll.Speed},
		{"auto_scroll.max_speed", o.AutoScroll.MaxSpeed},
		{"row_tolerance", o.RowTolerance},
		{"edge_ratio", o.EdgeRatio},
		{"edge_min", o.EdgeMin},
		{"container_inset", o.ContainerInset},
	}
	for _, c := range checks {
		if c.v < 0 {
			return fmt.Errorf("%s must not be negative (got %v)", c.key, c.v)
		}
	}
	if o.CellWidth <= 0 || o.CellHeight <= 0 {
		return fmt.Errorf("cell_width and cell_height must be positive")
	}
	if o.AutoScroll.MaxSpeed < o.AutoScroll.Speed {
		return fmt.Errorf("auto_scroll.max_speed (%v) is below auto_scroll.speed (%v)", o.AutoScroll.MaxSpeed, o.AutoScroll.Speed)
	}
	return nil
}

// ZoneOptions converts the file settings into zone settings.
func (o *Options) ZoneOptions() zone.Options {
	return zone.Options{
		DragThreshold:    o.DragThreshold,
		SelectionEnabled: o.SelectionEnabled,
		DragEnabled:      o.DragEnabled,
		Disabled:         o.Disabled,
		ContainerInset:   o.ContainerInset,
		Resolver: geom.Resolver{
			RowTolerance: o.RowTolerance,
			EdgeRatio:    o.EdgeRatio,
			EdgeMin:      o.EdgeMin,
		},
	}
}

type field struct {
	f *float64
	b *bool
}

func (o *Options) fields() map[string]field {
	return map[string]field{
		"drag_threshold":        {f: &o.DragThreshold},
		"selection_enabled":     {b: &o.SelectionEnabled},
		"drag_enabled":          {b: &o.DragEnabled},
		"disabled":              {b: &o.Disabled},
		"auto_scroll.threshold": {f: &o.AutoScroll.Threshold},
		"auto_scroll.speed":     {f: &o.AutoScroll.Speed},
		"auto_scroll.max_speed": {f: &o.AutoScroll.MaxSpeed},
		"cell_width":            {f: &o.CellWidth},
		"cell_height":           {f: &o.CellHeight},
		"row_tolerance":         {f: &o.RowTolerance},
		"edge_ratio":            {f: &o.EdgeRatio},
		"edge_min":              {f: &o.EdgeMin},
		"container_inset":       {f: &o.ContainerInset},
	}
}

// Keys lists the settable keys in sorted order.
func Keys() []string {
	var o Options
	keys := make([]string, 0, len(o.fields()))
	for k := range o.fields() {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Get returns the value of key formatted for display.
func (o *Options) Get(key string) (string, error) {
	fd, ok := o.fields()[normalizeKey(key)]
	if !ok {
		return "", fmt.Errorf("unknown config key %q", key)
	}
	if fd.b != nil {
		return strconv.FormatBool(*fd.b), nil
	}
	return strconv.FormatFloat(*fd.f, 'g', -1, 64), nil
}

// Set parses value into key. The result is validated; on error the
// options are left unchanged.
func (o *Options) Set(key, value string) error {
	next := *o
	fd, ok := next.fields()[normalizeKey(key)]
	if !ok {
		return fmt.Errorf("unknown config key %q", key)
	}
	value = strings.TrimSpace(value)
	if fd.b != nil {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		*fd.b = b
	} else {
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		*fd.f = f
	}
	if err := next.Validate(); err != nil {
		return err
	}
	*o = next
	return nil
}

// SetValue loads the board's config, sets key and saves it.
func SetValue(b workdir.Board, key, value string) error {
	cfg, err := Load(b)
	if err != nil {
		return err
	}
	if err := cfg.Set(key, value); err != nil {
		return err
	}
	return Save(b, cfg)
}

func normalizeKey(key string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(key)), "-", "_")
}
