package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/marcus/freeform/internal/geom"
	"github.com/marcus/freeform/internal/store"
	"github.com/marcus/freeform/internal/workdir"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    slog.Level
		wantErr bool
	}{
		{name: "debug", in: "debug", want: slog.LevelDebug},
		{name: "upper case", in: "WARN", want: slog.LevelWarn},
		{name: "padded", in: " error ", want: slog.LevelError},
		{name: "unknown", in: "loud", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseLevel(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseLevel(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("parseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestNewLoggerWritesJSONWhenPiped(t *testing.T) {
	var buf bytes.Buffer
	logger, err := newLogger(&buf, "info")
	if err != nil {
		t.Fatalf("newLogger: %v", err)
	}
	logger.Debug("hidden")
	logger.Info("board opened", "lanes", 3)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1: %q", len(lines), buf.String())
	}
	var rec map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &rec); err != nil {
		t.Fatalf("not JSON: %v", err)
	}
	if rec["msg"] != "board opened" || rec["lanes"] != float64(3) {
		t.Errorf("record = %v", rec)
	}
}

func TestSplitColumns(t *testing.T) {
	got := splitColumns(" Todo, Doing ,,Done ")
	if strings.Join(got, "|") != "Todo|Doing|Done" {
		t.Errorf("splitColumns = %q", got)
	}
}

func TestCreateBoard(t *testing.T) {
	dir := workdir.At(t.TempDir())
	ctx := context.Background()

	if err := createBoard(ctx, dir, "Sprint", []string{"Todo", "Done"}); err != nil {
		t.Fatalf("createBoard: %v", err)
	}
	if err := createBoard(ctx, dir, "Again", []string{"X"}); err == nil {
		t.Error("second createBoard should fail")
	}
	if err := createBoard(ctx, workdir.At(t.TempDir()), "Empty", nil); err == nil {
		t.Error("createBoard without columns should fail")
	}

	db, err := store.Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer db.Close()
	b, err := db.LoadBoard(ctx)
	if err != nil {
		t.Fatalf("LoadBoard: %v", err)
	}
	if b.Name != "Sprint" || len(b.Columns) != 2 {
		t.Fatalf("board = %+v", b)
	}

	col, err := findColumn(b, "done")
	if err != nil || col.Name != "Done" {
		t.Errorf("findColumn by name = %v, %v", col, err)
	}
	if col, err := findColumn(b, b.Columns[0].ID); err != nil || col.Name != "Todo" {
		t.Errorf("findColumn by id = %v, %v", col, err)
	}
	if _, err := findColumn(b, "missing"); err == nil {
		t.Error("findColumn should fail for an unknown column")
	}
}

func TestResolveLayout(t *testing.T) {
	layout := `
pointer: {x: %X%, y: 20}
exclude: [0]
items:
  - {index: 0, x: 0,   y: 0, w: 100, h: 50}
  - {index: 1, x: 110, y: 0, w: 100, h: 50}
  - {index: 2, x: 220, y: 0, w: 100, h: 50}
`
	tests := []struct {
		x    string
		want string
	}{
		{x: "115", want: "1"},         // left edge band of 1
		{x: "160", want: "no-change"}, // middle of 1
		{x: "200", want: "2"},         // gap between 1 and 2
		{x: "500", want: "3"},         // past the last item
	}
	for _, tt := range tests {
		in := strings.ReplaceAll(layout, "%X%", tt.x)
		got, err := resolveLayout(strings.NewReader(in), geom.DefaultResolver())
		if err != nil {
			t.Fatalf("resolveLayout(x=%s): %v", tt.x, err)
		}
		if got != tt.want {
			t.Errorf("resolveLayout(x=%s) = %s, want %s", tt.x, got, tt.want)
		}
	}

	if _, err := resolveLayout(strings.NewReader("pointer: ["), geom.DefaultResolver()); err == nil {
		t.Error("expected a decode error")
	}
}

func TestRenderGuidePlain(t *testing.T) {
	out, err := renderGuide(false)
	if err != nil {
		t.Fatalf("renderGuide: %v", err)
	}
	if !strings.Contains(out, "freeform init") {
		t.Error("guide should show how to start")
	}
}

func TestDashFlags(t *testing.T) {
	if got := dashFlags(nil, "log_level"); got != "log-level" {
		t.Errorf("dashFlags = %q, want log-level", got)
	}
}
