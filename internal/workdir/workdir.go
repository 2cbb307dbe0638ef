// Package workdir locates a board on disk. A board lives in a .freeform
// directory; a .freeform-root file can point a git worktree (or any other
// directory) at the board of another checkout.
package workdir

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

const (
	// StateDir holds every file of a board.
	StateDir = ".freeform"

	rootFile   = ".freeform-root"
	dbFile     = "board.db"
	configFile = "config.json"
	logFile    = "freeform.log"
)

// Source records why a directory was chosen as the board root.
type Source int

const (
	// SourceStart means no marker was found; the start directory is used.
	SourceStart Source = iota
	// SourceRedirect means a .freeform-root file named the root.
	SourceRedirect
	// SourceStateDir means the root already has a .freeform directory.
	SourceStateDir
)

func (s Source) String() string {
	switch s {
	case SourceRedirect:
		return "redirect"
	case SourceStateDir:
		return "state-dir"
	default:
		return "start"
	}
}

// Board is a located board root and the paths of its files.
type Board struct {
	Root   string
	Source Source
}

// At returns the board rooted at root without any discovery.
func At(root string) Board {
	return Board{Root: filepath.Clean(root)}
}

// Dir is the board's state directory.
func (b Board) Dir() string { return filepath.Join(b.Root, StateDir) }

// DBPath is the board database.
func (b Board) DBPath() string { return filepath.Join(b.Dir(), dbFile) }

// ConfigPath is the zone settings file.
func (b Board) ConfigPath() string { return filepath.Join(b.Dir(), configFile) }

// LogPath is where the interactive board logs while it owns the terminal.
func (b Board) LogPath() string { return filepath.Join(b.Dir(), logFile) }

// Exists reports whether the board database has been created.
func (b Board) Exists() bool {
	fi, err := os.Stat(b.DBPath())
	return err == nil && !fi.IsDir()
}

// EnsureDir creates the state directory.
func (b Board) EnsureDir() error {
	if err := os.MkdirAll(b.Dir(), 0755); err != nil {
		return fmt.Errorf("create %s: %w", b.Dir(), err)
	}
	return nil
}

// Locate finds the board for start. The start directory is checked first,
// then the top of its git checkout; in each, a redirect file beats an
// existing state directory. With no marker anywhere the board is rooted at
// start, which is where init creates it.
func Locate(start string) Board {
	if start == "" {
		return Board{}
	}
	start = filepath.Clean(start)

	candidates := []string{start}
	if top, err := gitTopLevel(start); err == nil && top != "" && filepath.Clean(top) != start {
		candidates = append(candidates, filepath.Clean(top))
	}
	for _, dir := range candidates {
		if b, ok := probe(dir); ok {
			return b
		}
	}
	return Board{Root: start, Source: SourceStart}
}

// probe checks one directory for a board marker.
func probe(dir string) (Board, bool) {
	if root, ok := readRootFile(dir); ok {
		return Board{Root: root, Source: SourceRedirect}, true
	}
	if fi, err := os.Stat(filepath.Join(dir, StateDir)); err == nil && fi.IsDir() {
		return Board{Root: dir, Source: SourceStateDir}, true
	}
	return Board{}, false
}

// readRootFile returns the directory named by dir's redirect file. Relative
// targets are taken from dir; a blank file is ignored.
func readRootFile(dir string) (string, bool) {
	content, err := os.ReadFile(filepath.Join(dir, rootFile))
	if err != nil {
		return "", false
	}
	target := strings.TrimSpace(string(content))
	if target == "" {
		return "", false
	}
	if !filepath.IsAbs(target) {
		target = filepath.Join(dir, target)
	}
	return filepath.Clean(target), true
}

func gitTopLevel(dir string) (string, error) {
	out, err := exec.Command("git", "-C", dir, "rev-parse", "--show-toplevel").Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}
