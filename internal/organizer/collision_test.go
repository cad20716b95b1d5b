package organizer

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/spf13/afero"
)

func TestFileExists(t *testing.T) {
	tempDir := t.TempDir()
	fsys := afero.NewOsFs()

	nonExistent := filepath.Join(tempDir, "nonexistent.png")
	if FileExists(fsys, nonExistent) {
		t.Error("FileExists returned true for non-existent file")
	}

	existingFile := filepath.Join(tempDir, "existing.png")
	if err := os.WriteFile(existingFile, []byte("test"), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}
	if !FileExists(fsys, existingFile) {
		t.Error("FileExists returned false for existing file")
	}

	dangling := filepath.Join(tempDir, "dangling.png")
	if err := os.Symlink(filepath.Join(tempDir, "gone.png"), dangling); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}
	if !FileExists(fsys, dangling) {
		t.Error("FileExists returned false for a dangling symlink")
	}
}

func touch(t *testing.T, fsys afero.Fs, path string) {
	t.Helper()
	if err := afero.WriteFile(fsys, path, []byte(path), 0644); err != nil {
		t.Fatalf("Failed to create %s: %v", path, err)
	}
}

func TestResolveCollision_NoConflict(t *testing.T) {
	fsys := afero.NewMemMapFs()
	if err := fsys.MkdirAll("/img", 0755); err != nil {
		t.Fatal(err)
	}

	if got := ResolveCollision(fsys, "/img", "s1-2.png"); got != "s1-2.png" {
		t.Errorf("Expected original filename, got %q", got)
	}
}

func TestResolveCollision_FirstCollision(t *testing.T) {
	fsys := afero.NewMemMapFs()
	touch(t, fsys, "/img/s1-2.png")

	if got := ResolveCollision(fsys, "/img", "s1-2.png"); got != "s1-2_01.png" {
		t.Errorf("Expected %q, got %q", "s1-2_01.png", got)
	}
}

func TestResolveCollision_SecondCollision(t *testing.T) {
	fsys := afero.NewMemMapFs()
	touch(t, fsys, "/img/s1-2.png")
	touch(t, fsys, "/img/s1-2_01.png")

	if got := ResolveCollision(fsys, "/img", "s1-2.png"); got != "s1-2_02.png" {
		t.Errorf("Expected %q, got %q", "s1-2_02.png", got)
	}
}

func TestResolveCollision_FillsGaps(t *testing.T) {
	fsys := afero.NewMemMapFs()
	touch(t, fsys, "/img/s1-2.png")
	touch(t, fsys, "/img/s1-2_02.png")

	if got := ResolveCollision(fsys, "/img", "s1-2.png"); got != "s1-2_01.png" {
		t.Errorf("Expected %q, got %q", "s1-2_01.png", got)
	}
}

func TestResolveCollision_PastNinetyNine(t *testing.T) {
	fsys := afero.NewMemMapFs()
	touch(t, fsys, "/img/s1-2.png")
	for i := 1; i <= 99; i++ {
		touch(t, fsys, fmt.Sprintf("/img/s1-2_%02d.png", i))
	}

	if got := ResolveCollision(fsys, "/img", "s1-2.png"); got != "s1-2_100.png" {
		t.Errorf("Expected %q, got %q", "s1-2_100.png", got)
	}
}

func TestResolveCollision_DirectoryOccupiesName(t *testing.T) {
	fsys := afero.NewMemMapFs()
	if err := fsys.MkdirAll("/img/s1-2.png", 0755); err != nil {
		t.Fatal(err)
	}

	if got := ResolveCollision(fsys, "/img", "s1-2.png"); got != "s1-2_01.png" {
		t.Errorf("Expected %q, got %q", "s1-2_01.png", got)
	}
}

// Feature: slice-rename, Property: Collision Resolution Yields A Free Name

var suffixPattern = regexp.MustCompile(`^s(\d+)-(\d+)(_\d{2,})?\.png$`)

func TestResolveCollisionAlwaysFree(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("resolved name is free and keeps the requested stem", prop.ForAll(
		func(row, col, taken int) bool {
			fsys := afero.NewMemMapFs()
			name := fmt.Sprintf("s%d-%d.png", row, col)
			if taken > 0 {
				touch(t, fsys, filepath.Join("/img", name))
			}
			for i := 1; i < taken; i++ {
				touch(t, fsys, filepath.Join("/img", fmt.Sprintf("s%d-%d_%02d.png", row, col, i)))
			}
			if err := fsys.MkdirAll("/img", 0755); err != nil {
				return false
			}

			got := ResolveCollision(fsys, "/img", name)
			if FileExists(fsys, filepath.Join("/img", got)) {
				t.Logf("resolved %q is taken", got)
				return false
			}

			m := suffixPattern.FindStringSubmatch(got)
			if m == nil || m[1] != fmt.Sprint(row) || m[2] != fmt.Sprint(col) {
				t.Logf("resolved %q does not keep stem of %q", got, name)
				return false
			}

			want := name
			if taken > 0 {
				want = fmt.Sprintf("s%d-%d_%02d.png", row, col, taken)
			}
			return got == want
		},
		gen.IntRange(1, 50),
		gen.IntRange(1, 50),
		gen.IntRange(0, 120),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
