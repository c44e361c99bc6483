package scene

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/df07/go-volumetric-raytracer/pkg/loaders"
)

func TestTitleCase(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"thick-smoke", "Thick Smoke"},
		{"torus_64", "Torus 64"},
		{"my-custom-grid", "My Custom Grid"},
		{"simple", "Simple"},
		{"", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			result := titleCase(tc.input)
			if result != tc.expected {
				t.Errorf("titleCase(%q) = %q, want %q", tc.input, result, tc.expected)
			}
		})
	}
}

func writeGridFile(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	file, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create grid file: %v", err)
	}
	defer file.Close()

	if err := loaders.WriteDensityGrid(file, TorusGrid(4)); err != nil {
		t.Fatalf("Failed to write grid file: %v", err)
	}
	return path
}

func TestListGridScenes(t *testing.T) {
	dir := t.TempDir()
	writeGridFile(t, dir, "thick-smoke.grid")
	writeGridFile(t, dir, "a_torus.grid")
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0644); err != nil {
		t.Fatal(err)
	}

	scenes, err := ListGridScenes(dir)
	if err != nil {
		t.Fatalf("ListGridScenes failed: %v", err)
	}
	if len(scenes) != 2 {
		t.Fatalf("Expected 2 grid scenes, got %d", len(scenes))
	}

	// Sorted by display name
	if scenes[0].DisplayName != "A Torus" || scenes[1].DisplayName != "Thick Smoke" {
		t.Errorf("Unexpected order: %q, %q", scenes[0].DisplayName, scenes[1].DisplayName)
	}
	for _, s := range scenes {
		if s.Type != "grid" {
			t.Errorf("Expected type grid, got %q", s.Type)
		}
		if !strings.HasPrefix(s.ID, gridScenePrefix) {
			t.Errorf("Expected ID %q to start with %q", s.ID, gridScenePrefix)
		}
	}
}

func TestListGridScenes_MissingDirectory(t *testing.T) {
	scenes, err := ListGridScenes(filepath.Join(t.TempDir(), "nope"))
	if err != nil {
		t.Fatalf("Expected no error for missing directory, got %v", err)
	}
	if len(scenes) != 0 {
		t.Errorf("Expected no scenes, got %d", len(scenes))
	}
}

func TestListAllScenes(t *testing.T) {
	dir := t.TempDir()
	writeGridFile(t, dir, "cloud.grid")

	response, err := ListAllScenes(dir)
	if err != nil {
		t.Fatalf("ListAllScenes failed: %v", err)
	}
	if len(response.Groups) != 2 {
		t.Fatalf("Expected 2 groups, got %d", len(response.Groups))
	}

	builtIn := response.Groups[0]
	if builtIn.Name != "Built-in Scenes" {
		t.Errorf("Expected built-in group first, got %q", builtIn.Name)
	}
	if len(builtIn.Scenes) != len(Names()) {
		t.Errorf("Expected %d built-in scenes, got %d", len(Names()), len(builtIn.Scenes))
	}

	// Every listed id must be accepted by New
	for _, group := range response.Groups {
		for _, info := range group.Scenes {
			if _, err := New(info.ID); err != nil {
				t.Errorf("New(%q) failed: %v", info.ID, err)
			}
		}
	}
}
