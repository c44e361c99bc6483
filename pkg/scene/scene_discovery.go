package scene

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/df07/go-volumetric-raytracer/pkg/core"
)

const gridScenePrefix = "grid:"

// SceneInfo represents a discovered scene with its metadata
type SceneInfo struct {
	ID          string `json:"id"`          // Name accepted by New
	Name        string `json:"name"`        // Scene name
	DisplayName string `json:"displayName"` // UI display name
	Description string `json:"description"` // Optional description
	Group       string `json:"group"`       // Grouping category
	Type        string `json:"type"`        // "builtin" or "grid"
	FilePath    string `json:"filePath"`    // Path to grid file (grid type only)
}

// SceneGroup represents a group of related scenes
type SceneGroup struct {
	Name   string      `json:"name"`
	Scenes []SceneInfo `json:"scenes"`
}

// ScenesResponse represents the complete response for /api/scenes
type ScenesResponse struct {
	Groups []SceneGroup `json:"groups"`
}

// ListGridScenes scans dir for *.grid density files. A missing directory
// yields no scenes.
func ListGridScenes(dir string) ([]SceneInfo, error) {
	if _, err := os.Stat(dir); err != nil {
		return []SceneInfo{}, nil
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.grid"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
	}

	scenes := make([]SceneInfo, 0, len(files))
	for _, filePath := range files {
		nameWithoutExt := strings.TrimSuffix(filepath.Base(filePath), filepath.Ext(filePath))
		scenes = append(scenes, SceneInfo{
			ID:          gridScenePrefix + filePath,
			Name:        titleCase(nameWithoutExt),
			DisplayName: titleCase(nameWithoutExt),
			Description: "Density grid loaded from " + filepath.Base(filePath),
			Group:       "Density Grids",
			Type:        "grid",
			FilePath:    filePath,
		})
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].DisplayName < scenes[j].DisplayName
	})

	return scenes, nil
}

// ListAllScenes returns built-in scenes and grid files from dir, grouped by category
func ListAllScenes(dir string) (ScenesResponse, error) {
	var response ScenesResponse

	builtIn := SceneGroup{Name: "Built-in Scenes"}
	for _, b := range builtinScenes {
		builtIn.Scenes = append(builtIn.Scenes, SceneInfo{
			ID:          b.name,
			Name:        b.displayName,
			DisplayName: b.displayName,
			Description: b.description,
			Group:       builtIn.Name,
			Type:        "builtin",
		})
	}
	response.Groups = append(response.Groups, builtIn)

	gridScenes, err := ListGridScenes(dir)
	if err != nil {
		return response, fmt.Errorf("failed to list grid scenes: %w", err)
	}

	if len(gridScenes) > 0 {
		response.Groups = append(response.Groups, SceneGroup{Name: gridScenes[0].Group, Scenes: gridScenes})
	}

	core.Logger().Debug("listed scenes", "builtin", len(builtinScenes), "grids", len(gridScenes))
	return response, nil
}

// titleCase converts "my-scene_name" to "My Scene Name"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")
	words := strings.Fields(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}
