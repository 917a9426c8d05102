package scene

import (
	"fmt"
	"sort"
	"strings"
)

// SceneInfo represents a built-in scene with its metadata
type SceneInfo struct {
	ID          string `json:"id"`          // Unique identifier passed to Create
	DisplayName string `json:"displayName"` // UI display name
	Description string `json:"description"` // Optional description
	Group       string `json:"group"`       // Grouping category
	Textured    bool   `json:"textured"`    // Accepts a texture path
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

// Options adjust how a scene is built
type Options struct {
	TexturePath string // Image for textured scenes; empty uses a procedural texture
	DayNight    bool   // Animate the light and sky with the day/night cycle
}

const (
	builtInGroup = "Built-in Scenes"
	testGroup    = "Test Scenes"
)

type sceneEntry struct {
	info  SceneInfo
	build func(opts Options) (*Scene, error)
}

func static(build func() *Scene) func(Options) (*Scene, error) {
	return func(Options) (*Scene, error) { return build(), nil }
}

var registry = []sceneEntry{
	{
		info:  SceneInfo{ID: "portal", Description: "Obsidian portal on a stepped rock pyramid with lava pools", Group: builtInGroup},
		build: static(NewPortalScene),
	},
	{
		info: SceneInfo{ID: "textured", Description: "Textured crates on a grass base", Group: builtInGroup, Textured: true},
		build: func(opts Options) (*Scene, error) {
			return NewTexturedScene(opts.TexturePath)
		},
	},
	{
		info:  SceneInfo{ID: "glass-slab", Description: "Glass slab over a checkerboard floor with an ember cube", Group: builtInGroup},
		build: static(NewGlassSlabScene),
	},
	{
		info:  SceneInfo{ID: "green-box", Description: "Single diffuse box seen from above", Group: testGroup},
		build: static(NewGreenBoxScene),
	},
	{
		info:  SceneInfo{ID: "mirror-corridor", Description: "Two facing mirrors; renders as pure sky", Group: testGroup},
		build: static(NewMirrorCorridorScene),
	},
}

// ListScenes returns every built-in scene in registration order
func ListScenes() []SceneInfo {
	scenes := make([]SceneInfo, 0, len(registry))
	for _, entry := range registry {
		info := entry.info
		info.DisplayName = titleCase(info.ID)
		scenes = append(scenes, info)
	}
	return scenes
}

// Create builds the named scene
func Create(name string, opts Options) (*Scene, error) {
	for _, entry := range registry {
		if entry.info.ID != name {
			continue
		}
		s, err := entry.build(opts)
		if err != nil {
			return nil, fmt.Errorf("failed to build scene %s: %w", name, err)
		}
		if opts.DayNight {
			s.EnableDayNight()
		}
		return s, nil
	}
	return nil, fmt.Errorf("unknown scene %q (available: %s)", name, strings.Join(sceneIDs(), ", "))
}

// ListAllScenes returns the scenes grouped by category, built-in scenes first
func ListAllScenes() ScenesResponse {
	var response ScenesResponse

	groupMap := make(map[string][]SceneInfo)
	for _, info := range ListScenes() {
		groupMap[info.Group] = append(groupMap[info.Group], info)
	}

	var groupNames []string
	for groupName := range groupMap {
		if groupName != builtInGroup {
			groupNames = append(groupNames, groupName)
		}
	}
	sort.Strings(groupNames)

	if scenes, exists := groupMap[builtInGroup]; exists {
		response.Groups = append(response.Groups, SceneGroup{Name: builtInGroup, Scenes: scenes})
	}
	for _, groupName := range groupNames {
		response.Groups = append(response.Groups, SceneGroup{Name: groupName, Scenes: groupMap[groupName]})
	}

	return response
}

func sceneIDs() []string {
	ids := make([]string, 0, len(registry))
	for _, entry := range registry {
		ids = append(ids, entry.info.ID)
	}
	return ids
}

// titleCase converts an identifier to title case
// e.g., "mirror-corridor" -> "Mirror Corridor"
func titleCase(s string) string {
	// Replace hyphens and underscores with spaces
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		if len(word) > 0 {
			words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
		}
	}

	return strings.Join(words, " ")
}
