// Package shaders provides the built-in GLSL sources.
package shaders

import "embed"

// Paths of the built-in sources inside FS.
const (
	TerrainVertex   = "terrain.vert"
	TerrainFragment = "terrain.frag"
)

// FS holds the built-in shader sources.
//
//go:embed terrain.vert terrain.frag
var FS embed.FS

// MVPUniform is the model-view-projection matrix uniform in the built-in sources.
const MVPUniform = "mvp"
