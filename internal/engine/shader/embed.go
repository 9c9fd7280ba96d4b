package shader

import _ "embed"

// SceneVertexShader transforms lit, textured meshes into view space.
//
//go:embed glsl/scene.vert
var SceneVertexShader string

// SceneFragmentShader applies ambient, directional, point and spot lighting.
//
//go:embed glsl/scene.frag
var SceneFragmentShader string
