package renderer

// lineShaderWGSL transforms positions by the per-draw view-projection matrix and outputs a flat color.
const lineShaderWGSL = `
struct LineUniforms {
    view_proj: mat4x4<f32>,
    color: vec4<f32>,
};

@group(0) @binding(0) var<uniform> u: LineUniforms;

@vertex
fn vs_main(@location(0) position: vec3<f32>) -> @builtin(position) vec4<f32> {
    return u.view_proj * vec4<f32>(position, 1.0);
}

@fragment
fn fs_main() -> @location(0) vec4<f32> {
    return u.color;
}
`

const lineVertexGLSL = `#version 330 core
layout(location = 0) in vec3 position;
uniform mat4 view_proj;
void main() {
    gl_Position = view_proj * vec4(position, 1.0);
}
` + "\x00"

const lineFragmentGLSL = `#version 330 core
uniform vec4 color;
out vec4 frag_color;
void main() {
    frag_color = color;
}
` + "\x00"
