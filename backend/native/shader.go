package native

import (
	"fmt"

	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"
)

// compositeShaderWGSL draws one layer texture as a quad.
//
// Bindings: 0 is the placement uniform (destination rect in clip space and
// layer opacity), 1 the layer texture, 2 its sampler. Draw four vertices
// as a triangle strip.
const compositeShaderWGSL = `
struct Placement {
    rect: vec4<f32>,
    opacity: f32,
}

@group(0) @binding(0) var<uniform> placement: Placement;
@group(0) @binding(1) var layer_tex: texture_2d<f32>;
@group(0) @binding(2) var layer_sampler: sampler;

struct VertexOutput {
    @builtin(position) position: vec4<f32>,
    @location(0) uv: vec2<f32>,
}

@vertex
fn vs_main(@builtin(vertex_index) vi: u32) -> VertexOutput {
    let u = f32(vi & 1u);
    let v = f32((vi >> 1u) & 1u);
    let x = placement.rect.x + u * placement.rect.z;
    let y = placement.rect.y - v * placement.rect.w;
    var out: VertexOutput;
    out.position = vec4<f32>(x, y, 0.0, 1.0);
    out.uv = vec2<f32>(u, v);
    return out;
}

@fragment
fn fs_main(in: VertexOutput) -> @location(0) vec4<f32> {
    let color = textureSample(layer_tex, layer_sampler, in.uv);
    return color * placement.opacity;
}
`

// CompositeShaderSource returns the WGSL source of the layer composite
// shader, for hosts that build their own pipelines.
func CompositeShaderSource() string { return compositeShaderWGSL }

// compileSPIRV compiles WGSL to little-endian SPIR-V words.
func compileSPIRV(wgsl string) ([]uint32, error) {
	b, err := naga.Compile(wgsl)
	if err != nil {
		return nil, fmt.Errorf("native: compile shader: %w", err)
	}
	words := make([]uint32, len(b)/4)
	for i := range words {
		words[i] = uint32(b[i*4]) |
			uint32(b[i*4+1])<<8 |
			uint32(b[i*4+2])<<16 |
			uint32(b[i*4+3])<<24
	}
	return words, nil
}

func createShaderModule(device hal.Device, label string, spirv []uint32) (hal.ShaderModule, error) {
	return device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  label,
		Source: hal.ShaderSource{SPIRV: spirv},
	})
}
