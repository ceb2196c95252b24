// Package overlay provides the immediate mode control panel drawn over
// the swapchain image. Widgets queue vertices each frame and a single
// flush records the draw calls into the frame's render pass.
package overlay

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"

	"github.com/Faultbox/mipforge/internal/shaders"
)

const (
	solidFloatsPerVertex   = 6 // pos2 + color4
	textFloatsPerVertex    = 8 // pos2 + uv2 + color4
	previewFloatsPerVertex = 4 // pos2 + uv2

	// Vertex capacity is fixed; quads past the cap are dropped for the
	// rest of the frame.
	maxSolidFloats   = 64 * 1024
	maxTextFloats    = 96 * 1024
	previewMaxFloats = 6 * previewFloatsPerVertex
)

// Renderer batches solid quads, glyph quads and the level preview into
// three pipelines sharing one projection uniform.
type Renderer struct {
	device *wgpu.Device
	queue  *wgpu.Queue
	format wgpu.TextureFormat

	screenWidth  int
	screenHeight int

	solidLayout    *wgpu.BindGroupLayout
	texturedLayout *wgpu.BindGroupLayout

	solidPipeline   *wgpu.RenderPipeline
	textPipeline    *wgpu.RenderPipeline
	previewPipeline *wgpu.RenderPipeline

	uniformBuffer *wgpu.Buffer
	solidBuffer   *wgpu.Buffer
	textBuffer    *wgpu.Buffer
	previewBuffer *wgpu.Buffer

	nearestSampler *wgpu.Sampler
	linearSampler  *wgpu.Sampler

	font        *Font
	fontTexture *wgpu.Texture
	fontView    *wgpu.TextureView

	solidBind   *wgpu.BindGroup
	textBind    *wgpu.BindGroup
	previewBind *wgpu.BindGroup

	solidVertices   []float32
	textVertices    []float32
	previewVertices []float32
}

// New creates the renderer for the given surface format. On failure the
// resources created so far are released.
func New(device *wgpu.Device, queue *wgpu.Queue, format wgpu.TextureFormat, width, height int) (*Renderer, error) {
	r := &Renderer{
		device:          device,
		queue:           queue,
		format:          format,
		screenWidth:     width,
		screenHeight:    height,
		font:            NewFont(),
		solidVertices:   make([]float32, 0, 4096),
		textVertices:    make([]float32, 0, 4096),
		previewVertices: make([]float32, 0, previewMaxFloats),
	}

	if err := r.createResources(); err != nil {
		r.Release()
		return nil, err
	}
	return r, nil
}

func (r *Renderer) createResources() error {
	if err := r.createSamplers(); err != nil {
		return err
	}
	if err := r.createFontTexture(); err != nil {
		return err
	}
	if err := r.createUniforms(); err != nil {
		return err
	}
	if err := r.createPipelines(); err != nil {
		return err
	}
	if err := r.createBindGroups(); err != nil {
		return err
	}
	return r.createVertexBuffers()
}

// Resize updates the screen dimensions and the projection uniform.
func (r *Renderer) Resize(width, height int) {
	r.screenWidth = width
	r.screenHeight = height
	r.writeProjection()
}

// GetScreenSize returns the current screen dimensions.
func (r *Renderer) GetScreenSize() (int, int) {
	return r.screenWidth, r.screenHeight
}

// Begin starts a new UI frame.
func (r *Renderer) Begin() {
	r.solidVertices = r.solidVertices[:0]
	r.textVertices = r.textVertices[:0]
	r.previewVertices = r.previewVertices[:0]
}

// Flush uploads the queued vertices and records the draw calls.
// The preview quad renders first so the widgets stay on top.
func (r *Renderer) Flush(pass *wgpu.RenderPassEncoder) {
	if r.previewBind != nil && len(r.previewVertices) > 0 {
		r.queue.WriteBuffer(r.previewBuffer, 0, wgpu.ToBytes(r.previewVertices))
		pass.SetPipeline(r.previewPipeline)
		pass.SetBindGroup(0, r.previewBind, nil)
		pass.SetVertexBuffer(0, r.previewBuffer, 0, wgpu.WholeSize)
		pass.Draw(uint32(len(r.previewVertices)/previewFloatsPerVertex), 1, 0, 0)
	}

	if len(r.solidVertices) > 0 {
		r.queue.WriteBuffer(r.solidBuffer, 0, wgpu.ToBytes(r.solidVertices))
		pass.SetPipeline(r.solidPipeline)
		pass.SetBindGroup(0, r.solidBind, nil)
		pass.SetVertexBuffer(0, r.solidBuffer, 0, wgpu.WholeSize)
		pass.Draw(uint32(len(r.solidVertices)/solidFloatsPerVertex), 1, 0, 0)
	}

	if len(r.textVertices) > 0 {
		r.queue.WriteBuffer(r.textBuffer, 0, wgpu.ToBytes(r.textVertices))
		pass.SetPipeline(r.textPipeline)
		pass.SetBindGroup(0, r.textBind, nil)
		pass.SetVertexBuffer(0, r.textBuffer, 0, wgpu.WholeSize)
		pass.Draw(uint32(len(r.textVertices)/textFloatsPerVertex), 1, 0, 0)
	}
}

// Release frees all GPU resources. Safe to call on a partially
// constructed renderer.
func (r *Renderer) Release() {
	if r.previewBind != nil {
		r.previewBind.Release()
		r.previewBind = nil
	}
	if r.textBind != nil {
		r.textBind.Release()
		r.textBind = nil
	}
	if r.solidBind != nil {
		r.solidBind.Release()
		r.solidBind = nil
	}
	if r.previewBuffer != nil {
		r.previewBuffer.Release()
		r.previewBuffer = nil
	}
	if r.textBuffer != nil {
		r.textBuffer.Release()
		r.textBuffer = nil
	}
	if r.solidBuffer != nil {
		r.solidBuffer.Release()
		r.solidBuffer = nil
	}
	if r.uniformBuffer != nil {
		r.uniformBuffer.Release()
		r.uniformBuffer = nil
	}
	if r.previewPipeline != nil {
		r.previewPipeline.Release()
		r.previewPipeline = nil
	}
	if r.textPipeline != nil {
		r.textPipeline.Release()
		r.textPipeline = nil
	}
	if r.solidPipeline != nil {
		r.solidPipeline.Release()
		r.solidPipeline = nil
	}
	if r.fontView != nil {
		r.fontView.Release()
		r.fontView = nil
	}
	if r.fontTexture != nil {
		r.fontTexture.Release()
		r.fontTexture = nil
	}
	if r.linearSampler != nil {
		r.linearSampler.Release()
		r.linearSampler = nil
	}
	if r.nearestSampler != nil {
		r.nearestSampler.Release()
		r.nearestSampler = nil
	}
	if r.texturedLayout != nil {
		r.texturedLayout.Release()
		r.texturedLayout = nil
	}
	if r.solidLayout != nil {
		r.solidLayout.Release()
		r.solidLayout = nil
	}
}

// DrawRect draws a filled rectangle.
func (r *Renderer) DrawRect(x, y, width, height float32, color Color) {
	r.addQuad(x, y, width, height, color)
}

// DrawRectOutline draws a rectangle outline.
func (r *Renderer) DrawRectOutline(x, y, width, height, thickness float32, color Color) {
	r.addQuad(x, y, width, thickness, color)
	r.addQuad(x, y+height-thickness, width, thickness, color)
	r.addQuad(x, y+thickness, thickness, height-thickness*2, color)
	r.addQuad(x+width-thickness, y+thickness, thickness, height-thickness*2, color)
}

// DrawPanel draws a panel with border.
func (r *Renderer) DrawPanel(x, y, width, height float32, bg, border Color) {
	r.DrawRect(x, y, width, height, bg)
	r.DrawRectOutline(x, y, width, height, 1, border)
}

// DrawText draws text at the given position.
func (r *Renderer) DrawText(x, y float32, text string, scale float32, color Color) {
	gw, gh := r.font.GlyphSize()
	charW := float32(gw) * scale
	charH := float32(gh) * scale

	curX := x
	for _, char := range text {
		if char == '\n' {
			curX = x
			y += charH
			continue
		}
		u0, v0, u1, v1 := r.font.GlyphUV(char)
		r.addGlyphQuad(curX, y, charW, charH, u0, v0, u1, v1, color)
		curX += charW
	}
}

// MeasureText returns the width and height of rendered text.
func (r *Renderer) MeasureText(text string, scale float32) (float32, float32) {
	return r.font.MeasureText(text, scale)
}

// SetPreview binds a texture view for the preview quad. linear selects
// bilinear sampling, otherwise the preview samples nearest.
func (r *Renderer) SetPreview(view *wgpu.TextureView, linear bool) error {
	samp := r.nearestSampler
	if linear {
		samp = r.linearSampler
	}
	bind, err := r.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "preview bind group",
		Layout: r.texturedLayout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, Buffer: r.uniformBuffer, Offset: 0, Size: wgpu.WholeSize},
			{Binding: 1, Sampler: samp},
			{Binding: 2, TextureView: view},
		},
	})
	if err != nil {
		return fmt.Errorf("creating preview bind group: %w", err)
	}
	if r.previewBind != nil {
		r.previewBind.Release()
	}
	r.previewBind = bind
	return nil
}

// ClearPreview drops the bound preview texture.
func (r *Renderer) ClearPreview() {
	if r.previewBind != nil {
		r.previewBind.Release()
		r.previewBind = nil
	}
}

// DrawPreview queues the preview quad for this frame. It is a no-op
// until SetPreview has bound a texture.
func (r *Renderer) DrawPreview(x, y, w, h float32) {
	if r.previewBind == nil {
		return
	}
	r.previewVertices = append(r.previewVertices[:0],
		x, y, 0, 0,
		x+w, y, 1, 0,
		x+w, y+h, 1, 1,
		x, y, 0, 0,
		x+w, y+h, 1, 1,
		x, y+h, 0, 1,
	)
}

// addQuad adds a solid color quad as two triangles.
func (r *Renderer) addQuad(x, y, w, h float32, c Color) {
	if len(r.solidVertices)+6*solidFloatsPerVertex > maxSolidFloats {
		return
	}
	r.solidVertices = append(r.solidVertices,
		x, y, c.R, c.G, c.B, c.A,
		x+w, y, c.R, c.G, c.B, c.A,
		x+w, y+h, c.R, c.G, c.B, c.A,

		x, y, c.R, c.G, c.B, c.A,
		x+w, y+h, c.R, c.G, c.B, c.A,
		x, y+h, c.R, c.G, c.B, c.A,
	)
}

// addGlyphQuad adds a textured quad sampling the font atlas.
func (r *Renderer) addGlyphQuad(x, y, w, h, u0, v0, u1, v1 float32, c Color) {
	if len(r.textVertices)+6*textFloatsPerVertex > maxTextFloats {
		return
	}
	r.textVertices = append(r.textVertices,
		x, y, u0, v0, c.R, c.G, c.B, c.A,
		x+w, y, u1, v0, c.R, c.G, c.B, c.A,
		x+w, y+h, u1, v1, c.R, c.G, c.B, c.A,

		x, y, u0, v0, c.R, c.G, c.B, c.A,
		x+w, y+h, u1, v1, c.R, c.G, c.B, c.A,
		x, y+h, u0, v1, c.R, c.G, c.B, c.A,
	)
}

func (r *Renderer) createSamplers() error {
	var err error
	r.nearestSampler, err = r.device.CreateSampler(&wgpu.SamplerDescriptor{
		Label:         "overlay nearest sampler",
		AddressModeU:  wgpu.AddressModeClampToEdge,
		AddressModeV:  wgpu.AddressModeClampToEdge,
		AddressModeW:  wgpu.AddressModeClampToEdge,
		MagFilter:     wgpu.FilterModeNearest,
		MinFilter:     wgpu.FilterModeNearest,
		MipmapFilter:  wgpu.MipmapFilterModeNearest,
		LodMinClamp:   0,
		LodMaxClamp:   32,
		MaxAnisotropy: 1,
	})
	if err != nil {
		return fmt.Errorf("creating nearest sampler: %w", err)
	}

	r.linearSampler, err = r.device.CreateSampler(&wgpu.SamplerDescriptor{
		Label:         "overlay linear sampler",
		AddressModeU:  wgpu.AddressModeClampToEdge,
		AddressModeV:  wgpu.AddressModeClampToEdge,
		AddressModeW:  wgpu.AddressModeClampToEdge,
		MagFilter:     wgpu.FilterModeLinear,
		MinFilter:     wgpu.FilterModeLinear,
		MipmapFilter:  wgpu.MipmapFilterModeNearest,
		LodMinClamp:   0,
		LodMaxClamp:   32,
		MaxAnisotropy: 1,
	})
	if err != nil {
		return fmt.Errorf("creating linear sampler: %w", err)
	}
	return nil
}

func (r *Renderer) createFontTexture() error {
	atlas := r.font.Atlas()
	width := uint32(atlas.Bounds().Dx())
	height := uint32(atlas.Bounds().Dy())

	var err error
	r.fontTexture, err = r.device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         "font atlas",
		Size:          wgpu.Extent3D{Width: width, Height: height, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        wgpu.TextureFormatRGBA8Unorm,
		Usage:         wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("creating font atlas texture: %w", err)
	}

	r.queue.WriteTexture(
		&wgpu.ImageCopyTexture{
			Texture:  r.fontTexture,
			MipLevel: 0,
			Origin:   wgpu.Origin3D{X: 0, Y: 0, Z: 0},
			Aspect:   wgpu.TextureAspectAll,
		},
		atlas.Pix,
		&wgpu.TextureDataLayout{
			Offset:       0,
			BytesPerRow:  4 * width,
			RowsPerImage: height,
		},
		&wgpu.Extent3D{Width: width, Height: height, DepthOrArrayLayers: 1},
	)

	r.fontView, err = r.fontTexture.CreateView(nil)
	if err != nil {
		return fmt.Errorf("creating font atlas view: %w", err)
	}
	return nil
}

func (r *Renderer) createUniforms() error {
	var err error
	r.uniformBuffer, err = r.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "overlay projection",
		Size:  16 * 4,
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("creating projection buffer: %w", err)
	}
	r.writeProjection()
	return nil
}

func (r *Renderer) writeProjection() {
	proj := orthoMatrix(0, float32(r.screenWidth), float32(r.screenHeight), 0, -1, 1)
	r.queue.WriteBuffer(r.uniformBuffer, 0, wgpu.ToBytes(proj[:]))
}

func (r *Renderer) createPipelines() error {
	var err error
	r.solidLayout, err = r.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "overlay solid layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageVertex,
				Buffer:     wgpu.BufferBindingLayout{Type: wgpu.BufferBindingTypeUniform},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("creating solid layout: %w", err)
	}

	// The text and preview shaders declare the same bindings, so both
	// pipelines share one layout.
	r.texturedLayout, err = r.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "overlay textured layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageVertex,
				Buffer:     wgpu.BufferBindingLayout{Type: wgpu.BufferBindingTypeUniform},
			},
			{
				Binding:    1,
				Visibility: wgpu.ShaderStageFragment,
				Sampler:    wgpu.SamplerBindingLayout{Type: wgpu.SamplerBindingTypeFiltering},
			},
			{
				Binding:    2,
				Visibility: wgpu.ShaderStageFragment,
				Texture: wgpu.TextureBindingLayout{
					SampleType:    wgpu.TextureSampleTypeFloat,
					ViewDimension: wgpu.TextureViewDimension2D,
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("creating textured layout: %w", err)
	}

	solidPipelineLayout, err := r.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "overlay solid pipeline layout",
		BindGroupLayouts: []*wgpu.BindGroupLayout{r.solidLayout},
	})
	if err != nil {
		return fmt.Errorf("creating solid pipeline layout: %w", err)
	}
	defer solidPipelineLayout.Release()

	texturedPipelineLayout, err := r.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "overlay textured pipeline layout",
		BindGroupLayouts: []*wgpu.BindGroupLayout{r.texturedLayout},
	})
	if err != nil {
		return fmt.Errorf("creating textured pipeline layout: %w", err)
	}
	defer texturedPipelineLayout.Release()

	r.solidPipeline, err = r.createPipeline("overlay solid", shaders.OverlaySolid, solidPipelineLayout,
		solidFloatsPerVertex*4, []wgpu.VertexAttribute{
			{Format: wgpu.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0},
			{Format: wgpu.VertexFormatFloat32x4, Offset: 2 * 4, ShaderLocation: 1},
		})
	if err != nil {
		return err
	}

	r.textPipeline, err = r.createPipeline("overlay text", shaders.OverlayText, texturedPipelineLayout,
		textFloatsPerVertex*4, []wgpu.VertexAttribute{
			{Format: wgpu.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0},
			{Format: wgpu.VertexFormatFloat32x2, Offset: 2 * 4, ShaderLocation: 1},
			{Format: wgpu.VertexFormatFloat32x4, Offset: 4 * 4, ShaderLocation: 2},
		})
	if err != nil {
		return err
	}

	r.previewPipeline, err = r.createPipeline("overlay preview", shaders.OverlayPreview, texturedPipelineLayout,
		previewFloatsPerVertex*4, []wgpu.VertexAttribute{
			{Format: wgpu.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0},
			{Format: wgpu.VertexFormatFloat32x2, Offset: 2 * 4, ShaderLocation: 1},
		})
	if err != nil {
		return err
	}
	return nil
}

// createPipeline builds one alpha blended pipeline over the shared
// vertex/fragment entry point convention.
func (r *Renderer) createPipeline(label, source string, layout *wgpu.PipelineLayout, stride uint64, attrs []wgpu.VertexAttribute) (*wgpu.RenderPipeline, error) {
	module, err := r.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          label + " shader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: source},
	})
	if err != nil {
		return nil, fmt.Errorf("compiling %s shader: %w", label, err)
	}
	defer module.Release()

	pipeline, err := r.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  label + " pipeline",
		Layout: layout,
		Vertex: wgpu.VertexState{
			Module:     module,
			EntryPoint: "vs_main",
			Buffers: []wgpu.VertexBufferLayout{{
				ArrayStride: stride,
				StepMode:    wgpu.VertexStepModeVertex,
				Attributes:  attrs,
			}},
		},
		Fragment: &wgpu.FragmentState{
			Module:     module,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{{
				Format: r.format,
				Blend: &wgpu.BlendState{
					Color: wgpu.BlendComponent{
						SrcFactor: wgpu.BlendFactorSrcAlpha,
						DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
						Operation: wgpu.BlendOperationAdd,
					},
					Alpha: wgpu.BlendComponent{
						SrcFactor: wgpu.BlendFactorSrcAlpha,
						DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
						Operation: wgpu.BlendOperationAdd,
					},
				},
				WriteMask: wgpu.ColorWriteMaskAll,
			}},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeNone,
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("creating %s pipeline: %w", label, err)
	}
	return pipeline, nil
}

func (r *Renderer) createBindGroups() error {
	var err error
	r.solidBind, err = r.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "overlay solid bind group",
		Layout: r.solidLayout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, Buffer: r.uniformBuffer, Offset: 0, Size: wgpu.WholeSize},
		},
	})
	if err != nil {
		return fmt.Errorf("creating solid bind group: %w", err)
	}

	r.textBind, err = r.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "overlay text bind group",
		Layout: r.texturedLayout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, Buffer: r.uniformBuffer, Offset: 0, Size: wgpu.WholeSize},
			{Binding: 1, Sampler: r.nearestSampler},
			{Binding: 2, TextureView: r.fontView},
		},
	})
	if err != nil {
		return fmt.Errorf("creating text bind group: %w", err)
	}
	return nil
}

func (r *Renderer) createVertexBuffers() error {
	var err error
	r.solidBuffer, err = r.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "overlay solid vertices",
		Size:  maxSolidFloats * 4,
		Usage: wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("creating solid vertex buffer: %w", err)
	}

	r.textBuffer, err = r.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "overlay text vertices",
		Size:  maxTextFloats * 4,
		Usage: wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("creating text vertex buffer: %w", err)
	}

	r.previewBuffer, err = r.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "overlay preview vertices",
		Size:  previewMaxFloats * 4,
		Usage: wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("creating preview vertex buffer: %w", err)
	}
	return nil
}

// orthoMatrix builds a column major projection mapping pixel
// coordinates, origin top left, onto clip space.
func orthoMatrix(left, right, bottom, top, near, far float32) [16]float32 {
	return [16]float32{
		2 / (right - left), 0, 0, 0,
		0, 2 / (top - bottom), 0, 0,
		0, 0, -2 / (far - near), 0,
		-(right + left) / (right - left), -(top + bottom) / (top - bottom), -(far + near) / (far - near), 1,
	}
}
