package gpu

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
	"go.uber.org/zap"

	"github.com/Faultbox/mipforge/internal/logger"
	"github.com/Faultbox/mipforge/internal/shaders"
	"github.com/Faultbox/mipforge/pkg/mipchain"
)

// workgroupSizePerDim matches @workgroup_size in mipmap.wgsl.
const workgroupSizePerDim = 8

// dispatch fills one mip level: level-1 is read, level is written.
type dispatch struct {
	level       int
	workgroupsX uint32
	workgroupsY uint32
}

// workgroupCount returns the number of workgroups covering n texels.
// Zero texels need zero workgroups; such a dispatch writes nothing.
func workgroupCount(n uint32) uint32 {
	return (n + workgroupSizePerDim - 1) / workgroupSizePerDim
}

// planDispatches lists the dispatches that fill a chain, in ascending
// level order. Level 0 is uploaded, not computed.
func planDispatches(chain mipchain.Chain) []dispatch {
	if chain.Count() < 2 {
		return nil
	}

	out := make([]dispatch, 0, chain.Count()-1)
	for level := 1; level < chain.Count(); level++ {
		ext := chain.Levels[level]
		out = append(out, dispatch{
			level:       level,
			workgroupsX: workgroupCount(ext.Width),
			workgroupsY: workgroupCount(ext.Height),
		})
	}
	return out
}

// MipGenerator owns the compute pipeline that fills mip levels.
type MipGenerator struct {
	ctx      *Context
	layout   *wgpu.BindGroupLayout
	pipeline *wgpu.ComputePipeline
}

// NewMipGenerator compiles the downsampling shader and builds its pipeline.
func NewMipGenerator(ctx *Context) (*MipGenerator, error) {
	module, err := ctx.Device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          "mipmap compute shader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: shaders.MipMapCompute},
	})
	if err != nil {
		return nil, fmt.Errorf("creating shader module: %w", err)
	}
	defer module.Release()

	layout, err := ctx.Device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "mipmap bind group layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageCompute,
				Texture: wgpu.TextureBindingLayout{
					SampleType:    wgpu.TextureSampleTypeFloat,
					ViewDimension: wgpu.TextureViewDimension2D,
				},
			},
			{
				Binding:    1,
				Visibility: wgpu.ShaderStageCompute,
				StorageTexture: wgpu.StorageTextureBindingLayout{
					Access:        wgpu.StorageTextureAccessWriteOnly,
					Format:        wgpu.TextureFormatRGBA8Unorm,
					ViewDimension: wgpu.TextureViewDimension2D,
				},
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("creating bind group layout: %w", err)
	}

	pipelineLayout, err := ctx.Device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "mipmap pipeline layout",
		BindGroupLayouts: []*wgpu.BindGroupLayout{layout},
	})
	if err != nil {
		layout.Release()
		return nil, fmt.Errorf("creating pipeline layout: %w", err)
	}
	defer pipelineLayout.Release()

	pipeline, err := ctx.Device.CreateComputePipeline(&wgpu.ComputePipelineDescriptor{
		Label:  "mipmap pipeline",
		Layout: pipelineLayout,
		Compute: wgpu.ProgrammableStageDescriptor{
			Module:     module,
			EntryPoint: "computeMipMap",
		},
	})
	if err != nil {
		layout.Release()
		return nil, fmt.Errorf("creating compute pipeline: %w", err)
	}

	return &MipGenerator{
		ctx:      ctx,
		layout:   layout,
		pipeline: pipeline,
	}, nil
}

// Generate records and submits the compute pass that fills every level
// of t from its level 0.
func (g *MipGenerator) Generate(t *MipTexture) error {
	encoder, err := g.ctx.Device.CreateCommandEncoder(nil)
	if err != nil {
		return fmt.Errorf("creating command encoder: %w", err)
	}
	defer encoder.Release()

	if err := g.record(encoder, t); err != nil {
		return err
	}

	cmd, err := encoder.Finish(nil)
	if err != nil {
		return fmt.Errorf("finishing encoder: %w", err)
	}
	defer cmd.Release()

	g.ctx.Queue.Submit(cmd)

	logger.Log.Debug("mip chain generated", zap.Int("levels", t.Chain.Count()))
	return nil
}

// record encodes the dispatches into a single compute pass. Ascending
// level order makes each level's input complete before it is read.
func (g *MipGenerator) record(encoder *wgpu.CommandEncoder, t *MipTexture) error {
	pass := encoder.BeginComputePass(nil)
	pass.SetPipeline(g.pipeline)

	for _, d := range planDispatches(t.Chain) {
		bindGroup, err := g.ctx.Device.CreateBindGroup(&wgpu.BindGroupDescriptor{
			Label:  fmt.Sprintf("mipmap pass %d", d.level),
			Layout: g.layout,
			Entries: []wgpu.BindGroupEntry{
				{Binding: 0, TextureView: t.Views[d.level-1]},
				{Binding: 1, TextureView: t.Views[d.level]},
			},
		})
		if err != nil {
			pass.End()
			return fmt.Errorf("creating bind group for level %d: %w", d.level, err)
		}

		pass.SetBindGroup(0, bindGroup, nil)
		pass.DispatchWorkgroups(d.workgroupsX, d.workgroupsY, 1)

		// The pass keeps its own reference while encoding
		bindGroup.Release()
	}

	pass.End()
	return nil
}

// Release frees the pipeline objects.
func (g *MipGenerator) Release() {
	if g.pipeline != nil {
		g.pipeline.Release()
		g.pipeline = nil
	}
	if g.layout != nil {
		g.layout.Release()
		g.layout = nil
	}
}
