// Package engine wires the window, the WebGPU device, and the renderer into a
// single-threaded frame loop. All GPU work happens on the thread that created
// the window; events observed during polling are applied synchronously before
// the next frame is recorded.
package engine

import (
	"fmt"
	"log"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/pulsar3d/pulsar-go/engine/camera"
	"github.com/pulsar3d/pulsar-go/engine/mesh"
	"github.com/pulsar3d/pulsar-go/engine/profiler"
	"github.com/pulsar3d/pulsar-go/engine/renderer"
	"github.com/pulsar3d/pulsar-go/engine/window"
)

type engineImpl struct {
	window window.Window

	instance *wgpu.Instance
	surface  *wgpu.Surface
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue
	config   *wgpu.SurfaceConfiguration

	renderer renderer.Renderer
	cube     mesh.Mesh

	camera        camera.Camera
	cameraUniform *camera.GPUCameraUniform

	depthTexture *wgpu.Texture
	depthView    *wgpu.TextureView

	profiler   *profiler.Profiler
	onUpdate   func()
	frameLimit uint64
	frameCount uint64

	// pendingWidth/pendingHeight hold the latest framebuffer size reported
	// during event polling; applied at the top of the next frame.
	pendingWidth  int
	pendingHeight int
	resizePending bool

	quit bool
}

// Engine owns the window, the GPU device, and the frame loop that draws the
// cube. Create it with NewEngine and drive it with Run from the main
// goroutine.
type Engine interface {
	// Run drives the frame loop until the window closes, Quit is called, or
	// the configured frame limit is reached. It blocks and must be called
	// from the goroutine that created the engine. All resources are released
	// before it returns.
	Run()

	// Quit requests loop shutdown. The loop exits before the next frame.
	Quit()

	// Camera returns the engine's camera. Mutations take effect on the next
	// frame.
	//
	// Returns:
	//   - camera.Camera: the camera
	Camera() camera.Camera

	// Window returns the engine's window.
	//
	// Returns:
	//   - window.Window: the window
	Window() window.Window

	// Resize reconfigures the surface, the depth target, and the camera
	// aspect ratio for the given framebuffer size. Zero-area sizes are
	// ignored; the previous configuration stays active.
	//
	// Parameters:
	//   - width: new framebuffer width in pixels
	//   - height: new framebuffer height in pixels
	Resize(width, height int)
}

var _ Engine = &engineImpl{}

// NewEngine creates the window, initializes the WebGPU instance, surface,
// adapter, device, and queue, uploads the cube mesh, and prepares the camera
// and renderer. Any failure during GPU bring-up is unrecoverable and panics.
//
// Parameters:
//   - options: functional options to configure the engine
//
// Returns:
//   - Engine: the initialized engine, ready to Run
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engineImpl{}
	for _, opt := range options {
		opt(e)
	}

	if e.window == nil {
		e.window = window.NewWindow(
			window.WithTitle("3D Engine"),
			window.WithSize(800, 600),
		)
	}

	e.instance = wgpu.CreateInstance(nil)
	e.surface = e.instance.CreateSurface(e.window.SurfaceDescriptor())

	adapter, err := e.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		CompatibleSurface: e.surface,
	})
	if err != nil {
		panic(fmt.Errorf("failed to request adapter: %w", err))
	}
	e.adapter = adapter

	device, err := adapter.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Main Device",
	})
	if err != nil {
		panic(fmt.Errorf("failed to request device: %w", err))
	}
	e.device = device
	e.queue = device.GetQueue()

	e.configureSurface(e.window.Width(), e.window.Height())
	e.createDepthTexture()

	e.renderer = renderer.NewRenderer(e.device, e.config)
	e.cube = mesh.Cube(e.device, e.queue)

	e.camera = camera.NewCamera(
		camera.WithPosition(2, 2, 2),
		camera.WithAspect(float32(e.config.Width)/float32(e.config.Height)),
	)
	e.cameraUniform = camera.NewGPUCameraUniform()
	e.cameraUniform.UpdateFrom(e.camera)
	e.renderer.SyncCamera(e.queue, e.cameraUniform)

	e.window.SetResizeCallback(func(width, height int) {
		e.pendingWidth = width
		e.pendingHeight = height
		e.resizePending = true
	})

	return e
}

// configureSurface picks the surface format and (re)configures the surface at
// the given size. An sRGB format is preferred so the fragment output is
// gamma-corrected by the hardware.
func (e *engineImpl) configureSurface(width, height int) {
	capabilities := e.surface.GetCapabilities(e.adapter)

	if e.config == nil {
		e.config = &wgpu.SurfaceConfiguration{
			Usage:       wgpu.TextureUsageRenderAttachment,
			Format:      preferredSurfaceFormat(capabilities.Formats),
			PresentMode: wgpu.PresentModeFifo,
			AlphaMode:   capabilities.AlphaModes[0],
		}
	}
	e.config.Width = uint32(width)
	e.config.Height = uint32(height)

	e.surface.Configure(e.adapter, e.device, e.config)
}

// preferredSurfaceFormat returns the first sRGB format in the list, or the
// first format when none is sRGB.
func preferredSurfaceFormat(formats []wgpu.TextureFormat) wgpu.TextureFormat {
	for _, f := range formats {
		switch f {
		case wgpu.TextureFormatBGRA8UnormSrgb, wgpu.TextureFormatRGBA8UnormSrgb:
			return f
		}
	}
	return formats[0]
}

// createDepthTexture allocates the depth target matching the current surface
// configuration, releasing the previous one if present.
func (e *engineImpl) createDepthTexture() {
	if e.depthView != nil {
		e.depthView.Release()
		e.depthView = nil
	}
	if e.depthTexture != nil {
		e.depthTexture.Release()
		e.depthTexture = nil
	}

	texture, err := e.device.CreateTexture(&wgpu.TextureDescriptor{
		Label: "Depth Texture",
		Size: wgpu.Extent3D{
			Width:              e.config.Width,
			Height:             e.config.Height,
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        renderer.DepthFormat,
		Usage:         wgpu.TextureUsageRenderAttachment | wgpu.TextureUsageTextureBinding,
	})
	if err != nil {
		panic(fmt.Errorf("failed to create depth texture: %w", err))
	}
	view, err := texture.CreateView(nil)
	if err != nil {
		texture.Release()
		panic(fmt.Errorf("failed to create depth texture view: %w", err))
	}

	e.depthTexture = texture
	e.depthView = view
}

func (e *engineImpl) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}

	e.configureSurface(width, height)
	e.createDepthTexture()

	e.camera.SetAspect(float32(width) / float32(height))
}

func (e *engineImpl) Camera() camera.Camera {
	return e.camera
}

func (e *engineImpl) Window() window.Window {
	return e.window
}

func (e *engineImpl) Quit() {
	e.quit = true
}

func (e *engineImpl) Run() {
	defer e.release()

	for !e.quit && e.window.Poll() {
		if e.resizePending {
			e.resizePending = false
			e.Resize(e.pendingWidth, e.pendingHeight)
		}

		if e.onUpdate != nil {
			e.onUpdate()
		}

		if err := e.renderFrame(); err != nil {
			log.Printf("[Engine] stopping: %v", err)
			return
		}

		if e.profiler != nil {
			e.profiler.Tick()
		}

		e.frameCount++
		if e.frameLimit > 0 && e.frameCount >= e.frameLimit {
			return
		}
	}
}

// renderFrame records and presents one frame. A nil return means the loop
// continues, whether or not the frame was actually drawn. A non-nil return is
// fatal and stops the loop.
func (e *engineImpl) renderFrame() error {
	// Upload the camera uniform only when the view-projection actually
	// changed since the last upload.
	if vp := e.camera.ViewProjectionMatrix(); vp != e.cameraUniform.ViewProj {
		e.cameraUniform.UpdateFrom(e.camera)
		e.renderer.SyncCamera(e.queue, e.cameraUniform)
	}

	surfaceTexture, err := e.surface.GetCurrentTexture()
	if err != nil {
		switch classifySurfaceError(err) {
		case surfaceErrorReconfigure:
			log.Printf("[Engine] surface unusable, reconfiguring: %v", err)
			e.Resize(e.window.Width(), e.window.Height())
			return nil
		case surfaceErrorFatal:
			return fmt.Errorf("surface out of memory: %w", err)
		default:
			log.Printf("[Engine] skipping frame: %v", err)
			return nil
		}
	}
	defer surfaceTexture.Release()

	view, err := surfaceTexture.CreateView(nil)
	if err != nil {
		log.Printf("[Engine] skipping frame: %v", err)
		return nil
	}
	defer view.Release()

	if err := e.renderer.Render(view, e.depthView, e.queue, e.cube); err != nil {
		log.Printf("[Engine] skipping frame: %v", err)
		return nil
	}

	e.surface.Present()
	return nil
}

// release frees all GPU and window resources in reverse creation order.
func (e *engineImpl) release() {
	if e.cube != nil {
		e.cube.Release()
	}
	if e.renderer != nil {
		e.renderer.Release()
	}
	if e.depthView != nil {
		e.depthView.Release()
	}
	if e.depthTexture != nil {
		e.depthTexture.Release()
	}
	if e.queue != nil {
		e.queue.Release()
	}
	if e.device != nil {
		e.device.Release()
	}
	if e.adapter != nil {
		e.adapter.Release()
	}
	if e.surface != nil {
		e.surface.Release()
	}
	if e.instance != nil {
		e.instance.Release()
	}
	if e.window != nil {
		if err := e.window.Close(); err != nil {
			log.Printf("[Engine] window close: %v", err)
		}
	}
}
