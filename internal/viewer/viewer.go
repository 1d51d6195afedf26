// Package viewer implements the frame loop of the terrain viewer.
package viewer

import (
	"fmt"
	"io/fs"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/excavator/internal/config"
	"github.com/Faultbox/excavator/internal/engine/camera"
	"github.com/Faultbox/excavator/internal/engine/debug"
	"github.com/Faultbox/excavator/internal/engine/input"
	"github.com/Faultbox/excavator/internal/engine/renderer"
	"github.com/Faultbox/excavator/internal/engine/shader"
	"github.com/Faultbox/excavator/internal/engine/terrain"
	"github.com/Faultbox/excavator/internal/engine/window"
	"github.com/Faultbox/excavator/internal/logger"
	"github.com/Faultbox/excavator/internal/viewer/shaders"
)

// gpu is the part of the renderer the frame loop drives.
type gpu interface {
	UploadMesh(mesh *terrain.Mesh)
	UploadLines(vertices []mgl32.Vec3)
	Resize(width, height int)
	SetWireframe(on bool)
	Wireframe() bool
	Begin()
	DrawMesh()
	DrawLines()
	CheckError() error
	ReadPixels() (pixels []byte, width, height int)
	Close()
}

// Viewer is the main viewer instance.
type Viewer struct {
	cfg     *config.Config
	running bool

	window   window.Window
	renderer gpu
	program  *shader.Program
	shots    *debug.ScreenshotCapture

	grid  terrain.HeightGrid
	mesh  *terrain.Mesh
	model mgl32.Mat4

	camera *camera.FlyCamera
	lens   camera.Lens
	input  input.Tracker

	width, height int
	pendingShot   bool
	showBounds    bool
}

// New creates the window, GL context, terrain and shader program.
// Failures are returned as *InitError.
func New(cfg *config.Config) (*Viewer, error) {
	logger.Info("initializing viewer",
		zap.String("title", cfg.Window.Title),
		zap.Int("width", cfg.Window.Width),
		zap.Int("height", cfg.Window.Height),
		zap.Int("grid", cfg.Terrain.Size),
	)

	v := &Viewer{
		cfg:    cfg,
		grid:   terrain.NewHeightGrid(cfg.Terrain.Size),
		model:  mgl32.Ident4(),
		camera: newCamera(cfg.Camera),
		lens: camera.Lens{
			FOV:  cfg.Camera.FOV,
			Near: cfg.Camera.Near,
			Far:  cfg.Camera.Far,
		},
	}

	// The mesh does not need a context; build it first so a bad grid fails
	// before any window appears.
	mesh, err := terrain.BuildMesh(v.grid, cfg.Terrain.Spacing)
	if err != nil {
		return nil, &InitError{Stage: "terrain", Err: err}
	}
	v.mesh = mesh

	v.shots, err = debug.NewScreenshotCapture(cfg.Screenshot.Dir, "excavator", cfg.Screenshot.Format)
	if err != nil {
		return nil, &InitError{Stage: "screenshot", Err: err}
	}

	v.window, err = window.New(cfg.Window.Backend, window.Config{
		Title:      cfg.Window.Title,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
		MouseLook:  cfg.Camera.MouseLook,
	})
	if err != nil {
		return nil, &InitError{Stage: "window", Err: err}
	}

	// Renderer must come AFTER the window, since the context must exist
	v.width, v.height = v.window.FramebufferSize()
	r, err := renderer.New(renderer.Config{
		Width:      v.width,
		Height:     v.height,
		ClearColor: cfg.Render.ClearColor,
	})
	if err != nil {
		v.Close()
		return nil, &InitError{Stage: "opengl", Err: err}
	}
	v.renderer = r
	r.SetWireframe(cfg.Render.Wireframe)

	sources, vertPath, fragPath := shaderSources(cfg.Shaders)
	v.program, err = shader.New(r.Device(), sources, vertPath, fragPath)
	if err != nil {
		if cfg.Shaders.Strict {
			v.Close()
			return nil, &InitError{Stage: "shader", Err: err}
		}
		logger.Warn("continuing with a shader program that failed to build", zap.Error(err))
	}

	v.upload()

	logger.Info("viewer initialized successfully",
		zap.Int("vertices", len(v.mesh.Vertices)),
		zap.Int("triangles", v.mesh.TriangleCount()),
	)
	return v, nil
}

func newCamera(cfg config.CameraConfig) *camera.FlyCamera {
	cam := camera.NewFlyCameraAt(
		mgl32.Vec3(cfg.Position),
		mgl32.DegToRad(cfg.Yaw),
		mgl32.DegToRad(cfg.Pitch),
		cfg.Speed,
	)
	if cfg.PitchLimit > 0 {
		cam.PitchLimit = mgl32.DegToRad(cfg.PitchLimit)
		cam.SetOrientation(cam.Yaw(), cam.Pitch())
	}
	return cam
}

// shaderSources picks the built-in sources unless both paths are configured.
func shaderSources(cfg config.ShaderConfig) (fs.FS, string, string) {
	if cfg.Vertex == "" && cfg.Fragment == "" {
		return shaders.FS, shaders.TerrainVertex, shaders.TerrainFragment
	}
	return shader.OSFiles, cfg.Vertex, cfg.Fragment
}

// RebuildTerrain rebuilds the whole mesh from the height grid and uploads it.
// On error the previous mesh stays on screen.
func (v *Viewer) RebuildTerrain() error {
	mesh, err := terrain.BuildMesh(v.grid, v.cfg.Terrain.Spacing)
	if err != nil {
		return err
	}
	v.mesh = mesh
	v.upload()
	return nil
}

func (v *Viewer) upload() {
	v.renderer.UploadMesh(v.mesh)
	v.renderer.UploadLines(debug.BoundsLines(v.mesh.Bounds, debug.DefaultBoundsPadding))
}

// Run starts the frame loop and returns when the window is closed.
func (v *Viewer) Run() error {
	v.running = true

	frameCount := 0
	fpsTimer := time.Now()

	logger.Info("starting frame loop")

	for v.running {
		v.update(v.window.Poll())
		if !v.running {
			break
		}

		if err := v.render(); err != nil {
			return fmt.Errorf("render error: %w", err)
		}

		// Blocks on VSync; the only frame throttle
		v.window.SwapBuffers()

		frameCount++
		if elapsed := time.Since(fpsTimer); elapsed >= time.Second {
			fps := float64(frameCount) / elapsed.Seconds()
			v.window.SetTitle(fmt.Sprintf("%s | %.0f FPS", v.cfg.Window.Title, fps))
			pos := v.camera.Position
			logger.Debug("fps",
				zap.Float64("fps", fps),
				zap.Float32s("position", pos[:]),
				zap.Float32("ground", v.grid.HeightAt(pos.X(), pos.Z(), v.cfg.Terrain.Spacing)),
			)
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	logger.Info("frame loop stopped")
	return nil
}

// update applies one frame of input.
func (v *Viewer) update(s input.Snapshot) {
	v.input.Update(s)

	if s.CloseRequested || v.input.Down(input.ActionClose) {
		v.running = false
		return
	}

	if s.Resized && s.Width > 0 && s.Height > 0 {
		v.width, v.height = s.Width, s.Height
		v.renderer.Resize(s.Width, s.Height)
	}

	applyMovement(v.camera, &v.input)
	if v.cfg.Camera.MouseLook {
		applyMouseLook(v.camera, s, v.cfg.Camera.MouseSensitivity)
	}

	if v.input.Pressed(input.ActionToggleWireframe) {
		v.renderer.SetWireframe(!v.renderer.Wireframe())
	}
	if v.input.Pressed(input.ActionToggleBounds) {
		v.showBounds = !v.showBounds
	}
	if v.input.Pressed(input.ActionRebuildTerrain) {
		if err := v.RebuildTerrain(); err != nil {
			logger.Warn("terrain rebuild failed", zap.Error(err))
		} else {
			logger.Info("terrain rebuilt", zap.Int("triangles", v.mesh.TriangleCount()))
		}
	}
	if v.input.Pressed(input.ActionScreenshot) {
		v.pendingShot = true
	}
}

// render draws the current frame.
func (v *Viewer) render() error {
	v.renderer.Begin()

	v.program.Use()
	v.program.SetMat4(shaders.MVPUniform, modelViewProjection(v.lens, v.camera, v.model, v.width, v.height))
	v.renderer.DrawMesh()
	if v.showBounds {
		v.renderer.DrawLines()
	}

	if v.pendingShot {
		v.pendingShot = false
		v.captureScreenshot()
	}
	return v.renderer.CheckError()
}

func (v *Viewer) captureScreenshot() {
	pixels, w, h := v.renderer.ReadPixels()
	path, err := v.shots.CaptureFromPixels(pixels, w, h)
	if err != nil {
		logger.Warn("screenshot failed", zap.Error(err))
		return
	}
	logger.Info("screenshot saved", zap.String("path", path))
}

// Close releases GPU resources and the window in reverse creation order.
func (v *Viewer) Close() {
	logger.Info("closing viewer")

	if v.program != nil {
		v.program.Close()
	}
	if v.renderer != nil {
		v.renderer.Close()
	}
	if v.window != nil {
		v.window.Close()
	}
}

// applyMovement moves the camera once for every held movement action.
// Steps are per frame, not per second.
func applyMovement(cam *camera.FlyCamera, in *input.Tracker) {
	if in.Down(input.ActionMoveForward) {
		cam.MoveForward()
	}
	if in.Down(input.ActionMoveBackward) {
		cam.MoveBackward()
	}
	if in.Down(input.ActionMoveLeft) {
		cam.MoveLeft()
	}
	if in.Down(input.ActionMoveRight) {
		cam.MoveRight()
	}
	if in.Down(input.ActionMoveUp) {
		cam.MoveUp()
	}
	if in.Down(input.ActionMoveDown) {
		cam.MoveDown()
	}
}

// applyMouseLook turns mouse motion into yaw and pitch. Screen Y grows
// downward, so moving the mouse up pitches up.
func applyMouseLook(cam *camera.FlyCamera, s input.Snapshot, sensitivity float32) {
	if s.MouseDX == 0 && s.MouseDY == 0 {
		return
	}
	cam.Look(
		mgl32.DegToRad(s.MouseDX*sensitivity),
		mgl32.DegToRad(-s.MouseDY*sensitivity),
	)
}

// modelViewProjection composes projection * view * model for a framebuffer size.
func modelViewProjection(lens camera.Lens, cam *camera.FlyCamera, model mgl32.Mat4, width, height int) mgl32.Mat4 {
	aspect := float32(1)
	if height > 0 {
		aspect = float32(width) / float32(height)
	}
	return lens.Projection(aspect).Mul4(cam.ViewMatrix()).Mul4(model)
}
