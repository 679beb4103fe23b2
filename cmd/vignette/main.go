package main

import (
	"context"
	"log"
	"math"
	"time"

	"github.com/Carmen-Shannon/vignette-go/common"
	"github.com/Carmen-Shannon/vignette-go/engine/material"
	"github.com/Carmen-Shannon/vignette-go/engine/mesh"
	"github.com/Carmen-Shannon/vignette-go/engine/profiler"
	"github.com/Carmen-Shannon/vignette-go/engine/renderer"
	"github.com/Carmen-Shannon/vignette-go/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/vignette-go/engine/scene"
	"github.com/Carmen-Shannon/vignette-go/engine/texture"
	"github.com/Carmen-Shannon/vignette-go/engine/window"
)

func main() {
	win := window.NewWindow(
		window.WithTitle("Vignette - Vanity Still Life"),
		window.WithWidth(1600),
		window.WithHeight(900),
	)

	r := renderer.NewRenderer(renderer.BackendTypeWGPU, win,
		renderer.WithPresentMode(renderer.PresentModeVSync),
	)

	scenePipeline := pipeline.NewPipeline(scene.PipelineKey,
		pipeline.WithVertexShader(scene.VertexShader()),
		pipeline.WithFragmentShader(scene.FragmentShader()),
	)
	if err := r.RegisterPipelines(scenePipeline); err != nil {
		log.Fatalf("Failed to register scene pipeline: %v", err)
	}

	textures := texture.NewRegistry(r)
	materials := material.NewRegistry(material.WithMaterials(material.Defaults()...))
	meshes := mesh.NewLibrary(r, mesh.NewProceduralSource())

	mgr := scene.NewManager(r, textures, materials, meshes)
	if err := mgr.PrepareScene(context.Background()); err != nil {
		log.Fatalf("Failed to prepare scene: %v", err)
	}
	for _, stub := range mgr.Stubs() {
		log.Printf("[Scene] %s not yet modeled: %s", stub.Name, stub.Note)
	}

	cam := &orbitCamera{
		target:    [3]float32{-15, 2, -5},
		azimuth:   0.9,
		elevation: 0.45,
		radius:    35,
	}

	mgr.SetLighting(
		[3]float32{-0.4, -1.0, -0.3}, // direction
		[3]float32{1.0, 0.96, 0.88},  // warm key color
		[3]float32{0.18, 0.17, 0.20}, // cool ambient fill
	)

	drawsPerFrame := sceneDrawCount(mgr.Objects())
	prof := profiler.NewProfiler(time.Second)

	setupInput(win, cam, mgr)
	win.SetResizeCallback(func(width, height int) {
		r.Resize(width, height)
	})

	var view, projection [16]float32
	lastFrame := time.Now()

	win.SetUpdateCallback(func() {
		now := time.Now()
		dt := float32(now.Sub(lastFrame).Seconds())
		lastFrame = now

		cam.move(dt)
		eye := cam.eye()
		common.LookAt(view[:],
			eye[0], eye[1], eye[2],
			cam.target[0], cam.target[1], cam.target[2],
			0, 1, 0,
		)
		aspect := float32(win.Width()) / float32(max(win.Height(), 1))
		if cam.ortho {
			halfH := cam.radius * 0.5
			halfW := halfH * aspect
			common.Orthographic(projection[:], -halfW, halfW, -halfH, halfH, 0.1, 200)
		} else {
			common.Perspective(projection[:], float32(45.0*math.Pi/180.0), aspect, 0.1, 200)
		}
		mgr.SetViewProjection(view[:], projection[:])
		mgr.SetCameraPosition(eye)

		if err := r.BeginFrame(); err != nil {
			// Surface lost or outdated; reconfigure and try again next frame.
			r.Resize(win.Width(), win.Height())
			return
		}
		if err := mgr.RenderScene(); err != nil {
			log.Printf("Render error: %v", err)
		}
		r.EndFrame()
		r.Present()

		prof.AddDraws(drawsPerFrame)
		prof.Tick()
	})

	log.Println("Controls: mouse=orbit  scroll=zoom  WASD=pan  Q/E=raise/lower  P/O=perspective/orthographic  L=toggle lighting  Esc=quit")
	win.ProcessMessages()

	mgr.Release()
	_ = win.Close()
}

// setupInput wires the orbit camera controls and scene toggles: mouse
// movement orbits, scroll zooms, WASD pans the focus point, Q/E raise and
// lower it, P/O switch projection, and L toggles the lighting model.
func setupInput(win window.Window, cam *orbitCamera, mgr scene.Manager) {
	keyState := make(map[uint32]bool)
	lightingOn := true

	win.SetKeyDownCallback(func(keyCode uint32) {
		keyState[keyCode] = true
		switch keyCode {
		case common.KeyP:
			cam.ortho = false
		case common.KeyO:
			cam.ortho = true
		case common.KeyL:
			lightingOn = !lightingOn
			mgr.SetLightingEnabled(lightingOn)
		}
	})
	win.SetKeyUpCallback(func(keyCode uint32) {
		keyState[keyCode] = false
	})
	cam.keys = keyState

	var haveLast bool
	var lastX, lastY int32
	win.SetMouseMoveCallback(func(x, y int32) {
		if !haveLast {
			lastX, lastY = x, y
			haveLast = true
			return
		}
		cam.orbit(float32(x-lastX), float32(y-lastY))
		lastX, lastY = x, y
	})

	win.SetScrollCallback(func(delta float32) {
		cam.zoom(delta)
	})
}

// orbitCamera circles a focus point on the tabletop. Azimuth and elevation
// are in radians; radius is the distance from the focus point to the eye.
type orbitCamera struct {
	target    [3]float32
	azimuth   float32
	elevation float32
	radius    float32
	ortho     bool

	keys map[uint32]bool
}

const (
	mouseSensitivity = 0.005
	panSpeed         = 12.0 // world units per second
	minElevation     = -1.45
	maxElevation     = 1.45
	minRadius        = 3.0
	maxRadius        = 120.0
)

func (c *orbitCamera) eye() [3]float32 {
	cosE := float32(math.Cos(float64(c.elevation)))
	return [3]float32{
		c.target[0] + c.radius*cosE*float32(math.Cos(float64(c.azimuth))),
		c.target[1] + c.radius*float32(math.Sin(float64(c.elevation))),
		c.target[2] + c.radius*cosE*float32(math.Sin(float64(c.azimuth))),
	}
}

func (c *orbitCamera) orbit(dx, dy float32) {
	c.azimuth += dx * mouseSensitivity
	c.elevation += dy * mouseSensitivity
	c.elevation = float32(math.Max(minElevation, math.Min(maxElevation, float64(c.elevation))))
}

func (c *orbitCamera) zoom(delta float32) {
	c.radius *= 1.0 - delta*0.1
	c.radius = float32(math.Max(minRadius, math.Min(maxRadius, float64(c.radius))))
}

// move pans the focus point with WASD in the camera's ground plane and
// raises or lowers it with Q/E.
func (c *orbitCamera) move(dt float32) {
	if c.keys == nil {
		return
	}
	// Forward on the ground plane points from the eye toward the target.
	fx := -float32(math.Cos(float64(c.azimuth)))
	fz := -float32(math.Sin(float64(c.azimuth)))
	// Right is forward rotated -90 degrees about Y.
	rx := -fz
	rz := fx

	step := panSpeed * dt
	if c.keys[common.KeyW] {
		c.target[0] += fx * step
		c.target[2] += fz * step
	}
	if c.keys[common.KeyS] {
		c.target[0] -= fx * step
		c.target[2] -= fz * step
	}
	if c.keys[common.KeyD] {
		c.target[0] += rx * step
		c.target[2] += rz * step
	}
	if c.keys[common.KeyA] {
		c.target[0] -= rx * step
		c.target[2] -= rz * step
	}
	if c.keys[common.KeyQ] {
		c.target[1] += step
	}
	if c.keys[common.KeyE] {
		c.target[1] -= step
	}
}

// sceneDrawCount returns the number of draw calls one frame of the given
// placement tables produces. Box side and cylinder part selections emit one
// draw per selected range; everything else is a single draw.
func sceneDrawCount(objects []scene.Object) int {
	count := 0
	for _, obj := range objects {
		for _, p := range obj.Placements {
			switch {
			case len(p.Selection.BoxSides) > 0:
				count += len(p.Selection.BoxSides)
			case p.Selection.Cylinder != nil:
				parts := p.Selection.Cylinder
				for _, on := range []bool{parts.Top, parts.Sides, parts.Bottom} {
					if on {
						count++
					}
				}
			default:
				count++
			}
		}
	}
	return count
}
