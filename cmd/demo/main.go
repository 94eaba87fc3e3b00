package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"desk-replica/config"
	"desk-replica/core"
	"desk-replica/internal/logger"
	"desk-replica/internal/opengl"
	deskio "desk-replica/io"
	"desk-replica/scene"
)

func main() {
	configPath := flag.String("config", "desk.toml", "TOML or YAML settings file; missing file means defaults")
	exportPath := flag.String("export", "", "write the composed frame to a .glb, .obj or .json file and exit")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Init(cfg.Log.Level); err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg, *exportPath); err != nil {
		logger.Log.Error("desk replica failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

func run(cfg config.Config, exportPath string) error {
	window, err := core.NewWindow(cfg.Window.CoreConfig())
	if err != nil {
		return err
	}
	defer window.Destroy()

	renderer, err := opengl.NewRenderer()
	if err != nil {
		return err
	}
	defer renderer.Destroy()

	composer := scene.NewComposer(
		scene.DeskScene(cfg.Assets.TextureDir),
		renderer.Program,
		renderer.Meshes,
		scene.ImageDecoder{},
		renderer.Textures,
		scene.WithLogger(logger.Log),
		scene.WithStrictLookups(cfg.Render.StrictLookups),
		scene.WithFallbackColor(cfg.Render.Fallback()),
	)
	if err := composer.Prepare(); err != nil {
		return fmt.Errorf("prepare scene: %w", err)
	}
	defer composer.Teardown()

	camera := scene.NewCamera(cfg.Camera.PositionVec(), cfg.Camera.Yaw, cfg.Camera.Pitch)
	camera.FOV = cfg.Camera.FOV
	camera.Speed = cfg.Camera.Speed
	camera.Sensitivity = cfg.Camera.Sensitivity
	camera.Orthographic = cfg.Camera.Ortho

	if exportPath != "" {
		frame, err := composer.DrawList()
		if err != nil {
			return err
		}
		if err := deskio.Export(exportPath, frame, camera); err != nil {
			return err
		}
		logger.Log.Info("exported frame", zap.String("path", exportPath), zap.Int("parts", len(frame)))
		return nil
	}

	controller := NewCameraController(window, cameraHome{
		Position: camera.Position,
		Yaw:      camera.Yaw,
		Pitch:    camera.Pitch,
	})

	watcher, err := newTextureWatcher(cfg.Assets.TextureDir)
	if err != nil {
		logger.Log.Warn("texture hot reload disabled", zap.Error(err))
	} else {
		defer watcher.Close()
	}

	overlay := NewTitleOverlay(cfg.Window.Title)
	clearColor := cfg.Render.Clear()

	lastTime := time.Now()
	statsTime := lastTime
	frames := 0

	for !window.ShouldClose() {
		now := time.Now()
		deltaTime := float32(now.Sub(lastTime).Seconds())
		lastTime = now

		controller.Update(window, camera, deltaTime)

		if watcher != nil {
			if name, ok := watcher.Changed(); ok {
				logger.Log.Info("texture changed, preparing scene again", zap.String("file", name))
				composer.Teardown()
				if err := composer.Prepare(); err != nil {
					return fmt.Errorf("prepare scene: %w", err)
				}
			}
		}

		w, h := window.GetFramebufferSize()
		renderer.SetViewport(w, h)
		renderer.BeginFrame(clearColor)
		camera.Apply(renderer.Program, renderer.Aspect())
		if err := composer.Render(); err != nil {
			return fmt.Errorf("render: %w", err)
		}

		window.SwapBuffers()
		window.PollEvents()

		frames++
		if elapsed := now.Sub(statsTime); elapsed >= time.Second {
			mode := "perspective"
			if camera.Orthographic {
				mode = "ortho"
			}
			overlay.Clear()
			overlay.AddPart("%.0f fps", float64(frames)/elapsed.Seconds())
			def := composer.Definition()
			overlay.AddPart("%d draws", def.PartCount())
			overlay.AddPart("speed %.1f", camera.Speed)
			overlay.AddPart("%s", mode)
			window.SetTitle(overlay.Text())
			frames = 0
			statsTime = now
		}
	}
	return nil
}
