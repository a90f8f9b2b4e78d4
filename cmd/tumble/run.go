package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/tumble/audio"
	"github.com/lixenwraith/tumble/config"
	"github.com/lixenwraith/tumble/core"
	"github.com/lixenwraith/tumble/engine"
	"github.com/lixenwraith/tumble/input"
	"github.com/lixenwraith/tumble/parameter"
	"github.com/lixenwraith/tumble/render"
	"github.com/lixenwraith/tumble/scene"
	"github.com/lixenwraith/tumble/snapshot"
	"github.com/lixenwraith/tumble/status"
	"github.com/lixenwraith/tumble/stream"
)

// run simulates the configured scene in the terminal or headless
func run(cfg *config.Config) error {
	def, err := scene.Resolve(cfg.Scene)
	if err != nil {
		return err
	}

	acfg := audio.DefaultAudioConfig()
	acfg.Enabled = cfg.Audio.Enabled && !cfg.Headless
	acfg.MasterVolume = cfg.Audio.Volume
	player := audio.NewPlayer(acfg.ApplyEnv())
	if err := player.Initialize(); err != nil {
		log.Printf("[AUDIO] initialization failed: %v (continuing without audio)", err)
	}
	defer player.Cleanup()

	built, err := def.Build(scene.BuildOptions{
		Sound:     player,
		Logger:    log.Default(),
		MaxPasses: cfg.MaxPasses,
	})
	if err != nil {
		return err
	}

	sc := engine.NewScene(built.World)
	sc.Controller = built.Controller
	sc.Prepaint = built.Prepaint
	sc.TickRate = cfg.TickRate
	sc.Clock.SetMaxDelta(cfg.MaxFrameDelta)

	metrics := status.NewRegistry()
	sc.Observe(status.NewSampler(metrics))
	defer func() {
		metrics.Ints.Get("audio.cues").Store(int64(player.Played()))
		log.Printf("[MAIN] %s", metrics.Summary())
	}()

	if cfg.Record.Path != "" {
		closeRec, err := attachRecorder(sc, cfg.Record, def)
		if err != nil {
			return err
		}
		defer closeRec()
	}

	if cfg.Stream.Addr != "" {
		closeHub, err := attachHub(sc, cfg.Stream, def, metrics)
		if err != nil {
			return err
		}
		defer closeHub()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Headless {
		_, err := runHeadless(ctx, sc, cfg.Frames)
		fmt.Printf("%s: %s\n", def.Name, metrics.Summary())
		return err
	}

	screen, err := newScreen()
	if err != nil {
		return err
	}
	defer func() {
		core.RegisterScreen(nil)
		screen.Fini()
	}()

	sc.Renderer = render.NewTerminalRenderer(screen, def.Name)

	keys := make(chan input.Key, 16)
	core.Go(func() { pollKeys(ctx, screen, keys) })

	log.Printf("[MAIN] running scene %s with %d bodies", def.Name, len(built.World.Elements()))
	err = sc.Run(ctx, keys)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// runHeadless advances sc by a fixed 1/TickRate per frame on a mock clock
// frames 0 runs until ctx is done, a veto ends the run without error
func runHeadless(ctx context.Context, sc *engine.Scene, frames int) (engine.Stats, error) {
	rate := sc.TickRate
	if rate <= 0 {
		rate = parameter.DefaultTickRate
	}
	step := time.Second / time.Duration(rate)

	mock := engine.NewMockTimeProvider(time.Unix(0, 0))
	sc.Clock = engine.NewClock(mock)

	for i := 0; frames == 0 || i < frames; i++ {
		if err := ctx.Err(); err != nil {
			break
		}
		mock.Advance(step)
		if err := sc.Frame(nil); err != nil {
			if errors.Is(err, engine.ErrStopped) {
				log.Printf("[MAIN] headless run stopped at frame %d: %v", i, err)
				break
			}
			return sc.World.Stats(), err
		}
	}
	return sc.World.Stats(), nil
}

func attachRecorder(sc *engine.Scene, rc config.RecordConfig, def *scene.Definition) (func(), error) {
	f, err := os.Create(rc.Path)
	if err != nil {
		return nil, fmt.Errorf("record: %w", err)
	}
	rec, err := snapshot.NewRecorder(f, def.Name, def.Width, def.Height, rc.Every)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("record %s: %w", rc.Path, err)
	}
	sc.Observe(rec)

	return func() {
		if err := rec.Close(); err != nil {
			log.Printf("[SNAPSHOT] %s: %v", rc.Path, err)
		}
		f.Close()
		log.Printf("[SNAPSHOT] wrote %d frames to %s", rec.Frames(), rc.Path)
	}, nil
}

func attachHub(sc *engine.Scene, stc config.StreamConfig, def *scene.Definition, metrics *status.Registry) (func(), error) {
	hub, err := stream.NewHub(def.Name, def.Width, def.Height, log.Default())
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	mux.Handle(stc.Path, hub)
	srv := &http.Server{Addr: stc.Addr, Handler: mux}

	core.Go(func() {
		log.Printf("[STREAM] listening on %s%s", stc.Addr, stc.Path)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("[STREAM] server: %v", err)
		}
	})
	sc.Observe(hub)

	return func() {
		metrics.Ints.Get("stream.dropped").Store(int64(hub.Dropped()))
		hub.Close()
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		srv.Shutdown(ctx)
	}, nil
}

func newScreen() (tcell.Screen, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("terminal: %w", err)
	}
	core.RegisterScreen(screen)
	return screen, nil
}

// pollKeys forwards mapped key events until the screen is finalized
func pollKeys(ctx context.Context, screen tcell.Screen, keys chan<- input.Key) {
	defer close(keys)
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return
		}
		if _, ok := ev.(*tcell.EventResize); ok {
			screen.Sync()
			continue
		}
		k, ok := input.FromEvent(ev)
		if !ok {
			continue
		}
		select {
		case keys <- k:
		case <-ctx.Done():
			return
		}
	}
}

// replay shows a recording frame by frame at the tick rate
// Space pauses, q or Escape ends playback
func replay(cfg *config.Config, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("replay: %w", err)
	}
	defer f.Close()

	rd, err := snapshot.NewReader(f)
	if err != nil {
		return fmt.Errorf("replay %s: %w", path, err)
	}

	screen, err := newScreen()
	if err != nil {
		return err
	}
	defer func() {
		core.RegisterScreen(nil)
		screen.Fini()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	keys := make(chan input.Key, 16)
	core.Go(func() { pollKeys(ctx, screen, keys) })

	renderer := render.NewTerminalRenderer(screen, "replay "+rd.Header.Scene)
	ticker := time.NewTicker(time.Second / time.Duration(cfg.TickRate))
	defer ticker.Stop()

	paused := false
	for {
		select {
		case <-ctx.Done():
			return nil
		case k, ok := <-keys:
			if !ok {
				return nil
			}
			switch k {
			case input.KeyQuit, input.KeyEscape:
				return nil
			case input.KeyPause, input.KeyJump:
				paused = !paused
			}
		case <-ticker.C:
			if paused {
				continue
			}
			s, err := rd.Next()
			if errors.Is(err, io.EOF) {
				return nil
			}
			if err != nil {
				return fmt.Errorf("replay %s: %w", path, err)
			}
			w, err := snapshot.Restore(s, rd.Header.Width, rd.Header.Height)
			if err != nil {
				return fmt.Errorf("replay %s step %d: %w", path, s.Step, err)
			}
			if err := renderer.Render(w); err != nil {
				return err
			}
		}
	}
}
