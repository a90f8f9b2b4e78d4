package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/lixenwraith/tumble/config"
	"github.com/lixenwraith/tumble/core"
	"github.com/lixenwraith/tumble/scene"
)

const (
	logDir      = "logs"
	logFileName = "tumble.log"
	maxLogSize  = 10 * 1024 * 1024
)

var (
	sceneFlag      = flag.String("scene", "", "Preset name or scene .yaml file")
	configFlag     = flag.String("config", "", "YAML config file")
	saveConfigFlag = flag.String("save-config", "", "Write the effective config to this file and exit")
	debugFlag      = flag.Bool("debug", false, "Write logs to "+filepath.Join(logDir, logFileName))
	recordFlag     = flag.String("record", "", "Record snapshots to this file")
	everyFlag      = flag.Int("every", 1, "Record every n-th frame")
	serveFlag      = flag.String("serve", "", "Serve spectators over websocket on this address, e.g. :8080")
	headlessFlag   = flag.Bool("headless", false, "Run without a terminal at a fixed step")
	framesFlag     = flag.Int("frames", 0, "Frames to simulate in headless mode, 0 runs until interrupted")
	replayFlag     = flag.String("replay", "", "Play back a recording instead of simulating")
	listFlag       = flag.Bool("list", false, "List built-in scenes")
)

func main() {
	// Panic Recovery: ensure the terminal is reset even if the simulation crashes
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	flag.Parse()

	logFile := setupLogging(*debugFlag)
	if logFile != nil {
		defer logFile.Close()
	}

	if *listFlag {
		for _, name := range scene.Presets() {
			fmt.Println(name)
		}
		return
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "tumble: %v\n", err)
		os.Exit(1)
	}

	if *saveConfigFlag != "" {
		if err := cfg.Save(*saveConfigFlag); err != nil {
			fmt.Fprintf(os.Stderr, "tumble: save config: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if *replayFlag != "" {
		err = replay(cfg, *replayFlag)
	} else {
		err = run(cfg)
	}
	if err != nil {
		log.Printf("[MAIN] exit: %v", err)
		fmt.Fprintf(os.Stderr, "tumble: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads the config file and applies flags the user set explicitly
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(*configFlag)
	if err != nil {
		return nil, err
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "scene":
			cfg.Scene = *sceneFlag
		case "record":
			cfg.Record.Path = *recordFlag
		case "every":
			cfg.Record.Every = *everyFlag
		case "serve":
			cfg.Stream.Addr = *serveFlag
		case "headless":
			cfg.Headless = *headlessFlag
		case "frames":
			cfg.Frames = *framesFlag
		}
	})

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setupLogging routes the standard logger to logs/tumble.log when debug is set
// Without debug all log output is discarded, the terminal belongs to the renderer
func setupLogging(debug bool) *os.File {
	if !debug {
		log.SetOutput(io.Discard)
		return nil
	}

	if err := os.MkdirAll(logDir, 0755); err != nil {
		log.SetOutput(io.Discard)
		return nil
	}

	logPath := filepath.Join(logDir, logFileName)
	if info, err := os.Stat(logPath); err == nil && info.Size() > maxLogSize {
		oldPath := logPath + ".old"
		if err := os.Remove(oldPath); err != nil && !errors.Is(err, os.ErrNotExist) {
			log.SetOutput(io.Discard)
			return nil
		}
		os.Rename(logPath, oldPath)
	}

	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		log.SetOutput(io.Discard)
		return nil
	}

	log.SetOutput(f)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	log.Printf("[MAIN] logging started")
	return f
}
