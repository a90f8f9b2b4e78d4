// Package scene builds worlds from YAML definitions
package scene

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/tumble/engine"
	"github.com/lixenwraith/tumble/entity"
	"github.com/lixenwraith/tumble/parameter"
	"github.com/lixenwraith/tumble/physics"
)

//go:embed presets/*.yaml
var presetFS embed.FS

// Sentinel errors
var (
	ErrUnknownPreset   = errors.New("unknown scene preset")
	ErrUnknownVariant  = errors.New("unknown body variant")
	ErrUnknownPrepaint = errors.New("unknown prepaint hook")
	ErrInvalidScene    = errors.New("invalid scene")
)

// Definition is the YAML form of a scene
type Definition struct {
	Name     string    `yaml:"name"`
	Width    float64   `yaml:"width"`
	Height   float64   `yaml:"height"`
	Controls bool      `yaml:"controls"`
	Prepaint string    `yaml:"prepaint,omitempty"`
	Bodies   []BodyDef `yaml:"bodies"`
}

// BodyDef places one body
// Ground uses Rect (top-left x, y, width, height), every other variant uses At as its centre
type BodyDef struct {
	Kind  string     `yaml:"kind"`
	At    [2]float64 `yaml:"at,omitempty"`
	Vel   [2]float64 `yaml:"vel,omitempty"`
	Rect  [4]float64 `yaml:"rect,omitempty"`
	Color [3]uint8   `yaml:"color,omitempty"`
	Depth int        `yaml:"depth,omitempty"`
}

// Parse decodes and checks a definition
func Parse(data []byte) (*Definition, error) {
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, err
	}
	if def.Width == 0 && def.Height == 0 {
		def.Width, def.Height = parameter.DefaultWorldWidth, parameter.DefaultWorldHeight
	}
	if def.Width <= 0 || def.Height <= 0 {
		return nil, fmt.Errorf("%w: size %vx%v", ErrInvalidScene, def.Width, def.Height)
	}
	if len(def.Bodies) == 0 {
		return nil, fmt.Errorf("%w: no bodies", ErrInvalidScene)
	}
	if _, ok := prepaints[def.Prepaint]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPrepaint, def.Prepaint)
	}
	return &def, nil
}

// LoadFile reads a definition from disk
func LoadFile(filename string) (*Definition, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("read scene %s: %w", filename, err)
	}
	def, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("scene %s: %w", filename, err)
	}
	return def, nil
}

// Preset returns an embedded definition by name
func Preset(name string) (*Definition, error) {
	data, err := presetFS.ReadFile(path.Join("presets", name+".yaml"))
	if err != nil {
		return nil, fmt.Errorf("%w: %q (have %s)", ErrUnknownPreset, name, strings.Join(Presets(), ", "))
	}
	return Parse(data)
}

// Presets lists embedded scene names
func Presets() []string {
	entries, _ := fs.ReadDir(presetFS, "presets")
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".yaml"))
	}
	slices.Sort(names)
	return names
}

// Resolve treats name as a preset unless it names a file on disk
func Resolve(name string) (*Definition, error) {
	if strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml") {
		return LoadFile(name)
	}
	return Preset(name)
}

// BuildOptions carries collaborators handed to bodies and the world
type BuildOptions struct {
	Sound     entity.Sounder
	Logger    *log.Logger
	MaxPasses int
}

// Built is a ready-to-run scene
type Built struct {
	World      *engine.World
	Controller engine.Controller
	Prepaint   engine.Prepaint
}

// Build creates every body in definition order, so ids follow the file
func (d *Definition) Build(opts BuildOptions) (*Built, error) {
	var wopts []engine.WorldOption
	if opts.Logger != nil {
		wopts = append(wopts, engine.WithLogger(opts.Logger))
	}
	if opts.MaxPasses > 0 {
		wopts = append(wopts, engine.WithMaxPasses(opts.MaxPasses))
	}
	w := engine.NewWorld(d.Width, d.Height, wopts...)

	elems := make([]physics.Element, 0, len(d.Bodies))
	for i, bd := range d.Bodies {
		e, err := bd.build(opts.Sound)
		if err != nil {
			return nil, fmt.Errorf("scene %s body %d (%s): %w", d.Name, i, bd.Kind, err)
		}
		elems = append(elems, e)
	}
	w.Add(elems...)

	b := &Built{World: w}
	if d.Controls {
		b.Controller = engine.DefaultController
	}
	if mk := prepaints[d.Prepaint]; mk != nil {
		b.Prepaint = mk(w)
	}
	return b, nil
}

func (bd BodyDef) build(snd entity.Sounder) (physics.Element, error) {
	x, y := bd.At[0], bd.At[1]
	vx, vy := bd.Vel[0], bd.Vel[1]

	switch strings.ToLower(bd.Kind) {
	case "ground":
		return entity.NewGround(bd.Color, bd.Rect[0], bd.Rect[1], bd.Rect[2], bd.Rect[3])
	case "tree":
		return entity.NewTree(x, y, bd.Depth)
	case "rock":
		return entity.NewRock(x, y, vx, vy, snd)
	case "ball":
		return entity.NewBall(x, y, vx, vy)
	case "blueball":
		return entity.NewBlueBall(x, y, vx, vy)
	case "walker":
		return entity.NewWalker(x, y, vx, vy, snd)
	case "walker2d":
		return entity.NewWalker2D(x, y)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownVariant, bd.Kind)
}
