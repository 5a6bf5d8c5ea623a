package assets

import (
	"errors"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/bproctor91/sidewinder/ecs/component"
)

// ErrBadAnimationTable marks malformed clip-table input. The failed actor
// is skipped and the session continues.
var ErrBadAnimationTable = errors.New("assets: bad animation table")

// SheetSpec describes the frame grid of an actor's sprite sheet.
type SheetSpec struct {
	FrameWidth  int `yaml:"frame_width"`
	FrameHeight int `yaml:"frame_height"`
	Rows        int `yaml:"rows"`
	Cols        int `yaml:"cols"`
}

type ClipSpec struct {
	Frames []int   `yaml:"frames"`
	FPS    float64 `yaml:"fps"`
	Loop   bool    `yaml:"loop"`
}

type ActorSpec struct {
	Sheet SheetSpec           `yaml:"sheet"`
	Clips map[string]ClipSpec `yaml:"clips"`
}

// AnimationLibrary is the read-only clip table keyed by actor kind.
type AnimationLibrary struct {
	actors map[string]ActorSpec
}

// LoadAnimationLibrary parses the embedded animations.yaml.
func LoadAnimationLibrary() (*AnimationLibrary, error) {
	data, err := assetsFS.ReadFile("animations.yaml")
	if err != nil {
		return nil, fmt.Errorf("assets: read animations.yaml: %w", err)
	}
	return ParseAnimationLibrary(data)
}

// ParseAnimationLibrary validates and loads a clip table document.
func ParseAnimationLibrary(data []byte) (*AnimationLibrary, error) {
	actors := make(map[string]ActorSpec)
	if err := yaml.Unmarshal(data, &actors); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadAnimationTable, err)
	}
	for kind, actor := range actors {
		if actor.Sheet.FrameWidth <= 0 || actor.Sheet.FrameHeight <= 0 {
			return nil, fmt.Errorf("%w: actor %q: missing sheet frame size", ErrBadAnimationTable, kind)
		}
		if len(actor.Clips) == 0 {
			return nil, fmt.Errorf("%w: actor %q: no clips", ErrBadAnimationTable, kind)
		}
		for name, clip := range actor.Clips {
			if len(clip.Frames) == 0 {
				return nil, fmt.Errorf("%w: actor %q clip %q: empty frame sequence", ErrBadAnimationTable, kind, name)
			}
			if clip.FPS <= 0 {
				return nil, fmt.Errorf("%w: actor %q clip %q: fps must be positive", ErrBadAnimationTable, kind, name)
			}
		}
	}
	return &AnimationLibrary{actors: actors}, nil
}

// Clips converts an actor's table into the component form consumed
// read-only by AnimationState.
func (l *AnimationLibrary) Clips(kind string) (map[string]component.Clip, error) {
	actor, ok := l.actors[kind]
	if !ok {
		return nil, fmt.Errorf("%w: unknown actor kind %q", ErrBadAnimationTable, kind)
	}
	clips := make(map[string]component.Clip, len(actor.Clips))
	for name, spec := range actor.Clips {
		clips[name] = component.Clip{
			Frames: append([]int(nil), spec.Frames...),
			FPS:    spec.FPS,
			Loop:   spec.Loop,
		}
	}
	return clips, nil
}

// Kinds lists the actor kinds in the table, sorted.
func (l *AnimationLibrary) Kinds() []string {
	kinds := make([]string, 0, len(l.actors))
	for kind := range l.actors {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	return kinds
}

// Sheet returns the actor's sheet layout.
func (l *AnimationLibrary) Sheet(kind string) (SheetSpec, bool) {
	actor, ok := l.actors[kind]
	return actor.Sheet, ok
}
