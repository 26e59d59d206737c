package graphics

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"

	"rama/internal/logging"
)

// Frame is one region of a sprite sheet in pixels.
type Frame struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

// SpriteSheetMetadata is one named animation.
type SpriteSheetMetadata struct {
	Name   string
	FPS    float32
	Frames []Frame
}

type spriteAnimationJSON struct {
	FPS    *float32 `json:"fps"`
	Frames []Frame  `json:"frames"`
}

// ParseSpriteSheet decodes {"name": {"fps": n, "frames": [{x,y,w,h}...]}}.
// Frames keep their order from the file. Every animation must give "fps".
func ParseSpriteSheet(r io.Reader) (map[string]SpriteSheetMetadata, error) {
	var raw map[string]spriteAnimationJSON
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSpriteParse, err)
	}
	out := make(map[string]SpriteSheetMetadata, len(raw))
	for name, anim := range raw {
		if anim.FPS == nil {
			return nil, fmt.Errorf("%w: animation %q has no fps", ErrSpriteParse, name)
		}
		out[name] = SpriteSheetMetadata{Name: name, FPS: *anim.FPS, Frames: anim.Frames}
	}
	return out, nil
}

// Sprite is a positioned sprite sheet. Playback is limited to frame
// selection; Draw submits nothing yet.
type Sprite struct {
	ID         uuid.UUID
	Path       string
	Pos        mgl32.Vec2
	Scale      mgl32.Vec2
	Animations map[string]SpriteSheetMetadata

	tracker *Tracker
	alive   bool
}

// LoadSprite parses the sprite sheet description at path.
func (r *Resources) LoadSprite(path string) (*Sprite, error) {
	f, err := os.Open(path)
	if err != nil {
		logging.Error("failed to open sprite %s: %v", path, err)
		return nil, fmt.Errorf("open sprite %s: %w", path, err)
	}
	defer f.Close()

	anims, err := ParseSpriteSheet(f)
	if err != nil {
		logging.Error("failed to parse sprite %s: %v", path, err)
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &Sprite{
		ID:         r.Tracker.register(KindSprite, path),
		Path:       path,
		Scale:      mgl32.Vec2{1, 1},
		Animations: anims,
		tracker:    r.Tracker,
		alive:      true,
	}, nil
}

// Animation looks up an animation by name.
func (s *Sprite) Animation(name string) (SpriteSheetMetadata, bool) {
	a, ok := s.Animations[name]
	return a, ok
}

// FrameAt returns the frame index shown t seconds into a looping animation,
// or -1 when the animation does not exist or is empty.
func (s *Sprite) FrameAt(name string, t float32) int {
	a, ok := s.Animations[name]
	if !ok || len(a.Frames) == 0 {
		return -1
	}
	if a.FPS <= 0 || t <= 0 {
		return 0
	}
	n := int(math.Floor(float64(t * a.FPS)))
	return n % len(a.Frames)
}

func (s *Sprite) Draw() {}

func (s *Sprite) Destroy() {
	if !s.alive {
		return
	}
	s.alive = false
	s.tracker.release(s.ID)
}
