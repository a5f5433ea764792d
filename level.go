package flatland

import (
	"fmt"
	"io"
	"os"

	"github.com/akmonengine/flatland/actor"
	"github.com/akmonengine/flatland/surface"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// CollectibleKind tags what happens when the agent touches a collectible
type CollectibleKind uint8

const (
	KindCoin CollectibleKind = iota
	KindEnemy
	KindGoal
)

func (k CollectibleKind) String() string {
	switch k {
	case KindCoin:
		return "coin"
	case KindEnemy:
		return "enemy"
	case KindGoal:
		return "goal"
	default:
		return fmt.Sprintf("CollectibleKind(%d)", uint8(k))
	}
}

func (k *CollectibleKind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "coin":
		*k = KindCoin
	case "enemy":
		*k = KindEnemy
	case "goal":
		*k = KindGoal
	default:
		return fmt.Errorf("unknown collectible kind %q", text)
	}

	return nil
}

// CollectibleSpec places a collectible in the plane's local (x, z) coordinates
type CollectibleSpec struct {
	Kind   CollectibleKind `yaml:"kind"`
	X      float64         `yaml:"x"`
	Z      float64         `yaml:"z"`
	Radius float64         `yaml:"radius"`
}

// Level describes what is spawned on a plane when gameplay starts
type Level struct {
	Name         string            `yaml:"name"`
	Collectibles []CollectibleSpec `yaml:"collectibles"`
}

const defaultCollectibleRadius = 0.05

// LoadLevel decodes a YAML level
func LoadLevel(r io.Reader) (*Level, error) {
	var level Level
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&level); err != nil {
		return nil, fmt.Errorf("decode level: %w", err)
	}

	for i := range level.Collectibles {
		if level.Collectibles[i].Radius < 0 {
			return nil, fmt.Errorf("collectible %d: negative radius %v", i, level.Collectibles[i].Radius)
		}
		if level.Collectibles[i].Radius == 0 {
			level.Collectibles[i].Radius = defaultCollectibleRadius
		}
	}

	return &level, nil
}

func LoadLevelFile(path string) (*Level, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	level, err := LoadLevel(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return level, nil
}

// Collectible is a spawned level entity
type Collectible struct {
	ID    uuid.UUID
	Kind  CollectibleKind
	Local mgl64.Vec2
	Body  *actor.RigidBody

	index int
}

func (c *Collectible) bounds() (mgl64.Vec2, mgl64.Vec2) {
	r := c.Body.Shape.(*actor.Sphere).Radius
	return c.Local.Sub(mgl64.Vec2{r, r}), c.Local.Add(mgl64.Vec2{r, r})
}

// LevelInstance is a level spawned on a plane
type LevelInstance struct {
	Name         string
	Collectibles []*Collectible
	grid         *SpatialGrid
	remaining    int
}

// Spawn instantiates the level on the plane; collectibles float offset above the surface
func (l *Level) Spawn(plane *surface.Plane, offset float64) *LevelInstance {
	instance := &LevelInstance{
		Name:         l.Name,
		Collectibles: make([]*Collectible, 0, len(l.Collectibles)),
		grid:         NewSpatialGrid(0.25, max(64, len(l.Collectibles)*4)),
	}

	for i, spec := range l.Collectibles {
		id := uuid.New()
		world := plane.ToWorld(mgl64.Vec3{spec.X, offset, spec.Z})
		body := actor.NewRigidBody(
			actor.NewTransformAt(world, plane.Transform.Rotation),
			&actor.Sphere{Radius: spec.Radius},
			actor.BodyTypeStatic,
			actor.LayerGameplay,
		)
		body.Id = id

		c := &Collectible{
			ID:    id,
			Kind:  spec.Kind,
			Local: mgl64.Vec2{spec.X, spec.Z},
			Body:  body,
			index: i,
		}
		instance.Collectibles = append(instance.Collectibles, c)
		min, max := c.bounds()
		instance.grid.Insert(i, min, max)
		instance.remaining++
	}

	return instance
}

// Near returns the live collectibles whose cells overlap the local bounds
func (li *LevelInstance) Near(min, max mgl64.Vec2) []*Collectible {
	var result []*Collectible
	for _, idx := range li.grid.Query(min, max) {
		if c := li.Collectibles[idx]; c != nil {
			result = append(result, c)
		}
	}

	return result
}

// Find returns the live collectible owning the body
func (li *LevelInstance) Find(body *actor.RigidBody) *Collectible {
	if li == nil || body == nil {
		return nil
	}
	id, ok := body.Id.(uuid.UUID)
	if !ok {
		return nil
	}
	for _, c := range li.Collectibles {
		if c != nil && c.ID == id {
			return c
		}
	}

	return nil
}

// Remove despawns a collectible
func (li *LevelInstance) Remove(c *Collectible) {
	if c == nil || li.Collectibles[c.index] != c {
		return
	}

	min, max := c.bounds()
	li.grid.Remove(c.index, min, max)
	li.Collectibles[c.index] = nil
	li.remaining--
}

// Remaining counts the live collectibles
func (li *LevelInstance) Remaining() int {
	return li.remaining
}
