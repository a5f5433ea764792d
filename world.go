package flatland

import (
	"errors"
	"math"
	"slices"
	"time"

	"github.com/akmonengine/flatland/actor"
	"github.com/akmonengine/flatland/controller"
	"github.com/akmonengine/flatland/gjk"
	"github.com/akmonengine/flatland/surface"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrAlreadyInGameMode = errors.New("flatland: already in game mode")
	ErrNoPlane           = errors.New("flatland: no tracked plane")
	ErrOutsidePolygon    = errors.New("flatland: position outside the plane boundary")
)

// flatThreshold is the minimum dot(normal, world up) for a plane to be treated as a floor
const flatThreshold = 0.7

var worldUp = mgl64.Vec3{0, 1, 0}

// PlanesChanged is the notification of the tracking subsystem.
// Planes are copied: the world owns its own instances.
type PlanesChanged struct {
	Added   []*surface.Plane
	Updated []*surface.Plane
	Removed []uuid.UUID
}

type Option func(*World)

func WithLogger(logger *zap.Logger) Option {
	return func(w *World) {
		w.logger = logger
	}
}

// WithLevel sets the level spawned on the plane when gameplay starts
func WithLevel(level *Level) Option {
	return func(w *World) {
		w.level = level
	}
}

func WithInput(source controller.InputSource) Option {
	return func(w *World) {
		w.Input = source
	}
}

func WithGroundProbe(probe controller.GroundProbe) Option {
	return func(w *World) {
		w.probe = probe
	}
}

// World tracks the planes, owns the single gameplay session and drives it at a fixed rate.
// It is not safe for concurrent use.
type World struct {
	Config Config
	Events Events
	Input  controller.InputSource

	logger *zap.Logger
	level  *Level
	probe  controller.GroundProbe

	overlays map[uuid.UUID]*Overlay
	// order keeps plane iteration deterministic
	order []uuid.UUID
	// active is the overlay hosting the gameplay, if any
	active *Overlay

	accumulator float64
	ticks       uint64
	score       int
}

func NewWorld(config Config, options ...Option) *World {
	w := &World{
		Config:   config,
		Events:   NewEvents(),
		logger:   zap.NewNop(),
		probe:    controller.SurfaceProbe{},
		overlays: make(map[uuid.UUID]*Overlay),
	}
	for _, option := range options {
		option(w)
	}

	return w
}

// OnPlanesChanged applies a tracking update, between two ticks
func (w *World) OnPlanesChanged(changes PlanesChanged) {
	for _, plane := range changes.Added {
		w.addPlane(plane)
	}
	for _, plane := range changes.Updated {
		w.updatePlane(plane)
	}
	for _, id := range changes.Removed {
		w.removePlane(id)
	}

	w.Events.flush()
}

func (w *World) addPlane(plane *surface.Plane) {
	if plane == nil {
		return
	}
	if _, ok := w.overlays[plane.ID]; ok {
		w.updatePlane(plane)
		return
	}

	owned := surface.NewPlane(plane.ID, plane.Transform, plane.Center, plane.Boundary)
	w.overlays[owned.ID] = newOverlay(owned)
	w.order = append(w.order, owned.ID)

	w.logger.Info("overlay created", zap.Stringer("plane", owned.ID), zap.Int("points", len(owned.Boundary)))
	w.Events.emit(PlaneAddedEvent{PlaneID: owned.ID})
}

func (w *World) updatePlane(plane *surface.Plane) {
	if plane == nil {
		return
	}
	overlay, ok := w.overlays[plane.ID]
	if !ok {
		w.addPlane(plane)
		return
	}

	tracked := overlay.plane
	tracked.Transform = plane.Transform
	tracked.Center = plane.Center
	changed := tracked.SetBoundary(plane.Boundary)

	if overlay.Camera != nil {
		overlay.Camera.Follow(tracked, w.Config.Camera.Height)
	}
	if !changed {
		return
	}

	w.logger.Debug("plane boundary updated",
		zap.Stringer("plane", tracked.ID),
		zap.Int("points", len(tracked.Boundary)),
		zap.Uint64("revision", tracked.Revision),
	)
	w.Events.emit(PlaneUpdatedEvent{PlaneID: tracked.ID, Revision: tracked.Revision})
}

func (w *World) removePlane(id uuid.UUID) {
	overlay, ok := w.overlays[id]
	if !ok {
		return
	}

	overlay.detach()
	delete(w.overlays, id)
	if k := slices.Index(w.order, id); k != -1 {
		w.order = slices.Delete(w.order, k, k+1)
	}

	if overlay.active {
		w.logger.Warn("active plane removed, gameplay paused", zap.Stringer("plane", id))
	} else {
		w.logger.Debug("plane removed", zap.Stringer("plane", id))
	}
	w.Events.emit(PlaneRemovedEvent{PlaneID: id, Active: overlay.active})
}

// Planes returns the tracked planes, in the order they were added
func (w *World) Planes() []*surface.Plane {
	planes := make([]*surface.Plane, 0, len(w.order))
	for _, id := range w.order {
		planes = append(planes, w.overlays[id].plane)
	}

	return planes
}

// Overlay returns the overlay of a tracked plane
func (w *World) Overlay(id uuid.UUID) *Overlay {
	return w.overlays[id]
}

// NearestPlane returns the valid plane whose center is closest to position
func (w *World) NearestPlane(position mgl64.Vec3) *surface.Plane {
	var nearest *surface.Plane
	best := math.Inf(1)

	for _, id := range w.order {
		plane := w.overlays[id].plane
		if !plane.Valid() {
			continue
		}
		if d := plane.Center.Sub(position).LenSqr(); d < best {
			best = d
			nearest = plane
		}
	}

	return nearest
}

// CanPlace reports whether a prop released at position would land inside the nearest plane
func (w *World) CanPlace(position mgl64.Vec3) bool {
	return surface.Contains(position, w.NearestPlane(position))
}

// Drop releases the prop at position, and starts the gameplay on the nearest plane
func (w *World) Drop(position mgl64.Vec3) error {
	plane := w.NearestPlane(position)
	if plane == nil {
		return ErrNoPlane
	}

	return w.Spawn2D(position, plane)
}

// Spawn2D creates the agent on the plane at position, and enters game mode
func (w *World) Spawn2D(position mgl64.Vec3, plane *surface.Plane) error {
	if w.active != nil {
		w.logger.Warn("already in game mode", zap.Stringer("plane", w.active.ID))
		return ErrAlreadyInGameMode
	}
	if plane == nil {
		return ErrNoPlane
	}
	overlay, ok := w.overlays[plane.ID]
	if !ok || !overlay.plane.Valid() {
		return ErrNoPlane
	}
	tracked := overlay.plane
	if !surface.Contains(position, tracked) {
		return ErrOutsidePolygon
	}

	up, forward, _ := surface.LocalAxes(tracked)
	spawn := surface.ProjectOntoPlane(position, tracked.Center, up, w.Config.Agent.SurfaceOffset)

	rotation := mgl64.QuatIdent()
	if up.Dot(worldUp) <= flatThreshold {
		rotation = surface.LookRotation(forward, up)
	}

	size := w.Config.World.AgentSize
	body := actor.NewRigidBody(
		actor.NewTransformAt(spawn, rotation),
		&actor.Box{HalfExtents: mgl64.Vec3{size[0], size[1], size[2]}.Mul(0.5)},
		actor.BodyTypeKinematic,
		actor.LayerGameplay,
	)
	overlay.Agent = controller.New(body, w.Config.Agent,
		controller.WithGroundProbe(w.probe),
		controller.WithViewer(overlay),
	)

	w.enterGameMode(overlay)

	return nil
}

func (w *World) enterGameMode(overlay *Overlay) {
	overlay.Camera = NewTopDownCamera(overlay.plane, w.Config.Camera)
	if w.level != nil {
		overlay.Level = w.level.Spawn(overlay.plane, w.Config.Agent.SurfaceOffset)
	} else {
		w.logger.Warn("level not assigned", zap.Stringer("plane", overlay.ID))
	}
	overlay.Agent.Initialize(overlay, w.Input)
	overlay.Fade.Reset(w.Config.World.FadeDuration.Seconds())
	overlay.active = true

	w.active = overlay
	w.score = 0
	w.accumulator = 0

	w.logger.Info("gameplay started", zap.Stringer("plane", overlay.ID))
	w.Events.emit(GameplayStartedEvent{PlaneID: overlay.ID})
	w.Events.flush()
}

// ExitGameMode tears the agent, camera and level down immediately
func (w *World) ExitGameMode() {
	overlay := w.active
	if overlay == nil {
		return
	}

	if overlay.Agent != nil {
		w.Events.forget(overlay.Agent.Body)
	}
	if overlay.Level != nil {
		for _, c := range overlay.Level.Collectibles {
			if c != nil {
				w.Events.forget(c.Body)
			}
		}
	}
	overlay.teardown()
	w.active = nil

	w.logger.Info("gameplay ended", zap.Stringer("plane", overlay.ID), zap.Int("score", w.score))
	w.Events.emit(GameplayEndedEvent{PlaneID: overlay.ID, Score: w.score})
	w.Events.flush()
}

func (w *World) InGameMode() bool {
	return w.active != nil
}

// Agent returns the controller of the running gameplay, or nil
func (w *World) Agent() *controller.Controller {
	if w.active == nil {
		return nil
	}

	return w.active.Agent
}

// ActiveOverlay returns the overlay hosting the gameplay, or nil
func (w *World) ActiveOverlay() *Overlay {
	return w.active
}

func (w *World) Score() int {
	return w.score
}

// Ticks counts the fixed steps run so far
func (w *World) Ticks() uint64 {
	return w.ticks
}

// CompleteLevel locks the agent, which becomes draggable. It reports whether the level was running.
func (w *World) CompleteLevel() bool {
	if w.active == nil || !w.active.Agent.Complete() {
		return false
	}

	w.logger.Info("level completed", zap.Stringer("plane", w.active.ID), zap.Int("score", w.score))
	w.Events.emit(LevelCompleteEvent{PlaneID: w.active.ID, Score: w.score})

	return true
}

// Step runs one fixed tick
func (w *World) Step(dt float64) {
	w.ticks++

	if overlay := w.active; overlay != nil {
		overlay.Agent.Tick(dt)

		if overlay.Agent.State() == controller.StateActive && overlay.plane != nil {
			w.detectTouches(overlay)
		}

		overlay.Fade.Advance(dt)
	}

	w.Events.flush()
}

// detectTouches records the agent-vs-collectible overlaps and resolves the new ones
func (w *World) detectTouches(overlay *Overlay) {
	agent := overlay.Agent.Body

	if overlay.Level != nil {
		aabb := agent.Shape.GetAABB()
		reach := aabb.Max.Sub(aabb.Min).Mul(0.5).Len()
		local := overlay.plane.ToLocal(agent.Transform.Position)
		center := mgl64.Vec2{local.X(), local.Z()}

		for _, c := range overlay.Level.Near(center.Sub(mgl64.Vec2{reach, reach}), center.Add(mgl64.Vec2{reach, reach})) {
			if aabb.Overlaps(c.Body.Shape.GetAABB()) && gjk.Intersects(agent, c.Body) {
				w.Events.recordTouch(agent, c.Body)
			}
		}
	}

	var touched []*Collectible
	for _, pair := range w.Events.processTouches() {
		other := pair.bodyB
		if other == agent {
			other = pair.bodyA
		}
		if c := overlay.Level.Find(other); c != nil {
			touched = append(touched, c)
		}
	}
	slices.SortFunc(touched, func(a, b *Collectible) int {
		return a.index - b.index
	})

	for _, c := range touched {
		w.resolveTouch(overlay, c)
	}
}

func (w *World) resolveTouch(overlay *Overlay, c *Collectible) {
	switch c.Kind {
	case KindCoin:
		overlay.Level.Remove(c)
		w.Events.forget(c.Body)
		w.score++

		w.logger.Debug("coin collected", zap.Stringer("collectible", c.ID), zap.Int("score", w.score))
		w.Events.emit(CoinCollectedEvent{Collectible: c, Score: w.score})
	case KindEnemy:
		w.logger.Debug("enemy hit", zap.Stringer("collectible", c.ID))
		w.Events.emit(EnemyHitEvent{Collectible: c})
	case KindGoal:
		w.CompleteLevel()
	}
}

// Advance accumulates elapsed wall time and runs the fixed steps it covers.
// At most MaxStepsPerAdvance steps run; the remaining backlog is dropped.
// It returns the number of steps run.
func (w *World) Advance(elapsed time.Duration) int {
	step := w.Config.TickDuration()
	limit := w.Config.World.MaxStepsPerAdvance
	w.accumulator += elapsed.Seconds()

	steps := 0
	for w.accumulator >= step && steps < limit {
		w.Step(step)
		w.accumulator -= step
		steps++
	}

	if w.accumulator >= step {
		w.logger.Debug("dropping simulation backlog", zap.Float64("seconds", w.accumulator))
		w.accumulator = math.Mod(w.accumulator, step)
	}

	return steps
}
