package main

import (
	"flag"
	"fmt"
	"time"

	"github.com/akmonengine/flatland"
	"github.com/akmonengine/flatland/actor"
	"github.com/akmonengine/flatland/input"
	"github.com/akmonengine/flatland/surface"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	isDebug    = flag.Bool("debug", false, "Enable debug log output")
	configPath = flag.String("config", "", "TOML config file, defaults are used when empty")
	levelPath  = flag.String("level", "", "YAML level file, overrides the config")
	duration   = flag.Duration("duration", 3*time.Second, "Simulated time")
)

func main() {
	flag.Parse()

	var logger *zap.Logger
	if *isDebug {
		logger = unwrap(zap.NewDevelopment())
	} else {
		logger = unwrap(zap.NewProduction())
	}
	defer func() {
		_ = logger.Sync()
	}()

	config := flatland.DefaultConfig()
	if *configPath != "" {
		var err error
		if config, err = flatland.LoadConfig(*configPath); err != nil {
			logger.Error("read config fail", zap.Error(err))
			return
		}
	}

	options := []flatland.Option{flatland.WithLogger(logger)}
	path := config.World.Level
	if *levelPath != "" {
		path = *levelPath
	}
	if path != "" {
		level, err := flatland.LoadLevelFile(path)
		if err != nil {
			logger.Error("read level fail", zap.Error(err))
			return
		}
		options = append(options, flatland.WithLevel(level))
	}

	joystick := input.NewJoystick(100)
	options = append(options, flatland.WithInput(joystick))
	world := flatland.NewWorld(config, options...)

	world.Events.Subscribe(flatland.COIN_COLLECTED, func(event flatland.Event) {
		e := event.(flatland.CoinCollectedEvent)
		fmt.Printf("coin %s collected, score %d\n", e.Collectible.ID, e.Score)
	})
	world.Events.Subscribe(flatland.ENEMY_HIT, func(event flatland.Event) {
		fmt.Printf("enemy %s hit\n", event.(flatland.EnemyHitEvent).Collectible.ID)
	})
	world.Events.Subscribe(flatland.LEVEL_COMPLETE, func(event flatland.Event) {
		fmt.Printf("level complete, score %d\n", event.(flatland.LevelCompleteEvent).Score)
	})

	// a table top, slightly tilted, tracked as a pentagon
	center := mgl64.Vec3{0, 0.8, -1}
	table := surface.NewPlane(
		uuid.New(),
		actor.NewTransformAt(center, mgl64.QuatRotate(mgl64.DegToRad(10), mgl64.Vec3{1, 0, 0})),
		center,
		[]mgl64.Vec2{{-0.6, -0.4}, {0.6, -0.4}, {0.7, 0.2}, {0, 0.6}, {-0.7, 0.2}},
	)
	world.OnPlanesChanged(flatland.PlanesChanged{Added: []*surface.Plane{table}})

	drop := center.Add(mgl64.Vec3{-0.3, 0.2, 0})
	if !world.CanPlace(drop) {
		logger.Error("cannot place the prop", zap.Stringer("position", vec(drop)))
		return
	}
	if err := world.Drop(drop); err != nil {
		logger.Error("drop fail", zap.Error(err))
		return
	}

	// scripted input: run right, jump once, then run forward
	frame := time.Second / time.Duration(config.World.TickRate)
	for elapsed := time.Duration(0); elapsed < *duration; elapsed += frame {
		switch {
		case elapsed < time.Second:
			joystick.Drag(mgl64.Vec2{100, 0})
		case elapsed == time.Second:
			joystick.PressJump()
		default:
			joystick.Drag(mgl64.Vec2{0, 100})
		}

		world.Advance(frame)

		agent := world.Agent()
		if agent == nil {
			break
		}
		if world.Ticks()%10 == 0 {
			view := world.ActiveOverlay().Camera.ToView(agent.Body.Transform.Position)
			fmt.Printf("t=%-6v state=%-8v grounded=%-5v view=(%+.3f, %+.3f)\n",
				elapsed, agent.State(), agent.Grounded(), view.X(), view.Y())
		}
	}

	world.ExitGameMode()
}

type vec mgl64.Vec3

func (v vec) String() string {
	return fmt.Sprintf("(%.3f, %.3f, %.3f)", v[0], v[1], v[2])
}

func unwrap[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}
