package flatland

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/akmonengine/flatland/controller"
	"go.uber.org/multierr"
)

// Config is the full tuning of a World, read from TOML
type Config struct {
	Agent  controller.Config `toml:"agent"`
	Camera CameraConfig      `toml:"camera"`
	World  WorldConfig       `toml:"world"`
}

type WorldConfig struct {
	// TickRate is the fixed simulation rate, in ticks per second
	TickRate int `toml:"tick-rate"`
	// MaxStepsPerAdvance caps the catch-up work of a single Advance call
	MaxStepsPerAdvance int `toml:"max-steps-per-advance"`
	// AgentSize is the full size of the agent collider in its local axes, Y being the plane normal
	AgentSize [3]float64 `toml:"agent-size"`
	// FadeDuration is the fade-in of the gameplay overlay
	FadeDuration duration `toml:"fade-duration"`
	// Level is the path of the YAML level spawned at gameplay start
	Level string `toml:"level"`
}

// duration reads "500ms"-style values from the config file
type duration struct {
	time.Duration
}

func (d *duration) UnmarshalText(text []byte) (err error) {
	d.Duration, err = time.ParseDuration(string(text))
	return
}

func (d duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

func DefaultConfig() Config {
	return Config{
		Agent: controller.DefaultConfig(),
		Camera: CameraConfig{
			Height: 3,
			Size:   2,
			Near:   0.1,
			Far:    10,
			Depth:  10,
		},
		World: WorldConfig{
			TickRate:           50,
			MaxStepsPerAdvance: 8,
			AgentSize:          [3]float64{0.5, 0.1, 0.5},
			FadeDuration:       duration{500 * time.Millisecond},
		},
	}
}

// DecodeConfig reads TOML on top of the defaults
func DecodeConfig(r io.Reader) (Config, error) {
	config := DefaultConfig()

	meta, err := toml.NewDecoder(r).Decode(&config)
	if err != nil {
		return config, fmt.Errorf("decode config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, key := range undecoded {
			keys[i] = key.String()
		}
		return config, fmt.Errorf("unknown config keys: %s", strings.Join(keys, ", "))
	}

	return config, config.Validate()
}

// LoadConfig reads a TOML file on top of the defaults
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()

	meta, err := toml.DecodeFile(path, &config)
	if err != nil {
		return config, fmt.Errorf("read config %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return config, fmt.Errorf("read config %s: unknown key %s", path, undecoded[0])
	}

	return config, config.Validate()
}

// TickDuration is the fixed step, in seconds
func (c Config) TickDuration() float64 {
	return 1 / float64(c.World.TickRate)
}

func (c Config) Validate() error {
	err := c.Agent.Validate()

	if c.World.TickRate <= 0 {
		err = multierr.Append(err, fmt.Errorf("tick-rate must be > 0, got %d", c.World.TickRate))
	}
	if c.World.MaxStepsPerAdvance <= 0 {
		err = multierr.Append(err, fmt.Errorf("max-steps-per-advance must be > 0, got %d", c.World.MaxStepsPerAdvance))
	}
	for i, size := range c.World.AgentSize {
		if size <= 0 {
			err = multierr.Append(err, fmt.Errorf("agent-size[%d] must be > 0, got %v", i, size))
		}
	}
	if c.World.FadeDuration.Duration < 0 {
		err = multierr.Append(err, fmt.Errorf("fade-duration must be >= 0, got %v", c.World.FadeDuration))
	}
	if c.Camera.Size <= 0 {
		err = multierr.Append(err, fmt.Errorf("camera size must be > 0, got %v", c.Camera.Size))
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		err = multierr.Append(err, fmt.Errorf("camera clip range (%v, %v) is invalid", c.Camera.Near, c.Camera.Far))
	}

	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
