package slither

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Grid and room sizing: a fixed fleet of equally-sized rooms sharing one
// map geometry. Baked into the wire protocol's assumptions, so constants
// rather than config.
const (
	MapWidth  = 50
	MapHeight = 50

	RoomCount      = 20
	RoomCapacity   = 10
	ServerMaxSlots = RoomCount * RoomCapacity

	SimTickHz  = 15
	TickPeriod = time.Second / SimTickHz

	TargetFoodCount   = 3
	FoodSpawnAttempts = 100
	SpawnAttempts     = 100

	InitialSnakeLength = 3

	// A WAITING room with at least one human and >=2 counted players arms a
	// countdown; it fires after this long unless the room fills first.
	AutoStartCountdown = 5 * time.Second
	// Grace pause the scheduler inserts right after a round starts, so
	// clients can render the game_start roster before the first delta.
	RoomFullStartDelay = 800 * time.Millisecond

	// Bench-on-join: while at most this many humans are in a WAITING room,
	// a joining human benches every bot but one; above it no bot is benched.
	BenchHumanThreshold = 4
	BotsPerRoom         = 2

	DefaultListenAddr = ":8765"
	WSPath            = "/ws"

	PingInterval = 20 * time.Second
	PongTimeout  = 60 * time.Second

	JoinCooldown = 1 * time.Second
)

// Config holds the runtime-tunable knobs layered on top of the constants
// above. Unlike the map/room/tick geometry (fixed, baked into the wire
// protocol's assumptions), these are safe to override per deployment.
type Config struct {
	ListenAddr   string        `mapstructure:"listen_addr"`
	BotsPerRoom  int           `mapstructure:"bots_per_room"`
	JoinCooldown time.Duration `mapstructure:"join_cooldown"`
	WeightsPath  string        `mapstructure:"weights_path"`
	LogJSON      bool          `mapstructure:"log_json"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		ListenAddr:   DefaultListenAddr,
		BotsPerRoom:  BotsPerRoom,
		JoinCooldown: JoinCooldown,
		WeightsPath:  "",
		LogJSON:      false,
	}
}

// LoadConfig builds a Config from environment variables (prefix SLITHER_)
// and, optionally, a config file at configPath (any format viper
// understands: yaml, json, toml, env). Values present in the file or
// environment override the defaults; configPath may be empty.
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("SLITHER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	def := DefaultConfig()
	v.SetDefault("listen_addr", def.ListenAddr)
	v.SetDefault("bots_per_room", def.BotsPerRoom)
	v.SetDefault("join_cooldown", def.JoinCooldown)
	v.SetDefault("weights_path", def.WeightsPath)
	v.SetDefault("log_json", def.LogJSON)

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
