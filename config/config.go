package config

import (
	"errors"
	"fmt"
	"runtime"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	ConfigDebug              = "debug"
	ConfigDepthBlack         = "depth-black"
	ConfigDepthWhite         = "depth-white"
	ConfigThreads            = "threads"
	ConfigParallelMinDepth   = "parallel-min-depth"
	ConfigRandomOpeningPlies = "random-opening-plies"
	ConfigGames              = "games"
	ConfigGameThreads        = "game-threads"
	ConfigLogFile            = "log-file"
	ConfigSolveLogFile       = "solve-log-file"
	ConfigCPUProfile         = "cpu-profile"
	ConfigConfigFile         = "config-file"
)

var ErrBadDepth = errors.New("search depths must be positive integers")

// Config wraps a viper instance. Settings come from flags, then
// REVERSI_* environment variables, then an optional config file.
type Config struct {
	*viper.Viper
	args []string
}

func defaultThreads() int {
	return max(1, runtime.NumCPU()-1)
}

// DefaultConfig returns a config with only the defaults set.
func DefaultConfig() *Config {
	c := &Config{Viper: viper.New()}
	c.setDefaults()
	return c
}

func (c *Config) setDefaults() {
	c.SetDefault(ConfigDebug, false)
	c.SetDefault(ConfigDepthBlack, 4)
	c.SetDefault(ConfigDepthWhite, 4)
	c.SetDefault(ConfigThreads, defaultThreads())
	c.SetDefault(ConfigParallelMinDepth, 2)
	c.SetDefault(ConfigRandomOpeningPlies, 0)
	c.SetDefault(ConfigGames, 100)
	c.SetDefault(ConfigGameThreads, 1)
	c.SetDefault(ConfigLogFile, "/tmp/reversi_autoplay.txt")
	c.SetDefault(ConfigSolveLogFile, "")
	c.SetDefault(ConfigCPUProfile, "")
	c.SetDefault(ConfigConfigFile, "")
}

// Load parses args. Anything that is not a flag is kept and can be read
// back with Args.
func (c *Config) Load(args []string) error {
	c.Viper = viper.New()
	c.setDefaults()

	fs := pflag.NewFlagSet("reversi", pflag.ContinueOnError)
	fs.Bool(ConfigDebug, false, "debug logging on")
	fs.Int(ConfigDepthBlack, 4, "search depth (plies) for X")
	fs.Int(ConfigDepthWhite, 4, "search depth (plies) for O")
	fs.Int(ConfigThreads, defaultThreads(), "threads per search")
	fs.Int(ConfigParallelMinDepth, 2, "smallest remaining depth that searches siblings in parallel")
	fs.Int(ConfigRandomOpeningPlies, 0, "plies played at random at the start of automatic games")
	fs.Int(ConfigGames, 100, "number of automatic games to play")
	fs.Int(ConfigGameThreads, 1, "number of automatic games played at once")
	fs.String(ConfigLogFile, "/tmp/reversi_autoplay.txt", "per-turn log for automatic games")
	fs.String(ConfigSolveLogFile, "", "if set, write a YAML record of every search here")
	fs.String(ConfigCPUProfile, "", "write a CPU profile here")
	fs.String(ConfigConfigFile, "", "optional config file (yaml, toml, json)")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := c.BindPFlags(fs); err != nil {
		return err
	}
	c.SetEnvPrefix("reversi")
	c.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.AutomaticEnv()

	if cf := c.GetString(ConfigConfigFile); cf != "" {
		c.SetConfigFile(cf)
		if err := c.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config file %s: %w", cf, err)
		}
	}
	c.args = fs.Args()
	return nil
}

// Args returns the positional arguments left over after flag parsing.
func (c *Config) Args() []string {
	return c.args
}

// Depths returns the search depth for X and for O.
func (c *Config) Depths() (int, int, error) {
	x, o := c.GetInt(ConfigDepthBlack), c.GetInt(ConfigDepthWhite)
	if x < 1 || o < 1 {
		return 0, 0, fmt.Errorf("%w: got %d and %d", ErrBadDepth, x, o)
	}
	return x, o, nil
}

// DepthsFromArgs reads the two positional depth arguments, X's first,
// and stores them in the config.
func (c *Config) DepthsFromArgs() (int, int, error) {
	if len(c.args) != 2 {
		return 0, 0, fmt.Errorf("%w: expected 2 arguments, got %d", ErrBadDepth, len(c.args))
	}
	var depths [2]int
	for i, a := range c.args {
		d, err := strconv.Atoi(a)
		if err != nil {
			return 0, 0, fmt.Errorf("%w: %q", ErrBadDepth, a)
		}
		if d < 1 {
			return 0, 0, fmt.Errorf("%w: got %d", ErrBadDepth, d)
		}
		depths[i] = d
	}
	c.Set(ConfigDepthBlack, depths[0])
	c.Set(ConfigDepthWhite, depths[1])
	return depths[0], depths[1], nil
}

// SanitizedSettings returns all settings as a sorted key=value string,
// for logging.
func (c *Config) SanitizedSettings() string {
	settings := c.AllSettings()
	keys := make([]string, 0, len(settings))
	for k := range settings {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%v", k, settings[k])
	}
	return strings.Join(parts, " ")
}
