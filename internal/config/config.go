// Package config holds the device settings. Every value has a default that
// matches the reference board, so the program runs without arguments.
package config

import (
	"errors"
	"flag"
	"fmt"
	"time"

	"github.com/BurntSushi/toml"

	"micro-life/internal/core"
)

// Config represents the board wiring and loop timing.
type Config struct {
	DisplayWidth  int `toml:"display_width"`
	DisplayHeight int `toml:"display_height"`
	HeaderHeight  int `toml:"header_height"`
	CellSize      int `toml:"cell_size"`

	I2CBus      string `toml:"i2c_bus"`
	ADCAddress  int    `toml:"adc_address"`
	PotChannels [2]int `toml:"pot_channels"`
	// AnalogRangeMV is the input voltage that reads as ADCFullScale.
	AnalogRangeMV int   `toml:"analog_range_mv"`
	ADCFullScale  int32 `toml:"adc_full_scale"`

	TogglePin       string `toml:"toggle_pin"`
	ButtonPin       string `toml:"button_pin"`
	ToggleActiveLow bool   `toml:"toggle_active_low"`
	ButtonActiveLow bool   `toml:"button_active_low"`

	PollInterval  time.Duration `toml:"poll_interval"`
	FrameInterval time.Duration `toml:"frame_interval"`
	Debounce      time.Duration `toml:"debounce"`
	ReleasePoll   time.Duration `toml:"release_poll"`

	Seed    int64 `toml:"seed"`
	Verbose bool  `toml:"verbose"`

	// File is an optional TOML file layered between defaults and flags.
	File string `toml:"-"`
}

// New returns a Config populated with the reference board's values.
func New() *Config {
	return &Config{
		DisplayWidth:  128,
		DisplayHeight: 64,
		HeaderHeight:  16,
		CellSize:      4,

		ADCAddress:    0x48,
		PotChannels:   [2]int{0, 1},
		AnalogRangeMV: 3600,
		ADCFullScale:  4095,

		TogglePin:       "GPIO10",
		ButtonPin:       "GPIO11",
		ButtonActiveLow: true,

		PollInterval:  100 * time.Millisecond,
		FrameInterval: 100 * time.Millisecond,
		Debounce:      200 * time.Millisecond,
		ReleasePoll:   5 * time.Millisecond,
	}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.File, "config", c.File, "optional TOML board file")
	fs.IntVar(&c.DisplayWidth, "display-width", c.DisplayWidth, "panel width in pixels")
	fs.IntVar(&c.DisplayHeight, "display-height", c.DisplayHeight, "panel height in pixels")
	fs.IntVar(&c.HeaderHeight, "header", c.HeaderHeight, "height of the status band in pixels")
	fs.IntVar(&c.CellSize, "cell", c.CellSize, "cell size in pixels")
	fs.StringVar(&c.I2CBus, "i2c", c.I2CBus, "I2C bus name (empty for the first bus)")
	fs.IntVar(&c.ADCAddress, "adc-addr", c.ADCAddress, "ADS1x15 I2C address")
	fs.IntVar(&c.PotChannels[0], "pot1", c.PotChannels[0], "ADC channel of the first potentiometer")
	fs.IntVar(&c.PotChannels[1], "pot2", c.PotChannels[1], "ADC channel of the second potentiometer")
	fs.IntVar(&c.AnalogRangeMV, "analog-range", c.AnalogRangeMV, "potentiometer input range in millivolts")
	fs.StringVar(&c.TogglePin, "toggle", c.TogglePin, "GPIO name of the run toggle")
	fs.StringVar(&c.ButtonPin, "button", c.ButtonPin, "GPIO name of the start button")
	fs.BoolVar(&c.ToggleActiveLow, "toggle-active-low", c.ToggleActiveLow, "toggle reads ON when low")
	fs.BoolVar(&c.ButtonActiveLow, "button-active-low", c.ButtonActiveLow, "button reads pressed when low")
	fs.DurationVar(&c.PollInterval, "poll", c.PollInterval, "input polling interval")
	fs.DurationVar(&c.FrameInterval, "frame", c.FrameInterval, "delay between generations")
	fs.DurationVar(&c.Debounce, "debounce", c.Debounce, "button debounce delay")
	fs.DurationVar(&c.ReleasePoll, "release-poll", c.ReleasePoll, "polling interval while waiting for button release")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "random seed (0 seeds from the clock)")
	fs.BoolVar(&c.Verbose, "v", c.Verbose, "log state transitions")
}

// Resolve layers the TOML file named by -config under any flags that were
// set explicitly on fs, then validates the result.
func (c *Config) Resolve(fs *flag.FlagSet) error {
	if c.File != "" {
		explicit := map[string]string{}
		fs.Visit(func(f *flag.Flag) { explicit[f.Name] = f.Value.String() })
		if err := c.Load(c.File); err != nil {
			return err
		}
		for name, v := range explicit {
			if err := fs.Set(name, v); err != nil {
				return fmt.Errorf("reapply -%s: %w", name, err)
			}
		}
	}
	return c.Validate()
}

// Load decodes a TOML file over the current values.
func (c *Config) Load(path string) error {
	md, err := toml.DecodeFile(path, c)
	if err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("load %s: unknown key %q", path, undecoded[0].String())
	}
	return nil
}

// Validate rejects settings that would leave no room for the grid.
func (c *Config) Validate() error {
	var errs []error
	if c.CellSize <= 0 {
		errs = append(errs, fmt.Errorf("cell size must be positive, got %d", c.CellSize))
	}
	if c.HeaderHeight < 0 || c.HeaderHeight >= c.DisplayHeight {
		errs = append(errs, fmt.Errorf("header %d does not fit a %d px panel", c.HeaderHeight, c.DisplayHeight))
	}
	if s := c.Layout().GridSize(); s.W <= 0 || s.H <= 0 {
		errs = append(errs, fmt.Errorf("grid %dx%d is empty", s.W, s.H))
	}
	if c.PollInterval <= 0 || c.FrameInterval <= 0 {
		errs = append(errs, errors.New("poll and frame intervals must be positive"))
	}
	if c.Debounce < 0 || c.ReleasePoll < 0 {
		errs = append(errs, errors.New("debounce and release poll must not be negative"))
	}
	if c.ADCFullScale <= 0 || c.AnalogRangeMV <= 0 {
		errs = append(errs, errors.New("analog range and full scale must be positive"))
	}
	for _, ch := range c.PotChannels {
		if ch < 0 || ch > 3 {
			errs = append(errs, fmt.Errorf("ADC channel %d out of range 0-3", ch))
		}
	}
	return errors.Join(errs...)
}

// Layout returns the display geometry.
func (c *Config) Layout() core.Layout {
	return core.Layout{
		Display: core.Size{W: c.DisplayWidth, H: c.DisplayHeight},
		Header:  c.HeaderHeight,
		Cell:    c.CellSize,
	}
}
