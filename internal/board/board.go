// Package board wires the simulation to real hardware through periph.io: an
// SSD1306 OLED and an ADS1x15 converter on one I2C bus, plus two GPIO lines.
package board

import (
	"errors"
	"fmt"
	"io"
	"log"

	"periph.io/x/conn/v3/analog"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/devices/v3/ads1x15"
	"periph.io/x/devices/v3/ssd1306"
	"periph.io/x/host/v3"

	"micro-life/internal/config"
	"micro-life/internal/hw"
	"micro-life/internal/render"
)

var channels = [...]ads1x15.Channel{ads1x15.Channel0, ads1x15.Channel1, ads1x15.Channel2, ads1x15.Channel3}

// Board owns the opened peripherals.
type Board struct {
	Frame  *render.Frame
	Toggle hw.Line
	Button hw.Line
	Pot1   hw.AnalogInput
	Pot2   hw.AnalogInput

	bus  i2c.BusCloser
	oled *ssd1306.Dev
	pins []ads1x15.PinADC
}

// Open initialises the host drivers and every peripheral named in cfg.
func Open(cfg *config.Config, logger *log.Logger) (*Board, error) {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("board: host init: %w", err)
	}

	bus, err := i2creg.Open(cfg.I2CBus)
	if err != nil {
		return nil, fmt.Errorf("board: open i2c %q: %w", cfg.I2CBus, err)
	}
	b := &Board{bus: bus}

	opts := ssd1306.DefaultOpts
	opts.W = cfg.DisplayWidth
	opts.H = cfg.DisplayHeight
	if b.oled, err = ssd1306.NewI2C(bus, &opts); err != nil {
		b.Close()
		return nil, fmt.Errorf("board: ssd1306: %w", err)
	}
	b.Frame = render.NewFrame(cfg.DisplayWidth, cfg.DisplayHeight, b.oled)

	if b.Toggle, err = input(cfg.TogglePin, cfg.ToggleActiveLow); err != nil {
		b.Close()
		return nil, err
	}
	if b.Button, err = input(cfg.ButtonPin, cfg.ButtonActiveLow); err != nil {
		b.Close()
		return nil, err
	}

	adc, err := ads1x15.NewADS1115(bus, &ads1x15.Opts{I2cAddress: uint16(cfg.ADCAddress)})
	if err != nil {
		b.Close()
		return nil, fmt.Errorf("board: ads1115 at %#x: %w", cfg.ADCAddress, err)
	}
	span := physic.ElectricPotential(cfg.AnalogRangeMV) * physic.MilliVolt
	pots := make([]hw.AnalogInput, 0, 2)
	for _, ch := range cfg.PotChannels {
		pin, err := adc.PinForChannel(channels[ch], span, 10*physic.Hertz, ads1x15.SaveEnergy)
		if err != nil {
			b.Close()
			return nil, fmt.Errorf("board: adc channel %d: %w", ch, err)
		}
		b.pins = append(b.pins, pin)
		pots = append(pots, &Pot{In: pin, Span: span, FullScale: cfg.ADCFullScale, Log: logger})
	}
	b.Pot1, b.Pot2 = pots[0], pots[1]
	return b, nil
}

func input(name string, activeLow bool) (hw.Line, error) {
	p := gpioreg.ByName(name)
	if p == nil {
		return hw.Line{}, fmt.Errorf("board: no gpio named %q", name)
	}
	if err := p.In(gpio.PullUp, gpio.NoEdge); err != nil {
		return hw.Line{}, fmt.Errorf("board: configure %s: %w", name, err)
	}
	return hw.Line{In: gpioLine{p}, ActiveLow: activeLow}, nil
}

// Close blanks and halts the panel, stops the converter and releases the bus.
func (b *Board) Close() error {
	var errs []error
	for _, p := range b.pins {
		errs = append(errs, p.Halt())
	}
	if b.Frame != nil {
		b.Frame.Clear()
		errs = append(errs, b.Frame.Show())
	}
	if b.oled != nil {
		errs = append(errs, b.oled.Halt())
	}
	if b.bus != nil {
		errs = append(errs, b.bus.Close())
	}
	return errors.Join(errs...)
}

type gpioLine struct{ p gpio.PinIn }

func (l gpioLine) Read() bool { return l.p.Read() == gpio.High }

// Sampler is the part of analog.PinADC that Pot uses.
type Sampler interface {
	Read() (analog.Sample, error)
}

// Pot turns converter voltages into counts on a fixed scale, so the seeding
// bias does not depend on the converter's resolution or gain.
type Pot struct {
	In        Sampler
	Span      physic.ElectricPotential
	FullScale int32
	Log       *log.Logger
}

// Read returns the voltage as a count in [0, FullScale]. A failed conversion
// reads as zero.
func (p *Pot) Read() int32 {
	s, err := p.In.Read()
	if err != nil {
		if p.Log != nil {
			p.Log.Printf("adc: %v", err)
		}
		return 0
	}
	if s.V <= 0 || p.Span <= 0 {
		return 0
	}
	if s.V >= p.Span {
		return p.FullScale
	}
	return int32(int64(s.V) * int64(p.FullScale) / int64(p.Span))
}
