package gpio

import (
	"github.com/stianeikeland/go-rpio/v4"

	"radio-box-ng/pkg/logger"
)

type Config struct {
	ButtonPin int
	LedPin    int
}

// Pad is what the device loop needs from the hardware: one raw button
// sample per tick and a status LED.
type Pad interface {
	ButtonPressed() bool
	SetLed(on bool)
	Close()
}

type RPiPad struct {
	cfg    *Config
	log    *logger.Zerolog
	button rpio.Pin
	led    rpio.Pin
	ledOn  bool
}

func NewRPiPad(cfg *Config, log *logger.Zerolog) (*RPiPad, error) {
	if err := rpio.Open(); err != nil {
		return nil, err
	}

	p := &RPiPad{
		cfg:    cfg,
		log:    log,
		button: rpio.Pin(cfg.ButtonPin),
		led:    rpio.Pin(cfg.LedPin),
	}

	p.button.Input()
	p.button.PullUp()
	p.led.Output()
	p.led.Low()

	return p, nil
}

// ButtonPressed reads the pin once; the button shorts to ground, so low
// means pressed.
func (p *RPiPad) ButtonPressed() bool {
	return p.button.Read() == rpio.Low
}

func (p *RPiPad) SetLed(on bool) {
	if on == p.ledOn {
		return
	}
	p.ledOn = on
	if on {
		p.led.High()
		return
	}
	p.led.Low()
}

func (p *RPiPad) Close() {
	p.led.Low()
	if err := rpio.Close(); err != nil {
		p.log.Error().Msgf("failed to close gpio: %v", err)
	}
}

// NoopPad keeps the daemon runnable on machines without GPIO.
type NoopPad struct{}

func (NoopPad) ButtonPressed() bool { return false }
func (NoopPad) SetLed(bool)         {}
func (NoopPad) Close()              {}
