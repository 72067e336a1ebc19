// Package timer converts microsecond durations into the pulse
// generator encodings used by aggregation and HOLB timers.
//
// From 4.5 on, a timer field is a (generator, count) pair where the
// count is at most MaxScaled. Earlier revisions use a fixed 0.5 ms
// granularity; see Legacy.
package timer

import (
	"fmt"

	"github.com/frobware/go-ipa"
	"github.com/frobware/go-ipa/action"
)

// Granularity is the step of a pulse generator.
type Granularity int

const (
	Gran10us Granularity = iota
	Gran20us
	Gran50us
	Gran100us
	Gran1ms
	Gran10ms
	Gran100ms
	GranNearHalfSec
)

var granularitySteps = [...]uint32{
	Gran10us:        10,
	Gran20us:        20,
	Gran50us:        50,
	Gran100us:       100,
	Gran1ms:         1000,
	Gran10ms:        10000,
	Gran100ms:       100000,
	GranNearHalfSec: 655360,
}

// Step returns the step in microseconds, or 0 for an unknown value.
func (g Granularity) Step() uint32 {
	if g < 0 || int(g) >= len(granularitySteps) {
		return 0
	}
	return granularitySteps[g]
}

func (g Granularity) String() string {
	step := g.Step()
	switch {
	case step == 0:
		return fmt.Sprintf("Granularity(%d)", int(g))
	case step%1000 == 0:
		return fmt.Sprintf("%dms", step/1000)
	default:
		return fmt.Sprintf("%dus", step)
	}
}

// MaxScaled is the largest count a timer field can hold.
const MaxScaled = 31

// quantizeGenerators is the number of generators considered by
// Quantize. Generator 3, where present, is reserved for QTIME.
const quantizeGenerators = 3

// Config is the pulse generator configuration of a revision. An
// empty Config selects the legacy 0.5 ms encoding.
type Config struct {
	Generators []Granularity
}

// Legacy reports whether the configuration has no pulse generators.
func (c Config) Legacy() bool {
	return len(c.Generators) == 0
}

// ConfigFor returns the pulse generator configuration of rev.
func ConfigFor(rev ipa.Revision) Config {
	hw := rev.HW()
	switch {
	case hw >= ipa.HWv5_0:
		return Config{Generators: []Granularity{Gran100us, Gran1ms, Gran10ms, GranNearHalfSec}}
	case hw >= ipa.HWv4_5:
		return Config{Generators: []Granularity{Gran100us, Gran1ms, Gran10ms}}
	default:
		return Config{}
	}
}

// Scaled is a duration expressed as Count steps of generator
// PulseGen.
type Scaled struct {
	PulseGen uint8
	Count    uint32
}

// Quantize encodes us exactly. Zero encodes as {0, 0} and means the
// timer is disabled. Generators are tried in ascending order and the
// first that divides us with a count within MaxScaled wins. Values no
// generator represents exactly fail with ipa.ErrUnrepresentable;
// nothing is rounded.
func Quantize(cfg Config, us uint32) (Scaled, error) {
	if us == 0 {
		return Scaled{}, nil
	}
	if cfg.Legacy() {
		return Scaled{}, ipa.ErrUnrepresentable{Micros: us, Reason: "no pulse generators"}
	}
	n := min(len(cfg.Generators), quantizeGenerators)
	for i := 0; i < n; i++ {
		step := cfg.Generators[i].Step()
		if step == 0 || us%step != 0 {
			continue
		}
		if count := us / step; count <= MaxScaled {
			return Scaled{PulseGen: uint8(i), Count: count}, nil
		}
	}
	return Scaled{}, ipa.ErrUnrepresentable{
		Micros: us,
		Reason: fmt.Sprintf("no generator of %v divides it within %d steps", cfg.Generators[:n], MaxScaled),
	}
}

// LegacyStep is the fixed granularity of pre-4.5 timers.
const LegacyStep = 500

// LegacyTime is a pre-4.5 timer encoding. Stored is twice the
// requested microseconds and Field is Stored/1000, the value written
// to hardware.
type LegacyTime struct {
	Stored uint32
	Field  uint32
}

// Legacy encodes us for pre-4.5 hardware. us must be a multiple of
// LegacyStep. The doubling matches the hardware's timer unit.
func Legacy(us uint32) (LegacyTime, error) {
	if us%LegacyStep != 0 {
		return LegacyTime{}, ipa.ErrUnrepresentable{Micros: us, Reason: fmt.Sprintf("not a multiple of %dus", LegacyStep)}
	}
	// Bound the step count before doubling; us*2 overflows uint32
	// for large requests.
	if us/LegacyStep > MaxScaled {
		return LegacyTime{}, ipa.ErrUnrepresentable{Micros: us, Reason: fmt.Sprintf("exceeds %d legacy steps", MaxScaled)}
	}
	stored := us * 2
	return LegacyTime{Stored: stored, Field: stored / 1000}, nil
}

// Encode encodes us for rev, selecting the pulse generator or legacy
// path by hardware generation.
func Encode(rev ipa.Revision, us uint32) (ipa.TimerFields, error) {
	cfg := ConfigFor(rev)
	if cfg.Legacy() {
		lt, err := Legacy(us)
		if err != nil {
			return ipa.TimerFields{}, err
		}
		return ipa.TimerFields{Legacy: true, Value: lt.Field}, nil
	}
	s, err := Quantize(cfg, us)
	if err != nil {
		return ipa.TimerFields{}, err
	}
	return ipa.TimerFields{PulseGen: s.PulseGen, Scaled: s.Count}, nil
}

// xoClkDiv divides the 19.2 MHz XO down to a microsecond tick.
const xoClkDiv = 19

// QTIME timestamp bit selection written on 4.5 and later.
var qtimerTimestamp = ipa.QtimerTimestampFields{
	DPLLSB: 0,
	TagLSB: 6,
	NATLSB: 10,
}

// Program returns the register writes that install the pulse
// generators of rev. The XO divider is disabled while the
// granularities change. Pre-4.5 revisions need no writes.
func Program(rev ipa.Revision) []action.Action {
	cfg := ConfigFor(rev)
	if cfg.Legacy() {
		return nil
	}
	var gran ipa.PulseGranFields
	for i, g := range cfg.Generators {
		if i < len(gran.StepsUs) {
			gran.StepsUs[i] = g.Step()
		}
	}
	return []action.Action{
		action.WriteGlobal(ipa.RegQtimerTimestampCfg, qtimerTimestamp),
		action.WriteGlobal(ipa.RegTimersXOClkDivCfg, ipa.XOClkDivFields{Enable: false, Value: xoClkDiv}),
		action.WriteGlobal(ipa.RegTimersPulseGranCfg, gran),
		action.WriteGlobal(ipa.RegTimersXOClkDivCfg, ipa.XOClkDivFields{Enable: true, Value: xoClkDiv}),
	}
}
