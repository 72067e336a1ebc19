package timer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frobware/go-ipa"
	"github.com/frobware/go-ipa/action"
)

var cfg45 = ConfigFor(ipa.Rev4_5)

func TestQuantize_ZeroIsDisabled(t *testing.T) {
	for _, cfg := range []Config{cfg45, ConfigFor(ipa.Rev5_5), {}} {
		s, err := Quantize(cfg, 0)
		require.NoError(t, err)
		assert.Equal(t, Scaled{PulseGen: 0, Count: 0}, s)
	}
}

func TestQuantize(t *testing.T) {
	tests := []struct {
		name string
		us   uint32
		want Scaled
	}{
		{"smallest step", 100, Scaled{0, 1}},
		{"largest count on generator 0", 3100, Scaled{0, 31}},
		{"falls through to generator 1", 5000, Scaled{1, 5}},
		{"generator 1 limit", 31000, Scaled{1, 31}},
		{"generator 2", 200000, Scaled{2, 20}},
		{"generator 2 limit", 310000, Scaled{2, 31}},
		{"first generator wins", 2000, Scaled{0, 20}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Quantize(cfg45, tt.us)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestQuantize_Unrepresentable(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		us   uint32
	}{
		{"divisible by no generator", cfg45, 37},
		{"divisible by all but out of range", cfg45, 3100000},
		{"too large for 100us, not divisible by 1ms", cfg45, 3200},
		{"generator 3 is not used", ConfigFor(ipa.Rev5_0), 655360},
		{"legacy configuration", Config{}, 1000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Quantize(tt.cfg, tt.us)
			var unrep ipa.ErrUnrepresentable
			require.True(t, errors.As(err, &unrep), "got %v", err)
			assert.Equal(t, tt.us, unrep.Micros)
		})
	}
}

func TestQuantize_Exactness(t *testing.T) {
	for _, rev := range []ipa.Revision{ipa.Rev4_5, ipa.Rev4_9, ipa.Rev5_0, ipa.Rev5_5_XR} {
		cfg := ConfigFor(rev)
		for g := 0; g < quantizeGenerators; g++ {
			step := cfg.Generators[g].Step()
			for n := uint32(1); n <= MaxScaled; n++ {
				us := n * step
				got, err := Quantize(cfg, us)
				require.NoError(t, err, "%s %dus", rev, us)
				assert.Equal(t, us, got.Count*cfg.Generators[got.PulseGen].Step())
				assert.LessOrEqual(t, got.Count, uint32(MaxScaled))
				assert.LessOrEqual(t, int(got.PulseGen), g)
				for earlier := 0; earlier < int(got.PulseGen); earlier++ {
					es := cfg.Generators[earlier].Step()
					assert.False(t, us%es == 0 && us/es <= MaxScaled,
						"%dus: generator %d also fits but %d was chosen", us, earlier, got.PulseGen)
				}
			}
		}
	}
}

func TestQuantize_Deterministic(t *testing.T) {
	for us := uint32(0); us <= 400000; us += 50 {
		a, errA := Quantize(cfg45, us)
		b, errB := Quantize(cfg45, us)
		assert.Equal(t, a, b)
		assert.Equal(t, errA, errB)
	}
}

// The pre-4.5 encoding doubles the requested value before scaling.
// This is pinned hardware behaviour.
func TestLegacy_PinnedDoubling(t *testing.T) {
	tests := []struct {
		us   uint32
		want LegacyTime
	}{
		{500, LegacyTime{Stored: 1000, Field: 1}},
		{1000, LegacyTime{Stored: 2000, Field: 2}},
		{7500, LegacyTime{Stored: 15000, Field: 15}},
		{15500, LegacyTime{Stored: 31000, Field: 31}},
		{0, LegacyTime{}},
	}
	for _, tt := range tests {
		got, err := Legacy(tt.us)
		require.NoError(t, err, "%dus", tt.us)
		assert.Equal(t, tt.want, got, "%dus", tt.us)
	}
}

func TestLegacy_Unrepresentable(t *testing.T) {
	// 2147499000 is a multiple of 500 whose doubled value wraps uint32.
	for _, us := range []uint32{1, 250, 750, 16000, 2147499000, 4294967000} {
		_, err := Legacy(us)
		var unrep ipa.ErrUnrepresentable
		assert.True(t, errors.As(err, &unrep), "%dus", us)
	}
}

func TestEncode_LegacyRejectsWrappingValue(t *testing.T) {
	_, err := Encode(ipa.Rev3_5, 2147499000)
	var unrep ipa.ErrUnrepresentable
	require.True(t, errors.As(err, &unrep), "got %v", err)
	assert.Equal(t, uint32(2147499000), unrep.Micros)
}

func TestEncode(t *testing.T) {
	got, err := Encode(ipa.Rev3_5, 1000)
	require.NoError(t, err)
	assert.Equal(t, ipa.TimerFields{Legacy: true, Value: 2}, got)

	got, err = Encode(ipa.Rev4_5_MHI, 5000)
	require.NoError(t, err)
	assert.Equal(t, ipa.TimerFields{PulseGen: 1, Scaled: 5}, got)

	got, err = Encode(ipa.Rev5_2, 0)
	require.NoError(t, err)
	assert.Equal(t, ipa.TimerFields{}, got)

	_, err = Encode(ipa.Rev4_2, 37)
	assert.Error(t, err)
}

func TestConfigFor(t *testing.T) {
	assert.True(t, ConfigFor(ipa.Rev4_2).Legacy())
	assert.Equal(t, []Granularity{Gran100us, Gran1ms, Gran10ms}, ConfigFor(ipa.Rev4_11).Generators)
	assert.Equal(t, []Granularity{Gran100us, Gran1ms, Gran10ms, GranNearHalfSec}, ConfigFor(ipa.Rev5_1).Generators)
}

func TestGranularityString(t *testing.T) {
	assert.Equal(t, "100us", Gran100us.String())
	assert.Equal(t, "10ms", Gran10ms.String())
	assert.Equal(t, "655360us", GranNearHalfSec.String())
	assert.Equal(t, "Granularity(42)", Granularity(42).String())
}

func TestProgram(t *testing.T) {
	assert.Empty(t, Program(ipa.Rev4_0))

	actions := Program(ipa.Rev5_0)
	require.Len(t, actions, 4)

	first, ok := actions[1].(action.WriteRegister)
	require.True(t, ok)
	assert.Equal(t, ipa.XOClkDivFields{Enable: false, Value: xoClkDiv}, first.Fields)

	gran, ok := actions[2].(action.WriteRegister)
	require.True(t, ok)
	assert.Equal(t, ipa.RegTimersPulseGranCfg, gran.Reg)
	assert.Equal(t, ipa.PulseGranFields{StepsUs: [4]uint32{100, 1000, 10000, 655360}}, gran.Fields)

	last, ok := actions[3].(action.WriteRegister)
	require.True(t, ok)
	assert.Equal(t, ipa.XOClkDivFields{Enable: true, Value: xoClkDiv}, last.Fields)

	gran45, ok := Program(ipa.Rev4_5)[2].(action.WriteRegister)
	require.True(t, ok)
	assert.Equal(t, ipa.PulseGranFields{StepsUs: [4]uint32{100, 1000, 10000, 0}}, gran45.Fields)
}
