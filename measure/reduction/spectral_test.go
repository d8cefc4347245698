package reduction

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/cwbudde/algo-anc/dsp/window"
	"github.com/cwbudde/algo-anc/internal/testutil"
)

func TestEvaluateSpectral_BandLocalization(t *testing.T) {
	const (
		samples    = 4096
		sampleRate = 1024.0
	)
	// Two tones; filtering removes most of the 100 Hz one and leaves the
	// 300 Hz one untouched.
	tone100 := testutil.Sine(100, sampleRate, 1, samples)
	tone300 := testutil.Sine(300, sampleRate, 1, samples)
	before := [][]float64{testutil.Add(tone100, tone300)}
	after := [][]float64{testutil.Add(testutil.Sine(100, sampleRate, 0.1, samples), tone300)}

	rep, err := EvaluateSpectral(before, after, SpectralConfig{
		SampleRate:  sampleRate,
		SegmentSize: 512,
		Bands: []Band{
			{LowHz: 50, HighHz: 150},
			{LowHz: 250, HighHz: 350},
		},
	})
	if err != nil {
		t.Fatalf("EvaluateSpectral: %v", err)
	}

	bands := rep.Channels[0]
	if len(bands) != 2 {
		t.Fatalf("band count: got %d, want 2", len(bands))
	}
	if got := bands[0].ReductionPct; got < 90 {
		t.Fatalf("100 Hz band reduction: got %v%%, want > 90%%", got)
	}
	if got := bands[1].ReductionPct; math.Abs(got) > 20 {
		t.Fatalf("300 Hz band reduction: got %v%%, want near 0%%", got)
	}
	if bands[0].PowerBefore <= bands[0].PowerAfter {
		t.Fatal("100 Hz band power should drop")
	}
}

func TestEvaluateSpectral_DefaultsMatchTimeDomain(t *testing.T) {
	const samples = 4096
	before := [][]float64{testutil.Sine(100, 1024, 1, samples)}
	after := [][]float64{testutil.Sine(100, 1024, 0.5, samples)}

	spec, err := EvaluateSpectral(before, after, SpectralConfig{SampleRate: 1024})
	if err != nil {
		t.Fatalf("EvaluateSpectral: %v", err)
	}
	timeRep, err := Evaluate(before, after)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}

	if len(spec.Channels[0]) != 1 {
		t.Fatalf("default band count: got %d, want 1", len(spec.Channels[0]))
	}
	got := spec.Channels[0][0].ReductionPct
	want := timeRep.ReductionPct[0]
	if math.Abs(got-want) > 5 {
		t.Fatalf("whole-spectrum reduction %v%% vs time-domain %v%%", got, want)
	}
	if spec.SegmentSize != defaultSegmentSize {
		t.Fatalf("segment size: got %d, want %d", spec.SegmentSize, defaultSegmentSize)
	}
	if spec.BinHz != 1024.0/float64(defaultSegmentSize) {
		t.Fatalf("bin width: got %v", spec.BinHz)
	}
}

func TestEvaluateSpectral_ShortRecordingClampsSegment(t *testing.T) {
	const samples = 300
	before := [][]float64{testutil.Noise(1, 1, samples)}
	after := [][]float64{testutil.Noise(2, 0.5, samples)}

	rep, err := EvaluateSpectral(before, after, SpectralConfig{})
	if err != nil {
		t.Fatalf("EvaluateSpectral: %v", err)
	}
	if rep.SegmentSize > samples {
		t.Fatalf("segment size %d exceeds recording length %d", rep.SegmentSize, samples)
	}
	band := rep.Channels[0][0]
	if band.ZeroPower {
		t.Fatal("noise channel flagged as zero power")
	}
	if math.IsNaN(band.ReductionPct) {
		t.Fatal("NaN reduction")
	}
}

func TestEvaluateSpectral_Errors(t *testing.T) {
	if _, err := EvaluateSpectral(make([][]float64, 2), make([][]float64, 1), SpectralConfig{}); !errors.Is(err, ErrDimensionMismatch) {
		t.Fatalf("got %v, want ErrDimensionMismatch", err)
	}

	short := [][]float64{{1}}
	if _, err := EvaluateSpectral(short, short, SpectralConfig{}); !errors.Is(err, ErrShortSignal) {
		t.Fatalf("got %v, want ErrShortSignal", err)
	}
}

func TestEvaluateSpectral_InvalidSegmentSize(t *testing.T) {
	data := [][]float64{{1, 2, 3, 4}}

	// A segment of 1 would leave the Welch hop at zero and never advance;
	// it must be rejected before any work starts.
	_, err := EvaluateSpectral(data, data, SpectralConfig{SegmentSize: 1})
	if !errors.Is(err, ErrInvalidSegmentSize) {
		t.Fatalf("SegmentSize=1: got %v, want ErrInvalidSegmentSize", err)
	}
	if !strings.Contains(err.Error(), "1") {
		t.Errorf("error should carry the offending value: %v", err)
	}

	// Non-powers-of-two are rejected too, even when the recording is so
	// short that the old clamp would have halved them below 2.
	tiny := [][]float64{{1, 2}}
	_, err = EvaluateSpectral(tiny, tiny, SpectralConfig{SegmentSize: 3})
	if !errors.Is(err, ErrInvalidSegmentSize) {
		t.Fatalf("SegmentSize=3: got %v, want ErrInvalidSegmentSize", err)
	}
	if !strings.Contains(err.Error(), "3") {
		t.Errorf("error should carry the offending value: %v", err)
	}

	if _, err := EvaluateSpectral(data, data, SpectralConfig{SegmentSize: -8}); !errors.Is(err, ErrInvalidSegmentSize) {
		t.Fatalf("SegmentSize=-8: got %v, want ErrInvalidSegmentSize", err)
	}

	// The smallest valid segment still terminates and reports.
	rep, err := EvaluateSpectral(data, data, SpectralConfig{SegmentSize: 2})
	if err != nil {
		t.Fatalf("SegmentSize=2: %v", err)
	}
	if rep.SegmentSize != 2 {
		t.Fatalf("segment size: got %d, want 2", rep.SegmentSize)
	}
}

func TestEvaluateSpectral_WindowTypeSelection(t *testing.T) {
	const (
		samples    = 2048
		sampleRate = 1024.0
	)
	// An off-bin tone so spectral leakage, and with it the window choice,
	// is visible in the band powers.
	before := [][]float64{testutil.Sine(101.3, sampleRate, 1, samples)}
	after := [][]float64{testutil.Sine(101.3, sampleRate, 0.5, samples)}
	band := []Band{{LowHz: 99, HighHz: 104}}

	run := func(typ window.Type) *SpectralReport {
		t.Helper()
		rep, err := EvaluateSpectral(before, after, SpectralConfig{
			SampleRate:  sampleRate,
			SegmentSize: 512,
			WindowType:  typ,
			Bands:       band,
		})
		if err != nil {
			t.Fatalf("window type %d: %v", typ, err)
		}
		return rep
	}

	// The zero value selects Hann.
	def, err := EvaluateSpectral(before, after, SpectralConfig{
		SampleRate:  sampleRate,
		SegmentSize: 512,
		Bands:       band,
	})
	if err != nil {
		t.Fatalf("default config: %v", err)
	}
	hann := run(window.TypeHann)
	if def.Channels[0][0].PowerBefore != hann.Channels[0][0].PowerBefore {
		t.Fatal("zero-value window type should match an explicit Hann")
	}

	// Rectangular is selectable and produces its own numbers.
	rect := run(window.TypeRectangular)
	if rect.Channels[0][0].PowerBefore == hann.Channels[0][0].PowerBefore {
		t.Fatal("rectangular window produced Hann band power; type was ignored")
	}

	for _, typ := range []window.Type{window.TypeHamming, window.TypeBlackman} {
		run(typ)
	}
}

func TestEvaluateSpectral_ZeroPowerBand(t *testing.T) {
	const samples = 2048
	silent := [][]float64{make([]float64, samples)}

	rep, err := EvaluateSpectral(silent, silent, SpectralConfig{SampleRate: 1000})
	if err != nil {
		t.Fatalf("EvaluateSpectral: %v", err)
	}
	band := rep.Channels[0][0]
	if !band.ZeroPower {
		t.Fatal("silent band should be flagged ZeroPower")
	}
	if band.ReductionPct != 0 {
		t.Fatalf("silent band reduction: got %v, want 0", band.ReductionPct)
	}
}
