// Command iirviz analyses a direct-form IIR filter given by its coefficients.
//
// Usage:
//
//	iirviz [flags] [name=value ...]
//
// Coefficients are named a0..aK-1 (feedforward) and b1..bK-1 (feedback),
// where K is half the filter order. It prints the difference equation, the
// transfer function, zeros and poles, the stability verdict and a table of
// the frequency response, and can render the filter applied to white or
// Gaussian noise or to a unit impulse into a WAV file.
//
// Examples:
//
//	iirviz a1=0.5 b1=0.9
//	iirviz -log -rows 24 a0=0.2 a1=0.2 b1=0.6
//	iirviz -config lowpass.yaml -wav out.wav -seconds 5
//	iirviz -wav ir.wav -noise impulse -noscale a0=0.5 b1=0.5
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/cwbudde/algo-iirviz/dsp/core"
	"github.com/cwbudde/algo-iirviz/dsp/filter/analysis"
	"github.com/cwbudde/algo-iirviz/dsp/player"
	"github.com/cwbudde/algo-iirviz/dsp/poly"
	"github.com/cwbudde/algo-iirviz/dsp/session"
)

const (
	defaultRows    = 16
	defaultSeconds = 2.0
	noiseSeed      = 1
	gaussStdDev    = 0.25
)

type edit struct {
	name  string
	value string
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		log.Fatal(err)
	}
}

func run(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("iirviz", flag.ContinueOnError)
	configPath := fs.String("config", "", "YAML config file")
	order := fs.Int("order", 0, "total coefficient slots, even (default 12)")
	points := fs.Int("points", 0, "response samples (default 8192)")
	logMap := fs.Bool("log", false, "logarithmic frequency mapping")
	rows := fs.Int("rows", defaultRows, "response table rows")
	useFFT := fs.Bool("fft", false, "compute the linear response table with the FFT evaluator")
	wavPath := fs.String("wav", "", "render filtered noise to this WAV file")
	seconds := fs.Float64("seconds", defaultSeconds, "WAV duration in seconds")
	noise := fs.String("noise", "white", "WAV excitation: white, gauss or impulse")
	noScale := fs.Bool("noscale", false, "disable output auto scale")
	verbose := fs.Bool("v", false, "verbose output")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: iirviz [flags] [name=value ...]\n\n")
		fmt.Fprintf(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}

		return err
	}

	var (
		opts  []core.AnalysisOption
		edits []edit
	)

	if *configPath != "" {
		fc, err := loadConfig(*configPath)
		if err != nil {
			return err
		}

		opts = append(opts, fc.options()...)
		edits = append(edits, fc.edits()...)
		*logMap = *logMap || fc.Logarithmic

		if *verbose {
			log.Printf("Config: %s (%d coefficients)", *configPath, len(fc.Coefficients))
		}
	}

	if *order != 0 {
		opts = append(opts, core.WithOrder(*order))
	}

	if *points != 0 {
		opts = append(opts, core.WithResponsePoints(*points))
	}

	exc, err := newExcitation(*noise)
	if err != nil {
		return err
	}

	positional, err := parseEdits(fs.Args())
	if err != nil {
		return err
	}

	edits = append(edits, positional...)

	s, err := session.New(opts...)
	if err != nil {
		return err
	}

	for _, e := range edits {
		if err := s.SetCoefficientText(e.name, e.value); err != nil {
			return fmt.Errorf("%s=%s: %w", e.name, e.value, err)
		}
	}

	cfg := s.Config()

	if *logMap {
		s.SetMapping(analysis.Logarithmic)
	}

	if *verbose {
		log.Printf("Order: %d, points: %d, mapping: %s", cfg.Order, cfg.ResponsePoints, s.Mapping())
		log.Printf("Sample rate: %.0f Hz, log base: %g", cfg.SampleRate, cfg.LogBase)
	}

	out := &report{w: stdout}
	s.AddView(&equationView{out: out})
	s.AddView(&poleZeroView{out: out})
	s.AddView(&responseView{out: out, cfg: cfg, rows: *rows, fft: *useFFT})

	if err := s.Calculate(); err != nil {
		if !errors.Is(err, poly.ErrFailedToConverge) {
			return err
		}

		out.printf("analysis failed: %v\n", err)
	}

	if out.err != nil {
		return fmt.Errorf("failed to write output: %w", out.err)
	}

	if *wavPath == "" {
		return nil
	}

	p := player.New(s, exc, player.WithAutoScale(!*noScale))
	rate := int(cfg.SampleRate)
	frames := int(*seconds * cfg.SampleRate)

	if !s.IsStable() {
		log.Printf("Filter is not stable, %s will be silent", *wavPath)
	}

	if err := renderWAV(*wavPath, p, rate, frames); err != nil {
		return err
	}

	if *verbose {
		log.Printf("Wrote %d samples to %s", frames, *wavPath)
	}

	return nil
}

func newExcitation(name string) (player.Excitation, error) {
	switch strings.ToLower(name) {
	case "white":
		return player.NewWhiteNoise(noiseSeed), nil
	case "gauss":
		return player.NewGaussianNoise(noiseSeed, gaussStdDev), nil
	case "impulse":
		return player.NewImpulse(1), nil
	default:
		return nil, fmt.Errorf("unknown excitation %q, want white, gauss or impulse", name)
	}
}

// parseEdits splits name=value arguments.
func parseEdits(args []string) ([]edit, error) {
	edits := make([]edit, 0, len(args))

	for _, arg := range args {
		name, value, ok := strings.Cut(arg, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid coefficient assignment %q, want name=value", arg)
		}

		edits = append(edits, edit{name: strings.TrimSpace(name), value: strings.TrimSpace(value)})
	}

	return edits, nil
}
