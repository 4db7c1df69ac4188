package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/phanxgames/ember"
	"github.com/spf13/cobra"
)

var (
	configFile string
	preset     string
	seed       int64
	simTime    float64
	fps        float64
	width      float64
	height     float64
	explosion  bool
	matrix     string
	logLevel   string
	samples    int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "ember",
		Short: "particle-life hero animation toolkit",
		Run: func(cmd *cobra.Command, args []string) {
			_ = cmd.Help()
		},
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run the animation headless and plot metrics",
		RunE:  runHeadless,
	}
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	runCmd.Flags().Int64Var(&seed, "seed", 42, "random seed")
	runCmd.Flags().Float64Var(&simTime, "time", 45.0, "simulated seconds")
	runCmd.Flags().Float64Var(&fps, "fps", 60.0, "simulated frame rate")
	runCmd.Flags().Float64Var(&width, "width", 1600, "plane width")
	runCmd.Flags().Float64Var(&height, "height", 900, "plane height")
	runCmd.Flags().BoolVar(&explosion, "explosion", false, "start with the explosion intro")
	runCmd.Flags().StringVar(&matrix, "matrix", "", "force an attraction matrix preset")
	runCmd.Flags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	runCmd.Flags().IntVar(&samples, "samples", 120, "metric samples across the run")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark the physics step across population sizes",
		RunE:  benchStep,
	}
	benchCmd.Flags().Float64Var(&width, "width", 1600, "plane width")
	benchCmd.Flags().Float64Var(&height, "height", 900, "plane height")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list configuration and matrix presets",
		RunE:  listPresets,
	}

	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write a default config file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "ember.yaml"
			if len(args) > 0 {
				path = args[0]
			}
			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("refusing to overwrite %s", path)
			}
			if err := ember.DefaultConfig().Save(path); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", path)
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, benchCmd, presetsCmd, initCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// fakeClock drives a System faster than real time. Each headless frame
// advances it by exactly one frame interval, so runs are reproducible.
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

type modeSpan struct {
	mode    string
	matrix  string
	atSecs  float64
	message int
}

func runHeadless(cmd *cobra.Command, args []string) error {
	cfg := ember.DefaultConfig()

	if preset != "" {
		p, ok := ember.Preset(preset)
		if !ok {
			return fmt.Errorf("unknown preset: %s (available: %v)", preset, ember.PresetNames())
		}
		cfg = p
	}

	// Config file overrides preset; explicit flags override both.
	if configFile != "" {
		loaded, err := ember.LoadConfig(configFile)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if cmd.Flags().Changed("seed") || cfg.Seed == 0 {
		cfg.Seed = seed
	}
	if cmd.Flags().Changed("explosion") {
		cfg.Explosion = explosion
	}
	if cmd.Flags().Changed("matrix") {
		cfg.Matrix = matrix
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = logLevel
	}

	sys := ember.New(cfg)
	clock := &fakeClock{t: time.Unix(0, 0)}
	sys.SetClock(clock.now)
	sys.Start(width, height)

	frameDt := time.Duration(float64(time.Second) / fps)
	frames := int(simTime * fps)
	sampleEvery := frames / samples
	if sampleEvery < 1 {
		sampleEvery = 1
	}

	metrics := []ember.Metric{
		&ember.MeanSpeed{},
		&ember.KineticEnergy{},
		&ember.Spread{},
	}
	series := make([][]float64, len(metrics))

	timeline := []modeSpan{{
		mode:    sys.Mode().String(),
		matrix:  string(sys.MatrixName()),
		atSecs:  0,
		message: sys.MessageIndex(),
	}}
	prevMode := sys.Mode()

	fmt.Printf("running %d frames at %.0f fps (%.0fs simulated, %d particles)...\n",
		frames, fps, simTime, sys.ParticleCount())
	start := time.Now()

	for i := 0; i < frames; i++ {
		clock.advance(frameDt)
		sys.Update()

		if m := sys.Mode(); m != prevMode {
			timeline = append(timeline, modeSpan{
				mode:    m.String(),
				matrix:  string(sys.MatrixName()),
				atSecs:  float64(i+1) / fps,
				message: sys.MessageIndex(),
			})
			prevMode = m
		}
		if i%sampleEvery == 0 {
			ps := sys.Particles()
			for j, m := range metrics {
				m.Observe(ps)
				series[j] = append(series[j], m.Last())
			}
		}
	}
	elapsed := time.Since(start)

	fmt.Printf("completed in %v (%.0f frames/sec)\n\n", elapsed.Round(time.Millisecond),
		float64(frames)/elapsed.Seconds())

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "AT\tMODE\tMESSAGE\tMATRIX")
	for _, span := range timeline {
		fmt.Fprintf(w, "%7.2fs\t%s\t%d\t%s\n", span.atSecs, span.mode, span.message, span.matrix)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Println()

	for j, m := range metrics {
		graph := asciigraph.Plot(series[j],
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("%s (mean %.3f)", m.Name(), m.Value())),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	st := sys.Stats()
	fmt.Printf("avg update: %.3f ms\n", st.UpdateMillis)
	fmt.Printf("progress: %.2f  messages played: %d  final mode: %s\n",
		sys.Progress(), sys.MessageIndex(), sys.Mode())
	return nil
}

func benchStep(cmd *cobra.Command, args []string) error {
	counts := []int{500, 1400, 3000}
	secs := []float64{2.0, 5.0}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PARTICLES\tSIM TIME\tFRAMES\tWALL\tFRAMES/SEC\tUPDATE MS")

	for _, n := range counts {
		for _, d := range secs {
			cfg := ember.DefaultConfig()
			// No messages: the system free-runs particle life, which is the
			// hot path worth measuring, and the population stays exactly n.
			cfg.Messages = nil
			cfg.DesktopCount = n
			cfg.MobileCount = n
			cfg.Seed = 42

			sys := ember.New(cfg)
			clock := &fakeClock{t: time.Unix(0, 0)}
			sys.SetClock(clock.now)
			sys.Start(width, height)

			frames := int(d * 60)
			start := time.Now()
			for i := 0; i < frames; i++ {
				clock.advance(time.Second / 60)
				sys.Update()
			}
			elapsed := time.Since(start)

			fmt.Fprintf(w, "%d\t%.1fs\t%d\t%v\t%.0f\t%.3f\n",
				n, d, frames, elapsed.Round(time.Millisecond),
				float64(frames)/elapsed.Seconds(), sys.Stats().UpdateMillis)
		}
	}
	return w.Flush()
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tMESSAGES\tEXPLOSION\tMATRIX")
	for _, name := range ember.PresetNames() {
		cfg, _ := ember.Preset(name)
		texts := make([]string, len(cfg.Messages))
		for i, m := range cfg.Messages {
			texts[i] = m.Text
			if m.Balloon {
				texts[i] += "*"
			}
		}
		mx := cfg.Matrix
		if mx == "" {
			mx = "random"
		}
		fmt.Fprintf(w, "%s\t%s\t%v\t%s\n", name, strings.Join(texts, " / "), cfg.Explosion, mx)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Println("(* marks balloon messages)")

	fmt.Println("\nmatrix presets:")
	for _, p := range ember.MatrixPresets {
		fmt.Printf("  %s\n", p)
	}
	return nil
}
