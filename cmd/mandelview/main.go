package main

import (
	"context"
	"fmt"
	"image/png"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/BrugadaSyndrome/bslogger"
	"github.com/san-kum/mandelview/internal/automation"
	"github.com/san-kum/mandelview/internal/config"
	"github.com/san-kum/mandelview/internal/experiment"
	"github.com/san-kum/mandelview/internal/fractal"
	"github.com/san-kum/mandelview/internal/gui"
	"github.com/san-kum/mandelview/internal/metrics"
	"github.com/san-kum/mandelview/internal/session"
	"github.com/san-kum/mandelview/internal/storage"
	"github.com/san-kum/mandelview/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	configFile string
	verbose    bool
	quiet      bool
	logFile    string

	// view flags
	width    int
	height   int
	workers  int
	palette  string
	preset   string
	zoomBase float64
	centerX  float64
	centerY  float64
	scale    float64

	// render
	outFile  string
	showInfo bool
	save     bool

	// bench
	steps     int
	zoomStep  float64
	repeats   int
	chartFile string
	jsonFile  string

	// flight
	concurrency int
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "mandelview",
		Short:        "interactive mandelbrot explorer",
		SilenceUsage: true,
		RunE:         runGUI,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", config.DefaultDataDir, "snapshot directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log everything")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "log errors only")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "also write logs to this file")
	addViewFlags(rootCmd)

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "open the explorer window",
		RunE:  runGUI,
	}
	addViewFlags(guiCmd)

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "explore in the terminal",
		RunE:  runTUI,
	}
	addViewFlags(tuiCmd)

	renderCmd := &cobra.Command{
		Use:   "render",
		Short: "render one frame to a PNG",
		RunE:  renderFrame,
	}
	addViewFlags(renderCmd)
	renderCmd.Flags().StringVarP(&outFile, "out", "o", "mandelbrot.png", "output file")
	renderCmd.Flags().BoolVar(&showInfo, "info", false, "draw the info overlay")
	renderCmd.Flags().BoolVar(&save, "save", false, "also store a snapshot in the data directory")

	pointCmd := &cobra.Command{
		Use:   "point [col] [row]",
		Short: "map a pixel to the plane and report its escape round",
		Args:  cobra.ExactArgs(2),
		RunE:  inspectPoint,
	}
	addViewFlags(pointCmd)

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "measure render time while zooming in",
		RunE:  benchZoom,
	}
	addViewFlags(benchCmd)
	benchCmd.Flags().IntVar(&steps, "steps", 20, "zoom steps after the first frame")
	benchCmd.Flags().Float64Var(&zoomStep, "zoom", 10, "zoom amount per step")
	benchCmd.Flags().IntVar(&repeats, "repeats", 3, "renders per step, fastest wins")
	benchCmd.Flags().StringVar(&chartFile, "chart", "", "write a PNG chart to this file")
	benchCmd.Flags().StringVar(&jsonFile, "json", "", "write the samples as JSON (- for stdout)")

	flightCmd := &cobra.Command{
		Use:   "flight [script]",
		Short: "render a scripted flight to a GIF or PNG frames",
		Args:  cobra.ExactArgs(1),
		RunE:  runFlight,
	}
	addViewFlags(flightCmd)
	flightCmd.Flags().StringVarP(&outFile, "out", "o", "flight.gif", "output .gif file or frame directory")
	flightCmd.Flags().IntVar(&concurrency, "concurrency", 2, "frames rendered at once")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list named views",
		RunE:  listPresets,
	}

	palettesCmd := &cobra.Command{
		Use:   "palettes",
		Short: "list color palettes",
		RunE:  listPalettes,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list snapshots",
		RunE:  listSnapshots,
	}

	rootCmd.AddCommand(guiCmd, tuiCmd, renderCmd, pointCmd, benchCmd, flightCmd, presetsCmd, palettesCmd, listCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addViewFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&width, "width", config.DefaultWidth, "frame width in pixels")
	cmd.Flags().IntVar(&height, "height", config.DefaultHeight, "frame height in pixels")
	cmd.Flags().IntVar(&workers, "workers", 0, "render workers (0 = all cpus)")
	cmd.Flags().StringVar(&palette, "palette", config.DefaultPalette, "color palette")
	cmd.Flags().StringVar(&preset, "preset", "", "start from a named view")
	cmd.Flags().Float64Var(&zoomBase, "zoom-base", fractal.DefaultZoomBase, "scale factor per zoom unit")
	cmd.Flags().Float64Var(&centerX, "x", fractal.DefaultCenterX, "start center, real part")
	cmd.Flags().Float64Var(&centerY, "y", fractal.DefaultCenterY, "start center, imaginary part")
	cmd.Flags().Float64Var(&scale, "scale", fractal.DefaultScale, "start scale, plane units per pixel")
}

// loadConfig reads the config file over the defaults, then applies the
// preset and any flag the user set explicitly.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("data") || cfg.DataDir == "" {
		cfg.DataDir = dataDir
	}
	if flags.Changed("log-file") {
		cfg.Log.File = logFile
	}
	switch {
	case verbose:
		cfg.Log.Verbosity = config.VerbosityAll
	case quiet:
		cfg.Log.Verbosity = config.VerbosityMinimal
	}

	if flags.Changed("preset") {
		if err := cfg.ApplyPreset(preset); err != nil {
			return nil, err
		}
	}
	if flags.Changed("width") {
		cfg.Width = width
	}
	if flags.Changed("height") {
		cfg.Height = height
	}
	if flags.Changed("workers") {
		cfg.Workers = workers
	}
	if flags.Changed("palette") {
		cfg.Palette = palette
	}
	if flags.Changed("zoom-base") {
		cfg.Zoom.Base = zoomBase
	}
	if flags.Changed("x") {
		cfg.View.CenterX = centerX
	}
	if flags.Changed("y") {
		cfg.View.CenterY = centerY
	}
	if flags.Changed("scale") {
		cfg.View.Scale = scale
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// openLogger builds the named logger. The returned func closes the log file.
func openLogger(cfg *config.Config, name string) (*bslogger.Logger, func(), error) {
	f, err := cfg.Log.OpenFile()
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	closeFn := func() {
		if f != nil {
			f.Close()
		}
	}
	return cfg.Log.NewLogger(name, f), closeFn, nil
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log, closeLog, err := openLogger(cfg, "Window")
	if err != nil {
		return err
	}
	defer closeLog()

	log.Debugf("Starting at (%g, %g) scale %g", cfg.View.CenterX, cfg.View.CenterY, cfg.View.Scale)
	return gui.Run(cfg, storage.New(cfg.DataDir), log)
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	// the alt screen owns stdout, so keep the logger quiet unless asked
	if !verbose {
		cfg.Log.Verbosity = config.VerbosityMinimal
	}
	if cfg.Log.File == "" {
		cfg.Log.File = filepath.Join(cfg.DataDir, "tui.log")
		if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
			return err
		}
	}
	log, closeLog, err := openLogger(cfg, "Terminal")
	if err != nil {
		return err
	}
	defer closeLog()

	return viz.Run(cfg, storage.New(cfg.DataDir), log)
}

func renderFrame(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log, closeLog, err := openLogger(cfg, "Render")
	if err != nil {
		return err
	}
	defer closeLog()

	s, err := session.New(cfg, cfg.Width, cfg.Height, log)
	if err != nil {
		return err
	}
	s.AddMetric(metrics.NewCoverage())
	s.Navigator().SetShowInfo(showInfo)
	if _, err := s.Render(); err != nil {
		return err
	}

	f, err := os.Create(outFile)
	if err != nil {
		return err
	}
	if err := png.Encode(f, s.Image()); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	v := s.Controller().View()
	fmt.Printf("rendered %dx%d at (%g, %g) scale %g cap %d in %s -> %s\n",
		cfg.Width, cfg.Height, v.CenterX, v.CenterY, v.Scale, v.MaxRound, s.Elapsed(), outFile)
	minX, minY, maxX, maxY := v.Bounds(cfg.Width, cfg.Height)
	fmt.Printf("plane [%g, %g] x [%g, %g]\n", minX, maxX, minY, maxY)

	if save {
		id, err := s.Capture(storage.New(cfg.DataDir))
		if err != nil {
			return err
		}
		fmt.Printf("snapshot: %s\n", id)
	}
	return nil
}

func inspectPoint(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	col, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid column: %w", err)
	}
	row, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid row: %w", err)
	}

	v := cfg.NewController().View()
	x, y := v.PlanePoint(col, row, cfg.Width, cfg.Height)
	round, escaped := fractal.Escape(x, y, v.MaxRound)

	p, err := fractal.LookupPalette(cfg.Palette)
	if err != nil {
		return err
	}
	c := p.Color(round, escaped)

	fmt.Printf("pixel (%d, %d) of %dx%d\n", col, row, cfg.Width, cfg.Height)
	fmt.Printf("plane  %s %+gi\n", strconv.FormatFloat(x, 'g', -1, 64), y)
	if escaped {
		fmt.Printf("escaped at round %d of %d\n", round, v.MaxRound)
	} else {
		fmt.Printf("bounded after %d rounds\n", v.MaxRound)
	}
	fmt.Printf("color  #%02x%02x%02x\n", c.R, c.G, c.B)
	return nil
}

func benchZoom(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ecfg := experiment.DefaultConfig()
	ecfg.Width, ecfg.Height = cfg.Width, cfg.Height
	ecfg.Workers = cfg.Workers
	ecfg.Palette = cfg.Palette
	ecfg.Start = cfg.StartView()
	ecfg.Steps, ecfg.Zoom, ecfg.Repeats = steps, zoomStep, repeats
	ecfg.Options = cfg.ControllerOptions()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("benchmarking %dx%d from (%g, %g)\n\n", cfg.Width, cfg.Height, ecfg.Start.CenterX, ecfg.Start.CenterY)
	samples, err := experiment.New(ecfg).Run(ctx)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tSCALE\tCAP\tTIME\tIN SET\tPIXELS/SEC")
	for _, s := range samples {
		pps := float64(cfg.Width*cfg.Height) / s.Elapsed.Seconds()
		fmt.Fprintf(w, "%d\t%.3e\t%d\t%s\t%.1f%%\t%.0f\n",
			s.Step, s.Scale, s.MaxRound, s.Elapsed.Round(time.Microsecond), s.InSet*100, pps)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if len(samples) > 1 {
		fmt.Println()
		fmt.Println(experiment.Plot(samples))
	}

	if chartFile != "" {
		f, err := os.Create(chartFile)
		if err != nil {
			return err
		}
		if err := experiment.WriteChart(f, samples); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
		fmt.Printf("\nchart saved to %s\n", chartFile)
	}

	switch jsonFile {
	case "":
	case "-":
		return experiment.ExportJSON(os.Stdout, ecfg, samples)
	default:
		f, err := os.Create(jsonFile)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := experiment.ExportJSON(f, ecfg, samples); err != nil {
			return err
		}
		fmt.Printf("samples saved to %s\n", jsonFile)
	}
	return nil
}

func runFlight(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log, closeLog, err := openLogger(cfg, "Flight")
	if err != nil {
		return err
	}
	defer closeLog()

	f, err := automation.LoadFlight(args[0])
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	if err := automation.Fly(ctx, f, cfg, outFile, concurrency, log); err != nil {
		return err
	}
	fmt.Printf("flight %q written to %s in %s\n", f.Name, outFile, time.Since(start).Round(time.Millisecond))
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tCENTER\tSCALE\tDESCRIPTION")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t(%g, %g)\t%g\t%s\n", name, p.View.CenterX, p.View.CenterY, p.View.Scale, p.Description)
	}
	return w.Flush()
}

func listPalettes(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tSTOPS\tMAX ROUND")
	for _, name := range fractal.PaletteNames() {
		p, err := fractal.LookupPalette(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%d\t%d\n", name, len(p.Stops()), p.MaxRound())
	}
	return w.Flush()
}

func listSnapshots(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	snaps, err := st.List()
	if err != nil {
		return err
	}

	if len(snaps) == 0 {
		fmt.Println("no snapshots found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tCENTER\tSCALE\tPALETTE\tSIZE")
	for _, s := range snaps {
		fmt.Fprintf(w, "%s\t%s\t(%g, %g)\t%.3e\t%s\t%dx%d\n",
			s.ID,
			s.Timestamp.Format("2006-01-02 15:04:05"),
			s.View.CenterX, s.View.CenterY,
			s.View.Scale,
			s.Palette,
			s.Width, s.Height,
		)
	}
	return w.Flush()
}
