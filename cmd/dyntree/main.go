package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/dyntree/internal/composite"
	"github.com/san-kum/dyntree/internal/config"
	"github.com/san-kum/dyntree/internal/export"
	"github.com/san-kum/dyntree/internal/genvec"
	"github.com/san-kum/dyntree/internal/model"
	"github.com/san-kum/dyntree/internal/models"
	"github.com/san-kum/dyntree/internal/report"
	"github.com/san-kum/dyntree/internal/storage"
	"github.com/san-kum/dyntree/internal/sweep"
	"github.com/san-kum/dyntree/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	configFile string
	preset     string
	logLevel   string
	themeName  string
	gravity    float64
	qFlag      []float64
	qdotFlag   []float64
	// sweep
	sweepDOF   int
	sweepFrom  float64
	sweepTo    float64
	sweepSteps int
	workers    int
	// plot, draw and export
	column  string
	asJSON  bool
	svgPath string
	plane   string
	// pack
	basePos    []float64
	baseOrient []float64
	jointVals  []float64
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "dyntree",
		Short:         "kinematic tree inspector",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", ".dyntree", "data directory")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.StringVar(&logLevel, "log-level", config.DefaultLogLevel, "log level (debug, info, warn, error)")
	pf.StringVar(&themeName, "theme", viz.Themes[0].Name, "color theme ("+strings.Join(viz.ThemeNames(), ", ")+")")
	pf.Float64Var(&gravity, "gravity", config.DefaultGravity, "gravity magnitude along -z")

	modelsCmd := &cobra.Command{
		Use:   "models",
		Short: "list available models",
		Args:  cobra.NoArgs,
		RunE:  listModels,
	}

	hierarchyCmd := &cobra.Command{
		Use:   "hierarchy [model]",
		Short: "print the body hierarchy",
		Args:  cobra.MaximumNArgs(1),
		RunE:  printHierarchy,
	}

	dofsCmd := &cobra.Command{
		Use:   "dofs [model]",
		Short: "list generalized velocity slots",
		Args:  cobra.MaximumNArgs(1),
		RunE:  printDOFs,
	}

	originsCmd := &cobra.Command{
		Use:   "origins [model]",
		Short: "print base-frame origins of named bodies",
		Args:  cobra.MaximumNArgs(1),
		RunE:  printOrigins,
	}
	originsCmd.Flags().Float64SliceVar(&qFlag, "q", nil, "configuration (comma separated)")

	comCmd := &cobra.Command{
		Use:   "com [model]",
		Short: "compute mass, center of mass, momentum and energy",
		Args:  cobra.MaximumNArgs(1),
		RunE:  printCenterOfMass,
	}
	comCmd.Flags().Float64SliceVar(&qFlag, "q", nil, "configuration (comma separated)")
	comCmd.Flags().Float64SliceVar(&qdotFlag, "qdot", nil, "velocity (comma separated)")

	sweepCmd := &cobra.Command{
		Use:   "sweep [model]",
		Short: "sweep one coordinate and record mass properties",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSweep,
	}
	sweepCmd.Flags().Float64SliceVar(&qFlag, "q", nil, "base configuration (comma separated)")
	sweepCmd.Flags().Float64SliceVar(&qdotFlag, "qdot", nil, "velocity (comma separated)")
	sweepCmd.Flags().IntVar(&sweepDOF, "dof", 0, "swept slot (see dofs)")
	sweepCmd.Flags().Float64Var(&sweepFrom, "from", config.DefaultFrom, "first value")
	sweepCmd.Flags().Float64Var(&sweepTo, "to", config.DefaultTo, "last value")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", config.DefaultSteps, "number of samples")
	sweepCmd.Flags().IntVar(&workers, "workers", 0, "worker goroutines (0 = GOMAXPROCS)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored sweeps",
		Args:  cobra.NoArgs,
		RunE:  listSweeps,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [sweep_id]",
		Short: "plot a stored sweep",
		Args:  cobra.ExactArgs(1),
		RunE:  plotSweep,
	}
	plotCmd.Flags().StringVar(&column, "column", "", "plot a single column ("+strings.Join(sweep.Columns, ", ")+")")
	plotCmd.Flags().StringVar(&svgPath, "svg", "", "also write the first plotted column to an SVG file")

	drawCmd := &cobra.Command{
		Use:   "draw [model]",
		Short: "draw the tree projected onto a base-frame plane",
		Args:  cobra.MaximumNArgs(1),
		RunE:  drawTree,
	}
	drawCmd.Flags().Float64SliceVar(&qFlag, "q", nil, "configuration (comma separated)")
	drawCmd.Flags().StringVar(&plane, "plane", "xz", "projection plane (xz, xy, yz)")
	drawCmd.Flags().StringVar(&svgPath, "svg", "", "write the drawing to an SVG file")

	exportCmd := &cobra.Command{
		Use:   "export [sweep_id]",
		Short: "export a stored sweep as CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSweep,
	}
	exportCmd.Flags().BoolVar(&asJSON, "json", false, "export metadata and samples as JSON")

	packCmd := &cobra.Command{
		Use:   "pack [model]",
		Short: "assemble a floating-base configuration vector",
		Args:  cobra.MaximumNArgs(1),
		RunE:  packConfiguration,
	}
	packCmd.Flags().Float64SliceVar(&basePos, "pos", []float64{0, 0, 0}, "base position x,y,z")
	packCmd.Flags().Float64SliceVar(&baseOrient, "orient", []float64{1, 0, 0, 0}, "base orientation quaternion w,x,y,z")
	packCmd.Flags().Float64SliceVar(&jointVals, "joints", nil, "joint coordinates (comma separated)")

	inspectCmd := &cobra.Command{
		Use:   "inspect [model]",
		Short: "interactive configuration inspector",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runInspector,
	}
	inspectCmd.Flags().Float64SliceVar(&qFlag, "q", nil, "initial configuration (comma separated)")
	inspectCmd.Flags().Float64SliceVar(&qdotFlag, "qdot", nil, "velocity (comma separated)")

	presetsCmd := &cobra.Command{
		Use:   "presets [model]",
		Short: "list available presets for a model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for model: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	rootCmd.AddCommand(modelsCmd, hierarchyCmd, dofsCmd, originsCmd, comCmd, sweepCmd, listCmd, plotCmd, drawCmd, exportCmd, packCmd, inspectCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		var fan *report.FanOutError
		if errors.As(err, &fan) {
			fmt.Fprint(os.Stderr, fan.Diagnostic())
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// session is the resolved configuration of one command: model, q, qdot and
// the ambient logger and styles.
type session struct {
	cfg    *config.Config
	model  *model.Model
	logger *slog.Logger
	styles viz.Styles
}

// loadSession resolves settings in increasing priority: defaults, config
// file, model argument, preset, flags.
func loadSession(cmd *cobra.Command, args []string) (*session, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	if len(args) > 0 {
		cfg.Model = args[0]
	}

	if preset != "" {
		p := config.GetPreset(cfg.Model, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(cfg.Model))
		}
		c := *p
		c.LogLevel = cfg.LogLevel
		cfg = &c
	}

	flags := cmd.Flags()
	if flags.Changed("gravity") {
		cfg.Gravity = gravity
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if flags.Changed("q") {
		cfg.Q = qFlag
	}
	if flags.Changed("qdot") {
		cfg.QDot = qdotFlag
	}
	if flags.Changed("dof") {
		cfg.Sweep.DOF = sweepDOF
	}
	if flags.Changed("from") {
		cfg.Sweep.From = sweepFrom
	}
	if flags.Changed("to") {
		cfg.Sweep.To = sweepTo
	}
	if flags.Changed("steps") {
		cfg.Sweep.Steps = sweepSteps
	}
	if flags.Changed("workers") {
		cfg.Sweep.Workers = workers
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	m, err := models.NewRegistry().GetModel(cfg.Model)
	if err != nil {
		return nil, err
	}
	m.Gravity = mgl64.Vec3{0, 0, -cfg.Gravity}

	logger.Debug("session ready",
		slog.String("model", cfg.Model),
		slog.Int("bodies", m.NumBodies()),
		slog.Int("fixed", m.NumFixed()),
		slog.Int("dof", m.DOFCount()),
	)

	return &session{
		cfg:    cfg,
		model:  m,
		logger: logger,
		styles: viz.NewStyles(viz.GetTheme(themeName)),
	}, nil
}

func newLogger(level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})), nil
}

func (s *session) reporter() *report.Reporter {
	r := report.New(s.model)
	r.Logger = s.logger
	return r
}

func listModels(cmd *cobra.Command, args []string) error {
	registry := models.NewRegistry()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "MODEL\tBODIES\tFIXED\tDOF\tQ\tPRESETS")
	for _, name := range registry.ListModels() {
		m, err := registry.GetModel(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\t%s\n",
			name,
			m.NumBodies()-1,
			m.NumFixed(),
			m.DOFCount(),
			m.QSize(),
			strings.Join(config.ListPresets(name), ","),
		)
	}
	return w.Flush()
}

func printHierarchy(cmd *cobra.Command, args []string) error {
	s, err := loadSession(cmd, args)
	if err != nil {
		return err
	}
	text, err := s.reporter().Hierarchy()
	if err != nil {
		return fmt.Errorf("hierarchy of %s: %w", s.cfg.Model, err)
	}
	fmt.Println(s.styles.Title.Render(s.cfg.Model))
	fmt.Print(s.styles.RenderHierarchy(text))
	return nil
}

func printDOFs(cmd *cobra.Command, args []string) error {
	s, err := loadSession(cmd, args)
	if err != nil {
		return err
	}
	fmt.Print(s.reporter().DOFOverview())
	return nil
}

func printOrigins(cmd *cobra.Command, args []string) error {
	s, err := loadSession(cmd, args)
	if err != nil {
		return err
	}
	text, err := s.reporter().NamedBodyOrigins(s.cfg.Configuration())
	if err != nil {
		return fmt.Errorf("origins of %s: %w", s.cfg.Model, err)
	}
	fmt.Print(text)
	return nil
}

func printCenterOfMass(cmd *cobra.Command, args []string) error {
	s, err := loadSession(cmd, args)
	if err != nil {
		return err
	}
	q := s.cfg.Configuration()
	if q == nil {
		q = s.model.ZeroConfiguration()
	}
	qdot := s.cfg.Velocity()
	if qdot == nil {
		qdot = make([]float64, s.model.DOFCount())
	}

	acc := composite.NewAccumulator(s.model)
	acc.Logger = s.logger
	mass, err := acc.CenterOfMass(s.model, q, qdot, true)
	if err != nil {
		return fmt.Errorf("center of mass: %w", err)
	}
	energy, err := acc.Energies(s.model, q, qdot)
	if err != nil {
		return fmt.Errorf("energy: %w", err)
	}

	st := s.styles
	fmt.Println(st.Title.Render(s.cfg.Model))
	fmt.Println(st.KeyValue("mass", "%.6g kg", mass.Total))
	fmt.Println(st.KeyValue("com", "%s", fmtVec(mass.CoM)))
	fmt.Println(st.KeyValue("com velocity", "%s", fmtVec(mass.CoMVelocity)))
	fmt.Println(st.KeyValue("ang momentum", "%s", fmtVec(mass.AngularMomentum)))
	fmt.Println(st.Separator(40))
	fmt.Println(st.KeyValue("kinetic", "%.6g J", energy.Kinetic))
	fmt.Println(st.KeyValue("potential", "%.6g J", energy.Potential))
	fmt.Println(st.KeyValue("total", "%.6g J", energy.Total()))
	return nil
}

func fmtVec(v mgl64.Vec3) string {
	return fmt.Sprintf("%.6g %.6g %.6g", v[0], v[1], v[2])
}

func runSweep(cmd *cobra.Command, args []string) error {
	s, err := loadSession(cmd, args)
	if err != nil {
		return err
	}

	p := sweep.Params{
		DOF:     s.cfg.Sweep.DOF,
		From:    s.cfg.Sweep.From,
		To:      s.cfg.Sweep.To,
		Steps:   s.cfg.Sweep.Steps,
		Workers: s.cfg.Sweep.Workers,
	}
	if err := p.Validate(s.model); err != nil {
		return err
	}
	label := s.reporter().DOFLabels()[p.DOF]

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("sweeping %s %s from %g to %g (%d steps)...\n", s.cfg.Model, label, p.From, p.To, p.Steps)

	runner := &sweep.Runner{Logger: s.logger}
	res, err := runner.Run(ctx, s.model, s.cfg.Configuration(), s.cfg.Velocity(), p)
	if err != nil {
		return fmt.Errorf("sweep: %w", err)
	}

	id, err := st.Save(s.cfg.Model, label, res)
	if err != nil {
		return fmt.Errorf("save sweep: %w", err)
	}
	s.logger.Info("sweep stored", slog.String("id", id), slog.Int("samples", len(res.Samples)))

	potential, err := sweep.Series(res.Samples, "potential")
	if err != nil {
		return err
	}
	sum := sweep.Summarize(potential)
	fmt.Printf("saved: %s\n", id)
	fmt.Printf("potential: %s\n", viz.SparklineChart(potential, 60))
	fmt.Printf("  min %.6g at %s=%.4g  max %.6g at %s=%.4g\n",
		sum.Min, label, res.Samples[sum.ArgMin].Value,
		sum.Max, label, res.Samples[sum.ArgMax].Value)
	return nil
}

func listSweeps(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no sweeps found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tMODEL\tTIME\tDOF\tRANGE\tSTEPS")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t[%.3g, %.3g]\t%d\n",
			run.ID,
			run.Model,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.DOFLabel,
			run.From,
			run.To,
			run.Steps,
		)
	}
	return w.Flush()
}

func plotSweep(cmd *cobra.Command, args []string) error {
	id := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(id)
	if err != nil {
		return err
	}
	samples, err := st.LoadSamples(id)
	if err != nil {
		return err
	}
	if len(samples) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("sweep: %s\n", meta.ID)
	fmt.Printf("model: %s\n", meta.Model)
	fmt.Printf("dof: %s [%g, %g]\n", meta.DOFLabel, meta.From, meta.To)
	fmt.Printf("samples: %d\n\n", len(samples))

	columns := []string{"com_x", "com_z", "kinetic", "potential"}
	if column != "" {
		columns = []string{column}
	}

	for i, c := range columns {
		data, err := sweep.Series(samples, c)
		if err != nil {
			return err
		}
		if i == 0 && svgPath != "" {
			svg, err := export.SeriesToSVG(sweep.Values(samples), data, 800, 400, string(viz.GetTheme(themeName).Primary))
			if err != nil {
				return err
			}
			if err := os.WriteFile(svgPath, []byte(svg), 0644); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", svgPath)
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("%s vs %s", c, meta.DOFLabel)),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

func drawTree(cmd *cobra.Command, args []string) error {
	s, err := loadSession(cmd, args)
	if err != nil {
		return err
	}

	c := viz.NewCanvas(60, 24)
	switch plane {
	case "xz":
		c.Plane = viz.PlaneXZ
	case "xy":
		c.Plane = viz.PlaneXY
	case "yz":
		c.Plane = viz.PlaneYZ
	default:
		return fmt.Errorf("unknown plane: %s", plane)
	}

	q := s.cfg.Configuration()
	if q == nil {
		q = s.model.ZeroConfiguration()
	}
	mass, err := composite.NewAccumulator(s.model).CenterOfMass(s.model, q, nil, true)
	if err != nil {
		return err
	}
	viz.DrawTree(c, s.model, mass.CoM)

	if svgPath != "" {
		svg := export.CanvasToSVG(c, 4, string(viz.GetTheme(themeName).Primary))
		if err := os.WriteFile(svgPath, []byte(svg), 0644); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", svgPath)
		return nil
	}

	fmt.Println(s.styles.Subtle.Render(fmt.Sprintf("%s  %s  extent %.3g", s.cfg.Model, c.Plane, c.Extent)))
	fmt.Print(s.styles.Joints.Render(c.String()))
	return nil
}

func exportSweep(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	if asJSON {
		return st.ExportJSON(args[0], os.Stdout)
	}
	return st.ExportCSV(args[0], os.Stdout)
}

func packConfiguration(cmd *cobra.Command, args []string) error {
	s, err := loadSession(cmd, args)
	if err != nil {
		return err
	}
	if len(basePos) != 3 {
		return fmt.Errorf("--pos needs 3 values, got %d", len(basePos))
	}
	if len(baseOrient) != 4 {
		return fmt.Errorf("--orient needs 4 values, got %d", len(baseOrient))
	}

	if !genvec.MatchesLayout(s.model) {
		return fmt.Errorf("%s has no floating base", s.cfg.Model)
	}
	n := s.model.QSize() - genvec.PositionOverhead
	joints := jointVals
	if joints == nil {
		joints = make([]float64, n)
	}
	q := make([]float64, s.model.QSize())
	pos := mgl64.Vec3{basePos[0], basePos[1], basePos[2]}
	orient := mgl64.Quat{W: baseOrient[0], V: mgl64.Vec3{baseOrient[1], baseOrient[2], baseOrient[3]}}.Normalize()
	if err := genvec.AssemblePosition(pos, orient, joints, q); err != nil {
		return fmt.Errorf("%s takes %d joint values: %w", s.cfg.Model, n, err)
	}

	parts := make([]string, len(q))
	for i, v := range q {
		parts[i] = fmt.Sprintf("%g", v)
	}
	fmt.Println(strings.Join(parts, ","))
	return nil
}

func runInspector(cmd *cobra.Command, args []string) error {
	s, err := loadSession(cmd, args)
	if err != nil {
		return err
	}
	return viz.RunInspector(s.cfg.Model, s.model, s.cfg.Configuration(), s.cfg.Velocity())
}
