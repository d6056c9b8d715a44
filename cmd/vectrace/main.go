package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pavanmanishd/vector"
	"github.com/pavanmanishd/vector/arena"
	"github.com/pavanmanishd/vector/internal/config"
	"github.com/pavanmanishd/vector/internal/xlog"
	"github.com/pavanmanishd/vector/observe"
)

var (
	configFile string
	growth     float64
	increment  int
	pushes     int
	pops       int
	reserve    int
	limit      int
	arenaBytes int
	plot       bool
	showAll    bool
	logLevel   string
)

var (
	header = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	dim    = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	green  = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	yellow = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	red    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "vectrace",
		Short:        "trace the capacity policy of the vector container",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().IntVar(&pushes, "pushes", config.DefaultPushes, "number of appends")
	rootCmd.PersistentFlags().IntVar(&pops, "pops", config.DefaultPops, "number of removals after the appends")
	rootCmd.PersistentFlags().IntVar(&reserve, "reserve", 0, "pinned initial capacity (0 for none)")

	scheduleCmd := &cobra.Command{
		Use:   "schedule",
		Short: "print the capacity after each step of a scenario",
		Args:  cobra.NoArgs,
		RunE:  runSchedule,
	}
	scheduleCmd.Flags().Float64Var(&growth, "growth", vector.GrowthFactor, "growth factor A")
	scheduleCmd.Flags().IntVar(&increment, "increment", vector.MinIncrement, "minimum increment B")
	scheduleCmd.Flags().BoolVar(&plot, "plot", false, "plot capacity and length")
	scheduleCmd.Flags().BoolVar(&showAll, "all", false, "show steps that keep the capacity")

	demoCmd := &cobra.Command{
		Use:   "demo",
		Short: "run a traced vector through the scenario and print its metrics",
		Args:  cobra.NoArgs,
		RunE:  runDemo,
	}
	demoCmd.Flags().IntVar(&limit, "limit", 0, "allocator limit in elements (0 for none)")
	demoCmd.Flags().IntVar(&arenaBytes, "arena", 0, "draw storage from an arena of this many bytes (0 for heap)")
	demoCmd.Flags().StringVar(&logLevel, "log-level", "", "debug, info, warn or error")

	rootCmd.AddCommand(scheduleCmd, demoCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig reads --config when given and lets explicit flags override it.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		var err error
		if cfg, err = config.Load(configFile); err != nil {
			return nil, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("growth") {
		cfg.Policy.A = growth
	}
	if flags.Changed("increment") {
		cfg.Policy.B = increment
	}
	if flags.Changed("pushes") {
		cfg.Scenario.Pushes = pushes
	}
	if flags.Changed("pops") {
		cfg.Scenario.Pops = pops
	}
	if flags.Changed("reserve") {
		cfg.Scenario.Reserve = reserve
	}
	if flags.Changed("limit") {
		cfg.Scenario.Limit = limit
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = logLevel
	}
	return cfg, cfg.Validate()
}

func runSchedule(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	steps := cfg.Policy.Simulate(cfg.Scenario.Reserve, cfg.Scenario.Ops())
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, header.Render(fmt.Sprintf("policy A=%g B=%d", cfg.Policy.A, cfg.Policy.B)))
	printSteps(out, steps, showAll)

	if plot && len(steps) > 0 {
		capacity := make([]float64, len(steps))
		length := make([]float64, len(steps))
		for i, s := range steps {
			capacity[i] = float64(s.Cap)
			length[i] = float64(s.Len)
		}
		fmt.Fprintln(out)
		fmt.Fprintln(out, asciigraph.PlotMany([][]float64{capacity, length},
			asciigraph.Height(12),
			asciigraph.Width(80),
			asciigraph.Caption("capacity (upper) and length per step"),
		))
	}
	return nil
}

func printSteps(w io.Writer, steps []vector.Step, all bool) {
	fmt.Fprintln(w, dim.Render(fmt.Sprintf("%6s  %-5s %-7s %6s %10s", "step", "op", "action", "len", "cap")))
	for i, s := range steps {
		if s.Action == vector.Keep && !all {
			continue
		}
		line := fmt.Sprintf("%6d  %-5s %-7s %6d %10s", i+1, s.Op, s.Action, s.Len, capChange(s))
		switch s.Action {
		case vector.Grow:
			line = green.Render(line)
		case vector.Shrink:
			line = yellow.Render(line)
		}
		fmt.Fprintln(w, line)
	}
}

func capChange(s vector.Step) string {
	if s.Previous == s.Cap {
		return fmt.Sprint(s.Cap)
	}
	return fmt.Sprintf("%d->%d", s.Previous, s.Cap)
}

func runDemo(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.Policy != vector.DefaultPolicy {
		return fmt.Errorf("%w: demo vectors always use A=%g B=%d; use schedule to simulate other policies",
			vector.ErrInvalid, vector.GrowthFactor, vector.MinIncrement)
	}

	logger := xlog.Load(cfg.Log)
	defer logger.Sync()

	reg := prometheus.NewRegistry()
	promObs, err := observe.NewPromObserver(reg, cfg.Scenario.Name)
	if err != nil {
		return err
	}
	rec := observe.NewRecorder(16)

	alloc, release, err := demoAllocator(cfg.Scenario)
	if err != nil {
		return err
	}
	defer release()

	vcfg := vector.Config[int]{
		Allocator: alloc,
		Observer:  observe.Multi(observe.NewZapObserver(logger.Named("vector")), promObs, rec),
	}
	var v *vector.Vector[int]
	if cfg.Scenario.Reserve > 0 {
		if v, err = vector.NewReserved(cfg.Scenario.Reserve, vcfg); err != nil {
			return err
		}
	} else {
		v = vector.New(vcfg)
	}

	for i := 0; i < cfg.Scenario.Pushes; i++ {
		if err := v.PushBack(i); err != nil {
			logger.Warn("push stopped", zap.Int("pushed", i), zap.Error(err))
			break
		}
	}
	for i := 0; i < cfg.Scenario.Pops; i++ {
		if !v.PopBack() {
			break
		}
	}

	out := cmd.OutOrStdout()
	m := v.Metrics()
	fmt.Fprintln(out, header.Render("vector "+cfg.Scenario.Name))
	fmt.Fprintf(out, "len %d  cap %d  pinned %v  utilization %.2f\n", m.Len, m.Cap, m.Pinned, m.Utilization)
	fmt.Fprintf(out, "grows %d  shrinks %d  ", m.Grows, m.Shrinks)
	failed := fmt.Sprintf("failed grows %d  failed shrinks %d", m.FailedGrows, m.FailedShrinks)
	if m.FailedGrows+m.FailedShrinks > 0 {
		failed = red.Render(failed)
	}
	fmt.Fprintln(out, failed)

	fmt.Fprintln(out)
	fmt.Fprintln(out, header.Render(fmt.Sprintf("last %d of %d events", len(rec.Events()), rec.Total())))
	for _, e := range rec.Events() {
		fmt.Fprintf(out, "  %-13s len %-5d cap %d->%d\n", e.Kind, e.Len, e.OldCap, e.NewCap)
	}

	v.Release()
	fmt.Fprintln(out)
	fmt.Fprintln(out, header.Render("metrics"))
	return printMetrics(out, reg)
}

// demoAllocator picks the allocator described by the scenario and flags.
func demoAllocator(s config.ScenarioConfig) (vector.Allocator[int], func(), error) {
	var alloc vector.Allocator[int] = vector.HeapAllocator[int]{}
	release := func() {}

	if arenaBytes > 0 {
		a := arena.NewArenaLimit(arenaBytes, arenaBytes)
		aa, err := vector.NewArenaAllocator[int](a)
		if err != nil {
			return nil, nil, err
		}
		alloc, release = aa, a.Release
	}
	if s.Limit > 0 {
		alloc = vector.NewLimitedAllocator(alloc, s.Limit)
	}
	return alloc, release, nil
}

func printMetrics(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			var labels []string
			for _, lp := range m.GetLabel() {
				labels = append(labels, fmt.Sprintf("%s=%q", lp.GetName(), lp.GetValue()))
			}
			sort.Strings(labels)

			value := m.GetGauge().GetValue()
			if c := m.GetCounter(); c != nil {
				value = c.GetValue()
			}
			fmt.Fprintf(w, "%s{%s} %g\n", mf.GetName(), strings.Join(labels, ","), value)
		}
	}
	return nil
}
