package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/gorilla/websocket"
	"github.com/guptarohit/asciigraph"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/bening-gawitsa/heatsim/casefile"
	"github.com/bening-gawitsa/heatsim/config"
	"github.com/bening-gawitsa/heatsim/grid"
	"github.com/bening-gawitsa/heatsim/model"
	"github.com/bening-gawitsa/heatsim/server"
	"github.com/bening-gawitsa/heatsim/solver"
)

var (
	cfgPath  string
	logLevel string
	casePath string
	outPath  string
	workers  int
	keep     int
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "heatsim",
		Short:        "2D transient heat conduction simulator",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "conf/config.ini", "process config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level, overrides the config file")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "serve simulation frames over websocket",
		RunE:  serve,
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a case to completion and report the result",
		RunE:  run,
	}
	runCmd.Flags().StringVar(&casePath, "case", "", "case file (YAML), defaults to the reference plate case")
	runCmd.Flags().StringVar(&outPath, "out", "", "write the snapshot sequence as JSON")
	runCmd.Flags().IntVar(&workers, "workers", 0, "interior update goroutines, 0 = one per CPU")
	runCmd.Flags().IntVar(&keep, "keep", 0, "retain only the last n snapshots, 0 = all")

	rootCmd.AddCommand(serveCmd, runCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig() config.Config {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.WithError(err).Warn("config file not loaded, using defaults")
	}
	level := cfg.LogLevel
	if logLevel != "" {
		level = logLevel
	}
	if lvl, err := log.ParseLevel(level); err == nil {
		log.SetLevel(lvl)
	} else {
		log.WithField("level", level).Warn("unknown log level")
	}
	return cfg
}

func serve(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     func(r *http.Request) bool { return true },
	}
	return server.NewServer(cfg, upgrader).Serve()
}

func run(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	var (
		params solver.Params
		err    error
	)
	if casePath != "" {
		params, err = casefile.Load(casePath)
	} else {
		params, err = casefile.Default().Params()
	}
	if err != nil {
		return err
	}

	w := workers
	if w == 0 {
		w = cfg.Workers
	}
	opts := []solver.Option{solver.WithRetention(keep)}
	if w > 0 {
		opts = append(opts, solver.WithWorkers(w))
	}
	stepper, err := solver.NewStepper(params, opts...)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	info := stepper.Info()
	log.WithFields(log.Fields{
		"nx":    info.Nx,
		"nz":    info.Nz,
		"dt":    info.Dt,
		"steps": info.Steps,
	}).Info("run starting")

	start := time.Now()
	history, err := stepper.Run(ctx)
	if err != nil {
		return err
	}
	log.WithFields(log.Fields{
		"snapshots": history.Len(),
		"elapsed":   time.Since(start),
	}).Info("run complete")

	if outPath != "" {
		if err := exportJSON(outPath, stepper, history); err != nil {
			return err
		}
		log.WithField("path", outPath).Info("snapshots written")
	}

	printSummary(stepper, history)
	return nil
}

// exportJSON writes the retained snapshot sequence the way the
// visualization notebook consumes it: run metadata plus row-major
// fields per step.
func exportJSON(path string, stepper *solver.Stepper, h *grid.History) error {
	type export struct {
		Info   model.RunInfo `json:"info"`
		Steps  []int         `json:"steps"`
		Times  []float64     `json:"times"`
		Fields [][]float64   `json:"fields"`
	}
	data := export{Info: stepper.Info()}
	h.Traverse(func(step int, g *grid.Grid) {
		data.Steps = append(data.Steps, step)
		data.Times = append(data.Times, float64(step)*stepper.Dt())
		cells := make([]float64, len(g.Cells()))
		copy(cells, g.Cells())
		data.Fields = append(data.Fields, cells)
	})

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

func printSummary(stepper *solver.Stepper, h *grid.History) {
	if h.Len() == 0 {
		return
	}
	series := make([]float64, 0, h.Len())
	h.Traverse(func(_ int, g *grid.Grid) {
		series = append(series, g.At(g.Nz()/2, g.Nx()/2))
	})
	if len(series) > 1 {
		fmt.Println(asciigraph.Plot(series,
			asciigraph.Height(12),
			asciigraph.Caption("centre cell temperature per snapshot")))
	}
	step, last := h.Last()
	min, max := last.MinMax()
	fmt.Printf("step %d: min %.3f max %.3f centre %.3f\n",
		step, min, max, last.At(last.Nz()/2, last.Nx()/2))
}
