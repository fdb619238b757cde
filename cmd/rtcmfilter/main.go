/*------------------------------------------------------------------------------
* main.go : console driver for the rtcm3 msm4 filtering transcoder
*
*          Copyright (C) 2022-2026 by feng xuebin, All rights reserved.
*-----------------------------------------------------------------------------*/
package main

import (
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	rtcmmsm "github.com/fengxuebin/gnssgo-rtcm-msm4-filter"
)

// fileConfig is the optional YAML configuration layer: everything it
// specifies can also be given on the command line, and flags win when both
// are present.
type fileConfig struct {
	Freq struct {
		GPS string `yaml:"gps"`
		GLO string `yaml:"glo"`
		GAL string `yaml:"gal"`
		QZS string `yaml:"qzs"`
		SBS string `yaml:"sbs"`
		CMP string `yaml:"cmp"`
		IRN string `yaml:"irn"`
	} `yaml:"freq"`
	Sync       bool   `yaml:"sync"`
	TraceFile  string `yaml:"trace_file"`
	TraceLevel int    `yaml:"trace_level"`
	MetricsAddr string `yaml:"metrics_addr"`
}

func loadConfig(path string) (fileConfig, error) {
	var cfg fileConfig
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func main() {
	app := &cli.App{
		Name:  "rtcmfilter",
		Usage: "filter the frequency bands carried in an RTCM3 MSM4 observation message",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "optional YAML config file"},
			&cli.StringFlag{Name: "gps", Value: "", Usage: "GPS bands to keep, e.g. L1+L2"},
			&cli.StringFlag{Name: "glo", Value: ""},
			&cli.StringFlag{Name: "gal", Value: ""},
			&cli.StringFlag{Name: "qzs", Value: ""},
			&cli.StringFlag{Name: "sbs", Value: ""},
			&cli.StringFlag{Name: "cmp", Value: ""},
			&cli.StringFlag{Name: "irn", Value: ""},
			&cli.BoolFlag{Name: "sync", Usage: "set the MSM multiple-message bit on output"},
			&cli.StringFlag{Name: "trace-file", Usage: "trace output file (default stdout)"},
			&cli.IntFlag{Name: "trace-level", Value: 0},
			&cli.StringFlag{Name: "metrics-addr", Usage: "if set, serve Prometheus metrics on this address (e.g. :9191) while filtering"},
		},
		Action: run,
	}
	if err := app.Run(os.Args); err != nil {
		log.WithError(err).Fatal("rtcmfilter failed")
	}
}

func run(c *cli.Context) error {
	cfg, err := loadConfig(c.String("config"))
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	freqSpec := [7]string{
		firstNonEmpty(c.String("gps"), cfg.Freq.GPS),
		firstNonEmpty(c.String("glo"), cfg.Freq.GLO),
		firstNonEmpty(c.String("gal"), cfg.Freq.GAL),
		firstNonEmpty(c.String("qzs"), cfg.Freq.QZS),
		firstNonEmpty(c.String("sbs"), cfg.Freq.SBS),
		firstNonEmpty(c.String("cmp"), cfg.Freq.CMP),
		firstNonEmpty(c.String("irn"), cfg.Freq.IRN),
	}
	sync := c.Bool("sync") || cfg.Sync
	traceFile := firstNonEmpty(c.String("trace-file"), cfg.TraceFile)
	traceLevel := c.Int("trace-level")
	if traceLevel == 0 {
		traceLevel = cfg.TraceLevel
	}
	metricsAddr := firstNonEmpty(c.String("metrics-addr"), cfg.MetricsAddr)

	rtcmmsm.TraceOpen(traceFile)
	defer rtcmmsm.TraceClose()
	rtcmmsm.TraceLevel(traceLevel)

	registry := prometheus.NewRegistry()
	metrics := rtcmmsm.NewMetrics(registry)
	rtcmmsm.SetDropObserver(metrics.ObserveSignalDropped)

	if metricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
		log.WithField("addr", metricsAddr).Info("serving prometheus metrics")
		go func() {
			if err := http.ListenAndServe(metricsAddr, mux); err != nil {
				log.WithError(err).Error("metrics server stopped")
			}
		}()
	}

	return filterStream(os.Stdin, os.Stdout, sync, freqSpec, metrics)
}

// filterStream reads length-delimited RTCM3 frames from in (each frame
// self-describing its length per SPEC_FULL.md §6) and writes the filtered
// frame for each one it recognizes to out, until in is exhausted.
func filterStream(in io.Reader, out io.Writer, sync bool, freqSpec [7]string, metrics *rtcmmsm.Metrics) error {
	r := newFrameReader(in)
	for {
		frame, err := r.next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		result, status, cerr := rtcmmsm.Convert(sync, frame, freqSpec)
		metrics.ObserveConvert(status, result)
		if cerr != nil {
			log.WithError(cerr).WithField("status", status).Warn("skipping frame")
			continue
		}
		if status != rtcmmsm.StatusOK {
			continue
		}
		if _, err := out.Write(result); err != nil {
			return err
		}
	}
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}
