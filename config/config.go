// Package config loads the process settings from an INI file. Missing
// keys fall back to the defaults below, so the binary runs without a
// config file at all.
package config

import (
	"gopkg.in/ini.v1"
)

type Config struct {
	// Addr is the websocket listen address.
	Addr string

	// Workers bounds the goroutines the interior update is split
	// across; zero means one per CPU.
	Workers int

	// PushStride pushes every n-th frame to the frontend. The final
	// step is always pushed.
	PushStride int

	// Retention caps the snapshots Run keeps in memory; zero keeps the
	// full sequence.
	Retention int

	// LogLevel is a logrus level name.
	LogLevel string
}

func Default() Config {
	return Config{
		Addr:       ":9000",
		Workers:    0,
		PushStride: 10,
		Retention:  0,
		LogLevel:   "info",
	}
}

// Load reads path and overlays it on the defaults. The error is
// non-fatal by convention; callers log it and keep the defaults.
func Load(path string) (Config, error) {
	file, err := ini.Load(path)
	if err != nil {
		return Default(), err
	}
	return fromFile(file), nil
}

func fromFile(file *ini.File) Config {
	def := Default()
	srv := file.Section("server")
	sim := file.Section("simulation")
	return Config{
		Addr:       srv.Key("Addr").MustString(def.Addr),
		PushStride: srv.Key("PushStride").MustInt(def.PushStride),
		Workers:    sim.Key("Workers").MustInt(def.Workers),
		Retention:  sim.Key("Retention").MustInt(def.Retention),
		LogLevel:   file.Section("log").Key("Level").MustString(def.LogLevel),
	}
}
