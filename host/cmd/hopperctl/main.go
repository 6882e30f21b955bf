// hopperctl talks to the hopper sensor board through a serial bus bridge:
// poll the status counters, watch for events, read raw sensor measurements.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/dikkadev/prettyslog"
	"gopkg.in/yaml.v2"

	"hopperboard/host/board"
	"hopperboard/host/serial"
)

// Config is the optional YAML configuration; flags override it.
type Config struct {
	Device         string `yaml:"device"`
	Baud           int    `yaml:"baud"`
	PollIntervalMS int    `yaml:"pollIntervalMS"`
}

var (
	configPath = flag.String("config", "", "Path to YAML config file")
	device     = flag.String("device", "", "Serial device of the bus bridge (overrides config)")
	baud       = flag.Int("baud", 0, "Baud rate (overrides config)")
	verbose    = flag.Bool("verbose", false, "Enable debug output")
)

func defaultConfig() Config {
	return Config{
		Device:         "/dev/ttyACM0",
		Baud:           115200,
		PollIntervalMS: 500,
	}
}

func loadConfig() Config {
	cfg := defaultConfig()

	if *configPath != "" {
		data, err := os.ReadFile(*configPath)
		if err != nil {
			slog.Warn("error reading config file", "path", *configPath, "err", err)
		} else if err := yaml.Unmarshal(data, &cfg); err != nil {
			slog.Warn("error parsing config file", "path", *configPath, "err", err)
		}
	}

	if *device != "" {
		cfg.Device = *device
	}
	if *baud != 0 {
		cfg.Baud = *baud
	}
	if cfg.PollIntervalMS <= 0 {
		cfg.PollIntervalMS = 500
	}
	return cfg
}

func main() {
	flag.Parse()

	opts := []prettyslog.Option{}
	if *verbose {
		opts = append(opts, prettyslog.WithLevel(slog.LevelDebug))
	}
	slog.SetDefault(slog.New(prettyslog.NewPrettyslogHandler("hopperctl", opts...)))

	cfg := loadConfig()

	cmd := flag.Arg(0)
	if cmd == "" {
		fmt.Fprintln(os.Stderr, "usage: hopperctl [flags] status|watch|measure")
		flag.PrintDefaults()
		os.Exit(2)
	}

	portCfg := serial.DefaultConfig(cfg.Device)
	portCfg.Baud = cfg.Baud
	port, err := serial.Open(portCfg)
	if err != nil {
		slog.Error("failed to open bus bridge", "device", cfg.Device, "err", err)
		os.Exit(1)
	}
	defer port.Close()

	client := board.NewClient(port)
	slog.Debug("connected", "device", cfg.Device, "baud", cfg.Baud)

	switch cmd {
	case "status":
		status, err := client.LastStatus()
		if err != nil {
			slog.Error("status read failed", "err", err)
			os.Exit(1)
		}
		fmt.Println(status)

	case "watch":
		interval := time.Duration(cfg.PollIntervalMS) * time.Millisecond
		slog.Info("watching for events", "interval", interval)
		for {
			status, err := client.LastStatus()
			if err != nil {
				slog.Error("status read failed", "err", err)
				os.Exit(1)
			}
			if status.Presses != 0 || status.Detents != 0 {
				slog.Info("events",
					"presses", status.Presses,
					"detents", status.Detents,
					"hopper_empty", status.HopperEmpty)
			}
			time.Sleep(interval)
		}

	case "measure":
		m, err := client.LastMeasurement()
		if err != nil {
			slog.Error("measurement read failed", "err", err)
			os.Exit(1)
		}
		fmt.Printf("led_on=%d led_off=%d delta=%d\n", m.LedOn, m.LedOff, int(m.LedOff)-int(m.LedOn))

	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n", cmd)
		os.Exit(2)
	}
}
