// winch-bench streams the firmware's FG pulse-rate reports from the USB
// serial link and prints the derived line speed. Used with the firmware's
// bench mode to verify wiring and mechanical constants by hand-spinning
// the drum.
//
// Usage:
//
//	winch-bench -port /dev/ttyACM0 [-baud 115200] [-config calibration.yaml]
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"

	"winch/host/config"
	"winch/host/monitor"
	"winch/host/serial"
)

func main() {
	device := flag.String("port", "/dev/ttyACM0", "serial device of the winch controller")
	baud := flag.Int("baud", 115200, "baud rate (ignored by USB CDC)")
	configPath := flag.String("config", "", "bench calibration YAML (default: stock profile)")
	flag.Parse()

	cal := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		cal = loaded
	}
	profile := cal.Profile()

	cfg := serial.DefaultConfig(*device)
	cfg.Baud = *baud
	// Line-oriented stream: block until data arrives.
	cfg.ReadTimeout = 0

	port, err := serial.Open(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer port.Close()

	fmt.Printf("listening on %s (%.0f pulses/m, %dms windows)\n",
		*device, profile.PulsesPerMeter(), cal.SamplePeriodMS)

	scanner := bufio.NewScanner(port)
	for scanner.Scan() {
		line := scanner.Text()
		report, ok := monitor.ParseReport(line)
		if !ok {
			// Pass firmware chatter (move outcomes etc.) through as-is.
			fmt.Println(line)
			continue
		}
		fmt.Printf("pulses=%-5d rate=%7.1f /s  line=%6.3f m/s\n",
			report.Pulses, report.Rate, report.LineSpeedMPS(profile))
	}
	if err := scanner.Err(); err != nil {
		fmt.Fprintln(os.Stderr, "read error:", err)
		os.Exit(1)
	}
}
