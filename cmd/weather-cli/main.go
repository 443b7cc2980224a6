// Command weather-cli is an interactive terminal client: type a place name to see its
// weather, pick a number when the name is ambiguous, "back" to clear an error and
// "quit" to leave.
package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/i474232898/weather-finder/internal/config"
	"github.com/i474232898/weather-finder/internal/weather"
	"github.com/i474232898/weather-finder/internal/weather/providers"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Orchestrator logs go to stderr only when asked for.
	if os.Getenv("WEATHER_CLI_DEBUG") == "" {
		log.SetOutput(io.Discard)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	geocoder, forecasts := providers.FromConfig(cfg)
	o := weather.NewOrchestrator(geocoder, forecasts)
	defer o.Close()

	if err := run(ctx, o, weather.NewIcons(cfg.IconURLTemplate), cfg.DefaultLocation, os.Stdin, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run drives o from the lines of in until quit, end of input or ctx is done.
func run(ctx context.Context, o *weather.Orchestrator, icons weather.Icons, initial string, in io.Reader, out io.Writer) error {
	if ctx.Err() != nil {
		return nil
	}

	if initial != "" {
		fmt.Fprintln(out, "Loading...")
		st, err := o.ResolveAndFetch(ctx, initial)
		switch {
		case ctx.Err() != nil:
			return nil
		case err != nil:
			fmt.Fprintf(out, "Error: %v\n", err)
		default:
			printView(out, weather.Render(st, icons))
		}
	}

	lines, readErr := readLines(ctx, in)
	for {
		if ctx.Err() != nil {
			return nil
		}
		fmt.Fprint(out, prompt(o.State()))

		var line string
		select {
		case <-ctx.Done():
			fmt.Fprintln(out)
			return nil
		case l, ok := <-lines:
			if !ok {
				return <-readErr
			}
			line = strings.TrimSpace(l)
		}

		var (
			st  weather.State
			err error
		)
		switch {
		case line == "quit" || line == "exit":
			return nil
		case line == "back":
			st, err = o.Back()
		case o.State().Phase() == weather.PhaseAwaitingDisambiguation && isNumber(line):
			n, _ := strconv.Atoi(line)
			st, err = o.SelectIndex(ctx, n-1)
		default:
			if line != "" {
				fmt.Fprintln(out, "Loading...")
			}
			st, err = o.ResolveAndFetch(ctx, line)
		}

		if ctx.Err() != nil {
			return nil
		}
		if err != nil {
			fmt.Fprintf(out, "Error: %v\n", err)
			continue
		}
		printView(out, weather.Render(st, icons))
	}
}

// readLines scans in on its own goroutine so a blocked read does not hold up
// cancellation. The error channel gets exactly one value before lines is closed.
func readLines(ctx context.Context, in io.Reader) (<-chan string, <-chan error) {
	lines := make(chan string)
	errc := make(chan error, 1)

	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				errc <- nil
				return
			}
		}
		errc <- scanner.Err()
	}()

	return lines, errc
}

func prompt(s weather.State) string {
	switch s.Phase() {
	case weather.PhaseAwaitingDisambiguation:
		return "Choose a number> "
	case weather.PhaseError:
		return "Enter location (or back)> "
	default:
		return "Enter location> "
	}
}

func isNumber(s string) bool {
	_, err := strconv.Atoi(s)
	return err == nil
}

func printView(out io.Writer, v weather.View) {
	switch v.Phase {
	case weather.PhaseError:
		fmt.Fprintln(out, v.Message)
	case weather.PhaseAwaitingDisambiguation:
		fmt.Fprintln(out, v.Title)
		for _, opt := range v.Options {
			fmt.Fprintf(out, "  %d) %s\n", opt.Index+1, opt.Label)
		}
	case weather.PhaseReady:
		fmt.Fprintln(out, v.Location)
		if v.TemperatureText != "" {
			fmt.Fprintf(out, "%s  %s\n", v.TemperatureText, v.Condition)
		}
		if v.IconURL != "" {
			fmt.Fprintln(out, v.IconURL)
		}
		if v.AverageText != "" {
			fmt.Fprintln(out, v.AverageText)
		}
		for _, d := range v.Days {
			fmt.Fprintln(out, "  "+d.Label)
		}
	default:
		fmt.Fprintln(out, v.Text)
	}
}
