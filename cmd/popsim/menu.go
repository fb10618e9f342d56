package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/san-kum/popsim/internal/config"
	"github.com/san-kum/popsim/internal/viz"
)

var errInvalidChoice = errors.New("invalid choice")

// prompter reads one whitespace-trimmed answer per line.
type prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

func (p *prompter) ask(question string) (string, error) {
	fmt.Fprint(p.out, question)
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", err
		}
		return "", io.ErrUnexpectedEOF
	}
	return strings.TrimSpace(p.in.Text()), nil
}

func (p *prompter) float(question string) (float64, error) {
	answer, err := p.ask(question)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(answer, 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", answer)
	}
	return v, nil
}

// runMenu is the interactive session: manual parameters, a scenario, or the
// scenario list.
func runMenu(ctx context.Context, in io.Reader, out io.Writer) error {
	p := &prompter{in: bufio.NewScanner(in), out: out}

	fmt.Fprintln(out, viz.HeaderStyle.Render("POPULATION GROWTH SIMULATION\nLogistic Growth Model"))
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Choose a mode:")
	fmt.Fprintln(out, "1. Enter parameters manually")
	fmt.Fprintln(out, "2. Use an example scenario")
	fmt.Fprintln(out, "3. List example scenarios")

	choice, err := p.ask("Choice: ")
	if err != nil {
		return err
	}

	var cfg *config.Config
	switch choice {
	case "1":
		cfg, err = readParams(p)
		if err != nil {
			return err
		}
	case "2":
		names := config.ListPresets()
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Choose a scenario:")
		for i, name := range names {
			fmt.Fprintf(out, "%d. %s\n", i+1, describePreset(name))
		}
		answer, err := p.ask("Choice: ")
		if err != nil {
			return err
		}
		n, err := strconv.Atoi(answer)
		if err != nil || n < 1 || n > len(names) {
			return fmt.Errorf("%w: scenario %q", errInvalidChoice, answer)
		}
		cfg = config.GetPreset(names[n-1])
	case "3":
		fmt.Fprintln(out)
		fmt.Fprintln(out, viz.HeaderStyle.Render("EXAMPLE SCENARIOS"))
		for i, name := range config.ListPresets() {
			fmt.Fprintf(out, "%d. %s\n", i+1, describePreset(name))
		}
		return nil
	default:
		return fmt.Errorf("%w: mode %q", errInvalidChoice, choice)
	}

	fmt.Fprintln(out)
	return simulate(ctx, cfg, out)
}

func readParams(p *prompter) (*config.Config, error) {
	cfg := config.DefaultConfig()
	fields := []struct {
		question string
		dst      *float64
	}{
		{"Growth rate (r) [e.g. 0.1]: ", &cfg.GrowthRate},
		{"Carrying capacity (K) [e.g. 1000]: ", &cfg.CarryingCapacity},
		{"Initial population (P0) [e.g. 50]: ", &cfg.InitialPopulation},
		{"Maximum simulation time [e.g. 50]: ", &cfg.MaxTime},
		{"Step size (dt) [e.g. 0.1]: ", &cfg.Dt},
	}
	for _, f := range fields {
		v, err := p.float(f.question)
		if err != nil {
			return nil, err
		}
		*f.dst = v
	}
	return cfg, nil
}

func describePreset(name string) string {
	c := config.Presets[name]
	return fmt.Sprintf("%s: %s (r=%g, K=%g, P0=%g)", name, c.Description, c.GrowthRate, c.CarryingCapacity, c.InitialPopulation)
}
