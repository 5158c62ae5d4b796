package probe

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"syntaxsheet/pkg/model"
)

// CheckFunc performs one startup check and returns nil when it passes.
type CheckFunc func(ctx context.Context) error

// Probe is a named startup check.
type Probe struct {
	Name     string
	Check    CheckFunc
	Critical bool // a failure prevents startup
}

// Result holds the outcome of a single probe.
type Result struct {
	Probe    Probe
	Error    error
	Duration time.Duration
}

// Timeout bounds each individual check.
const Timeout = 5 * time.Second

// Run executes the probes in order.
func Run(ctx context.Context, probes []Probe) []Result {
	results := make([]Result, len(probes))
	for i, p := range probes {
		start := time.Now()
		checkCtx, cancel := context.WithTimeout(ctx, Timeout)
		err := p.Check(checkCtx)
		cancel()

		results[i] = Result{Probe: p, Error: err, Duration: time.Since(start)}
	}
	return results
}

// AnalyzeResults logs a summary and returns the joined errors of failed critical probes.
func AnalyzeResults(results []Result) error {
	var critical []error

	slog.Info("Startup Checks Summary")
	for _, r := range results {
		status := "PASS"
		if r.Error != nil {
			status = "FAIL"
		}
		msg := fmt.Sprintf("[%s] %-16s (%v)", status, r.Probe.Name, r.Duration.Round(time.Millisecond))

		if r.Error == nil {
			slog.Info(msg)
			continue
		}
		slog.Error(msg, "error", r.Error)
		if r.Probe.Critical {
			critical = append(critical, fmt.Errorf("%s: %w", r.Probe.Name, r.Error))
		}
	}

	return errors.Join(critical...)
}

// ErrNoLanguages is reported when the catalog is empty.
var ErrNoLanguages = errors.New("no language definitions found")

// Catalog warns when no language was loaded. The viewer still starts.
func Catalog(cat *model.Catalog) Probe {
	return Probe{
		Name: "Language Data",
		Check: func(context.Context) error {
			if cat.Len() == 0 {
				return ErrNoLanguages
			}
			return nil
		},
	}
}

// Pinger is implemented by store.SQLiteStore.
type Pinger interface {
	Ping(ctx context.Context) error
}

// SearchIndex checks the search database is reachable.
func SearchIndex(p Pinger) Probe {
	return Probe{
		Name:     "Search Index",
		Check:    p.Ping,
		Critical: true,
	}
}
