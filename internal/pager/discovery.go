package pager

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"newsdeck/internal/logging"
	"newsdeck/internal/metrics"
	"newsdeck/internal/source"
)

// DefaultProbeLimit caps sequential probing
const DefaultProbeLimit = 300

// ProbeFunc reports whether page n exists
type ProbeFunc func(ctx context.Context, n int) (bool, error)

// DiscoveryOptions configures page count discovery
type DiscoveryOptions struct {
	UseManifest bool
	Limit       int
}

// DiscoveredMsg carries the page count to the event loop
type DiscoveredMsg struct {
	Total        int
	FromManifest bool
}

// DiscoverTotalPages probes pages 1, 2, 3, … in order and returns the
// number of consecutive hits, at least 1. A probe error counts as a miss.
// Page numbers are assumed dense and contiguous from 1.
func DiscoverTotalPages(ctx context.Context, probe ProbeFunc, limit int) int {
	if limit <= 0 {
		limit = DefaultProbeLimit
	}

	found := 0
	for n := 1; n <= limit; n++ {
		if ctx.Err() != nil {
			break
		}
		ok, err := probe(ctx, n)
		if err != nil {
			metrics.Probes.WithLabelValues("error").Inc()
			break
		}
		if !ok {
			metrics.Probes.WithLabelValues("miss").Inc()
			break
		}
		metrics.Probes.WithLabelValues("hit").Inc()
		found = n
	}

	if found < 1 {
		return 1
	}
	return found
}

// Discover finds the page count of src, preferring its count manifest
func Discover(ctx context.Context, src source.Source, opts DiscoveryOptions) DiscoveredMsg {
	log := logging.NewLogger("pager.discovery")

	if opts.UseManifest {
		total, err := src.Manifest(ctx)
		switch {
		case err == nil:
			log.Info().Int("total", total).Msg("page count from manifest")
			metrics.TotalPages.Set(float64(total))
			return DiscoveredMsg{Total: total, FromManifest: true}
		case errors.Is(err, source.ErrNoManifest):
			log.Debug().Msg("no manifest, probing")
		default:
			log.Warn().Err(err).Msg("manifest unusable, probing")
		}
	}

	total := DiscoverTotalPages(ctx, src.Probe, opts.Limit)
	log.Info().Int("total", total).Msg("page count from probes")
	metrics.TotalPages.Set(float64(total))
	return DiscoveredMsg{Total: total}
}

// DiscoverCmd runs Discover off the event loop
func DiscoverCmd(ctx context.Context, src source.Source, opts DiscoveryOptions) tea.Cmd {
	return func() tea.Msg {
		return Discover(ctx, src, opts)
	}
}
