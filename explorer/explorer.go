// Package explorer defines Params, sentinel errors, and the Explorer
// materialization entry point.
package explorer

import (
	"errors"
	"fmt"

	"github.com/medcodigos/owid-grapher/colspec"
	"github.com/medcodigos/owid-grapher/ingest"
	"github.com/medcodigos/owid-grapher/table"
)

// Sentinel errors for explorer operations.
var (
	// ErrBadParams indicates a Params value outside the recognized
	// configuration surface (unknown metric/frequency, window < 1,
	// minDays < 0, or both per-capita and per-million set).
	ErrBadParams = errors.New("explorer: invalid query parameters")

	// ErrNoPopulation indicates a population-scaled column was requested
	// without any population factors to derive it from.
	ErrNoPopulation = errors.New("explorer: population data required for scaling")
)

// Params is the query-parameter surface selecting which derived columns to
// build. The zero value means "raw": cumulative frequency, absolute counts,
// unsmoothed, unaligned. The core reads Params and never mutates it.
type Params struct {
	Metric          colspec.Metric    // cases, deaths, or tests
	Frequency       colspec.Frequency // cumulative (default) or daily
	PerCapita       bool              // scale by 1/population
	PerMillion      bool              // scale by 1e6/population
	Aligned         bool              // re-index to days since Threshold
	SmoothingWindow int               // rolling window; ≤ 1 means unsmoothed
	Threshold       float64           // alignment threshold
	MinDays         int               // minimum post-threshold samples
}

// DefaultParams returns the raw configuration: cumulative case counts,
// absolute, unsmoothed, unaligned.
func DefaultParams() Params {
	return Params{
		Metric:          colspec.MetricCases,
		Frequency:       colspec.FreqCumulative,
		SmoothingWindow: 1,
	}
}

// sourceSlugs maps (metric, frequency) to the raw input column carrying it.
var sourceSlugs = map[colspec.Metric]map[colspec.Frequency]string{
	colspec.MetricCases: {
		colspec.FreqCumulative: ingest.ColTotalCases,
		colspec.FreqDaily:      ingest.ColNewCases,
	},
	colspec.MetricDeaths: {
		colspec.FreqCumulative: ingest.ColTotalDeaths,
		colspec.FreqDaily:      ingest.ColNewDeaths,
	},
	colspec.MetricTests: {
		colspec.FreqCumulative: ingest.ColTotalTests,
		colspec.FreqDaily:      ingest.ColNewTests,
	},
}

// Explorer materializes derived columns and remembers every minted Spec, so
// repeated requests with identical parameters reuse the cached identifiers
// instead of recomputing columns.
type Explorer struct {
	specs map[string]colspec.Spec
}

// New returns an Explorer with an empty spec registry.
func New() *Explorer {
	return &Explorer{specs: make(map[string]colspec.Spec)}
}

// Materialize builds the column chain p requests on t and returns the specs
// of the derived columns, in derivation order. pops maps entity code to
// population and is consulted only when a scaled column is requested.
//
// A fully raw request (absolute, unsmoothed, unaligned) derives nothing and
// returns an empty slice: the raw source column already carries the data.
//
// Idempotency: columns whose slug is already registered on the Table are
// skipped, so calling Materialize twice with the same Params neither
// duplicates slugs nor recomputes cells, and returns identical specs.
//
// Errors:
//   - ErrBadParams    — unrecognized metric/frequency, SmoothingWindow < 1,
//     MinDays < 0, or PerCapita and PerMillion both set.
//   - ErrNoPopulation — scaling requested with empty pops.
//   - table errors    — a missing raw source column surfaces as
//     *table.MissingColumnError from the first derivation.
func (e *Explorer) Materialize(t *table.Table, p Params, pops map[string]float64) ([]colspec.Spec, error) {
	p = normalize(p)
	if err := validate(p); err != nil {
		return nil, err
	}

	source := sourceSlugs[p.Metric][p.Frequency]
	scale := scaleMode(p)
	smoothing := p.SmoothingWindow

	var specs []colspec.Spec

	// Stage 1: population scaling.
	if scale != colspec.ScaleAbsolute {
		if len(pops) == 0 {
			return nil, fmt.Errorf("Materialize: %v scaling: %w", scale, ErrNoPopulation)
		}
		spec := colspec.Build(p.Metric, p.Frequency, scale, 1, false, 0, 0)
		d := table.Scale{Source: source, Factors: factors(scale, pops)}
		if err := e.ensure(t, spec, d); err != nil {
			return nil, err
		}
		specs = append(specs, spec)
		source = spec.Slug
	}

	// Stage 2: rolling smoothing.
	if smoothing > 1 {
		spec := colspec.Build(p.Metric, p.Frequency, scale, smoothing, false, 0, 0)
		d := table.Rolling{Source: source, Window: smoothing}
		if err := e.ensure(t, spec, d); err != nil {
			return nil, err
		}
		specs = append(specs, spec)
		source = spec.Slug
	}

	// Stage 3: threshold alignment.
	if p.Aligned {
		spec := colspec.Build(p.Metric, p.Frequency, scale, smoothing, true, p.Threshold, p.MinDays)
		d := table.DaysSince{Source: source, Threshold: p.Threshold, MinDays: p.MinDays}
		if err := e.ensure(t, spec, d); err != nil {
			return nil, err
		}
		specs = append(specs, spec)
	}

	return specs, nil
}

// Spec returns the registered spec for a slug, if any column by that slug
// has been materialized through this Explorer.
func (e *Explorer) Spec(slug string) (colspec.Spec, bool) {
	s, ok := e.specs[slug]

	return s, ok
}

// ensure registers spec and adds its column unless the slug already exists.
// A registered slug carrying a different derivation tuple is an invariant
// violation (colspec's encoding is injective) and panics.
func (e *Explorer) ensure(t *table.Table, spec colspec.Spec, d table.Derivation) error {
	if prev, ok := e.specs[spec.Slug]; ok && prev != spec {
		panic(fmt.Sprintf("explorer: slug %q minted for two distinct derivation tuples", spec.Slug))
	}
	e.specs[spec.Slug] = spec

	if t.HasColumn(spec.Slug) {
		return nil
	}

	return t.AddColumn(spec.Slug, d)
}

// normalize fills unset options with the documented defaults: raw
// cumulative counts, window 1, no alignment.
func normalize(p Params) Params {
	if p.Metric == "" {
		p.Metric = colspec.MetricCases
	}
	if p.Frequency == "" {
		p.Frequency = colspec.FreqCumulative
	}
	if p.SmoothingWindow == 0 {
		p.SmoothingWindow = 1
	}

	return p
}

// validate checks normalized Params against the recognized surface.
func validate(p Params) error {
	if _, ok := sourceSlugs[p.Metric]; !ok {
		return fmt.Errorf("Materialize: unknown metric %q: %w", p.Metric, ErrBadParams)
	}
	if p.Frequency != colspec.FreqCumulative && p.Frequency != colspec.FreqDaily {
		return fmt.Errorf("Materialize: unknown frequency %q: %w", p.Frequency, ErrBadParams)
	}
	if p.SmoothingWindow < 1 {
		return fmt.Errorf("Materialize: smoothing window %d: %w", p.SmoothingWindow, ErrBadParams)
	}
	if p.MinDays < 0 {
		return fmt.Errorf("Materialize: minDays %d: %w", p.MinDays, ErrBadParams)
	}
	if p.PerCapita && p.PerMillion {
		return fmt.Errorf("Materialize: perCapita and perMillion are mutually exclusive: %w", ErrBadParams)
	}

	return nil
}

// scaleMode maps the scaling flags to a colspec.ScaleMode. PerCapita keeps
// the upstream explorer's convention: test counts are shown per thousand
// people, case and death counts per person.
func scaleMode(p Params) colspec.ScaleMode {
	switch {
	case p.PerMillion:
		return colspec.ScalePerMillion
	case p.PerCapita && p.Metric == colspec.MetricTests:
		return colspec.ScalePerThousand
	case p.PerCapita:
		return colspec.ScalePerCapita
	default:
		return colspec.ScaleAbsolute
	}
}

// factors derives the per-entity multipliers for a scaling mode from
// population counts. Non-positive populations are dropped, which leaves the
// entity's scaled cells Absent rather than infinite.
func factors(scale colspec.ScaleMode, pops map[string]float64) map[string]float64 {
	numerator := 1.0
	switch scale {
	case colspec.ScalePerThousand:
		numerator = 1e3
	case colspec.ScalePerMillion:
		numerator = 1e6
	}

	out := make(map[string]float64, len(pops))
	for code, pop := range pops {
		if pop <= 0 {
			continue
		}
		out[code] = numerator / pop
	}

	return out
}
