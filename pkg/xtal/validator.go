package xtal

import (
	"fmt"
	"math"
	"sync"

	"go.uber.org/atomic"

	"github.com/bft-labs/xtalcheck/pkg/log"
)

// FailureHandler is called by ValidateOrExplain after a value is rejected.
type FailureHandler func(err *UnknownFrequencyError)

// Option configures a Validator.
type Option func(*Validator)

// WithLogger sets the logger used to report rejected values.
func WithLogger(logger log.Logger) Option {
	return func(v *Validator) {
		if logger != nil {
			v.logger = logger
		}
	}
}

// WithMetrics records validation outcomes in m.
func WithMetrics(m *Metrics) Option {
	return func(v *Validator) {
		v.metrics = m
	}
}

// WithFailureHandler sets the policy applied when ValidateOrExplain rejects a value.
// The handler runs after the error is built and before it is returned.
func WithFailureHandler(h FailureHandler) Option {
	return func(v *Validator) {
		v.onFailure = h
	}
}

// Stats is a snapshot of validator activity.
type Stats struct {
	Validations uint64
	CacheHits   uint64
	Searches    uint64
	Failures    uint64
}

// Validator checks frequencies against a Catalog.
//
// The last matched value is cached so repeated checks of the same clock skip
// the search. The brackets of the last failure are kept for diagnostics.
type Validator struct {
	catalog   Catalog
	logger    log.Logger
	metrics   *Metrics
	onFailure FailureHandler

	mu          sync.Mutex
	lastCorrect float64
	hasLast     bool
	errLow      Bracket
	errHigh     Bracket

	validations atomic.Uint64
	cacheHits   atomic.Uint64
	searches    atomic.Uint64
	failures    atomic.Uint64
}

// New creates a Validator over catalog.
func New(catalog Catalog, opts ...Option) *Validator {
	if catalog.Len() == 0 {
		panic(ErrEmptyCatalog)
	}
	v := &Validator{
		catalog: catalog,
		logger:  log.NewNoopLogger(),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Catalog returns the catalog the validator searches.
func (v *Validator) Catalog() Catalog {
	return v.catalog
}

// Validate reports whether hz matches a catalog entry.
// On a miss the brackets returned by Brackets are replaced; on a match
// they are left alone. NaN, infinite and non-positive values never match
// and leave both brackets absent.
func (v *Validator) Validate(hz float64) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.validateLocked(hz)
}

// Brackets returns the entries around the value rejected by the most
// recent failed Validate. The result is meaningless before any failure.
func (v *Validator) Brackets() (low, high Bracket) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.errLow, v.errHigh
}

// Check validates hz and returns the failure brackets from the same call.
// Both brackets are zero when ok is true.
func (v *Validator) Check(hz float64) (low, high Bracket, ok bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.validateLocked(hz) {
		return Bracket{}, Bracket{}, true
	}
	return v.errLow, v.errHigh, false
}

// ValidateOrExplain returns nil when hz is a known frequency, otherwise an
// *UnknownFrequencyError carrying the brackets and context. NaN, infinite
// and non-positive values are rejected with ErrInvalidFrequency instead and
// do not reach the failure handler.
func (v *Validator) ValidateOrExplain(hz float64, context string) error {
	if !plausible(hz) {
		v.logger.Warn("invalid crystal value",
			log.String("value", FormatHz(hz)),
			log.String("context", context),
		)
		return fmt.Errorf("%w %s: context: %s", ErrInvalidFrequency, FormatHz(hz), context)
	}

	low, high, ok := v.Check(hz)
	if ok {
		return nil
	}

	err := &UnknownFrequencyError{
		Value:   hz,
		Low:     low,
		High:    high,
		Context: context,
	}
	v.logger.Warn("unknown crystal value",
		log.Hz("value", hz),
		log.String("low", low.String()),
		log.String("high", high.String()),
		log.String("context", context),
	)
	if v.onFailure != nil {
		v.onFailure(err)
	}
	return err
}

// Stats returns counters accumulated since the validator was created.
func (v *Validator) Stats() Stats {
	return Stats{
		Validations: v.validations.Load(),
		CacheHits:   v.cacheHits.Load(),
		Searches:    v.searches.Load(),
		Failures:    v.failures.Load(),
	}
}

// plausible reports whether hz can be a crystal frequency at all.
func plausible(hz float64) bool {
	return hz > 0 && !math.IsInf(hz, 1)
}

func (v *Validator) validateLocked(hz float64) bool {
	v.validations.Inc()

	if v.hasLast && math.Float64bits(hz) == math.Float64bits(v.lastCorrect) {
		v.cacheHits.Inc()
		v.metrics.observe(resultCached)
		return true
	}

	if !plausible(hz) {
		v.errLow, v.errHigh = Bracket{}, Bracket{}
		v.failures.Inc()
		v.metrics.observe(resultUnknown)
		return false
	}

	v.searches.Inc()
	v.metrics.search()

	slot, ok := v.catalog.search(hz)
	if ok {
		v.lastCorrect = hz
		v.hasLast = true
		v.metrics.observe(resultMatched)
		return true
	}

	v.errLow, v.errHigh = v.catalog.brackets(hz, slot)
	v.failures.Inc()
	v.metrics.observe(resultUnknown)
	v.logger.Debug("crystal search missed",
		log.Hz("value", hz),
		log.Int("slot", slot),
	)
	return false
}
