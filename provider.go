package arte_archiver

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/hashicorp/go-multierror"

	"github.com/videotools/arte-archiver/generic"
)

var (
	ErrDuplicateProvider = errors.New("duplicate provider name")
	ErrInvalidProvider   = errors.New("invalid provider")
	ErrNoMatch           = errors.New("no provider matched the input")
	ErrUnknownProvider   = errors.New("unknown provider")
)

var (
	PriorityHighest int16 = math.MinInt16
	PriorityDefault int16 = 0
	PriorityLowest  int16 = math.MaxInt16
)

// MatchFunc is the suitability predicate of a strategy: it returns a Source
// when (and only when) the URL structurally belongs to the strategy, and an
// error describing why it does not otherwise. It must not fetch anything.
type MatchFunc = func(string) (Source, error)

// A Provider binds a strategy's suitability predicate to its resolver. The
// registry evaluates providers as an explicit ordered list of (predicate,
// resolver) pairs, most specific first.
type Provider struct {
	Name  string
	Match MatchFunc
	// Priority of the matcher, lower (including negative) means matching earlier.
	Priority int16
}

func (p Provider) WithPriority(priority int16) Provider {
	p.Priority = priority
	return p
}

// A Match is the result of a Provider successfully claiming a URL.
type Match struct {
	ProviderName string
	Source       Source
}

// A Registry is an ordered collection of Provider instances used to classify
// URLs. Providers are tried in ascending priority order; the first one whose
// Match succeeds wins, so exclusivity of the registered predicates is what
// keeps classification single-valued.
type Registry struct {
	providers   []*Provider
	providerMap map[string]*Provider
}

// Add registers a Provider. Provider.Name and Provider.Match must be set, and
// Provider.Name must be unique within the Registry.
func (r *Registry) Add(p Provider) error {
	if r.providerMap == nil {
		r.providerMap = make(map[string]*Provider)
	}
	if p.Name == "" || p.Match == nil {
		return ErrInvalidProvider
	}
	if _, ok := r.providerMap[p.Name]; ok {
		return ErrDuplicateProvider
	}
	r.providerMap[p.Name] = &p
	r.providers = append(r.providers, r.providerMap[p.Name])
	r.sortByPriority()
	return nil
}

// MustAdd wraps Add but panics if there is an error.
func (r *Registry) MustAdd(p Provider) {
	generic.Unwrap_(r.Add(p))
}

// List returns the names of registered providers in priority order.
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.providers))
	for _, p := range r.providers {
		names = append(names, p.Name)
	}
	return names
}

// Match a URL against each Provider in priority order, or return the
// accumulated per-provider reasons wrapped around ErrNoMatch.
func (r *Registry) Match(s string) (*Match, error) {
	var reasons error
	for _, p := range r.providers {
		if source, err := p.Match(s); source != nil && err == nil {
			return &Match{ProviderName: p.Name, Source: source}, nil
		} else {
			reasons = multierror.Append(reasons, multierror.Prefix(err, fmt.Sprintf("[%v]", p.Name)))
		}
	}
	return nil, multierror.Append(ErrNoMatch, reasons)
}

// MatchWith will attempt to match a URL against a specific provider only.
func (r *Registry) MatchWith(name string, s string) (*Match, error) {
	p, ok := r.providerMap[name]
	if !ok {
		return nil, ErrUnknownProvider
	}
	if source, err := p.Match(s); source != nil && err == nil {
		return &Match{ProviderName: p.Name, Source: source}, nil
	}
	return nil, ErrNoMatch
}

// Classify returns the strategy of the provider that claims the URL.
func (r *Registry) Classify(s string) (Strategy, error) {
	match, err := r.Match(s)
	if err != nil {
		return "", err
	}
	return match.Source.Strategy(), nil
}

func (r *Registry) sortByPriority() {
	sort.SliceStable(r.providers, func(i, j int) bool {
		return r.providers[i].Priority < r.providers[j].Priority
	})
}

var DefaultRegistry Registry
