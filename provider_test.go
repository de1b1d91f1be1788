package arte_archiver

import (
	"context"
	"fmt"
	"strings"
	"testing"

	assert_ "github.com/stretchr/testify/assert"
)

type stubSource struct {
	url      string
	strategy Strategy
}

func (s *stubSource) URL() string        { return s.url }
func (s *stubSource) Strategy() Strategy { return s.strategy }
func (s *stubSource) Recon(context.Context) (Resolved, error) {
	return nil, fmt.Errorf("stub")
}

func prefixMatcher(prefix string, strategy Strategy) MatchFunc {
	return func(s string) (Source, error) {
		if !strings.HasPrefix(s, prefix) {
			return nil, fmt.Errorf("no %s prefix", prefix)
		}
		return &stubSource{url: s, strategy: strategy}, nil
	}
}

func TestRegistry_Add(t *testing.T) {
	assert := assert_.New(t)

	var r Registry
	assert.ErrorIs(r.Add(Provider{Name: "", Match: prefixMatcher("a", StrategyVideo)}), ErrInvalidProvider)
	assert.ErrorIs(r.Add(Provider{Name: "a"}), ErrInvalidProvider)
	assert.NoError(r.Add(Provider{Name: "a", Match: prefixMatcher("a", StrategyVideo)}))
	assert.ErrorIs(r.Add(Provider{Name: "a", Match: prefixMatcher("a", StrategyVideo)}), ErrDuplicateProvider)
}

func TestRegistry_PriorityOrder(t *testing.T) {
	assert := assert_.New(t)

	var r Registry
	r.MustAdd(Provider{Name: "catchall", Match: prefixMatcher("", StrategyCategory)}.WithPriority(PriorityLowest))
	r.MustAdd(Provider{Name: "specific", Match: prefixMatcher("video:", StrategyVideo)})
	assert.Equal([]string{"specific", "catchall"}, r.List())

	match, err := r.Match("video:one")
	assert.NoError(err)
	assert.Equal("specific", match.ProviderName)

	match, err = r.Match("anything else")
	assert.NoError(err)
	assert.Equal("catchall", match.ProviderName)
}

func TestRegistry_NoMatch(t *testing.T) {
	assert := assert_.New(t)

	var r Registry
	r.MustAdd(Provider{Name: "a", Match: prefixMatcher("a", StrategyVideo)})
	r.MustAdd(Provider{Name: "b", Match: prefixMatcher("b", StrategyPlaylist)})

	_, err := r.Match("c")
	assert.ErrorIs(err, ErrNoMatch)
	// Each provider's reason is reported.
	assert.Contains(err.Error(), "[a]")
	assert.Contains(err.Error(), "[b]")
}

func TestRegistry_MatchWith(t *testing.T) {
	assert := assert_.New(t)

	var r Registry
	r.MustAdd(Provider{Name: "a", Match: prefixMatcher("a", StrategyVideo)})

	match, err := r.MatchWith("a", "abc")
	assert.NoError(err)
	assert.Equal(StrategyVideo, match.Source.Strategy())

	_, err = r.MatchWith("a", "xyz")
	assert.ErrorIs(err, ErrNoMatch)
	_, err = r.MatchWith("nope", "abc")
	assert.ErrorIs(err, ErrUnknownProvider)
}

func TestRegistry_Classify(t *testing.T) {
	assert := assert_.New(t)

	var r Registry
	r.MustAdd(Provider{Name: "a", Match: prefixMatcher("a", StrategyPlaylist)})

	strategy, err := r.Classify("abc")
	assert.NoError(err)
	assert.Equal(StrategyPlaylist, strategy)

	_, err = r.Classify("xyz")
	assert.ErrorIs(err, ErrNoMatch)
}
