package rank

import (
	"fmt"
	"sort"

	"github.com/chriscorrea/termsift/internal/classify"
	"github.com/chriscorrea/termsift/internal/termerr"
)

// Method names.
const (
	MethodFLR   = "flr"
	MethodHITS  = "hits"
	MethodTFIDF = "tfidf"
)

// Options configure rankers created by New.
type Options struct {
	Classifiers   *classify.Set
	HITSThreshold float64
	HITSMaxLoop   int
	Corpus        *Corpus
}

var registry = map[string]func(Options) Ranker{
	MethodFLR: func(o Options) Ranker {
		return NewFLR(o.Classifiers)
	},
	MethodHITS: func(o Options) Ranker {
		return NewHITS(o.Classifiers, o.HITSThreshold, o.HITSMaxLoop)
	},
	MethodTFIDF: func(o Options) Ranker {
		return NewTFIDF(o.Corpus)
	},
}

// Methods returns the registered method names in sorted order.
func Methods() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// New creates the ranker registered under name.
func New(name string, opts Options) (Ranker, error) {
	build, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("ranking method %q (available: %v): %w", name, Methods(), termerr.ErrUnknownMethod)
	}
	if opts.Classifiers == nil {
		opts.Classifiers = classify.Default()
	}
	return build(opts), nil
}
