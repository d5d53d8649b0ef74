package chunker

import "github.com/dgallion1/docslice/internal/docmodel"

// Strategy names one of the segmentation algorithms.
type Strategy string

const (
	StrategyAuto       Strategy = "auto"
	StrategyStructural Strategy = "structural"
	StrategyTableAware Strategy = "table_aware"
	StrategyPageAware  Strategy = "page_aware"
)

// ParseStrategy validates a caller-supplied strategy name. An empty name
// means auto.
func ParseStrategy(name string) (Strategy, error) {
	switch Strategy(name) {
	case "", StrategyAuto:
		return StrategyAuto, nil
	case StrategyStructural:
		return StrategyStructural, nil
	case StrategyTableAware:
		return StrategyTableAware, nil
	case StrategyPageAware:
		return StrategyPageAware, nil
	}
	return "", &StrategyError{Name: name}
}

// SelectStrategy picks a segmentation strategy from document signals.
// Table isolation is the worst thing to get wrong, so tables win; page
// fidelity beats plain structure when page data exists.
func SelectStrategy(doc *docmodel.Document) Strategy {
	switch {
	case doc.TableCount > 0:
		return StrategyTableAware
	case doc.HasPageInfo:
		return StrategyPageAware
	default:
		return StrategyStructural
	}
}

// Resolve turns an override into the strategy that will actually run.
// A page_aware request (explicit or auto) against a document without page
// data falls back to structural; fellBack reports that substitution so
// callers can surface it without the call failing.
func Resolve(doc *docmodel.Document, override Strategy) (effective Strategy, fellBack bool, err error) {
	strat := override
	if strat == "" || strat == StrategyAuto {
		strat = SelectStrategy(doc)
	} else if _, err := ParseStrategy(string(strat)); err != nil {
		return "", false, err
	}
	if strat == StrategyPageAware && !doc.HasPageInfo {
		return StrategyStructural, true, nil
	}
	return strat, false, nil
}

// segmenter is the closed set of segmentation algorithms behind one
// interface. Each returns raw segments in document reading order.
type segmenter interface {
	segment(doc *docmodel.Document, cfg Config) []*segment
}

func segmenterFor(strat Strategy) segmenter {
	switch strat {
	case StrategyTableAware:
		return tableAwareChunker{}
	case StrategyPageAware:
		return pageAwareChunker{}
	default:
		return structuralChunker{}
	}
}
