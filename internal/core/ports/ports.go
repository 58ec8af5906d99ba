package ports

// AnalysisObserver receives diagnostic observations from the analyzers.
// Implementations must be safe for concurrent use.
type AnalysisObserver interface {
	ObserveAnalysis(stage string, attrs ...any)
}

type NopObserver struct{}

func (NopObserver) ObserveAnalysis(string, ...any) {}

// MultiObserver fans observations out in order.
type MultiObserver []AnalysisObserver

func (m MultiObserver) ObserveAnalysis(stage string, attrs ...any) {
	for _, o := range m {
		if o != nil {
			o.ObserveAnalysis(stage, attrs...)
		}
	}
}

// ObserverOrNop replaces a nil observer with a no-op one.
func ObserverOrNop(o AnalysisObserver) AnalysisObserver {
	if o == nil {
		return NopObserver{}
	}
	return o
}
