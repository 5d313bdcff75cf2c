package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	analysesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "nutrimatch",
		Subsystem: "analysis",
		Name:      "requests_total",
		Help:      "Descriptions analyzed, by item type, outcome and source.",
	}, []string{"item_type", "outcome", "source"})

	analysisConfidence = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "nutrimatch",
		Subsystem: "analysis",
		Name:      "confidence",
		Help:      "Confidence of recognized descriptions.",
		Buckets:   []float64{10, 20, 30, 40, 50, 60, 70, 80, 90},
	}, []string{"item_type"})

	recommendationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "nutrimatch",
		Subsystem: "recommendation",
		Name:      "requests_total",
		Help:      "Recommendation texts generated, by kind and whether any item qualified.",
	}, []string{"kind", "result"})

	diaryEntriesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "nutrimatch",
		Subsystem: "diary",
		Name:      "entries_logged_total",
		Help:      "Estimates accepted into user diaries, by item type.",
	}, []string{"item_type"})
)

func init() {
	prometheus.MustRegister(analysesTotal, analysisConfidence, recommendationsTotal, diaryEntriesTotal)
}

// RecordAnalysis counts one analysis. Confidence is observed for recognized items only.
func RecordAnalysis(itemType, outcome, source string, confidence int) {
	analysesTotal.WithLabelValues(itemType, outcome, source).Inc()
	if outcome == OutcomeRecognized {
		analysisConfidence.WithLabelValues(itemType).Observe(float64(confidence))
	}
}

// RecordRecommendation counts one generated recommendation text
func RecordRecommendation(kind string, suggestions int) {
	result := "suggested"
	if suggestions == 0 {
		result = "fallback"
	}
	recommendationsTotal.WithLabelValues(kind, result).Inc()
}

// RecordDiaryEntry counts one accepted estimate
func RecordDiaryEntry(itemType string) {
	diaryEntriesTotal.WithLabelValues(itemType).Inc()
}

// Analysis outcomes
const (
	OutcomeRecognized    = "recognized"
	OutcomeNotRecognized = "not_recognized"
	OutcomeFailed        = "failed"
)

// Analysis sources
const (
	SourceEstimator = "estimator"
	SourceCache     = "cache"
)
