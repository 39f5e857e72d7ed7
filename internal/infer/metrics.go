package infer

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// varsCreated counts fresh inference variables by kind
	varsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tyfold_infer_vars_created_total",
		Help: "Total inference variables created by kind",
	}, []string{"kind"}) // "ty", "int", "float", "const" or "region"

	// bindings counts BindTy and BindConst calls by outcome
	bindings = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tyfold_infer_bindings_total",
		Help: "Total variable bindings by result",
	}, []string{"result"})

	// projectionCache counts normalization cache lookups
	projectionCache = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tyfold_infer_projection_cache_total",
		Help: "Total projection cache lookups by result",
	}, []string{"result"}) // "hit" or "miss"

	// projectionsNormalized counts projections handed to the Normalizer
	projectionsNormalized = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tyfold_infer_projections_normalized_total",
		Help: "Total projections passed to the normalizer by result",
	}, []string{"result"}) // "resolved" or "unresolved"
)

const (
	bindOK           = "ok"
	bindAlreadyBound = "already_bound"
	bindKindMismatch = "kind_mismatch"
	bindCyclic       = "cyclic"
)
