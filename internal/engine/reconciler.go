package engine

import (
	"fmt"

	"go.uber.org/zap"

	"trade-reconciler/internal/classifier"
	"trade-reconciler/internal/infrastructure"
	"trade-reconciler/internal/ledger"
	"trade-reconciler/internal/mistrade"
	"trade-reconciler/internal/model"
	"trade-reconciler/internal/pricing"
	"trade-reconciler/internal/report"
	"trade-reconciler/internal/segmenter"
)

// NoSessionsMessage is the terminal report for a transcript without a
// single coordinate marker.
const NoSessionsMessage = "no trade sessions found"

// Result is the outcome of one reconciliation run.
type Result struct {
	Chunks     []string              `json:"chunks"`
	Ledger     model.PlayerLedger    `json:"ledger,omitempty"`
	Mistrades  model.MistradeResult  `json:"mistrades,omitempty"`
	Warnings   []string              `json:"warnings,omitempty"`
	NoSessions bool                  `json:"no_sessions,omitempty"`
}

// Reconciler runs the full pipeline: segment the transcript into
// per-coordinate sessions, fold them into a player ledger, classify
// mistrades against the pricing parameters and chunk the rendered report.
// One Reconciler may serve concurrent runs: every run builds its own
// segmenter and ledger, and the compiled classifier is read-only.
type Reconciler struct {
	classifier *classifier.Classifier
	table      *model.CurrencyTable
	ignore     map[string]struct{}
	chunkLimit int
	logger     *zap.Logger
}

func NewReconciler(rules classifier.Rules, table *model.CurrencyTable, ignore map[string]struct{}, chunkLimit int, logger *zap.Logger) (*Reconciler, error) {
	c, err := classifier.New(rules)
	if err != nil {
		return nil, fmt.Errorf("failed to compile line patterns: %w", err)
	}
	return &Reconciler{
		classifier: c,
		table:      table,
		ignore:     ignore,
		chunkLimit: chunkLimit,
		logger:     logger,
	}, nil
}

// Run reconciles one complete transcript against one parameter string.
// A malformed parameter string downgrades the run to raw deltas with a
// warning; an empty session set is terminal.
func (r *Reconciler) Run(lines []string, paramText string) Result {
	sessions := segmenter.New(r.classifier).Segment(lines)
	if len(sessions) == 0 {
		r.logger.Info("no trade sessions in transcript", zap.Int("lines", len(lines)))
		infrastructure.ReconcileRuns.WithLabelValues("no_sessions").Inc()
		return Result{
			Chunks:     []string{NoSessionsMessage},
			NoSessions: true,
		}
	}

	rep := report.Report{Sessions: sessions}

	params, err := pricing.Parse(paramText, r.table)
	ignore := map[string]struct{}{}
	itemFilter := ""
	if err != nil {
		// Downgraded run: raw deltas only, no mistrade classification.
		rep.Warnings = append(rep.Warnings, err.Error())
		infrastructure.ParamParseFailures.Inc()
	} else {
		rep.Params = &params
		itemFilter = params.ItemFilter
		if params.IgnoreOwner {
			ignore = r.ignore
		}
	}

	// Currency movement covers every non-ignored player; the item filter
	// only narrows the per-player listing and mistrade classification.
	full := ledger.New(r.classifier).Aggregate(sessions, ignore)
	rep.Currency = ledger.CurrencyMovement(full, r.table)
	rep.Ledger = ledger.FilterByItem(full, itemFilter)

	if rep.Params != nil {
		rep.Mistrades = mistrade.New(r.table).Classify(rep.Ledger, params)
	}

	chunks := report.Chunk(report.Render(rep), r.chunkLimit)
	infrastructure.ReportChunks.Observe(float64(len(chunks)))

	outcome := "ok"
	if err != nil {
		outcome = "raw_deltas"
	}
	infrastructure.ReconcileRuns.WithLabelValues(outcome).Inc()
	r.logger.Info("reconciliation finished",
		zap.Int("sessions", len(sessions)),
		zap.Int("players", len(rep.Ledger)),
		zap.Int("mistrades", len(rep.Mistrades)),
		zap.Int("chunks", len(chunks)),
	)

	return Result{
		Chunks:    chunks,
		Ledger:    rep.Ledger,
		Mistrades: rep.Mistrades,
		Warnings:  rep.Warnings,
	}
}
