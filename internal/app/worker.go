package app

import (
	"context"
	"fmt"

	"trade-reconciler/internal/classifier"
	"trade-reconciler/internal/config"
	"trade-reconciler/internal/engine"
)

const (
	reconcileWorkers  = 4
	reconcileQueueCap = 64
)

// buildReconciler compiles the configured line patterns and assembles the
// shared reconciliation engine. Runs are independent, so one engine serves
// every request.
func (a *App) buildReconciler() error {
	rules := classifier.Rules{
		ActionColor: a.Config.ActionColorPattern,
		ActionPlain: a.Config.ActionPlainPattern,
		Page:        a.Config.PagePattern,
		Coordinate:  a.Config.CoordPattern,
		CoordSuffix: a.Config.CoordSuffix,
	}

	reconciler, err := engine.NewReconciler(
		rules,
		config.DefaultCurrencyTable(),
		a.Config.IgnoreList(),
		a.Config.ChunkLimit,
		a.Logger,
	)
	if err != nil {
		return fmt.Errorf("failed to build reconciler: %w", err)
	}

	a.Reconciler = reconciler
	return nil
}

// startReconcileWorkers starts the pool serving async reconcile requests.
func (a *App) startReconcileWorkers(ctx context.Context) {
	a.Pool = engine.NewWorkerPool(reconcileWorkers, reconcileQueueCap, a.Reconciler, a.JS, a.Logger)
	a.Pool.Start(ctx)
}
