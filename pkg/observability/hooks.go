// Package observability provides hooks for metrics, tracing, and logging.
//
// The label pipeline emits events at each stage without depending on a
// specific backend. Consumers register hooks at startup; by default every
// event goes to a no-op implementation.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetPipelineHooks(&myPipelineHooks{})
//	    // ... run application
//	}
//
// The pipeline calls hooks to emit events:
//
//	observability.Pipeline().OnPageSealed(ctx, page.Index, page.Len())
package observability

import (
	"context"
	"sync"
	"time"
)

// PipelineHooks receives events from the label pipeline.
type PipelineHooks interface {
	// OnPlan records the computed grid.
	OnPlan(ctx context.Context, columns, rows int, scale float64)

	// OnGenerate records code generation.
	OnGenerate(ctx context.Context, count int, duration time.Duration, err error)

	// OnPageSealed records a full (or final) page handed to the renderer.
	OnPageSealed(ctx context.Context, index, labels int)

	// OnExport records the output write pass.
	OnExport(ctx context.Context, files int, duration time.Duration, err error)
}

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnPlan(context.Context, int, int, float64)             {}
func (NoopPipelineHooks) OnGenerate(context.Context, int, time.Duration, error) {}
func (NoopPipelineHooks) OnPageSealed(context.Context, int, int)                {}
func (NoopPipelineHooks) OnExport(context.Context, int, time.Duration, error)   {}

var (
	pipelineHooks PipelineHooks = NoopPipelineHooks{}
	hooksMu       sync.RWMutex
)

// SetPipelineHooks registers custom pipeline hooks.
// This should be called once at application startup before any run.
func SetPipelineHooks(h PipelineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		pipelineHooks = h
	}
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return pipelineHooks
}

// Reset restores the no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	pipelineHooks = NoopPipelineHooks{}
}
