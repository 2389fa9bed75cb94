package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	p := NoopPipelineHooks{}
	p.OnPlan(ctx, 5, 6, 1.5)
	p.OnGenerate(ctx, 10, time.Millisecond, nil)
	p.OnPageSealed(ctx, 0, 30)
	p.OnExport(ctx, 2, time.Second, nil)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()

	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Pipeline() should return NoopPipelineHooks by default")
	}

	custom := &testPipelineHooks{}
	SetPipelineHooks(custom)
	if Pipeline() != custom {
		t.Error("SetPipelineHooks should set custom hooks")
	}

	Reset()
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Reset() should restore NoopPipelineHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testPipelineHooks{}
	SetPipelineHooks(custom)

	// Setting nil should be ignored
	SetPipelineHooks(nil)

	if Pipeline() != custom {
		t.Error("SetPipelineHooks(nil) should be ignored")
	}

	Reset()
}

func TestCustomHooksReceiveEvents(t *testing.T) {
	Reset()
	defer Reset()

	custom := &testPipelineHooks{}
	SetPipelineHooks(custom)

	ctx := context.Background()
	Pipeline().OnPageSealed(ctx, 0, 4)
	Pipeline().OnPageSealed(ctx, 1, 1)

	if custom.sealed != 5 {
		t.Errorf("sealed labels = %d, want 5", custom.sealed)
	}
}

// Test implementation
type testPipelineHooks struct {
	NoopPipelineHooks
	sealed int
}

func (h *testPipelineHooks) OnPageSealed(_ context.Context, _, labels int) {
	h.sealed += labels
}
