package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	// Topology hooks
	top := NoopTopologyHooks{}
	top.OnReconcileStart(ctx, 4)
	top.OnReconcileComplete(ctx, 5, 4, time.Millisecond)
	top.OnRenderStart(ctx, []string{"svg"})
	top.OnRenderComplete(ctx, []string{"svg"}, time.Second, nil)

	// Cache hooks
	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "artifact")
	c.OnCacheMiss(ctx, "artifact")
	c.OnCacheSet(ctx, "artifact", 1024)

	// Store hooks
	s := NoopStoreHooks{}
	s.OnPut(ctx, "solar-a")
	s.OnDelete(ctx, "solar-a")
	s.OnSnapshot(ctx, 3, time.Millisecond, nil)
}

func TestGlobalHooksRegistry(t *testing.T) {
	// Reset to known state
	Reset()

	// Verify defaults are noop
	if _, ok := Topology().(NoopTopologyHooks); !ok {
		t.Error("Topology() should return NoopTopologyHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := Store().(NoopStoreHooks); !ok {
		t.Error("Store() should return NoopStoreHooks by default")
	}

	// Set custom hooks
	customTopology := &testTopologyHooks{}
	SetTopologyHooks(customTopology)
	if Topology() != customTopology {
		t.Error("SetTopologyHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	customStore := &testStoreHooks{}
	SetStoreHooks(customStore)
	if Store() != customStore {
		t.Error("SetStoreHooks should set custom hooks")
	}

	// Reset and verify
	Reset()
	if _, ok := Topology().(NoopTopologyHooks); !ok {
		t.Error("Reset() should restore NoopTopologyHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testTopologyHooks{}
	SetTopologyHooks(custom)

	// Setting nil should be ignored
	SetTopologyHooks(nil)

	if Topology() != custom {
		t.Error("SetTopologyHooks(nil) should be ignored")
	}

	Reset()
}

// Test implementations
type testTopologyHooks struct{ NoopTopologyHooks }
type testCacheHooks struct{ NoopCacheHooks }
type testStoreHooks struct{ NoopStoreHooks }
