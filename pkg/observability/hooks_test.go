package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	r := NoopReportHooks{}
	r.OnLoadStart(ctx, "json")
	r.OnLoadComplete(ctx, "json", 100, time.Second, nil)
	r.OnRenderStart(ctx, "report")
	r.OnRenderComplete(ctx, "report", 2048, time.Second, nil)

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "report")
	c.OnCacheMiss(ctx, "dot")
	c.OnCacheSet(ctx, "report", 1024)

	h := NoopHTTPHooks{}
	h.OnRequest(ctx, "POST", "/v1/report", "req-1")
	h.OnResponse(ctx, "POST", "/v1/report", "req-1", 200, time.Second)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()

	if _, ok := Report().(NoopReportHooks); !ok {
		t.Error("Report() should return NoopReportHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("HTTP() should return NoopHTTPHooks by default")
	}

	customReport := &testReportHooks{}
	SetReportHooks(customReport)
	if Report() != customReport {
		t.Error("SetReportHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	customHTTP := &testHTTPHooks{}
	SetHTTPHooks(customHTTP)
	if HTTP() != customHTTP {
		t.Error("SetHTTPHooks should set custom hooks")
	}

	Reset()
	if _, ok := Report().(NoopReportHooks); !ok {
		t.Error("Reset() should restore NoopReportHooks")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("Reset() should restore NoopHTTPHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()
	defer Reset()

	custom := &testReportHooks{}
	SetReportHooks(custom)
	SetReportHooks(nil)

	if Report() != custom {
		t.Error("SetReportHooks(nil) should be ignored")
	}
}

type testReportHooks struct{ NoopReportHooks }
type testCacheHooks struct{ NoopCacheHooks }
type testHTTPHooks struct{ NoopHTTPHooks }
