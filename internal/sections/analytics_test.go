package sections

import (
	"testing"

	"github.com/ziadkadry99/codedash/internal/resource"
)

func TestDomainGrouping(t *testing.T) {
	a := NewAnalytics()
	a.Refresh([]resource.Item{
		{ID: "f1", Path: "billing/invoice.go", Domain: "payments"},
		{ID: "f2", Path: "billing/refund.go", Domain: "payments"},
		{ID: "f3", Path: "api/server.go"},
		{ID: "f4", Path: "api/routes.go"},
		{ID: "f5", Path: "api/middleware.go"},
		{ID: "f6", Path: "main.go"},
	})

	domains := a.Domains()
	if len(domains) != 3 {
		t.Fatalf("got %d domains, want 3: %+v", len(domains), domains)
	}

	// Sorted by file count, descending. The analyzer's domain tag wins
	// over the path; untagged files group by top-level directory.
	if domains[0].Domain != "api" || domains[0].Files != 3 {
		t.Errorf("domains[0] = %+v, want api/3", domains[0])
	}
	if domains[1].Domain != "payments" || domains[1].Files != 2 {
		t.Errorf("domains[1] = %+v, want payments/2", domains[1])
	}
	if domains[2].Domain != "(root)" || domains[2].Files != 1 {
		t.Errorf("domains[2] = %+v, want (root)/1", domains[2])
	}
}

func TestRefreshEmpty(t *testing.T) {
	a := NewAnalytics()
	a.Refresh(nil)

	if got := a.Complexity(); got.Total != 0 || got.Average != 0 {
		t.Errorf("summary = %+v, want zeroes", got)
	}
	if got := a.Domains(); len(got) != 0 {
		t.Errorf("domains = %+v, want empty", got)
	}
}
