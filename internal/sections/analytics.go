package sections

import (
	"sort"
	"strings"
	"sync"

	"github.com/ziadkadry99/codedash/internal/resource"
)

// Complexity band boundaries, in cyclomatic complexity units.
const (
	moderateComplexity = 10.0
	highComplexity     = 20.0
)

// ComplexitySummary buckets the analyzed files by complexity band.
type ComplexitySummary struct {
	Total    int     `json:"total"`
	Low      int     `json:"low"`
	Moderate int     `json:"moderate"`
	High     int     `json:"high"`
	Average  float64 `json:"average"`
}

// DomainCount is the number of files attributed to one domain.
type DomainCount struct {
	Domain string `json:"domain"`
	Files  int    `json:"files"`
}

// Analytics holds the aggregate views backing the complexity and domains
// sections. They are recomputed from the cached files collection every time
// one of those sections is activated.
type Analytics struct {
	mu         sync.RWMutex
	complexity ComplexitySummary
	domains    []DomainCount
}

// NewAnalytics creates empty analytics.
func NewAnalytics() *Analytics {
	return &Analytics{}
}

// Refresh recomputes both aggregates from the given files collection.
func (a *Analytics) Refresh(files []resource.Item) {
	summary := ComplexitySummary{Total: len(files)}
	domainFiles := make(map[string]int)

	var sum float64
	for _, f := range files {
		switch {
		case f.Complexity >= highComplexity:
			summary.High++
		case f.Complexity >= moderateComplexity:
			summary.Moderate++
		default:
			summary.Low++
		}
		sum += f.Complexity
		domainFiles[domainOf(f)]++
	}
	if summary.Total > 0 {
		summary.Average = sum / float64(summary.Total)
	}

	domains := make([]DomainCount, 0, len(domainFiles))
	for d, n := range domainFiles {
		domains = append(domains, DomainCount{Domain: d, Files: n})
	}
	sort.Slice(domains, func(i, j int) bool {
		if domains[i].Files != domains[j].Files {
			return domains[i].Files > domains[j].Files
		}
		return domains[i].Domain < domains[j].Domain
	})

	a.mu.Lock()
	a.complexity = summary
	a.domains = domains
	a.mu.Unlock()
}

// domainOf resolves a file's domain: the analyzer's tag when present,
// otherwise the file's top-level directory.
func domainOf(f resource.Item) string {
	if f.Domain != "" {
		return f.Domain
	}
	path := strings.TrimPrefix(f.Path, "/")
	if i := strings.IndexByte(path, '/'); i > 0 {
		return path[:i]
	}
	return "(root)"
}

// Complexity returns the last computed complexity summary.
func (a *Analytics) Complexity() ComplexitySummary {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.complexity
}

// Domains returns the last computed per-domain file counts.
func (a *Analytics) Domains() []DomainCount {
	a.mu.RLock()
	defer a.mu.RUnlock()
	out := make([]DomainCount, len(a.domains))
	copy(out, a.domains)
	return out
}
