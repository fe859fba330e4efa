package resource

// Kind identifies one of the four remotely polled collections. It names both
// a cache slot and a coalescing key.
type Kind string

const (
	KindFiles     Kind = "files"
	KindClasses   Kind = "classes"
	KindFunctions Kind = "functions"
	KindServices  Kind = "services"
)

// Kinds lists every resource kind in a stable order.
var Kinds = []Kind{KindFiles, KindClasses, KindFunctions, KindServices}

// validKinds is the set of recognized kind values.
var validKinds = map[Kind]bool{
	KindFiles:     true,
	KindClasses:   true,
	KindFunctions: true,
	KindServices:  true,
}

// ParseKind validates a raw kind string from an API path or config key.
func ParseKind(s string) (Kind, bool) {
	k := Kind(s)
	return k, validKinds[k]
}

// Item is a single record from one of the analysis collections. The remote
// analyzer emits a uniform shape for files, classes, functions, and services;
// fields that do not apply to a given kind are simply absent.
type Item struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Path       string  `json:"path,omitempty"`
	Language   string  `json:"language,omitempty"`
	Lines      int     `json:"lines,omitempty"`
	Complexity float64 `json:"complexity,omitempty"`
	Domain     string  `json:"domain,omitempty"`
}

// SearchResult is a single hit from the search endpoint.
type SearchResult struct {
	Kind  Kind    `json:"kind"`
	Name  string  `json:"name"`
	Path  string  `json:"path,omitempty"`
	Score float64 `json:"score,omitempty"`
}

// Stats holds the aggregate counters reported by the analysis backend.
type Stats struct {
	Files     int `json:"files"`
	Classes   int `json:"classes"`
	Functions int `json:"functions"`
	Services  int `json:"services"`
}
