// internal/route/route.go
//
// Route table for the two page views.
//   - "/"     → index (landing) view
//   - "/game" → game view
//
// Resolution is exact string matching: no parameters, wildcards, nesting,
// redirects or guards. Unmapped paths resolve to ViewNotFound rather than an
// error; what to render for them is the HTTP layer's call.

package route

// View identifies a page view.
type View int

const (
	ViewNotFound View = iota
	ViewIndex
	ViewGame
)

// String returns the view's stable identifier.
func (v View) String() string {
	switch v {
	case ViewIndex:
		return "index"
	case ViewGame:
		return "game"
	}
	return "not-found"
}

// MarshalText lets views appear as strings in JSON.
func (v View) MarshalText() ([]byte, error) { return []byte(v.String()), nil }

// Entry pairs a URL path with the view mounted there.
type Entry struct {
	Path string `json:"path"`
	View View   `json:"view"`
}

var table = [...]Entry{
	{Path: "/", View: ViewIndex},
	{Path: "/game", View: ViewGame},
}

// Table returns the route table in declaration order.
func Table() []Entry {
	return append([]Entry(nil), table[:]...)
}

// Resolve maps path to its view, or ViewNotFound.
func Resolve(path string) View {
	for _, e := range table {
		if e.Path == path {
			return e.View
		}
	}
	return ViewNotFound
}
