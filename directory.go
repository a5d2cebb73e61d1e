package trailhead

// A Directory is a set of LinkGroups exposed to the end user
// in certain environments, notably, not in Production.
// Generally, these are navigational indexes that
// spare clients hardcoding URLs the router can generate itself.
type Directory []LinkGroup

// Filter returns a Directory after removing all LinkGroups that cannot be rendered.
// If none can be rendered, Filter returns a zero-value Directory.
func (d Directory) Filter() Directory {
	var n int
	for _, group := range d {
		if group.Render() {
			d[n] = group
			n++
		}
	}

	if n == 0 {
		return make(Directory, 0)
	}

	return d[:n]
}

// A LinkGroup is a set of links grouped under a category.
// A LinkGroup may pertain to a part of the domain,
// grouping links addressing similar resources.
type LinkGroup struct {
	Links []Link `json:"links"`
	Title string `json:"title"`
}

// Render asserts whether the LinkGroup should be rendered.
func (g LinkGroup) Render() bool { return len(g.Links) > 0 }

// A Link is a specific URL the end user can follow, labeled by the
// name of the route it resolves to.
type Link struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}
