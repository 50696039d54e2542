package assetindex

import (
	"net/url"
	"sort"

	"github.com/maruel/natural"
)

// Index maps base filenames to decoded assets.
type Index struct {
	assets map[string]Asset
}

// New returns an empty Index.
func New() *Index {
	return &Index{assets: make(map[string]Asset)}
}

// Add merges assets into the index. Later assets replace earlier ones
// with the same name.
func (x *Index) Add(assets ...Asset) {
	for _, a := range assets {
		x.assets[a.Name] = a
	}
}

// Remove deletes the named asset and reports whether it was present.
func (x *Index) Remove(name string) bool {
	name = Basename(name)
	if _, ok := x.assets[name]; !ok {
		return false
	}
	delete(x.assets, name)
	return true
}

// Len returns the number of indexed assets.
func (x *Index) Len() int {
	return len(x.assets)
}

// Lookup returns the asset stored under an exact base filename.
func (x *Index) Lookup(name string) (Asset, bool) {
	a, ok := x.assets[name]
	return a, ok
}

// Names returns the indexed filenames in natural order ("2-9" before "2-10").
func (x *Index) Names() []string {
	names := make([]string, 0, len(x.assets))
	for name := range x.assets {
		names = append(names, name)
	}
	sort.Sort(natural.StringSlice(names))
	return names
}

// Resolve maps a Markdown image reference to asset content.
// Any directory prefix is ignored. A percent-encoded basename
// ("my%20shot.png") is retried decoded.
func (x *Index) Resolve(ref string) (string, bool) {
	base := Basename(ref)
	if a, ok := x.assets[base]; ok {
		return a.Content, true
	}
	if decoded, err := url.PathUnescape(base); err == nil && decoded != base {
		if a, ok := x.assets[decoded]; ok {
			return a.Content, true
		}
	}
	return "", false
}

// Clone returns an independent copy sharing immutable assets.
func (x *Index) Clone() *Index {
	c := &Index{assets: make(map[string]Asset, len(x.assets))}
	for k, v := range x.assets {
		c.assets[k] = v
	}
	return c
}
