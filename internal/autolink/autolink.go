// Package autolink places screenshots into a Markdown manual that has no
// image references, by matching numeric filename prefixes against numbered
// section headings.
//
// Recognized headings:
//
//	## 2. Installation        -> key "2"
//	### 2-1 Requirements      -> key "2.1"
//	### 2.1 Requirements      -> key "2.1"
//
// Recognized filenames start with a zero-padded major number, optionally
// followed by a separator (-, _ or .) and a zero-padded minor number:
//
//	02_overview.png           -> major "2"
//	02-01_requirements.png    -> major "2", minor "1"
package autolink

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/maruel/natural"
)

// AppendixTitle heads the section collecting unmatched screenshots.
const AppendixTitle = "Reference Screenshots"

// Precompiled patterns.
var (
	imageSyntax = regexp.MustCompile(`!\[[^\]]*\]\([^)]*\)`)
	sectionRe   = regexp.MustCompile(`^##\s+(\d+)\.`)
	subsection  = regexp.MustCompile(`^###\s+(\d+)[-.](\d+)`)
	filePrefix  = regexp.MustCompile(`^0*(\d+)(?:[-_.]0*(\d+))?`)
	separatorRe = regexp.MustCompile(`^\s*(?:-{3,}|\*{3,}|_{3,})\s*$`)
)

// Heading is a numbered heading found in raw Markdown.
type Heading struct {
	Line  int    // zero-based line index
	Key   string // "2" or "2.1"
	Level int    // 2 or 3
}

// Key is the numeric prefix extracted from a screenshot filename.
type Key struct {
	Major    string
	Minor    string
	HasMinor bool
}

// String returns "major" or "major.minor".
func (k Key) String() string {
	if k.HasMinor {
		return k.Major + "." + k.Minor
	}
	return k.Major
}

// Result describes what the linker did.
type Result struct {
	Markdown   string              // linked Markdown (input unchanged when !Applied)
	Applied    bool                // false when the linker acted as identity
	Matched    map[string][]string // heading key -> filenames, in insertion order
	Unmatched  []string            // filenames placed in the appendix
	Duplicates []string            // heading keys seen more than once; later heading wins
}

// HasImageReferences reports whether the Markdown already references images.
func HasImageReferences(markdown string) bool {
	return imageSyntax.MatchString(markdown)
}

// Headings scans Markdown for numbered level-2 and level-3 headings.
func Headings(lines []string) []Heading {
	var out []Heading
	for i, line := range lines {
		if m := sectionRe.FindStringSubmatch(line); m != nil {
			out = append(out, Heading{Line: i, Key: normalizeNumber(m[1]), Level: 2})
			continue
		}
		if m := subsection.FindStringSubmatch(line); m != nil {
			out = append(out, Heading{Line: i, Key: normalizeNumber(m[1]) + "." + normalizeNumber(m[2]), Level: 3})
		}
	}
	return out
}

// ParseKey extracts the numeric prefix of a filename.
// Returns false when the name has no leading number.
func ParseKey(filename string) (Key, bool) {
	m := filePrefix.FindStringSubmatch(filename)
	if m == nil {
		return Key{}, false
	}
	k := Key{Major: normalizeNumber(m[1])}
	if m[2] != "" {
		k.Minor = normalizeNumber(m[2])
		k.HasMinor = true
	}
	return k, true
}

// normalizeNumber strips leading zeros through integer parsing.
// Numbers too large for int are kept verbatim minus leading zeros.
func normalizeNumber(s string) string {
	if n, err := strconv.Atoi(s); err == nil {
		return strconv.Itoa(n)
	}
	trimmed := strings.TrimLeft(s, "0")
	if trimmed == "" {
		return "0"
	}
	return trimmed
}

// Link inserts image references for the given filenames.
// It is the identity transform when the Markdown already contains image
// syntax or when no filenames are given.
func Link(markdown string, filenames []string) Result {
	if len(filenames) == 0 || HasImageReferences(markdown) {
		return Result{Markdown: markdown}
	}

	lines := strings.Split(markdown, "\n")
	headings := Headings(lines)

	// Later headings overwrite earlier ones sharing a key.
	owner := make(map[string]int, len(headings))
	var duplicates []string
	for i, h := range headings {
		if _, seen := owner[h.Key]; seen {
			duplicates = append(duplicates, h.Key)
		}
		owner[h.Key] = i
	}

	names := append([]string(nil), filenames...)
	sort.Sort(natural.StringSlice(names))

	buckets := make(map[int][]string)
	matched := make(map[string][]string)
	var unmatched []string
	for _, name := range names {
		idx, ok := match(name, owner)
		if !ok {
			unmatched = append(unmatched, name)
			continue
		}
		buckets[idx] = append(buckets[idx], name)
		key := headings[idx].Key
		matched[key] = append(matched[key], name)
	}

	// Splice from the last heading backwards so earlier line
	// indices stay valid.
	for i := len(headings) - 1; i >= 0; i-- {
		bucket := buckets[i]
		if len(bucket) == 0 {
			continue
		}
		end := len(lines)
		if i+1 < len(headings) {
			end = headings[i+1].Line
		}
		at := insertionPoint(lines, headings[i].Line, end)
		lines = splice(lines, at, imageLines(bucket))
	}

	out := strings.Join(lines, "\n")
	if len(unmatched) > 0 {
		out = appendAppendix(out, unmatched)
	}

	return Result{
		Markdown:   out,
		Applied:    true,
		Matched:    matched,
		Unmatched:  unmatched,
		Duplicates: duplicates,
	}
}

// match resolves a filename to a heading index: exact major.minor first,
// then bare major.
func match(name string, owner map[string]int) (int, bool) {
	k, ok := ParseKey(name)
	if !ok {
		return 0, false
	}
	if k.HasMinor {
		if idx, ok := owner[k.String()]; ok {
			return idx, true
		}
	}
	idx, ok := owner[k.Major]
	return idx, ok
}

// insertionPoint returns the line index where images for the heading at
// start belong, given the exclusive end of its section. Trailing blank lines
// and one thematic break are skipped so images stay inside the section.
func insertionPoint(lines []string, start, end int) int {
	at := skipBlank(lines, start, end)
	if at-1 > start && separatorRe.MatchString(lines[at-1]) {
		at = skipBlank(lines, start, at-1)
	}
	return at
}

// skipBlank moves at backwards over blank lines, never past start+1.
func skipBlank(lines []string, start, at int) int {
	for at-1 > start && strings.TrimSpace(lines[at-1]) == "" {
		at--
	}
	return at
}

// imageLines renders one blank-padded image line per filename.
func imageLines(names []string) []string {
	out := make([]string, 0, len(names)*2+1)
	for _, name := range names {
		out = append(out, "", imageRef(name))
	}
	return append(out, "")
}

// imageRef builds the Markdown reference for a filename.
// Spaces and parentheses are escaped so the destination stays one token.
func imageRef(name string) string {
	dest := strings.NewReplacer(" ", "%20", "(", "%28", ")", "%29").Replace(name)
	alt := strings.NewReplacer("[", `\[`, "]", `\]`).Replace(name)
	return "![" + alt + "](" + dest + ")"
}

// splice inserts extra at index at.
func splice(lines []string, at int, extra []string) []string {
	out := make([]string, 0, len(lines)+len(extra))
	out = append(out, lines[:at]...)
	out = append(out, extra...)
	return append(out, lines[at:]...)
}

// appendAppendix adds the unmatched screenshots at the end of the document.
func appendAppendix(markdown string, names []string) string {
	var b strings.Builder
	b.WriteString(strings.TrimRight(markdown, "\n"))
	b.WriteString("\n\n---\n\n## ")
	b.WriteString(AppendixTitle)
	b.WriteString("\n")
	for _, name := range names {
		b.WriteString("\n")
		b.WriteString(imageRef(name))
		b.WriteString("\n")
	}
	return b.String()
}
