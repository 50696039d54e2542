package manualpdf

import (
	"context"
	"strings"

	"github.com/alnah/go-manualpdf/internal/assetindex"
)

// Session holds the Markdown, screenshots and logo of one manual while it
// is being assembled. Screenshots accumulate across AddImages calls until
// removed. A Session is not safe for concurrent mutation.
type Session struct {
	markdown string
	index    *assetindex.Index
	logo     *assetindex.Asset
}

// NewSession returns an empty Session.
func NewSession() *Session {
	return &Session{index: assetindex.New()}
}

// SetMarkdown replaces the manual text.
func (s *Session) SetMarkdown(markdown string) {
	s.markdown = markdown
}

// Markdown returns the manual text.
func (s *Session) Markdown() string {
	return s.markdown
}

// AddImages decodes files concurrently and merges them into the session
// once every decode has settled. A later file replaces an earlier one with
// the same base name. Files that fail to decode are skipped and reported in
// the returned error; the rest are still added. On cancellation nothing is
// added.
func (s *Session) AddImages(ctx context.Context, files []File) error {
	decoded, err := assetindex.DecodeBatch(ctx, files)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	s.index.Add(decoded...)
	return err
}

// RemoveImage removes a screenshot by base name and reports whether it was
// present.
func (s *Session) RemoveImage(name string) bool {
	return s.index.Remove(name)
}

// ImageNames returns the screenshot names in natural order.
func (s *Session) ImageNames() []string {
	return s.index.Names()
}

// SetLogo decodes f and uses it as the header logo.
// On error the previous logo is kept.
func (s *Session) SetLogo(f File) error {
	a, err := assetindex.Decode(f.Name, f.Data)
	if err != nil {
		return err
	}
	s.logo = &a
	return nil
}

// ClearLogo removes the header logo.
func (s *Session) ClearLogo() {
	s.logo = nil
}

// HasLogo reports whether a logo is set.
func (s *Session) HasLogo() bool {
	return s.logo != nil
}

// CanExport reports whether the session holds enough to render:
// non-blank Markdown, and at least one screenshot when requireImages is set.
func (s *Session) CanExport(requireImages bool) error {
	return s.View().check(requireImages)
}

// View returns a read-only snapshot of the session. Later changes to the
// session do not affect the snapshot.
func (s *Session) View() View {
	v := View{markdown: s.markdown, index: s.index.Clone()}
	if s.logo != nil {
		v.logo = s.logo.Content
	}
	return v
}

// View is an immutable snapshot of a Session, consumed by the Converter.
type View struct {
	markdown string
	index    *assetindex.Index
	logo     string
}

// Markdown returns the snapshot's manual text.
func (v View) Markdown() string {
	return v.markdown
}

// ImageNames returns the snapshot's screenshot names in natural order.
func (v View) ImageNames() []string {
	if v.index == nil {
		return nil
	}
	return v.index.Names()
}

// Logo returns the logo data URI, or "" when there is none.
func (v View) Logo() string {
	return v.logo
}

// check is the export precondition.
func (v View) check(requireImages bool) error {
	if strings.TrimSpace(v.markdown) == "" {
		return ErrEmptyMarkdown
	}
	if requireImages && (v.index == nil || v.index.Len() == 0) {
		return ErrNoImages
	}
	return nil
}
