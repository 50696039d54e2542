// Package pipeline implements the Markdown-to-HTML stage of the manual
// pipeline.
//
// This package handles:
//   - Markdown preprocessing (line normalization, highlight syntax)
//   - Markdown to HTML conversion via Goldmark, with every image reference
//     resolved against the uploaded screenshots
//   - CSS injection into HTML documents
//
// Pagination, page composition and printing live in sibling packages; this
// package only produces the flowing, unpaginated rendering used for preview
// and as paginator input.
package pipeline
