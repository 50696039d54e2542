// Package paginate splits a rendered HTML fragment into fixed-size pages.
//
// Flatten turns the fragment into an ordered sequence of top-level Nodes with
// pre-computed metrics. Paginate walks that sequence under a Policy: headings
// at a break level start a new page, and in height mode every node's
// estimated height is charged against a per-page budget. A heading is never
// left alone at the bottom of a page when content follows it.
package paginate
