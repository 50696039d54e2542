// Package assetindex keeps uploaded images addressable by filename.
//
// Images are decoded once into portable data URIs and stored under their
// base filename. Markdown references are resolved by stripping any directory
// prefix, so "images/shot.png", "./shot.png" and "shot.png" all resolve to
// the asset named "shot.png".
//
// The Index is append-accumulating: new batches merge into the existing set
// and the last asset added under a given name wins. It is not safe for
// concurrent mutation; DecodeBatch is the only concurrent operation and it
// joins before returning.
package assetindex
