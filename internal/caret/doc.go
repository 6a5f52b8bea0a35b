// Package caret computes visually-distinct caret positions over the
// document tree: the previous/next visible character (grapheme
// cluster) and the previous/next line boundary. It skips invisible
// content (zero-width markers, collapsed whitespace, filler breaks,
// empty wrappers) and treats non-editable islands as atomic units.
package caret
