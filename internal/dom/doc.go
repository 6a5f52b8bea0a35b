// Package dom provides the document tree substrate for the deletion
// engine: positions, ranges, and in-place tree surgery over
// golang.org/x/net/html nodes.
//
// The tree is owned by the hosting editing surface. Functions in this
// package mutate it in place and never copy subtrees. A Position is a
// (container, offset) pair: for text nodes the offset is a byte index
// into the node's data, for element nodes it is a child index denoting
// a point between children.
package dom
