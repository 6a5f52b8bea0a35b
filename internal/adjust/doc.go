// Package adjust widens or narrows a raw boundary pair into one that
// is safe and semantically complete to delete. Each step is pure
// (range in, range out) and independent; commands compose different
// subsets in different orders.
package adjust
