// Package join decides whether and how the two fragments surviving a
// deletion should be merged: block absorbs block, block absorbs a
// trailing inline run, inline absorbs an unwrapped block, or nothing.
// Unmergeable elements (unremovable or flagged unbreakable) block
// joins across them; a failed join is a normal negative outcome, not
// an error.
package join
