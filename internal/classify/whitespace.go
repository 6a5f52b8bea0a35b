package classify

// IsCollapsibleSpace returns true for whitespace characters subject to
// the standard collapsible-whitespace rule.
func IsCollapsibleSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\f':
		return true
	}
	return false
}

// IsZeroWidth returns true for characters with no visual extent.
func IsZeroWidth(r rune) bool {
	switch r {
	case ZeroWidthSpace, '\ufeff', '\u200c', '\u200d':
		return true
	}
	return false
}

// HasVisibleChar returns true if s contains at least one character
// that is neither collapsible whitespace nor zero-width.
func HasVisibleChar(s string) bool {
	for _, r := range s {
		if !IsCollapsibleSpace(r) && !IsZeroWidth(r) {
			return true
		}
	}
	return false
}

// IsInvisibleText returns true if every character of s is collapsible
// whitespace or zero-width.
func IsInvisibleText(s string) bool {
	return !HasVisibleChar(s)
}
