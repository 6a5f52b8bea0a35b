// Package remove deletes the subtree covered by a range while
// honoring the removal policy: unremovable elements survive (their
// removable content is still emptied out, or the wrapper is unwrapped
// around surviving children), and composite widgets can take over
// partial removal through descendants hooks.
package remove
