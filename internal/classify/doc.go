// Package classify supplies the node classification oracles consumed
// by the deletion engine: block vs inline, void elements, fake line
// breaks, zero-width markers, collapsible whitespace, unbreakable
// flags, and non-editable islands.
//
// All predicates are pure and side-effect free. Classification is
// stable for the duration of one editing operation.
package classify
