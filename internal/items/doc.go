// Package items provides the consumable item catalog and per-player
// inventories for the Zanzibar table.
//
// # Catalog
//
// Items are food or drink. Each restores energy and grants zero or more
// timed effects, measured in rounds. The registry is explicitly
// constructed and passed to collaborators; there is no package-level
// catalog.
//
// # Effects
//
// Active effects are tracked per inventory as effect to rounds-remaining.
// Using an item stacks its duration onto any active effect of the same
// kind. Effects expire as the table ticks between rounds. How an effect
// changes dice is decided by the game layer; this package only answers
// whether an effect is active.
package items
