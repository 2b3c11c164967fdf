// Package service hosts the stateful Zanzibar table.
//
// # Responsibilities
//
// A Game owns the seats, chip stacks, energy levels and inventories for one
// match. It drives rounds through the pure rules in the domain package,
// translates active item effects into roll modifiers, and publishes every
// fact to the event bus. Persistence, achievements and replays never talk
// to the Game; they subscribe to the bus.
//
// # Match End
//
// Chips are penalty markers. The first player whose stack reaches zero or
// below at the end of a round wins the match.
//
// # Concurrency
//
// A Game is not safe for concurrent use. One match runs one round at a
// time, so callers serialize access the way they would around a table.
package service
