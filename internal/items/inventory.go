package items

import "errors"

// ErrItemUnavailable indicates a use or removal of an item the inventory
// does not hold.
var ErrItemUnavailable = errors.New("item is not in the inventory")

// Inventory tracks one player's consumables and their active effects.
type Inventory struct {
	quantities map[string]int
	// effects maps an active effect to its rounds remaining.
	effects map[Effect]int
}

// NewInventory creates an empty inventory with no active effects.
func NewInventory() *Inventory {
	return &Inventory{
		quantities: make(map[string]int),
		effects:    make(map[Effect]int),
	}
}

// Add places quantity copies of the item into the inventory.
func (inv *Inventory) Add(item Item, quantity int) {
	if quantity <= 0 {
		return
	}
	inv.quantities[item.Name] += quantity
}

// Quantity returns how many copies of the named item are held.
func (inv *Inventory) Quantity(name string) int {
	return inv.quantities[name]
}

// Holdings returns a copy of the item-name to quantity map.
func (inv *Inventory) Holdings() map[string]int {
	holdings := make(map[string]int, len(inv.quantities))
	for name, quantity := range inv.quantities {
		if quantity > 0 {
			holdings[name] = quantity
		}
	}
	return holdings
}

// Use consumes one copy of the item and activates its effects. Durations
// stack onto any effect already active.
func (inv *Inventory) Use(item Item) error {
	if inv.quantities[item.Name] < 1 {
		return ErrItemUnavailable
	}
	inv.quantities[item.Name]--
	if inv.quantities[item.Name] == 0 {
		delete(inv.quantities, item.Name)
	}
	for _, effect := range item.Effects {
		inv.effects[effect] += item.Duration
	}
	return nil
}

// HasEffect reports whether the effect is currently active.
func (inv *Inventory) HasEffect(effect Effect) bool {
	return inv.effects[effect] > 0
}

// EffectDuration returns the rounds remaining for an effect, zero when
// inactive.
func (inv *Inventory) EffectDuration(effect Effect) int {
	return inv.effects[effect]
}

// ActiveEffects returns the effects currently in force.
func (inv *Inventory) ActiveEffects() []Effect {
	active := make([]Effect, 0, len(inv.effects))
	for _, effect := range []Effect{EffectEnergyBoost, EffectLuckBoost, EffectFocusBoost, EffectMoodBoost} {
		if inv.effects[effect] > 0 {
			active = append(active, effect)
		}
	}
	return active
}

// Tick advances one round: every active effect loses a round and expired
// effects are dropped.
func (inv *Inventory) Tick() {
	for effect, remaining := range inv.effects {
		remaining--
		if remaining <= 0 {
			delete(inv.effects, effect)
			continue
		}
		inv.effects[effect] = remaining
	}
}
