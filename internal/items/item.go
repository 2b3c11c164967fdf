package items

// Kind classifies a consumable item.
type Kind string

const (
	KindFood  Kind = "food"
	KindDrink Kind = "drink"
)

// Effect identifies a timed bonus a consumable can grant.
type Effect string

const (
	// EffectEnergyBoost restores extra energy.
	EffectEnergyBoost Effect = "energy_boost"
	// EffectLuckBoost gives rolled dice a chance to nudge up one pip.
	EffectLuckBoost Effect = "luck_boost"
	// EffectFocusBoost keeps rolled dice off their lowest face.
	EffectFocusBoost Effect = "focus_boost"
	// EffectMoodBoost is cosmetic; the presentation layer reacts to it.
	EffectMoodBoost Effect = "mood_boost"
)

// Item is one purchasable consumable.
type Item struct {
	Name        string
	Kind        Kind
	Description string
	// EnergyValue is the energy restored when the item is consumed.
	EnergyValue int
	Effects     []Effect
	// Duration is how many rounds the item's effects stay active.
	Duration int
	// Cost is the item's shop price in chips.
	Cost int
}
