package items

// Registry holds the catalog of consumables available at a table.
type Registry struct {
	items map[string]Item
	order []string
}

// NewRegistry creates a registry stocked with the default catalog.
func NewRegistry() *Registry {
	registry := &Registry{items: make(map[string]Item)}
	for _, item := range defaultCatalog() {
		registry.Add(item)
	}
	return registry
}

// NewEmptyRegistry creates a registry with no items, for tables that stock
// their own catalog.
func NewEmptyRegistry() *Registry {
	return &Registry{items: make(map[string]Item)}
}

// Add registers an item, replacing any existing item with the same name.
func (r *Registry) Add(item Item) {
	if _, exists := r.items[item.Name]; !exists {
		r.order = append(r.order, item.Name)
	}
	r.items[item.Name] = item
}

// Get returns the named item.
func (r *Registry) Get(name string) (Item, bool) {
	item, ok := r.items[name]
	return item, ok
}

// All returns every registered item in registration order.
func (r *Registry) All() []Item {
	all := make([]Item, 0, len(r.order))
	for _, name := range r.order {
		all = append(all, r.items[name])
	}
	return all
}

// ByKind returns every registered item of the given kind, in registration
// order.
func (r *Registry) ByKind(kind Kind) []Item {
	var matched []Item
	for _, name := range r.order {
		if item := r.items[name]; item.Kind == kind {
			matched = append(matched, item)
		}
	}
	return matched
}

func defaultCatalog() []Item {
	return []Item{
		{
			Name:        "Pizza Slice",
			Kind:        KindFood,
			Description: "A tasty slice of pizza. Boosts energy significantly!",
			EnergyValue: 50,
			Effects:     []Effect{EffectEnergyBoost},
			Duration:    3,
			Cost:        1,
		},
		{
			Name:        "Lucky Cookie",
			Kind:        KindFood,
			Description: "A fortune cookie that might bring you luck!",
			EnergyValue: 20,
			Effects:     []Effect{EffectLuckBoost},
			Duration:    2,
			Cost:        1,
		},
		{
			Name:        "Brain Snack",
			Kind:        KindFood,
			Description: "A healthy snack that helps you focus.",
			EnergyValue: 30,
			Effects:     []Effect{EffectFocusBoost},
			Duration:    2,
			Cost:        120,
		},
		{
			Name:        "Energy Drink",
			Kind:        KindDrink,
			Description: "A fizzy drink that boosts your energy!",
			EnergyValue: 40,
			Effects:     []Effect{EffectEnergyBoost, EffectFocusBoost},
			Duration:    2,
			Cost:        80,
		},
		{
			Name:        "Happy Juice",
			Kind:        KindDrink,
			Description: "A fruity drink that puts you in a good mood!",
			EnergyValue: 25,
			Effects:     []Effect{EffectMoodBoost},
			Duration:    3,
			Cost:        90,
		},
		{
			Name:        "Focus Tea",
			Kind:        KindDrink,
			Description: "A special tea that helps you concentrate.",
			EnergyValue: 15,
			Effects:     []Effect{EffectFocusBoost},
			Duration:    4,
			Cost:        70,
		},
	}
}
