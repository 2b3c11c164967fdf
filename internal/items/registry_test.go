package items

import "testing"

func TestDefaultCatalog(t *testing.T) {
	registry := NewRegistry()

	all := registry.All()
	if len(all) != 6 {
		t.Fatalf("catalog has %d items, want 6", len(all))
	}
	if all[0].Name != "Pizza Slice" {
		t.Errorf("first item = %q, want registration order preserved", all[0].Name)
	}
	for _, name := range []string{"Pizza Slice", "Lucky Cookie", "Brain Snack", "Energy Drink", "Happy Juice", "Focus Tea"} {
		if _, ok := registry.Get(name); !ok {
			t.Errorf("default catalog missing %q", name)
		}
	}
	if foods := registry.ByKind(KindFood); len(foods) != 3 {
		t.Errorf("food count = %d, want 3", len(foods))
	}

	tea, ok := registry.Get("Focus Tea")
	if !ok {
		t.Fatal("Focus Tea missing from catalog")
	}
	if tea.Kind != KindDrink || tea.Duration != 4 {
		t.Errorf("Focus Tea = %+v, want a drink lasting 4 rounds", tea)
	}

	for _, item := range all {
		if item.Cost < 1 {
			t.Errorf("%s cost = %d, want at least 1 chip", item.Name, item.Cost)
		}
		if len(item.Effects) == 0 {
			t.Errorf("%s has no effects", item.Name)
		}
	}
}

func TestRegistryByKind(t *testing.T) {
	registry := NewRegistry()

	drinks := registry.ByKind(KindDrink)
	if len(drinks) != 3 {
		t.Fatalf("got %d drinks, want 3", len(drinks))
	}
	for _, drink := range drinks {
		if drink.Kind != KindDrink {
			t.Errorf("%s is not a drink", drink.Name)
		}
	}
}

func TestRegistryAddReplaces(t *testing.T) {
	registry := NewEmptyRegistry()
	registry.Add(Item{Name: "Tonic", Kind: KindDrink, Cost: 5})
	registry.Add(Item{Name: "Tonic", Kind: KindDrink, Cost: 9})

	tonic, ok := registry.Get("Tonic")
	if !ok || tonic.Cost != 9 {
		t.Fatalf("tonic = %+v (ok=%t), want replacement with cost 9", tonic, ok)
	}
	if len(registry.All()) != 1 {
		t.Errorf("registry holds %d items, want 1", len(registry.All()))
	}
}
