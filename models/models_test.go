package models

import (
	"encoding/json"
	"testing"
)

func TestDateJSON(t *testing.T) {
	var d Date
	if err := json.Unmarshal([]byte(`"2026-02-03"`), &d); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if d.String() != "2026-02-03" {
		t.Errorf("date = %q, want %q", d.String(), "2026-02-03")
	}

	if err := json.Unmarshal([]byte(`"2026-02-03T18:30:00Z"`), &d); err != nil {
		t.Fatalf("unmarshal rfc3339: %v", err)
	}
	if d.String() != "2026-02-03" {
		t.Errorf("date = %q, want truncated day", d.String())
	}

	out, err := json.Marshal(NewDate(2026, 2, 5))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != `"2026-02-05"` {
		t.Errorf("json = %s, want %q", out, "2026-02-05")
	}

	if err := json.Unmarshal([]byte(`"05/02/2026"`), &d); err == nil {
		t.Error("expected error for non-ISO date")
	}
}

func TestDateScan(t *testing.T) {
	var d Date
	if err := d.Scan("2026-02-01"); err != nil {
		t.Fatalf("scan string: %v", err)
	}
	if d != NewDate(2026, 2, 1) {
		t.Errorf("scan string = %v", d)
	}
	if err := d.Scan([]byte("2026-02-04 00:00:00+00:00")); err != nil {
		t.Fatalf("scan bytes: %v", err)
	}
	if d != NewDate(2026, 2, 4) {
		t.Errorf("scan bytes = %v", d)
	}
	if err := d.Scan(NewDate(2026, 3, 1).Time); err != nil {
		t.Fatalf("scan time: %v", err)
	}
	if d.String() != "2026-03-01" {
		t.Errorf("scan time = %v", d)
	}
}

func TestMenuContainsBoundaries(t *testing.T) {
	m := &Menu{CheckIn: MustParseDate("2026-02-01"), CheckOut: MustParseDate("2026-02-05")}

	cases := map[string]bool{
		"2026-01-31": false,
		"2026-02-01": true,
		"2026-02-03": true,
		"2026-02-05": true,
		"2026-02-06": false,
	}
	for day, want := range cases {
		if got := m.Contains(MustParseDate(day)); got != want {
			t.Errorf("Contains(%s) = %v, want %v", day, got, want)
		}
	}
	if m.StayDays() != 4 {
		t.Errorf("StayDays = %d, want 4", m.StayDays())
	}
}

func TestDishDuplicateAccumulatesSuffix(t *testing.T) {
	orig := &Dish{
		ID:       "d1",
		Name:     "Pizza",
		Category: DishDinner,
		Ingredients: []Ingredient{
			{ID: "i1", DishID: "d1", Name: "Dough", Quantity: 1, Unit: "ball", Category: IngredientBakery},
		},
	}

	first := orig.Duplicate()
	if first.Name != "Pizza (copy)" {
		t.Errorf("name = %q, want %q", first.Name, "Pizza (copy)")
	}
	if first.ID != "" || first.Ingredients[0].ID != "" || first.Ingredients[0].DishID != "" {
		t.Error("duplicate must not carry identities")
	}
	second := first.Duplicate()
	if second.Name != "Pizza (copy) (copy)" {
		t.Errorf("name = %q, want %q", second.Name, "Pizza (copy) (copy)")
	}
}

func TestMenuDuplicateIsDeep(t *testing.T) {
	prefs := "beach picnic"
	orig := &Menu{
		Title:        "Lake House",
		Restrictions: []string{"vegetarian"},
		Preferences:  &prefs,
		Meals:        []Meal{{ID: "m1", Type: MealLunch, DishIDs: []string{"d1", "d2"}}},
	}
	dup := orig.Duplicate()
	dup.Restrictions[0] = "vegan"
	*dup.Preferences = "changed"
	dup.Meals[0].DishIDs[0] = "dx"

	if orig.Restrictions[0] != "vegetarian" || *orig.Preferences != "beach picnic" || orig.Meals[0].DishIDs[0] != "d1" {
		t.Error("duplicate shares state with original")
	}
	if dup.Meals[0].ID != "" {
		t.Errorf("meal id = %q, want empty", dup.Meals[0].ID)
	}
}

func TestReplaceDishID(t *testing.T) {
	got, ok := ReplaceDishID([]string{"a", "b", "c"}, "b", "x")
	if !ok {
		t.Fatal("expected replacement")
	}
	want := []string{"a", "x", "c"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("ids = %v, want %v", got, want)
		}
	}
	if _, ok := ReplaceDishID([]string{"a"}, "zz", "x"); ok {
		t.Error("expected no replacement for missing id")
	}
	if ids := UniqueIDs([]string{"a", "a", "", "b"}); len(ids) != 2 {
		t.Errorf("UniqueIDs = %v, want [a b]", ids)
	}
}

func TestCategorizeIngredient(t *testing.T) {
	cases := map[string]IngredientCategory{
		"Mozzarella cheese": IngredientDairy,
		"chicken breast":    IngredientMeat,
		"Salt":              IngredientSpices,
		"olive oil":         IngredientPantry,
		"cherry tomatoes":   IngredientProduce,
		"unobtainium":       IngredientOther,
		"":                  IngredientOther,
	}
	for name, want := range cases {
		if got := CategorizeIngredient(name); got != want {
			t.Errorf("CategorizeIngredient(%q) = %q, want %q", name, got, want)
		}
	}
}
