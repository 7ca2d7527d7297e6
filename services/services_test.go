package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"vacation-menu-api/ai"
	"vacation-menu-api/apperrors"
	"vacation-menu-api/models"
	"vacation-menu-api/repository"
	"vacation-menu-api/repository/memory"
)

type fakeGenerator struct {
	reply  string
	err    error
	prompt string
}

func (f *fakeGenerator) GenerateContent(ctx context.Context, prompt string) (string, error) {
	f.prompt = prompt
	return f.reply, f.err
}

type fixture struct {
	svc   *Services
	repos repository.Repositories
	gen   *fakeGenerator
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	repos := memory.New().Repositories()
	gen := &fakeGenerator{}
	return &fixture{
		svc:   New(repos, ai.NewGateway(gen, logger), logger),
		repos: repos,
		gen:   gen,
	}
}

func (f *fixture) menu(t *testing.T, checkIn, checkOut string) *models.Menu {
	t.Helper()
	menu, err := f.svc.Menus.Create(context.Background(), CreateMenuInput{
		Title:    "Lake House",
		CheckIn:  models.MustParseDate(checkIn),
		CheckOut: models.MustParseDate(checkOut),
		Adults:   2,
	})
	if err != nil {
		t.Fatalf("create menu: %v", err)
	}
	return menu
}

func (f *fixture) dish(t *testing.T, name string) *models.Dish {
	t.Helper()
	dish, err := f.svc.Dishes.Create(context.Background(), CreateDishInput{
		Name:     name,
		Category: models.DishDinner,
		Ingredients: []IngredientInput{
			{Name: "Tomato", Quantity: 3, Unit: "pcs"},
			{Name: "Mozzarella", Quantity: 250, Unit: "g", Category: models.IngredientDairy},
		},
	})
	if err != nil {
		t.Fatalf("create dish: %v", err)
	}
	return dish
}

func (f *fixture) meal(t *testing.T, menuID, date string, dishIDs ...string) *models.Meal {
	t.Helper()
	meal, err := f.svc.Meals.Create(context.Background(), menuID, CreateMealInput{
		Date:    models.MustParseDate(date),
		Type:    models.MealDinner,
		DishIDs: dishIDs,
	})
	if err != nil {
		t.Fatalf("create meal: %v", err)
	}
	return meal
}

func assertKind(t *testing.T, err error, want apperrors.Kind) {
	t.Helper()
	if got := apperrors.KindOf(err); got != want {
		t.Fatalf("error kind = %s, want %s (err: %v)", got, want, err)
	}
}

func TestMenuCreate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	t.Run("Defaults", func(t *testing.T) {
		menu := f.menu(t, "2026-02-01", "2026-02-05")
		if menu.Children != 0 {
			t.Errorf("children = %d, want 0", menu.Children)
		}
		if menu.Restrictions == nil || len(menu.Restrictions) != 0 {
			t.Errorf("restrictions = %v, want empty list", menu.Restrictions)
		}
		if menu.Preferences != nil {
			t.Errorf("preferences = %q, want nil", *menu.Preferences)
		}
	})

	t.Run("CheckOutBeforeCheckIn", func(t *testing.T) {
		_, err := f.svc.Menus.Create(ctx, CreateMenuInput{
			Title:    "Backwards",
			CheckIn:  models.MustParseDate("2026-02-05"),
			CheckOut: models.MustParseDate("2026-02-01"),
			Adults:   2,
		})
		assertKind(t, err, apperrors.KindInvalidDate)
	})

	t.Run("SameDayStay", func(t *testing.T) {
		f.menu(t, "2026-02-01", "2026-02-01")
	})
}

func TestMealDateWindow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	menu := f.menu(t, "2026-02-01", "2026-02-05")
	dish := f.dish(t, "Pizza")

	for _, date := range []string{"2026-02-01", "2026-02-03", "2026-02-05"} {
		t.Run("Inside "+date, func(t *testing.T) {
			meal := f.meal(t, menu.ID, date, dish.ID)
			if meal.Date.String() != date {
				t.Errorf("date = %s, want %s", meal.Date, date)
			}
		})
	}

	for _, date := range []string{"2026-01-31", "2026-02-06"} {
		t.Run("Outside "+date, func(t *testing.T) {
			_, err := f.svc.Meals.Create(ctx, menu.ID, CreateMealInput{
				Date:    models.MustParseDate(date),
				Type:    models.MealLunch,
				DishIDs: []string{dish.ID},
			})
			assertKind(t, err, apperrors.KindInvalidDate)
		})
	}
}

func TestMealCreateRejections(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	menu := f.menu(t, "2026-02-01", "2026-02-05")
	dish := f.dish(t, "Pizza")

	_, err := f.svc.Meals.Create(ctx, "missing", CreateMealInput{Date: menu.CheckIn, Type: models.MealLunch, DishIDs: []string{dish.ID}})
	assertKind(t, err, apperrors.KindNotFound)

	_, err = f.svc.Meals.Create(ctx, menu.ID, CreateMealInput{Date: menu.CheckIn, Type: models.MealLunch, DishIDs: nil})
	assertKind(t, err, apperrors.KindValidation)

	_, err = f.svc.Meals.Create(ctx, menu.ID, CreateMealInput{Date: menu.CheckIn, Type: models.MealLunch, DishIDs: []string{"ghost"}})
	assertKind(t, err, apperrors.KindNotFound)

	meal := f.meal(t, menu.ID, "2026-02-02", dish.ID, dish.ID)
	if len(meal.DishIDs) != 1 {
		t.Errorf("dishIds = %v, want duplicates collapsed", meal.DishIDs)
	}
}

func TestMenuUpdate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	menu := f.menu(t, "2026-02-01", "2026-02-10")
	dish := f.dish(t, "Pizza")
	f.meal(t, menu.ID, "2026-02-02", dish.ID)
	f.meal(t, menu.ID, "2026-02-08", dish.ID)
	f.meal(t, menu.ID, "2026-02-09", dish.ID)

	date := func(s string) *models.Date { d := models.MustParseDate(s); return &d }
	intp := func(n int) *int { return &n }

	t.Run("NarrowingStrandsMeals", func(t *testing.T) {
		_, err := f.svc.Menus.Update(ctx, menu.ID, UpdateMenuInput{CheckOut: date("2026-02-05"), Title: strPtr("Shorter")})
		assertKind(t, err, apperrors.KindDomainRule)
		if !strings.Contains(err.Error(), "2 meal(s)") {
			t.Errorf("message = %q, want the stranded meal count", err.Error())
		}

		got, _ := f.svc.Menus.Get(ctx, menu.ID)
		if got.CheckOut.String() != "2026-02-10" || got.Title != "Lake House" {
			t.Errorf("menu modified by a rejected update: %s %q", got.CheckOut, got.Title)
		}
	})

	t.Run("CheckOutNotAfterCheckIn", func(t *testing.T) {
		_, err := f.svc.Menus.Update(ctx, menu.ID, UpdateMenuInput{CheckIn: date("2026-02-03"), CheckOut: date("2026-02-03")})
		assertKind(t, err, apperrors.KindInvalidDate)
	})

	t.Run("ResultingRangeInverted", func(t *testing.T) {
		_, err := f.svc.Menus.Update(ctx, menu.ID, UpdateMenuInput{CheckIn: date("2026-02-11")})
		assertKind(t, err, apperrors.KindInvalidDate)
	})

	t.Run("AdultsBelowOne", func(t *testing.T) {
		_, err := f.svc.Menus.Update(ctx, menu.ID, UpdateMenuInput{Adults: intp(0)})
		assertKind(t, err, apperrors.KindDomainRule)
	})

	t.Run("StayTooLong", func(t *testing.T) {
		_, err := f.svc.Menus.Update(ctx, menu.ID, UpdateMenuInput{CheckOut: date("2026-03-05")})
		assertKind(t, err, apperrors.KindDomainRule)
	})

	t.Run("NotFound", func(t *testing.T) {
		_, err := f.svc.Menus.Update(ctx, "missing", UpdateMenuInput{Adults: intp(3)})
		assertKind(t, err, apperrors.KindNotFound)
	})

	t.Run("PartialAndPreferences", func(t *testing.T) {
		prefs := "fresh fish"
		updated, err := f.svc.Menus.Update(ctx, menu.ID, UpdateMenuInput{
			Adults:      intp(4),
			Preferences: models.Nullable[string]{Set: true, Value: &prefs},
		})
		if err != nil {
			t.Fatalf("update: %v", err)
		}
		if updated.Adults != 4 || updated.Title != "Lake House" {
			t.Errorf("adults = %d title = %q, want 4 and unchanged title", updated.Adults, updated.Title)
		}
		if updated.Preferences == nil || *updated.Preferences != prefs {
			t.Errorf("preferences = %v, want %q", updated.Preferences, prefs)
		}

		kept, _ := f.svc.Menus.Update(ctx, menu.ID, UpdateMenuInput{Children: intp(1)})
		if kept.Preferences == nil {
			t.Error("omitted preferences must be left as is")
		}

		cleared, _ := f.svc.Menus.Update(ctx, menu.ID, UpdateMenuInput{Preferences: models.Nullable[string]{Set: true}})
		if cleared.Preferences != nil {
			t.Errorf("explicit null should clear preferences, got %q", *cleared.Preferences)
		}
	})
}

func strPtr(s string) *string { return &s }

func TestMenuList(t *testing.T) {
	f := newFixture(t)
	for i := 0; i < 5; i++ {
		f.menu(t, "2026-02-01", "2026-02-05")
	}

	page, err := f.svc.Menus.List(context.Background(), repository.MenuFilter{Page: 2, Limit: 2})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.Page != 2 || page.Limit != 2 || page.Total != 5 || page.TotalPages != 3 || len(page.Data) != 2 {
		t.Errorf("page = %+v, want page 2 of 3 with 2 items", page)
	}

	page, _ = f.svc.Menus.List(context.Background(), repository.MenuFilter{Limit: 1000})
	if page.Limit != 100 || page.TotalPages != 1 {
		t.Errorf("limit = %d totalPages = %d, want 100 and 1", page.Limit, page.TotalPages)
	}
}

func TestMenuDuplicate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	menu := f.menu(t, "2026-02-01", "2026-02-05")
	pizza := f.dish(t, "Pizza")
	pasta := f.dish(t, "Pasta")
	orig := f.meal(t, menu.ID, "2026-02-02", pizza.ID, pasta.ID)

	before, _ := f.svc.Menus.Get(ctx, menu.ID)

	dup, err := f.svc.Menus.Duplicate(ctx, menu.ID)
	if err != nil {
		t.Fatalf("duplicate: %v", err)
	}
	if dup.ID == menu.ID || dup.Title != "Lake House (copy)" {
		t.Errorf("dup id/title = %s %q", dup.ID, dup.Title)
	}
	if len(dup.Meals) != 1 {
		t.Fatalf("dup meals = %d, want 1", len(dup.Meals))
	}
	if dup.Meals[0].ID == orig.ID {
		t.Error("duplicated meal must get a new id")
	}
	if strings.Join(dup.Meals[0].DishIDs, ",") != strings.Join(orig.DishIDs, ",") {
		t.Errorf("dup dishIds = %v, want %v", dup.Meals[0].DishIDs, orig.DishIDs)
	}

	after, _ := f.svc.Menus.Get(ctx, menu.ID)
	if after.Title != before.Title || len(after.Meals) != 1 || after.Meals[0].ID != orig.ID ||
		strings.Join(after.Meals[0].DishIDs, ",") != strings.Join(before.Meals[0].DishIDs, ",") {
		t.Errorf("original menu changed by duplication: %+v", after)
	}

	dishes, _ := f.svc.Dishes.List(ctx, repository.DishFilter{})
	if len(dishes) != 2 {
		t.Errorf("dishes = %d, want 2 (menu duplication must not copy dishes)", len(dishes))
	}

	_, err = f.svc.Menus.Duplicate(ctx, "missing")
	assertKind(t, err, apperrors.KindNotFound)
}

func TestDishDuplicate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	dish := f.dish(t, "Caprese")

	copy1, err := f.svc.Dishes.Duplicate(ctx, dish.ID)
	if err != nil {
		t.Fatalf("duplicate: %v", err)
	}
	if copy1.ID == dish.ID || copy1.Name != "Caprese (copy)" || copy1.Category != dish.Category {
		t.Errorf("copy = %s %q %s", copy1.ID, copy1.Name, copy1.Category)
	}
	if len(copy1.Ingredients) != len(dish.Ingredients) {
		t.Fatalf("ingredients = %d, want %d", len(copy1.Ingredients), len(dish.Ingredients))
	}
	for i, ing := range copy1.Ingredients {
		orig := dish.Ingredients[i]
		if ing.ID == orig.ID {
			t.Errorf("ingredient %d kept its id", i)
		}
		if ing.DishID != copy1.ID {
			t.Errorf("ingredient %d dishId = %q, want %q", i, ing.DishID, copy1.ID)
		}
		if ing.Name != orig.Name || ing.Quantity != orig.Quantity || ing.Unit != orig.Unit || ing.Category != orig.Category {
			t.Errorf("ingredient %d = %+v, want content of %+v", i, ing, orig)
		}
	}

	copy2, _ := f.svc.Dishes.Duplicate(ctx, copy1.ID)
	if copy2.Name != "Caprese (copy) (copy)" {
		t.Errorf("second copy name = %q, want %q", copy2.Name, "Caprese (copy) (copy)")
	}
}

func TestDeleteNotFound(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	menu := f.menu(t, "2026-02-01", "2026-02-05")
	other := f.menu(t, "2026-02-01", "2026-02-05")
	dish := f.dish(t, "Pizza")
	other2 := f.dish(t, "Salad")
	meal := f.meal(t, menu.ID, "2026-02-02", dish.ID)

	assertKind(t, f.svc.Menus.Delete(ctx, "missing"), apperrors.KindNotFound)
	assertKind(t, f.svc.Meals.Delete(ctx, "missing", meal.ID), apperrors.KindNotFound)
	assertKind(t, f.svc.Meals.Delete(ctx, other.ID, meal.ID), apperrors.KindNotFound)
	assertKind(t, f.svc.Dishes.Delete(ctx, "missing"), apperrors.KindNotFound)
	assertKind(t, f.svc.Dishes.DeleteIngredient(ctx, dish.ID, "missing"), apperrors.KindNotFound)
	assertKind(t, f.svc.Dishes.DeleteIngredient(ctx, other2.ID, dish.Ingredients[0].ID), apperrors.KindNotFound)

	if err := f.svc.Meals.Delete(ctx, menu.ID, meal.ID); err != nil {
		t.Fatalf("delete meal: %v", err)
	}
	assertKind(t, f.svc.Meals.Delete(ctx, menu.ID, meal.ID), apperrors.KindNotFound)
}

func TestIngredientUpdateMisScoped(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	pizza := f.dish(t, "Pizza")
	salad := f.dish(t, "Salad")
	qty := 10.0

	_, err := f.svc.Dishes.UpdateIngredient(ctx, salad.ID, pizza.Ingredients[0].ID, UpdateIngredientInput{Quantity: &qty})
	assertKind(t, err, apperrors.KindNotFound)

	updated, err := f.svc.Dishes.UpdateIngredient(ctx, pizza.ID, pizza.Ingredients[0].ID, UpdateIngredientInput{Quantity: &qty})
	if err != nil {
		t.Fatalf("update ingredient: %v", err)
	}
	if updated.Quantity != 10 || updated.Name != "Tomato" {
		t.Errorf("ingredient = %+v, want Tomato x10", updated)
	}
}

func TestDishUpdateReplacesIngredients(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	dish := f.dish(t, "Pizza")

	repl := []IngredientInput{{Name: "Salmon", Quantity: 0.5, Unit: "kg"}}
	updated, err := f.svc.Dishes.Update(ctx, dish.ID, UpdateDishInput{Ingredients: &repl})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != "Pizza" {
		t.Errorf("name = %q, want unchanged", updated.Name)
	}
	if len(updated.Ingredients) != 1 || updated.Ingredients[0].Category != models.IngredientSeafood {
		t.Errorf("ingredients = %+v, want one seafood ingredient", updated.Ingredients)
	}

	bad := []IngredientInput{{Name: "Air", Quantity: 0}}
	_, err = f.svc.Dishes.Update(ctx, dish.ID, UpdateDishInput{Ingredients: &bad})
	assertKind(t, err, apperrors.KindValidation)
}

func TestMealUpdate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	menu := f.menu(t, "2026-02-01", "2026-02-05")
	pizza := f.dish(t, "Pizza")
	salad := f.dish(t, "Salad")
	meal := f.meal(t, menu.ID, "2026-02-02", pizza.ID)

	empty := []string{}
	_, err := f.svc.Meals.Update(ctx, menu.ID, meal.ID, UpdateMealInput{DishIDs: &empty})
	assertKind(t, err, apperrors.KindValidation)

	outside := models.MustParseDate("2026-02-07")
	_, err = f.svc.Meals.Update(ctx, menu.ID, meal.ID, UpdateMealInput{Date: &outside})
	assertKind(t, err, apperrors.KindInvalidDate)

	ids := []string{salad.ID}
	lunch := models.MealLunch
	updated, err := f.svc.Meals.Update(ctx, menu.ID, meal.ID, UpdateMealInput{DishIDs: &ids, Type: &lunch})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if len(updated.DishIDs) != 1 || updated.DishIDs[0] != salad.ID || updated.Type != models.MealLunch {
		t.Errorf("meal = %+v, want lunch with only salad", updated)
	}
	if updated.Date.String() != "2026-02-02" {
		t.Errorf("date = %s, want unchanged", updated.Date)
	}
}

const suggestionReply = `{"suggestions":[
  {"name":"Shakshuka","category":"breakfast","ingredients":[{"name":"Eggs","quantity":6,"unit":"pcs","category":"dairy"}]},
  {"name":"Pancakes","ingredients":[{"name":"Flour","quantity":0.3,"unit":"kg"}]},
  {"name":"Granola Bowl","ingredients":[]}
],"notes":"Enjoy"}`

func TestSuggest(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	menu := f.menu(t, "2026-02-01", "2026-02-05")
	f.gen.reply = suggestionReply

	res, err := f.svc.Suggestions.Suggest(ctx, menu.ID, SuggestInput{Date: models.MustParseDate("2026-02-02"), Type: models.MealBreakfast})
	if err != nil {
		t.Fatalf("suggest: %v", err)
	}
	if len(res.Suggestions) != 3 || res.Context.MenuID != menu.ID {
		t.Errorf("result = %+v", res)
	}

	_, err = f.svc.Suggestions.Suggest(ctx, menu.ID, SuggestInput{Date: models.MustParseDate("2026-03-01"), Type: models.MealBreakfast})
	assertKind(t, err, apperrors.KindInvalidDate)

	_, err = f.svc.Suggestions.Suggest(ctx, "missing", SuggestInput{Date: models.MustParseDate("2026-02-02"), Type: models.MealBreakfast})
	assertKind(t, err, apperrors.KindNotFound)

	f.gen.err = errors.New("connection reset")
	_, err = f.svc.Suggestions.Regenerate(ctx, menu.ID, SuggestInput{Date: models.MustParseDate("2026-02-02"), Type: models.MealBreakfast, ExcludeDishes: []string{"Pancakes"}})
	assertKind(t, err, apperrors.KindServiceUnavailable)
	if !strings.Contains(f.gen.prompt, "Pancakes") {
		t.Error("regenerate prompt should list excluded dishes")
	}
}

func TestAcceptSuggestions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	menu := f.menu(t, "2026-02-01", "2026-02-05")

	chosen := []models.SuggestedDish{
		{Name: "Shakshuka", Ingredients: []models.SuggestedIngredient{{Name: "Eggs", Quantity: 6, Unit: "pcs"}}},
		{Name: "Pancakes", Category: models.DishDessert, Ingredients: []models.SuggestedIngredient{{Name: "Flour", Quantity: 0.3, Unit: "kg"}}},
		{Name: "Fruit Salad"},
	}

	t.Run("OutsideWindow", func(t *testing.T) {
		_, err := f.svc.Suggestions.AcceptSuggestions(ctx, menu.ID, AcceptSuggestionsInput{
			Date: models.MustParseDate("2026-02-06"), Type: models.MealBreakfast, Dishes: chosen,
		})
		assertKind(t, err, apperrors.KindInvalidDate)
		dishes, _ := f.svc.Dishes.List(ctx, repository.DishFilter{})
		if len(dishes) != 0 {
			t.Errorf("dishes = %d, want none created on rejection", len(dishes))
		}
	})

	t.Run("Valid", func(t *testing.T) {
		res, err := f.svc.Suggestions.AcceptSuggestions(ctx, menu.ID, AcceptSuggestionsInput{
			Date: models.MustParseDate("2026-02-03"), Type: models.MealBreakfast, Dishes: chosen,
		})
		if err != nil {
			t.Fatalf("accept: %v", err)
		}
		if len(res.Dishes) != 3 || len(res.Meal.DishIDs) != 3 {
			t.Fatalf("dishes = %d, meal dishIds = %d, want 3 and 3", len(res.Dishes), len(res.Meal.DishIDs))
		}
		for i, d := range res.Dishes {
			if res.Meal.DishIDs[i] != d.ID {
				t.Errorf("meal dish %d = %s, want %s", i, res.Meal.DishIDs[i], d.ID)
			}
		}
		if res.Dishes[0].Category != models.DishBreakfast {
			t.Errorf("category = %q, want inferred breakfast", res.Dishes[0].Category)
		}
		if res.Dishes[1].Category != models.DishDessert {
			t.Errorf("category = %q, want dessert", res.Dishes[1].Category)
		}
		if res.Dishes[0].Ingredients[0].Category != models.IngredientDairy {
			t.Errorf("eggs category = %q, want dairy", res.Dishes[0].Ingredients[0].Category)
		}

		dishes, _ := f.svc.Dishes.List(ctx, repository.DishFilter{})
		if len(dishes) != 3 {
			t.Errorf("stored dishes = %d, want 3", len(dishes))
		}
		menuAfter, _ := f.svc.Menus.Get(ctx, menu.ID)
		if len(menuAfter.Meals) != 1 {
			t.Errorf("menu meals = %d, want 1", len(menuAfter.Meals))
		}
	})
}

func TestAcceptVariation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	menu := f.menu(t, "2026-02-01", "2026-02-05")
	pizza := f.dish(t, "Pizza")
	salad := f.dish(t, "Salad")
	soup := f.dish(t, "Soup")
	meal := f.meal(t, menu.ID, "2026-02-02", pizza.ID, salad.ID, soup.ID)

	variation := models.SuggestedDish{Name: "Calzone", Ingredients: []models.SuggestedIngredient{{Name: "Dough", Quantity: 1, Unit: "kg"}}}

	_, err := f.svc.Suggestions.AcceptVariation(ctx, menu.ID, meal.ID, AcceptVariationInput{ReplaceDishID: "not-in-meal", Dish: variation})
	assertKind(t, err, apperrors.KindNotFound)

	_, err = f.svc.Suggestions.AcceptVariation(ctx, menu.ID, "missing", AcceptVariationInput{ReplaceDishID: salad.ID, Dish: variation})
	assertKind(t, err, apperrors.KindNotFound)

	res, err := f.svc.Suggestions.AcceptVariation(ctx, menu.ID, meal.ID, AcceptVariationInput{ReplaceDishID: salad.ID, Dish: variation})
	if err != nil {
		t.Fatalf("accept variation: %v", err)
	}
	want := []string{pizza.ID, res.Dish.ID, soup.ID}
	if strings.Join(res.Meal.DishIDs, ",") != strings.Join(want, ",") {
		t.Errorf("dishIds = %v, want %v", res.Meal.DishIDs, want)
	}
	if res.Dish.Category != models.DishDinner {
		t.Errorf("category = %q, want the meal's dinner category", res.Dish.Category)
	}
}

func TestSuggestVariationByDishID(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	menu := f.menu(t, "2026-02-01", "2026-02-05")
	pizza := f.dish(t, "Pizza")
	f.gen.reply = `{"variations":[{"name":"Flatbread","ingredients":[]}],"notes":""}`

	res, err := f.svc.Suggestions.SuggestVariation(ctx, menu.ID, VariationInput{Date: menu.CheckIn, Type: models.MealDinner, DishID: pizza.ID})
	if err != nil {
		t.Fatalf("variation: %v", err)
	}
	if res.Original != "Pizza" || !strings.Contains(f.gen.prompt, "Tomato") {
		t.Errorf("variation should be built from the stored dish, got original %q", res.Original)
	}

	_, err = f.svc.Suggestions.SuggestVariation(ctx, menu.ID, VariationInput{Date: menu.CheckIn, Type: models.MealDinner, DishID: "missing"})
	assertKind(t, err, apperrors.KindNotFound)

	_, err = f.svc.Suggestions.SuggestVariation(ctx, menu.ID, VariationInput{Date: menu.CheckIn, Type: models.MealDinner})
	assertKind(t, err, apperrors.KindValidation)
}
