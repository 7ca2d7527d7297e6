// Package memory implements the repository contracts in process memory.
// It backs service tests and runs without a database file.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"vacation-menu-api/models"
	"vacation-menu-api/repository"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

var (
	_ repository.MenuRepository       = (*MenuRepo)(nil)
	_ repository.MealRepository       = (*MealRepo)(nil)
	_ repository.DishRepository       = (*DishRepo)(nil)
	_ repository.IngredientRepository = (*IngredientRepo)(nil)
)

// Store holds every entity behind one lock so cross-entity operations
// (dish deletion, menu cascade) stay consistent.
type Store struct {
	mu          sync.RWMutex
	seq         int64
	menus       map[string]*models.Menu
	meals       map[string]*models.Meal
	dishes      map[string]*models.Dish
	ingredients map[string]*models.Ingredient
	order       map[string]int64
}

func New() *Store {
	return &Store{
		menus:       make(map[string]*models.Menu),
		meals:       make(map[string]*models.Meal),
		dishes:      make(map[string]*models.Dish),
		ingredients: make(map[string]*models.Ingredient),
		order:       make(map[string]int64),
	}
}

// Repositories exposes the store through the repository contracts.
func (s *Store) Repositories() repository.Repositories {
	return repository.Repositories{
		Menus:       &MenuRepo{s: s},
		Meals:       &MealRepo{s: s},
		Dishes:      &DishRepo{s: s},
		Ingredients: &IngredientRepo{s: s},
	}
}

// track assigns an id if missing and records insertion order.
func (s *Store) track(id *string) {
	if *id == "" {
		*id = uuid.NewString()
	}
	s.seq++
	s.order[*id] = s.seq
}

func (s *Store) sortByInsertion(ids []string) {
	sort.SliceStable(ids, func(i, j int) bool { return s.order[ids[i]] < s.order[ids[j]] })
}

func copyMenu(m *models.Menu) models.Menu {
	c := *m
	c.Restrictions = append(datatypes.JSONSlice[string]{}, m.Restrictions...)
	if m.Preferences != nil {
		p := *m.Preferences
		c.Preferences = &p
	}
	c.Meals = nil
	return c
}

func copyIngredient(i *models.Ingredient) models.Ingredient {
	return *i
}

// dishLocked returns a copy of the dish with its ingredients.
func (s *Store) dishLocked(id string) (models.Dish, bool) {
	d, ok := s.dishes[id]
	if !ok {
		return models.Dish{}, false
	}
	c := *d
	c.Ingredients = []models.Ingredient{}
	var ids []string
	for iid, ing := range s.ingredients {
		if ing.DishID == id {
			ids = append(ids, iid)
		}
	}
	s.sortByInsertion(ids)
	for _, iid := range ids {
		c.Ingredients = append(c.Ingredients, copyIngredient(s.ingredients[iid]))
	}
	return c, true
}

// mealLocked returns a copy of the meal with its dishes resolved.
func (s *Store) mealLocked(id string) (models.Meal, bool) {
	m, ok := s.meals[id]
	if !ok {
		return models.Meal{}, false
	}
	c := *m
	c.DishIDs = []string{}
	c.Dishes = []models.Dish{}
	for _, did := range m.DishIDs {
		d, ok := s.dishLocked(did)
		if !ok {
			continue
		}
		c.DishIDs = append(c.DishIDs, did)
		c.Dishes = append(c.Dishes, d)
	}
	return c, true
}

func (s *Store) mealsOfMenuLocked(menuID string) []models.Meal {
	var ids []string
	for id, m := range s.meals {
		if m.MenuID == menuID {
			ids = append(ids, id)
		}
	}
	s.sortByInsertion(ids)
	meals := make([]models.Meal, 0, len(ids))
	for _, id := range ids {
		m, _ := s.mealLocked(id)
		meals = append(meals, m)
	}
	return meals
}

func (s *Store) insertMealLocked(meal *models.Meal) {
	s.track(&meal.ID)
	meal.CreatedAt = time.Now()
	meal.DishIDs = models.UniqueIDs(meal.DishIDs)
	stored := *meal
	stored.DishIDs = append([]string(nil), meal.DishIDs...)
	stored.Dishes = nil
	s.meals[meal.ID] = &stored
}

func (s *Store) insertIngredientLocked(ing *models.Ingredient) {
	ing.ID = ""
	s.track(&ing.ID)
	ing.CreatedAt = time.Now()
	stored := *ing
	s.ingredients[ing.ID] = &stored
}

func (s *Store) deleteMealLocked(id string) {
	delete(s.meals, id)
	delete(s.order, id)
}

func (s *Store) deleteIngredientsOfLocked(dishID string) {
	for id, ing := range s.ingredients {
		if ing.DishID == dishID {
			delete(s.ingredients, id)
			delete(s.order, id)
		}
	}
}

type MenuRepo struct{ s *Store }

func (r *MenuRepo) Create(_ context.Context, menu *models.Menu) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	s.track(&menu.ID)
	now := time.Now()
	menu.CreatedAt, menu.UpdatedAt = now, now
	if menu.Restrictions == nil {
		menu.Restrictions = datatypes.JSONSlice[string]{}
	}
	stored := copyMenu(menu)
	s.menus[menu.ID] = &stored

	for i := range menu.Meals {
		meal := menu.Meals[i]
		meal.ID = ""
		meal.MenuID = menu.ID
		s.insertMealLocked(&meal)
	}
	menu.Meals = s.mealsOfMenuLocked(menu.ID)
	return nil
}

func (r *MenuRepo) FindByID(_ context.Context, id string) (*models.Menu, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.menus[id]
	if !ok {
		return nil, nil
	}
	c := copyMenu(m)
	c.Meals = s.mealsOfMenuLocked(id)
	return &c, nil
}

func (r *MenuRepo) FindAll(_ context.Context, filter repository.MenuFilter) ([]models.Menu, int64, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()

	filter = filter.Normalize()
	var ids []string
	for id, m := range s.menus {
		if filter.Matches(m) {
			ids = append(ids, id)
		}
	}
	s.sortByInsertion(ids)
	// newest first
	for i, j := 0, len(ids)-1; i < j; i, j = i+1, j-1 {
		ids[i], ids[j] = ids[j], ids[i]
	}

	total := int64(len(ids))
	menus := []models.Menu{}
	for i := filter.Offset(); i < len(ids) && len(menus) < filter.Limit; i++ {
		menus = append(menus, copyMenu(s.menus[ids[i]]))
	}
	return menus, total, nil
}

func (r *MenuRepo) Update(_ context.Context, menu *models.Menu) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.menus[menu.ID]
	if !ok {
		return nil
	}
	menu.UpdatedAt = time.Now()
	menu.CreatedAt = existing.CreatedAt
	stored := copyMenu(menu)
	s.menus[menu.ID] = &stored
	return nil
}

func (r *MenuRepo) Delete(_ context.Context, id string) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	for mid, m := range s.meals {
		if m.MenuID == id {
			s.deleteMealLocked(mid)
		}
	}
	delete(s.menus, id)
	delete(s.order, id)
	return nil
}

type MealRepo struct{ s *Store }

func (r *MealRepo) Create(_ context.Context, meal *models.Meal) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	s.insertMealLocked(meal)
	*meal, _ = s.mealLocked(meal.ID)
	return nil
}

func (r *MealRepo) FindByID(_ context.Context, menuID, mealID string) (*models.Meal, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.meals[mealID]
	if !ok || m.MenuID != menuID {
		return nil, nil
	}
	c, _ := s.mealLocked(mealID)
	return &c, nil
}

func (r *MealRepo) FindByMenu(_ context.Context, menuID string) ([]models.Meal, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mealsOfMenuLocked(menuID), nil
}

func (r *MealRepo) Update(_ context.Context, meal *models.Meal, replaceDishes bool) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.meals[meal.ID]
	if !ok {
		return nil
	}
	stored.Date = meal.Date
	stored.Type = meal.Type
	if replaceDishes {
		stored.DishIDs = models.UniqueIDs(meal.DishIDs)
	}
	*meal, _ = s.mealLocked(meal.ID)
	return nil
}

func (r *MealRepo) Delete(_ context.Context, menuID, mealID string) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	if m, ok := s.meals[mealID]; ok && m.MenuID == menuID {
		s.deleteMealLocked(mealID)
	}
	return nil
}

type DishRepo struct{ s *Store }

func (r *DishRepo) Create(_ context.Context, dish *models.Dish) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	s.track(&dish.ID)
	dish.CreatedAt = time.Now()
	stored := *dish
	stored.Ingredients = nil
	s.dishes[dish.ID] = &stored

	for i := range dish.Ingredients {
		dish.Ingredients[i].DishID = dish.ID
		s.insertIngredientLocked(&dish.Ingredients[i])
	}
	if dish.Ingredients == nil {
		dish.Ingredients = []models.Ingredient{}
	}
	return nil
}

func (r *DishRepo) FindByID(_ context.Context, id string) (*models.Dish, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.dishLocked(id)
	if !ok {
		return nil, nil
	}
	return &d, nil
}

func (r *DishRepo) FindByIDs(_ context.Context, ids []string) ([]models.Dish, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()

	dishes := []models.Dish{}
	for _, id := range models.UniqueIDs(ids) {
		if d, ok := s.dishLocked(id); ok {
			dishes = append(dishes, d)
		}
	}
	return dishes, nil
}

func (r *DishRepo) FindAll(_ context.Context, filter repository.DishFilter) ([]models.Dish, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()

	dishes := []models.Dish{}
	for id, d := range s.dishes {
		if filter.Matches(d) {
			c, _ := s.dishLocked(id)
			dishes = append(dishes, c)
		}
	}
	sort.SliceStable(dishes, func(i, j int) bool {
		if dishes[i].Name != dishes[j].Name {
			return dishes[i].Name < dishes[j].Name
		}
		return s.order[dishes[i].ID] < s.order[dishes[j].ID]
	})
	return dishes, nil
}

func (r *DishRepo) Update(_ context.Context, dish *models.Dish, replaceIngredients bool) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.dishes[dish.ID]
	if !ok {
		return nil
	}
	stored.Name = dish.Name
	stored.Category = dish.Category
	if replaceIngredients {
		s.deleteIngredientsOfLocked(dish.ID)
		for i := range dish.Ingredients {
			dish.Ingredients[i].DishID = dish.ID
			s.insertIngredientLocked(&dish.Ingredients[i])
		}
	}
	return nil
}

func (r *DishRepo) Delete(_ context.Context, id string) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, m := range s.meals {
		if kept, removed := withoutID(m.DishIDs, id); removed {
			m.DishIDs = kept
		}
	}
	s.deleteIngredientsOfLocked(id)
	delete(s.dishes, id)
	delete(s.order, id)
	return nil
}

func withoutID(ids []string, id string) ([]string, bool) {
	out := make([]string, 0, len(ids))
	removed := false
	for _, v := range ids {
		if v == id {
			removed = true
			continue
		}
		out = append(out, v)
	}
	return out, removed
}

type IngredientRepo struct{ s *Store }

func (r *IngredientRepo) Create(_ context.Context, ingredient *models.Ingredient) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	s.insertIngredientLocked(ingredient)
	return nil
}

func (r *IngredientRepo) FindByID(_ context.Context, dishID, id string) (*models.Ingredient, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()

	ing, ok := s.ingredients[id]
	if !ok || ing.DishID != dishID {
		return nil, nil
	}
	c := copyIngredient(ing)
	return &c, nil
}

func (r *IngredientRepo) Update(_ context.Context, ingredient *models.Ingredient) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.ingredients[ingredient.ID]
	if !ok || stored.DishID != ingredient.DishID {
		return nil
	}
	stored.Name = ingredient.Name
	stored.Quantity = ingredient.Quantity
	stored.Unit = ingredient.Unit
	stored.Category = ingredient.Category
	return nil
}

func (r *IngredientRepo) Delete(_ context.Context, dishID, id string) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	if ing, ok := s.ingredients[id]; ok && ing.DishID == dishID {
		delete(s.ingredients, id)
		delete(s.order, id)
	}
	return nil
}
