package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MealType is the eating occasion of a meal.
type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
)

var MealTypes = []MealType{MealBreakfast, MealLunch, MealDinner}

func (t MealType) Valid() bool {
	switch t {
	case MealBreakfast, MealLunch, MealDinner:
		return true
	}
	return false
}

// Meal is one eating occasion of a menu. DishIDs is the authoritative,
// ordered set of referenced dishes; Dishes is filled on reads.
type Meal struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	MenuID    string    `json:"menuId" gorm:"not null;index;type:varchar(36)"`
	Date      Date      `json:"date" gorm:"not null;index"`
	Type      MealType  `json:"type" gorm:"not null"`
	DishIDs   []string  `json:"dishIds" gorm:"-"`
	Dishes    []Dish    `json:"dishes" gorm:"-"`
	CreatedAt time.Time `json:"createdAt"`
}

func (m *Meal) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// MealDish links a meal to a dish; Position keeps the meal's dish order.
type MealDish struct {
	MealID   string `gorm:"primaryKey;type:varchar(36)"`
	DishID   string `gorm:"primaryKey;type:varchar(36);index"`
	Position int    `gorm:"not null"`
}

func (MealDish) TableName() string {
	return "meal_dishes"
}

// UniqueIDs drops duplicates and blanks while keeping first-seen order.
func UniqueIDs(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

// ReplaceDishID swaps oldID for newID in place. It reports false when oldID
// is not referenced. If newID is already present the old entry is dropped.
func ReplaceDishID(ids []string, oldID, newID string) ([]string, bool) {
	out := make([]string, 0, len(ids))
	found := false
	for _, id := range ids {
		if id == oldID {
			found = true
			out = append(out, newID)
			continue
		}
		out = append(out, id)
	}
	if !found {
		return ids, false
	}
	return UniqueIDs(out), true
}
