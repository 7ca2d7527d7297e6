package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// CopySuffix is appended to the title or name of a duplicated menu or dish.
const CopySuffix = " (copy)"

// MaxStayDays bounds the stay period a menu may be updated to.
const MaxStayDays = 30

// Menu is a trip-scoped meal plan owning its meals.
type Menu struct {
	ID           string                      `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Title        string                      `json:"title" gorm:"not null"`
	CheckIn      Date                        `json:"checkIn" gorm:"not null;index"`
	CheckOut     Date                        `json:"checkOut" gorm:"not null;index"`
	Adults       int                         `json:"adults" gorm:"not null"`
	Children     int                         `json:"children" gorm:"not null;default:0"`
	Restrictions datatypes.JSONSlice[string] `json:"restrictions"`
	Preferences  *string                     `json:"preferences"`
	Meals        []Meal                      `json:"meals" gorm:"foreignKey:MenuID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time                   `json:"createdAt"`
	UpdatedAt    time.Time                   `json:"updatedAt"`
}

func (m *Menu) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if m.Restrictions == nil {
		m.Restrictions = datatypes.JSONSlice[string]{}
	}
	return nil
}

// Contains reports whether d falls inside the stay window, both ends inclusive.
func (m *Menu) Contains(d Date) bool {
	return d.Between(m.CheckIn, m.CheckOut)
}

// StayDays is the number of nights between check-in and check-out.
func (m *Menu) StayDays() int {
	return m.CheckIn.DaysUntil(m.CheckOut)
}

// TotalPeople is adults plus children.
func (m *Menu) TotalPeople() int {
	return m.Adults + m.Children
}

// MealsOutside returns the meals whose date falls outside [checkIn, checkOut].
func MealsOutside(meals []Meal, checkIn, checkOut Date) []Meal {
	var outside []Meal
	for _, meal := range meals {
		if !meal.Date.Between(checkIn, checkOut) {
			outside = append(outside, meal)
		}
	}
	return outside
}

// Duplicate returns an unsaved copy of the menu. Meals get fresh identities
// but keep referencing the same dishes.
func (m *Menu) Duplicate() *Menu {
	restrictions := make(datatypes.JSONSlice[string], len(m.Restrictions))
	copy(restrictions, m.Restrictions)

	var preferences *string
	if m.Preferences != nil {
		p := *m.Preferences
		preferences = &p
	}

	dup := &Menu{
		Title:        m.Title + CopySuffix,
		CheckIn:      m.CheckIn,
		CheckOut:     m.CheckOut,
		Adults:       m.Adults,
		Children:     m.Children,
		Restrictions: restrictions,
		Preferences:  preferences,
	}
	for _, meal := range m.Meals {
		dup.Meals = append(dup.Meals, Meal{
			Date:    meal.Date,
			Type:    meal.Type,
			DishIDs: append([]string(nil), meal.DishIDs...),
		})
	}
	return dup
}
