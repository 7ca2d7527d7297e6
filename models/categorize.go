package models

import "strings"

// CategorizeIngredient guesses the shopping category of an ingredient name.
// Exact matches win over substring matches; unknown names fall back to other.
func CategorizeIngredient(name string) IngredientCategory {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" {
		return IngredientOther
	}
	if cat, ok := exactIngredients[n]; ok {
		return cat
	}
	for _, kw := range ingredientKeywords {
		if strings.Contains(n, kw.keyword) {
			return kw.category
		}
	}
	return IngredientOther
}

var exactIngredients = map[string]IngredientCategory{
	"salt":    IngredientSpices,
	"pepper":  IngredientSpices,
	"rice":    IngredientPantry,
	"pasta":   IngredientPantry,
	"flour":   IngredientPantry,
	"sugar":   IngredientPantry,
	"eggs":    IngredientDairy,
	"egg":     IngredientDairy,
	"bread":   IngredientBakery,
	"water":   IngredientBeverages,
	"wine":    IngredientBeverages,
	"beer":    IngredientBeverages,
	"corn":    IngredientProduce,
	"lemon":   IngredientProduce,
	"lime":    IngredientProduce,
	"garlic":  IngredientProduce,
	"ham":     IngredientMeat,
	"bacon":   IngredientMeat,
	"tuna":    IngredientSeafood,
	"shrimp":  IngredientSeafood,
	"butter":  IngredientDairy,
	"milk":    IngredientDairy,
	"cream":   IngredientDairy,
	"yogurt":  IngredientDairy,
	"cheese":  IngredientDairy,
	"oregano": IngredientSpices,
	"basil":   IngredientProduce,
}

// Ordered: more specific keywords first.
var ingredientKeywords = []struct {
	keyword  string
	category IngredientCategory
}{
	{"frozen", IngredientFrozen},
	{"ice cream", IngredientFrozen},
	{"olive oil", IngredientPantry},
	{"peppercorn", IngredientSpices},
	{"bell pepper", IngredientProduce},
	{"mozzarella", IngredientDairy},
	{"parmesan", IngredientDairy},
	{"cheese", IngredientDairy},
	{"yogurt", IngredientDairy},
	{"milk", IngredientDairy},
	{"cream", IngredientDairy},
	{"butter", IngredientDairy},
	{"steak", IngredientMeat},
	{"chicken", IngredientMeat},
	{"beef", IngredientMeat},
	{"pork", IngredientMeat},
	{"lamb", IngredientMeat},
	{"sausage", IngredientMeat},
	{"turkey", IngredientMeat},
	{"salmon", IngredientSeafood},
	{"fish", IngredientSeafood},
	{"prawn", IngredientSeafood},
	{"shrimp", IngredientSeafood},
	{"tomato", IngredientProduce},
	{"potato", IngredientProduce},
	{"onion", IngredientProduce},
	{"carrot", IngredientProduce},
	{"lettuce", IngredientProduce},
	{"spinach", IngredientProduce},
	{"mushroom", IngredientProduce},
	{"zucchini", IngredientProduce},
	{"cucumber", IngredientProduce},
	{"avocado", IngredientProduce},
	{"pumpkin", IngredientProduce},
	{"apple", IngredientProduce},
	{"banana", IngredientProduce},
	{"berries", IngredientProduce},
	{"herb", IngredientProduce},
	{"baguette", IngredientBakery},
	{"bread", IngredientBakery},
	{"dough", IngredientBakery},
	{"tortilla", IngredientBakery},
	{"croissant", IngredientBakery},
	{"juice", IngredientBeverages},
	{"coffee", IngredientBeverages},
	{"tea", IngredientBeverages},
	{"soda", IngredientBeverages},
	{"cinnamon", IngredientSpices},
	{"paprika", IngredientSpices},
	{"cumin", IngredientSpices},
	{"spice", IngredientSpices},
	{"oil", IngredientPantry},
	{"vinegar", IngredientPantry},
	{"sauce", IngredientPantry},
	{"beans", IngredientPantry},
	{"rice", IngredientPantry},
	{"pasta", IngredientPantry},
	{"noodle", IngredientPantry},
	{"flour", IngredientPantry},
	{"oats", IngredientPantry},
}
