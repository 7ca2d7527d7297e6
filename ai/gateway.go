package ai

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"text/template"

	"vacation-menu-api/apperrors"
	"vacation-menu-api/models"
	"vacation-menu-api/statemachine"
)

//go:embed suggest_prompt.md
var suggestPrompt string

//go:embed variation_prompt.md
var variationPrompt string

// VariationCount is how many alternatives are asked for a single dish.
const VariationCount = 3

var fencePattern = regexp.MustCompile("(?s)```(?:json)?(.*?)```")

// SuggestionCount is how many dishes are asked for a meal type.
func SuggestionCount(t models.MealType) int {
	switch t {
	case models.MealBreakfast:
		return 3
	default:
		return 4
	}
}

type SuggestRequest struct {
	Context  models.SuggestionContext
	Date     models.Date
	MealType models.MealType
	// Exclude lists dish names the provider is told not to repeat.
	Exclude []string
}

type SuggestResult struct {
	Suggestions []models.SuggestedDish   `json:"suggestions"`
	Notes       string                   `json:"notes"`
	Context     models.SuggestionContext `json:"context"`
}

type VariationRequest struct {
	Context  models.SuggestionContext
	Date     models.Date
	MealType models.MealType
	DishName string
	// Dish is set when the variation targets a stored dish.
	Dish *models.Dish
}

type VariationResult struct {
	Original   string                   `json:"original"`
	Variations []models.SuggestedDish   `json:"variations"`
	Notes      string                   `json:"notes"`
	Context    models.SuggestionContext `json:"context"`
}

// Gateway turns menu context into prompts and provider replies into
// suggestions. Every failure surfaces as ServiceUnavailable.
type Gateway struct {
	gen           TextGenerator
	logger        *slog.Logger
	suggestTmpl   *template.Template
	variationTmpl *template.Template
}

var promptFuncs = template.FuncMap{"join": strings.Join}

func NewGateway(gen TextGenerator, logger *slog.Logger) *Gateway {
	return &Gateway{
		gen:           gen,
		logger:        logger.With("component", "suggestion_gateway"),
		suggestTmpl:   template.Must(template.New("suggest").Funcs(promptFuncs).Parse(suggestPrompt)),
		variationTmpl: template.Must(template.New("variation").Funcs(promptFuncs).Parse(variationPrompt)),
	}
}

type promptData struct {
	ContextJSON string
	Date        string
	MealType    models.MealType
	Category    models.DishCategory
	TotalPeople int
	Count       int
	Exclude     []string
	DishName    string
	Ingredients []string
}

func newPromptData(sc models.SuggestionContext, date models.Date, mealType models.MealType) (promptData, error) {
	raw, err := json.MarshalIndent(sc, "", "  ")
	if err != nil {
		return promptData{}, fmt.Errorf("encode context: %w", err)
	}
	return promptData{
		ContextJSON: string(raw),
		Date:        date.String(),
		MealType:    mealType,
		Category:    models.DishCategoryFor(mealType),
		TotalPeople: sc.TotalPeople,
	}, nil
}

func (g *Gateway) Suggest(ctx context.Context, req SuggestRequest) (*SuggestResult, error) {
	data, err := newPromptData(req.Context, req.Date, req.MealType)
	if err != nil {
		return nil, g.unavailable("suggest", nil, "", err)
	}
	data.Count = SuggestionCount(req.MealType)
	data.Exclude = req.Exclude

	var reply struct {
		Suggestions []models.SuggestedDish `json:"suggestions"`
		Notes       string                 `json:"notes"`
	}
	if err := g.complete(ctx, "suggest", g.suggestTmpl, data, &reply); err != nil {
		return nil, err
	}

	suggestions := cleanSuggestions(reply.Suggestions)
	if len(suggestions) == 0 {
		return nil, g.unavailable("suggest", nil, "", errors.New("reply contained no usable suggestions"))
	}
	return &SuggestResult{Suggestions: suggestions, Notes: reply.Notes, Context: req.Context}, nil
}

func (g *Gateway) SuggestVariation(ctx context.Context, req VariationRequest) (*VariationResult, error) {
	data, err := newPromptData(req.Context, req.Date, req.MealType)
	if err != nil {
		return nil, g.unavailable("variation", nil, "", err)
	}
	data.Count = VariationCount
	data.DishName = req.DishName
	if req.Dish != nil {
		data.DishName = req.Dish.Name
		data.Category = req.Dish.Category
		for _, ing := range req.Dish.Ingredients {
			data.Ingredients = append(data.Ingredients, ing.Name)
		}
	}

	var reply struct {
		Variations []models.SuggestedDish `json:"variations"`
		Notes      string                 `json:"notes"`
	}
	if err := g.complete(ctx, "variation", g.variationTmpl, data, &reply); err != nil {
		return nil, err
	}

	variations := cleanSuggestions(reply.Variations)
	if len(variations) == 0 {
		return nil, g.unavailable("variation", nil, "", errors.New("reply contained no usable variations"))
	}
	return &VariationResult{Original: data.DishName, Variations: variations, Notes: reply.Notes, Context: req.Context}, nil
}

// complete renders the prompt, calls the provider once and decodes the reply into out.
func (g *Gateway) complete(ctx context.Context, op string, tmpl *template.Template, data promptData, out any) error {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return g.unavailable(op, nil, "", fmt.Errorf("render prompt: %w", err))
	}

	tracker := statemachine.NewTracker()
	if err := tracker.Advance(models.SuggestionRequesting, statemachine.TriggerRequest); err != nil {
		return g.unavailable(op, nil, "", err)
	}

	raw, err := g.gen.GenerateContent(ctx, buf.String())
	if err != nil {
		return g.unavailable(op, tracker, statemachine.TriggerCallFailed, err)
	}
	if err := json.Unmarshal([]byte(CleanJSON(raw)), out); err != nil {
		return g.unavailable(op, tracker, statemachine.TriggerParseFailed, fmt.Errorf("decode reply: %w", err))
	}

	if err := tracker.Advance(models.SuggestionParsed, statemachine.TriggerParsed); err != nil {
		return g.unavailable(op, nil, "", err)
	}
	g.logger.Debug("suggestion parsed", "op", op, "state", tracker.State(), "reply_bytes", len(raw))
	return nil
}

// unavailable logs the cause and collapses it into a ServiceUnavailable error.
func (g *Gateway) unavailable(op string, tracker *statemachine.Tracker, trigger string, cause error) error {
	state := models.SuggestionUnavailable
	if tracker != nil {
		if err := tracker.Advance(models.SuggestionUnavailable, trigger); err != nil {
			g.logger.Error("suggestion state", "op", op, "error", err)
		}
		state = tracker.State()
	}
	g.logger.Error("suggestion provider failed", "op", op, "state", state, "error", cause)
	return apperrors.ServiceUnavailable(cause)
}

// CleanJSON strips markdown code fences and any prose around the JSON object.
func CleanJSON(response string) string {
	if m := fencePattern.FindStringSubmatch(response); len(m) == 2 {
		response = m[1]
	}
	response = strings.TrimSpace(response)
	if start, end := strings.Index(response, "{"), strings.LastIndex(response, "}"); start >= 0 && end > start {
		response = response[start : end+1]
	}
	return response
}

// cleanSuggestions drops unnamed dishes and ingredients with unusable quantities.
func cleanSuggestions(in []models.SuggestedDish) []models.SuggestedDish {
	out := make([]models.SuggestedDish, 0, len(in))
	for _, s := range in {
		s.Name = strings.TrimSpace(s.Name)
		if s.Name == "" {
			continue
		}
		if !s.Category.Valid() {
			s.Category = ""
		}
		ingredients := make([]models.SuggestedIngredient, 0, len(s.Ingredients))
		for _, ing := range s.Ingredients {
			ing.Name = strings.TrimSpace(ing.Name)
			if ing.Name == "" || ing.Quantity <= 0 {
				continue
			}
			if !ing.Category.Valid() {
				ing.Category = models.CategorizeIngredient(ing.Name)
			}
			ingredients = append(ingredients, ing)
		}
		s.Ingredients = ingredients
		out = append(out, s)
	}
	return out
}
