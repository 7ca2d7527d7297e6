package statemachine

import (
	"fmt"
	"strings"

	"vacation-menu-api/models"
)

// Transition defines a valid state change and the event that causes it
type Transition struct {
	From    models.SuggestionState `json:"from"`
	To      models.SuggestionState `json:"to"`
	Trigger string                 `json:"trigger"`
}

const (
	TriggerRequest     = "request"
	TriggerParsed      = "parsed"
	TriggerCallFailed  = "call_failed"
	TriggerParseFailed = "parse_failed"
)

// validTransitions is the authoritative state machine definition
var validTransitions = []Transition{
	// Prompt is sent to the provider
	{From: models.SuggestionIdle, To: models.SuggestionRequesting, Trigger: TriggerRequest},
	// Reply decoded into suggestions
	{From: models.SuggestionRequesting, To: models.SuggestionParsed, Trigger: TriggerParsed},
	// Provider error or unreadable reply
	{From: models.SuggestionRequesting, To: models.SuggestionUnavailable, Trigger: TriggerCallFailed},
	{From: models.SuggestionRequesting, To: models.SuggestionUnavailable, Trigger: TriggerParseFailed},
}

type transitionKey struct {
	From    models.SuggestionState
	To      models.SuggestionState
	Trigger string
}

var transitionMap = func() map[transitionKey]bool {
	m := make(map[transitionKey]bool)
	for _, t := range validTransitions {
		m[transitionKey{t.From, t.To, t.Trigger}] = true
	}
	return m
}()

// ValidTransitionsFrom returns all valid next states from a given state
func ValidTransitionsFrom(state models.SuggestionState) []models.SuggestionState {
	var nexts []models.SuggestionState
	seen := map[models.SuggestionState]bool{}
	for _, t := range validTransitions {
		if t.From == state && !seen[t.To] {
			nexts = append(nexts, t.To)
			seen[t.To] = true
		}
	}
	return nexts
}

// CanTransition checks if a trigger may move a request from one state to another
func CanTransition(from, to models.SuggestionState, trigger string) error {
	if transitionMap[transitionKey{From: from, To: to, Trigger: trigger}] {
		return nil
	}
	return fmt.Errorf("invalid transition: %s → %s is not allowed on %q. Valid transitions from %s are: %s",
		from, to, trigger, from, describeValidFrom(from))
}

func describeValidFrom(state models.SuggestionState) string {
	nexts := ValidTransitionsFrom(state)
	if len(nexts) == 0 {
		return "none (terminal state)"
	}
	names := make([]string, len(nexts))
	for i, s := range nexts {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}

// IsTerminal reports whether no transition leaves the state.
func IsTerminal(state models.SuggestionState) bool {
	return len(ValidTransitionsFrom(state)) == 0
}

// GetAllTransitions returns the full state machine for documentation
func GetAllTransitions() []Transition {
	return validTransitions
}

// Tracker follows a single suggestion request through the state machine.
type Tracker struct {
	state models.SuggestionState
}

func NewTracker() *Tracker {
	return &Tracker{state: models.SuggestionIdle}
}

func (t *Tracker) State() models.SuggestionState {
	return t.state
}

// Advance moves the tracker to the next state if the trigger allows it.
func (t *Tracker) Advance(to models.SuggestionState, trigger string) error {
	if err := CanTransition(t.state, to, trigger); err != nil {
		return err
	}
	t.state = to
	return nil
}
