package dialogue

// State names a step of the call script.
type State string

const (
	StateIntroduction          State = "introduction"
	StateTravelInquiry         State = "travel_inquiry"
	StateDestinationSuggestion State = "destination_suggestion"
	StateDetailCollection      State = "detail_collection"
	StatePresentOffer          State = "present_offer"
	StateAlternativeOffer      State = "alternative_offer"
	StateBookingDetails        State = "booking_details"
	StateClosing               State = "closing"
	StateContactFallback       State = "contact_fallback"
	StateEnd                   State = "end"
)

// Signal is the outcome of a state, used to pick the next one.
type Signal string

const (
	SignalNext        Signal = "next"
	SignalAffirmative Signal = "affirmative"
	SignalNegative    Signal = "negative"
	SignalUndecided   Signal = "undecided"
)

// DefaultNegativeLimit is the number of refusals after which the call is
// routed to the contact fallback.
const DefaultNegativeLimit = 2

var transitions = map[State]map[Signal]State{
	StateIntroduction: {
		SignalAffirmative: StateTravelInquiry,
		SignalNegative:    StateContactFallback,
	},
	StateTravelInquiry: {
		SignalAffirmative: StateDetailCollection,
		SignalUndecided:   StateDestinationSuggestion,
	},
	StateDestinationSuggestion: {
		SignalNext: StateDetailCollection,
	},
	StateDetailCollection: {
		SignalNext: StatePresentOffer,
	},
	StatePresentOffer: {
		SignalAffirmative: StateBookingDetails,
		SignalNegative:    StateAlternativeOffer,
	},
	StateAlternativeOffer: {
		SignalAffirmative: StateBookingDetails,
		SignalNegative:    StateClosing,
		SignalNext:        StateClosing, // nothing left to offer
	},
	StateBookingDetails: {
		SignalNext: StateClosing,
	},
	StateClosing: {
		SignalNext: StateEnd,
	},
	StateContactFallback: {
		SignalNext: StateEnd,
	},
}

// Next returns the state that follows from after it produced signal.
// negatives is the session's refusal count including this signal; once it
// reaches limit a negative signal always leads to the contact fallback.
// Pairs missing from the table also fall back to the contact fallback.
func Next(from State, signal Signal, negatives, limit int) State {
	if limit <= 0 {
		limit = DefaultNegativeLimit
	}
	if signal == SignalNegative && negatives >= limit {
		return StateContactFallback
	}
	if to, ok := transitions[from][signal]; ok {
		return to
	}
	if from == StateContactFallback || from == StateEnd {
		return StateEnd
	}
	return StateContactFallback
}

// Successors returns every state reachable from s in one transition,
// including the contact fallback reached through the refusal limit.
func Successors(s State) []State {
	seen := map[State]bool{}
	var out []State
	add := func(to State) {
		if !seen[to] {
			seen[to] = true
			out = append(out, to)
		}
	}
	for _, sig := range []Signal{SignalAffirmative, SignalNegative, SignalUndecided, SignalNext} {
		if to, ok := transitions[s][sig]; ok {
			add(to)
			if sig == SignalNegative {
				add(StateContactFallback)
			}
		}
	}
	return out
}

// Terminal reports whether s persists the record and ends the call.
func (s State) Terminal() bool {
	return s == StateClosing || s == StateContactFallback
}
