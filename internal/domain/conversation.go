package domain

// Sentinel is stored for a field when no usable response was obtained.
const Sentinel = "N/A"

// Field names collected during a conversation.
const (
	FieldDestination       = "destination"
	FieldBudget            = "budget"
	FieldTravelDates       = "travel_dates"
	FieldNumTravelers      = "num_travelers"
	FieldDepartureCity     = "departure_city"
	FieldSelectedOffer     = "selected_offer"
	FieldFullName          = "full_name"
	FieldEmail             = "email"
	FieldPhone             = "phone"
	FieldPaymentMethod     = "payment_method"
	FieldRequiresCallback  = "requires_callback"
	FieldCallbackRequested = "callback_requested"
	FieldContactPreference = "contact_preference"
)

// KnownFields lists every field in the fixed column order used by tabular stores.
var KnownFields = []string{
	FieldDestination,
	FieldBudget,
	FieldTravelDates,
	FieldNumTravelers,
	FieldDepartureCity,
	FieldSelectedOffer,
	FieldFullName,
	FieldEmail,
	FieldPhone,
	FieldPaymentMethod,
	FieldRequiresCallback,
	FieldCallbackRequested,
	FieldContactPreference,
}

// Record accumulates the answers collected in one conversation.
// Fields are write-once; only the contact preference may be replaced.
type Record struct {
	values map[string]string
	order  []string
}

// NewRecord returns an empty record.
func NewRecord() *Record {
	return &Record{values: make(map[string]string)}
}

// Set stores value under key unless the key was already written.
// It reports whether the value was stored.
func (r *Record) Set(key, value string) bool {
	if key == "" {
		return false
	}
	if _, exists := r.values[key]; exists {
		return false
	}
	r.values[key] = value
	r.order = append(r.order, key)
	return true
}

// Override writes the contact preference even if it was already set.
// Any other key is refused.
func (r *Record) Override(key, value string) bool {
	if key != FieldContactPreference {
		return false
	}
	if _, exists := r.values[key]; !exists {
		r.order = append(r.order, key)
	}
	r.values[key] = value
	return true
}

// Get returns the value stored under key.
func (r *Record) Get(key string) (string, bool) {
	v, ok := r.values[key]
	return v, ok
}

// Len returns the number of collected fields.
func (r *Record) Len() int {
	return len(r.values)
}

// Keys returns field names in the order they were first written.
func (r *Record) Keys() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Fields returns a copy of the collected values.
func (r *Record) Fields() map[string]string {
	out := make(map[string]string, len(r.values))
	for k, v := range r.values {
		out[k] = v
	}
	return out
}
