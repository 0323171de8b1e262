package dialogue

import "travel-intake-agent/internal/domain"

// question pairs a record field with the prompt that collects it.
type question struct {
	field  string
	prompt string
}

var detailQuestions = []question{
	{domain.FieldTravelDates, "When are you planning to travel?"},
	{domain.FieldNumTravelers, "How many people will be traveling?"},
	{domain.FieldDepartureCity, "Which city will you be departing from?"},
}

var bookingQuestions = []question{
	{domain.FieldFullName, "Wonderful! To reserve it, may I have your full name?"},
	{domain.FieldEmail, "What email address should we send the confirmation to?"},
	{domain.FieldPhone, "And the best phone number to reach you?"},
	{domain.FieldPaymentMethod, "How would you like to pay, by card or bank transfer?"},
}

const (
	promptIntroduction = "Hi, this is Ava from Horizon Travel. We have some great holiday deals this season. " +
		"Are you interested in planning a trip?"
	promptTravelInquiry      = "Fantastic! Where would you like to travel? If you're not sure yet, just say so."
	promptBudget             = "No problem, I can suggest something. What's your budget per person, in dollars?"
	promptNoBudget           = "That's fine. Which destination would you like to explore?"
	promptChooseDestination  = "Which of these destinations interests you most?"
	promptNoDealsUnderBudget = "I don't have packages under %s right now, but we may find something close. " +
		"Which destination would you like to explore?"
	promptSuggestions      = "With a budget of %s, I'd suggest %s."
	promptOffer            = "Great news! I have %s. Would you like to book this package?"
	promptAlternative      = "I understand. How about %s instead? Would that work for you?"
	promptNoAlternative    = "I understand. I don't have another package to suggest right now."
	promptExpertCallback   = "Would you like one of our travel experts to call you to finalize everything?"
	promptBetterTime       = "No problem. Would you like us to call you back at a better time?"
	promptOtherQuestions   = "Before we wrap up, do you have any other questions about your trip?"
	promptClosing          = "Thank you for choosing Horizon Travel. Have a wonderful day!"
	promptContactFallback  = "No worries. How would you prefer we contact you with future offers, by phone, email or text?"
	promptFallbackThankYou = "Thanks, we'll be in touch. Goodbye!"

	completionInstructions = "You are a customer service representative of a travel agency on a phone call. " +
		"Reply concisely and casually, in at most two spoken sentences, to the caller's question."
)
