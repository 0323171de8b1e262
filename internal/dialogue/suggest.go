package dialogue

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"travel-intake-agent/internal/catalog"
	"travel-intake-agent/internal/domain"
)

// maxSuggestions caps how many deals are read out at once.
const maxSuggestions = 3

// destinationSuggestion asks for a budget and reads out the deals within it.
// Without a usable number the budget is recorded as the sentinel and the
// caller is asked for a destination directly.
func (c *Controller) destinationSuggestion(ctx context.Context, s *Session) Signal {
	resp := c.ask(ctx, promptBudget)
	amount, ok := catalog.ParseBudget(resp.Text)
	if !ok {
		s.Record.Set(domain.FieldBudget, domain.Sentinel)
		c.storeDestination(s, c.ask(ctx, promptNoBudget))
		return SignalNext
	}

	s.budget, s.hasBudget = amount, true
	s.Record.Set(domain.FieldBudget, strconv.Itoa(amount))

	deals := c.catalog.WithinBudget(amount)
	if len(deals) == 0 {
		c.storeDestination(s, c.ask(ctx, fmt.Sprintf(promptNoDealsUnderBudget, catalog.FormatPrice(amount))))
		return SignalNext
	}
	c.speaker.Speak(ctx, fmt.Sprintf(promptSuggestions, catalog.FormatPrice(amount), listDeals(deals)))
	c.storeDestination(s, c.ask(ctx, promptChooseDestination))
	return SignalNext
}

// listDeals renders up to maxSuggestions deals as "Bali for $1,200, Cancun
// for $900 and Lisbon for $750".
func listDeals(deals []domain.Deal) string {
	if len(deals) > maxSuggestions {
		deals = deals[:maxSuggestions]
	}
	parts := make([]string, 0, len(deals))
	for _, d := range deals {
		parts = append(parts, d.Destination+" for "+catalog.FormatPrice(d.Price))
	}
	if len(parts) == 1 {
		return parts[0]
	}
	return strings.Join(parts[:len(parts)-1], ", ") + " and " + parts[len(parts)-1]
}
