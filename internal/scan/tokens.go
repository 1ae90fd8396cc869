package scan

// DefaultTokenBudget is the context budget assumed when the caller does not
// supply one.
const DefaultTokenBudget = 4000

// Budget verdict values.
const (
	BudgetUnder = "under budget"
	BudgetNear  = "near budget"
	BudgetOver  = "over budget"
)

// EstimateTokens approximates the token count of text using the len/4
// heuristic — fast O(1), no tokenizer dependency.
func EstimateTokens(text string) int {
	return len(text) / 4
}

// BudgetVerdict classifies an estimate against a budget. Estimates at 80%
// of the budget or above count as near.
func BudgetVerdict(tokens, budget int) string {
	if budget <= 0 {
		budget = DefaultTokenBudget
	}
	switch {
	case tokens > budget:
		return BudgetOver
	case tokens*10 >= budget*8:
		return BudgetNear
	default:
		return BudgetUnder
	}
}
