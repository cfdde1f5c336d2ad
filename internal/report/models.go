// Package report implements the financial aggregation engine: pure,
// deterministic functions that turn a ledger snapshot and a selected month
// into dashboard summaries, budget classifications, projected balances and
// chart-ready series. The engine performs no I/O and keeps no state between
// invocations.
package report

// Display fallbacks applied when a foreign key cannot be resolved. Records
// with unresolvable references are never dropped from totals.
const (
	UnknownCategoryName = "Categoria desconhecida"
	UnknownAccountName  = "Conta não encontrada"

	// Chart contexts label unresolved and uncategorized spending "Outros";
	// the tail of the top-N collapse is "Outras".
	ChartFallbackName     = "Outros"
	CollapsedCategoryName = "Outras"

	// Goal contributions fold into a synthetic expense category.
	GoalsCategoryName = "Metas"

	FallbackColor = "#94a3b8"
	GoalsColor    = "#8b5cf6"
)

// topCategories is how many breakdown entries survive before the remainder
// collapses into a single "Outras" bucket.
const topCategories = 4

// BudgetStatus classifies a budget's actual-vs-target relationship.
type BudgetStatus string

const (
	StatusGood     BudgetStatus = "good"
	StatusWarning  BudgetStatus = "warning"
	StatusExceeded BudgetStatus = "exceeded"
	StatusUnder    BudgetStatus = "under"
)

// DashboardSummary is the top-level view model for the dashboard. Monetary
// fields are currency units; progress and rate fields are percentages and
// always finite.
type DashboardSummary struct {
	TotalBalance    float64 `json:"totalBalance"`
	TotalIncome     float64 `json:"totalIncome"`
	TotalExpense    float64 `json:"totalExpense"`
	IncomeTarget    float64 `json:"incomeTarget"`
	BudgetLimit     float64 `json:"budgetLimit"`
	IncomeProgress  float64 `json:"incomeProgress"`
	ExpenseProgress float64 `json:"expenseProgress"`
	SavingsRate     float64 `json:"savingsRate"`
}

// BudgetSummary aggregates all budgets of each type for the budget page.
type BudgetSummary struct {
	TotalBudgetedExpense     float64 `json:"totalBudgetedExpense"`
	TotalSpentExpense        float64 `json:"totalSpentExpense"`
	TotalBudgetedIncome      float64 `json:"totalBudgetedIncome"`
	TotalReceivedIncome      float64 `json:"totalReceivedIncome"`
	PercentageUsedExpense    float64 `json:"percentageUsedExpense"`
	PercentageReceivedIncome float64 `json:"percentageReceivedIncome"`
	CategoriesWithBudget     int     `json:"categoriesWithBudget"`
	CategoriesOverBudget     int     `json:"categoriesOverBudget"`
	CategoriesUnderBudget    int     `json:"categoriesUnderBudget"`
}

// ProcessedBudget is one budget enriched with its resolved category and the
// period's actual-vs-budgeted assessment.
type ProcessedBudget struct {
	ID            string       `json:"id"`
	CategoryID    string       `json:"categoryId"`
	CategoryName  string       `json:"categoryName"`
	CategoryColor string       `json:"categoryColor"`
	Type          string       `json:"type"`
	Amount        float64      `json:"amount"`
	Actual        float64      `json:"actual"`
	Percentage    float64      `json:"percentage"`
	Remaining     float64      `json:"remaining"`
	Status        BudgetStatus `json:"status"`
	Description   string       `json:"description,omitempty"`
}

// DailyPoint is one day of the zero-filled month series.
type DailyPoint struct {
	Day     int     `json:"day"`
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
	Balance float64 `json:"balance"`
}

// CategorySlice is one entry of the top-N expense breakdown.
type CategorySlice struct {
	Name       string  `json:"name"`
	Value      float64 `json:"value"`
	Color      string  `json:"color"`
	Percentage float64 `json:"percentage"`
}

// ChartData bundles both chart outputs for one period.
type ChartData struct {
	DailySeries       []DailyPoint    `json:"dailySeries"`
	CategoryBreakdown []CategorySlice `json:"categoryBreakdown"`
}

// AccountBalances maps account id to its projected balance in currency units.
type AccountBalances map[string]float64

// BudgetPage is the budget-page view model.
type BudgetPage struct {
	Summary BudgetSummary     `json:"summary"`
	Budgets []ProcessedBudget `json:"budgets"`
}

// MonthReport is the full derived view for one month, as archived by the
// report worker.
type MonthReport struct {
	Year    int              `json:"year"`
	Month   int              `json:"month"`
	Summary DashboardSummary `json:"summary"`
	Budgets BudgetPage       `json:"budgets"`
	Charts  ChartData        `json:"charts"`
}

// ratio returns a*100/b as a percentage, defined as 0 when b is zero so view
// models never carry NaN or Inf.
func ratio(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	return a / b * 100
}
