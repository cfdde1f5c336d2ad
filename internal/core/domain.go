package core

import (
	"encoding/json"
	"errors"
	"strings"
	"time"
)

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

const (
	BudgetExpense BudgetType = "expense"
	BudgetIncome  BudgetType = "income"
	BudgetGoal    BudgetType = "goal"
)

const (
	AccountChecking   AccountType = "checking"
	AccountSavings    AccountType = "savings"
	AccountCredit     AccountType = "credit"
	AccountCash       AccountType = "cash"
	AccountInvestment AccountType = "investment"
)

type (
	TransactionType string
	BudgetType      string
	AccountType     string

	Date struct {
		time.Time
	}

	Money struct {
		Cents int64
	}

	Transaction struct {
		ID          string          `json:"id"`
		Date        Date            `json:"date"`
		Amount      Money           `json:"amount"`
		Type        TransactionType `json:"type"`
		CategoryID  string          `json:"categoryId,omitempty"` // empty for uncategorized; may hold a legacy category name
		AccountID   string          `json:"accountId"`
		Description string          `json:"description,omitempty"`
	}

	Account struct {
		ID      string      `json:"id"`
		Name    string      `json:"name"`
		Type    AccountType `json:"type"`
		Balance Money       `json:"balance"` // seed balance recorded at last known state
	}

	Category struct {
		ID    string          `json:"id"`
		Name  string          `json:"name"`
		Color string          `json:"color,omitempty"`
		Type  TransactionType `json:"type,omitempty"` // empty means the category applies to both types
	}

	Budget struct {
		ID          string     `json:"id"`
		CategoryID  string     `json:"categoryId"`
		Amount      Money      `json:"amount"`
		Type        BudgetType `json:"type"`
		Period      string     `json:"period,omitempty"` // only "monthly" is supported
		Description string     `json:"description,omitempty"`
	}

	Contribution struct {
		ID        string `json:"id"`
		GoalID    string `json:"goalId"`
		AccountID string `json:"accountId"`
		Amount    Money  `json:"amount"`
		Date      Date   `json:"date"`
		Notes     string `json:"notes,omitempty"`
	}

	// Snapshot bundles the five collections the aggregation engine consumes.
	// The engine treats it as immutable; ownership stays with the store that
	// produced it.
	Snapshot struct {
		Transactions  []Transaction  `json:"transactions"`
		Accounts      []Account      `json:"accounts"`
		Categories    []Category     `json:"categories"`
		Budgets       []Budget       `json:"budgets"`
		Contributions []Contribution `json:"contributions"`
	}
)

var (
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrInvalidDate      = errors.New("invalid date")
	ErrInvalidPeriod    = errors.New("invalid period")
	ErrInvalidType      = errors.New("invalid type")
	ErrEmptyName        = errors.New("empty name")
	ErrEmptyAccountID   = errors.New("empty account id")
	ErrEmptyCategoryID  = errors.New("empty category id")
	ErrEmptyGoalID      = errors.New("empty goal id")
	ErrEmptyDescription = errors.New("empty description")
)

// ParseDate parses a YYYY-MM-DD date string. The zero Date represents a
// malformed or absent date and never matches any period.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t}, nil
}

// NewDate creates a Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format("2006-01-02")
}

// MarshalJSON emits the date as a YYYY-MM-DD string, or "" for the zero Date.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON reads a YYYY-MM-DD string. Malformed or absent dates decode
// to the zero Date instead of failing the surrounding decode.
func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		*d = Date{}
		return nil
	}
	*d = parsed
	return nil
}

func (t TransactionType) Valid() bool {
	return t == Income || t == Expense
}

func (t BudgetType) Valid() bool {
	return t == BudgetExpense || t == BudgetIncome || t == BudgetGoal
}

func (t Transaction) Validate() error {
	if t.Date.IsZero() {
		return ErrInvalidDate
	}
	if !t.Type.Valid() {
		return ErrInvalidType
	}
	if t.Amount.Cents < 0 {
		return ErrInvalidAmount
	}
	if strings.TrimSpace(t.AccountID) == "" {
		return ErrEmptyAccountID
	}
	if len(t.Description) > 200 {
		return errors.New("description too long (max 200 characters)")
	}
	return nil
}

func (a Account) Validate() error {
	if strings.TrimSpace(a.Name) == "" {
		return ErrEmptyName
	}
	return nil
}

func (c Category) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyName
	}
	if c.Type != "" && !c.Type.Valid() {
		return ErrInvalidType
	}
	return nil
}

func (b Budget) Validate() error {
	if strings.TrimSpace(b.CategoryID) == "" {
		return ErrEmptyCategoryID
	}
	if !b.Type.Valid() {
		return ErrInvalidType
	}
	if b.Amount.Cents < 0 {
		return ErrInvalidAmount
	}
	if b.Period != "" && b.Period != "monthly" {
		return errors.New("unsupported budget period: " + b.Period)
	}
	return nil
}

func (c Contribution) Validate() error {
	if strings.TrimSpace(c.GoalID) == "" {
		return ErrEmptyGoalID
	}
	if strings.TrimSpace(c.AccountID) == "" {
		return ErrEmptyAccountID
	}
	if c.Date.IsZero() {
		return ErrInvalidDate
	}
	if c.Amount.Cents < 0 {
		return ErrInvalidAmount
	}
	return nil
}
