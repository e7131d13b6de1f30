// internal/domain/account.go
package domain

import (
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal" // For precise monetary calculations
)

// AccountDefinition is the raw seed form of an account, before username derivation.
type AccountDefinition struct {
	Owner        string            `db:"owner" json:"owner"`                 // Full display name
	Movements    []decimal.Decimal `db:"-" json:"movements"`                 // Signed amounts, oldest first
	InterestRate decimal.Decimal   `db:"interest_rate" json:"interest_rate"` // Percentage, e.g. 1.2
	PIN          int               `db:"pin" json:"-"`                       // Plain numeric credential
}

// Account represents a ledger account.
type Account struct {
	Owner        string            `json:"owner"`
	Username     string            `json:"username"`      // Derived from Owner, unique in the ledger
	Movements    []decimal.Decimal `json:"movements"`     // Deposits positive, withdrawals negative
	InterestRate decimal.Decimal   `json:"interest_rate"` // Percentage applied to qualifying deposits
	PIN          int               `json:"-"`
}

// NewAccount creates an Account from its definition and derives the username.
// The movement slice is copied so the definition can be reused.
func NewAccount(def AccountDefinition) *Account {
	return &Account{
		Owner:        def.Owner,
		Username:     DeriveUsername(def.Owner),
		Movements:    cloneMovements(def.Movements),
		InterestRate: def.InterestRate,
		PIN:          def.PIN,
	}
}

// DeriveUsername concatenates the lowercase first letter of every space-separated word.
// "Jessica Davis" becomes "jd".
func DeriveUsername(owner string) string {
	var b strings.Builder
	for _, word := range strings.Split(strings.ToLower(owner), " ") {
		if word == "" {
			continue
		}
		r, _ := utf8.DecodeRuneInString(word)
		b.WriteRune(r)
	}
	return b.String()
}

// FirstName returns the first word of the owner name.
func (a *Account) FirstName() string {
	first, _, _ := strings.Cut(strings.TrimSpace(a.Owner), " ")
	return first
}

// Balance is the sum of all movements, computed on every call.
func (a *Account) Balance() decimal.Decimal {
	return Balance(a.Movements)
}

// PINMatches compares the stored PIN with pin by plain equality.
func (a *Account) PINMatches(pin int) bool {
	return a.PIN == pin
}

// Clone returns a deep copy that shares no movement storage with a.
func (a *Account) Clone() *Account {
	cp := *a
	cp.Movements = cloneMovements(a.Movements)
	return &cp
}

func cloneMovements(in []decimal.Decimal) []decimal.Decimal {
	out := make([]decimal.Decimal, len(in))
	copy(out, in)
	return out
}
