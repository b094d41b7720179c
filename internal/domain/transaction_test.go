// internal/domain/transaction_test.go
package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestUTCDate(t *testing.T) {
	// Late evening in a west-of-UTC zone is already the next UTC day.
	loc := time.FixedZone("UTC-5", -5*60*60)
	local := time.Date(2024, time.March, 14, 22, 45, 12, 0, loc)

	got := UTCDate(local)

	assert.Equal(t, time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC), got)
	assert.Equal(t, time.UTC, got.Location())
	assert.Equal(t, 0, got.Hour())
}

func TestTransactionBucket(t *testing.T) {
	cases := []struct {
		date      time.Time
		wantYear  int
		wantMonth int
	}{
		{time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), 2024, 0},
		{time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC), 2024, 2},
		{time.Date(2023, time.December, 31, 0, 0, 0, 0, time.UTC), 2023, 11},
	}

	for _, tc := range cases {
		tx := &Transaction{Date: tc.date}
		year, month := tx.Bucket()
		assert.Equal(t, tc.wantYear, year)
		assert.Equal(t, tc.wantMonth, month, "month must be 0-based for %s", tc.date)
	}
}

func TestNewTransaction(t *testing.T) {
	amount := decimal.NewFromInt(100)
	date := time.Date(2024, time.March, 15, 17, 30, 0, 0, time.UTC)

	tx := NewTransaction("user_1", amount, date, "", TransactionTypeIncome, "Salario", "💰")

	assert.NotEmpty(t, tx.ID)
	assert.Equal(t, time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC), tx.Date)
	assert.Equal(t, "", tx.Description)
	assert.Equal(t, "Salario", tx.Category)
	assert.Equal(t, "💰", tx.CategoryIcon)

	// Two transactions never share an id.
	other := NewTransaction("user_1", amount, date, "", TransactionTypeIncome, "Salario", "💰")
	assert.NotEqual(t, tx.ID, other.ID)
}

func TestDeltaFor(t *testing.T) {
	amount := decimal.NewFromInt(75)

	income := DeltaFor(TransactionTypeIncome, amount)
	assert.True(t, income.Income.Equal(amount))
	assert.True(t, income.Expense.IsZero())

	expense := DeltaFor(TransactionTypeExpense, amount)
	assert.True(t, expense.Income.IsZero())
	assert.True(t, expense.Expense.Equal(amount))
}

func TestTransactionTypeValid(t *testing.T) {
	assert.True(t, TransactionTypeIncome.Valid())
	assert.True(t, TransactionTypeExpense.Valid())
	assert.False(t, TransactionType("transfer").Valid())
	assert.False(t, TransactionType("").Valid())
}
