// internal/api/api_integration_test.go
package api_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	app "fintrack/internal"
)

// testApp is the global application instance for testing.
var testApp *app.Application

// testServer is the httptest server.
var testServer *httptest.Server

// TestMain is the special entry point for Go tests, executed once before all tests.
func TestMain(m *testing.M) {
	// 1. Set up environment variables (ensure DB_NAME points to the test database).
	// In a real CI/CD environment, these variables would be provided by the CI system.
	setupEnvVars()

	// 2. Initialize the application (runs migrations against the test database).
	testApp = app.NewApplication()
	if err := testApp.Initialize(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize test application: %v\n", err)
		os.Exit(1)
	}

	// 3. Start an httptest server to test the HTTP handling layer.
	testServer = httptest.NewServer(testApp.HTTPHandler)
	defer testServer.Close()

	// 4. Run all tests.
	code := m.Run()

	// 5. Shut down application resources after tests (e.g., database connections).
	if err := testApp.Shutdown(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to shutdown test application: %v\n", err)
		os.Exit(1)
	}

	os.Exit(code)
}

// setupEnvVars helper function: sets or checks database environment variables required for testing.
func setupEnvVars() {
	if os.Getenv("SERVER_PORT") == "" {
		os.Setenv("SERVER_PORT", "8080")
	}
	if os.Getenv("DB_HOST") == "" {
		os.Setenv("DB_HOST", "localhost")
	}
	if os.Getenv("DB_PORT") == "" {
		os.Setenv("DB_PORT", "5432")
	}
	if os.Getenv("DB_USER") == "" {
		os.Setenv("DB_USER", "user")
	}
	if os.Getenv("DB_PASSWORD") == "" {
		os.Setenv("DB_PASSWORD", "password")
	}
	if os.Getenv("DB_NAME") == "" {
		os.Setenv("DB_NAME", "fintrackdb_test") // Ensure this is your test database name
	}
	if os.Getenv("DB_SSLMODE") == "" {
		os.Setenv("DB_SSLMODE", "disable")
	}
}

// clearDatabase helper function: truncates all relevant tables to ensure a clean database state for each test case.
func clearDatabase(t *testing.T) {
	tables := []string{"transactions", "month_history", "year_history", "categories", "user_settings"}
	for _, table := range tables {
		_, err := testApp.DB.Exec(fmt.Sprintf("TRUNCATE TABLE %s CASCADE;", table))
		require.NoError(t, err, "Failed to truncate table %s", table)
	}
}

// makeRequest helper function: sends an HTTP request to the test server on behalf of a user.
func makeRequest(t *testing.T, userID, method, path string, body io.Reader) (*http.Response, string) {
	req, err := http.NewRequest(method, testServer.URL+path, body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)

	respBody, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	return resp, string(respBody)
}

// createTestCategory helper function: creates a category through the API.
func createTestCategory(t *testing.T, userID, name, icon, catType string) {
	body := fmt.Sprintf(`{"name": %q, "icon": %q, "type": %q}`, name, icon, catType)
	resp, respBody := makeRequest(t, userID, "POST", "/categories", strings.NewReader(body))
	require.Equal(t, http.StatusCreated, resp.StatusCode, "category create failed: %s", respBody)
}

// createTestTransaction helper function: creates a transaction through the API and returns its id.
func createTestTransaction(t *testing.T, userID, amount, category, date, txType string) string {
	body := fmt.Sprintf(`{"amount": %q, "category": %q, "date": %q, "type": %q}`, amount, category, date, txType)
	resp, respBody := makeRequest(t, userID, "POST", "/transactions", strings.NewReader(body))
	require.Equal(t, http.StatusCreated, resp.StatusCode, "transaction create failed: %s", respBody)

	var responseMap map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(respBody), &responseMap))
	return responseMap["transaction_id"].(string)
}

// rollupRow mirrors the income/expense pair of a rollup bucket.
type rollupRow struct {
	Income  decimal.Decimal `db:"income"`
	Expense decimal.Decimal `db:"expense"`
}

// getMonthRollup reads one month_history row straight from the test database.
func getMonthRollup(t *testing.T, userID string, year, month int) (rollupRow, bool) {
	var row rollupRow
	err := testApp.DB.Get(&row,
		"SELECT income, expense FROM month_history WHERE user_id = $1 AND year = $2 AND month = $3",
		userID, year, month)
	if err != nil {
		return rollupRow{}, false
	}
	return row, true
}

// getYearRollup reads one year_history row straight from the test database.
func getYearRollup(t *testing.T, userID string, year int) (rollupRow, bool) {
	var row rollupRow
	err := testApp.DB.Get(&row,
		"SELECT income, expense FROM year_history WHERE user_id = $1 AND year = $2",
		userID, year)
	if err != nil {
		return rollupRow{}, false
	}
	return row, true
}

func assertRollup(t *testing.T, row rollupRow, income, expense string) {
	t.Helper()
	wantIncome, err := decimal.NewFromString(income)
	require.NoError(t, err)
	wantExpense, err := decimal.NewFromString(expense)
	require.NoError(t, err)
	assert.True(t, wantIncome.Equal(row.Income), "income: want %s, got %s", wantIncome, row.Income)
	assert.True(t, wantExpense.Equal(row.Expense), "expense: want %s, got %s", wantExpense, row.Expense)
}

// TestCreateTransactionIntegration covers the create path: ledger row plus
// both rollup buckets, written atomically.
func TestCreateTransactionIntegration(t *testing.T) {
	clearDatabase(t)
	userID := "user_create"
	createTestCategory(t, userID, "Salario", "💰", "income")

	t.Run("SuccessfulCreate", func(t *testing.T) {
		createTestTransaction(t, userID, "100", "Salario", "2024-03-15", "income")

		// March is month 2 in 0-based bucket coordinates.
		month, ok := getMonthRollup(t, userID, 2024, 2)
		require.True(t, ok, "month rollup row should exist")
		assertRollup(t, month, "100", "0")

		year, ok := getYearRollup(t, userID, 2024)
		require.True(t, ok, "year rollup row should exist")
		assertRollup(t, year, "100", "0")
	})

	t.Run("InvalidAmount", func(t *testing.T) {
		body := `{"amount": "-10", "category": "Salario", "date": "2024-03-15", "type": "income"}`
		resp, respBody := makeRequest(t, userID, "POST", "/transactions", strings.NewReader(body))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Contains(t, respBody, "amount must be positive")
	})

	t.Run("UnknownCategory", func(t *testing.T) {
		body := `{"amount": "50", "category": "NoExiste", "date": "2024-03-15", "type": "expense"}`
		resp, respBody := makeRequest(t, userID, "POST", "/transactions", strings.NewReader(body))

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Contains(t, respBody, "Category not found")

		// Nothing was written: the March bucket still holds only the first transaction.
		month, ok := getMonthRollup(t, userID, 2024, 2)
		require.True(t, ok)
		assertRollup(t, month, "100", "0")
	})

	t.Run("MissingIdentity", func(t *testing.T) {
		body := `{"amount": "50", "category": "Salario", "date": "2024-03-15", "type": "income"}`
		resp, _ := makeRequest(t, "", "POST", "/transactions", strings.NewReader(body))

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

// TestDeleteTransactionIntegration covers the inverse law: creating then
// deleting a transaction restores both rollups to their pre-creation values.
func TestDeleteTransactionIntegration(t *testing.T) {
	clearDatabase(t)
	userID := "user_delete"
	createTestCategory(t, userID, "Salario", "💰", "income")

	transactionID := createTestTransaction(t, userID, "100", "Salario", "2024-03-15", "income")

	t.Run("SuccessfulDelete", func(t *testing.T) {
		resp, _ := makeRequest(t, userID, "DELETE", "/transactions/"+transactionID, nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		// The bucket rows remain but are back to zero.
		month, ok := getMonthRollup(t, userID, 2024, 2)
		require.True(t, ok, "zeroed month rollup row should remain")
		assertRollup(t, month, "0", "0")

		year, ok := getYearRollup(t, userID, 2024)
		require.True(t, ok, "zeroed year rollup row should remain")
		assertRollup(t, year, "0", "0")
	})

	t.Run("DeleteTwice", func(t *testing.T) {
		resp, respBody := makeRequest(t, userID, "DELETE", "/transactions/"+transactionID, nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Contains(t, respBody, "Transaction not found")
	})
}

// TestOwnershipIsolation checks that a foreign transaction id behaves exactly
// like a missing one and that no rollup of either user changes.
func TestOwnershipIsolation(t *testing.T) {
	clearDatabase(t)
	owner := "user_owner"
	intruder := "user_intruder"
	createTestCategory(t, owner, "Salario", "💰", "income")

	transactionID := createTestTransaction(t, owner, "100", "Salario", "2024-03-15", "income")

	resp, respBody := makeRequest(t, intruder, "DELETE", "/transactions/"+transactionID, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, respBody, "Transaction not found")

	// Owner's rollup is untouched; the intruder never got one.
	month, ok := getMonthRollup(t, owner, 2024, 2)
	require.True(t, ok)
	assertRollup(t, month, "100", "0")

	_, ok = getMonthRollup(t, intruder, 2024, 2)
	assert.False(t, ok, "intruder should have no rollup row")
}

// TestMixedTypesIntegration mirrors the mixed-type scenario: income 100 and
// expense 40 in the same month.
func TestMixedTypesIntegration(t *testing.T) {
	clearDatabase(t)
	userID := "user_mixed"
	createTestCategory(t, userID, "Salario", "💰", "income")
	createTestCategory(t, userID, "Comida", "🍕", "expense")

	createTestTransaction(t, userID, "100", "Salario", "2024-03-15", "income")
	createTestTransaction(t, userID, "40", "Comida", "2024-03-20", "expense")

	month, ok := getMonthRollup(t, userID, 2024, 2)
	require.True(t, ok)
	assertRollup(t, month, "100", "40")

	// The balance endpoint reports the same totals; balance itself is
	// computed by the caller as income - expense = 60.
	resp, body := makeRequest(t, userID, "GET", "/stats/balance?from=2024-03-01&to=2024-03-31", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var stats struct {
		Income  decimal.Decimal `json:"income"`
		Expense decimal.Decimal `json:"expense"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &stats))
	assert.True(t, stats.Income.Equal(decimal.NewFromInt(100)))
	assert.True(t, stats.Expense.Equal(decimal.NewFromInt(40)))
}

// TestCategorySnapshotIntegration checks that transactions keep the category
// name/icon captured at creation time even after the category row changes.
func TestCategorySnapshotIntegration(t *testing.T) {
	clearDatabase(t)
	userID := "user_snapshot"
	createTestCategory(t, userID, "Salario", "💰", "income")

	createTestTransaction(t, userID, "100", "Salario", "2024-03-15", "income")

	// Replace the category with a different icon.
	resp, _ := makeRequest(t, userID, "DELETE", "/categories/Salario", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	createTestCategory(t, userID, "Salario", "💵", "income")

	resp, body := makeRequest(t, userID, "GET", "/transactions?from=2024-03-01&to=2024-03-31", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var list struct {
		Data []struct {
			Category     string `json:"category"`
			CategoryIcon string `json:"category_icon"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &list))
	require.Len(t, list.Data, 1)
	assert.Equal(t, "Salario", list.Data[0].Category)
	assert.Equal(t, "💰", list.Data[0].CategoryIcon, "icon must be the creation-time snapshot")
}

// TestHistoryEndpointsIntegration covers the periods and chart data reads.
func TestHistoryEndpointsIntegration(t *testing.T) {
	clearDatabase(t)
	userID := "user_history"
	createTestCategory(t, userID, "Salario", "💰", "income")

	createTestTransaction(t, userID, "100", "Salario", "2024-03-15", "income")
	createTestTransaction(t, userID, "50", "Salario", "2023-07-01", "income")

	t.Run("Periods", func(t *testing.T) {
		resp, body := makeRequest(t, userID, "GET", "/history/periods", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var periods struct {
			Data []int `json:"data"`
		}
		require.NoError(t, json.Unmarshal([]byte(body), &periods))
		assert.Equal(t, []int{2023, 2024}, periods.Data)
	})

	t.Run("YearTimeframe", func(t *testing.T) {
		resp, body := makeRequest(t, userID, "GET", "/history/data?timeframe=year&year=2024", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var data struct {
			Data []struct {
				Month  int             `json:"month"`
				Income decimal.Decimal `json:"income"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal([]byte(body), &data))
		require.Len(t, data.Data, 12)
		assert.True(t, data.Data[2].Income.Equal(decimal.NewFromInt(100)))
		assert.True(t, data.Data[0].Income.IsZero())
	})

	t.Run("MonthTimeframe", func(t *testing.T) {
		resp, body := makeRequest(t, userID, "GET", "/history/data?timeframe=month&year=2024&month=2", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var data struct {
			Data []struct {
				Day    *int            `json:"day"`
				Income decimal.Decimal `json:"income"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal([]byte(body), &data))
		require.Len(t, data.Data, 31) // March has 31 days
		require.NotNil(t, data.Data[14].Day)
		assert.True(t, data.Data[14].Income.Equal(decimal.NewFromInt(100)))
	})
}

// TestSettingsIntegration covers default creation and currency updates.
func TestSettingsIntegration(t *testing.T) {
	clearDatabase(t)
	userID := "user_settings"

	t.Run("DefaultsOnFirstAccess", func(t *testing.T) {
		resp, body := makeRequest(t, userID, "GET", "/settings", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, body, `"currency":"USD"`)
	})

	t.Run("UpdateCurrency", func(t *testing.T) {
		resp, body := makeRequest(t, userID, "PUT", "/settings/currency", strings.NewReader(`{"currency": "EUR"}`))
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, body, `"currency":"EUR"`)
	})

	t.Run("UnsupportedCurrency", func(t *testing.T) {
		resp, body := makeRequest(t, userID, "PUT", "/settings/currency", strings.NewReader(`{"currency": "XXX"}`))
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Contains(t, body, "Unsupported currency")
	})
}
