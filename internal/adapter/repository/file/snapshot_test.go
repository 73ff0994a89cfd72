package file

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thara/minibank/internal/domain"
)

func TestTransactionRecord_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		data string
		want transactionRecord
	}{
		{
			name: "object form",
			data: `{"id":"txn-1","kind":"deposit","amount":"50.25","timestamp":"2024-01-15T10:30:00Z","description":"payday"}`,
			want: transactionRecord{
				ID:          "txn-1",
				Kind:        "deposit",
				Amount:      decimal.RequireFromString("50.25"),
				Timestamp:   "2024-01-15T10:30:00Z",
				Description: "payday",
			},
		},
		{
			name: "legacy two-field tuple",
			data: `["Initial deposit", 500]`,
			want: transactionRecord{
				Kind:   "Initial deposit",
				Amount: decimal.NewFromInt(500),
			},
		},
		{
			name: "legacy four-field tuple",
			data: `["Deposit", 100.5, "2024-01-15 10:30:00", "payday"]`,
			want: transactionRecord{
				Kind:        "Deposit",
				Amount:      decimal.RequireFromString("100.5"),
				Timestamp:   "2024-01-15 10:30:00",
				Description: "payday",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var rec transactionRecord
			require.NoError(t, json.Unmarshal([]byte(tt.data), &rec))
			assert.Equal(t, tt.want.ID, rec.ID)
			assert.Equal(t, tt.want.Kind, rec.Kind)
			assert.True(t, tt.want.Amount.Equal(rec.Amount), "amount %s != %s", tt.want.Amount, rec.Amount)
			assert.Equal(t, tt.want.Timestamp, rec.Timestamp)
			assert.Equal(t, tt.want.Description, rec.Description)
		})
	}

	t.Run("tuple with wrong arity", func(t *testing.T) {
		var rec transactionRecord
		err := json.Unmarshal([]byte(`["Deposit", 100, "extra"]`), &rec)
		require.Error(t, err)
	})
}

func TestTransactionRecord_ToDomain(t *testing.T) {
	t.Run("legacy kind labels normalize", func(t *testing.T) {
		labels := map[string]domain.TransactionKind{
			"Initial deposit":   domain.KindInitialDeposit,
			"Deposit":           domain.KindDeposit,
			"Withdrawal":        domain.KindWithdrawal,
			"Transfer Sent":     domain.KindTransferSent,
			"Transfer Received": domain.KindTransferReceived,
			"Interest Added":    domain.KindInterestAdded,
		}
		for label, want := range labels {
			rec := transactionRecord{Kind: label, Amount: decimal.NewFromInt(1)}
			txn, err := rec.toDomain()
			require.NoError(t, err, "label %q", label)
			assert.Equal(t, want, txn.Kind)
		}
	})

	t.Run("canonical kinds pass through", func(t *testing.T) {
		rec := transactionRecord{Kind: "transfer_sent", Amount: decimal.NewFromInt(1)}
		txn, err := rec.toDomain()
		require.NoError(t, err)
		assert.Equal(t, domain.KindTransferSent, txn.Kind)
	})

	t.Run("unknown kind rejected", func(t *testing.T) {
		rec := transactionRecord{Kind: "bogus", Amount: decimal.NewFromInt(1)}
		_, err := rec.toDomain()
		require.Error(t, err)
	})

	t.Run("legacy timestamp layout", func(t *testing.T) {
		rec := transactionRecord{
			Kind:      "Deposit",
			Amount:    decimal.NewFromInt(1),
			Timestamp: "2024-01-15 10:30:00",
		}
		txn, err := rec.toDomain()
		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC), txn.Timestamp)
	})

	t.Run("missing timestamp stays zero", func(t *testing.T) {
		rec := transactionRecord{Kind: "initial_deposit", Amount: decimal.NewFromInt(500)}
		txn, err := rec.toDomain()
		require.NoError(t, err)
		assert.True(t, txn.Timestamp.IsZero())
	})

	t.Run("bad timestamp rejected", func(t *testing.T) {
		rec := transactionRecord{Kind: "deposit", Amount: decimal.NewFromInt(1), Timestamp: "yesterday"}
		_, err := rec.toDomain()
		require.Error(t, err)
	})
}

func TestRecordFromTransaction(t *testing.T) {
	ts := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
	rec := recordFromTransaction(domain.Transaction{
		ID:          "txn-1",
		Kind:        domain.KindWithdrawal,
		Amount:      decimal.NewFromInt(40),
		Timestamp:   ts,
		Description: "rent",
	})
	assert.Equal(t, "withdrawal", rec.Kind)
	assert.Equal(t, ts.Format(time.RFC3339Nano), rec.Timestamp)

	// Initial deposits carry no timestamp on disk either.
	rec = recordFromTransaction(domain.Transaction{
		Kind:   domain.KindInitialDeposit,
		Amount: decimal.NewFromInt(500),
	})
	assert.Empty(t, rec.Timestamp)
}

func TestReadSnapshot(t *testing.T) {
	defaults := snapshot{
		Accounts:          map[string]accountRecord{},
		NextAccountNumber: FirstAccountNumber,
		AdminAccount:      adminRecord{Username: "admin", Password: "$2a$10$defaulthash"},
	}
	logger := zerolog.Nop()

	writeFile := func(t *testing.T, content string) string {
		t.Helper()
		path := filepath.Join(t.TempDir(), "accounts_data.json")
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		return path
	}

	t.Run("missing file yields defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nope.json")
		snap, err := readSnapshot(path, defaults, false, logger)
		require.NoError(t, err)
		assert.Equal(t, defaults, snap)
	})

	t.Run("well-formed file", func(t *testing.T) {
		path := writeFile(t, `{
			"accounts": {"1001": {"name": "Alice", "password": "$2a$10$h", "balance": "100", "transactions": []}},
			"next_account_number": 1002,
			"admin_account": {"username": "admin", "password": "$2a$10$a"}
		}`)
		snap, err := readSnapshot(path, defaults, false, logger)
		require.NoError(t, err)
		assert.Len(t, snap.Accounts, 1)
		assert.Equal(t, int64(1002), snap.NextAccountNumber)
		assert.Equal(t, "admin", snap.AdminAccount.Username)
	})

	t.Run("malformed field falls back per field", func(t *testing.T) {
		path := writeFile(t, `{
			"accounts": "not an object",
			"next_account_number": 1050,
			"admin_account": {"username": "admin", "password": "$2a$10$a"}
		}`)
		snap, err := readSnapshot(path, defaults, false, logger)
		require.NoError(t, err)
		assert.Empty(t, snap.Accounts)
		assert.Equal(t, int64(1050), snap.NextAccountNumber)
		assert.Equal(t, "$2a$10$a", snap.AdminAccount.Password)
	})

	t.Run("unparseable file falls back to defaults", func(t *testing.T) {
		path := writeFile(t, `this is not json`)
		snap, err := readSnapshot(path, defaults, false, logger)
		require.NoError(t, err)
		assert.Equal(t, defaults, snap)
	})

	t.Run("strict mode fails on malformed file", func(t *testing.T) {
		path := writeFile(t, `this is not json`)
		_, err := readSnapshot(path, defaults, true, logger)
		require.ErrorIs(t, err, domain.ErrPersistence)
	})

	t.Run("strict mode fails on malformed field", func(t *testing.T) {
		path := writeFile(t, `{"accounts": "not an object"}`)
		_, err := readSnapshot(path, defaults, true, logger)
		require.ErrorIs(t, err, domain.ErrPersistence)
	})
}

func TestWriteSnapshot(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "accounts_data.json")
		snap := snapshot{
			Accounts: map[string]accountRecord{
				"1001": {
					Name:     "Alice",
					Password: "$2a$10$h",
					Balance:  decimal.NewFromInt(100),
					Transactions: []transactionRecord{
						{Kind: "initial_deposit", Amount: decimal.NewFromInt(100)},
					},
				},
			},
			NextAccountNumber: 1002,
			AdminAccount:      adminRecord{Username: "admin", Password: "$2a$10$a"},
		}

		require.NoError(t, writeSnapshot(path, snap))

		got, err := readSnapshot(path, snapshot{}, true, zerolog.Nop())
		require.NoError(t, err)
		assert.Equal(t, snap.NextAccountNumber, got.NextAccountNumber)
		assert.Equal(t, snap.AdminAccount, got.AdminAccount)
		require.Len(t, got.Accounts, 1)
		assert.Equal(t, "Alice", got.Accounts["1001"].Name)

		// No stray temp files left behind.
		entries, err := os.ReadDir(filepath.Dir(path))
		require.NoError(t, err)
		assert.Len(t, entries, 1)
	})

	t.Run("unwritable directory", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "missing", "accounts_data.json")
		err := writeSnapshot(path, snapshot{Accounts: map[string]accountRecord{}})
		require.ErrorIs(t, err, domain.ErrPersistence)
	})
}
