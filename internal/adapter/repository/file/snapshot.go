package file

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/thara/minibank/internal/domain"
)

// legacyTimeLayout is the timestamp format older snapshot files use.
const legacyTimeLayout = "2006-01-02 15:04:05"

// snapshot is the on-disk encoding of the whole ledger:
//
//	{"accounts": {...}, "next_account_number": N, "admin_account": {...}}
type snapshot struct {
	Accounts          map[string]accountRecord `json:"accounts"`
	NextAccountNumber int64                    `json:"next_account_number"`
	AdminAccount      adminRecord              `json:"admin_account"`
}

type accountRecord struct {
	Name         string              `json:"name"`
	Password     string              `json:"password"`
	Balance      decimal.Decimal     `json:"balance"`
	Transactions []transactionRecord `json:"transactions"`
}

type adminRecord struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// transactionRecord encodes as a tagged object. The decoder also accepts
// the two legacy tuple shapes, [kind, amount] and
// [kind, amount, timestamp, description], normalizing both into the
// object form with absent fields left at their zero values.
type transactionRecord struct {
	ID          string          `json:"id,omitempty"`
	Kind        string          `json:"kind"`
	Amount      decimal.Decimal `json:"amount"`
	Timestamp   string          `json:"timestamp,omitempty"`
	Description string          `json:"description,omitempty"`
}

// legacyKinds maps the human-readable labels older snapshots carry onto
// the canonical kind values.
var legacyKinds = map[string]domain.TransactionKind{
	"Initial deposit":   domain.KindInitialDeposit,
	"Deposit":           domain.KindDeposit,
	"Withdrawal":        domain.KindWithdrawal,
	"Transfer Sent":     domain.KindTransferSent,
	"Transfer Received": domain.KindTransferReceived,
	"Interest Added":    domain.KindInterestAdded,
}

func normalizeKind(raw string) (domain.TransactionKind, error) {
	if kind, ok := legacyKinds[raw]; ok {
		return kind, nil
	}
	kind := domain.TransactionKind(raw)
	if !kind.IsValid() {
		return "", fmt.Errorf("unknown transaction kind %q", raw)
	}
	return kind, nil
}

func (r *transactionRecord) UnmarshalJSON(data []byte) error {
	// Tuple form first: a leading '[' cannot start the object form.
	if len(data) > 0 && data[0] == '[' {
		var tuple []json.RawMessage
		if err := json.Unmarshal(data, &tuple); err != nil {
			return err
		}
		if len(tuple) != 2 && len(tuple) != 4 {
			return fmt.Errorf("transaction tuple has %d fields, want 2 or 4", len(tuple))
		}
		if err := json.Unmarshal(tuple[0], &r.Kind); err != nil {
			return err
		}
		if err := json.Unmarshal(tuple[1], &r.Amount); err != nil {
			return err
		}
		if len(tuple) == 4 {
			if err := json.Unmarshal(tuple[2], &r.Timestamp); err != nil {
				return err
			}
			if err := json.Unmarshal(tuple[3], &r.Description); err != nil {
				return err
			}
		}
		return nil
	}

	type plain transactionRecord
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*r = transactionRecord(p)
	return nil
}

func (r transactionRecord) toDomain() (domain.Transaction, error) {
	kind, err := normalizeKind(r.Kind)
	if err != nil {
		return domain.Transaction{}, err
	}

	txn := domain.Transaction{
		ID:          r.ID,
		Kind:        kind,
		Amount:      r.Amount,
		Description: r.Description,
	}

	if r.Timestamp != "" {
		ts, err := time.Parse(time.RFC3339Nano, r.Timestamp)
		if err != nil {
			ts, err = time.Parse(legacyTimeLayout, r.Timestamp)
			if err != nil {
				return domain.Transaction{}, fmt.Errorf("bad transaction timestamp %q", r.Timestamp)
			}
		}
		txn.Timestamp = ts.UTC()
	}

	return txn, nil
}

func recordFromTransaction(txn domain.Transaction) transactionRecord {
	r := transactionRecord{
		ID:          txn.ID,
		Kind:        string(txn.Kind),
		Amount:      txn.Amount,
		Description: txn.Description,
	}
	if !txn.Timestamp.IsZero() {
		r.Timestamp = txn.Timestamp.UTC().Format(time.RFC3339Nano)
	}
	return r
}

// readSnapshot loads and decodes the ledger file. A missing file yields
// the defaults. A malformed file yields the defaults for each field that
// failed to parse, with a warning, unless strict mode is on, in which
// case the parse error is returned.
func readSnapshot(path string, defaults snapshot, strict bool, logger zerolog.Logger) (snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return defaults, nil
		}
		return snapshot{}, fmt.Errorf("%w: read %s: %v", domain.ErrPersistence, path, err)
	}

	if strict {
		var snap snapshot
		if err := json.Unmarshal(data, &snap); err != nil {
			return snapshot{}, fmt.Errorf("%w: parse %s: %v", domain.ErrPersistence, path, err)
		}
		if snap.Accounts == nil {
			snap.Accounts = defaults.Accounts
		}
		if snap.NextAccountNumber == 0 {
			snap.NextAccountNumber = defaults.NextAccountNumber
		}
		if snap.AdminAccount == (adminRecord{}) {
			snap.AdminAccount = defaults.AdminAccount
		}
		return snap, nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		logger.Warn().Err(err).Str("path", path).Msg("ledger file is malformed, starting from defaults")
		return defaults, nil
	}

	snap := defaults

	if raw, ok := fields["accounts"]; ok {
		var accounts map[string]accountRecord
		if err := json.Unmarshal(raw, &accounts); err != nil {
			logger.Warn().Err(err).Msg("accounts field is malformed, falling back to empty")
		} else {
			snap.Accounts = accounts
		}
	}
	if raw, ok := fields["next_account_number"]; ok {
		var next int64
		if err := json.Unmarshal(raw, &next); err != nil {
			logger.Warn().Err(err).Msg("next_account_number field is malformed, falling back to default")
		} else {
			snap.NextAccountNumber = next
		}
	}
	if raw, ok := fields["admin_account"]; ok {
		var admin adminRecord
		if err := json.Unmarshal(raw, &admin); err != nil || admin.Username == "" {
			logger.Warn().Err(err).Msg("admin_account field is malformed, falling back to default credential")
		} else {
			snap.AdminAccount = admin
		}
	}

	return snap, nil
}

// writeSnapshot replaces the ledger file atomically: the snapshot is
// written to a temp file in the same directory and renamed over the
// target, so a crash mid-write never corrupts the previous state.
func writeSnapshot(path string, snap snapshot) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp")
	if err != nil {
		return fmt.Errorf("%w: create temp file: %v", domain.ErrPersistence, err)
	}
	tmpName := tmp.Name()

	enc := json.NewEncoder(tmp)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snap); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: encode snapshot: %v", domain.ErrPersistence, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: close temp file: %v", domain.ErrPersistence, err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: replace %s: %v", domain.ErrPersistence, path, err)
	}
	return nil
}
