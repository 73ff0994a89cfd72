// Package file implements the ledger repository on top of a single JSON
// snapshot file. The whole ledger lives in memory behind one mutex; a
// repository transaction holds the mutex from Begin to Commit/Rollback
// and rewrites the file on commit, so every committed mutation is
// persisted exactly once and cross-account transfers are never observed
// half-applied.
package file

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/thara/minibank/internal/domain"
	"github.com/thara/minibank/internal/usecase"
)

// FirstAccountNumber is where auto-assigned account numbers start.
const FirstAccountNumber = 1001

var (
	errInvalidTx = errors.New("transaction does not belong to this store")
	errTxDone    = errors.New("transaction already finished")
)

// Options configures opening a ledger store.
type Options struct {
	// Path is the snapshot file; created on first commit if absent.
	Path string

	// Hasher re-hashes legacy plaintext passwords found at load time.
	Hasher usecase.PasswordHasher

	// DefaultAdmin is used when the file is missing or its admin field
	// cannot be parsed. PasswordHash must already be hashed.
	DefaultAdmin domain.AdminCredential

	// StrictLoad aborts on a malformed file instead of falling back to
	// default state field by field.
	StrictLoad bool

	Logger zerolog.Logger
}

// state is the complete in-memory ledger.
type state struct {
	accounts   map[string]*domain.Account
	order      []string
	nextNumber int64
	admin      domain.AdminCredential
}

func (s state) clone() state {
	c := state{
		accounts:   make(map[string]*domain.Account, len(s.accounts)),
		order:      append([]string(nil), s.order...),
		nextNumber: s.nextNumber,
		admin:      s.admin,
	}
	for number, acc := range s.accounts {
		c.accounts[number] = acc.Clone()
	}
	return c
}

// Store is a file-backed usecase.LedgerRepository.
type Store struct {
	mu     sync.Mutex
	path   string
	logger zerolog.Logger
	state  state
}

// Open loads the ledger from opts.Path, or starts fresh when the file
// does not exist. Legacy plaintext passwords are re-hashed in place and
// the upgraded snapshot is written back.
func Open(opts Options) (*Store, error) {
	defaults := snapshot{
		Accounts:          map[string]accountRecord{},
		NextAccountNumber: FirstAccountNumber,
		AdminAccount: adminRecord{
			Username: opts.DefaultAdmin.Username,
			Password: opts.DefaultAdmin.PasswordHash,
		},
	}

	snap, err := readSnapshot(opts.Path, defaults, opts.StrictLoad, opts.Logger)
	if err != nil {
		return nil, err
	}

	st, migrated, err := stateFromSnapshot(snap, opts)
	if err != nil {
		return nil, err
	}

	store := &Store{
		path:   opts.Path,
		logger: opts.Logger,
		state:  st,
	}

	if migrated {
		opts.Logger.Info().Msg("re-hashed legacy plaintext passwords")
		if err := writeSnapshot(store.path, snapshotFromState(store.state)); err != nil {
			opts.Logger.Warn().Err(err).Msg("could not persist re-hashed credentials, will retry on next commit")
		}
	}

	return store, nil
}

func stateFromSnapshot(snap snapshot, opts Options) (state, bool, error) {
	st := state{
		accounts:   make(map[string]*domain.Account, len(snap.Accounts)),
		nextNumber: snap.NextAccountNumber,
	}

	migrated := false

	adminHash := snap.AdminAccount.Password
	if !looksHashed(adminHash) {
		hash, err := opts.Hasher.Hash(adminHash)
		if err != nil {
			return state{}, false, err
		}
		adminHash = hash
		migrated = true
	}
	st.admin = domain.AdminCredential{
		Username:     snap.AdminAccount.Username,
		PasswordHash: adminHash,
	}

	for number, rec := range snap.Accounts {
		account, accMigrated, err := accountFromRecord(number, rec, opts.Hasher)
		if err != nil {
			if opts.StrictLoad {
				return state{}, false, err
			}
			opts.Logger.Warn().Err(err).Str("account", number).Msg("skipping unparseable account")
			continue
		}
		migrated = migrated || accMigrated
		st.accounts[number] = account
		st.order = append(st.order, number)
	}

	// Creation order equals numeric order: numbers are assigned
	// monotonically and never reused.
	sort.Slice(st.order, func(i, j int) bool {
		a, _ := strconv.ParseInt(st.order[i], 10, 64)
		b, _ := strconv.ParseInt(st.order[j], 10, 64)
		return a < b
	})

	// The counter must stay ahead of every assigned number even if the
	// file was edited by hand.
	for _, number := range st.order {
		if n, err := strconv.ParseInt(number, 10, 64); err == nil && n >= st.nextNumber {
			st.nextNumber = n + 1
		}
	}
	if st.nextNumber < FirstAccountNumber {
		st.nextNumber = FirstAccountNumber
	}

	return st, migrated, nil
}

func accountFromRecord(number string, rec accountRecord, hasher usecase.PasswordHasher) (*domain.Account, bool, error) {
	account := &domain.Account{
		Number:  number,
		Name:    rec.Name,
		Balance: rec.Balance,
	}

	migrated := false
	hash := rec.Password
	if !looksHashed(hash) {
		var err error
		hash, err = hasher.Hash(hash)
		if err != nil {
			return nil, false, err
		}
		migrated = true
	}
	account.PasswordHash = hash

	account.Transactions = make([]domain.Transaction, 0, len(rec.Transactions))
	for _, tr := range rec.Transactions {
		txn, err := tr.toDomain()
		if err != nil {
			return nil, false, err
		}
		account.Transactions = append(account.Transactions, txn)
	}

	return account, migrated, nil
}

func snapshotFromState(st state) snapshot {
	snap := snapshot{
		Accounts:          make(map[string]accountRecord, len(st.accounts)),
		NextAccountNumber: st.nextNumber,
		AdminAccount: adminRecord{
			Username: st.admin.Username,
			Password: st.admin.PasswordHash,
		},
	}
	for number, acc := range st.accounts {
		rec := accountRecord{
			Name:         acc.Name,
			Password:     acc.PasswordHash,
			Balance:      acc.Balance,
			Transactions: make([]transactionRecord, 0, len(acc.Transactions)),
		}
		for _, txn := range acc.Transactions {
			rec.Transactions = append(rec.Transactions, recordFromTransaction(txn))
		}
		snap.Accounts[number] = rec
	}
	return snap
}

// looksHashed reports whether a stored password is already a bcrypt hash.
func looksHashed(password string) bool {
	return strings.HasPrefix(password, "$2a$") ||
		strings.HasPrefix(password, "$2b$") ||
		strings.HasPrefix(password, "$2y$")
}

// ledgerTx holds the store mutex for the duration of one mutating
// operation. Commit persists the snapshot; on save failure the in-memory
// state is rolled back so the caller never sees an unpersisted mutation.
type ledgerTx struct {
	store  *Store
	backup state
	done   bool
}

func (t *ledgerTx) Commit(ctx context.Context) error {
	if t.done {
		return errTxDone
	}
	defer func() {
		t.done = true
		t.store.mu.Unlock()
	}()

	if err := writeSnapshot(t.store.path, snapshotFromState(t.store.state)); err != nil {
		t.store.state = t.backup
		return err
	}
	return nil
}

func (t *ledgerTx) Rollback(ctx context.Context) error {
	if t.done {
		return nil
	}
	t.store.state = t.backup
	t.done = true
	t.store.mu.Unlock()
	return nil
}

// Begin starts an exclusive critical section over the whole ledger.
func (s *Store) Begin(ctx context.Context) (usecase.Transaction, error) {
	s.mu.Lock()
	return &ledgerTx{store: s, backup: s.state.clone()}, nil
}

func (s *Store) tx(t usecase.Transaction) (*ledgerTx, error) {
	lt, ok := t.(*ledgerTx)
	if !ok || lt.store != s {
		return nil, errInvalidTx
	}
	if lt.done {
		return nil, errTxDone
	}
	return lt, nil
}

// CreateAccount assigns the next sequential account number and stores
// the account under it.
func (s *Store) CreateAccount(ctx context.Context, t usecase.Transaction, account *domain.Account) (string, error) {
	if _, err := s.tx(t); err != nil {
		return "", err
	}

	number := strconv.FormatInt(s.state.nextNumber, 10)
	s.state.nextNumber++

	account.Number = number
	s.state.accounts[number] = account.Clone()
	s.state.order = append(s.state.order, number)

	return number, nil
}

// GetAccount returns a copy of the account outside any transaction.
func (s *Store) GetAccount(ctx context.Context, number string) (*domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getAccountLocked(number)
}

// GetAccountForUpdate returns a copy of the account inside a transaction.
func (s *Store) GetAccountForUpdate(ctx context.Context, t usecase.Transaction, number string) (*domain.Account, error) {
	if _, err := s.tx(t); err != nil {
		return nil, err
	}
	return s.getAccountLocked(number)
}

func (s *Store) getAccountLocked(number string) (*domain.Account, error) {
	account, ok := s.state.accounts[number]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	return account.Clone(), nil
}

// UpdateBalance replaces the account balance.
func (s *Store) UpdateBalance(ctx context.Context, t usecase.Transaction, number string, balance decimal.Decimal) error {
	if _, err := s.tx(t); err != nil {
		return err
	}
	account, ok := s.state.accounts[number]
	if !ok {
		return domain.ErrAccountNotFound
	}
	account.Balance = balance
	return nil
}

// AppendTransaction appends one record to the account's history.
func (s *Store) AppendTransaction(ctx context.Context, t usecase.Transaction, number string, txn domain.Transaction) error {
	if _, err := s.tx(t); err != nil {
		return err
	}
	account, ok := s.state.accounts[number]
	if !ok {
		return domain.ErrAccountNotFound
	}
	account.Transactions = append(account.Transactions, txn)
	return nil
}

// ListAccounts returns copies of all accounts in creation order.
func (s *Store) ListAccounts(ctx context.Context) ([]*domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	accounts := make([]*domain.Account, 0, len(s.state.order))
	for _, number := range s.state.order {
		accounts = append(accounts, s.state.accounts[number].Clone())
	}
	return accounts, nil
}

// AdminCredential returns the stored admin credential.
func (s *Store) AdminCredential(ctx context.Context) (domain.AdminCredential, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.admin, nil
}

// UpdateAdminPassword replaces the admin password hash.
func (s *Store) UpdateAdminPassword(ctx context.Context, t usecase.Transaction, passwordHash string) error {
	if _, err := s.tx(t); err != nil {
		return err
	}
	s.state.admin.PasswordHash = passwordHash
	return nil
}
