// package calcsys performs calculations and keeps a history of them in a database.
package calcsys

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/jmoiron/sqlx"
	"go.brendoncarroll.net/stdctx/logctx"
	"go.uber.org/zap"

	"bincalc.org/bincalc"
	"bincalc.org/bincalc/binval"
	"bincalc.org/bincalc/calcsys/internal/dbutil"
)

const (
	DefaultCacheSize    = 256
	DefaultHistoryLimit = 1000
	DefaultPruneEvery   = time.Minute
)

// Calculation is a single application of an operator to two operands.
type Calculation struct {
	ID        bincalc.CID  `json:"id"`
	Op        binval.Op    `json:"op"`
	Left      binval.Value `json:"left"`
	Right     binval.Value `json:"right"`
	Result    binval.Value `json:"result"`
	CreatedAt time.Time    `json:"created_at"`
}

type calcRow struct {
	CID       bincalc.CID `db:"cid"`
	Op        string      `db:"op"`
	Left      string      `db:"lhs"`
	Right     string      `db:"rhs"`
	Result    string      `db:"result"`
	CreatedAt time.Time   `db:"created_at"`
}

func (r calcRow) toCalc() Calculation {
	return Calculation{
		ID:        r.CID,
		Op:        binval.Op(r.Op),
		Left:      binval.Parse(r.Left),
		Right:     binval.Parse(r.Right),
		Result:    binval.Parse(r.Result),
		CreatedAt: r.CreatedAt,
	}
}

type Option func(*System)

// WithCacheSize sets the number of results kept in memory.
// Sizes less than 1 leave the default in place.
func WithCacheSize(n int) Option {
	return func(s *System) {
		if n > 0 {
			s.cacheSize = n
		}
	}
}

// WithHistoryLimit sets the number of calculations Run keeps in the history.
// Limits less than 1 leave the default in place.
func WithHistoryLimit(n int) Option {
	return func(s *System) {
		if n > 0 {
			s.historyLimit = n
		}
	}
}

// WithPruneEvery sets how often Run prunes the history.
func WithPruneEvery(d time.Duration) Option {
	return func(s *System) {
		if d > 0 {
			s.pruneEvery = d
		}
	}
}

// A System is a single database of calculations.
// It is safe for concurrent use.
type System struct {
	db           *sqlx.DB
	cacheSize    int
	historyLimit int
	pruneEvery   time.Duration
	cache        *lru.Cache[bincalc.CID, binval.Value]
}

func NewSystem(db *sqlx.DB, opts ...Option) *System {
	s := &System{
		db:           db,
		cacheSize:    DefaultCacheSize,
		historyLimit: DefaultHistoryLimit,
		pruneEvery:   DefaultPruneEvery,
	}
	for _, opt := range opts {
		opt(s)
	}
	cache, err := lru.New[bincalc.CID, binval.Value](s.cacheSize)
	if err != nil {
		panic(err)
	}
	s.cache = cache
	return s
}

// Compute applies op to a and b, and records the calculation.
// op must be valid, see binval.ParseOp.
func (s *System) Compute(ctx context.Context, op binval.Op, a, b binval.Value) (*Calculation, error) {
	id := bincalc.CalcID(op, a, b)
	result, cached := s.cache.Get(id)
	if !cached {
		result = binval.Compute(op, a, b)
		s.cache.Add(id, result)
	}
	logctx.Info(ctx, "computed",
		zap.String("op", op.Name()),
		zap.Int("lhs_bits", a.Len()),
		zap.Int("rhs_bits", b.Len()),
		zap.Bool("cached", cached),
	)
	row, err := dbutil.DoTx1(ctx, s.db, func(tx *sqlx.Tx) (calcRow, error) {
		if _, err := tx.ExecContext(ctx, `INSERT INTO calculations (cid, op, lhs, rhs, result)
			VALUES (?, ?, ?, ?, ?) ON CONFLICT DO NOTHING`,
			id, op.String(), a.String(), b.String(), result.String()); err != nil {
			return calcRow{}, err
		}
		return getRow(ctx, tx, id)
	})
	if err != nil {
		return nil, fmt.Errorf("recording calculation: %w", err)
	}
	calc := row.toCalc()
	return &calc, nil
}

// Get returns the calculation with the given ID.
func (s *System) Get(ctx context.Context, id bincalc.CID) (*Calculation, error) {
	row, err := getRow(ctx, s.db, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCalcNotFound{ID: id}
		}
		return nil, err
	}
	calc := row.toCalc()
	return &calc, nil
}

// Recent returns at most n calculations, newest first.
func (s *System) Recent(ctx context.Context, n int) ([]Calculation, error) {
	if n < 0 {
		return nil, fmt.Errorf("calcsys: negative history count %d", n)
	}
	var rows []calcRow
	if err := s.db.SelectContext(ctx, &rows, `SELECT cid, op, lhs, rhs, result, created_at
		FROM calculations ORDER BY seq DESC LIMIT ?`, n); err != nil {
		return nil, err
	}
	ret := make([]Calculation, len(rows))
	for i, row := range rows {
		ret[i] = row.toCalc()
	}
	return ret, nil
}

// Count returns the number of calculations in the history.
func (s *System) Count(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.GetContext(ctx, &n, `SELECT count(*) FROM calculations`)
	return n, err
}

// Clear deletes the history. Cached results are kept.
func (s *System) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM calculations`)
	if err == nil {
		logctx.Infof(ctx, "cleared calculation history")
	}
	return err
}

// Prune deletes all but the newest keep calculations, and returns the number deleted.
func (s *System) Prune(ctx context.Context, keep int) (int64, error) {
	if keep < 0 {
		return 0, fmt.Errorf("calcsys: negative history count %d", keep)
	}
	res, err := s.db.ExecContext(ctx, `DELETE FROM calculations WHERE seq NOT IN (
		SELECT seq FROM calculations ORDER BY seq DESC LIMIT ?
	)`, keep)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Run prunes the history down to the configured limit until ctx is cancelled.
func (s *System) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.pruneEvery)
	defer ticker.Stop()
	for {
		n, err := s.Prune(ctx, s.historyLimit)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("pruning history: %w", err)
		}
		if n > 0 {
			logctx.Info(ctx, "pruned history", zap.Int64("deleted", n), zap.Int("kept", s.historyLimit))
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func getRow(ctx context.Context, q sqlx.QueryerContext, id bincalc.CID) (calcRow, error) {
	var row calcRow
	err := sqlx.GetContext(ctx, q, &row, `SELECT cid, op, lhs, rhs, result, created_at
		FROM calculations WHERE cid = ?`, id)
	return row, err
}
