package calcsys

import (
	"testing"

	"github.com/stretchr/testify/require"

	"bincalc.org/bincalc/calcsys/internal/dbutil"
	"bincalc.org/bincalc/internal/testutil"
)

func NewTestSys(t testing.TB, opts ...Option) *System {
	ctx := testutil.Context(t)
	db := dbutil.NewTestDB(t)
	require.NoError(t, SetupDB(ctx, db))
	return NewSystem(db, opts...)
}
