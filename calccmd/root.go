// package calccmd implements the bincalc command line tool.
package calccmd

import (
	"context"
	"fmt"
	"net"
	"strconv"

	"github.com/jmoiron/sqlx"
	"go.brendoncarroll.net/star"
	"go.brendoncarroll.net/stdctx/logctx"
	"go.uber.org/zap"

	"bincalc.org/bincalc/calcsys"
)

func Root() star.Command {
	return root
}

var root = star.NewDir(star.Metadata{
	Short: "Binary Calculator",
}, map[star.Symbol]star.Command{
	"serve":   serve,
	"compute": compute,
	"history": history,
	"clear":   clearCmd,
	"status":  status,
})

var status = star.Command{
	Metadata: star.Metadata{
		Short: "check the database and report the size of the history",
	},
	Flags: []star.IParam{DBParam},
	F: func(c star.Context) error {
		c.Printf("STATUS\n")
		db := DBParam.Load(c)
		defer db.Close()
		if err := db.Ping(); err != nil {
			return err
		}
		n, err := calcsys.NewSystem(db).Count(c)
		if err != nil {
			return err
		}
		c.Printf("CALCULATIONS: %d\n", n)
		return nil
	},
}

var DBParam = star.Param[*sqlx.DB]{
	Name:    "db",
	Default: star.Ptr(":memory:"),
	Parse: func(x string) (*sqlx.DB, error) {
		db, err := calcsys.OpenDB(x)
		if err != nil {
			return nil, err
		}
		if err := calcsys.SetupDB(context.Background(), db); err != nil {
			return nil, err
		}
		return db, nil
	},
}

var ListenerParam = star.Param[net.Listener]{
	Name:    "l",
	Default: star.Ptr("127.0.0.1:6666"),
	Parse: func(x string) (net.Listener, error) {
		return net.Listen("tcp", x)
	},
}

var cacheSizeParam = star.Param[int]{
	Name:    "cache",
	Default: star.Ptr(strconv.Itoa(calcsys.DefaultCacheSize)),
	Parse:   parsePositive,
}

// parsePositive parses a decimal integer which must be at least 1.
func parsePositive(x string) (int, error) {
	n, err := strconv.Atoi(x)
	if err != nil {
		return 0, err
	}
	if n < 1 {
		return 0, fmt.Errorf("%d must be at least 1", n)
	}
	return n, nil
}

// parseCount parses a decimal integer which must not be negative.
func parseCount(x string) (int, error) {
	n, err := strconv.Atoi(x)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("%d must not be negative", n)
	}
	return n, nil
}

// withLogger returns a context carrying a production logger.
func withLogger(ctx context.Context) (context.Context, func()) {
	l, err := zap.NewProduction()
	if err != nil {
		l = zap.NewNop()
	}
	return logctx.NewContext(ctx, l), func() { l.Sync() }
}
