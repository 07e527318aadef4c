package calccmd

import (
	"context"
	"strconv"

	"go.brendoncarroll.net/star"
	"golang.org/x/sync/errgroup"

	"bincalc.org/bincalc/calcsys"
	"bincalc.org/bincalc/calcsys/calcui"
)

var serve = star.Command{
	Metadata: star.Metadata{
		Short: "serve the calculator's HTTP UI, pruning the history in the background",
	},
	Flags: []star.IParam{DBParam, ListenerParam, cacheSizeParam, historyLimitParam},
	F: func(c star.Context) error {
		ctx, flush := withLogger(c.Context)
		defer flush()
		db := DBParam.Load(c)
		defer db.Close()
		sys := calcsys.NewSystem(db,
			calcsys.WithCacheSize(cacheSizeParam.Load(c)),
			calcsys.WithHistoryLimit(historyLimitParam.Load(c)),
		)
		lis := ListenerParam.Load(c)

		ctx, cf := context.WithCancel(ctx)
		defer cf()
		eg, ctx := errgroup.WithContext(ctx)
		eg.Go(func() error { return sys.Run(ctx) })
		eg.Go(func() error {
			// stop pruning once the UI is no longer served.
			defer cf()
			return calcui.Serve(ctx, lis, sys)
		})
		return eg.Wait()
	},
}

var historyLimitParam = star.Param[int]{
	Name:    "keep",
	Default: star.Ptr(strconv.Itoa(calcsys.DefaultHistoryLimit)),
	Parse:   parsePositive,
}
