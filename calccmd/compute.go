package calccmd

import (
	"go.brendoncarroll.net/star"

	"bincalc.org/bincalc/binval"
	"bincalc.org/bincalc/calcsys"
)

var compute = star.Command{
	Metadata: star.Metadata{
		Short: "compute a binary expression and record it in the history",
	},
	Flags: []star.IParam{DBParam},
	Pos:   []star.IParam{lhsParam, opParam, rhsParam},
	F: func(c star.Context) error {
		ctx, flush := withLogger(c.Context)
		defer flush()
		db := DBParam.Load(c)
		defer db.Close()
		sys := calcsys.NewSystem(db)
		calc, err := sys.Compute(ctx, opParam.Load(c), lhsParam.Load(c), rhsParam.Load(c))
		if err != nil {
			return err
		}
		c.Printf("%v\n", calc.Result)
		return nil
	},
}

var history = star.Command{
	Metadata: star.Metadata{
		Short: "list recent calculations",
	},
	Flags: []star.IParam{DBParam, countParam},
	F: func(c star.Context) error {
		db := DBParam.Load(c)
		defer db.Close()
		sys := calcsys.NewSystem(db)
		calcs, err := sys.Recent(c, countParam.Load(c))
		if err != nil {
			return err
		}
		c.Printf("%-43s %s\n", "ID", "CALCULATION")
		for _, x := range calcs {
			c.Printf("%v %v %v %v = %v\n", x.ID, x.Left, x.Op, x.Right, x.Result)
		}
		return nil
	},
}

var clearCmd = star.Command{
	Metadata: star.Metadata{
		Short: "delete the calculation history",
	},
	Flags: []star.IParam{DBParam},
	F: func(c star.Context) error {
		ctx, flush := withLogger(c.Context)
		defer flush()
		db := DBParam.Load(c)
		defer db.Close()
		return calcsys.NewSystem(db).Clear(ctx)
	},
}

// operands on the command line are parsed strictly.
var (
	lhsParam = star.Param[binval.Value]{Name: "a", Parse: binval.ParseStrict}
	rhsParam = star.Param[binval.Value]{Name: "b", Parse: binval.ParseStrict}
	opParam  = star.Param[binval.Op]{Name: "op", Parse: binval.ParseOp}
)

var countParam = star.Param[int]{
	Name:    "n",
	Default: star.Ptr("10"),
	Parse:   parseCount,
}
