// package calcui serves the calculator's HTML form and JSON API.
package calcui

import (
	"context"
	"embed"
	"errors"
	"net"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/html/v2"
	"go.brendoncarroll.net/exp/slices2"
	"go.brendoncarroll.net/stdctx/logctx"
	"go.uber.org/zap"

	"bincalc.org/bincalc/binval"
	"bincalc.org/bincalc/calcsys"
	"bincalc.org/bincalc/internal/cid"
)

const (
	historySize    = 10
	maxHistorySize = 1000
)

func Serve(ctx context.Context, l net.Listener, sys *calcsys.System) error {
	return New(sys).Serve(ctx, l)
}

// devPath is the path to the views from the directory the application is run.
// when it is empty the embeded views are used.
var devPath = "" // "./calcsys/calcui"

type Server struct {
	sys   *calcsys.System
	app   *fiber.App
	bgCtx context.Context
}

func New(sys *calcsys.System) *Server {
	s := &Server{sys: sys, bgCtx: context.Background()}

	var renderer *html.Engine
	if devPath != "" {
		renderer = html.New(devPath, ".html")
		renderer.Reload(true)
	} else {
		renderer = html.NewFileSystem(http.FS(viewFS), ".html")
	}
	renderer.AddFunc("opName", func(op binval.Op) string {
		return op.Name()
	})
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		Views:                 renderer,
		ErrorHandler:          s.handleError,
	})
	// views
	app.Get("/", s.calculator)
	app.Post("/", s.postCalc)

	v1 := app.Group("/v1")
	v1.Get("/compute", s.compute)
	v1.Get("/history", s.history)
	v1.Get("/calc/:cid", s.calc)
	s.app = app
	return s
}

// Serve blocks, serving HTTP on l until ctx is cancelled or l is closed.
func (s *Server) Serve(ctx context.Context, l net.Listener) error {
	s.bgCtx = ctx
	logctx.Infof(ctx, "serving on %v", l.Addr())
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			if err := s.app.Shutdown(); err != nil {
				logctx.Error(ctx, "shutting down", zap.Error(err))
			}
		case <-stop:
		}
	}()
	return s.app.Listener(l)
}

type calculatorPage struct {
	Operand1        string
	Operand1Focused bool
	Operand2        string
	Ops             []binval.Op
	Error           string
	History         []historyEntry
}

type resultPage struct {
	Operand1 string
	Operator string
	Operand2 string
	Result   string
	ID       string
}

type historyEntry struct {
	ID     string
	Left   string
	Op     binval.Op
	Right  string
	Result string
}

func (s *Server) calculator(c *fiber.Ctx) error {
	operand1 := c.Query("operand1")
	return s.renderCalculator(c, calculatorPage{
		Operand1:        operand1,
		Operand1Focused: operand1 != "",
	})
}

func (s *Server) renderCalculator(c *fiber.Ctx, page calculatorPage) error {
	recent, err := s.sys.Recent(s.bgCtx, historySize)
	if err != nil {
		return err
	}
	page.Ops = binval.Ops
	page.History = slices2.Map(recent, func(x calcsys.Calculation) historyEntry {
		return historyEntry{
			ID:     x.ID.String(),
			Left:   x.Left.String(),
			Op:     x.Op,
			Right:  x.Right.String(),
			Result: x.Result.String(),
		}
	})
	return c.Render("view/calculator", page, "view/layout")
}

func (s *Server) postCalc(c *fiber.Ctx) error {
	ctx := s.bgCtx
	operand1 := c.FormValue("operand1")
	operator := c.FormValue("operator")
	operand2 := c.FormValue("operand2")
	op, err := binval.ParseOp(operator)
	if err != nil {
		logctx.Info(ctx, "rejected operator", zap.String("operator", operator))
		c.Status(fiber.StatusBadRequest)
		return s.renderCalculator(c, calculatorPage{
			Operand1:        operand1,
			Operand1Focused: operand1 != "",
			Operand2:        operand2,
			Error:           err.Error(),
		})
	}
	calc, err := s.sys.Compute(ctx, op, binval.Parse(operand1), binval.Parse(operand2))
	if err != nil {
		return err
	}
	return c.Render("view/result", resultPage{
		Operand1: operand1,
		Operator: operator,
		Operand2: operand2,
		Result:   calc.Result.String(),
		ID:       calc.ID.String(),
	}, "view/layout")
}

// compute is the JSON version of postCalc.
// Operands are parsed leniently unless the strict query parameter is set.
func (s *Server) compute(c *fiber.Ctx) error {
	op, err := parseOpParam(c.Query("op"))
	if err != nil {
		return err
	}
	parse := func(x string) (binval.Value, error) { return binval.Parse(x), nil }
	if c.QueryBool("strict") {
		parse = binval.ParseStrict
	}
	a, err := parse(c.Query("a"))
	if err != nil {
		return err
	}
	b, err := parse(c.Query("b"))
	if err != nil {
		return err
	}
	calc, err := s.sys.Compute(s.bgCtx, op, a, b)
	if err != nil {
		return err
	}
	return c.JSON(calc)
}

func (s *Server) history(c *fiber.Ctx) error {
	n := c.QueryInt("n", historySize)
	if n < 0 || n > maxHistorySize {
		return fiber.NewError(fiber.StatusBadRequest, "n out of range")
	}
	recent, err := s.sys.Recent(s.bgCtx, n)
	if err != nil {
		return err
	}
	return c.JSON(recent)
}

func (s *Server) calc(c *fiber.Ctx) error {
	id, err := cid.Parse(c.Params("cid"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	x, err := s.sys.Get(s.bgCtx, id)
	if err != nil {
		return err
	}
	return c.JSON(x)
}

// parseOpParam accepts either an operator token or its name.
func parseOpParam(x string) (binval.Op, error) {
	for _, op := range binval.Ops {
		if x == op.Name() {
			return op, nil
		}
	}
	return binval.ParseOp(x)
}

func (s *Server) handleError(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fiberErr *fiber.Error
	switch {
	case errors.As(err, &fiberErr):
		code = fiberErr.Code
	case errors.As(err, &binval.ErrUnknownOp{}),
		errors.As(err, &binval.ErrInvalidDigit{}),
		errors.Is(err, binval.ErrEmpty):
		code = fiber.StatusBadRequest
	case errors.As(err, &calcsys.ErrCalcNotFound{}):
		code = fiber.StatusNotFound
	}
	if code == fiber.StatusInternalServerError {
		logctx.Error(s.bgCtx, "handling request", zap.String("path", c.Path()), zap.Error(err))
	}
	return c.Status(code).JSON(fiber.Map{"error": err.Error()})
}

//go:embed view/*
var viewFS embed.FS
