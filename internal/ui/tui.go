package ui

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var (
	subtle    = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#383838"}
	highlight = lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"}
	special   = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	alert     = lipgloss.AdaptiveColor{Light: "#D7263D", Dark: "#FF5F87"}

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Background(highlight).
			Padding(1, 2).
			Bold(true).
			MarginBottom(1)

	stepStyle = lipgloss.NewStyle().
			Foreground(special).
			Bold(true).
			MarginTop(1)

	resultStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(special).
			Padding(0, 1)

	errorStyle = resultStyle.
			BorderForeground(alert).
			Foreground(alert)
)

const (
	actionCreate       = "create"
	actionDeposit      = "deposit"
	actionWithdraw     = "withdraw"
	actionBuy          = "buy"
	actionSell         = "sell"
	actionCash         = "cash"
	actionHoldings     = "holdings"
	actionValue        = "value"
	actionProfitLoss   = "pnl"
	actionTransactions = "transactions"
	actionQuit         = "quit"
)

// TUI is the interactive terminal front-end.
type TUI struct {
	session        *Session
	out            io.Writer
	logger         *zap.Logger
	symbols        []string
	initialDeposit string
}

// NewTUI creates a front-end writing results to out.
// symbols are offered as input suggestions, initialDeposit pre-fills the create form.
func NewTUI(session *Session, out io.Writer, logger *zap.Logger, symbols []string, initialDeposit decimal.Decimal) *TUI {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TUI{
		session:        session,
		out:            out,
		logger:         logger,
		symbols:        symbols,
		initialDeposit: initialDeposit.String(),
	}
}

// Run shows the action menu until the user quits or aborts.
func (t *TUI) Run(ctx context.Context) error {
	fmt.Fprint(t.out, "\033[H\033[2J")
	fmt.Fprintln(t.out, headerStyle.Render("TRADING ACCOUNT SIMULATOR"))
	fmt.Fprintln(t.out, lipgloss.NewStyle().Foreground(subtle).Render(
		"Supported symbols: "+strings.Join(t.symbols, ", ")))

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		var action string
		err := huh.NewForm(
			huh.NewGroup(
				huh.NewSelect[string]().
					Title("What would you like to do?").
					Options(
						huh.NewOption("Create Account", actionCreate),
						huh.NewOption("Deposit", actionDeposit),
						huh.NewOption("Withdraw", actionWithdraw),
						huh.NewOption("Buy Shares", actionBuy),
						huh.NewOption("Sell Shares", actionSell),
						huh.NewOption("Show Cash Balance", actionCash),
						huh.NewOption("Show Holdings", actionHoldings),
						huh.NewOption("Show Portfolio Value", actionValue),
						huh.NewOption("Show Profit/Loss", actionProfitLoss),
						huh.NewOption("List Transactions", actionTransactions),
						huh.NewOption("Quit", actionQuit),
					).
					Value(&action),
			),
		).RunWithContext(ctx)
		if errors.Is(err, huh.ErrUserAborted) {
			return nil
		}
		if err != nil {
			return err
		}
		if action == actionQuit {
			return nil
		}

		result, err := t.dispatch(ctx, action)
		if errors.Is(err, huh.ErrUserAborted) {
			continue
		}
		if err != nil {
			return err
		}
		t.show(action, result)
	}
}

func (t *TUI) dispatch(ctx context.Context, action string) (Result, error) {
	switch action {
	case actionCreate:
		amount, err := t.askAmount(ctx, "Initial Deposit", t.initialDeposit)
		if err != nil {
			return Result{}, err
		}
		return t.session.CreateAccount(amount), nil
	case actionDeposit:
		amount, err := t.askAmount(ctx, "Deposit Amount", "")
		if err != nil {
			return Result{}, err
		}
		return t.session.Deposit(amount), nil
	case actionWithdraw:
		amount, err := t.askAmount(ctx, "Withdraw Amount", "")
		if err != nil {
			return Result{}, err
		}
		return t.session.Withdraw(amount), nil
	case actionBuy:
		symbol, quantity, err := t.askOrder(ctx, "Buy")
		if err != nil {
			return Result{}, err
		}
		return t.session.Buy(ctx, symbol, quantity), nil
	case actionSell:
		symbol, quantity, err := t.askOrder(ctx, "Sell")
		if err != nil {
			return Result{}, err
		}
		return t.session.Sell(ctx, symbol, quantity), nil
	case actionCash:
		return t.session.CashBalance(), nil
	case actionHoldings:
		return t.session.Holdings(ctx), nil
	case actionValue:
		return t.session.PortfolioValue(ctx), nil
	case actionProfitLoss:
		return t.session.ProfitLoss(ctx), nil
	case actionTransactions:
		return t.session.Transactions(), nil
	default:
		return Result{}, fmt.Errorf("unknown action: %s", action)
	}
}

func (t *TUI) askAmount(ctx context.Context, title, initial string) (decimal.Decimal, error) {
	raw := initial
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(title).
				Value(&raw).
				Validate(validateDecimal),
		),
	).RunWithContext(ctx)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return decimal.NewFromString(strings.TrimSpace(raw))
}

func (t *TUI) askOrder(ctx context.Context, side string) (string, int64, error) {
	symbol := ""
	if len(t.symbols) > 0 {
		symbol = t.symbols[0]
	}
	rawQuantity := "1"
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(side+" Symbol").
				Suggestions(t.symbols).
				CharLimit(5).
				Value(&symbol),
			huh.NewInput().
				Title(side+" Quantity").
				Description("Whole shares").
				Value(&rawQuantity).
				Validate(validateQuantity),
		),
	).RunWithContext(ctx)
	if err != nil {
		return "", 0, err
	}
	quantity, err := strconv.ParseInt(strings.TrimSpace(rawQuantity), 10, 64)
	if err != nil {
		return "", 0, err
	}
	return symbol, quantity, nil
}

func (t *TUI) show(action string, r Result) {
	if r.Err != nil {
		t.logger.Debug("action failed", zap.String("action", action), zap.Error(r.Err))
		fmt.Fprintln(t.out, errorStyle.Render(r.Text))
		return
	}
	fmt.Fprintln(t.out, stepStyle.Render(strings.ToUpper(action)))
	fmt.Fprintln(t.out, resultStyle.Render(r.Text))
}

// validateDecimal only checks the shape of the input; sign rules belong to the ledger.
func validateDecimal(s string) error {
	if _, err := decimal.NewFromString(strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("must be a valid number")
	}
	return nil
}

func validateQuantity(s string) error {
	if _, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64); err != nil {
		return fmt.Errorf("must be a whole number")
	}
	return nil
}
