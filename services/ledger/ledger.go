package ledger

import (
	"context"

	"github.com/shopspring/decimal"
)

// Operation is the kind of stake adjustment.
type Operation string

const (
	// OpBet debits a wager from the user's balance.
	OpBet Operation = "BET"
	// OpWin credits a settled round's payout. The engine itself only ever
	// debits; win crediting happens after the completed round is persisted.
	OpWin Operation = "WIN"
)

// AdjustRequest is one stake adjustment. OperationID makes the call
// idempotent: a caller-level retry after a timeout must not double-charge.
type AdjustRequest struct {
	Operation   Operation
	OperationID string
	UserID      string
	Amount      decimal.Decimal
	Asset       string
	Description string
	Metadata    map[string]any
}

// Result is the outcome of a stake adjustment. Success=false with an
// empty Err never happens; insufficient funds come back as Success=false
// with Err set rather than as a Go error.
type Result struct {
	Success bool
	Balance decimal.Decimal
	Err     string
}

/*
 * 'Ledger' is the balance collaborator the engine charges wagers against.
 * AdjustStake must be idempotent on OperationID. Balance may legitimately
 * fail or be unknown; callers that only use it to pre-filter actions must
 * degrade optimistically.
 */
type Ledger interface {
	AdjustStake(ctx context.Context, req AdjustRequest) (Result, error)
	Balance(ctx context.Context, userID, asset string) (decimal.Decimal, error)
}
