package blackjack

// ErrorKind classifies expected engine failures. They are reported inside
// ActionResult, never as panics or Go errors, so callers always get a
// structured shape back.
type ErrorKind string

const (
	// ErrValidation: malformed card or action payload, rejected before any
	// state mutation.
	ErrValidation ErrorKind = "VALIDATION"
	// ErrState: the action is not in the currently available set (wrong
	// hand active, already split, game not split, game not active).
	ErrState ErrorKind = "STATE"
	// ErrFunds: the ledger reported insufficient balance.
	ErrFunds ErrorKind = "FUNDS"
	// ErrIntegrity: an internal engine fault, recovered panic or
	// impossible numeric state.
	ErrIntegrity ErrorKind = "INTEGRITY"
)

func failure(kind ErrorKind, msg string) ActionResult {
	return ActionResult{Success: false, Error: msg, ErrorKind: kind}
}
