package calculator

import "errors"

// Validation failures. Calculate reports them through Result.Error; callers
// can match them with errors.Is on Result.Err().
var (
	ErrUnsupportedMethod    = errors.New("unsupported split method")
	ErrInvalidOrder         = errors.New("invalid order")
	ErrInvalidConfig        = errors.New("invalid split configuration")
	ErrNoParticipants       = errors.New("at least one participant is required")
	ErrDuplicateParticipant = errors.New("duplicate participant")
	ErrUnknownItem          = errors.New("item not found in order")
	ErrInvalidQuantity      = errors.New("quantity must be positive")
	ErrOverAssigned         = errors.New("item assigned more times than ordered")
	ErrUnassignedItems      = errors.New("not all items assigned")
	ErrPercentageRange      = errors.New("percentage must be between 0 and 100")
	ErrPercentageTotal      = errors.New("percentages must total 100")
	ErrAmountRange          = errors.New("amount must be between 0 and 10000")
	ErrAmountMismatch       = errors.New("amounts do not add up to the bill total")
	ErrNegativeShare        = errors.New("split produces a negative share")
)
