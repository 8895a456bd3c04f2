package core

// MotionOutcome is the result of one move or hold operation. Failures are
// reported as outcomes, not Go errors: the motor is always brought to a
// controlled stop before the outcome is returned.
type MotionOutcome uint8

const (
	// OutcomeSuccess: the operation reached its target or ran its duration
	OutcomeSuccess MotionOutcome = iota

	// OutcomeStalled: feedback progress fell below the speed-appropriate
	// minimum for a full stall window (motor blocked, or FG line dead)
	OutcomeStalled

	// OutcomeTimedOut: overall operation duration exceeded the request timeout
	OutcomeTimedOut
)

func (o MotionOutcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeStalled:
		return "stalled"
	case OutcomeTimedOut:
		return "timed_out"
	}
	return "unknown"
}
