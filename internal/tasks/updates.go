package tasks

import "fmt"

// ProgressUpdate represents a progress event during a submission.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number
	Total   int    // Total steps
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data
}

// Operation phase enumeration
type Phase int

const (
	BuildPayload Phase = iota
	Dispatch
	Complete
)

const submitSteps = 3

func (p Phase) String() string {
	switch p {
	case BuildPayload:
		return "build_payload"
	case Dispatch:
		return "dispatch"
	case Complete:
		return "complete"
	default:
		return ""
	}
}

func buildPayloadUpdate(entries int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   BuildPayload,
		Step:    1,
		Total:   submitSteps,
		Message: fmt.Sprintf("Building payload from %d entries...", entries),
	}
}

func dispatchUpdate(records int, courseID int64) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Dispatch,
		Step:    2,
		Total:   submitSteps,
		Message: fmt.Sprintf("Sending %d topics for course %d...", records, courseID),
	}
}

func completeUpdate(out SubmitOutcome) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Complete,
		Step:    3,
		Total:   submitSteps,
		Message: fmt.Sprintf("✓ %d topics created", len(out.Payload)),
		Data:    out.Payload,
	}
}
