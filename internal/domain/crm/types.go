package crm

import (
	"github.com/hospicetrack/backend/internal/domain/shared"
)

// InteractionType classifies a sales touchpoint; shared by tasks and activities
type InteractionType string

const (
	InteractionCall     InteractionType = "call"
	InteractionEmail    InteractionType = "email"
	InteractionMeeting  InteractionType = "meeting"
	InteractionDemo     InteractionType = "demo"
	InteractionFollowUp InteractionType = "follow_up"
	InteractionOther    InteractionType = "other"
)

// TaskPriority represents a task's urgency
type TaskPriority string

const (
	PriorityHigh   TaskPriority = "high"
	PriorityMedium TaskPriority = "medium"
	PriorityLow    TaskPriority = "low"
)

// ActivityOutcome captures how a touchpoint went
type ActivityOutcome string

const (
	OutcomePositive ActivityOutcome = "positive"
	OutcomeNeutral  ActivityOutcome = "neutral"
	OutcomeNegative ActivityOutcome = "negative"
)

func validateInteractionType(t InteractionType) error {
	switch t {
	case InteractionCall, InteractionEmail, InteractionMeeting, InteractionDemo, InteractionFollowUp, InteractionOther:
		return nil
	default:
		return shared.NewDomainError("INVALID_TYPE", "Type must be one of 'call', 'email', 'meeting', 'demo', 'follow_up', 'other'")
	}
}

func validateTaskPriority(p TaskPriority) error {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return nil
	default:
		return shared.NewDomainError("INVALID_PRIORITY", "Priority must be 'high', 'medium', or 'low'")
	}
}

func validateActivityOutcome(o ActivityOutcome) error {
	switch o {
	case OutcomePositive, OutcomeNeutral, OutcomeNegative:
		return nil
	default:
		return shared.NewDomainError("INVALID_OUTCOME", "Outcome must be 'positive', 'neutral', or 'negative'")
	}
}
