package crm

// DealStage represents a deal's position in the sales pipeline
type DealStage string

const (
	StageLead          DealStage = "lead"
	StageDiscovery     DealStage = "discovery"
	StageDemoScheduled DealStage = "demo_scheduled"
	StageDemoCompleted DealStage = "demo_completed"
	StageProposalSent  DealStage = "proposal_sent"
	StageNegotiation   DealStage = "negotiation"
	StageVerbalCommit  DealStage = "verbal_commit"
	StageClosedWon     DealStage = "closed_won"
	StageClosedLost    DealStage = "closed_lost"
)

// StageInfo maps a stage to its display label and default win probability
type StageInfo struct {
	Stage       DealStage `json:"stage"`
	Label       string    `json:"label"`
	Probability int       `json:"probability"`
}

// stageTable is the single source of truth for stage ordering, labels,
// and default win probabilities.
var stageTable = []StageInfo{
	{StageLead, "Lead", 5},
	{StageDiscovery, "Discovery", 15},
	{StageDemoScheduled, "Demo Scheduled", 25},
	{StageDemoCompleted, "Demo Completed", 40},
	{StageProposalSent, "Proposal Sent", 60},
	{StageNegotiation, "Negotiation", 75},
	{StageVerbalCommit, "Verbal Commit", 90},
	{StageClosedWon, "Closed Won", 100},
	{StageClosedLost, "Closed Lost", 0},
}

// Stages returns all nine stages in pipeline order
func Stages() []StageInfo {
	out := make([]StageInfo, len(stageTable))
	copy(out, stageTable)
	return out
}

// OpenStages returns the seven non-closed stages in pipeline order
func OpenStages() []StageInfo {
	out := make([]StageInfo, 0, len(stageTable)-2)
	for _, info := range stageTable {
		if !info.Stage.IsClosed() {
			out = append(out, info)
		}
	}
	return out
}

// IsValid reports whether the stage is one of the nine defined values
func (s DealStage) IsValid() bool {
	for _, info := range stageTable {
		if info.Stage == s {
			return true
		}
	}
	return false
}

// IsClosed reports whether the stage is a terminal one
func (s DealStage) IsClosed() bool {
	return s == StageClosedWon || s == StageClosedLost
}

// Label returns the display label for the stage
func (s DealStage) Label() string {
	for _, info := range stageTable {
		if info.Stage == s {
			return info.Label
		}
	}
	return string(s)
}

// DefaultProbability returns the stage's default win probability percentage
func (s DealStage) DefaultProbability() int {
	for _, info := range stageTable {
		if info.Stage == s {
			return info.Probability
		}
	}
	return 0
}

// Ordinal returns the stage's position in the pipeline, or -1 if unknown
func (s DealStage) Ordinal() int {
	for i, info := range stageTable {
		if info.Stage == s {
			return i
		}
	}
	return -1
}
