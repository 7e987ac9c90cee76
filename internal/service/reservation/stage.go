package reservation

// Stage is a step of the booking workflow.
type Stage int

const (
	StageCollectingCustomer Stage = iota
	StageSelectingSeats
	StageConfirmingSelection
	StageReserving
	StagePaying
	StageRecording
	StageDone
)

func (s Stage) String() string {
	switch s {
	case StageCollectingCustomer:
		return "collecting customer"
	case StageSelectingSeats:
		return "selecting seats"
	case StageConfirmingSelection:
		return "confirming selection"
	case StageReserving:
		return "reserving"
	case StagePaying:
		return "paying"
	case StageRecording:
		return "recording"
	case StageDone:
		return "done"
	default:
		return "unknown"
	}
}
