// Package fsm models the media pipeline job lifecycle as an explicit stage
// machine. Jobs move through the stages in order and terminate on the first
// failure; Done and Failed are terminal.
package fsm

import "fmt"

type Stage string

type Event string

const (
	StagePending      Stage = "pending"
	StageFetching     Stage = "fetching"
	StageTranscoding  Stage = "transcoding"
	StageTranscribing Stage = "transcribing"
	StageScoring      Stage = "scoring"
	StageDone         Stage = "done"
	StageFailed       Stage = "failed"
)

const (
	EventFetch      Event = "fetch"
	EventTranscode  Event = "transcode"
	EventTranscribe Event = "transcribe"
	EventScore      Event = "score"
	EventComplete   Event = "complete"
	EventFail       Event = "fail"
)

// Terminal reports whether a stage admits no further transitions.
func Terminal(stage Stage) bool {
	return stage == StageDone || stage == StageFailed
}

func Transition(current Stage, event Event) (Stage, error) {
	if Terminal(current) {
		return current, invalidTransition(current, event)
	}
	if event == EventFail {
		return StageFailed, nil
	}

	switch current {
	case StagePending:
		if event == EventFetch {
			return StageFetching, nil
		}
	case StageFetching:
		if event == EventTranscode {
			return StageTranscoding, nil
		}
	case StageTranscoding:
		if event == EventTranscribe {
			return StageTranscribing, nil
		}
	case StageTranscribing:
		if event == EventScore {
			return StageScoring, nil
		}
	case StageScoring:
		if event == EventComplete {
			return StageDone, nil
		}
	default:
		return current, fmt.Errorf("unknown stage %q", current)
	}
	return current, invalidTransition(current, event)
}

func invalidTransition(stage Stage, event Event) error {
	return fmt.Errorf("invalid transition: %s --(%s)--> ?", stage, event)
}
