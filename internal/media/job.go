// Package media runs the asynchronous audio pipeline: fetch, transcode,
// transcribe, score, and write back through the conversation engine. Jobs
// for one session are serialized; jobs for different sessions run in
// parallel.
package media

import (
	"github.com/google/uuid"
)

// Job is one audio submission moving through the pipeline. It is not
// persisted: a job lost to a process crash is simply never completed.
type Job struct {
	SessionID     string
	QuestionIndex int
	SourceRef     string
	AttemptID     string
}

// NewJob builds a pipeline job with a fresh attempt ID. QuestionIndex is
// captured at submission time and targets the write-back absolutely, even
// if the session advances while the job is in flight.
func NewJob(sessionID string, questionIndex int, sourceRef string) Job {
	return Job{
		SessionID:     sessionID,
		QuestionIndex: questionIndex,
		SourceRef:     sourceRef,
		AttemptID:     uuid.NewString(),
	}
}
