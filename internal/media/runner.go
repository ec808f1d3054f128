package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/rbright/canvass/internal/catalog"
	"github.com/rbright/canvass/internal/fsm"
	"github.com/rbright/canvass/internal/store"
	"github.com/rbright/canvass/internal/transport"
)

// Stage-specific failure copy sent to the session. Failures never mutate
// session state; the user retries by resubmitting.
const (
	MsgFetchFailed      = "Failed to retrieve audio."
	MsgTranscodeFailed  = "Failed to process audio."
	MsgTranscribeFailed = "Failed to transcribe audio."
	MsgRecordFailed     = "Failed to record your answer. Please try again."
)

// ErrRunnerClosed indicates an enqueue after shutdown began.
var ErrRunnerClosed = errors.New("media runner closed")

// Transcoder normalizes fetched audio into the canonical speech profile.
type Transcoder interface {
	Transcode(ctx context.Context, inputPath, outputPath string) error
}

// Transcriber converts a transcoded audio file to text.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (string, error)
}

// Scorer is the pipeline-facing scoring contract.
type Scorer interface {
	Score(ctx context.Context, q catalog.Question, answer string) *int
}

// Recorder is the pipeline-facing slice of the conversation engine: the
// shared write-back routine used by synchronous submissions too.
type Recorder interface {
	Record(ctx context.Context, sessionID string, index int, answer store.Answer) (transport.Reply, error)
}

// Runner owns the pipeline workers. Each session gets a FIFO queue drained
// by at most one goroutine at a time, so concurrent submissions for one
// session cannot interleave their write-backs.
type Runner struct {
	catalog     *catalog.Catalog
	fetcher     Fetcher
	transcoder  Transcoder
	transcriber Transcriber
	scorer      Scorer
	recorder    Recorder
	sender      transport.Sender
	logger      *slog.Logger
	workBase    string

	mu     sync.Mutex
	queues map[string]*sessionQueue
	wg     sync.WaitGroup
	closed bool
}

type sessionQueue struct {
	jobs   []Job
	active bool
}

// RunnerConfig bundles runner collaborators.
type RunnerConfig struct {
	Catalog     *catalog.Catalog
	Fetcher     Fetcher
	Transcoder  Transcoder
	Transcriber Transcriber
	Scorer      Scorer
	Recorder    Recorder
	Sender      transport.Sender
	Logger      *slog.Logger
	// WorkBase is the parent directory for per-job scratch space.
	// Empty means the system temp directory.
	WorkBase string
}

// NewRunner constructs a pipeline runner.
func NewRunner(cfg RunnerConfig) *Runner {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Runner{
		catalog:     cfg.Catalog,
		fetcher:     cfg.Fetcher,
		transcoder:  cfg.Transcoder,
		transcriber: cfg.Transcriber,
		scorer:      cfg.Scorer,
		recorder:    cfg.Recorder,
		sender:      cfg.Sender,
		logger:      logger,
		workBase:    cfg.WorkBase,
		queues:      make(map[string]*sessionQueue),
	}
}

// Enqueue appends a job to its session queue and starts a drain worker for
// the session when none is running. It never blocks on job execution.
func (r *Runner) Enqueue(job Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return ErrRunnerClosed
	}

	q := r.queues[job.SessionID]
	if q == nil {
		q = &sessionQueue{}
		r.queues[job.SessionID] = q
	}
	q.jobs = append(q.jobs, job)

	if !q.active {
		q.active = true
		r.wg.Add(1)
		go r.drain(job.SessionID)
	}

	r.logger.Info("pipeline job enqueued",
		"session", job.SessionID,
		"question", job.QuestionIndex,
		"attempt", job.AttemptID,
		"queued", len(q.jobs),
	)
	return nil
}

// Close stops accepting jobs and waits for all queued work to finish.
func (r *Runner) Close() {
	r.mu.Lock()
	r.closed = true
	r.mu.Unlock()
	r.wg.Wait()
}

// drain processes the session queue until it empties, then exits.
func (r *Runner) drain(sessionID string) {
	defer r.wg.Done()
	for {
		r.mu.Lock()
		q := r.queues[sessionID]
		if len(q.jobs) == 0 {
			// A drained queue is dropped entirely so the map does not
			// accumulate an entry per session ever seen.
			delete(r.queues, sessionID)
			r.mu.Unlock()
			return
		}
		job := q.jobs[0]
		q.jobs = q.jobs[1:]
		r.mu.Unlock()

		// Jobs run to a terminal outcome; there is no abort path.
		r.process(context.Background(), job)
	}
}

// process executes one job through its stage machine. The job's scratch
// directory is removed on every exit path.
func (r *Runner) process(ctx context.Context, job Job) {
	stage := fsm.StagePending
	advance := func(event fsm.Event) {
		next, err := fsm.Transition(stage, event)
		if err != nil {
			r.logger.Error("pipeline stage error", "attempt", job.AttemptID, "error", err.Error())
			return
		}
		stage = next
		r.logger.Info("pipeline stage",
			"session", job.SessionID,
			"question", job.QuestionIndex,
			"attempt", job.AttemptID,
			"stage", string(stage),
		)
	}
	fail := func(cause error, userMsg string) {
		advance(fsm.EventFail)
		r.logger.Warn("pipeline job failed",
			"session", job.SessionID,
			"question", job.QuestionIndex,
			"attempt", job.AttemptID,
			"error", cause.Error(),
		)
		r.notify(ctx, job.SessionID, transport.Reply{
			Messages:    []string{userMsg},
			PromptIndex: transport.NoPrompt,
		})
	}

	workDir, err := os.MkdirTemp(r.workBase, "canvass-job-")
	if err != nil {
		fail(fmt.Errorf("create job workspace: %w", err), MsgFetchFailed)
		return
	}
	defer os.RemoveAll(workDir)

	advance(fsm.EventFetch)
	inputPath := filepath.Join(workDir, "source"+guessExtension(job.SourceRef))
	if err := r.fetcher.Fetch(ctx, job.SourceRef, inputPath); err != nil {
		fail(err, MsgFetchFailed)
		return
	}

	advance(fsm.EventTranscode)
	speechPath := filepath.Join(workDir, "speech.mp3")
	if err := r.transcoder.Transcode(ctx, inputPath, speechPath); err != nil {
		fail(err, MsgTranscodeFailed)
		return
	}

	advance(fsm.EventTranscribe)
	transcript, err := r.transcriber.Transcribe(ctx, speechPath)
	if err != nil {
		fail(err, MsgTranscribeFailed)
		return
	}

	advance(fsm.EventScore)
	answer := store.Answer{Text: transcript, RemoteRef: job.SourceRef}
	if q, ok := r.catalog.Question(job.QuestionIndex); ok && r.scorer != nil {
		answer.Score = r.scorer.Score(ctx, q, transcript)
	}

	reply, err := r.recorder.Record(ctx, job.SessionID, job.QuestionIndex, answer)
	if err != nil {
		fail(err, MsgRecordFailed)
		return
	}

	advance(fsm.EventComplete)
	r.notify(ctx, job.SessionID, reply)
}

// notify delivers an out-of-band reply; delivery failures are logged, never
// retried.
func (r *Runner) notify(ctx context.Context, sessionID string, reply transport.Reply) {
	if r.sender == nil {
		return
	}
	if err := r.sender.Send(ctx, sessionID, reply); err != nil {
		r.logger.Error("pipeline reply delivery failed", "session", sessionID, "error", err.Error())
	}
}
