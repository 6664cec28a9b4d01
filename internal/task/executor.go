// Package task runs the history/content/line-mapping operations off the
// caller's goroutine and reports their results over a channel, honouring
// per-task cancellation tokens so stale streaming work can be abandoned
// without producing an error.
package task

import (
	"golang.org/x/sync/errgroup"

	"github.com/schani/git-lineage-sub000/internal/gitio"
	"github.com/schani/git-lineage-sub000/internal/history"
)

// Executor is a single-consumer worker over an inbound Task channel that
// emits Result messages on one outbound channel. Results from different
// tasks may interleave; results within one streaming task are emitted in
// strict HEAD-first order, and the terminal CommitHistoryComplete is
// always emitted after every CommitFound for that task.
type Executor struct {
	repo *gitio.Repo
	in   chan Task
	out  chan Result
	pool *errgroup.Group
}

// NewExecutor starts the worker goroutine. inboundBuffer and
// outboundBuffer size the respective channels; both may be 0 for
// synchronous hand-off. poolSize bounds how many tasks may have blocking
// git work in flight at once.
func NewExecutor(repo *gitio.Repo, inboundBuffer, outboundBuffer, poolSize int) *Executor {
	pool := &errgroup.Group{}
	pool.SetLimit(poolSize)

	e := &Executor{
		repo: repo,
		in:   make(chan Task, inboundBuffer),
		out:  make(chan Result, outboundBuffer),
		pool: pool,
	}
	go e.run()
	return e
}

// Submit enqueues a task. Closing Close() after the last Submit causes the
// worker to drain and exit.
func (e *Executor) Submit(t Task) {
	e.in <- t
}

// Results is the outbound stream; the caller is the sole consumer.
func (e *Executor) Results() <-chan Result {
	return e.out
}

// Close closes the inbound channel. The worker finishes dispatching
// already-submitted tasks, waits for the blocking pool to drain, then
// closes the outbound channel.
func (e *Executor) Close() {
	close(e.in)
}

func (e *Executor) run() {
	for t := range e.in {
		t := t
		e.pool.Go(func() error {
			e.dispatch(t)
			return nil
		})
	}
	e.pool.Wait()
	close(e.out)
}

func (e *Executor) dispatch(t Task) {
	switch t.Kind {
	case LoadFileTree:
		e.runLoadFileTree()
	case LoadCommitHistory:
		e.runLoadCommitHistory(t)
	case LoadCommitHistoryChunk:
		e.runLoadCommitHistoryChunk(t)
	case LoadCommitHistoryStreaming:
		e.runLoadCommitHistoryStreaming(t)
	case FindNextChange:
		e.runFindNextChange(t)
	}
}

// trySend delivers r without blocking. A full outbound channel is treated
// as a dropped receiver: it returns false so a streaming caller can stop
// early, which is the implicit-cancellation path the streamer's send-site
// uses instead of an explicit error.
func (e *Executor) trySend(r Result) bool {
	select {
	case e.out <- r:
		return true
	default:
		return false
	}
}

func (e *Executor) sendError(path, message string) {
	e.out <- Result{Kind: Error, Path: path, Message: message}
}

func (e *Executor) runLoadFileTree() {
	tree, err := e.repo.FileTreeAtHead()
	if err != nil {
		e.sendError("", err.Error())
		return
	}
	e.out <- Result{Kind: FileTreeLoaded, Tree: tree}
}

func (e *Executor) runLoadCommitHistory(t Task) {
	var records []history.Record
	_, err := history.Stream(e.repo, t.Path, func(rec history.Record, running int) bool {
		records = append(records, rec)
		return true
	}, nil)
	if err != nil {
		e.sendError(t.Path, err.Error())
		return
	}
	e.out <- Result{Kind: CommitHistoryLoaded, Path: t.Path, Records: records}
}

func (e *Executor) runLoadCommitHistoryChunk(t Task) {
	chunk, err := history.LoadChunk(e.repo, t.Path, t.ChunkSize, t.ChunkOffset)
	if err != nil {
		e.sendError(t.Path, err.Error())
		return
	}
	e.out <- Result{
		Kind:     CommitHistoryChunkLoaded,
		Path:     t.Path,
		Records:  chunk.Records,
		Complete: chunk.IsComplete,
		Offset:   t.ChunkOffset,
	}
}

func (e *Executor) runLoadCommitHistoryStreaming(t Task) {
	total, err := history.Stream(e.repo, t.Path, func(rec history.Record, running int) bool {
		if t.Token != nil && t.Token.Cancelled() {
			return false
		}
		return e.trySend(Result{Kind: CommitFound, Path: t.Path, Record: rec, Total: running})
	}, t.Token)
	if err != nil {
		e.sendError(t.Path, err.Error())
		return
	}
	// Cancellation is silent: the terminal result always carries the
	// count actually delivered, never an error.
	e.out <- Result{Kind: CommitHistoryComplete, Path: t.Path, Total: total}
}

func (e *Executor) runFindNextChange(t Task) {
	id, ok, err := findNextChange(e.repo, t.Path, t.From, t.Line)
	if err != nil {
		e.sendError(t.Path, err.Error())
		return
	}
	if !ok {
		e.out <- Result{Kind: NextChangeNotFound, Path: t.Path}
		return
	}
	e.out <- Result{Kind: NextChangeFound, Path: t.Path, Oid: id}
}
