package task

import (
	"github.com/schani/git-lineage-sub000/internal/gitio"
	"github.com/schani/git-lineage-sub000/internal/history"
)

// Kind identifies which operation a Task requests.
type Kind int

const (
	LoadFileTree Kind = iota
	LoadCommitHistory
	LoadCommitHistoryChunk
	LoadCommitHistoryStreaming
	FindNextChange
)

// Task is the single inbound message type the executor's worker consumes.
// Only the fields relevant to Kind are populated; it is a tagged union
// expressed as a flat struct rather than an interface because every field
// is a small scalar or an already-cheap-to-copy value.
type Task struct {
	Kind Kind

	Path        string // LoadCommitHistory, LoadCommitHistoryChunk, LoadCommitHistoryStreaming, FindNextChange
	ChunkSize   int    // LoadCommitHistoryChunk
	ChunkOffset int    // LoadCommitHistoryChunk
	Token       *CancelToken // LoadCommitHistoryStreaming

	From gitio.Oid // FindNextChange
	Line int        // FindNextChange
}

// ResultKind identifies which variant a TaskResult carries.
type ResultKind int

const (
	FileTreeLoaded ResultKind = iota
	CommitHistoryLoaded
	CommitHistoryChunkLoaded
	CommitFound
	CommitHistoryComplete
	NextChangeFound
	NextChangeNotFound
	Error
)

// Result is the single outbound message type. As with Task, every
// populated field is keyed off Kind.
type Result struct {
	Kind ResultKind

	Path string

	Tree    gitio.FileTreeNode // FileTreeLoaded
	Records []history.Record  // CommitHistoryLoaded, CommitHistoryChunkLoaded
	Record  history.Record    // CommitFound

	Complete bool // CommitHistoryChunkLoaded
	Offset   int  // CommitHistoryChunkLoaded

	Total int // CommitFound (running count), CommitHistoryComplete

	Oid gitio.Oid // NextChangeFound

	Message string // Error
}
