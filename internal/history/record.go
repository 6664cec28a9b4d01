// Package history streams the commits of a repository that modified a
// single path, in HEAD-first order, with per-iteration cancellation.
package history

import (
	"strconv"
	"strings"
	"time"

	"github.com/schani/git-lineage-sub000/internal/gitio"
)

// Record is the commit metadata surfaced to callers walking a file's
// history: just enough to render a log line without re-reading the commit
// object.
type Record struct {
	ID         gitio.Oid
	ShortID    string
	AuthorName string
	Time       time.Time // parsed author time, see parseAuthorTime
	Timestamp  string    // rendered "YYYY-MM-DD HH:MM", see FormatTimestamp
	Subject    string
}

// FormatTimestamp parses the first whitespace-separated token of raw as a
// signed number of seconds since the Unix epoch, converts to local time,
// and renders it as "YYYY-MM-DD HH:MM". If raw is empty or its first token
// does not parse, now is substituted instead — the result is advisory and
// callers must not rely on it for ordering.
func FormatTimestamp(raw string, now time.Time) string {
	return parseAuthorTime(raw, now).Local().Format("2006-01-02 15:04")
}

// parseAuthorTime is the same fallback-to-now parse FormatTimestamp renders,
// returned as a time.Time so callers that need more than the fixed
// "YYYY-MM-DD HH:MM" rendering (e.g. a relative-time hint) don't reparse raw.
func parseAuthorTime(raw string, now time.Time) time.Time {
	field := raw
	if i := strings.IndexByte(raw, ' '); i >= 0 {
		field = raw[:i]
	}
	seconds, err := strconv.ParseInt(field, 10, 64)
	if err != nil {
		return now
	}
	return time.Unix(seconds, 0)
}

func newRecord(repo *gitio.Repo, id gitio.Oid, meta *gitio.CommitMeta, now time.Time) Record {
	t := parseAuthorTime(meta.AuthorTimeRaw, now)
	return Record{
		ID:         id,
		ShortID:    id.Short(),
		AuthorName: meta.AuthorName,
		Time:       t,
		Timestamp:  t.Local().Format("2006-01-02 15:04"),
		Subject:    meta.Subject,
	}
}
