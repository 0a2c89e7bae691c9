package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"botsense/internal/analysis"
	"botsense/internal/interaction"
	"botsense/internal/tracker"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "botsense", "submissions.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func testPayload(sessionID string, score int, suspicious bool) tracker.Payload {
	return tracker.Payload{
		SessionID: sessionID,
		Samples: []interaction.Sample{
			interaction.Move(10, 20, 1000),
			interaction.Click(10, 20, 1500),
		},
		Report: analysis.Report{
			Suspicious: suspicious,
			Score:      score,
			Reasons:    []string{analysis.ReasonSpeed},
			Stats:      analysis.Stats{Moves: 1, Clicks: 1, DurationMs: 500},
		},
		Client: tracker.ClientInfo{UserAgent: "Mozilla/5.0 test", ViewportWidth: 1920, ViewportHeight: 1080},
	}
}

func TestSaveAndGetSubmission(t *testing.T) {
	st := openTestStore(t)

	p := testPayload("sess-1", 85, true)
	created := time.Now().Truncate(time.Millisecond)
	id, err := st.SaveSubmission(p, created)
	require.NoError(t, err)
	assert.Positive(t, id)

	sub, err := st.GetSubmission("sess-1")
	require.NoError(t, err)
	assert.Equal(t, "sess-1", sub.SessionID)
	assert.True(t, sub.Suspicious)
	assert.Equal(t, 85, sub.Score)
	assert.Equal(t, []string{analysis.ReasonSpeed}, sub.Reasons)
	assert.Equal(t, "Mozilla/5.0 test", sub.UserAgent)
	assert.Equal(t, created.UnixMilli(), sub.CreatedAt.UnixMilli())
	assert.Len(t, sub.Payload.Samples, 2)
}

func TestGetSubmissionNotFound(t *testing.T) {
	st := openTestStore(t)
	_, err := st.GetSubmission("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDuplicateSessionRejected(t *testing.T) {
	st := openTestStore(t)
	_, err := st.SaveSubmission(testPayload("dup", 10, false), time.Now())
	require.NoError(t, err)
	_, err = st.SaveSubmission(testPayload("dup", 20, false), time.Now())
	assert.Error(t, err)
}

func TestListSubmissionsNewestFirst(t *testing.T) {
	st := openTestStore(t)
	base := time.Now()
	for i, id := range []string{"a", "b", "c"} {
		_, err := st.SaveSubmission(testPayload(id, i*10, false), base.Add(time.Duration(i)*time.Second))
		require.NoError(t, err)
	}

	subs, err := st.ListSubmissions(2)
	require.NoError(t, err)
	require.Len(t, subs, 2)
	assert.Equal(t, "c", subs[0].SessionID)
	assert.Equal(t, "b", subs[1].SessionID)
}

func TestVerdictCounts(t *testing.T) {
	st := openTestStore(t)
	_, err := st.SaveSubmission(testPayload("x", 90, true), time.Now())
	require.NoError(t, err)
	_, err = st.SaveSubmission(testPayload("y", 0, false), time.Now())
	require.NoError(t, err)
	_, err = st.SaveSubmission(testPayload("z", 5, false), time.Now())
	require.NoError(t, err)

	suspicious, clean, err := st.VerdictCounts()
	require.NoError(t, err)
	assert.EqualValues(t, 1, suspicious)
	assert.EqualValues(t, 2, clean)
}
