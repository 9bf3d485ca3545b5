package aireview

import (
	"context"
	"fmt"
	"testing"

	dbmodels "recruiting-backend/models/db"

	"github.com/lib/pq"
	"github.com/stretchr/testify/require"
)

type fakeGPT struct {
	answer string
	err    error
	text   string
}

func (f *fakeGPT) GenerateByPromptAndText(ctx context.Context, prompt, text string) (string, error) {
	f.text = text
	return f.answer, f.err
}

func TestParseScore(t *testing.T) {
	t.Run(`plain number`, func(t *testing.T) {
		score, err := ParseScore("87")
		require.NoError(t, err)
		require.Equal(t, 87.0, score)
	})
	t.Run(`number in a sentence with comma`, func(t *testing.T) {
		score, err := ParseScore("Score: 72,5 out of 100")
		require.NoError(t, err)
		require.Equal(t, 72.5, score)
	})
	t.Run(`clamped`, func(t *testing.T) {
		score, err := ParseScore("150")
		require.NoError(t, err)
		require.Equal(t, 100.0, score)
	})
	t.Run(`no number`, func(t *testing.T) {
		_, err := ParseScore("cannot rate")
		require.Error(t, err)
	})
}

func TestGPTScorer(t *testing.T) {
	client := &fakeGPT{answer: "64"}
	gate := &fakeGate{}
	scorer := NewGPTScorer(client, gate)
	score, err := scorer.Score(context.Background(),
		dbmodels.Job{Title: "Go developer"},
		dbmodels.Candidate{FirstName: "Jane", LastName: "Doe", Skills: pq.StringArray{"go", "postgres"}},
		dbmodels.Application{Notes: "5 years of backend"},
	)
	require.NoError(t, err)
	require.Equal(t, 64.0, score)
	require.Contains(t, client.text, "Job title: Go developer")
	require.Contains(t, client.text, "Skills: go, postgres")
	require.Equal(t, 1, gate.acquired)
	require.Equal(t, 1, gate.released)

	client.err = fmt.Errorf("quota")
	_, err = scorer.Score(context.Background(), dbmodels.Job{}, dbmodels.Candidate{}, dbmodels.Application{})
	require.Error(t, err)
}

type fakeGate struct {
	closed   bool
	acquired int
	released int
}

func (g *fakeGate) Acquire(ctx context.Context, functionName string) bool {
	if g.closed {
		return false
	}
	g.acquired++
	return true
}

func (g *fakeGate) Release(functionName string) {
	g.released++
}

func TestGPTScorerGateClosed(t *testing.T) {
	client := &fakeGPT{answer: "64"}
	scorer := NewGPTScorer(client, &fakeGate{closed: true})
	_, err := scorer.Score(context.Background(), dbmodels.Job{}, dbmodels.Candidate{}, dbmodels.Application{})
	require.Error(t, err)
	require.Empty(t, client.text)
}
