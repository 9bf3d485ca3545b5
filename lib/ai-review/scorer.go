package aireview

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	yagptclient "recruiting-backend/lib/gpt/yagpt-client"
	dbmodels "recruiting-backend/models/db"

	"github.com/pkg/errors"
)

// Scorer rates how well an application matches its job, 0..100.
type Scorer interface {
	Score(ctx context.Context, job dbmodels.Job, candidate dbmodels.Candidate, app dbmodels.Application) (float64, error)
}

const scorePrompt = "You review job applications. Rate how well the candidate fits the job title on a scale " +
	"from 0 to 100. Answer with the number only."

// Gate limits concurrent model calls.
type Gate interface {
	Acquire(ctx context.Context, functionName string) bool
	Release(functionName string)
}

const gateName = "ai-review-score"

func NewGPTScorer(client yagptclient.Provider, gate Gate) Scorer {
	return gptScorer{client: client, gate: gate}
}

type gptScorer struct {
	client yagptclient.Provider
	gate   Gate
}

func (s gptScorer) Score(ctx context.Context, job dbmodels.Job, candidate dbmodels.Candidate, app dbmodels.Application) (float64, error) {
	if s.gate != nil {
		if !s.gate.Acquire(ctx, gateName) {
			return 0, errors.New("model access cancelled")
		}
		defer s.gate.Release(gateName)
	}
	answer, err := s.client.GenerateByPromptAndText(ctx, scorePrompt, applicationText(job, candidate, app))
	if err != nil {
		return 0, err
	}
	return ParseScore(answer)
}

func applicationText(job dbmodels.Job, candidate dbmodels.Candidate, app dbmodels.Application) string {
	sb := strings.Builder{}
	sb.WriteString(fmt.Sprintf("Job title: %s\n", job.Title))
	sb.WriteString(fmt.Sprintf("Candidate: %s\n", candidate.GetFullName()))
	if len(candidate.Skills) != 0 {
		sb.WriteString(fmt.Sprintf("Skills: %s\n", strings.Join(candidate.Skills, ", ")))
	}
	if app.Notes != "" {
		sb.WriteString(fmt.Sprintf("Application notes: %s\n", app.Notes))
	}
	return sb.String()
}

var scoreRe = regexp.MustCompile(`\d+(?:[.,]\d+)?`)

// ParseScore takes the first number of the model answer and clamps it to 0..100.
func ParseScore(answer string) (float64, error) {
	match := scoreRe.FindString(answer)
	if match == "" {
		return 0, errors.Errorf("no score in model answer %q", answer)
	}
	score, err := strconv.ParseFloat(strings.ReplaceAll(match, ",", "."), 64)
	if err != nil {
		return 0, errors.Wrap(err, "invalid score")
	}
	if score > 100 {
		score = 100
	}
	return score, nil
}
