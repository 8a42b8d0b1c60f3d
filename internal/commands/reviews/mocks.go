package reviews

import (
	"context"
	"fmt"

	"github.com/stretchr/testify/mock"

	"github.com/thomas-vilte/relx/internal/models"
	"github.com/thomas-vilte/relx/internal/providers"
)

type MockReviewProvider struct {
	mock.Mock
}

func (m *MockReviewProvider) ListRequests(ctx context.Context, params providers.ListRequestsParams) ([]models.Request, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Request), args.Error(1)
}

func (m *MockReviewProvider) GetRequestDiff(ctx context.Context, params providers.DiffParams) (string, error) {
	args := m.Called(ctx, params)
	return args.String(0), args.Error(1)
}

func (m *MockReviewProvider) ApproveRequest(ctx context.Context, params providers.ApproveParams) ([]string, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// scriptedPrompter replays a fixed list of answers and records the questions
// it was asked.
type scriptedPrompter struct {
	answers   []string
	questions []string
}

func (p *scriptedPrompter) Ask(question string, choices []string, def string) (string, error) {
	p.questions = append(p.questions, question)
	if len(p.answers) == 0 {
		return "", fmt.Errorf("unexpected prompt: %s", question)
	}
	answer := p.answers[0]
	p.answers = p.answers[1:]
	return answer, nil
}
