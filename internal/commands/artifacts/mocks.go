package artifacts

import (
	"context"
	"iter"

	"github.com/stretchr/testify/mock"

	"github.com/thomas-vilte/relx/internal/models"
)

type MockArtifactProvider struct {
	mock.Mock
}

func (m *MockArtifactProvider) ListPackages(ctx context.Context, project string) ([]string, error) {
	args := m.Called(ctx, project)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockArtifactProvider) ListArtifacts(ctx context.Context, project string, packages []string, repo models.RepoFilter, onProgress func()) iter.Seq2[string, error] {
	args := m.Called(ctx, project, packages, repo, onProgress)
	return args.Get(0).(iter.Seq2[string, error])
}
