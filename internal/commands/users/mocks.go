package users

import (
	"context"
	"iter"

	"github.com/stretchr/testify/mock"

	"github.com/thomas-vilte/relx/internal/models"
	"github.com/thomas-vilte/relx/internal/providers"
)

type MockUserProvider struct {
	mock.Mock
}

func (m *MockUserProvider) GetUser(ctx context.Context, searchText string, searchBy providers.SearchBy) iter.Seq2[models.User, error] {
	args := m.Called(ctx, searchText, searchBy)
	return args.Get(0).(iter.Seq2[models.User, error])
}

func (m *MockUserProvider) GetGroup(ctx context.Context, name string, includeMembers bool) (*models.Group, error) {
	args := m.Called(ctx, name, includeMembers)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Group), args.Error(1)
}
