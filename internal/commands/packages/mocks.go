package packages

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/thomas-vilte/relx/internal/models"
)

type MockPackageProvider struct {
	mock.Mock
}

func (m *MockPackageProvider) GetSourcePackage(ctx context.Context, project, binary string) (string, error) {
	args := m.Called(ctx, project, binary)
	return args.String(0), args.Error(1)
}

func (m *MockPackageProvider) IsShipped(ctx context.Context, pkg, productComposer string) (bool, error) {
	args := m.Called(ctx, pkg, productComposer)
	return args.Bool(0), args.Error(1)
}

func (m *MockPackageProvider) GetBugowner(ctx context.Context, pkg string) ([]string, bool, error) {
	args := m.Called(ctx, pkg)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).([]string), args.Bool(1), args.Error(2)
}

type MockUserProvider struct {
	mock.Mock
}

func (m *MockUserProvider) GetEntityInfo(ctx context.Context, name string, isGroup bool) (models.Entity, error) {
	args := m.Called(ctx, name, isGroup)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(models.Entity), args.Error(1)
}
