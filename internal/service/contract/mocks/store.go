package mocks

import (
	"context"

	"github.com/darkkaiser/appdir-server/internal/service/contract"
	"github.com/stretchr/testify/mock"
)

// MockConsumerFactory contract.ConsumerFactory의 Mock 구현체입니다.
type MockConsumerFactory struct {
	mock.Mock
}

func (m *MockConsumerFactory) ConsumerFor(ctx context.Context, username string) (contract.Consumer, error) {
	args := m.Called(ctx, username)
	if c := args.Get(0); c != nil {
		return c.(contract.Consumer), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockConsumer contract.Consumer의 Mock 구현체입니다.
type MockConsumer struct {
	mock.Mock
}

func (m *MockConsumer) ApplicationByUUID(ctx context.Context, uuid string) (*contract.Application, error) {
	args := m.Called(ctx, uuid)
	if app := args.Get(0); app != nil {
		return app.(*contract.Application), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockConsumer) RemoveApplication(ctx context.Context, app *contract.Application, username string) error {
	return m.Called(ctx, app, username).Error(0)
}

func (m *MockConsumer) UpdateApplicationOwner(ctx context.Context, newOwner string, app *contract.Application) (bool, error) {
	args := m.Called(ctx, newOwner, app)
	return args.Bool(0), args.Error(1)
}

func (m *MockConsumer) ApplicationsByOwner(ctx context.Context, owner string) ([]contract.Application, error) {
	args := m.Called(ctx, owner)
	return applications(args.Get(0)), args.Error(1)
}

func (m *MockConsumer) ApplicationsWithPagination(ctx context.Context, subscriber contract.Subscriber, groupID string, q contract.ListQuery) ([]contract.Application, error) {
	args := m.Called(ctx, subscriber, groupID, q)
	return applications(args.Get(0)), args.Error(1)
}

// MockTenantAdmin contract.TenantAdmin의 Mock 구현체입니다.
type MockTenantAdmin struct {
	mock.Mock
}

func (m *MockTenantAdmin) ApplicationsByTenantID(ctx context.Context, tenantID int, q contract.ListQuery) ([]contract.Application, error) {
	args := m.Called(ctx, tenantID, q)
	return applications(args.Get(0)), args.Error(1)
}

func (m *MockTenantAdmin) AllApplicationsOfTenantForMigration(ctx context.Context, tenantDomain string) ([]contract.Application, error) {
	args := m.Called(ctx, tenantDomain)
	return applications(args.Get(0)), args.Error(1)
}

func applications(v any) []contract.Application {
	if v == nil {
		return nil
	}
	return v.([]contract.Application)
}
