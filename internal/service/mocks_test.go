package service

import (
	"context"

	"storefront/internal/events"
	"storefront/internal/model"

	"github.com/stretchr/testify/mock"
)

// MockDishSource is a mock implementation of DishSource.
type MockDishSource struct {
	mock.Mock
}

func (m *MockDishSource) ListDishes(ctx context.Context) ([]model.Dish, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Dish), args.Error(1)
}

func (m *MockDishSource) GetDish(ctx context.Context, id int) (*model.Dish, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Dish), args.Error(1)
}

// MockCategorySource is a mock implementation of CategorySource.
type MockCategorySource struct {
	mock.Mock
}

func (m *MockCategorySource) ListCategories(ctx context.Context) ([]model.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Category), args.Error(1)
}

func (m *MockCategorySource) GetCategory(ctx context.Context, id int) (*model.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Category), args.Error(1)
}

// MockOrderSource is a mock implementation of OrderSource.
type MockOrderSource struct {
	mock.Mock
}

func (m *MockOrderSource) CreateGuestOrders(ctx context.Context, guestID string, body model.GuestCreateOrdersBody) ([]model.Order, error) {
	args := m.Called(ctx, guestID, body)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Order), args.Error(1)
}

func (m *MockOrderSource) ListGuestOrders(ctx context.Context, guestID string) ([]model.Order, error) {
	args := m.Called(ctx, guestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Order), args.Error(1)
}

// MockEventPublisher is a mock implementation of EventPublisher.
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) PublishOrderPlaced(ctx context.Context, event events.OrderPlaced) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}
