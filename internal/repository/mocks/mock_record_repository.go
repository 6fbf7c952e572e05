package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"qlcc/internal/repository"
)

type MockRecordRepository struct {
	mock.Mock
}

func (m *MockRecordRepository) All(ctx context.Context, kind string) ([]repository.Record, error) {
	args := m.Called(ctx, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.Record), args.Error(1)
}

func (m *MockRecordRepository) List(ctx context.Context, q repository.RecordQuery) (*repository.PageResult[repository.Record], error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[repository.Record]), args.Error(1)
}

func (m *MockRecordRepository) FindByID(ctx context.Context, kind string, id int64) (*repository.Record, error) {
	args := m.Called(ctx, kind, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.Record), args.Error(1)
}

func (m *MockRecordRepository) HighWater(ctx context.Context, kind string) (int64, error) {
	args := m.Called(ctx, kind)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRecordRepository) Reserve(ctx context.Context, kind string, n int) (int64, error) {
	args := m.Called(ctx, kind, n)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRecordRepository) Insert(ctx context.Context, recs []repository.Record) error {
	return m.Called(ctx, recs).Error(0)
}

func (m *MockRecordRepository) Update(ctx context.Context, rec repository.Record) error {
	return m.Called(ctx, rec).Error(0)
}

func (m *MockRecordRepository) Delete(ctx context.Context, kind string, id int64) error {
	return m.Called(ctx, kind, id).Error(0)
}
