package mocks

import (
	"context"
	"io"

	"qlcc/internal/attachment"
	"qlcc/internal/model"
	"qlcc/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockDocumentService struct {
	mock.Mock
}

func (m *MockDocumentService) View(ctx context.Context) (*service.DocumentView, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.DocumentView), args.Error(1)
}

func (m *MockDocumentService) Submit(ctx context.Context, actor string, raw []byte) (*model.Document, error) {
	args := m.Called(ctx, actor, raw)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Document), args.Error(1)
}

func (m *MockDocumentService) DeleteFileImmediately(ctx context.Context, actor string, ref attachment.FileRef) (*model.Document, error) {
	args := m.Called(ctx, actor, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Document), args.Error(1)
}

func (m *MockDocumentService) Delete(ctx context.Context, actor string, id int64) error {
	args := m.Called(ctx, actor, id)
	return args.Error(0)
}

func (m *MockDocumentService) Download(ctx context.Context, ref attachment.FileRef) (io.ReadCloser, model.Attachment, error) {
	args := m.Called(ctx, ref)
	rc, _ := args.Get(0).(io.ReadCloser)
	return rc, args.Get(1).(model.Attachment), args.Error(2)
}
