package core_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/onimusic/notifications-helper/internal/relay/core"
	"github.com/onimusic/notifications-helper/telegram"
)

// Mock implementations

type MockDispatcher struct {
	mock.Mock
}

func (m *MockDispatcher) Dispatch(ctx context.Context, chatID string, n core.Notification) (*telegram.Response, error) {
	args := m.Called(ctx, chatID, n)
	if resp, ok := args.Get(0).(*telegram.Response); ok {
		return resp, args.Error(1)
	}
	return nil, args.Error(1)
}

type MockTargetResolver struct {
	mock.Mock
}

func (m *MockTargetResolver) Resolve(ctx context.Context, target string) (string, error) {
	args := m.Called(ctx, target)
	return args.String(0), args.Error(1)
}

type MockDispatchRecorder struct {
	mock.Mock
}

func (m *MockDispatchRecorder) RecordDispatch(ctx context.Context, record core.DispatchRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockDispatchRecorder) GetStats(ctx context.Context) (*core.DispatchStats, error) {
	args := m.Called(ctx)
	if stats, ok := args.Get(0).(*core.DispatchStats); ok {
		return stats, args.Error(1)
	}
	return nil, args.Error(1)
}

// Test Helper Functions

func createTestService(t *testing.T) (*core.Service, *MockDispatcher, *MockTargetResolver, *MockDispatchRecorder) {
	mockDispatcher := &MockDispatcher{}
	mockResolver := &MockTargetResolver{}
	mockRecorder := &MockDispatchRecorder{}

	// Build before any expectation is registered.
	service, err := core.NewService(core.ServiceConfig{
		Dispatcher:     mockDispatcher,
		TargetResolver: mockResolver,
		Recorder:       mockRecorder,
		Logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	require.NoError(t, err)

	return service, mockDispatcher, mockResolver, mockRecorder
}

func TestNewService_MissingDependency(t *testing.T) {
	service, err := core.NewService(core.ServiceConfig{
		Dispatcher: &MockDispatcher{},
		Logger:     slog.Default(),
	})
	assert.Error(t, err)
	assert.Nil(t, service)
}

func TestService_Send_Success(t *testing.T) {
	service, dispatcher, resolver, recorder := createTestService(t)
	ctx := context.Background()

	n := core.Notification{
		Kind:    telegram.KindPhoto,
		Target:  "releases",
		Content: "https://cdn.example.com/cover.jpg",
		Caption: "Novo single",
	}
	telegramResp := &telegram.Response{StatusCode: http.StatusOK, Body: []byte(`{"ok":true}`)}

	resolver.On("Resolve", ctx, "releases").Return("@oni_releases", nil)
	dispatcher.On("Dispatch", ctx, "@oni_releases", n).Return(telegramResp, nil).Once()
	recorder.On("RecordDispatch", ctx, mock.MatchedBy(func(r core.DispatchRecord) bool {
		return r.Kind == "photo" &&
			r.Method == "sendPhoto" &&
			r.ChatID == "@oni_releases" &&
			r.StatusCode == http.StatusOK &&
			r.Success &&
			r.Error == "" &&
			r.ID != ""
	})).Return(nil)

	result, err := service.Send(ctx, n)
	require.NoError(t, err)

	assert.Same(t, telegramResp, result.Response)
	assert.Equal(t, "@oni_releases", result.ChatID)
	assert.NotEmpty(t, result.ID)

	dispatcher.AssertExpectations(t)
	resolver.AssertExpectations(t)
	recorder.AssertExpectations(t)
}

func TestService_Send_NonSuccessResponsePassesThrough(t *testing.T) {
	service, dispatcher, resolver, recorder := createTestService(t)
	ctx := context.Background()

	n := core.Notification{Kind: telegram.KindText, Target: "@c", Content: "hello"}
	telegramResp := &telegram.Response{
		StatusCode: http.StatusBadRequest,
		Body:       []byte(`{"ok":false,"description":"Bad Request: chat not found"}`),
	}

	resolver.On("Resolve", ctx, "@c").Return("@c", nil)
	dispatcher.On("Dispatch", ctx, "@c", n).Return(telegramResp, nil).Once()
	recorder.On("RecordDispatch", ctx, mock.MatchedBy(func(r core.DispatchRecord) bool {
		return !r.Success && r.StatusCode == http.StatusBadRequest
	})).Return(nil)

	result, err := service.Send(ctx, n)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, result.Response.StatusCode)
	assert.Equal(t, telegramResp.Body, result.Response.Body)
}

func TestService_Send_TransportErrorIsNotRetried(t *testing.T) {
	service, dispatcher, resolver, recorder := createTestService(t)
	ctx := context.Background()

	n := core.Notification{Kind: telegram.KindVideo, Target: "@c", Content: "vid"}
	transportErr := &telegram.TransportError{Method: "sendVideo", Err: errors.New("connection refused")}

	resolver.On("Resolve", ctx, "@c").Return("@c", nil)
	dispatcher.On("Dispatch", ctx, "@c", n).Return(nil, transportErr)
	recorder.On("RecordDispatch", ctx, mock.MatchedBy(func(r core.DispatchRecord) bool {
		return !r.Success && r.StatusCode == 0 && strings.Contains(r.Error, "connection refused")
	})).Return(nil)

	result, err := service.Send(ctx, n)
	assert.Nil(t, result)
	assert.Same(t, transportErr, err)
	assert.True(t, core.IsTransportError(err))

	dispatcher.AssertNumberOfCalls(t, "Dispatch", 1)
}

func TestService_Send_RecorderFailureDoesNotFailSend(t *testing.T) {
	service, dispatcher, resolver, recorder := createTestService(t)
	ctx := context.Background()

	n := core.Notification{Kind: telegram.KindDocument, Target: "@c", Content: "doc"}

	resolver.On("Resolve", ctx, "@c").Return("@c", nil)
	dispatcher.On("Dispatch", ctx, "@c", n).Return(&telegram.Response{StatusCode: http.StatusOK}, nil)
	recorder.On("RecordDispatch", ctx, mock.Anything).Return(errors.New("database is locked"))

	result, err := service.Send(ctx, n)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, result.Response.StatusCode)
}

func TestService_Send_InvalidNotification(t *testing.T) {
	service, dispatcher, resolver, _ := createTestService(t)

	_, err := service.Send(context.Background(), core.Notification{Kind: telegram.KindText, Target: "@c"})

	var validationErr core.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "content", validationErr.Field)
	assert.ErrorIs(t, err, core.ErrEmptyContent)

	dispatcher.AssertNotCalled(t, "Dispatch", mock.Anything, mock.Anything, mock.Anything)
	resolver.AssertNotCalled(t, "Resolve", mock.Anything, mock.Anything)
}

func TestService_Send_UnknownTarget(t *testing.T) {
	service, dispatcher, resolver, _ := createTestService(t)
	ctx := context.Background()

	resolver.On("Resolve", ctx, "nobody").Return("", core.ErrTargetNotFound)

	_, err := service.Send(ctx, core.Notification{Kind: telegram.KindText, Target: "nobody", Content: "hi"})
	assert.ErrorIs(t, err, core.ErrTargetNotFound)

	dispatcher.AssertNotCalled(t, "Dispatch", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Send_ResolverFailure(t *testing.T) {
	service, _, resolver, _ := createTestService(t)
	ctx := context.Background()

	resolver.On("Resolve", ctx, "alerts").Return("", errors.New("targets file unreadable"))

	_, err := service.Send(ctx, core.Notification{Kind: telegram.KindText, Target: "alerts", Content: "hi"})

	var serviceErr core.ServiceError
	require.ErrorAs(t, err, &serviceErr)
	assert.Equal(t, core.ErrCodeInvalidTarget, serviceErr.Code)
}

func TestService_Stats(t *testing.T) {
	service, _, _, recorder := createTestService(t)
	ctx := context.Background()

	expected := &core.DispatchStats{Total: 3, Succeeded: 2, Failed: 1, ByKind: map[string]int{"text": 3}}
	recorder.On("GetStats", ctx).Return(expected, nil).Once()

	stats, err := service.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, expected, stats)

	recorder.On("GetStats", ctx).Return(nil, errors.New("no such table"))
	_, err = service.Stats(ctx)

	var serviceErr core.ServiceError
	require.ErrorAs(t, err, &serviceErr)
	assert.Equal(t, core.ErrCodeRecordFailed, serviceErr.Code)
}
