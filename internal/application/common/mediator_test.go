package common_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/sc-commander/internal/application/common"
)

type pingCommand struct{ Value int }

type pingHandler struct{ calls int }

func (h *pingHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	h.calls++
	cmd := request.(*pingCommand)
	if cmd.Value < 0 {
		return nil, errors.New("negative ping")
	}
	return cmd.Value * 2, nil
}

type recordingLogger struct {
	entries []string
}

func (l *recordingLogger) Log(level, message string, metadata map[string]interface{}) {
	l.entries = append(l.entries, level+":"+message)
}

func TestMediator_SendDispatchesToRegisteredHandler(t *testing.T) {
	// Arrange
	m := common.NewMediator()
	handler := &pingHandler{}
	require.NoError(t, common.RegisterHandler[*pingCommand](m, handler))

	// Act
	resp, err := m.Send(context.Background(), &pingCommand{Value: 21})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 42, resp)
	assert.Equal(t, 1, handler.calls)
}

func TestMediator_RejectsDuplicateAndUnknown(t *testing.T) {
	m := common.NewMediator()
	require.NoError(t, common.RegisterHandler[*pingCommand](m, &pingHandler{}))

	err := common.RegisterHandler[*pingCommand](m, &pingHandler{})
	assert.ErrorContains(t, err, "already registered")

	_, err = m.Send(context.Background(), &struct{}{})
	assert.ErrorContains(t, err, "no handler registered")

	_, err = m.Send(context.Background(), nil)
	assert.Error(t, err)
}

func TestMediator_MiddlewareOrder(t *testing.T) {
	m := common.NewMediator()
	require.NoError(t, common.RegisterHandler[*pingCommand](m, &pingHandler{}))

	var order []string
	trace := func(name string) common.Middleware {
		return func(ctx context.Context, request common.Request, next common.HandlerFunc) (common.Response, error) {
			order = append(order, name+">")
			resp, err := next(ctx, request)
			order = append(order, "<"+name)
			return resp, err
		}
	}
	m.Use(trace("outer"))
	m.Use(trace("inner"))
	m.Use(nil)

	_, err := m.Send(context.Background(), &pingCommand{Value: 1})

	require.NoError(t, err)
	assert.Equal(t, []string{"outer>", "inner>", "<inner", "<outer"}, order)
}

func TestLoggingMiddleware_LogsFailures(t *testing.T) {
	m := common.NewMediator()
	require.NoError(t, common.RegisterHandler[*pingCommand](m, &pingHandler{}))
	m.Use(common.LoggingMiddleware())
	logger := &recordingLogger{}
	ctx := common.WithLogger(context.Background(), logger)

	_, err := m.Send(ctx, &pingCommand{Value: 1})
	require.NoError(t, err)
	assert.Empty(t, logger.entries)

	_, err = m.Send(ctx, &pingCommand{Value: -1})
	require.Error(t, err)
	assert.Equal(t, []string{"WARNING:request failed"}, logger.entries)
}

func TestLoggerFromContext_FallsBackToNoop(t *testing.T) {
	logger := common.LoggerFromContext(context.Background())

	assert.NotNil(t, logger)
	assert.NotPanics(t, func() { logger.Log(common.LevelInfo, "ignored", nil) })
}

func TestRequestName(t *testing.T) {
	assert.Equal(t, "pingCommand", common.RequestName(&pingCommand{}))
	assert.Equal(t, "pingCommand", common.RequestName(pingCommand{}))
	assert.Equal(t, "UnknownRequest", common.RequestName(nil))
}
