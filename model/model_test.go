package model

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollect_NonStreaming(t *testing.T) {
	m := NewMockModel("test", "mock")
	m.AddResponse("hello", "world")

	respCh, errCh := m.Generate(context.Background(), Request{Prompt: "hello"})
	text, err := Collect(context.Background(), respCh, errCh)
	require.NoError(t, err)
	assert.Equal(t, "world", text)
}

func TestCollect_Streaming(t *testing.T) {
	m := NewMockModel("test", "mock")
	m.AddResponse("hi", "streamed text")

	respCh, errCh := m.Generate(context.Background(), Request{Prompt: "hi", Stream: true})
	text, err := Collect(context.Background(), respCh, errCh)
	require.NoError(t, err)
	assert.Equal(t, "streamed text", text)
}

func TestCollect_Error(t *testing.T) {
	m := NewMockModel("test", "mock")
	m.Fail(errors.New("backend down"))

	respCh, errCh := m.Generate(context.Background(), Request{Prompt: "x"})
	_, err := Collect(context.Background(), respCh, errCh)
	assert.EqualError(t, err, "backend down")
}

func TestCollect_Cancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// Unbuffered channels that never produce force the ctx branch.
	respCh := make(chan Response)
	errCh := make(chan error)
	_, err := Collect(ctx, respCh, errCh)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMockModel_Script(t *testing.T) {
	m := NewMockModel("test", "mock")
	m.Enqueue("first", "second")

	for _, want := range []string{"first", "second"} {
		respCh, errCh := m.Generate(context.Background(), Request{Prompt: "any"})
		text, err := Collect(context.Background(), respCh, errCh)
		require.NoError(t, err)
		assert.Equal(t, want, text)
	}

	assert.Len(t, m.Calls(), 2)
}

func TestMockModel_Info(t *testing.T) {
	m := NewMockModel("test-model", "mock")
	info := m.Info()
	assert.Equal(t, "test-model", info.Name)
	assert.Equal(t, "mock", info.Provider)
}
