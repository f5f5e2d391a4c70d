package bridge

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/substyle/substyle/internal/application/port"
)

func testContext() context.Context {
	logger := zerolog.Nop()
	return logger.WithContext(context.Background())
}

// spawnScript starts a client against a short shell script standing in for
// the analysis service.
func spawnScript(t *testing.T, script string) *Client {
	t.Helper()
	client, err := Spawn(testContext(), "sh", "-c", script)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestClient_Call_Response(t *testing.T) {
	client := spawnScript(t,
		`read line; printf '%s\n' '{"jsonrpc":"2.0","result":{"status":"cancelled"},"id":1}'`)

	ctx, cancel := context.WithTimeout(testContext(), 5*time.Second)
	defer cancel()

	require.NoError(t, client.Cancel(ctx))
}

func TestClient_Status_DecodesResult(t *testing.T) {
	client := spawnScript(t,
		`read line; printf '%s\n' '{"jsonrpc":"2.0","result":{"state":"ready","model":"large-v3"},"id":1}'`)

	ctx, cancel := context.WithTimeout(testContext(), 5*time.Second)
	defer cancel()

	status, err := client.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ready", status.State)
	assert.Equal(t, "large-v3", status.Model)
}

func TestClient_Initialize_DispatchesProgress(t *testing.T) {
	script := `read line; ` +
		`printf '%s\n' '{"jsonrpc":"2.0","method":"progress","params":{"stage":"model","percent":42.5,"message":"loading"}}'; ` +
		`printf '%s\n' '{"jsonrpc":"2.0","result":{"status":"initialized"},"id":1}'`
	client := spawnScript(t, script)

	ctx, cancel := context.WithTimeout(testContext(), 5*time.Second)
	defer cancel()

	var updates []port.AnalyzerProgress
	err := client.Initialize(ctx, port.AnalyzerOptions{Model: "large-v3"}, func(p port.AnalyzerProgress) {
		updates = append(updates, p)
	})
	require.NoError(t, err)

	require.Len(t, updates, 1)
	assert.Equal(t, "model", updates[0].Stage)
	assert.Equal(t, 42.5, updates[0].Percent)
	assert.Equal(t, "loading", updates[0].Message)
}

func TestClient_Call_ErrorResponse(t *testing.T) {
	client := spawnScript(t,
		`read line; printf '%s\n' '{"jsonrpc":"2.0","error":{"code":-32601,"message":"Method not found: cancel"},"id":1}'`)

	ctx, cancel := context.WithTimeout(testContext(), 5*time.Second)
	defer cancel()

	err := client.Cancel(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Method not found")
}

func TestClient_Transcribe_DecodesSegments(t *testing.T) {
	result := `{"jsonrpc":"2.0","result":{"language":"de","segments":[{"start":0.5,"end":2.25,"text":"Hallo Welt"}]},"id":1}`
	client := spawnScript(t, `read line; printf '%s\n' '`+result+`'`)

	ctx, cancel := context.WithTimeout(testContext(), 5*time.Second)
	defer cancel()

	got, err := client.Transcribe(ctx, "/tmp/audio.wav", "de", nil)
	require.NoError(t, err)
	assert.Equal(t, "de", got.Language)
	require.Len(t, got.Segments, 1)
	assert.Equal(t, "Hallo Welt", got.Segments[0].Text)
}

func TestClient_CallAfterClose(t *testing.T) {
	client := spawnScript(t, `read line`)
	require.NoError(t, client.Close())

	err := client.Cancel(testContext())
	assert.ErrorIs(t, err, ErrClientClosed)
}

func TestRPCMessage_NotificationClassification(t *testing.T) {
	var notification rpcMessage
	require.NoError(t, json.Unmarshal(
		[]byte(`{"jsonrpc":"2.0","method":"progress","params":{"stage":"align","percent":80}}`),
		&notification))
	assert.True(t, notification.isNotification())

	var response rpcMessage
	require.NoError(t, json.Unmarshal(
		[]byte(`{"jsonrpc":"2.0","result":{},"id":3}`),
		&response))
	assert.False(t, response.isNotification())
}
