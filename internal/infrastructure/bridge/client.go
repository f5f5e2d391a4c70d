// Package bridge implements the client side of the host analysis service:
// JSON-RPC 2.0 over a subprocess's stdin/stdout, with server-initiated
// progress notifications.
package bridge

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"sync"

	"github.com/substyle/substyle/internal/application/port"
	"github.com/substyle/substyle/internal/logging"
)

// ErrClientClosed is returned for calls made after the subprocess exited
// or Close was called.
var ErrClientClosed = errors.New("analyzer bridge: client closed")

// scanBufferSize accommodates transcription results for long media files.
const scanBufferSize = 16 << 20

// Client implements port.SubtitleAnalyzer over a spawned service process.
// One request is answered per ID; notifications carry no ID and are routed
// to the progress handler of the call in flight.
type Client struct {
	cmd   *exec.Cmd
	stdin io.WriteCloser

	mu         sync.Mutex
	nextID     int64
	pending    map[int64]chan *rpcMessage
	onProgress port.ProgressFunc
	closed     bool

	done chan struct{}
}

var _ port.SubtitleAnalyzer = (*Client)(nil)

// Spawn starts the analysis service subprocess and begins reading its
// stdout. The command and arguments come from configuration.
func Spawn(ctx context.Context, command string, args ...string) (*Client, error) {
	log := logging.FromContext(ctx)

	cmd := exec.CommandContext(ctx, command, args...)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("analyzer bridge: stdin pipe: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("analyzer bridge: stdout pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("analyzer bridge: start %q: %w", command, err)
	}

	log.Info().Str("command", command).Int("pid", cmd.Process.Pid).Msg("analysis service started")

	c := &Client{
		cmd:     cmd,
		stdin:   stdin,
		pending: make(map[int64]chan *rpcMessage),
		done:    make(chan struct{}),
	}
	go c.readLoop(ctx, stdout)
	return c, nil
}

// Initialize loads the analysis models.
func (c *Client) Initialize(ctx context.Context, opts port.AnalyzerOptions, progress port.ProgressFunc) error {
	params := map[string]any{
		"model":        opts.Model,
		"language":     opts.Language,
		"device":       opts.Device,
		"compute_type": opts.ComputeType,
	}
	return c.call(ctx, "initialize", params, nil, progress)
}

// Transcribe runs the analysis on one media file, streaming progress.
func (c *Client) Transcribe(ctx context.Context, audioPath, language string, progress port.ProgressFunc) (*port.TranscriptResult, error) {
	params := map[string]any{
		"audio_path": audioPath,
		"language":   language,
	}
	var result port.TranscriptResult
	if err := c.call(ctx, "transcribe", params, &result, progress); err != nil {
		return nil, err
	}
	return &result, nil
}

// Cancel aborts the operation in flight, if any.
func (c *Client) Cancel(ctx context.Context) error {
	return c.call(ctx, "cancel", nil, nil, nil)
}

// Status reports the service's current state.
func (c *Client) Status(ctx context.Context) (*port.AnalyzerStatus, error) {
	var status port.AnalyzerStatus
	if err := c.call(ctx, "get_status", nil, &status, nil); err != nil {
		return nil, err
	}
	return &status, nil
}

// Shutdown asks the service to clean up and exit.
func (c *Client) Shutdown(ctx context.Context) error {
	return c.call(ctx, "shutdown", nil, nil, nil)
}

// Close tears the subprocess down. Callers should attempt Shutdown first
// for a graceful exit.
func (c *Client) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.mu.Unlock()

	_ = c.stdin.Close()
	err := c.cmd.Wait()
	<-c.done
	return err
}

func (c *Client) call(ctx context.Context, method string, params any, result any, progress port.ProgressFunc) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClientClosed
	}
	c.nextID++
	id := c.nextID
	ch := make(chan *rpcMessage, 1)
	c.pending[id] = ch
	if progress != nil {
		c.onProgress = progress
	}
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		delete(c.pending, id)
		if progress != nil {
			c.onProgress = nil
		}
		c.mu.Unlock()
	}()

	payload, err := json.Marshal(rpcRequest{
		JSONRPC: "2.0",
		Method:  method,
		Params:  params,
		ID:      &id,
	})
	if err != nil {
		return fmt.Errorf("analyzer bridge: marshal %s request: %w", method, err)
	}
	payload = append(payload, '\n')

	if _, err := c.stdin.Write(payload); err != nil {
		return fmt.Errorf("analyzer bridge: write %s request: %w", method, err)
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-c.done:
		return ErrClientClosed
	case msg := <-ch:
		if msg.Error != nil {
			return fmt.Errorf("analyzer bridge: %s failed: %w", method, msg.Error)
		}
		if result != nil {
			if err := json.Unmarshal(msg.Result, result); err != nil {
				return fmt.Errorf("analyzer bridge: decode %s result: %w", method, err)
			}
		}
		return nil
	}
}

func (c *Client) readLoop(ctx context.Context, stdout io.Reader) {
	log := logging.FromContext(ctx)
	defer close(c.done)

	scanner := bufio.NewScanner(stdout)
	scanner.Buffer(make([]byte, 64<<10), scanBufferSize)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var msg rpcMessage
		if err := json.Unmarshal(line, &msg); err != nil {
			log.Warn().Err(err).Msg("analysis service emitted malformed message")
			continue
		}

		if msg.isNotification() {
			c.handleNotification(ctx, &msg)
			continue
		}
		if msg.ID == nil {
			continue
		}

		c.mu.Lock()
		ch, ok := c.pending[*msg.ID]
		c.mu.Unlock()
		if !ok {
			log.Debug().Int64("id", *msg.ID).Msg("response for unknown request id")
			continue
		}
		ch <- &msg
	}

	if err := scanner.Err(); err != nil {
		log.Warn().Err(err).Msg("analysis service stdout closed with error")
	}
}

func (c *Client) handleNotification(ctx context.Context, msg *rpcMessage) {
	log := logging.FromContext(ctx)

	if msg.Method != "progress" {
		log.Debug().Str("method", msg.Method).Msg("ignoring unknown notification")
		return
	}

	var progress port.AnalyzerProgress
	if err := json.Unmarshal(msg.Params, &progress); err != nil {
		log.Warn().Err(err).Msg("malformed progress notification")
		return
	}

	c.mu.Lock()
	handler := c.onProgress
	c.mu.Unlock()
	if handler != nil {
		handler(progress)
	}
}
