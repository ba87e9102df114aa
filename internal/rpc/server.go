// Package rpc exposes the checking service to editor integrations over
// newline-delimited JSON-RPC 2.0 on stdio.
package rpc

import (
	"bufio"
	"context"
	"encoding/json"
	"io"

	"github.com/blackwell-systems/prosecheck/internal/checker"
)

// Server reads JSON-RPC requests from r and writes responses to w,
// dispatching to the checking service.
type Server struct {
	svc     *checker.Service
	methods map[string]handler
}

// handler is the signature for RPC method handlers.
type handler func(ctx context.Context, params json.RawMessage) (any, error)

// jsonrpcRequest is a JSON-RPC 2.0 request message.
type jsonrpcRequest struct {
	JSONRPC string           `json:"jsonrpc"`
	ID      *json.RawMessage `json:"id,omitempty"`
	Method  string           `json:"method"`
	Params  json.RawMessage  `json:"params,omitempty"`
}

// jsonrpcResponse is a JSON-RPC 2.0 response message.
type jsonrpcResponse struct {
	JSONRPC string           `json:"jsonrpc"`
	ID      *json.RawMessage `json:"id,omitempty"`
	Result  any              `json:"result,omitempty"`
	Error   *jsonrpcError    `json:"error,omitempty"`
}

// jsonrpcError represents a JSON-RPC 2.0 error object.
type jsonrpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Request parameter shapes.
type checkTextParams struct {
	Text       string   `json:"text"`
	Categories []string `json:"categories,omitempty"`
	Language   string   `json:"language,omitempty"`
}

type applySuggestionParams struct {
	IssueID    string `json:"issue_id"`
	Suggestion string `json:"suggestion"`
}

type setEnabledParams struct {
	Enabled bool `json:"enabled"`
}

// NewServer constructs a Server around the given service.
func NewServer(svc *checker.Service) *Server {
	s := &Server{svc: svc}
	s.methods = map[string]handler{
		"check_text":       s.handleCheckText,
		"content_changed":  s.handleContentChanged,
		"apply_suggestion": s.handleApplySuggestion,
		"get_health":       s.handleGetHealth,
		"get_statistics":   s.handleGetStatistics,
		"clear_cache":      s.handleClearCache,
		"set_enabled":      s.handleSetEnabled,
	}
	return s
}

// Run blocks, reading JSON-RPC 2.0 messages from r and writing responses to
// w, until ctx is cancelled or r returns EOF. Returns nil on clean shutdown,
// or a non-nil error for unexpected I/O failures.
func (s *Server) Run(ctx context.Context, r io.Reader, w io.Writer) error {
	bw := bufio.NewWriter(w)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	lineCh := make(chan string)
	errCh := make(chan error, 1)

	go func() {
		for scanner.Scan() {
			line := scanner.Text()
			select {
			case lineCh <- line:
			case <-ctx.Done():
				return
			}
		}
		if err := scanner.Err(); err != nil {
			errCh <- err
		}
		close(lineCh)
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case err := <-errCh:
			return err
		case line, ok := <-lineCh:
			if !ok {
				// The reader is done. A scanner error, if any, was
				// queued before the channel closed; surface it rather
				// than reporting a clean EOF.
				select {
				case err := <-errCh:
					return err
				default:
					return nil
				}
			}
			if err := s.handleLine(ctx, line, bw); err != nil {
				return err
			}
		}
	}
}

// handleLine processes a single JSON-RPC line and writes the response.
func (s *Server) handleLine(ctx context.Context, line string, bw *bufio.Writer) error {
	var req jsonrpcRequest
	if err := json.Unmarshal([]byte(line), &req); err != nil {
		return s.writeError(bw, nil, -32700, "Parse error")
	}

	h, ok := s.methods[req.Method]

	// Notifications (no id) are dispatched but get no response.
	if req.ID == nil {
		if ok {
			_, _ = h(ctx, req.Params)
		}
		return nil
	}

	if !ok {
		return s.writeError(bw, req.ID, -32601, "Method not found")
	}

	result, err := h(ctx, req.Params)
	if err != nil {
		return s.writeError(bw, req.ID, -32000, err.Error())
	}
	return s.write(bw, jsonrpcResponse{JSONRPC: "2.0", ID: req.ID, Result: result})
}

func (s *Server) handleCheckText(ctx context.Context, params json.RawMessage) (any, error) {
	var p checkTextParams
	if len(params) > 0 {
		if err := json.Unmarshal(params, &p); err != nil {
			return nil, err
		}
	}
	return s.svc.CheckText(ctx, p.Text, checker.Options{
		Categories: p.Categories,
		Language:   p.Language,
	})
}

func (s *Server) handleContentChanged(_ context.Context, params json.RawMessage) (any, error) {
	var p checkTextParams
	if len(params) > 0 {
		if err := json.Unmarshal(params, &p); err != nil {
			return nil, err
		}
	}
	s.svc.OnContentChanged(p.Text)
	return map[string]bool{"scheduled": true}, nil
}

func (s *Server) handleApplySuggestion(_ context.Context, params json.RawMessage) (any, error) {
	var p applySuggestionParams
	if err := json.Unmarshal(params, &p); err != nil {
		return nil, err
	}
	applied := s.svc.ApplySuggestion(p.IssueID, p.Suggestion)
	return map[string]bool{"applied": applied}, nil
}

func (s *Server) handleGetHealth(context.Context, json.RawMessage) (any, error) {
	return s.svc.GetHealthReport(), nil
}

func (s *Server) handleGetStatistics(context.Context, json.RawMessage) (any, error) {
	return s.svc.Statistics(), nil
}

func (s *Server) handleClearCache(context.Context, json.RawMessage) (any, error) {
	s.svc.ClearCache()
	return map[string]bool{"cleared": true}, nil
}

func (s *Server) handleSetEnabled(_ context.Context, params json.RawMessage) (any, error) {
	var p setEnabledParams
	if err := json.Unmarshal(params, &p); err != nil {
		return nil, err
	}
	s.svc.SetEnabled(p.Enabled)
	return map[string]bool{"enabled": p.Enabled}, nil
}

func (s *Server) write(bw *bufio.Writer, resp jsonrpcResponse) error {
	data, err := json.Marshal(resp)
	if err != nil {
		return err
	}
	if _, err := bw.Write(append(data, '\n')); err != nil {
		return err
	}
	return bw.Flush()
}

func (s *Server) writeError(bw *bufio.Writer, id *json.RawMessage, code int, message string) error {
	return s.write(bw, jsonrpcResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error:   &jsonrpcError{Code: code, Message: message},
	})
}
