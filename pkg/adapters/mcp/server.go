package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/turing"
	"github.com/aretw0/turing/internal/dto"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/machines"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/mitchellh/mapstructure"
)

const machinesURI = "turing://machines"

// Engine defines the part of the turing engine exposed as MCP tools.
type Engine interface {
	Machines() []machines.Definition
	Run(ctx context.Context, req turing.RunRequest) (*domain.Snapshot, error)
	Snapshot(ctx context.Context, runID string) (*domain.Snapshot, error)
}

// Server wraps the engine and exposes it as an MCP Server.
type Server struct {
	engine    Engine
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance. A nil logger discards.
func NewServer(engine Engine, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s := &Server{
		engine:    engine,
		logger:    logger,
		mcpServer: server.NewMCPServer("turing-mcp", strings.TrimSpace(turing.Version)),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves the SSE transport on addr until ctx is done.
func (s *Server) ServeSSE(ctx context.Context, addr string) error {
	baseURL := "http://" + addr
	if strings.HasPrefix(addr, ":") {
		baseURL = "http://localhost" + addr
	}
	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	// TOOL: list_machines
	s.mcpServer.AddTool(mcp.NewTool("list_machines",
		mcp.WithDescription("List the available Turing machines with their alphabet, defaults and halt labels."),
	), s.handleListMachines)

	// TOOL: run_machine
	runTool := mcp.NewTool("run_machine",
		mcp.WithDescription("Run a machine on a tape until it halts or fails. Returns the final tape snapshot; failed runs carry an error field."),
		mcp.WithString("machine", mcp.Required(), mcp.Description("Machine name, see list_machines")),
		mcp.WithString("tape", mcp.Description("Initial symbols, written starting at the cursor. Whitespace is ignored.")),
		mcp.WithNumber("cursor", mcp.Description("Initial head position (defaults to the machine's)")),
		mcp.WithString("fill", mcp.Description("Single symbol for untouched cells (defaults to the machine's)")),
		mcp.WithOutputSchema[domain.Snapshot](),
	)
	s.mcpServer.AddTool(runTool, mcp.NewStructuredToolHandler(s.handleRunMachine))

	// TOOL: get_run
	s.mcpServer.AddTool(mcp.NewTool("get_run",
		mcp.WithDescription("Fetch the snapshot of a previous run by ID."),
		mcp.WithString("run_id", mcp.Required(), mcp.Description("Run ID returned by run_machine")),
	), s.handleGetRun)
}

func (s *Server) handleListMachines(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	b, err := json.Marshal(dto.FromDefinitions(s.engine.Machines()))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encode machines: %v", err)), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}

func (s *Server) handleRunMachine(ctx context.Context, request mcp.CallToolRequest, args map[string]any) (domain.Snapshot, error) {
	req, err := decodeRunRequest(args)
	if err != nil {
		return domain.Snapshot{}, err
	}

	snap, err := s.engine.Run(ctx, req)
	if snap == nil {
		s.logger.Warn("MCP run_machine: request rejected", "machine", req.Machine, "error", err)
		return domain.Snapshot{}, fmt.Errorf("run %s: %w", req.Machine, err)
	}
	if err != nil {
		s.logger.Debug("MCP run_machine: run did not halt", "run_id", snap.RunID, "error", err)
	}
	return *snap, nil
}

func (s *Server) handleGetRun(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	runID, err := request.RequireString("run_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	snap, err := s.engine.Snapshot(ctx, runID)
	if errors.Is(err, domain.ErrRunNotFound) {
		return mcp.NewToolResultError(fmt.Sprintf("run %s not found", runID)), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load run %s: %w", runID, err)
	}

	b, err := json.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("encode run %s: %w", runID, err)
	}
	return mcp.NewToolResultText(string(b)), nil
}

// decodeRunRequest maps tool arguments onto a RunRequest. JSON numbers arrive as
// float64 and are truncated to the int cursor.
func decodeRunRequest(args map[string]any) (turing.RunRequest, error) {
	var req turing.RunRequest
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      &req,
		ErrorUnused: true,
	})
	if err != nil {
		return req, err
	}
	if err := dec.Decode(args); err != nil {
		return req, fmt.Errorf("invalid arguments: %w", err)
	}
	if req.Machine == "" {
		return req, fmt.Errorf("invalid arguments: machine is required")
	}
	return req, nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(machinesURI, "Machine Catalog",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		b, err := json.Marshal(dto.FromDefinitions(s.engine.Machines()))
		if err != nil {
			return nil, fmt.Errorf("encode machines: %w", err)
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      machinesURI,
				MIMEType: "application/json",
				Text:     string(b),
			},
		}, nil
	})
}
