package cmd

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/bmatsuo/conslisp/pkg/interp"
	"github.com/bmatsuo/conslisp/pkg/lisp"
	"github.com/bmatsuo/conslisp/pkg/parser"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve an interpreter as MCP tools on stdio",
	Long: `Serve a persistent interpreter over the Model Context Protocol on stdin and
stdout.  Definitions made by one tool call are visible to later calls.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		tools, err := newLispTools(interpConfigs()...)
		if err != nil {
			logrus.Fatal(err)
		}
		if err := server.ServeStdio(tools.server()); err != nil {
			logrus.Fatal(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

// lispTools serializes tool calls against a single interpreter.
type lispTools struct {
	mu  sync.Mutex
	in  *interp.Interp
	out bytes.Buffer
}

// newLispTools returns tools whose interpreter output is captured per call.
// Stdout carries the protocol so the interpreter never writes to it.
func newLispTools(configs ...interp.Config) (*lispTools, error) {
	t := &lispTools{}
	in, err := interp.New(append(configs, interp.WithStdout(&t.out))...)
	if err != nil {
		return nil, err
	}
	t.in = in
	return t, nil
}

func (t *lispTools) server() *server.MCPServer {
	s := server.NewMCPServer("conslisp", Version, server.WithToolCapabilities(false))

	s.AddTool(mcp.NewTool("lisp_eval",
		mcp.WithDescription("Evaluate lisp expressions in order and return the value of the last one along with any printed output"),
		mcp.WithString("expr", mcp.Required(), mcp.Description("Lisp source containing one or more expressions")),
	), t.handleEval)

	s.AddTool(mcp.NewTool("lisp_define",
		mcp.WithDescription("Evaluate a single expression and bind its value to a name in the global environment"),
		mcp.WithString("name", mcp.Required(), mcp.Description("Symbol to bind")),
		mcp.WithString("expr", mcp.Required(), mcp.Description("Lisp expression producing the value")),
	), t.handleDefine)

	s.AddTool(mcp.NewTool("lisp_bindings",
		mcp.WithDescription("List the names bound in the global environment"),
	), t.handleBindings)

	return s
}

func (t *lispTools) handleEval(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	expr, err := request.RequireString("expr")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.out.Reset()
	v, err := t.in.LoadString("lisp_eval", expr)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(t.out.String() + v.String()), nil
}

func (t *lispTools) handleDefine(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := request.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	expr, err := request.RequireString("expr")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	prog, err := parser.ParseString("lisp_define", expr)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if prog.Len() != 1 {
		return mcp.NewToolResultError(fmt.Sprintf("expected one expression (got %d)", prog.Len())), nil
	}
	if !isSymbolName(name) {
		return mcp.NewToolResultError(fmt.Sprintf("invalid name: %q", name)), nil
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.out.Reset()
	v, err := t.in.Eval(prog.Head())
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	t.in.Define(name, v)
	return mcp.NewToolResultText(fmt.Sprintf("%s = %v", name, v)), nil
}

func (t *lispTools) handleBindings(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return mcp.NewToolResultText(strings.Join(t.in.Bindings(), "\n")), nil
}

// isSymbolName reports whether name reads as exactly one symbol.
func isSymbolName(name string) bool {
	prog, err := parser.ParseString("name", name)
	if err != nil || prog.Len() != 1 {
		return false
	}
	sym, ok := lisp.GetSymbol(prog.Head())
	return ok && sym.String() == name
}
