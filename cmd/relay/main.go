// Command relay is the interactive natural-language dispatcher: it
// classifies each line as knowledge, action, or hybrid, answers
// knowledge queries with the model, and maps action queries onto tool
// calls executed by the relay-server subprocess.
package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/relay-ai/relay/internal/agent"
	"github.com/relay-ai/relay/internal/classifier"
	"github.com/relay-ai/relay/internal/config"
	apperrors "github.com/relay-ai/relay/internal/errors"
	"github.com/relay-ai/relay/internal/history"
	"github.com/relay-ai/relay/internal/model"
	"github.com/relay-ai/relay/internal/remote"
	"github.com/relay-ai/relay/internal/stats"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	promptStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	infoStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	labelStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("relay: "+err.Error()))
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(configPath())
	if err != nil {
		return err
	}

	var backend model.Model
	if cfg.HasModel() {
		mc := model.DefaultNVIDIAConfig(cfg.Model.APIKey)
		mc.BaseURL = cfg.Model.BaseURL
		mc.Model = cfg.Model.Model
		mc.Temperature = cfg.Model.Temperature
		mc.MaxTokens = cfg.Model.MaxTokens
		if cfg.Model.TimeoutSec > 0 {
			mc.Timeout = time.Duration(cfg.Model.TimeoutSec) * time.Second
		}
		backend = model.NewNVIDIAClient(mc)
	}

	parser := classifier.NewParser(&classifier.Config{
		Model:           backend,
		ConfidenceFloor: cfg.Parser.ConfidenceFloor,
		UseLLM:          cfg.Parser.UseLLM && backend != nil,
		UsePatterns:     cfg.Parser.UsePatterns,
	})

	serverCmd := cfg.Server.Command
	if serverCmd == "" {
		serverCmd = "relay-server"
	}
	client := remote.New(serverCmd, cfg.Server.Args...)
	defer client.Close()

	var recorder agent.Recorder
	store, err := history.Open(cfg.Paths.HistoryDB)
	if err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("history disabled: "+err.Error()))
	} else {
		defer store.Close()
		recorder = store
	}

	collector := stats.NewCollector()
	a := agent.New(&agent.Config{
		Model:    backend,
		Parser:   parser,
		Session:  agent.NewSession(cfg.WorkingDir()),
		Invoker:  client,
		Stats:    collector,
		Recorder: recorder,
	})

	printBanner(a, backend)

	if err := client.Connect(ctx); err != nil {
		fmt.Println(errorStyle.Render("Could not start tool server: " + apperrors.FormatUserMessage(err)))
		fmt.Println(infoStyle.Render("Knowledge queries still work; actions need the server."))
	} else if err := a.Connect(ctx); err != nil {
		fmt.Println(errorStyle.Render("Tool server probe failed: " + apperrors.FormatUserMessage(err)))
	} else {
		fmt.Println(infoStyle.Render("Connected to tool server"))
	}
	fmt.Println()

	return repl(ctx, os.Stdin, a, collector, backend, store)
}

// repl reads lines off a channel so an interrupt during a blocked read
// still exits the loop normally and the deferred closes run.
func repl(ctx context.Context, in io.Reader, a *agent.Agent, collector *stats.Collector, backend model.Model, store *history.Store) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lines := make(chan string)
	scanErr := make(chan error, 1)
	go func() {
		for scanner.Scan() {
			lines <- scanner.Text()
		}
		scanErr <- scanner.Err()
		close(lines)
	}()

	for {
		fmt.Print(promptStyle.Render("You: "))

		select {
		case <-ctx.Done():
			fmt.Println()
			fmt.Println(infoStyle.Render("Goodbye!"))
			return nil
		case line, ok := <-lines:
			if !ok {
				fmt.Println()
				return <-scanErr
			}
			if handleLine(ctx, a, collector, backend, store, line) {
				return nil
			}
		}
	}
}

// handleLine dispatches one input line; it reports true when the user
// asked to exit.
func handleLine(ctx context.Context, a *agent.Agent, collector *stats.Collector, backend model.Model, store *history.Store, line string) bool {
	line = strings.TrimSpace(line)
	lower := strings.ToLower(line)

	switch {
	case line == "":
	case lower == "exit" || lower == "quit" || lower == "q" || lower == "bye":
		fmt.Println(infoStyle.Render("Goodbye!"))
		return true
	case lower == "help":
		printHelp()
	case lower == "status":
		printStatus(a, collector, backend, store)
	case lower == "examples":
		printExamples()
	case lower == "history":
		printHistory(ctx, a, store)
	case strings.HasPrefix(lower, "cd "):
		changeDir(a, strings.TrimSpace(line[3:]))
	default:
		result := a.ProcessQuery(ctx, line)
		fmt.Println()
		fmt.Println(labelStyle.Render("Response:"))
		fmt.Println(result)
		fmt.Println()
	}

	return false
}

func changeDir(a *agent.Agent, dir string) {
	if err := a.Session().ChangeDir(dir); err != nil {
		fmt.Println(errorStyle.Render(apperrors.FormatUserMessage(err)))
		return
	}
	fmt.Println(infoStyle.Render("Working directory: " + a.Session().WorkingDir()))
}

func printBanner(a *agent.Agent, backend model.Model) {
	fmt.Println(titleStyle.Render("Relay - natural language command dispatcher"))
	fmt.Println(infoStyle.Render("Knowledge queries answered directly, action queries run as tools, hybrid does both."))
	fmt.Println(infoStyle.Render("Working directory: " + a.Session().WorkingDir()))
	if backend == nil {
		fmt.Println(infoStyle.Render("No model configured (set NVIDIA_API_KEY); using pattern classification only."))
	}
	fmt.Println(infoStyle.Render("Commands: help, status, examples, history, cd <dir>, exit"))
}

func printHelp() {
	fmt.Println()
	fmt.Println(labelStyle.Render("Knowledge queries") + " (answered by the model):")
	fmt.Println("   'What is artificial intelligence?'")
	fmt.Println("   'Explain the benefits of Python programming'")
	fmt.Println("   'Tell me about climate change'")
	fmt.Println()
	fmt.Println(labelStyle.Render("Action queries") + " (executed as tools):")
	fmt.Println("   'Create a file called notes.txt'")
	fmt.Println("   'Make a folder called my_project'")
	fmt.Println("   'Show me files in Documents'")
	fmt.Println("   'Run the dir command'")
	fmt.Println("   'Launch calculator'")
	fmt.Println()
	fmt.Println(labelStyle.Render("Hybrid queries") + " (both):")
	fmt.Println("   'Explain machine learning and create demo.py'")
	fmt.Println("   'What is file compression and zip my folder'")
	fmt.Println()
}

func printExamples() {
	fmt.Println()
	fmt.Println(labelStyle.Render("Practical examples:"))
	fmt.Println()
	fmt.Println("   'Create a Python script called calculator.py'")
	fmt.Println("   'Make a folder for my data science project'")
	fmt.Println("   'Create file report.csv with content Name,Score'")
	fmt.Println("   'Read notes.txt'")
	fmt.Println("   'Zip the my_project folder'")
	fmt.Println("   'List all processes'")
	fmt.Println("   'Explain REST APIs and create api_demo.py'")
	fmt.Println()
}

func printHistory(ctx context.Context, a *agent.Agent, store *history.Store) {
	if store == nil {
		fmt.Println(infoStyle.Render("History is disabled."))
		return
	}

	entries, err := store.Recent(ctx, a.Session().ID, 10)
	if err != nil {
		fmt.Println(errorStyle.Render("Could not read history: " + apperrors.FormatUserMessage(err)))
		return
	}
	if len(entries) == 0 {
		fmt.Println(infoStyle.Render("No queries recorded in this session yet."))
		return
	}

	fmt.Println()
	fmt.Println(labelStyle.Render("Recent queries:"))
	for _, e := range entries {
		line := fmt.Sprintf("   [%s] %s", e.Route, e.Utterance)
		if e.Tool != "" {
			line += " -> " + e.Tool
		}
		fmt.Println(line)
	}
	fmt.Println()
}

func printStatus(a *agent.Agent, collector *stats.Collector, backend model.Model, store *history.Store) {
	snapshot := collector.Collect()

	fmt.Println()
	fmt.Println(labelStyle.Render("System status:"))
	fmt.Println("   Tool server:       " + onOff(a.Session().Connected(), "connected", "disconnected"))
	fmt.Println("   Model backend:     " + onOff(backend != nil && backend.IsAvailable(), "available", "not configured"))
	fmt.Println("   Working directory: " + a.Session().WorkingDir())
	fmt.Printf("   Uptime:            %s\n", snapshot.Uptime)
	fmt.Printf("   Queries processed: %d (errors: %d)\n", snapshot.RequestCount, snapshot.ErrorCount)
	for route, count := range snapshot.Routes {
		fmt.Printf("   Route %-10s  %d\n", route+":", count)
	}
	if store != nil {
		fmt.Printf("   History size:      %d bytes\n", store.Size())
	}
	fmt.Println()
}

func onOff(ok bool, yes, no string) string {
	if ok {
		return infoStyle.Render(yes)
	}
	return errorStyle.Render(no)
}

func configPath() string {
	if path := os.Getenv("RELAY_CONFIG"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "relay.toml"
	}
	return filepath.Join(home, ".relay", "config.toml")
}
