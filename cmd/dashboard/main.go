package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rovshanmuradov/perf-dashboard/internal/config"
	"github.com/rovshanmuradov/perf-dashboard/internal/logger"
	"github.com/rovshanmuradov/perf-dashboard/internal/ui"
	"github.com/rovshanmuradov/perf-dashboard/internal/ui/router"
	"github.com/rovshanmuradov/perf-dashboard/internal/ui/screen"
	"go.uber.org/zap"
)

// AppModel represents the main TUI application model
type AppModel struct {
	router   *router.Router
	services *ui.Services
	width    int
	height   int
}

// NewAppModel creates a new application model opening on the dashboard
func NewAppModel(services *ui.Services) *AppModel {
	dashboard := screen.NewDashboardScreen(services)

	return &AppModel{
		router:   router.New(dashboard),
		services: services,
	}
}

// Init initializes the application
func (m *AppModel) Init() tea.Cmd {
	return tea.Batch(
		m.router.Init(),
		tea.EnterAltScreen,
	)
}

// Update handles application-level updates
func (m *AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

	case ui.RouterMsg:
		return m, m.handleNavigation(msg.To)
	}

	updatedRouter, cmd := m.router.Update(msg)
	m.router = updatedRouter.(*router.Router)
	return m, cmd
}

// handleNavigation handles navigation to different screens
func (m *AppModel) handleNavigation(route ui.Route) tea.Cmd {
	switch route {
	case ui.RouteDashboard:
		return m.router.Replace(screen.NewDashboardScreen(m.services))

	case ui.RouteLogs:
		return m.router.Push(screen.NewLogsScreen(m.services))

	default:
		return nil
	}
}

// View renders the application
func (m *AppModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	return m.router.View()
}

func main() {
	configPath := flag.String("config", "configs/config.json", "Path to config file")
	flag.Parse()

	// Startup failures happen before the alternate screen, so they go to
	// the console logger; once the TUI starts, logging moves to the buffer.
	startupLogger, err := logger.CreatePrettyLogger(false)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to init logger: %v\n", err)
		os.Exit(1)
	}

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		startupLogger.Fatal("Failed to load config", zap.Error(err))
	}

	logBuf, err := logger.NewBuffer(cfg.LogBufferSize, cfg.LogSpillPath)
	if err != nil {
		startupLogger.Fatal("Failed to init log buffer", zap.Error(err))
	}
	defer func() {
		_ = logBuf.Close()
	}()

	appLogger, err := logger.CreateTUILogger(cfg.DebugLogging, logBuf)
	if err != nil {
		startupLogger.Fatal("Failed to init buffered logger", zap.Error(err))
	}
	defer func() {
		_ = appLogger.Sync()
	}()

	appLogger.Info("Starting performance records dashboard",
		zap.String("data_dir", cfg.DataDir),
		zap.String("asset", cfg.Asset))

	services := ui.NewServices(cfg, logBuf, appLogger)

	program := tea.NewProgram(
		NewAppModel(services),
		tea.WithAltScreen(),
	)

	// Quit the program cleanly when a shutdown signal arrives.
	go func() {
		<-rootCtx.Done()
		program.Quit()
	}()

	if _, err := program.Run(); err != nil {
		appLogger.Error("Dashboard terminated with error", zap.Error(err))
	}

	appLogger.Info("Dashboard stopped")
}
