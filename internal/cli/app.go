package cli

import (
	"io"
	"os"
	"time"

	"todo/internal/api"
	"todo/internal/config"
	"todo/internal/services"
)

// timeNow is a variable that can be replaced in tests
var timeNow = time.Now

// IOStreams holds the streams commands read from and write to.
type IOStreams struct {
	In     io.Reader
	Out    io.Writer
	ErrOut io.Writer
}

// DefaultStreams returns the process standard streams.
func DefaultStreams() IOStreams {
	return IOStreams{In: os.Stdin, Out: os.Stdout, ErrOut: os.Stderr}
}

// App carries the dependencies shared by the command handlers
type App struct {
	container *api.Container
	tasks     services.TaskService
	config    *config.Config
	streams   IOStreams
}

// NewApp creates a new CLI application instance with dependency injection
func NewApp(container *api.Container, streams IOStreams) *App {
	return &App{
		container: container,
		tasks:     container.Tasks(),
		config:    container.Config,
		streams:   streams,
	}
}

// Close releases the container
func (a *App) Close() error {
	return a.container.Close()
}
