package cli

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"note-manager/internal/app"
	"note-manager/internal/config"
	"note-manager/internal/logger"
	notesService "note-manager/internal/service/notes"
)

const defaultConfigFile = "config.yml"

// env общее состояние одного запуска CLI
type env struct {
	configFile string
	driver     string
	path       string

	now func() time.Time

	cfg *config.Config
	log *logrus.Logger
	app *app.App
}

// NewRootCmd создает корневую команду со всеми подкомандами
func NewRootCmd() *cobra.Command {
	return newRootCmd(&env{now: time.Now})
}

func newRootCmd(e *env) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "notes",
		Short: "Note manager - personal notes with deadlines",
		Long: `notes keeps personal notes with a status and an optional deadline.
Notes are stored in a YAML, JSON Lines, SQLite or protobuf file selected in config.yml.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&e.configFile, "config", defaultConfigFile, "path to the config file")
	flags.StringVar(&e.driver, "driver", "", "storage driver override ("+fmt.Sprint(config.Drivers())+")")
	flags.StringVar(&e.path, "path", "", "storage location override")

	rootCmd.AddCommand(addCmd(e))
	rootCmd.AddCommand(listCmd(e))
	rootCmd.AddCommand(showCmd(e))
	rootCmd.AddCommand(editCmd(e))
	rootCmd.AddCommand(deleteCmd(e))
	rootCmd.AddCommand(searchCmd(e))
	rootCmd.AddCommand(urgentCmd(e))
	rootCmd.AddCommand(exportCmd(e))

	return rootCmd
}

// open загружает конфигурацию, создает логгер и поднимает приложение
func (e *env) open(cmd *cobra.Command) error {
	cfg, err := config.Load(e.configFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if e.driver != "" {
		cfg.Storage.Driver = e.driver
		if e.path == "" {
			cfg.Storage.Path = config.DefaultPath(e.driver)
		}
	}
	if e.path != "" {
		cfg.Storage.Path = e.path
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if !cfg.Display.Color {
		color.NoColor = true
	}

	log := logger.NewWithOutput(cfg.Logger, cmd.ErrOrStderr())

	a, err := app.New(cfg, log, notesService.WithClock(e.now))
	if err != nil {
		return err
	}
	if err := a.Initialize(cmd.Context()); err != nil {
		_ = a.Shutdown()
		return err
	}

	e.cfg = cfg
	e.log = log
	e.app = a
	return nil
}

func (e *env) close() error {
	if e.app == nil {
		return nil
	}
	err := e.app.Shutdown()
	e.app = nil
	return err
}
