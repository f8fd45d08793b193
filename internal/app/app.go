package app

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"note-manager/internal/config"
	"note-manager/internal/repository"
	"note-manager/internal/repository/file"
	"note-manager/internal/repository/memory"
	"note-manager/internal/repository/protobuf"
	"note-manager/internal/repository/sqlite"
	svc "note-manager/internal/service"
	notesService "note-manager/internal/service/notes"
)

// App собранное приложение: хранилище, сервис заметок и рассылка событий
type App struct {
	Config *config.Config
	Log    logrus.FieldLogger

	Store  repository.NoteStore
	Notes  svc.NoteService
	Events *notesService.EventService

	events chan notesService.Event
	done   chan struct{}
}

// NewStore создает хранилище по настройкам драйвера
func NewStore(cfg *config.ConfigStorage) (repository.NoteStore, error) {
	switch cfg.Driver {
	case config.DriverMemory:
		return memory.NewStore(), nil
	case config.DriverYAML:
		return file.NewStore(cfg.Path, file.YAML{}), nil
	case config.DriverJSONL:
		return file.NewStore(cfg.Path, file.JSONLines{}), nil
	case config.DriverSQLite:
		store, err := sqlite.Open(cfg.Path)
		if err != nil {
			return nil, fmt.Errorf("sqlite.Open: %w", err)
		}
		return store, nil
	case config.DriverProtobuf:
		return protobuf.NewStore(cfg.Path), nil
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.Driver)
	}
}

// New создает приложение, хранилище уже открыто, но заметки еще не загружены
func New(cfg *config.Config, log logrus.FieldLogger, opts ...notesService.Option) (*App, error) {
	store, err := NewStore(cfg.Storage)
	if err != nil {
		return nil, err
	}
	log.WithFields(logrus.Fields{
		"driver":   cfg.Storage.Driver,
		"location": cfg.Storage.Path,
	}).Debug("📋 Initialized note store")

	return newWithStore(cfg, log, store, opts...), nil
}

func newWithStore(cfg *config.Config, log logrus.FieldLogger, store repository.NoteStore, opts ...notesService.Option) *App {
	events := notesService.NewEventService()

	// Инициализация компонентов (DI): Store → Service
	opts = append([]notesService.Option{
		notesService.WithLogger(log),
		notesService.WithEvents(events),
	}, opts...)
	notes := notesService.NewNoteService(store, opts...)

	return &App{
		Config: cfg,
		Log:    log,
		Store:  store,
		Notes:  notes,
		Events: events,
	}
}

// Initialize загружает коллекцию и подписывает журнал на события изменений
func (a *App) Initialize(ctx context.Context) error {
	if err := a.Notes.Load(ctx); err != nil {
		return err
	}
	a.Log.WithField("count", a.Notes.Count()).Debug("Initialized note service")

	a.events = a.Events.Subscribe()
	a.done = make(chan struct{})
	go func() {
		defer close(a.done)
		for ev := range a.events {
			a.Log.WithFields(logrus.Fields{
				"event": ev.Kind,
				"id":    ev.Note.ID,
			}).Debug("📝 Note changed")
		}
	}()

	return nil
}

// Shutdown останавливает подписку на события и закрывает хранилище
func (a *App) Shutdown() error {
	if a.events != nil {
		a.Events.Unsubscribe(a.events)
		<-a.done
		a.events = nil
	}

	if err := a.Store.Close(); err != nil {
		return fmt.Errorf("close note store: %w", err)
	}
	a.Log.Debug("Note store closed")
	return nil
}
