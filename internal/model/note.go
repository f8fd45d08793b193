package model

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyUsername          = errors.New("username cannot be empty")
	ErrEmptyTitle             = errors.New("title cannot be empty")
	ErrUnknownStatus          = errors.New("unknown note status")
	ErrDeadlineBeforeCreation = errors.New("deadline cannot be earlier than creation date")
)

// NoDeadline - служебное значение даты для заметок без дедлайна
var NoDeadline = time.Time{}

// Status состояние заметки
type Status int

const (
	StatusActive Status = iota
	StatusCompleted
	StatusPostponed
	StatusTermless
)

var statusNames = [...]string{
	StatusActive:    "ACTIVE",
	StatusCompleted: "COMPLETED",
	StatusPostponed: "POSTPONED",
	StatusTermless:  "TERMLESS",
}

// Statuses возвращает все состояния в порядке меню
func Statuses() []Status {
	return []Status{StatusActive, StatusCompleted, StatusPostponed, StatusTermless}
}

func (s Status) String() string {
	if !s.Valid() {
		return "Status(" + strconv.Itoa(int(s)) + ")"
	}
	return statusNames[s]
}

// Valid проверяет, что значение входит в перечисление
func (s Status) Valid() bool {
	return s >= StatusActive && s <= StatusTermless
}

// HasDeadline сообщает, имеет ли смысл дедлайн для данного состояния
func (s Status) HasDeadline() bool {
	return s == StatusActive || s == StatusPostponed
}

// IsTerminal - завершенные и бессрочные заметки никогда не считаются срочными
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusTermless
}

// StatusFromName разрешает только символьное имя (формат хранения)
func StatusFromName(name string) (Status, error) {
	for i, n := range statusNames {
		if n == name {
			return Status(i), nil
		}
	}
	return 0, ErrUnknownStatus
}

// ParseStatus разбирает пользовательский ввод: имя в любом регистре
// или номер пункта меню начиная с 1
func ParseStatus(input string) (Status, error) {
	input = strings.TrimSpace(input)
	if n, err := strconv.Atoi(input); err == nil {
		s := Status(n - 1)
		if !s.Valid() {
			return 0, ErrUnknownStatus
		}
		return s, nil
	}
	return StatusFromName(strings.ToUpper(input))
}

// NewID генерирует уникальный идентификатор заметки
func NewID() string {
	return uuid.New().String()
}

// Note представляет заметку (доменная модель)
type Note struct {
	ID          string    // UUID заметки
	Username    string    // Автор заметки
	Title       string    // Заголовок заметки
	Content     string    // Содержание заметки
	Status      Status    // Состояние
	CreatedDate time.Time // Дата создания
	IssueDate   time.Time // Дедлайн или NoDeadline
}

// HasDeadline сообщает, установлен ли реальный дедлайн
func (n *Note) HasDeadline() bool {
	return !n.IssueDate.Equal(NoDeadline)
}

// Validate проверяет валидность заметки
func (n *Note) Validate() error {
	if strings.TrimSpace(n.Username) == "" {
		return ErrEmptyUsername
	}
	if strings.TrimSpace(n.Title) == "" {
		return ErrEmptyTitle
	}
	if !n.Status.Valid() {
		return ErrUnknownStatus
	}
	if n.HasDeadline() && n.IssueDate.Before(n.CreatedDate) {
		return ErrDeadlineBeforeCreation
	}
	return nil
}

// IsEmpty проверяет, пуста ли заметка
func (n *Note) IsEmpty() bool {
	return n.ID == "" && n.Title == "" && n.Content == ""
}
