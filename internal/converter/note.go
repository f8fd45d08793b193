package converter

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"note-manager/internal/model"
)

// TimeLayout формат хранения временных меток (ISO-8601)
const TimeLayout = time.RFC3339Nano

// Канонические имена полей записи
const (
	FieldContent     = "content"
	FieldCreatedDate = "created_date"
	FieldID          = "id"
	FieldIssueDate   = "issue_date"
	FieldStatus      = "status"
	FieldTitle       = "title"
	FieldUsername    = "username"
)

// ErrMissingField возвращается, если в записи нет обязательного поля
var ErrMissingField = errors.New("missing required field")

// Record плоское представление заметки для хранения.
// Указатели позволяют отличить отсутствующее поле от пустой строки.
type Record struct {
	Content     *string `json:"content" yaml:"content"`
	CreatedDate *string `json:"created_date" yaml:"created_date"`
	ID          *string `json:"id" yaml:"id"`
	IssueDate   *string `json:"issue_date" yaml:"issue_date"`
	Status      *string `json:"status" yaml:"status"`
	Title       *string `json:"title" yaml:"title"`
	Username    *string `json:"username" yaml:"username"`
}

type recordField struct {
	name  string
	value *string
}

// fields возвращает поля в каноническом порядке
func (r Record) fields() []recordField {
	return []recordField{
		{FieldContent, r.Content},
		{FieldCreatedDate, r.CreatedDate},
		{FieldID, r.ID},
		{FieldIssueDate, r.IssueDate},
		{FieldStatus, r.Status},
		{FieldTitle, r.Title},
		{FieldUsername, r.Username},
	}
}

// Map возвращает присутствующие поля записи
func (r Record) Map() map[string]string {
	m := make(map[string]string, 7)
	for _, f := range r.fields() {
		if f.value != nil {
			m[f.name] = *f.value
		}
	}
	return m
}

// RecordFromMap собирает запись из произвольного отображения; отсутствующие ключи остаются nil
func RecordFromMap(m map[string]string) Record {
	get := func(key string) *string {
		v, ok := m[key]
		if !ok {
			return nil
		}
		return &v
	}
	return Record{
		Content:     get(FieldContent),
		CreatedDate: get(FieldCreatedDate),
		ID:          get(FieldID),
		IssueDate:   get(FieldIssueDate),
		Status:      get(FieldStatus),
		Title:       get(FieldTitle),
		Username:    get(FieldUsername),
	}
}

func (r Record) String() string {
	var b strings.Builder
	b.WriteByte('{')
	first := true
	for _, f := range r.fields() {
		if f.value == nil {
			continue
		}
		if !first {
			b.WriteString(", ")
		}
		first = false
		fmt.Fprintf(&b, "%s: %q", f.name, *f.value)
	}
	b.WriteByte('}')
	return b.String()
}

// DataIntegrityError запись из хранилища структурно некорректна
type DataIntegrityError struct {
	Record Record
	Field  string
	Err    error
}

func (e *DataIntegrityError) Error() string {
	return fmt.Sprintf("data integrity error in record %s: field %q: %v", e.Record, e.Field, e.Err)
}

func (e *DataIntegrityError) Unwrap() error {
	return e.Err
}

// RecordToModel конвертирует запись хранилища в доменную модель с проверкой целостности
func RecordToModel(rec Record) (model.Note, error) {
	for _, f := range rec.fields() {
		if f.value == nil {
			return model.Note{}, &DataIntegrityError{Record: rec, Field: f.name, Err: ErrMissingField}
		}
	}

	createdDate, err := time.Parse(TimeLayout, *rec.CreatedDate)
	if err != nil {
		return model.Note{}, &DataIntegrityError{Record: rec, Field: FieldCreatedDate, Err: err}
	}

	issueDate, err := time.Parse(TimeLayout, *rec.IssueDate)
	if err != nil {
		return model.Note{}, &DataIntegrityError{Record: rec, Field: FieldIssueDate, Err: err}
	}

	status, err := model.StatusFromName(*rec.Status)
	if err != nil {
		return model.Note{}, &DataIntegrityError{Record: rec, Field: FieldStatus, Err: fmt.Errorf("%w: %q", err, *rec.Status)}
	}

	return model.Note{
		ID:          *rec.ID,
		Username:    *rec.Username,
		Title:       *rec.Title,
		Content:     *rec.Content,
		Status:      status,
		CreatedDate: createdDate,
		IssueDate:   issueDate,
	}, nil
}

// ModelToRecord конвертирует доменную модель в запись хранилища
func ModelToRecord(note model.Note) Record {
	str := func(s string) *string { return &s }

	return Record{
		Content:     str(note.Content),
		CreatedDate: str(note.CreatedDate.Format(TimeLayout)),
		ID:          str(note.ID),
		IssueDate:   str(note.IssueDate.Format(TimeLayout)),
		Status:      str(note.Status.String()),
		Title:       str(note.Title),
		Username:    str(note.Username),
	}
}

// RecordsToModels конвертирует все записи; первая ошибка прерывает конвертацию целиком
func RecordsToModels(records []Record) ([]model.Note, error) {
	notes := make([]model.Note, 0, len(records))
	for _, rec := range records {
		note, err := RecordToModel(rec)
		if err != nil {
			return nil, err
		}
		notes = append(notes, note)
	}
	return notes, nil
}

// ModelsToRecords конвертирует слайс доменных моделей в слайс записей
func ModelsToRecords(notes []model.Note) []Record {
	if notes == nil {
		return nil
	}

	records := make([]Record, len(notes))
	for i, note := range notes {
		records[i] = ModelToRecord(note)
	}

	return records
}
