// Package sqlite provides a SQLite-backed record source: the host-side
// collaborator that loads rows into records for the view and predicate
// layers. A fetch reads only the columns the caller names, so fields outside
// that set stay unloaded on the produced records and any later attempt to
// filter or group on them fails fast instead of silently misbehaving.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/asaidimu/go-events"
	"github.com/asaidimu/go-recordview/core/schema"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Source loads and stores records in a SQLite database. Each schema maps to
// one table named after the schema, with one column per field.
type Source struct {
	db     *sql.DB
	logger *zap.Logger
	bus    *events.TypedEventBus[SourceEvent]
}

// NewSource creates a record source over an open database handle.
func NewSource(db *sql.DB, logger *zap.Logger) (*Source, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	bus, err := events.NewTypedEventBus[SourceEvent](events.DefaultConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to create event bus: %w", err)
	}
	return &Source{db: db, logger: logger, bus: bus}, nil
}

// columnType maps a field kind to its SQLite column type.
func columnType(kind schema.FieldKind) string {
	switch kind {
	case schema.KindBoolean:
		return "INTEGER"
	case schema.KindNumeric:
		return "REAL"
	case schema.KindDate, schema.KindDateTime:
		return "TEXT"
	default:
		return "TEXT"
	}
}

// CreateTable creates the backing table for a schema if it does not exist.
func (s *Source) CreateTable(ctx context.Context, def *schema.SchemaDefinition) error {
	cols := make([]string, len(def.Fields))
	for i, f := range def.Fields {
		cols[i] = fmt.Sprintf("%q %s", f.Name, columnType(f.Kind))
	}
	stmt := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %q (%s)", def.Name, strings.Join(cols, ", "))
	if _, err := s.db.ExecContext(ctx, stmt); err != nil {
		return fmt.Errorf("failed to create table %q: %w", def.Name, err)
	}
	s.logger.Debug("ensured table", zap.String("schema", def.Name))
	return nil
}

// Insert stores records in the schema's table. Records missing a value for
// an identifier field are assigned a fresh UUID first, and the assignment is
// visible on the caller's records. Fields unset on a record store as NULL.
func (s *Source) Insert(ctx context.Context, def *schema.SchemaDefinition, records []*schema.Record) error {
	startTime := time.Now()
	s.emitEvent(createEvent(SourceEventInsertStart, "insert", def.Name, nil, len(records), nil, startTime))

	err := s.insert(ctx, def, records)
	if err != nil {
		errStr := err.Error()
		s.emitEvent(createEvent(SourceEventInsertFailed, "insert", def.Name, nil, len(records), &errStr, startTime))
		return err
	}

	s.emitEvent(createEvent(SourceEventInsertSuccess, "insert", def.Name, nil, len(records), nil, startTime))
	return nil
}

func (s *Source) insert(ctx context.Context, def *schema.SchemaDefinition, records []*schema.Record) error {
	names := def.FieldNames()
	cols := make([]string, len(names))
	placeholders := make([]string, len(names))
	for i, name := range names {
		cols[i] = fmt.Sprintf("%q", name)
		placeholders[i] = "?"
	}
	stmt := fmt.Sprintf("INSERT INTO %q (%s) VALUES (%s)",
		def.Name, strings.Join(cols, ", "), strings.Join(placeholders, ", "))

	for _, r := range records {
		if r.Schema() != def.Name {
			return fmt.Errorf("record of schema %q cannot be stored in table %q", r.Schema(), def.Name)
		}
		for _, f := range def.Fields {
			if f.Kind == schema.KindIdentifier && !r.Loaded(f.Name) {
				r.Set(f.Name, uuid.New().String())
			}
		}
		args := make([]any, len(def.Fields))
		for i, f := range def.Fields {
			value, loaded := r.Get(f.Name)
			if !loaded || value == nil {
				args[i] = nil
				continue
			}
			args[i] = storeValue(f.Kind, value)
		}
		if _, err := s.db.ExecContext(ctx, stmt, args...); err != nil {
			return fmt.Errorf("failed to insert into %q: %w", def.Name, err)
		}
	}
	s.logger.Debug("inserted records", zap.String("schema", def.Name), zap.Int("count", len(records)))
	return nil
}

// storeValue converts a field value into its column representation.
func storeValue(kind schema.FieldKind, value any) any {
	switch kind {
	case schema.KindBoolean:
		if b, ok := value.(bool); ok {
			if b {
				return 1
			}
			return 0
		}
	case schema.KindDate, schema.KindDateTime:
		if t, ok := value.(time.Time); ok {
			return t.UTC().Format(time.RFC3339Nano)
		}
	}
	return value
}

// Fetch loads every row of the schema's table into records, populating only
// the named fields. Passing no field names loads the full declared field
// set. Unnamed fields remain unloaded on the records, which is exactly the
// state the engine's ErrFieldNotLoaded guards.
func (s *Source) Fetch(ctx context.Context, def *schema.SchemaDefinition, fields ...string) ([]*schema.Record, error) {
	startTime := time.Now()
	s.emitEvent(createEvent(SourceEventFetchStart, "fetch", def.Name, fields, 0, nil, startTime))

	records, err := s.fetch(ctx, def, fields)
	if err != nil {
		errStr := err.Error()
		s.emitEvent(createEvent(SourceEventFetchFailed, "fetch", def.Name, fields, 0, &errStr, startTime))
		return nil, err
	}

	s.emitEvent(createEvent(SourceEventFetchSuccess, "fetch", def.Name, fields, len(records), nil, startTime))
	return records, nil
}

func (s *Source) fetch(ctx context.Context, def *schema.SchemaDefinition, fields []string) ([]*schema.Record, error) {
	if len(fields) == 0 {
		fields = def.FieldNames()
	}
	cols := make([]string, len(fields))
	for i, name := range fields {
		if _, ok := def.Field(name); !ok {
			return nil, fmt.Errorf("field %q is not declared on schema %q", name, def.Name)
		}
		cols[i] = fmt.Sprintf("%q", name)
	}
	stmt := fmt.Sprintf("SELECT %s FROM %q", strings.Join(cols, ", "), def.Name)

	rows, err := s.db.QueryContext(ctx, stmt)
	if err != nil {
		return nil, fmt.Errorf("failed to query %q: %w", def.Name, err)
	}
	defer rows.Close()

	records, err := s.readRows(def, fields, rows)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("fetched records",
		zap.String("schema", def.Name),
		zap.Int("count", len(records)),
		zap.Int("fields", len(fields)))
	return records, nil
}

// readRows scans the result set into records, converting column values back
// into the field kind's Go representation.
func (s *Source) readRows(def *schema.SchemaDefinition, fields []string, rows *sql.Rows) ([]*schema.Record, error) {
	var records []*schema.Record
	for rows.Next() {
		values := make([]any, len(fields))
		scanArgs := make([]any, len(fields))
		for i := range values {
			scanArgs[i] = &values[i]
		}
		if err := rows.Scan(scanArgs...); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}

		r := schema.NewRecord(def.Name)
		for i, name := range fields {
			fieldDef, _ := def.Field(name)
			value, err := loadValue(fieldDef.Kind, values[i])
			if err != nil {
				s.logger.Warn("unreadable column value",
					zap.String("schema", def.Name),
					zap.String("field", name),
					zap.Error(err))
				r.Set(name, values[i])
				continue
			}
			r.Set(name, value)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error after scanning rows: %w", err)
	}
	return records, nil
}

// loadValue converts a scanned column value into the field kind's Go
// representation. NULL columns load as nil for every kind.
func loadValue(kind schema.FieldKind, value any) (any, error) {
	if value == nil {
		return nil, nil
	}
	switch kind {
	case schema.KindBoolean:
		switch v := value.(type) {
		case int64:
			return v != 0, nil
		case bool:
			return v, nil
		}
	case schema.KindNumeric:
		switch v := value.(type) {
		case float64:
			return v, nil
		case int64:
			return float64(v), nil
		}
	case schema.KindDate, schema.KindDateTime:
		var raw string
		switch v := value.(type) {
		case string:
			raw = v
		case []byte:
			raw = string(v)
		case time.Time:
			return v, nil
		}
		if raw != "" {
			t, err := time.Parse(time.RFC3339Nano, raw)
			if err != nil {
				return nil, fmt.Errorf("invalid temporal value %q: %w", raw, err)
			}
			return t, nil
		}
	case schema.KindIdentifier, schema.KindText:
		switch v := value.(type) {
		case string:
			return v, nil
		case []byte:
			return string(v), nil
		}
	}
	return nil, fmt.Errorf("column value %T does not fit kind %s", value, kind)
}
