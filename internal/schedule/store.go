package schedule

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"family-meal-planner/internal/schedule/schedule_db"
	"family-meal-planner/internal/shared"

	"gopkg.in/yaml.v3"
)

//go:embed templates.yaml
var systemTemplatesYAML []byte

// DefaultTemplateID is used when neither the request nor the family names one.
const DefaultTemplateID = "weekdays-dinner"

// Store serves the embedded system templates and the families' own templates.
type Store struct {
	queries *scheduledb.Queries
	db      *sql.DB
	system  map[string]Template
}

// NewStore loads the system templates and wraps the database.
func NewStore(d *sql.DB) (*Store, error) {
	system, err := loadSystemTemplates(systemTemplatesYAML)
	if err != nil {
		return nil, err
	}
	return &Store{
		queries: scheduledb.New(d),
		db:      d,
		system:  system,
	}, nil
}

func loadSystemTemplates(data []byte) (map[string]Template, error) {
	var doc struct {
		Templates []Template `yaml:"templates"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse system templates: %w", err)
	}

	out := make(map[string]Template, len(doc.Templates))
	for _, t := range doc.Templates {
		t.System = true
		if err := t.Validate(); err != nil {
			return nil, fmt.Errorf("invalid system template %s: %w", t.ID, err)
		}
		out[t.ID] = t
	}
	return out, nil
}

// Get returns a system template or one of the family's templates. It returns
// nil, nil when nothing visible to the family matches.
func (s *Store) Get(ctx context.Context, familyID, id string) (*Template, error) {
	if t, ok := s.system[id]; ok {
		return &t, nil
	}

	row, err := s.queries.GetTemplate(ctx, scheduledb.GetTemplateParams{ID: id, FamilyID: familyID})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get template %s: %w", id, err)
	}
	return decodeTemplate(row)
}

// List returns the system templates followed by the family's templates.
func (s *Store) List(ctx context.Context, familyID string) ([]Template, error) {
	var out []Template
	for _, t := range s.system {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	rows, err := s.queries.ListTemplatesForFamily(ctx, familyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}
	for _, row := range rows {
		t, err := decodeTemplate(row)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	return out, nil
}

// Save creates or replaces a family template. System templates are read-only.
func (s *Store) Save(ctx context.Context, t Template) error {
	if _, ok := s.system[t.ID]; ok {
		return shared.Forbiddenf("system template %s is read-only", t.ID)
	}
	if t.FamilyID == "" {
		return shared.Validationf("family template requires a family id")
	}
	if err := t.Validate(); err != nil {
		return err
	}

	entries, err := json.Marshal(t.Entries)
	if err != nil {
		return fmt.Errorf("failed to marshal template entries: %w", err)
	}
	n, err := s.queries.UpsertTemplate(ctx, scheduledb.UpsertTemplateParams{
		ID:        t.ID,
		FamilyID:  t.FamilyID,
		Name:      t.Name,
		Entries:   string(entries),
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to save template %s: %w", t.ID, err)
	}
	// Zero rows means the id belongs to another family.
	if n == 0 {
		return shared.Conflictf("template id %s is already taken", t.ID)
	}
	return nil
}

// Delete removes a family template. A template still set as the family's
// default cannot be deleted.
func (s *Store) Delete(ctx context.Context, familyID, id string) error {
	if _, ok := s.system[id]; ok {
		return shared.Forbiddenf("system template %s is read-only", id)
	}

	def, err := s.queries.GetFamilyDefaultTemplateID(ctx, familyID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("failed to read family default template: %w", err)
	}
	if def.Valid && def.String == id {
		return shared.Conflictf("template %s is the family default", id)
	}

	n, err := s.queries.DeleteTemplate(ctx, scheduledb.DeleteTemplateParams{ID: id, FamilyID: familyID})
	if err != nil {
		return fmt.Errorf("failed to delete template %s: %w", id, err)
	}
	if n == 0 {
		return shared.NotFoundf("template %s", id)
	}
	return nil
}

func decodeTemplate(row scheduledb.ScheduleTemplate) (*Template, error) {
	var entries []Entry
	if err := json.Unmarshal([]byte(row.Entries), &entries); err != nil {
		return nil, fmt.Errorf("failed to unmarshal entries of template %s: %w", row.ID, err)
	}
	return &Template{
		ID:       row.ID,
		FamilyID: row.FamilyID,
		Name:     row.Name,
		Entries:  entries,
	}, nil
}
