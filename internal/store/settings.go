package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/patrickmn/go-cache"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"milling-shop-backend/internal/model"
)

// Setting keys.
const (
	KeyMaterials  = "materiales"
	KeyShades     = "shades"
	KeyBrands     = "marcas"
	KeyThickness  = "grosores"
	KeyMachines   = "maquinas"
	KeyFurnaces   = "hornos"
	KeyVacuums    = "aspiradoras"
	KeyMachineDoc = "doc_maquinas"
)

// DefaultLists holds the value each list setting has until it is first saved.
var DefaultLists = map[string][]string{
	KeyMaterials: {"Zirconia", "Disilicato", "PMMA", "Cera", "Wax", "Composite"},
	KeyShades:    {"A1", "A2", "A3", "B1", "B2", "C1", "C2"},
	KeyBrands:    {"Vita", "Ivoclar", "Aidite"},
	KeyThickness: {"14", "16", "18", "20", "22", "25"},
	KeyMachines:  {"A", "B", "C", "D"},
	KeyFurnaces:  {"Horno 1", "Horno 2", "Horno 3"},
	KeyVacuums:   {"Aspiradora 1", "Aspiradora 2", "Aspiradora 3"},
}

// MachineGroups maps a maintenance group to the setting listing its machines.
var MachineGroups = map[string]string{
	"fresadoras":  KeyMachines,
	"hornos":      KeyFurnaces,
	"aspiradoras": KeyVacuums,
}

// Documentation categories, one per machine group.
const (
	DocMillingMachines = "Milling Machines"
	DocFurnaces        = "Furnaces"
	DocVacuumCleaners  = "Vacuum Cleaners"
)

var docCategories = []struct {
	category string
	key      string
}{
	{DocMillingMachines, KeyMachines},
	{DocFurnaces, KeyFurnaces},
	{DocVacuumCleaners, KeyVacuums},
}

// IsListKey reports whether key names a list setting.
func IsListKey(key string) bool {
	_, ok := DefaultLists[key]
	return ok
}

// GetList returns the list stored under key, or def when nothing is stored.
func (s *gormStore) GetList(ctx context.Context, key string, def []string) ([]string, error) {
	raw, ok, err := s.rawSetting(ctx, key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return append([]string{}, def...), nil
	}
	return model.SplitList(raw), nil
}

// SetList stores values under key as a comma-joined list.
func (s *gormStore) SetList(ctx context.Context, key string, values []string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return validationf("setting key is required")
	}
	return s.putSetting(ctx, key, strings.Join(model.SplitList(strings.Join(values, ",")), ","))
}

// Settings returns every list setting, defaults filled in.
func (s *gormStore) Settings(ctx context.Context) (map[string][]string, error) {
	out := make(map[string][]string, len(DefaultLists))
	for key, def := range DefaultLists {
		values, err := s.GetList(ctx, key, def)
		if err != nil {
			return nil, err
		}
		out[key] = values
	}
	return out, nil
}

// SaveSettings stores each list in lists. Unknown keys are rejected before
// anything is written.
func (s *gormStore) SaveSettings(ctx context.Context, lists map[string][]string) error {
	keys := make([]string, 0, len(lists))
	for key := range lists {
		if !IsListKey(key) {
			return validationf("unknown setting %q", key)
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if err := s.SetList(ctx, key, lists[key]); err != nil {
			return err
		}
	}
	return nil
}

type docEntry struct {
	Model  string `json:"model"`
	Serial string `json:"serial"`
	Link   string `json:"link"`
}

// MachineDocs returns documentation for every configured machine, grouped by
// category. Machines without saved documentation get empty fields.
func (s *gormStore) MachineDocs(ctx context.Context) ([]MachineDoc, error) {
	stored, err := s.docMap(ctx)
	if err != nil {
		return nil, err
	}

	var docs []MachineDoc
	for _, c := range docCategories {
		names, err := s.GetList(ctx, c.key, DefaultLists[c.key])
		if err != nil {
			return nil, err
		}
		for _, name := range names {
			e := stored[c.category+":"+name]
			docs = append(docs, MachineDoc{
				Category: c.category,
				Name:     name,
				Model:    e.Model,
				Serial:   e.Serial,
				Link:     e.Link,
			})
		}
	}
	return docs, nil
}

// SaveMachineDocs merges docs into the stored documentation.
func (s *gormStore) SaveMachineDocs(ctx context.Context, docs []MachineDoc) error {
	stored, err := s.docMap(ctx)
	if err != nil {
		return err
	}
	for _, d := range docs {
		category, name := strings.TrimSpace(d.Category), strings.TrimSpace(d.Name)
		if category == "" || name == "" {
			return validationf("documentation needs a category and a machine name")
		}
		stored[category+":"+name] = docEntry{
			Model:  strings.TrimSpace(d.Model),
			Serial: strings.TrimSpace(d.Serial),
			Link:   strings.TrimSpace(d.Link),
		}
	}

	raw, err := json.Marshal(stored)
	if err != nil {
		return fmt.Errorf("failed to encode machine documentation: %w", err)
	}
	return s.putSetting(ctx, KeyMachineDoc, string(raw))
}

func (s *gormStore) docMap(ctx context.Context) (map[string]docEntry, error) {
	stored := make(map[string]docEntry)
	raw, ok, err := s.rawSetting(ctx, KeyMachineDoc)
	if err != nil || !ok || strings.TrimSpace(raw) == "" {
		return stored, err
	}
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		s.log.WithError(err).Warn("stored machine documentation is unreadable; starting empty")
		return make(map[string]docEntry), nil
	}
	return stored, nil
}

// rawSetting reads a setting through the cache. ok is false when the key has
// never been saved.
func (s *gormStore) rawSetting(ctx context.Context, key string) (string, bool, error) {
	if key == "" {
		return "", false, nil
	}
	if v, found := s.settings.Get(key); found {
		return v.(string), true, nil
	}

	var row model.Setting
	err := s.db.WithContext(ctx).Where(&model.Setting{Key: key}).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read setting %q: %w", key, err)
	}
	s.settings.Set(key, row.Value, cache.DefaultExpiration)
	return row.Value, true, nil
}

func (s *gormStore) putSetting(ctx context.Context, key, value string) error {
	row := model.Setting{Key: key, Value: value}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("failed to save setting %q: %w", key, err)
	}
	s.settings.Delete(key)
	return nil
}
