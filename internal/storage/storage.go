package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/martinnjensen/MetalWatch/internal/crypto"
	"github.com/martinnjensen/MetalWatch/internal/event"
	"github.com/martinnjensen/MetalWatch/internal/logger"
	"github.com/martinnjensen/MetalWatch/internal/match"
)

const (
	recordsFile = "records.json"
	profileFile = "profile.json"
	sourcesFile = "sources.json"
)

// FileStore handles persistence of records, the preference profile and
// source status in a data directory.
type FileStore struct {
	dataDir string
	enc     *crypto.Encryptor
}

// New creates a FileStore, expanding a leading ~ and creating the data
// directory if needed. The encryptor may be nil, in which case the
// notification address is stored in the clear.
func New(dataDir string, enc *crypto.Encryptor) (*FileStore, error) {
	if strings.HasPrefix(dataDir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, dataDir[2:])
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	return &FileStore{dataDir: dataDir, enc: enc}, nil
}

// readJSON loads a JSON document into out. A missing or malformed file
// leaves out untouched and returns false with no error.
func (s *FileStore) readJSON(name string, out interface{}) (bool, error) {
	data, err := os.ReadFile(filepath.Join(s.dataDir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("reading %s: %w", name, err)
	}

	if err := json.Unmarshal(data, out); err != nil {
		logger.Warn("ignoring malformed state file", logger.Fields{
			"file": name,
		})
		return false, nil
	}
	return true, nil
}

func (s *FileStore) writeJSON(name string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", name, err)
	}
	if err := os.WriteFile(filepath.Join(s.dataDir, name), data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	return nil
}

// PreviousRecords loads the full set of records persisted by earlier runs.
func (s *FileStore) PreviousRecords(ctx context.Context) ([]*event.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var records []*event.Record
	if _, err := s.readJSON(recordsFile, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// SaveRecords replaces the persisted record set with the given listing.
func (s *FileStore) SaveRecords(ctx context.Context, records []*event.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if records == nil {
		records = []*event.Record{}
	}
	return s.writeJSON(recordsFile, records)
}

// Profile loads the preference profile, decrypting the notification
// address. A missing profile yields nil, which the matcher treats as
// pass-through.
func (s *FileStore) Profile(ctx context.Context) (*match.Profile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var profile match.Profile
	found, err := s.readJSON(profileFile, &profile)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}

	addr, err := s.enc.Decrypt(profile.NotifyAddress)
	if err != nil {
		return nil, fmt.Errorf("decrypting notify address: %w", err)
	}
	profile.NotifyAddress = addr
	return &profile, nil
}

// SaveProfile persists the preference profile, encrypting the notification
// address when an encryptor is configured.
func (s *FileStore) SaveProfile(ctx context.Context, profile *match.Profile) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	stored := *profile
	addr, err := s.enc.Encrypt(stored.NotifyAddress)
	if err != nil {
		return fmt.Errorf("encrypting notify address: %w", err)
	}
	stored.NotifyAddress = addr

	return s.writeJSON(profileFile, &stored)
}

// Sources loads all configured sources with their scrape status.
func (s *FileStore) Sources(ctx context.Context) ([]*event.Source, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var sources []*event.Source
	if _, err := s.readJSON(sourcesFile, &sources); err != nil {
		return nil, err
	}
	return sources, nil
}

// DueSources returns the enabled sources whose re-scrape interval has
// elapsed, or which have never been attempted.
func (s *FileStore) DueSources(ctx context.Context) ([]*event.Source, error) {
	sources, err := s.Sources(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	due := make([]*event.Source, 0, len(sources))
	for _, src := range sources {
		if src.Due(now) {
			due = append(due, src)
		}
	}
	return due, nil
}

// UpdateSourceScraped records the outcome of a scrape attempt on a source.
func (s *FileStore) UpdateSourceScraped(ctx context.Context, sourceID string, at time.Time, success bool, errText string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	sources, err := s.Sources(ctx)
	if err != nil {
		return err
	}

	updated := false
	for _, src := range sources {
		if src.ID != sourceID {
			continue
		}
		ts := at
		ok := success
		src.LastScraped = &ts
		src.LastSuccess = &ok
		src.LastError = errText
		updated = true
		break
	}
	if !updated {
		return fmt.Errorf("source not found: %s", sourceID)
	}

	return s.writeJSON(sourcesFile, sources)
}

// EnsureSources reconciles the configured sources with the persisted ones:
// configuration owns identity, name, URL, scraper key, interval and the
// enabled flag, while scrape status survives from the previous state. The
// persisted list is replaced by the configured one.
func (s *FileStore) EnsureSources(ctx context.Context, configured []*event.Source) error {
	existing, err := s.Sources(ctx)
	if err != nil {
		return err
	}

	byID := make(map[string]*event.Source, len(existing))
	for _, src := range existing {
		byID[src.ID] = src
	}

	for _, src := range configured {
		if prev, ok := byID[src.ID]; ok {
			src.LastScraped = prev.LastScraped
			src.LastSuccess = prev.LastSuccess
			src.LastError = prev.LastError
		}
	}

	return s.writeJSON(sourcesFile, configured)
}
