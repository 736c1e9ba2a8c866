package state

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"gopkg.in/yaml.v3"

	"github.com/opslake/subregops/internal/domain"
	"github.com/opslake/subregops/internal/domain/entity"
)

const filePermissionOwnerRW = 0o600

// Snapshot is the last known copy of the live zones, kept locally so drift
// can be shown without a registrar round trip and zone export works offline.
type Snapshot struct {
	PulledAt time.Time               `yaml:"pulled_at"`
	Zones    map[string]ZoneSnapshot `yaml:"zones"`
}

type ZoneSnapshot struct {
	Records []entity.DNSRecord `yaml:"records"`
}

func NewSnapshot() *Snapshot {
	return &Snapshot{Zones: make(map[string]ZoneSnapshot)}
}

// SetZone stores the live records of one domain, stamping the record Domain
// field that is not serialized.
func (s *Snapshot) SetZone(domainName string, records []entity.DNSRecord) {
	for i := range records {
		records[i].Domain = domainName
	}
	s.Zones[domainName] = ZoneSnapshot{Records: records}
	s.PulledAt = time.Now().UTC()
}

func (s *Snapshot) ZoneRecords(domainName string) []entity.DNSRecord {
	zone, ok := s.Zones[domainName]
	if !ok {
		return nil
	}
	records := make([]entity.DNSRecord, len(zone.Records))
	copy(records, zone.Records)
	for i := range records {
		records[i].Domain = domainName
	}
	return records
}

// FileStore persists snapshots as a YAML file guarded by a sibling lock
// file, written atomically through a temp file and rename.
type FileStore struct {
	path  string
	flock *flock.Flock
}

func NewFileStore(path string) *FileStore {
	return &FileStore{
		path:  path,
		flock: flock.New(path + ".lock"),
	}
}

// ensureDir creates the state directory before the lock file is opened.
func (s *FileStore) ensureDir() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("%w: creating state dir: %v", domain.ErrStateWriteFailed, err)
	}
	return nil
}

func (s *FileStore) Load() (*Snapshot, error) {
	if err := s.ensureDir(); err != nil {
		return nil, err
	}
	if err := s.flock.Lock(); err != nil {
		return nil, fmt.Errorf("acquiring lock: %w", err)
	}
	defer s.flock.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewSnapshot(), nil
		}
		return nil, fmt.Errorf("%w: reading state file %s: %v", domain.ErrStateReadFailed, s.path, err)
	}

	snapshot := NewSnapshot()
	if err := yaml.Unmarshal(data, snapshot); err != nil {
		return nil, fmt.Errorf("%w: parsing state file %s: %v", domain.ErrStateSerializeFail, s.path, err)
	}
	if snapshot.Zones == nil {
		snapshot.Zones = make(map[string]ZoneSnapshot)
	}
	return snapshot, nil
}

func (s *FileStore) Save(snapshot *Snapshot) error {
	if err := s.ensureDir(); err != nil {
		return err
	}
	if err := s.flock.Lock(); err != nil {
		return fmt.Errorf("acquiring lock: %w", err)
	}
	defer s.flock.Unlock()

	data, err := yaml.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("%w: marshaling state for %s: %v", domain.ErrStateSerializeFail, s.path, err)
	}

	tmpPath := filepath.Join(filepath.Dir(s.path), "."+filepath.Base(s.path)+".tmp")
	if err := os.WriteFile(tmpPath, data, filePermissionOwnerRW); err != nil {
		return fmt.Errorf("%w: writing temp state file %s: %v", domain.ErrStateWriteFailed, tmpPath, err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("%w: renaming state file from %s to %s: %v", domain.ErrStateWriteFailed, tmpPath, s.path, err)
	}

	return nil
}
