package confirm

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/adina8244/grounded-git-mcp/internal/config"
	"github.com/adina8244/grounded-git-mcp/internal/logging"
)

const (
	ledgerFileName = "confirmations.json"
	auditFileName  = "audit.ndjson"
	lockFileName   = "ledger.lock"
)

// FileStore keeps the ledger and audit log under
// <repoRoot>/.grounded-git-mcp/.
//
// Ledger mutations are read-modify-write whole-file rewrites. An exclusive
// advisory lock is held across the whole sequence so concurrent Put or
// MarkUsed calls cannot drop each other's updates; the final write is still
// an atomic temp-file rename for crash safety. The audit log is append-only
// and never rewritten.
type FileStore struct {
	dir        string
	ledgerPath string
	auditPath  string
	lockPath   string
	log        *logrus.Entry
}

// NewFileStore creates (or reopens) the store for a repository root.
// The state directory and an empty ledger are created on first use.
func NewFileStore(repoRoot string) (*FileStore, error) {
	dir := filepath.Join(repoRoot, config.StateDirName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating state directory %s: %w", dir, err)
	}

	s := &FileStore{
		dir:        dir,
		ledgerPath: filepath.Join(dir, ledgerFileName),
		auditPath:  filepath.Join(dir, auditFileName),
		lockPath:   filepath.Join(dir, lockFileName),
		log:        logging.Component("store"),
	}

	if _, err := os.Stat(s.ledgerPath); errors.Is(err, os.ErrNotExist) {
		if err := atomicWrite(s.ledgerPath, []byte("{}\n")); err != nil {
			return nil, fmt.Errorf("initializing ledger: %w", err)
		}
	}
	return s, nil
}

// Dir returns the state directory path.
func (s *FileStore) Dir() string {
	return s.dir
}

// AuditPath returns the audit log path.
func (s *FileStore) AuditPath() string {
	return s.auditPath
}

// Put persists c keyed by id and audits the proposal.
func (s *FileStore) Put(c *Confirmation) error {
	err := s.withLock(func() error {
		ledger, err := s.load()
		if err != nil {
			return err
		}
		ledger[c.ID] = c
		return s.save(ledger)
	})
	if err != nil {
		return err
	}

	s.log.WithFields(logging.Fields{"id": c.ID, "risk": c.Classification.Risk}).Info("confirmation recorded")
	return s.appendAudit(newAuditRecord(time.Now().Unix(), ActionProposed, c.ID, map[string]any{
		"classification": c.Classification,
	}))
}

// Get returns the stored confirmation for id, or ErrNotFound.
func (s *FileStore) Get(id string) (*Confirmation, error) {
	var out *Confirmation
	err := s.withLock(func() error {
		ledger, err := s.load()
		if err != nil {
			return err
		}
		out = ledger[id]
		return nil
	})
	if err != nil {
		return nil, err
	}
	if out == nil {
		return nil, ErrNotFound
	}
	return out, nil
}

// MarkUsed increments the persisted use count for c and audits the
// execution result. A confirmation that vanished from the ledger is a
// no-op for the count, but the execution is still audited.
func (s *FileStore) MarkUsed(c *Confirmation, result any) error {
	err := s.withLock(func() error {
		ledger, err := s.load()
		if err != nil {
			return err
		}
		stored, ok := ledger[c.ID]
		if !ok {
			return nil
		}
		stored.Used++
		return s.save(ledger)
	})
	if err != nil {
		return err
	}

	s.log.WithField("id", c.ID).Info("confirmation consumed")
	return s.appendAudit(newAuditRecord(time.Now().Unix(), ActionExecuted, c.ID, map[string]any{
		"result": result,
	}))
}

// List returns every stored confirmation, newest first.
func (s *FileStore) List() ([]*Confirmation, error) {
	var out []*Confirmation
	err := s.withLock(func() error {
		ledger, err := s.load()
		if err != nil {
			return err
		}
		for _, c := range ledger {
			out = append(out, c)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sortByCreatedDesc(out)
	return out, nil
}

// AuditRecords reads the whole audit log. Malformed lines are skipped.
func (s *FileStore) AuditRecords() ([]AuditRecord, error) {
	data, err := os.ReadFile(s.auditPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading audit log: %w", err)
	}

	var out []AuditRecord
	for _, line := range bytes.Split(data, []byte{'\n'}) {
		if len(line) == 0 {
			continue
		}
		var rec AuditRecord
		if err := json.Unmarshal(line, &rec); err != nil {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

// load reads the ledger file. Call with the lock held.
func (s *FileStore) load() (map[string]*Confirmation, error) {
	data, err := os.ReadFile(s.ledgerPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]*Confirmation{}, nil
		}
		return nil, fmt.Errorf("reading ledger: %w", err)
	}
	if len(data) == 0 {
		return map[string]*Confirmation{}, nil
	}

	ledger := map[string]*Confirmation{}
	if err := json.Unmarshal(data, &ledger); err != nil {
		return nil, fmt.Errorf("parsing ledger %s: %w", s.ledgerPath, err)
	}
	return ledger, nil
}

// save rewrites the ledger file atomically. Call with the lock held.
func (s *FileStore) save(ledger map[string]*Confirmation) error {
	data, err := json.MarshalIndent(ledger, "", "  ")
	if err != nil {
		return fmt.Errorf("serializing ledger: %w", err)
	}
	if err := atomicWrite(s.ledgerPath, append(data, '\n')); err != nil {
		return fmt.Errorf("writing ledger: %w", err)
	}
	return nil
}

// appendAudit writes one NDJSON line. O_APPEND keeps concurrent appends
// whole; the log is never rewritten.
func (s *FileStore) appendAudit(rec AuditRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("serializing audit record: %w", err)
	}
	data = append(data, '\n')

	f, err := os.OpenFile(s.auditPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("opening audit log: %w", err)
	}
	defer f.Close() //nolint:errcheck // close error surfaces via Write

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("appending audit record: %w", err)
	}
	return nil
}

// atomicWrite writes data to path via temp-file-then-rename in the same
// directory.
func atomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".tmp-ledger-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() { _ = os.Remove(tmpPath) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write data: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

func sortByCreatedDesc(cs []*Confirmation) {
	sort.Slice(cs, func(i, j int) bool {
		return cs[i].CreatedAt > cs[j].CreatedAt
	})
}
