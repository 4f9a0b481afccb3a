package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/archmine/archmine-go/internal/models"
	bolt "go.etcd.io/bbolt"
)

var (
	decisionsBucket = []byte("decisions")
	runsBucket      = []byte("runs")
)

// Store persists mined decisions in an embedded bbolt database. It is the
// only place a decision's status changes after creation.
type Store struct {
	db *bolt.DB
}

// Open opens (or creates) the decision database at path
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating store directory: %w", err)
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening decision store %s: %w", path, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{decisionsBucket, runsBucket} {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing decision store: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveResult persists every decision of a mining run plus a run record.
// Existing decisions with the same id are overwritten only while still in
// draft; curated decisions are never clobbered by a re-run.
func (s *Store) SaveResult(result *models.MiningResult) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		decisions := tx.Bucket(decisionsBucket)

		for _, decision := range result.Decisions {
			if existing := decisions.Get([]byte(decision.ID)); existing != nil {
				var current models.Decision
				if err := json.Unmarshal(existing, &current); err == nil && current.Status != models.StatusDraft {
					continue
				}
			}

			data, err := json.Marshal(decision)
			if err != nil {
				return fmt.Errorf("marshaling decision %s: %w", decision.ID, err)
			}
			if err := decisions.Put([]byte(decision.ID), data); err != nil {
				return fmt.Errorf("storing decision %s: %w", decision.ID, err)
			}
		}

		runRecord := struct {
			RunID     string         `json:"run_id"`
			Summary   models.Summary `json:"summary"`
			Errors    int            `json:"errors"`
			Warnings  int            `json:"warnings"`
			StoredAt  time.Time      `json:"stored_at"`
			Decisions int            `json:"decisions"`
		}{
			RunID:     result.RunID,
			Summary:   result.Summary,
			Errors:    len(result.Errors),
			Warnings:  len(result.Warnings),
			StoredAt:  time.Now().UTC(),
			Decisions: len(result.Decisions),
		}

		data, err := json.Marshal(runRecord)
		if err != nil {
			return fmt.Errorf("marshaling run record: %w", err)
		}
		return tx.Bucket(runsBucket).Put([]byte(result.RunID), data)
	})
}

// GetDecision loads one decision by id
func (s *Store) GetDecision(id string) (*models.Decision, error) {
	var decision models.Decision
	err := s.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(decisionsBucket).Get([]byte(id))
		if data == nil {
			return fmt.Errorf("decision %s not found", id)
		}
		return json.Unmarshal(data, &decision)
	})
	if err != nil {
		return nil, err
	}
	return &decision, nil
}

// ListDecisions returns stored decisions, optionally filtered by status,
// newest first.
func (s *Store) ListDecisions(status models.DecisionStatus) ([]models.Decision, error) {
	var decisions []models.Decision

	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(decisionsBucket).ForEach(func(_, data []byte) error {
			var decision models.Decision
			if err := json.Unmarshal(data, &decision); err != nil {
				return err
			}
			if status != "" && decision.Status != status {
				return nil
			}
			decisions = append(decisions, decision)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(decisions, func(i, j int) bool {
		return decisions[i].DateRange.Start.After(decisions[j].DateRange.Start)
	})
	return decisions, nil
}

// UpdateStatus transitions a decision's curation status. Only draft
// decisions may move; confirmed, rejected, and superseded are terminal.
func (s *Store) UpdateStatus(id string, status models.DecisionStatus) error {
	switch status {
	case models.StatusConfirmed, models.StatusRejected, models.StatusSuperseded:
	default:
		return fmt.Errorf("invalid target status %q", status)
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(decisionsBucket)
		data := bucket.Get([]byte(id))
		if data == nil {
			return fmt.Errorf("decision %s not found", id)
		}

		var decision models.Decision
		if err := json.Unmarshal(data, &decision); err != nil {
			return fmt.Errorf("unmarshaling decision %s: %w", id, err)
		}

		if decision.Status != models.StatusDraft {
			return fmt.Errorf("decision %s is %s; only draft decisions can change status", id, decision.Status)
		}

		decision.Status = status
		decision.LastUpdated = time.Now().UTC()

		updated, err := json.Marshal(decision)
		if err != nil {
			return fmt.Errorf("marshaling decision %s: %w", id, err)
		}
		return bucket.Put([]byte(id), updated)
	})
}
