// Package store persists planned itineraries per user.
package store

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/dgallion1/tripgest/internal/backend"
	"github.com/dgallion1/tripgest/internal/itinerary"
)

var (
	ErrNotFound  = errors.New("itinerary not found")
	ErrInvalidID = errors.New("invalid id")
)

// Store saves and retrieves itinerary records scoped to a user.
type Store interface {
	Save(ctx context.Context, rec *Record) error
	Get(ctx context.Context, userID, id string) (*Record, error)
	List(ctx context.Context, userID string) ([]Record, error)
	Delete(ctx context.Context, userID, id string) error
}

// Record is one planned trip: the backend response, its parsed itinerary
// and any parse warnings.
type Record struct {
	ID            string                `json:"id"`
	UserID        string                `json:"user_id"`
	Request       string                `json:"request"`
	ExtractedInfo backend.ExtractedInfo `json:"extracted_info"`
	Packages      []backend.Package     `json:"packages"`
	Proposal      string                `json:"proposal"`
	Itinerary     *itinerary.Itinerary  `json:"itinerary"`
	Warnings      []itinerary.Warning   `json:"warnings"`
	Timings       backend.Timings       `json:"timings"`
	ContentHash   string                `json:"content_hash"`
	CreatedAt     time.Time             `json:"created_at"`
}

// ContentHash returns the hex SHA-256 of a proposal.
func ContentHash(proposal string) string {
	sum := sha256.Sum256([]byte(proposal))
	return hex.EncodeToString(sum[:])
}

// ValidateID rejects ids that are empty or would escape their key segment.
func ValidateID(id string) error {
	if id == "" || strings.ContainsAny(id, "/*?#") || id == "." || id == ".." {
		return fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return nil
}

func validateRecord(rec *Record) error {
	if rec == nil {
		return errors.New("nil record")
	}
	if err := ValidateID(rec.UserID); err != nil {
		return fmt.Errorf("user: %w", err)
	}
	if err := ValidateID(rec.ID); err != nil {
		return fmt.Errorf("itinerary: %w", err)
	}
	return nil
}

// sortNewestFirst orders records by creation time, newest first, breaking
// ties by id for a stable listing.
func sortNewestFirst(recs []Record) {
	slices.SortFunc(recs, func(a, b Record) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
}
