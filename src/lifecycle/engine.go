package lifecycle

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/SyedAzeem24/blood-donation-system/src/models"
)

var (
	// ErrNotFound means the donation post does not exist at all.
	ErrNotFound = errors.New("donation not found")
	// ErrAlreadyTaken means the post exists but left the available state
	// before this caller got to it.
	ErrAlreadyTaken = errors.New("donation already accepted")
)

// DonationStore is the slice of the persistence layer the engine needs.
// The Mongo-backed store satisfies it; tests substitute an in-memory fake.
type DonationStore interface {
	// Get returns the post or nil when it does not exist.
	Get(ctx context.Context, id primitive.ObjectID) (*models.DonationPost, error)
	// ListExpired returns the available posts whose expiry date has passed.
	ListExpired(ctx context.Context, now time.Time) ([]models.DonationPost, error)
	// TransitionStatus atomically moves a post from one status to another and
	// returns the pre-update document, or nil when no post matched the guard.
	TransitionStatus(ctx context.Context, id primitive.ObjectID, from, to string) (*models.DonationPost, error)
}

// HistoryStore records terminal donation transitions.
type HistoryStore interface {
	Record(ctx context.Context, entry *models.DonationHistory) error
}

// Engine applies the donation lifecycle rules: lazy expiry of stale posts and
// atomic fulfillment.
type Engine struct {
	donations DonationStore
	history   HistoryStore
}

func NewEngine(donations DonationStore, history HistoryStore) *Engine {
	return &Engine{donations: donations, history: history}
}

// SweepExpired archives every available post whose expiry date has passed.
// Each post is claimed with a conditional available→expired update, and the
// history row is written only by the claim winner, so re-running the sweep is
// a no-op and a concurrent fulfillment simply wins the race instead.
func (e *Engine) SweepExpired(ctx context.Context, now time.Time) (int, error) {
	stale, err := e.donations.ListExpired(ctx, now)
	if err != nil {
		return 0, err
	}

	archived := 0
	for i := range stale {
		won, err := e.donations.TransitionStatus(ctx, stale[i].Id, models.DonationAvailable, models.DonationExpired)
		if err != nil {
			return archived, err
		}
		if won == nil {
			// Lost to a concurrent sweep or fulfillment.
			continue
		}

		entry := &models.DonationHistory{
			DonorId:        won.DonorId,
			BloodType:      won.BloodType,
			Hospital:       won.Hospital,
			DonationDate:   won.DonationDate,
			Quantity:       won.Quantity,
			Status:         models.HistoryExpired,
			OriginalPostId: won.Id,
		}
		if err := e.history.Record(ctx, entry); err != nil {
			return archived, err
		}
		archived++
	}
	return archived, nil
}

// Fulfill moves a post from available to fulfilled on behalf of a receiver.
// The transition is conditional on the post still being available: of two
// simultaneous callers exactly one succeeds and the other gets
// ErrAlreadyTaken. The winner records the completed-history row.
func (e *Engine) Fulfill(ctx context.Context, postID, receiverID primitive.ObjectID) (*models.DonationPost, error) {
	post, err := e.donations.TransitionStatus(ctx, postID, models.DonationAvailable, models.DonationFulfilled)
	if err != nil {
		return nil, err
	}
	if post == nil {
		existing, err := e.donations.Get(ctx, postID)
		if err != nil {
			return nil, err
		}
		if existing == nil {
			return nil, ErrNotFound
		}
		return nil, ErrAlreadyTaken
	}

	receiver := receiverID
	entry := &models.DonationHistory{
		DonorId:        post.DonorId,
		ReceiverId:     &receiver,
		BloodType:      post.BloodType,
		Hospital:       post.Hospital,
		DonationDate:   post.DonationDate,
		Quantity:       post.Quantity,
		Status:         models.HistoryCompleted,
		OriginalPostId: post.Id,
	}
	if err := e.history.Record(ctx, entry); err != nil {
		return nil, err
	}
	return post, nil
}
