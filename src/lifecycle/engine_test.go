package lifecycle

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/SyedAzeem24/blood-donation-system/src/models"
)

// memStore is an in-memory stand-in for the Mongo donation and history
// stores. TransitionStatus holds the lock for the whole check-and-set, which
// is the same guarantee Mongo's conditional FindOneAndUpdate gives.
type memStore struct {
	mu      sync.Mutex
	posts   map[primitive.ObjectID]*models.DonationPost
	history []models.DonationHistory
}

func newMemStore() *memStore {
	return &memStore{posts: make(map[primitive.ObjectID]*models.DonationPost)}
}

func (m *memStore) add(post models.DonationPost) primitive.ObjectID {
	m.mu.Lock()
	defer m.mu.Unlock()
	if post.Id.IsZero() {
		post.Id = primitive.NewObjectID()
	}
	m.posts[post.Id] = &post
	return post.Id
}

func (m *memStore) Get(_ context.Context, id primitive.ObjectID) (*models.DonationPost, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	post, ok := m.posts[id]
	if !ok {
		return nil, nil
	}
	copied := *post
	return &copied, nil
}

func (m *memStore) ListExpired(_ context.Context, now time.Time) ([]models.DonationPost, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.DonationPost
	for _, post := range m.posts {
		if post.Status == models.DonationAvailable && post.ExpiryDate.Before(now) {
			out = append(out, *post)
		}
	}
	return out, nil
}

func (m *memStore) TransitionStatus(_ context.Context, id primitive.ObjectID, from, to string) (*models.DonationPost, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	post, ok := m.posts[id]
	if !ok || post.Status != from {
		return nil, nil
	}
	before := *post
	post.Status = to
	return &before, nil
}

func (m *memStore) Record(_ context.Context, entry *models.DonationHistory) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.history = append(m.history, *entry)
	return nil
}

func availablePost(expiry time.Time) models.DonationPost {
	return models.DonationPost{
		DonorId:      primitive.NewObjectID(),
		BloodType:    "O+",
		Hospital:     models.Hospitals[0],
		DonationDate: expiry.AddDate(0, 0, -PostExpiryDays),
		ExpiryDate:   expiry,
		Quantity:     2,
		Status:       models.DonationAvailable,
	}
}

func TestSweepExpired_ArchivesStalePosts(t *testing.T) {
	store := newMemStore()
	now := time.Now()
	staleID := store.add(availablePost(now.Add(-time.Hour)))
	freshID := store.add(availablePost(now.Add(24 * time.Hour)))

	engine := NewEngine(store, store)
	archived, err := engine.SweepExpired(context.Background(), now)

	require.NoError(t, err)
	assert.Equal(t, 1, archived)

	stale, _ := store.Get(context.Background(), staleID)
	fresh, _ := store.Get(context.Background(), freshID)
	assert.Equal(t, models.DonationExpired, stale.Status)
	assert.Equal(t, models.DonationAvailable, fresh.Status)

	require.Len(t, store.history, 1)
	assert.Equal(t, models.HistoryExpired, store.history[0].Status)
	assert.Equal(t, staleID, store.history[0].OriginalPostId)
	assert.Nil(t, store.history[0].ReceiverId)
}

func TestSweepExpired_Idempotent(t *testing.T) {
	store := newMemStore()
	now := time.Now()
	store.add(availablePost(now.Add(-time.Hour)))
	store.add(availablePost(now.Add(-48 * time.Hour)))

	engine := NewEngine(store, store)

	first, err := engine.SweepExpired(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, 2, first)

	second, err := engine.SweepExpired(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, 0, second)
	assert.Len(t, store.history, 2)
}

func TestFulfill_Success(t *testing.T) {
	store := newMemStore()
	postID := store.add(availablePost(time.Now().Add(24 * time.Hour)))
	receiverID := primitive.NewObjectID()

	engine := NewEngine(store, store)
	post, err := engine.Fulfill(context.Background(), postID, receiverID)

	require.NoError(t, err)
	require.NotNil(t, post)
	// Pre-update document is returned.
	assert.Equal(t, models.DonationAvailable, post.Status)

	stored, _ := store.Get(context.Background(), postID)
	assert.Equal(t, models.DonationFulfilled, stored.Status)

	require.Len(t, store.history, 1)
	entry := store.history[0]
	assert.Equal(t, models.HistoryCompleted, entry.Status)
	assert.Equal(t, postID, entry.OriginalPostId)
	require.NotNil(t, entry.ReceiverId)
	assert.Equal(t, receiverID, *entry.ReceiverId)
}

func TestFulfill_NotFound(t *testing.T) {
	engine := NewEngine(newMemStore(), newMemStore())

	_, err := engine.Fulfill(context.Background(), primitive.NewObjectID(), primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFulfill_AlreadyTaken(t *testing.T) {
	store := newMemStore()
	postID := store.add(availablePost(time.Now().Add(24 * time.Hour)))
	engine := NewEngine(store, store)

	_, err := engine.Fulfill(context.Background(), postID, primitive.NewObjectID())
	require.NoError(t, err)

	_, err = engine.Fulfill(context.Background(), postID, primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrAlreadyTaken)
	assert.Len(t, store.history, 1)
}

func TestFulfill_ConcurrentCallersExactlyOneWins(t *testing.T) {
	store := newMemStore()
	postID := store.add(availablePost(time.Now().Add(24 * time.Hour)))
	engine := NewEngine(store, store)

	const callers = 8
	errs := make(chan error, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := engine.Fulfill(context.Background(), postID, primitive.NewObjectID())
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	wins, conflicts := 0, 0
	for err := range errs {
		switch {
		case err == nil:
			wins++
		case assert.ErrorIs(t, err, ErrAlreadyTaken):
			conflicts++
		}
	}
	assert.Equal(t, 1, wins)
	assert.Equal(t, callers-1, conflicts)
	assert.Len(t, store.history, 1)
}

func TestSweepThenFulfill_LoserSeesAlreadyTaken(t *testing.T) {
	store := newMemStore()
	now := time.Now()
	postID := store.add(availablePost(now.Add(-time.Hour)))
	engine := NewEngine(store, store)

	_, err := engine.SweepExpired(context.Background(), now)
	require.NoError(t, err)

	_, err = engine.Fulfill(context.Background(), postID, primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrAlreadyTaken)

	// Exactly one terminal transition was recorded.
	require.Len(t, store.history, 1)
	assert.Equal(t, models.HistoryExpired, store.history[0].Status)
}

func TestFulfillThenSweep_PostIsSkipped(t *testing.T) {
	store := newMemStore()
	now := time.Now()
	postID := store.add(availablePost(now.Add(-time.Hour)))
	engine := NewEngine(store, store)

	_, err := engine.Fulfill(context.Background(), postID, primitive.NewObjectID())
	require.NoError(t, err)

	archived, err := engine.SweepExpired(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, 0, archived)

	require.Len(t, store.history, 1)
	assert.Equal(t, models.HistoryCompleted, store.history[0].Status)
}
