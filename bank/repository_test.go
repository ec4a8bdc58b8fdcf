package bank

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(records []Record) []string {
	result := make([]string, 0, len(records))
	for _, record := range records {
		result = append(result, record.ID)
	}
	return result
}

func TestRepositoryAppendKeepsOrder(t *testing.T) {
	repo := NewRepository()
	for i := range 5 {
		require.NoError(t, repo.Append(Record{ID: fmt.Sprintf("id-%d", i)}))
	}

	assert.Equal(t, []string{"id-0", "id-1", "id-2", "id-3", "id-4"}, ids(repo.All()))
	assert.Equal(t, 5, repo.Len())
}

func TestRepositoryRejectsBadIDs(t *testing.T) {
	repo := NewRepository()
	require.ErrorIs(t, repo.Append(Record{Question: "q"}), ErrEmptyID)
	require.NoError(t, repo.Append(Record{ID: "a"}))
	require.ErrorIs(t, repo.Append(Record{ID: "a"}), ErrDuplicateID)
	assert.Equal(t, 1, repo.Len())
}

func TestRepositoryDeleteIsIdempotent(t *testing.T) {
	repo := NewRepository()
	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, repo.Append(Record{ID: id}))
	}

	assert.True(t, repo.DeleteByID("b"))
	assert.False(t, repo.DeleteByID("b"))
	assert.False(t, repo.DeleteByID("missing"))
	assert.Equal(t, []string{"a", "c"}, ids(repo.All()))

	_, ok := repo.Get("b")
	assert.False(t, ok)
	record, ok := repo.Get("c")
	assert.True(t, ok)
	assert.Equal(t, "c", record.ID)
}

func TestRepositoryAllIsCopy(t *testing.T) {
	repo := NewRepository()
	require.NoError(t, repo.Append(Record{ID: "a", Question: "original"}))

	all := repo.All()
	all[0].Question = "changed"

	record, _ := repo.Get("a")
	assert.Equal(t, "original", record.Question)
}

func TestSequenceIDsUnique(t *testing.T) {
	generator := NewSequenceIDs()
	seen := make(map[string]struct{})
	var lock sync.Mutex
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				id, err := generator.NewID()
				assert.NoError(t, err)
				lock.Lock()
				seen[id] = struct{}{}
				lock.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Len(t, seen, 800)
}

func TestRecordImageURL(t *testing.T) {
	_, ok := Record{ID: "a"}.ImageURL()
	assert.False(t, ok)
}
