package sampling

import (
	"math/rand"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSampler(seed int64) *Sampler {
	return NewSampler(rand.New(rand.NewSource(seed)))
}

func TestSampler_SampleIDs_DistinctAndFromPool(t *testing.T) {
	// Arrange
	sampler := newTestSampler(1)
	pool := []uint{10, 20, 30, 40, 50}

	// Act
	sample, err := sampler.SampleIDs(pool, 3)

	// Assert
	require.NoError(t, err)
	require.Len(t, sample, 3)

	poolSet := make(map[uint]bool)
	for _, id := range pool {
		poolSet[id] = true
	}
	seen := make(map[uint]bool)
	for _, id := range sample {
		assert.True(t, poolSet[id], "Выбранный ID %d должен принадлежать пулу", id)
		assert.False(t, seen[id], "ID %d не должен повторяться в выборке", id)
		seen[id] = true
	}
}

func TestSampler_SampleIDs_FullPool(t *testing.T) {
	// Arrange
	sampler := newTestSampler(7)
	pool := []uint{1, 2, 3, 4}

	// Act: выборка размером со весь пул
	sample, err := sampler.SampleIDs(pool, 4)

	// Assert: это перестановка пула
	require.NoError(t, err)
	assert.ElementsMatch(t, pool, sample)
}

func TestSampler_SampleIDs_ExceedsPool(t *testing.T) {
	// Arrange
	sampler := newTestSampler(1)

	// Act
	sample, err := sampler.SampleIDs([]uint{1, 2}, 3)

	// Assert
	assert.Error(t, err, "Выборка больше пула должна возвращать ошибку")
	assert.Nil(t, sample)
}

func TestSampler_SampleIDs_NegativeSize(t *testing.T) {
	sampler := newTestSampler(1)

	sample, err := sampler.SampleIDs([]uint{1, 2, 3}, -1)

	assert.Error(t, err)
	assert.Nil(t, sample)
}

func TestSampler_SampleIDs_ZeroSize(t *testing.T) {
	sampler := newTestSampler(1)

	sample, err := sampler.SampleIDs([]uint{1, 2, 3}, 0)

	require.NoError(t, err)
	assert.Empty(t, sample)
}

func TestSampler_SampleIDs_Deterministic(t *testing.T) {
	// Arrange: два сэмплера с одинаковым seed
	pool := []uint{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}

	// Act
	first, err1 := newTestSampler(42).SampleIDs(pool, 5)
	second, err2 := newTestSampler(42).SampleIDs(pool, 5)

	// Assert
	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.Equal(t, first, second, "Одинаковый seed должен давать одинаковую выборку")
}

func TestSampler_SampleIDs_DoesNotModifyInput(t *testing.T) {
	// Arrange
	sampler := newTestSampler(3)
	pool := []uint{1, 2, 3, 4, 5}

	// Act
	_, err := sampler.SampleIDs(pool, 5)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, []uint{1, 2, 3, 4, 5}, pool, "Входной пул не должен изменяться")
}

func TestSampler_SampleIDs_ConcurrentUse(t *testing.T) {
	// Arrange
	sampler := newTestSampler(9)
	pool := make([]uint, 100)
	for i := range pool {
		pool[i] = uint(i + 1)
	}

	// Act: конкурентные выборки не должны гонять rand.Rand
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				sample, err := sampler.SampleIDs(pool, 10)
				assert.NoError(t, err)
				assert.Len(t, sample, 10)
			}
		}()
	}
	wg.Wait()
}
