// Package sampling реализует случайный выбор вопросов из пула.
//
// Исходная система набирала вопросы rejection sampling'ом: тянула случайный
// ID и перетягивала при дубликате. Здесь вместо этого частичный
// Fisher-Yates по списку идентификаторов пула - без повторных попыток
// и с детерминированной оценкой времени при росте пула.
package sampling

import (
	"fmt"
	"math/rand"
	"sync"
)

// Sampler выбирает подмножества идентификаторов без повторений.
// Безопасен для конкурентного использования: rand.Rand не потокобезопасен,
// доступ к нему сериализуется мьютексом.
type Sampler struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSampler создает сэмплер с заданным источником случайности.
// Тесты передают seeded rand для воспроизводимости.
func NewSampler(rng *rand.Rand) *Sampler {
	return &Sampler{rng: rng}
}

// SampleIDs возвращает n попарно различных идентификаторов, выбранных
// равновероятно из ids. Первые n шагов Fisher-Yates: каждый шаг меняет
// местами текущую позицию со случайной из оставшегося хвоста.
// Входной слайс не модифицируется.
func (s *Sampler) SampleIDs(ids []uint, n int) ([]uint, error) {
	if n < 0 {
		return nil, fmt.Errorf("sample size must be non-negative, got %d", n)
	}
	if n > len(ids) {
		return nil, fmt.Errorf("sample size %d exceeds pool size %d", n, len(ids))
	}

	pool := make([]uint, len(ids))
	copy(pool, ids)

	s.mu.Lock()
	for i := 0; i < n; i++ {
		j := i + s.rng.Intn(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	s.mu.Unlock()

	return pool[:n], nil
}
