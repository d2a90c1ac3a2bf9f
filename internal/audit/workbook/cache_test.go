package workbook

import (
	"sync"
	"testing"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/stretchr/testify/assert"
)

type countingLoader struct {
	mu    sync.Mutex
	calls map[string]int
}

func (c *countingLoader) Load(src Source, section string) dataframe.DataFrame {
	c.mu.Lock()
	c.calls[src.Digest+"/"+section]++
	c.mu.Unlock()
	return dataframe.New(series.New([]string{section}, series.String, "section"))
}

func TestCachedLoaderMemoizesByDigestAndSection(t *testing.T) {
	inner := &countingLoader{calls: make(map[string]int)}
	cache := NewCachedLoader(inner)

	a := NewSource("a.xlsx", []byte("workbook a"))
	sameAsA := NewSource("renamed.xlsx", []byte("workbook a"))
	b := NewSource("b.xlsx", []byte("workbook b"))

	cache.Load(a, "Auxiliar entradas")
	cache.Load(sameAsA, "Auxiliar entradas")
	cache.Load(a, "Auxiliar Saídas")
	cache.Load(b, "Auxiliar entradas")

	hits, misses := cache.Stats()
	assert.Equal(t, 1, hits)
	assert.Equal(t, 3, misses)
	assert.Equal(t, 1, inner.calls[a.Digest+"/Auxiliar entradas"])

	df := cache.Load(a, "Auxiliar Saídas")
	assert.Equal(t, []string{"Auxiliar Saídas"}, df.Col("section").Records())

	cache.Forget(a.Digest)
	cache.Load(a, "Auxiliar entradas")
	assert.Equal(t, 2, inner.calls[a.Digest+"/Auxiliar entradas"])
}

func TestCachedLoaderConcurrentUse(t *testing.T) {
	cache := NewCachedLoader(&countingLoader{calls: make(map[string]int)})
	src := NewSource("a.xlsx", []byte("workbook"))

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			section := "Auxiliar entradas"
			if i%2 == 0 {
				section = "Auxiliar Saídas"
			}
			df := cache.Load(src, section)
			assert.Equal(t, 1, df.Nrow())
		}(i)
	}
	wg.Wait()

	hits, misses := cache.Stats()
	assert.Equal(t, 16, hits+misses)
}
