package storage

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyGenerator_SameBasenameSameInstant(t *testing.T) {
	g := NewKeyGenerator("live")
	frozen := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	g.now = func() time.Time { return frozen }

	a := g.Next("IMG_0001.JPG")
	b := g.Next("IMG_0001.JPG")

	assert.NotEqual(t, a, b)
	assert.True(t, strings.HasPrefix(a, "live/"))
	assert.True(t, strings.HasSuffix(a, "-IMG_0001.JPG"))
	assert.True(t, strings.HasSuffix(b, "-IMG_0001.JPG"))
}

func TestKeyGenerator_ConcurrentUnique(t *testing.T) {
	g := NewKeyGenerator("live")

	var mu sync.Mutex
	seen := map[string]bool{}
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			k := g.Next("same.jpg")
			mu.Lock()
			seen[k] = true
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Len(t, seen, 50)
}

func TestKeyGenerator_StripsDirectories(t *testing.T) {
	g := NewKeyGenerator("")
	key := g.Next("../../etc/passwd")

	assert.NotContains(t, key, "/")
	assert.True(t, strings.HasSuffix(key, "-passwd"))
}

func TestPublicURL_RoundTrip(t *testing.T) {
	base := "https://cdn.example.com/wedding-photos/"
	key := "live/1717243200000000000-Smith & Co #1.jpg"

	u := publicURL(base, key)
	assert.Equal(t, "https://cdn.example.com/wedding-photos/live/1717243200000000000-Smith%20&%20Co%20%231.jpg", u)

	back, ok := keyFromURL(base, u)
	require.True(t, ok)
	assert.Equal(t, key, back)

	_, ok = keyFromURL(base, "https://elsewhere.example.com/live/x.jpg")
	assert.False(t, ok)
}
