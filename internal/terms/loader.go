package terms

import (
	"fmt"
	"os"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"warpeace/internal/ingest"
	"warpeace/internal/tokenize"
)

// Loader reads term list files and keeps the indexed Set for each file so
// repeated runs over many books tokenize a list only once. An entry is
// invalidated when the file's size or modification time changes.
type Loader struct {
	cache *gocache.Cache
}

func NewLoader(ttl time.Duration) *Loader {
	return &Loader{cache: gocache.New(ttl, 2*ttl)}
}

// Load returns the Set for the list at path. An empty path selects the
// built-in list for kind.
func (l *Loader) Load(path string, kind Kind) (Set, error) {
	if path == "" {
		key := "default:" + string(kind)
		if v, ok := l.cache.Get(key); ok {
			return v.(Set), nil
		}
		words, err := Default(kind)
		if err != nil {
			return Set{}, err
		}
		set := NewSet(tokenize.TokenizeLines(words))
		l.cache.SetDefault(key, set)
		return set, nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return Set{}, fmt.Errorf("%w: stat %s: %v", ingest.ErrInputUnavailable, path, err)
	}
	key := fmt.Sprintf("%s:%d:%d", path, info.Size(), info.ModTime().UnixNano())
	if v, ok := l.cache.Get(key); ok {
		return v.(Set), nil
	}

	lines, err := ingest.ReadLines(path)
	if err != nil {
		return Set{}, err
	}
	set := NewSet(tokenize.TokenizeLines(lines))
	l.cache.SetDefault(key, set)
	return set, nil
}

// Cached reports how many term lists are currently held.
func (l *Loader) Cached() int {
	return l.cache.ItemCount()
}
