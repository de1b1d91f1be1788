package batch

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	assert_ "github.com/stretchr/testify/assert"

	"github.com/videotools/arte-archiver/arte"
)

// slowResolver completes later-indexed entries faster, to provoke
// out-of-order completion.
type slowResolver struct {
	total int32
	seen  int32
}

func (r *slowResolver) ResolveVideoURL(_ context.Context, rawURL string) (*arte.VideoRecord, error) {
	order := atomic.AddInt32(&r.seen, 1)
	time.Sleep(time.Duration(atomic.LoadInt32(&r.total)-order) * 5 * time.Millisecond)
	if strings.Contains(rawURL, "broken") {
		return nil, fmt.Errorf("cannot resolve %s", rawURL)
	}
	return &arte.VideoRecord{ID: rawURL}, nil
}

func TestExpand_PreservesSourceOrder(t *testing.T) {
	assert := assert_.New(t)

	collection := &arte.CollectionResult{ID: "RC-016954", Title: "Earn a Living"}
	for i := 0; i < 8; i++ {
		collection.Entries = append(collection.Entries, arte.PlaylistEntry{
			TargetURL: fmt.Sprintf("https://www.arte.tv/en/videos/08198%d-000-A/x/", i),
		})
	}

	expander := Expander{
		Resolver:    &slowResolver{total: int32(len(collection.Entries))},
		Concurrency: 4,
	}
	results := expander.Expand(context.Background(), collection)

	assert.Len(results, len(collection.Entries))
	for i, result := range results {
		assert.Equal(collection.Entries[i].TargetURL, result.Entry.TargetURL)
		assert.NoError(result.Err)
		assert.Equal(collection.Entries[i].TargetURL, result.Record.ID)
	}
}

func TestExpand_EntryFailureDoesNotAbortSiblings(t *testing.T) {
	assert := assert_.New(t)

	collection := &arte.CollectionResult{
		ID: "RC-000001",
		Entries: []arte.PlaylistEntry{
			{TargetURL: "https://www.arte.tv/en/videos/081988-001-A/ok/"},
			{TargetURL: "https://www.arte.tv/en/videos/broken/"},
			{TargetURL: "https://www.arte.tv/en/videos/081988-003-A/ok/"},
		},
	}

	var calls int32
	expander := Expander{
		Resolver:    &slowResolver{total: 3},
		Concurrency: 2,
		Progress: func(done int, total int) {
			atomic.AddInt32(&calls, 1)
			assert.Equal(3, total)
		},
	}
	results := expander.Expand(context.Background(), collection)

	assert.NoError(results[0].Err)
	assert.Error(results[1].Err)
	assert.Nil(results[1].Record)
	assert.NoError(results[2].Err)
	assert.Equal(int32(3), atomic.LoadInt32(&calls))
}

func TestExpand_SequentialByDefault(t *testing.T) {
	assert := assert_.New(t)

	collection := &arte.CollectionResult{
		ID:      "RC-000002",
		Entries: []arte.PlaylistEntry{{TargetURL: "https://www.arte.tv/en/videos/081988-001-A/x/"}},
	}
	expander := Expander{Resolver: &slowResolver{total: 1}}
	results := expander.Expand(context.Background(), collection)
	assert.Len(results, 1)
	assert.NoError(results[0].Err)
}
