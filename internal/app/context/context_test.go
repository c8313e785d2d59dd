package appctx

import (
	"context"
	"errors"
	"testing"
)

const testFetchValue = "hello"

func TestGetOrFetch_CacheMiss(t *testing.T) {
	t.Parallel()
	rc := New(context.Background())
	calls := 0

	val, err := GetOrFetch(rc, "key", func(_ context.Context) (string, error) {
		calls++
		return testFetchValue, nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if val != testFetchValue {
		t.Fatalf("got %q, want %q", val, testFetchValue)
	}
	if calls != 1 {
		t.Fatalf("fetchFn called %d times, want 1", calls)
	}
}

func TestGetOrFetch_CacheHit(t *testing.T) {
	t.Parallel()
	rc := New(context.Background())
	calls := 0

	fetchFn := func(_ context.Context) (string, error) {
		calls++
		return testFetchValue, nil
	}

	for range 3 {
		if _, err := GetOrFetch(rc, "key", fetchFn); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if calls != 1 {
		t.Errorf("fetchFn called %d times, want 1", calls)
	}
}

func TestGetOrFetch_CachesErrors(t *testing.T) {
	t.Parallel()
	rc := New(context.Background())
	sentinel := errors.New("fetch failed")
	calls := 0

	fetchFn := func(_ context.Context) (int, error) {
		calls++
		return 0, sentinel
	}

	for range 2 {
		if _, err := GetOrFetch(rc, "key", fetchFn); !errors.Is(err, sentinel) {
			t.Fatalf("err = %v, want %v", err, sentinel)
		}
	}
	if calls != 1 {
		t.Errorf("fetchFn called %d times, want 1", calls)
	}
}

func TestGetOrFetch_TypeMismatch(t *testing.T) {
	t.Parallel()
	rc := New(context.Background())

	_, _ = GetOrFetch(rc, "key", func(_ context.Context) (string, error) { return "s", nil })
	_, err := GetOrFetch(rc, "key", func(_ context.Context) (int, error) { return 1, nil })
	if !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("err = %v, want ErrTypeMismatch", err)
	}
}

func TestForget_Refetches(t *testing.T) {
	t.Parallel()
	rc := New(context.Background())
	calls := 0

	fetchFn := func(_ context.Context) (int, error) {
		calls++
		return calls, nil
	}

	first, _ := GetOrFetch(rc, "key", fetchFn)
	rc.Forget("key")
	second, _ := GetOrFetch(rc, "key", fetchFn)

	if first != 1 || second != 2 {
		t.Errorf("got %d then %d, want 1 then 2", first, second)
	}
}

func TestLen_CountsEntries(t *testing.T) {
	t.Parallel()
	rc := New(context.Background())

	if rc.Len() != 0 {
		t.Fatalf("Len() = %d on a fresh memo, want 0", rc.Len())
	}

	fetchFn := func(_ context.Context) (int, error) { return 1, nil }
	_, _ = GetOrFetch(rc, "a", fetchFn)
	_, _ = GetOrFetch(rc, "b", fetchFn)
	_, _ = GetOrFetch(rc, "a", fetchFn)
	if rc.Len() != 2 {
		t.Errorf("Len() = %d, want 2", rc.Len())
	}

	rc.Forget("a")
	if rc.Len() != 1 {
		t.Errorf("Len() after Forget = %d, want 1", rc.Len())
	}
}

func TestDataProvider_KeysByID(t *testing.T) {
	t.Parallel()
	rc := New(context.Background())
	var fetched []string

	p := NewDataProvider("user", func(_ context.Context, id string) (string, error) {
		fetched = append(fetched, id)
		return "name-" + id, nil
	})

	for _, id := range []string{"a", "b", "a", "b", "a"} {
		got, err := p.Get(rc, id)
		if err != nil {
			t.Fatalf("Get(%q) error: %v", id, err)
		}
		if got != "name-"+id {
			t.Errorf("Get(%q) = %q", id, got)
		}
	}
	if len(fetched) != 2 {
		t.Errorf("fetched %v, want one fetch per id", fetched)
	}
}

func TestFromContext(t *testing.T) {
	t.Parallel()

	rc := New(context.Background())
	ctx := WithRequestContext(context.Background(), rc)
	if got := FromContext(ctx); got != rc {
		t.Errorf("FromContext() = %p, want stored %p", got, rc)
	}

	fresh := FromContext(context.Background())
	if fresh == nil || fresh == rc {
		t.Error("FromContext() without stored context should return a new RequestContext")
	}
}
