package bus

import (
	"context"
	"errors"
	"testing"
)

type testOccurrence struct {
	kind string
}

func (o testOccurrence) Kind() string { return o.kind }

func TestPublishWithoutSubscribersIsNoop(t *testing.T) {
	b := New()
	if err := b.Publish(context.Background(), testOccurrence{kind: "nobody.listens"}); err != nil {
		t.Fatalf("publish with zero subscribers should not fail: %v", err)
	}
}

func TestPublishDispatchesInSubscriptionOrder(t *testing.T) {
	b := New()
	var order []int
	for i := 1; i <= 3; i++ {
		i := i
		b.Subscribe("thing.happened", func(ctx context.Context, occ Occurrence) error {
			order = append(order, i)
			return nil
		})
	}

	if err := b.Publish(context.Background(), testOccurrence{kind: "thing.happened"}); err != nil {
		t.Fatalf("publish failed: %v", err)
	}
	if len(order) != 3 || order[0] != 1 || order[1] != 2 || order[2] != 3 {
		t.Errorf("expected subscription order [1 2 3], got %v", order)
	}
}

func TestPublishOnlyMatchingKind(t *testing.T) {
	b := New()
	called := false
	b.Subscribe("kind.a", func(ctx context.Context, occ Occurrence) error {
		called = true
		return nil
	})

	b.Publish(context.Background(), testOccurrence{kind: "kind.b"})
	if called {
		t.Error("handler for kind.a should not receive kind.b")
	}
}

func TestHandlerErrorPropagatesAndStopsDispatch(t *testing.T) {
	b := New()
	boom := errors.New("handler failed")
	secondCalled := false

	b.Subscribe("thing.happened", func(ctx context.Context, occ Occurrence) error {
		return boom
	})
	b.Subscribe("thing.happened", func(ctx context.Context, occ Occurrence) error {
		secondCalled = true
		return nil
	})

	err := b.Publish(context.Background(), testOccurrence{kind: "thing.happened"})
	if !errors.Is(err, boom) {
		t.Fatalf("expected handler error to propagate, got %v", err)
	}
	if secondCalled {
		t.Error("dispatch should stop at the first failing handler")
	}
}

func TestPublishHonorsCancellation(t *testing.T) {
	b := New()
	called := false
	b.Subscribe("thing.happened", func(ctx context.Context, occ Occurrence) error {
		called = true
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := b.Publish(ctx, testOccurrence{kind: "thing.happened"}); err == nil {
		t.Fatal("expected error from cancelled context")
	}
	if called {
		t.Error("handlers should not run after cancellation")
	}
}
