package memory

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"innkeep/internal/blob/core"
)

func TestPutGetHeadRoundTrip(t *testing.T) {
	store := New()
	ctx := context.Background()
	info, err := store.Put(ctx, "ledger/x.json", strings.NewReader("payload"), core.PutOptions{ContentType: "application/json", Metadata: map[string]string{"reservations": "3"}})
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if info.Size != 7 {
		t.Fatalf("unexpected size %d", info.Size)
	}
	head, err := store.Head(ctx, "ledger/x.json")
	if err != nil {
		t.Fatalf("head: %v", err)
	}
	if head.ContentType != "application/json" || head.Metadata["reservations"] != "3" {
		t.Fatalf("unexpected head %+v", head)
	}
	_, rc, err := store.Get(ctx, "ledger/x.json")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	body, _ := io.ReadAll(rc)
	_ = rc.Close()
	if string(body) != "payload" {
		t.Fatalf("unexpected body %q", body)
	}
}

func TestPutRejectsExistingKey(t *testing.T) {
	store := New()
	ctx := context.Background()
	if _, err := store.Put(ctx, "k", strings.NewReader("a"), core.PutOptions{}); err != nil {
		t.Fatalf("first put: %v", err)
	}
	if _, err := store.Put(ctx, "k", strings.NewReader("b"), core.PutOptions{}); err == nil {
		t.Fatalf("expected duplicate put to fail")
	}
}

func TestListOrderedByKey(t *testing.T) {
	store := New()
	ctx := context.Background()
	for _, key := range []string{"b", "a", "other"} {
		if _, err := store.Put(ctx, key, strings.NewReader("x"), core.PutOptions{}); err != nil {
			t.Fatalf("put %s: %v", key, err)
		}
	}
	infos, err := store.List(ctx, "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(infos) != 3 || infos[0].Key != "a" || infos[1].Key != "b" {
		t.Fatalf("unexpected listing %+v", infos)
	}
}

func TestPresignUnsupported(t *testing.T) {
	store := New()
	if _, err := store.PresignURL(context.Background(), "k", core.SignedURLOptions{}); !errors.Is(err, core.ErrUnsupported) {
		t.Fatalf("expected ErrUnsupported got %v", err)
	}
}
