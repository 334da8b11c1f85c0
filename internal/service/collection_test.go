package service

import (
	"context"
	"errors"
	"testing"

	"github.com/s9b/memenem/internal/domain"
)

func TestCollectionSaveDeduplicates(t *testing.T) {
	ctx := context.Background()
	svc := newTestCollection(t)

	added, err := svc.Save(ctx, sampleMeme("m1", domain.StyleSarcastic, 80, 1))
	if err != nil || !added {
		t.Fatalf("first save: added=%v err=%v", added, err)
	}
	added, err = svc.Save(ctx, sampleMeme("m1", domain.StyleWholesome, 10, 0))
	if err != nil {
		t.Fatalf("second save: %v", err)
	}
	if added {
		t.Error("saving an existing id should be a no-op")
	}

	memes, _ := svc.List(ctx)
	if len(memes) != 1 || memes[0].Style != domain.StyleSarcastic {
		t.Errorf("unexpected collection: %+v", memes)
	}
}

func TestCollectionRemove(t *testing.T) {
	ctx := context.Background()
	svc := newTestCollection(t)
	for _, id := range []string{"a", "b", "c", "d"} {
		if _, err := svc.Save(ctx, sampleMeme(id, domain.StyleSarcastic, 50, 0)); err != nil {
			t.Fatal(err)
		}
	}

	removed, err := svc.Remove(ctx, "b")
	if err != nil || !removed {
		t.Fatalf("Remove(b) = %v, %v", removed, err)
	}
	removed, _ = svc.Remove(ctx, "b")
	if removed {
		t.Error("removing a missing id should report false")
	}

	n, err := svc.RemoveMany(ctx, []string{"a", "d", "zzz"})
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Errorf("RemoveMany removed %d, want 2", n)
	}

	memes, _ := svc.List(ctx)
	if len(memes) != 1 || memes[0].ID != "c" {
		t.Errorf("unexpected collection: %+v", memes)
	}

	if _, err := svc.Get(ctx, "a"); !errors.Is(err, ErrMemeNotSaved) {
		t.Errorf("Get(a) error = %v, want ErrMemeNotSaved", err)
	}
	saved, err := svc.IsSaved(ctx, "c")
	if err != nil || !saved {
		t.Errorf("IsSaved(c) = %v, %v", saved, err)
	}
}

func TestCollectionSearch(t *testing.T) {
	ctx := context.Background()
	svc := newTestCollection(t)

	m1 := sampleMeme("1", domain.StyleGenZSlang, 0, 0)
	m1.Caption = "When the CODE finally compiles"
	m2 := sampleMeme("2", domain.StyleCorporateIrony, 0, 0)
	m2.TemplateName = "Distracted Boyfriend"
	m3 := sampleMeme("3", domain.StyleWholesome, 0, 0)
	for _, m := range []domain.Meme{m1, m2, m3} {
		svc.Save(ctx, m)
	}

	tests := []struct {
		query string
		want  []string
	}{
		{"code", []string{"1"}},
		{"boyfriend", []string{"2"}},
		{"corporate", []string{"2"}},
		{"  ", []string{"1", "2", "3"}},
		{"nothing-matches", nil},
	}
	for _, tt := range tests {
		got, err := svc.Search(ctx, tt.query)
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != len(tt.want) {
			t.Errorf("Search(%q) returned %d memes, want %d", tt.query, len(got), len(tt.want))
			continue
		}
		for i := range got {
			if got[i].ID != tt.want[i] {
				t.Errorf("Search(%q)[%d] = %s, want %s", tt.query, i, got[i].ID, tt.want[i])
			}
		}
	}
}

func TestCollectionUpdateUpvotesAndStats(t *testing.T) {
	ctx := context.Background()
	svc := newTestCollection(t)

	stats, err := svc.Stats(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if stats != (domain.CollectionStats{}) {
		t.Errorf("empty stats = %+v", stats)
	}

	svc.Save(ctx, sampleMeme("a", domain.StyleSarcastic, 90, 3))
	svc.Save(ctx, sampleMeme("b", domain.StyleSarcastic, 75, 4))
	svc.Save(ctx, sampleMeme("c", domain.StyleDarkHumor, 60, 5))

	ok, err := svc.UpdateUpvotes(ctx, "c", 10)
	if err != nil || !ok {
		t.Fatalf("UpdateUpvotes = %v, %v", ok, err)
	}
	ok, _ = svc.UpdateUpvotes(ctx, "missing", 10)
	if ok {
		t.Error("UpdateUpvotes on a missing meme should report false")
	}

	stats, _ = svc.Stats(ctx)
	want := domain.CollectionStats{Count: 3, AverageVirality: 75, TotalUpvotes: 17, UniqueStyleCount: 2}
	if stats != want {
		t.Errorf("Stats = %+v, want %+v", stats, want)
	}

	if err := svc.Clear(ctx); err != nil {
		t.Fatal(err)
	}
	memes, _ := svc.List(ctx)
	if len(memes) != 0 {
		t.Errorf("collection not cleared: %d left", len(memes))
	}
}

func TestComputeStatsRoundsAverage(t *testing.T) {
	memes := []domain.Meme{
		sampleMeme("a", domain.StyleSarcastic, 70, 0),
		sampleMeme("b", domain.StyleSarcastic, 71, 0),
	}
	if got := ComputeStats(memes).AverageVirality; got != 71 {
		t.Errorf("AverageVirality = %d, want 71", got)
	}
}
