package service

import (
	"testing"

	"github.com/s9b/memenem/internal/domain"
	"github.com/s9b/memenem/internal/repository"
)

func newTestCollection(t *testing.T) *CollectionService {
	t.Helper()
	store, err := repository.NewFileKV(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileKV: %v", err)
	}
	return NewCollectionService(repository.NewCollectionRepository(store))
}

func sampleMeme(id string, style domain.HumorStyle, score float64, upvotes int) domain.Meme {
	return domain.Meme{
		ID:            id,
		TemplateID:    "tpl-" + id,
		TemplateName:  "Drake Hotline Bling",
		Caption:       "caption " + id,
		Style:         style,
		ImageURL:      "/static/" + id + ".png",
		ViralityScore: score,
		Upvotes:       upvotes,
		Timestamp:     "2024-05-01T10:00:00",
	}
}
