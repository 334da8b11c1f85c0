package service

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/s9b/memenem/internal/domain"
	"github.com/s9b/memenem/internal/storage"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func newTestDownloader(t *testing.T) (*DownloadService, *CollectionService, *storage.LocalStorage) {
	t.Helper()
	img := pngBytes(t, 12, 7)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/static/broken.png" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.Write(img)
	}))
	t.Cleanup(srv.Close)

	store, err := storage.NewLocalStorage(t.TempDir(), "")
	if err != nil {
		t.Fatal(err)
	}
	col := newTestCollection(t)
	svc := NewDownloadService(col, store, &DownloadConfig{BaseURL: srv.URL, Workers: 3, Timeout: 5 * time.Second})
	svc.now = func() time.Time { return time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC) }
	return svc, col, store
}

func TestDownloadStoresImage(t *testing.T) {
	ctx := context.Background()
	svc, col, store := newTestDownloader(t)
	col.Save(ctx, sampleMeme("d1", domain.StyleGenZSlang, 10, 0))

	res, err := svc.DownloadByID(ctx, "d1")
	if err != nil {
		t.Fatal(err)
	}
	if res.Key != "meme-drake-hotline-bling-gen-z-slang-2024-05-01T10-00-00.jpg" {
		t.Errorf("key = %s", res.Key)
	}
	if res.Format != "png" || res.Width != 12 || res.Height != 7 {
		t.Errorf("image info = %s %dx%d", res.Format, res.Width, res.Height)
	}
	if res.ContentType != "image/png" {
		t.Errorf("content type = %s", res.ContentType)
	}
	ok, _ := store.Exists(ctx, res.Key)
	if !ok {
		t.Error("image not stored")
	}

	// Same template, style and second: the second copy gets the id suffix.
	res2, err := svc.DownloadByID(ctx, "d1")
	if err != nil {
		t.Fatal(err)
	}
	if res2.Key != "meme-drake-hotline-bling-gen-z-slang-2024-05-01T10-00-00-d1.jpg" {
		t.Errorf("second key = %s", res2.Key)
	}
}

func TestDownloadAllCountsOutcomes(t *testing.T) {
	ctx := context.Background()
	svc, col, _ := newTestDownloader(t)

	ok1 := sampleMeme("ok1", domain.StyleSarcastic, 0, 0)
	ok2 := sampleMeme("ok2", domain.StyleWholesome, 0, 0)
	noImage := sampleMeme("none", domain.StyleSarcastic, 0, 0)
	noImage.ImageURL = ""
	broken := sampleMeme("broken", domain.StyleDarkHumor, 0, 0)
	for _, m := range []domain.Meme{ok1, ok2, noImage, broken} {
		col.Save(ctx, m)
	}

	stats, err := svc.DownloadAll(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if stats.TotalItems != 4 || stats.ProcessedItems != 4 {
		t.Errorf("total=%d processed=%d", stats.TotalItems, stats.ProcessedItems)
	}
	if stats.SkippedItems != 1 || stats.FailedItems != 1 {
		t.Errorf("skipped=%d failed=%d", stats.SkippedItems, stats.FailedItems)
	}
	if len(stats.Results) != 2 || stats.Bytes <= 0 {
		t.Errorf("results=%d bytes=%d", len(stats.Results), stats.Bytes)
	}
}

func TestExportCollection(t *testing.T) {
	ctx := context.Background()
	svc, col, store := newTestDownloader(t)
	col.Save(ctx, sampleMeme("e1", domain.StyleSarcastic, 42, 1))

	res, err := svc.ExportCollection(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if res.Key != "memenem-collection-2024-05-01T10-00-00.json" || res.Count != 1 {
		t.Errorf("export = %+v", res)
	}

	rc, err := store.Download(ctx, res.Key)
	if err != nil {
		t.Fatal(err)
	}
	defer rc.Close()
	data, _ := io.ReadAll(rc)
	var memes []domain.Meme
	if err := json.Unmarshal(data, &memes); err != nil {
		t.Fatal(err)
	}
	if len(memes) != 1 || memes[0].ID != "e1" {
		t.Errorf("exported memes = %+v", memes)
	}
}
