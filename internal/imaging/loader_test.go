package imaging

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

// createTestImage creates a simple test image file and returns its path.
// The caller is responsible for removing the file.
func createTestImage(t *testing.T, width, height int, c color.Color) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}

	tmpFile, err := os.CreateTemp("", "test-image-*.png")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	defer tmpFile.Close()

	if err := png.Encode(tmpFile, img); err != nil {
		os.Remove(tmpFile.Name())
		t.Fatalf("failed to encode image: %v", err)
	}

	return tmpFile.Name()
}

func TestNewImageCache(t *testing.T) {
	cache := NewImageCache()
	if cache == nil {
		t.Fatal("NewImageCache returned nil")
	}
	if cache.images == nil {
		t.Fatal("NewImageCache did not initialize images map")
	}
}

func TestImageCache_Load(t *testing.T) {
	path := createTestImage(t, 64, 48, color.RGBA{0, 128, 0, 255})
	defer os.Remove(path)

	cache := NewImageCache()
	img, err := cache.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if img.Bounds().Dx() != 64 || img.Bounds().Dy() != 48 {
		t.Errorf("dimensions: got %dx%d, want 64x48", img.Bounds().Dx(), img.Bounds().Dy())
	}

	again, err := cache.Load(path)
	if err != nil {
		t.Fatalf("second Load failed: %v", err)
	}
	if again != img {
		t.Error("second Load should return the cached image")
	}
}

// overwriteImage replaces the file at path with a solid image and moves its
// modification time forward so the change is visible on coarse clocks.
func overwriteImage(t *testing.T, path string, width, height int, c color.Color) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to rewrite image: %v", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		t.Fatalf("failed to encode image: %v", err)
	}
	f.Close()

	later := time.Now().Add(time.Hour)
	if err := os.Chtimes(path, later, later); err != nil {
		t.Fatalf("failed to touch image: %v", err)
	}
}

func TestImageCache_ReloadsRewrittenFile(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		c             color.RGBA
	}{
		{"new dimensions", 32, 32, color.RGBA{0, 128, 0, 255}},
		{"same dimensions new pixels", 64, 48, color.RGBA{200, 10, 10, 255}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := createTestImage(t, 64, 48, color.RGBA{0, 128, 0, 255})
			defer os.Remove(path)

			cache := NewImageCache()
			first, err := cache.Load(path)
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}

			overwriteImage(t, path, tt.width, tt.height, tt.c)
			img, err := cache.Load(path)
			if err != nil {
				t.Fatalf("Load after rewrite failed: %v", err)
			}
			if img == first {
				t.Fatal("Load returned the stale cached image")
			}
			if img.Bounds().Dx() != tt.width || img.Bounds().Dy() != tt.height {
				t.Errorf("dimensions: got %dx%d, want %dx%d", img.Bounds().Dx(), img.Bounds().Dy(), tt.width, tt.height)
			}
			r, _, _, _ := img.At(0, 0).RGBA()
			if uint8(r>>8) != tt.c.R {
				t.Errorf("red at (0,0): got %d, want %d", r>>8, tt.c.R)
			}
		})
	}
}

func TestImageCache_LoadMissingFile(t *testing.T) {
	cache := NewImageCache()
	_, err := cache.Load("/nonexistent/tray.png")
	if err == nil {
		t.Fatal("Load should fail for a missing file")
	}

	var decodeErr *DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("error should be a *DecodeError, got %T", err)
	}
	if decodeErr.Path != "/nonexistent/tray.png" {
		t.Errorf("Path: got %s", decodeErr.Path)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Error("error should unwrap to os.ErrNotExist")
	}
}

func TestImageCache_LoadNotAnImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.png")
	if err := os.WriteFile(path, []byte("this is not a png"), 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	cache := NewImageCache()
	_, err := cache.Load(path)

	var decodeErr *DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("error should be a *DecodeError, got %v", err)
	}
}

func TestImageCache_EvictAndClear(t *testing.T) {
	path := createTestImage(t, 8, 8, color.White)
	defer os.Remove(path)

	cache := NewImageCache()
	if _, err := cache.Load(path); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	cache.Evict(path)
	if _, ok := cache.images[path]; ok {
		t.Error("Evict did not remove the image")
	}

	if _, err := cache.Load(path); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	cache.Clear()
	if len(cache.images) != 0 {
		t.Errorf("Clear left %d images", len(cache.images))
	}
}

func TestImageCache_ConcurrentLoad(t *testing.T) {
	path := createTestImage(t, 32, 32, color.White)
	defer os.Remove(path)

	cache := NewImageCache()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := cache.Load(path); err != nil {
				t.Errorf("concurrent Load failed: %v", err)
			}
		}()
	}
	wg.Wait()
}

func TestLoadImageInfo(t *testing.T) {
	path := createTestImage(t, 120, 90, color.White)
	defer os.Remove(path)

	info, err := LoadImageInfo(NewImageCache(), path)
	if err != nil {
		t.Fatalf("LoadImageInfo failed: %v", err)
	}

	if info.Width != 120 || info.Height != 90 {
		t.Errorf("dimensions: got %dx%d, want 120x90", info.Width, info.Height)
	}
	if info.Format != "png" {
		t.Errorf("Format: got %s, want png", info.Format)
	}
	if info.FileSizeBytes <= 0 {
		t.Errorf("FileSizeBytes: got %d, want > 0", info.FileSizeBytes)
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := map[string]string{
		"tray.png":     "png",
		"tray.PNG":     "png",
		"tray.jpg":     "jpeg",
		"tray.jpeg":    "jpeg",
		"tray.gif":     "gif",
		"tray.tiff":    "unknown",
		"no-extension": "unknown",
	}
	for path, want := range tests {
		if got := FormatFromPath(path); got != want {
			t.Errorf("FormatFromPath(%q) = %s, want %s", path, got, want)
		}
	}
}

func TestCheckImage(t *testing.T) {
	if err := CheckImage(nil); !errors.Is(err, ErrEmptyImage) {
		t.Errorf("CheckImage(nil): got %v, want ErrEmptyImage", err)
	}
	if err := CheckImage(image.NewNRGBA(image.Rect(0, 0, 0, 10))); !errors.Is(err, ErrEmptyImage) {
		t.Errorf("CheckImage(empty): got %v, want ErrEmptyImage", err)
	}
	if err := CheckImage(image.NewNRGBA(image.Rect(0, 0, 1, 1))); err != nil {
		t.Errorf("CheckImage(1x1): got %v, want nil", err)
	}
}
