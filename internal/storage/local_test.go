package storage

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func pngBytes(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		img.Set(x, 0, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func newDisk(t *testing.T, opts ...Option) *LocalDisk {
	t.Helper()
	opts = append([]Option{WithNameGenerator(func() string { return "abc123" })}, opts...)
	disk, err := NewLocalDisk(t.TempDir(), "/uploads", opts...)
	if err != nil {
		t.Fatalf("new local disk: %v", err)
	}
	return disk
}

func TestStoreWritesFileUnderPublicPrefix(t *testing.T) {
	disk := newDisk(t)

	stored, err := disk.Store(context.Background(), "Hero Banner.png", "image/png", bytes.NewReader(pngBytes(t, 40, 20)))
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	if stored.URL != "/uploads/hero-banner-abc123.png" {
		t.Fatalf("unexpected url %q", stored.URL)
	}
	if stored.MimeType != "image/png" {
		t.Fatalf("expected image/png, got %q", stored.MimeType)
	}
	info, err := os.Stat(filepath.Join(disk.Root(), "hero-banner-abc123.png"))
	if err != nil {
		t.Fatalf("stat stored file: %v", err)
	}
	if info.Size() != stored.Size {
		t.Fatalf("expected size %d, got %d", stored.Size, info.Size())
	}
}

func TestStoreDownscalesWideImages(t *testing.T) {
	disk := newDisk(t, WithMaxImageWidth(100))

	stored, err := disk.Store(context.Background(), "wide.png", "image/png", bytes.NewReader(pngBytes(t, 400, 200)))
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	if stored.MimeType != "image/jpeg" || !strings.HasSuffix(stored.URL, ".jpg") {
		t.Fatalf("expected jpeg output, got %+v", stored)
	}

	data, err := os.ReadFile(filepath.Join(disk.Root(), "wide-abc123.jpg"))
	if err != nil {
		t.Fatalf("read stored file: %v", err)
	}
	cfg, err := jpeg.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode stored jpeg: %v", err)
	}
	if cfg.Width != 100 || cfg.Height != 50 {
		t.Fatalf("expected 100x50, got %dx%d", cfg.Width, cfg.Height)
	}
}

func TestStoreRejectsInvalidUploads(t *testing.T) {
	disk := newDisk(t, WithMaxBytes(64))

	if _, err := disk.Store(context.Background(), "empty.png", "image/png", bytes.NewReader(nil)); !errors.Is(err, ErrEmptyFile) {
		t.Fatalf("expected empty file error, got %v", err)
	}
	if _, err := disk.Store(context.Background(), "notes.txt", "text/plain", strings.NewReader("plain text")); !errors.Is(err, ErrUnsupportedType) {
		t.Fatalf("expected unsupported type, got %v", err)
	}
	if _, err := disk.Store(context.Background(), "big.png", "image/png", bytes.NewReader(bytes.Repeat([]byte{0x89}, 100))); !errors.Is(err, ErrFileTooLarge) {
		t.Fatalf("expected too large, got %v", err)
	}
}

func TestNewLocalDiskRequiresRoot(t *testing.T) {
	if _, err := NewLocalDisk("  ", "/uploads"); !errors.Is(err, ErrRootRequired) {
		t.Fatalf("expected root required, got %v", err)
	}
}
