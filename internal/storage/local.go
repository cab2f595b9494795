// Package storage holds FileStorage adapters for admin uploads.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-slug"
	"github.com/google/uuid"
	"golang.org/x/image/draw"

	"github.com/macintoshUserchg/tnsir-km-rempo-sub001/internal/logging"
	"github.com/macintoshUserchg/tnsir-km-rempo-sub001/pkg/interfaces"
)

const (
	DefaultMaxBytes      int64 = 10 << 20
	DefaultMaxImageWidth       = 1600
	jpegQuality                = 85
)

var (
	ErrEmptyFile       = errors.New("storage: file is empty")
	ErrFileTooLarge    = errors.New("storage: file exceeds size limit")
	ErrUnsupportedType = errors.New("storage: content type not allowed")
	ErrRootRequired    = errors.New("storage: root directory is required")
)

var defaultAllowedTypes = map[string]string{
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
	"image/gif":       ".gif",
	"image/webp":      ".webp",
	"application/pdf": ".pdf",
}

// Option configures a LocalDisk.
type Option func(*LocalDisk)

func WithMaxBytes(limit int64) Option {
	return func(d *LocalDisk) {
		if limit > 0 {
			d.maxBytes = limit
		}
	}
}

// WithMaxImageWidth sets the width above which raster images are scaled down
// and re-encoded as JPEG. Zero disables resizing.
func WithMaxImageWidth(width int) Option {
	return func(d *LocalDisk) {
		if width >= 0 {
			d.maxImageWidth = width
		}
	}
}

func WithLogger(logger interfaces.Logger) Option {
	return func(d *LocalDisk) {
		d.logger = logging.OrNoOp(logger)
	}
}

// WithNameGenerator replaces the random suffix appended to stored names.
func WithNameGenerator(fn func() string) Option {
	return func(d *LocalDisk) {
		if fn != nil {
			d.suffix = fn
		}
	}
}

// LocalDisk writes uploads beneath a root directory and returns URLs under a
// public prefix, e.g. "/uploads/hero-3f2a1c.jpg".
type LocalDisk struct {
	root          string
	publicPrefix  string
	maxBytes      int64
	maxImageWidth int
	allowed       map[string]string
	suffix        func() string
	logger        interfaces.Logger
}

var _ interfaces.FileStorage = (*LocalDisk)(nil)

func NewLocalDisk(root, publicPrefix string, opts ...Option) (*LocalDisk, error) {
	root = strings.TrimSpace(root)
	if root == "" {
		return nil, ErrRootRequired
	}
	prefix := "/" + strings.Trim(strings.TrimSpace(publicPrefix), "/")
	if prefix == "/" {
		prefix = ""
	}
	d := &LocalDisk{
		root:          root,
		publicPrefix:  prefix,
		maxBytes:      DefaultMaxBytes,
		maxImageWidth: DefaultMaxImageWidth,
		allowed:       defaultAllowedTypes,
		suffix: func() string {
			return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
		},
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// Root returns the directory files are written to.
func (d *LocalDisk) Root() string {
	return d.root
}

// Store validates and writes body. The content type is sniffed from the data;
// the declared contentType is only used when sniffing is inconclusive.
func (d *LocalDisk) Store(ctx context.Context, name, contentType string, body io.Reader) (interfaces.StoredFile, error) {
	if err := ctx.Err(); err != nil {
		return interfaces.StoredFile{}, err
	}
	if body == nil {
		return interfaces.StoredFile{}, ErrEmptyFile
	}

	data, err := io.ReadAll(io.LimitReader(body, d.maxBytes+1))
	if err != nil {
		return interfaces.StoredFile{}, fmt.Errorf("storage: read upload: %w", err)
	}
	if len(data) == 0 {
		return interfaces.StoredFile{}, ErrEmptyFile
	}
	if int64(len(data)) > d.maxBytes {
		return interfaces.StoredFile{}, fmt.Errorf("%w: max %d bytes", ErrFileTooLarge, d.maxBytes)
	}

	mimeType := detectType(data, contentType)
	ext, ok := d.allowed[mimeType]
	if !ok {
		return interfaces.StoredFile{}, fmt.Errorf("%w: %s", ErrUnsupportedType, mimeType)
	}

	if resized, ok := d.downscale(data, mimeType); ok {
		data = resized
		mimeType = "image/jpeg"
		ext = ".jpg"
	}

	filename := d.filename(name, ext)
	if err := os.MkdirAll(d.root, 0o755); err != nil {
		return interfaces.StoredFile{}, fmt.Errorf("storage: create root: %w", err)
	}
	if err := writeAtomic(filepath.Join(d.root, filename), data); err != nil {
		return interfaces.StoredFile{}, err
	}

	d.logger.Info("storage.upload.stored", "file", filename, "size", len(data), "mime_type", mimeType)
	return interfaces.StoredFile{
		URL:      path.Join("/", d.publicPrefix, filename),
		Size:     int64(len(data)),
		MimeType: mimeType,
	}, nil
}

func (d *LocalDisk) filename(name, ext string) string {
	base := strings.TrimSuffix(filepath.Base(strings.TrimSpace(name)), filepath.Ext(name))
	normalized, err := slug.Normalize(base)
	if err != nil || normalized == "" {
		normalized = "upload"
	}
	return normalized + "-" + d.suffix() + ext
}

// downscale re-encodes images wider than maxImageWidth. Formats the standard
// decoders cannot read are stored untouched.
func (d *LocalDisk) downscale(data []byte, mimeType string) ([]byte, bool) {
	if d.maxImageWidth <= 0 {
		return nil, false
	}
	switch mimeType {
	case "image/jpeg", "image/png", "image/gif":
	default:
		return nil, false
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil || cfg.Width <= d.maxImageWidth {
		return nil, false
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		d.logger.Warn("storage.upload.decode_failed", "error", err)
		return nil, false
	}

	bounds := img.Bounds()
	height := bounds.Dy() * d.maxImageWidth / bounds.Dx()
	dst := image.NewRGBA(image.Rect(0, 0, d.maxImageWidth, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: jpegQuality}); err != nil {
		d.logger.Warn("storage.upload.encode_failed", "error", err)
		return nil, false
	}
	return buf.Bytes(), true
}

func detectType(data []byte, declared string) string {
	sniffed := http.DetectContentType(data)
	if idx := strings.Index(sniffed, ";"); idx >= 0 {
		sniffed = sniffed[:idx]
	}
	if sniffed == "application/octet-stream" {
		if declared = strings.TrimSpace(strings.ToLower(declared)); declared != "" {
			return declared
		}
	}
	return sniffed
}

func writeAtomic(target string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(target), ".upload-*")
	if err != nil {
		return fmt.Errorf("storage: create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("storage: write upload: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("storage: close upload: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("storage: chmod upload: %w", err)
	}
	if err := os.Rename(tmpName, target); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("storage: move upload: %w", err)
	}
	return nil
}
