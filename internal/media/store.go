// Package media stores uploaded images as content-addressed webp files on
// local disk. Each upload is normalized to a master image plus fixed-size
// variants, all keyed by a deterministic hash so re-uploading the same bytes
// is a no-op.
package media

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"image"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"moodia/internal/models"

	"github.com/chai2010/webp"
	xdraw "golang.org/x/image/draw"

	_ "image/gif"  // Register GIF decoder
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder

	_ "golang.org/x/image/webp" // Register WebP decoder
)

const (
	DefaultUploadDir       = "/tmp/moodia/uploads/images"
	DefaultMaxUploadSizeMB = 10
	MasterMaxSize          = 2048
	WebPQuality            = 80
)

// VariantSizes is the fixed ladder of square-bounded variant widths.
var VariantSizes = []int{256, 512, 1024}

// Store writes and resolves image files under a single root directory.
type Store struct {
	dir          string
	maxSizeBytes int64
}

// NewStore creates a disk-backed media store rooted at dir.
func NewStore(dir string, maxUploadSizeMB int) *Store {
	if dir == "" {
		dir = DefaultUploadDir
	}
	if maxUploadSizeMB <= 0 {
		maxUploadSizeMB = DefaultMaxUploadSizeMB
	}
	return &Store{
		dir:          dir,
		maxSizeBytes: int64(maxUploadSizeMB) * 1024 * 1024,
	}
}

// Save validates, decodes and stores an uploaded image, returning its hash.
// The master and every variant that the source is large enough for are
// written synchronously so the URLs are valid as soon as Save returns.
func (s *Store) Save(userID uint, filename, contentType string, content []byte) (string, error) {
	if userID == 0 {
		return "", models.NewValidationError("Invalid user")
	}
	if len(content) == 0 {
		return "", models.NewValidationError("No file uploaded")
	}
	if int64(len(content)) > s.maxSizeBytes {
		return "", models.NewValidationError(fmt.Sprintf("File too large (max %dMB)", s.maxSizeBytes/(1024*1024)))
	}

	detectedType := http.DetectContentType(content)
	if !isAllowedImageMIME(detectedType) {
		return "", models.NewValidationError("Invalid image type")
	}
	if provided := normalizeContentType(contentType); strings.HasPrefix(provided, "image/") && !isAllowedImageMIME(provided) {
		return "", models.NewValidationError("Invalid image type")
	}

	decoded, _, err := image.Decode(bytes.NewReader(content))
	if err != nil {
		return "", models.NewValidationError("Invalid image file")
	}

	hash := contentHash(userID, content)
	if s.exists(hash) {
		return hash, nil
	}

	master := resizeToFit(decoded, MasterMaxSize, MasterMaxSize)
	encoded, err := encodeWebP(master)
	if err != nil {
		return "", models.NewInternalError(err)
	}
	written := []string{s.path(hash, "master.webp")}
	if err := writeBytesToFile(written[0], encoded); err != nil {
		return "", models.NewInternalError(err)
	}

	b := master.Bounds()
	for _, size := range VariantSizes {
		if b.Dx() < size && b.Dy() < size {
			continue
		}
		resized := resizeToFit(master, size, size)
		variantBytes, err := encodeWebP(resized)
		if err != nil {
			s.cleanup(written)
			return "", models.NewInternalError(err)
		}
		p := s.path(hash, fmt.Sprintf("%d.webp", size))
		if err := writeBytesToFile(p, variantBytes); err != nil {
			s.cleanup(written)
			return "", models.NewInternalError(err)
		}
		written = append(written, p)
	}

	return hash, nil
}

// Resolve maps a (hash, size) pair to a file on disk. Size 0 means the
// master. Falls back to the master when the requested variant was never
// generated (source smaller than the ladder step).
func (s *Store) Resolve(hash string, size int) (string, error) {
	if !validHash(hash) {
		return "", models.NewValidationError("Invalid image hash")
	}

	name := "master.webp"
	if size != 0 {
		if !validVariantSize(size) {
			return "", models.NewValidationError("Invalid image size")
		}
		name = fmt.Sprintf("%d.webp", size)
	}

	fullPath := s.path(hash, name)
	if _, err := os.Stat(fullPath); err != nil {
		if size != 0 && os.IsNotExist(err) {
			return s.Resolve(hash, 0)
		}
		if os.IsNotExist(err) {
			return "", models.NewNotFoundError("Image", hash)
		}
		return "", models.NewInternalError(err)
	}
	return fullPath, nil
}

// Delete removes the master and all variants for a hash.
func (s *Store) Delete(hash string) error {
	if !validHash(hash) {
		return models.NewValidationError("Invalid image hash")
	}
	if err := os.RemoveAll(filepath.Join(s.dir, hash)); err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// URL returns the serving path for a stored image. Size 0 means the master.
func URL(hash string, size int) string {
	if size == 0 {
		return fmt.Sprintf("/media/i/%s/master.webp", hash)
	}
	return fmt.Sprintf("/media/i/%s/%d.webp", hash, size)
}

// Variants builds the size-keyed URL map handed to clients.
func Variants(hash string) map[string]string {
	m := make(map[string]string, len(VariantSizes)+1)
	m["master"] = URL(hash, 0)
	for _, size := range VariantSizes {
		m[fmt.Sprintf("%d", size)] = URL(hash, size)
	}
	return m
}

func (s *Store) path(hash, name string) string {
	return filepath.Join(s.dir, hash, name)
}

func (s *Store) exists(hash string) bool {
	_, err := os.Stat(s.path(hash, "master.webp"))
	return err == nil
}

func (s *Store) cleanup(paths []string) {
	for _, p := range paths {
		_ = os.Remove(p)
	}
}

// validHash checks that the hash is strictly lowercase hex (SHA-256 style).
// This prevents path traversal attacks via crafted hash parameters.
func validHash(hash string) bool {
	if len(hash) == 0 || len(hash) > 128 {
		return false
	}
	for _, c := range hash {
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}

func validVariantSize(size int) bool {
	for _, s := range VariantSizes {
		if s == size {
			return true
		}
	}
	return false
}

func contentHash(userID uint, content []byte) string {
	h := sha256.New()
	_, _ = fmt.Fprintf(h, "%d:", userID)
	h.Write(content)
	return hex.EncodeToString(h.Sum(nil))
}

func resizeToFit(src image.Image, maxWidth, maxHeight int) image.Image {
	bounds := src.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()
	if w <= 0 || h <= 0 {
		return src
	}
	if w <= maxWidth && h <= maxHeight {
		return src
	}

	scaleW := float64(maxWidth) / float64(w)
	scaleH := float64(maxHeight) / float64(h)
	scale := scaleW
	if scaleH < scale {
		scale = scaleH
	}
	newW := int(float64(w) * scale)
	newH := int(float64(h) * scale)
	if newW < 1 {
		newW = 1
	}
	if newH < 1 {
		newH = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, xdraw.Over, nil)
	return dst
}

func encodeWebP(img image.Image) ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	if err := webp.Encode(buf, img, &webp.Options{Quality: WebPQuality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func isAllowedImageMIME(contentType string) bool {
	switch normalizeContentType(contentType) {
	case "image/jpeg", "image/jpg", "image/png", "image/gif", "image/webp":
		return true
	default:
		return false
	}
}

func normalizeContentType(contentType string) string {
	if contentType == "" {
		return ""
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(contentType))
	}
	return strings.ToLower(strings.TrimSpace(mediaType))
}

func writeBytesToFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}
