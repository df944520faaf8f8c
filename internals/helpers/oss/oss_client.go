// Blob gateway on Aliyun OSS. Every image is re-encoded to bounded-size WebP
// before upload; uploads overwrite, so re-submitting the same key is safe.
package helperOSS

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"math"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"
)

const (
	churchImagePrefix      = "church-images"
	eventImagePrefix       = "event-images"
	verificationDocPrefix  = "verification-docs"
	registrationTempPrefix = "registration-temp"

	maxImageEdge   = 1600
	thumbEdge      = 400
	webpQuality    = 80
	MaxUploadBytes = 5 * 1024 * 1024
)

type Service struct {
	bucket        *oss.Bucket
	publicBaseURL string
}

// NewServiceFromEnv builds the OSS client from OSS_ENDPOINT,
// OSS_ACCESS_KEY_ID, OSS_ACCESS_KEY_SECRET, OSS_BUCKET and the optional
// OSS_PUBLIC_BASE_URL (CDN) override.
func NewServiceFromEnv() (*Service, error) {
	endpoint := strings.TrimSpace(os.Getenv("OSS_ENDPOINT"))
	keyID := strings.TrimSpace(os.Getenv("OSS_ACCESS_KEY_ID"))
	keySecret := strings.TrimSpace(os.Getenv("OSS_ACCESS_KEY_SECRET"))
	bucketName := strings.TrimSpace(os.Getenv("OSS_BUCKET"))
	if endpoint == "" || keyID == "" || keySecret == "" || bucketName == "" {
		return nil, fmt.Errorf("oss: missing OSS_ENDPOINT / OSS_ACCESS_KEY_ID / OSS_ACCESS_KEY_SECRET / OSS_BUCKET")
	}

	client, err := oss.New(endpoint, keyID, keySecret)
	if err != nil {
		return nil, fmt.Errorf("oss: init client: %w", err)
	}
	bucket, err := client.Bucket(bucketName)
	if err != nil {
		return nil, fmt.Errorf("oss: open bucket %s: %w", bucketName, err)
	}

	base := strings.TrimSpace(os.Getenv("OSS_PUBLIC_BASE_URL"))
	if base == "" {
		base = fmt.Sprintf("https://%s.%s", bucketName, strings.TrimPrefix(endpoint, "https://"))
	}
	return &Service{bucket: bucket, publicBaseURL: strings.TrimRight(base, "/")}, nil
}

func (s *Service) PublicURL(key string) string {
	return s.publicBaseURL + "/" + key
}

// UploadChurchImage stores a church photo under
// church-images/<churchID>/<kind>.webp. kind is "main" or "interior". The
// churchID may also be a temporary registration id; see RekeyChurchImage.
func (s *Service) UploadChurchImage(churchID, kind, filename string, r io.Reader) (string, error) {
	data, err := convertToWebP(r, filename, maxImageEdge)
	if err != nil {
		return "", err
	}
	key := fmt.Sprintf("%s/%s/%s.webp", churchImagePrefix, churchID, kind)
	if err := s.put(key, data); err != nil {
		return "", err
	}
	return s.PublicURL(key), nil
}

// UploadRegistrationImage parks a submitted photo under a temporary key until
// the church record exists and its real id is known.
func (s *Service) UploadRegistrationImage(draftID, filename string, r io.Reader) (string, error) {
	data, err := convertToWebP(r, filename, maxImageEdge)
	if err != nil {
		return "", err
	}
	key := fmt.Sprintf("%s/%s/main.webp", registrationTempPrefix, draftID)
	if err := s.put(key, data); err != nil {
		return "", err
	}
	return key, nil
}

// RekeyChurchImage moves a temp registration upload to its final
// church-images key once the church id is known. Returns the public URL of
// the final object.
func (s *Service) RekeyChurchImage(tempKey, churchID string) (string, error) {
	destKey := fmt.Sprintf("%s/%s/main.webp", churchImagePrefix, churchID)
	if _, err := s.bucket.CopyObject(tempKey, destKey); err != nil {
		return "", fmt.Errorf("oss: copy %s -> %s: %w", tempKey, destKey, err)
	}
	if err := s.bucket.DeleteObject(tempKey); err != nil {
		// final object exists; a stale temp key is only garbage
		return s.PublicURL(destKey), nil
	}
	return s.PublicURL(destKey), nil
}

// UploadEventImage stores the event photo and a listing thumbnail.
func (s *Service) UploadEventImage(eventID, filename string, r io.Reader) (string, error) {
	all, err := readAll(r)
	if err != nil {
		return "", err
	}

	data, err := convertToWebP(bytes.NewReader(all), filename, maxImageEdge)
	if err != nil {
		return "", err
	}
	key := fmt.Sprintf("%s/%s/image.webp", eventImagePrefix, eventID)
	if err := s.put(key, data); err != nil {
		return "", err
	}

	if thumb, err := makeThumb(all, filename); err == nil {
		thumbKey := fmt.Sprintf("%s/%s/thumb.webp", eventImagePrefix, eventID)
		_ = s.put(thumbKey, thumb) // thumbnail is best-effort
	}
	return s.PublicURL(key), nil
}

// UploadVerificationDocument stores the diocese letter / tax form as-is
// (PDF or image), keyed by draft id.
func (s *Service) UploadVerificationDocument(draftID, filename string, r io.Reader) (string, error) {
	all, err := readAll(r)
	if err != nil {
		return "", err
	}
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".pdf", ".png", ".jpg", ".jpeg":
	default:
		return "", fmt.Errorf("oss: unsupported document type %q", ext)
	}
	key := fmt.Sprintf("%s/%s/document%s", verificationDocPrefix, draftID, ext)
	if err := s.put(key, all); err != nil {
		return "", err
	}
	return s.PublicURL(key), nil
}

func (s *Service) put(key string, data []byte) error {
	if err := s.bucket.PutObject(key, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("oss: put %s: %w", key, err)
	}
	return nil
}

/* =======================================================================
   Image pipeline: decode (jpeg/png/webp, MIME-sniffed) → downscale → WebP
======================================================================= */

func convertToWebP(r io.Reader, filename string, maxEdge int) ([]byte, error) {
	all, err := readAll(r)
	if err != nil {
		return nil, err
	}

	img, err := decodeImage(all, filename)
	if err != nil {
		return nil, err
	}
	img = downscaleIfNeeded(img, maxEdge, maxEdge)

	buf := new(bytes.Buffer)
	if err := webp.Encode(buf, img, &webp.Options{Lossless: false, Quality: webpQuality}); err != nil {
		return nil, fmt.Errorf("oss: webp encode: %w", err)
	}
	return buf.Bytes(), nil
}

func makeThumb(all []byte, filename string) ([]byte, error) {
	img, err := decodeImage(all, filename)
	if err != nil {
		return nil, err
	}
	thumb := imaging.Fit(img, thumbEdge, thumbEdge, imaging.Lanczos)
	buf := new(bytes.Buffer)
	if err := webp.Encode(buf, thumb, &webp.Options{Lossless: false, Quality: webpQuality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decodeImage(all []byte, filename string) (image.Image, error) {
	if len(all) == 0 {
		return nil, fmt.Errorf("empty file")
	}
	head := all
	if len(head) > 512 {
		head = head[:512]
	}
	ct := http.DetectContentType(head)

	switch {
	case strings.Contains(ct, "jpeg"):
		return jpeg.Decode(bytes.NewReader(all))
	case strings.Contains(ct, "png"):
		return png.Decode(bytes.NewReader(all))
	case strings.Contains(ct, "webp"):
		return webp.Decode(bytes.NewReader(all))
	}

	// fallback by extension
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpg", ".jpeg":
		return jpeg.Decode(bytes.NewReader(all))
	case ".png":
		return png.Decode(bytes.NewReader(all))
	case ".webp":
		return webp.Decode(bytes.NewReader(all))
	}
	return nil, fmt.Errorf("unsupported image format: %s / %s", ct, filepath.Ext(filename))
}

func downscaleIfNeeded(src image.Image, maxW, maxH int) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxW && h <= maxH {
		return src
	}
	scale := math.Min(float64(maxW)/float64(w), float64(maxH)/float64(h))
	nw := int(math.Round(float64(w) * scale))
	nh := int(math.Round(float64(h) * scale))
	if nw < 1 {
		nw = 1
	}
	if nh < 1 {
		nh = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}

func readAll(r io.Reader) ([]byte, error) {
	all, err := io.ReadAll(io.LimitReader(r, MaxUploadBytes+1))
	if err != nil {
		return nil, err
	}
	if len(all) > MaxUploadBytes {
		return nil, fmt.Errorf("file exceeds %d bytes", MaxUploadBytes)
	}
	return all, nil
}
