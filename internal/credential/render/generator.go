package render

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"minet/internal/credential"
	domainerrors "minet/pkg/domain-errors"
)

const photoFetchLimit = 10 << 20

// Generator turns credential data into encoded credential images. It owns
// the photo loading policy: photos referenced by URL are fetched with a
// bounded budget and a failed load falls back to the initials badge.
type Generator struct {
	renderer *Renderer
	client   *http.Client
	logger   *slog.Logger
}

// GeneratorOption configures a Generator.
type GeneratorOption func(*Generator)

// WithLogger sets the logger used for photo load diagnostics.
func WithLogger(logger *slog.Logger) GeneratorOption {
	return func(g *Generator) {
		g.logger = logger
	}
}

// WithHTTPClient sets the client used to fetch remote photos.
func WithHTTPClient(client *http.Client) GeneratorOption {
	return func(g *Generator) {
		g.client = client
	}
}

// NewGenerator builds a Generator around a shared Renderer.
func NewGenerator(renderer *Renderer, opts ...GeneratorOption) *Generator {
	g := &Generator{
		renderer: renderer,
		client:   &http.Client{Timeout: 10 * time.Second},
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate renders the credential and returns it as a PNG data URL.
func (g *Generator) Generate(ctx context.Context, data credential.Data) (string, error) {
	img := g.render(ctx, data)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", domainerrors.Wrap(err, domainerrors.CodeInternal, "encode credential image")
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// GeneratePNG renders the credential and returns raw PNG bytes, used when
// the image goes straight to the pinning service.
func (g *Generator) GeneratePNG(ctx context.Context, data credential.Data) ([]byte, error) {
	img := g.render(ctx, data)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeInternal, "encode credential image")
	}
	return buf.Bytes(), nil
}

// GenerateJPEG renders the credential as JPEG at the given quality, the
// compact form used for previews.
func (g *Generator) GenerateJPEG(ctx context.Context, data credential.Data, quality int) (string, error) {
	img := g.render(ctx, data)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return "", domainerrors.Wrap(err, domainerrors.CodeInternal, "encode credential preview")
	}
	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

func (g *Generator) render(ctx context.Context, data credential.Data) image.Image {
	var photo image.Image
	if data.PhotoURL != "" {
		loaded, err := g.loadPhoto(ctx, data.PhotoURL)
		if err != nil {
			g.logger.Warn("photo load failed, using initials badge", "error", err)
		} else {
			photo = loaded
		}
	}
	return g.renderer.Render(data, photo)
}

// loadPhoto resolves a photo reference, which is either a data URL or an
// http(s) URL.
func (g *Generator) loadPhoto(ctx context.Context, src string) (image.Image, error) {
	if strings.HasPrefix(src, "data:") {
		payload, _, err := DecodeDataURL(src)
		if err != nil {
			return nil, err
		}
		img, _, err := image.Decode(bytes.NewReader(payload))
		if err != nil {
			return nil, fmt.Errorf("decode photo: %w", err)
		}
		return img, nil
	}

	if !strings.HasPrefix(src, "http://") && !strings.HasPrefix(src, "https://") {
		return nil, fmt.Errorf("unsupported photo reference %q", src)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, err
	}
	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch photo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch photo: unexpected status %d", resp.StatusCode)
	}

	img, _, err := image.Decode(io.LimitReader(resp.Body, photoFetchLimit))
	if err != nil {
		return nil, fmt.Errorf("decode photo: %w", err)
	}
	return img, nil
}

// File is a decoded data-URL payload with a name and MIME type, ready for
// pinning or download.
type File struct {
	Name string
	MIME string
	Data []byte
}

// DataURLToFile decodes a base64 data URL into a named file.
func DataURLToFile(dataURL, name string) (File, error) {
	payload, mime, err := DecodeDataURL(dataURL)
	if err != nil {
		return File{}, err
	}
	return File{Name: name, MIME: mime, Data: payload}, nil
}

// DecodeDataURL splits a base64 data URL into payload bytes and MIME type.
func DecodeDataURL(dataURL string) ([]byte, string, error) {
	header, encoded, ok := strings.Cut(dataURL, ",")
	if !ok {
		return nil, "", domainerrors.New(domainerrors.CodeInvalidInput, "malformed data URL")
	}

	mime := "image/png"
	if rest, found := strings.CutPrefix(header, "data:"); found {
		if m, _, hasParams := strings.Cut(rest, ";"); hasParams && m != "" {
			mime = m
		} else if !hasParams && rest != "" {
			mime = rest
		}
	}

	payload, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, "", domainerrors.Wrap(err, domainerrors.CodeInvalidInput, "decode data URL payload")
	}
	return payload, mime, nil
}
