// Package qr renders per-material QR codes and keeps them in the content store.
package qr

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"strings"
	"time"

	goqrcode "github.com/skip2/go-qrcode"

	"go-inventory-qr/pkg/config"
	"go-inventory-qr/pkg/metrics"
	"go-inventory-qr/pkg/storage"
)

const defaultImageSize = 290

// ErrImageMissing is returned by Image when nothing is stored under the name.
var ErrImageMissing = errors.New("qr image missing")

// Provisioner turns a material id into a stored, scannable PNG that points at
// the material's edit page.
type Provisioner struct {
	disk     storage.Disk
	baseURL  string
	editPath string
	size     int
	metrics  *metrics.InventoryMetrics
}

func NewProvisioner(cfg config.QRConfig, disk storage.Disk, m *metrics.InventoryMetrics) (*Provisioner, error) {
	if disk == nil {
		return nil, fmt.Errorf("qr: content store is required")
	}
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("qr: base url is required")
	}
	size := cfg.ImageSize
	if size <= 0 {
		size = defaultImageSize
	}
	return &Provisioner{
		disk:     disk,
		baseURL:  baseURL,
		editPath: strings.Trim(strings.TrimSpace(cfg.EditPath), "/"),
		size:     size,
		metrics:  m,
	}, nil
}

// FileName is the content-store name for a material's QR image.
func FileName(id uint) string {
	return fmt.Sprintf("qr_%d.png", id)
}

// URLFor builds the payload encoded into the QR image.
func (p *Provisioner) URLFor(id uint) string {
	if p.editPath == "" {
		return fmt.Sprintf("%s/%d", p.baseURL, id)
	}
	return fmt.Sprintf("%s/%s/%d", p.baseURL, p.editPath, id)
}

// Render encodes content as a black-on-white PNG of size x size pixels with
// medium error correction.
func Render(content string, size int) ([]byte, error) {
	code, err := goqrcode.New(content, goqrcode.Medium)
	if err != nil {
		return nil, fmt.Errorf("qr: encode: %w", err)
	}
	code.ForegroundColor = color.Black
	code.BackgroundColor = color.White
	png, err := code.PNG(size)
	if err != nil {
		return nil, fmt.Errorf("qr: render png: %w", err)
	}
	return png, nil
}

// Provision renders the QR for id and stores it, overwriting any previous
// image. Returns the file name to keep on the material record.
func (p *Provisioner) Provision(ctx context.Context, id uint) (string, error) {
	if id == 0 {
		return "", fmt.Errorf("qr: material id is required")
	}
	start := time.Now()

	png, err := Render(p.URLFor(id), p.size)
	if err != nil {
		return "", err
	}
	name := FileName(id)
	if err := p.disk.Put(ctx, name, png); err != nil {
		return "", fmt.Errorf("qr: store %s: %w", name, err)
	}

	p.metrics.ObserveQRProvision(time.Since(start))
	return name, nil
}

// Remove deletes a stored image. A missing image is not an error.
func (p *Provisioner) Remove(ctx context.Context, name string) error {
	if strings.TrimSpace(name) == "" {
		return nil
	}
	return p.disk.Delete(ctx, name)
}

// Image returns the stored PNG bytes.
func (p *Provisioner) Image(ctx context.Context, name string) ([]byte, error) {
	ok, err := p.disk.Exists(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("qr: stat %s: %w", name, err)
	}
	if !ok {
		return nil, ErrImageMissing
	}
	data, err := p.disk.Get(ctx, name)
	if errors.Is(err, storage.ErrNotExist) {
		return nil, ErrImageMissing
	}
	return data, err
}
