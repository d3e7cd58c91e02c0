package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"go-inventory-qr/internal/model"
	"go-inventory-qr/internal/repository"
	"go-inventory-qr/internal/testutil"
	"go-inventory-qr/pkg/config"
	pkgerrors "go-inventory-qr/pkg/errors"
	"go-inventory-qr/pkg/qr"
	"go-inventory-qr/pkg/storage"
)

type recordedEvent struct {
	Type    string
	Payload any
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (p *recordingPublisher) Publish(eventType string, payload any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, recordedEvent{Type: eventType, Payload: payload})
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

// flakyDisk wraps a disk and fails Put or Delete on demand.
type flakyDisk struct {
	storage.Disk
	failPut    bool
	failDelete bool
}

func (d *flakyDisk) Put(ctx context.Context, name string, content []byte) error {
	if d.failPut {
		return errors.New("disk full")
	}
	return d.Disk.Put(ctx, name, content)
}

func (d *flakyDisk) Delete(ctx context.Context, name string) error {
	if d.failDelete {
		return errors.New("permission denied")
	}
	return d.Disk.Delete(ctx, name)
}

type fixture struct {
	db           *gorm.DB
	materialRepo repository.MaterialRepository
	categoryRepo repository.CategoryRepository
	userRepo     repository.UserRepository
	disk         *flakyDisk
	events       *recordingPublisher
	materials    MaterialService
	categories   CategoryService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.NewDB(t)

	local, err := storage.NewLocalDisk(t.TempDir())
	require.NoError(t, err)
	disk := &flakyDisk{Disk: local}

	provisioner, err := qr.NewProvisioner(config.QRConfig{BaseURL: "http://192.168.0.100", EditPath: "editar", ImageSize: 120}, disk, nil)
	require.NoError(t, err)

	f := &fixture{
		db:           db,
		materialRepo: repository.NewMaterialRepo(db),
		categoryRepo: repository.NewCategoryRepo(db),
		userRepo:     repository.NewUserRepo(db),
		disk:         disk,
		events:       &recordingPublisher{},
	}
	f.materials = NewMaterialService(f.materialRepo, f.categoryRepo, provisioner, f.events, nil, nil)
	f.categories = NewCategoryService(f.categoryRepo, f.materialRepo, db, f.events, nil, nil)
	return f
}

func requireCode(t *testing.T, err error, code pkgerrors.Code) {
	t.Helper()
	require.Error(t, err)
	require.Equal(t, code, pkgerrors.CodeOf(err), "unexpected error: %v", err)
}

func (f *fixture) category(t *testing.T, name string) *model.Category {
	t.Helper()
	c, err := f.categories.Create(context.Background(), name)
	require.NoError(t, err)
	return c
}

func (f *fixture) material(t *testing.T, input MaterialInput) *model.Material {
	t.Helper()
	m, err := f.materials.Create(context.Background(), input)
	require.NoError(t, err)
	return m
}
