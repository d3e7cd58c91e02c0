package service

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-inventory-qr/internal/repository"
	pkgerrors "go-inventory-qr/pkg/errors"
)

func jsonUnmarshal(raw string, v any) error {
	return json.Unmarshal([]byte(raw), v)
}

func TestCreateCategory(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	c, err := f.categories.Create(ctx, "  Electrical  ")
	require.NoError(t, err)
	assert.Equal(t, "Electrical", c.Name)

	_, err = f.categories.Create(ctx, "Electrical")
	requireCode(t, err, pkgerrors.CodeConflict)

	lower, err := f.categories.Create(ctx, "electrical")
	require.NoError(t, err, "names are case-sensitive")
	assert.NotEqual(t, c.ID, lower.ID)

	_, err = f.categories.Create(ctx, "   ")
	requireCode(t, err, pkgerrors.CodeValidation)

	all, err := f.categories.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
	assert.Equal(t, []string{EventCategoryCreated, EventCategoryCreated}, f.events.types())
}

func TestListCategoriesSortedByName(t *testing.T) {
	f := newFixture(t)
	for _, name := range []string{"Plumbing", "Cleaning", "Office"} {
		f.category(t, name)
	}
	all, err := f.categories.List(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Cleaning", all[0].Name)
	assert.Equal(t, "Office", all[1].Name)
	assert.Equal(t, "Plumbing", all[2].Name)
}

func TestDeleteCategoryOrphansMaterials(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	doomed := f.category(t, "Doomed")
	kept := f.category(t, "Kept")

	for i := 0; i < 3; i++ {
		f.material(t, MaterialInput{Name: FieldValue(fmt.Sprintf("m%d", i)), Quantity: "1", CategoryID: FieldValue(fmt.Sprint(doomed.ID))})
	}
	other := f.material(t, MaterialInput{Name: "other", Quantity: "1", CategoryID: FieldValue(fmt.Sprint(kept.ID))})

	require.NoError(t, f.categories.Delete(ctx, doomed.ID))

	list, err := f.materials.List(ctx, repository.OrderDefault)
	require.NoError(t, err)
	require.Len(t, list, 4, "materials are never deleted with their category")
	orphans := 0
	for _, m := range list {
		if m.ID == other.ID {
			require.NotNil(t, m.CategoryID)
			assert.Equal(t, kept.ID, *m.CategoryID)
			continue
		}
		assert.Nil(t, m.CategoryID)
		orphans++
	}
	assert.Equal(t, 3, orphans)

	_, err = f.categoryRepo.FindByID(ctx, doomed.ID)
	assert.Error(t, err)

	requireCode(t, f.categories.Delete(ctx, doomed.ID), pkgerrors.CodeNotFound)

	last := f.events.events[len(f.events.events)-1]
	assert.Equal(t, EventCategoryDeleted, last.Type)
	assert.Equal(t, 3, last.Payload.(map[string]any)["orphaned"])
}
