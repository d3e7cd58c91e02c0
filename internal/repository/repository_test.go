package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"go-inventory-qr/internal/model"
	"go-inventory-qr/internal/testutil"
)

func uintPtr(v uint) *uint { return &v }

func seedCategories(t *testing.T, repo CategoryRepository, names ...string) []model.Category {
	t.Helper()
	out := make([]model.Category, 0, len(names))
	for _, name := range names {
		c := model.Category{Name: name}
		require.NoError(t, repo.Create(context.Background(), &c))
		out = append(out, c)
	}
	return out
}

func namesOf(materials []model.Material) []string {
	out := make([]string, 0, len(materials))
	for _, m := range materials {
		out = append(out, m.Name)
	}
	return out
}

func TestCategoryRepo(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewCategoryRepo(db)
	ctx := context.Background()

	seedCategories(t, repo, "Plumbing", "Electrical", "Office")

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Electrical", all[0].Name)
	assert.Equal(t, "Office", all[1].Name)
	assert.Equal(t, "Plumbing", all[2].Name)

	found, err := repo.FindByName(ctx, "Office")
	require.NoError(t, err)
	assert.Equal(t, all[1].ID, found.ID)

	_, err = repo.FindByName(ctx, "office")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound, "names match case-sensitively")

	dup := model.Category{Name: "Office"}
	assert.ErrorIs(t, repo.Create(ctx, &dup), gorm.ErrDuplicatedKey)

	require.NoError(t, repo.Delete(db, found.ID))
	_, err = repo.FindByID(ctx, found.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestMaterialRepoOrdering(t *testing.T) {
	db := testutil.NewDB(t)
	categories := seedCategories(t, NewCategoryRepo(db), "A-cat", "B-cat")
	repo := NewMaterialRepo(db)
	ctx := context.Background()

	rows := []model.Material{
		{Name: "Zinc", CategoryID: uintPtr(categories[1].ID)},
		{Name: "Bolt"},
		{Name: "Anchor", CategoryID: uintPtr(categories[1].ID)},
		{Name: "Cable", CategoryID: uintPtr(categories[0].ID)},
	}
	for i := range rows {
		require.NoError(t, repo.Create(ctx, &rows[i]))
	}

	tests := []struct {
		order MaterialOrder
		want  []string
	}{
		{OrderDefault, []string{"Zinc", "Bolt", "Anchor", "Cable"}},
		{OrderAlphabetical, []string{"Anchor", "Bolt", "Cable", "Zinc"}},
		{OrderByCategory, []string{"Cable", "Zinc", "Anchor", "Bolt"}},
		{OrderByCategoryThenName, []string{"Cable", "Anchor", "Zinc", "Bolt"}},
		{MaterialOrder("bogus"), []string{"Zinc", "Bolt", "Anchor", "Cable"}},
	}
	for _, tt := range tests {
		t.Run(string(tt.order), func(t *testing.T) {
			got, err := repo.FindAll(ctx, tt.order)
			require.NoError(t, err)
			assert.Equal(t, tt.want, namesOf(got))
		})
	}

	got, err := repo.FindAll(ctx, OrderDefault)
	require.NoError(t, err)
	require.NotNil(t, got[0].Category)
	assert.Equal(t, "B-cat", got[0].Category.Name)
	assert.Nil(t, got[1].Category)
}

func TestMaterialRepoUpdateAndOrphan(t *testing.T) {
	db := testutil.NewDB(t)
	categories := seedCategories(t, NewCategoryRepo(db), "Tools")
	repo := NewMaterialRepo(db)
	ctx := context.Background()

	m := model.Material{Name: "Hammer", Quantity: 4, CategoryID: uintPtr(categories[0].ID)}
	require.NoError(t, repo.Create(ctx, &m))
	assert.Nil(t, m.QRCodeFile)

	file := "qr_1.png"
	require.NoError(t, repo.UpdateQRCodeFile(ctx, m.ID, &file))

	loaded, err := repo.FindByID(ctx, m.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded.QRCodeFile)
	assert.Equal(t, file, *loaded.QRCodeFile)

	loaded.Quantity = 0
	loaded.Category = nil
	loaded.CategoryID = nil
	require.NoError(t, repo.Update(ctx, loaded))

	again, err := repo.FindByID(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, again.Quantity)
	assert.Nil(t, again.CategoryID)

	again.CategoryID = uintPtr(categories[0].ID)
	require.NoError(t, repo.Update(ctx, again))

	linked, err := repo.FindByCategory(db, categories[0].ID)
	require.NoError(t, err)
	require.Len(t, linked, 1)
	require.NoError(t, repo.ClearCategory(db, linked[0].ID))

	linked, err = repo.FindByCategory(db, categories[0].ID)
	require.NoError(t, err)
	assert.Empty(t, linked)

	require.NoError(t, repo.Delete(ctx, m.ID))
	_, err = repo.FindByID(ctx, m.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestCategoryDeleteRefusedWhileReferenced(t *testing.T) {
	db := testutil.NewDB(t)
	categories := NewCategoryRepo(db)
	materials := NewMaterialRepo(db)
	ctx := context.Background()

	cat := seedCategories(t, categories, "Hidráulica")[0]
	m := model.Material{Name: "Pipe", Quantity: 2, CategoryID: uintPtr(cat.ID)}
	require.NoError(t, materials.Create(ctx, &m))

	assert.Error(t, categories.Delete(db, cat.ID), "materials must be uncategorized before the category goes")

	loaded, err := materials.FindByID(ctx, m.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded.CategoryID)
	assert.Equal(t, cat.ID, *loaded.CategoryID)

	require.NoError(t, materials.ClearCategory(db, m.ID))
	require.NoError(t, categories.Delete(db, cat.ID))
}

func TestUserRepo(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewUserRepo(db)
	ctx := context.Background()

	_, err := repo.FindAdmin(ctx)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	admin := model.User{Username: "admin", IsAdmin: true, Approved: true}
	require.NoError(t, admin.SetPassword("pw"))
	require.NoError(t, repo.Create(ctx, &admin))

	pending := model.User{Username: "joao"}
	require.NoError(t, pending.SetPassword("pw"))
	require.NoError(t, repo.Create(ctx, &pending))

	dup := model.User{Username: "joao", Password: "x"}
	assert.ErrorIs(t, repo.Create(ctx, &dup), gorm.ErrDuplicatedKey)

	found, err := repo.FindAdmin(ctx)
	require.NoError(t, err)
	assert.Equal(t, admin.ID, found.ID)

	list, err := repo.FindPending(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "joao", list[0].Username)

	require.NoError(t, repo.UpdateApproved(ctx, pending.ID, true))
	require.NoError(t, repo.UpdateTokenVersion(ctx, pending.ID, "v2"))
	require.NoError(t, repo.UpdatePassword(ctx, pending.ID, "hash"))

	byName, err := repo.FindByUsername(ctx, "joao")
	require.NoError(t, err)
	assert.True(t, byName.Approved)
	assert.Equal(t, "v2", byName.TokenVersion)
	assert.Equal(t, "hash", byName.Password)

	require.NoError(t, repo.Delete(ctx, pending.ID))
	_, err = repo.FindByID(ctx, pending.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
