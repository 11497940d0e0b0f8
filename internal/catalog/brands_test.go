package catalog

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateBrandDuplicateReturnsConflictWithSurvivor(t *testing.T) {
	store, _ := newTestStore(t)

	first, err := store.CreateBrand("Toyota")
	require.NoError(t, err)
	require.NotZero(t, first.ID)

	_, err = store.CreateBrand("Toyota")
	var conflict *ConflictError
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, first.ID, conflict.Brand.ID)
	assert.Equal(t, "Toyota", conflict.Brand.Name)
}

func TestListBrandsReportsLiveCarCount(t *testing.T) {
	store, _ := newTestStore(t)

	brand, err := store.CreateBrand("BMW")
	require.NoError(t, err)

	_, err = store.CreateCar(CreateCarInput{
		BrandID: &brand.ID, Model: "320i", Year: 2020, Price: 25000,
	}, nil)
	require.NoError(t, err)
	_, err = store.CreateCar(CreateCarInput{
		BrandID: &brand.ID, Model: "X5", Year: 2022, Price: 60000,
	}, nil)
	require.NoError(t, err)

	brands, err := store.ListBrands()
	require.NoError(t, err)
	require.Len(t, brands, 1)
	assert.Equal(t, 2, brands[0].CarCount)
}

func TestCreateCarWithBrandNameCreatesBrandOnDemand(t *testing.T) {
	store, _ := newTestStore(t)

	car, err := store.CreateCar(CreateCarInput{
		BrandName: "Audi", Model: "A4", Year: 2021, Price: 30000,
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, "Audi", car.BrandName)

	// Same name resolves to the same brand, no duplicate.
	second, err := store.CreateCar(CreateCarInput{
		BrandName: "Audi", Model: "A6", Year: 2023, Price: 45000,
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, car.BrandID, second.BrandID)

	brands, err := store.ListBrands()
	require.NoError(t, err)
	assert.Len(t, brands, 1)
}

func TestCreateCarWithoutBrandFails(t *testing.T) {
	store, _ := newTestStore(t)

	_, err := store.CreateCar(CreateCarInput{Model: "Ghost", Year: 2020, Price: 1000}, nil)
	assert.ErrorIs(t, err, ErrBrandRequired)

	_, err = store.CreateCar(CreateCarInput{
		BrandID: int64Ptr(999), Model: "Ghost", Year: 2020, Price: 1000,
	}, nil)
	assert.ErrorIs(t, err, ErrBrandRequired)
}

func TestDeleteLastCarRemovesOrphanBrand(t *testing.T) {
	store, _ := newTestStore(t)

	car, err := store.CreateCar(CreateCarInput{
		BrandName: "Saab", Model: "9-3", Year: 2008, Price: 4000,
	}, nil)
	require.NoError(t, err)

	require.NoError(t, store.DeleteCar(car.ID))

	brands, err := store.ListBrands()
	require.NoError(t, err)
	assert.Empty(t, brands, "brand with zero cars should be cleaned up")
}

func TestUpdateCarAwayFromBrandCleansUpOrphan(t *testing.T) {
	store, _ := newTestStore(t)

	car, err := store.CreateCar(CreateCarInput{
		BrandName: "Lancia", Model: "Delta", Year: 1992, Price: 35000,
	}, nil)
	require.NoError(t, err)

	updated, err := store.UpdateCar(car.ID, CarPatch{BrandName: "Fiat"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "Fiat", updated.BrandName)

	brands, err := store.ListBrands()
	require.NoError(t, err)
	require.Len(t, brands, 1)
	assert.Equal(t, "Fiat", brands[0].Name)
}

func TestDeleteBrandCascadesToCarsAndImages(t *testing.T) {
	store, files := newTestStore(t)

	car, err := store.CreateCar(CreateCarInput{
		BrandName: "Volvo", Model: "V70", Year: 2015, Price: 15000,
	}, []ImageUpload{upload("front.jpg"), upload("rear.jpg")})
	require.NoError(t, err)
	require.Len(t, car.Images, 2)

	require.NoError(t, store.DeleteBrand(car.BrandID))

	_, err = store.GetCar(car.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	for _, img := range car.Images {
		assert.False(t, files.Exists(img.Filename), "stored file %s should be gone", img.Filename)
	}

	brands, err := store.ListBrands()
	require.NoError(t, err)
	assert.Empty(t, brands)
}

func TestDeleteBrandUnknown(t *testing.T) {
	store, _ := newTestStore(t)
	assert.ErrorIs(t, store.DeleteBrand(12345), ErrNotFound)
}
