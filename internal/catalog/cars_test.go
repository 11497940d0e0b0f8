package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriceRangeFilter(t *testing.T) {
	store, _ := newTestStore(t)

	for _, price := range []float64{10000, 20000, 30000} {
		_, err := store.CreateCar(CreateCarInput{
			BrandName: "Honda", Model: "Civic", Year: 2020, Price: price,
		}, nil)
		require.NoError(t, err)
	}

	cars, err := store.ListCars(CarFilter{
		MinPrice: floatPtr(15000),
		MaxPrice: floatPtr(25000),
	})
	require.NoError(t, err)
	require.Len(t, cars, 1)
	assert.Equal(t, 20000.0, cars[0].Price)
}

func TestFiltersAreConjunctive(t *testing.T) {
	store, _ := newTestStore(t)

	_, err := store.CreateCar(CreateCarInput{
		BrandName: "Mazda", Model: "CX-5", Year: 2022, Price: 28000,
		BodyType: strPtr("SUV"), FuelType: strPtr("Petrol"), Transmission: strPtr("Automatic"),
	}, nil)
	require.NoError(t, err)
	_, err = store.CreateCar(CreateCarInput{
		BrandName: "Mazda", Model: "3", Year: 2021, Price: 22000,
		BodyType: strPtr("Hatchback"), FuelType: strPtr("Petrol"), Transmission: strPtr("Manual"),
		Featured: true,
	}, nil)
	require.NoError(t, err)

	cars, err := store.ListCars(CarFilter{BodyType: "SUV", FuelType: "Petrol"})
	require.NoError(t, err)
	require.Len(t, cars, 1)
	assert.Equal(t, "CX-5", cars[0].Model)

	cars, err = store.ListCars(CarFilter{BodyType: "SUV", Transmission: "Manual"})
	require.NoError(t, err)
	assert.Empty(t, cars)

	cars, err = store.ListCars(CarFilter{Featured: true})
	require.NoError(t, err)
	require.Len(t, cars, 1)
	assert.Equal(t, "3", cars[0].Model)

	// No predicates: everything, newest first.
	cars, err = store.ListCars(CarFilter{})
	require.NoError(t, err)
	require.Len(t, cars, 2)
	assert.Equal(t, "3", cars[0].Model)
}

func TestFirstImageIsPrimaryAndUpdateAppends(t *testing.T) {
	store, _ := newTestStore(t)

	car, err := store.CreateCar(CreateCarInput{
		BrandName: "Kia", Model: "Sportage", Year: 2023, Price: 32000,
	}, []ImageUpload{upload("a.jpg"), upload("b.jpg")})
	require.NoError(t, err)

	require.Len(t, car.Images, 2)
	assert.True(t, car.Images[0].IsPrimary)
	assert.False(t, car.Images[1].IsPrimary)

	// Updates append, never steal the primary flag.
	car, err = store.UpdateCar(car.ID, CarPatch{}, []ImageUpload{upload("c.jpg")})
	require.NoError(t, err)

	require.Len(t, car.Images, 3)
	assert.True(t, car.Images[0].IsPrimary)
	assert.False(t, car.Images[1].IsPrimary)
	assert.False(t, car.Images[2].IsPrimary)
}

func TestDisallowedImageExtensionsAreSkipped(t *testing.T) {
	store, _ := newTestStore(t)

	car, err := store.CreateCar(CreateCarInput{
		BrandName: "Seat", Model: "Leon", Year: 2019, Price: 14000,
	}, []ImageUpload{upload("malware.exe"), upload("ok.png")})
	require.NoError(t, err)

	require.Len(t, car.Images, 1)
	assert.Contains(t, car.Images[0].Filename, "ok")
	// The rejected file occupied the first slot, so nothing is primary.
	assert.False(t, car.Images[0].IsPrimary)
}

func TestSparseUpdateLeavesOtherFieldsAlone(t *testing.T) {
	store, _ := newTestStore(t)

	car, err := store.CreateCar(CreateCarInput{
		BrandName: "Subaru", Model: "Impreza", Year: 2018, Price: 17000,
		Mileage: intPtr(42000), Color: strPtr("Blue"),
	}, nil)
	require.NoError(t, err)

	updated, err := store.UpdateCar(car.ID, CarPatch{Model: strPtr("Impreza STI")}, nil)
	require.NoError(t, err)

	assert.Equal(t, "Impreza STI", updated.Model)
	assert.Equal(t, 2018, updated.Year)
	assert.Equal(t, 17000.0, updated.Price)
	require.NotNil(t, updated.Mileage)
	assert.Equal(t, 42000, *updated.Mileage)
	require.NotNil(t, updated.Color)
	assert.Equal(t, "Blue", *updated.Color)
	assert.Equal(t, car.BrandID, updated.BrandID)
}

func TestDeleteCarRemovesImagesAndFiles(t *testing.T) {
	store, files := newTestStore(t)

	car, err := store.CreateCar(CreateCarInput{
		BrandName: "Skoda", Model: "Octavia", Year: 2020, Price: 19000,
	}, []ImageUpload{upload("one.webp"), upload("two.webp")})
	require.NoError(t, err)

	for _, img := range car.Images {
		require.True(t, files.Exists(img.Filename))
	}

	require.NoError(t, store.DeleteCar(car.ID))

	_, err = store.GetCar(car.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	for _, img := range car.Images {
		assert.False(t, files.Exists(img.Filename))
	}
}

func TestDeleteCarImageKeepsNoPrimaryReplacement(t *testing.T) {
	store, files := newTestStore(t)

	car, err := store.CreateCar(CreateCarInput{
		BrandName: "Ford", Model: "Focus", Year: 2017, Price: 11000,
	}, []ImageUpload{upload("main.jpg"), upload("side.jpg")})
	require.NoError(t, err)

	primary := car.Images[0]
	require.True(t, primary.IsPrimary)

	require.NoError(t, store.DeleteCarImage(car.ID, primary.ID))
	assert.False(t, files.Exists(primary.Filename))

	car, err = store.GetCar(car.ID)
	require.NoError(t, err)
	require.Len(t, car.Images, 1)
	// Deliberately no promotion: the car now has no primary image.
	assert.False(t, car.Images[0].IsPrimary)

	// The image id must belong to the car it is addressed through.
	assert.ErrorIs(t, store.DeleteCarImage(99999, car.Images[0].ID), ErrNotFound)
}

func TestDistinctFilterValues(t *testing.T) {
	store, _ := newTestStore(t)

	_, err := store.CreateCar(CreateCarInput{
		BrandName: "VW", Model: "Golf", Year: 2020, Price: 20000,
		BodyType: strPtr("Hatchback"), FuelType: strPtr("Petrol"), Transmission: strPtr("Manual"),
	}, nil)
	require.NoError(t, err)
	_, err = store.CreateCar(CreateCarInput{
		BrandName: "VW", Model: "Passat", Year: 2021, Price: 27000,
		BodyType: strPtr("Sedan"), FuelType: strPtr("Petrol"),
	}, nil)
	require.NoError(t, err)

	values, err := store.DistinctFilterValues()
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"Hatchback", "Sedan"}, values.BodyTypes)
	assert.ElementsMatch(t, []string{"Petrol"}, values.FuelTypes)
	assert.ElementsMatch(t, []string{"Manual"}, values.Transmissions)
}

func TestGetCarUnknown(t *testing.T) {
	store, _ := newTestStore(t)
	_, err := store.GetCar(404)
	assert.ErrorIs(t, err, ErrNotFound)
}
