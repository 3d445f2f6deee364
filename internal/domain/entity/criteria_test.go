package entity

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProducts() []Product {
	return []Product{
		{ID: "p1", Name: "Air Podes", Category: "Electronics", Description: "Noise-cancelling AirPodes with 30h battery life.", Price: decimal.NewFromInt(1290), Rating: 4.5},
		{ID: "p2", Name: "Jacket", Category: "Fashion", Description: "", Price: decimal.NewFromInt(1299), Rating: 4.2},
		{ID: "p3", Name: "Cotton Cream T-Shirt", Category: "Fashion", Description: "Soft breathable cotton tee.", Price: decimal.NewFromInt(579), Rating: 4.1},
		{ID: "p4", Name: "Running Shoes Pro", Category: "Fashion", Description: "Lightweight running shoes.", Price: decimal.NewFromInt(849), Rating: 4.6},
		{ID: "p5", Name: "Office Chair", Category: "Home & Kitchen", Description: "Adjustable lumbar support.", Price: decimal.NewFromInt(6400), Rating: 4.3},
	}
}

func productIDs(products []Product) []string {
	ids := make([]string, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
	}

	return ids
}

func TestCriteria_Apply_IdentityFilter(t *testing.T) {
	products := testProducts()

	got := DefaultCriteria().Apply(products)

	assert.Equal(t, productIDs(products), productIDs(got), "default criteria must return the full catalog in original order")
}

func TestCriteria_Apply_DoesNotMutateInput(t *testing.T) {
	products := testProducts()

	criteria := DefaultCriteria()
	criteria.SortBy = SortPriceAsc
	criteria.Apply(products)

	assert.Equal(t, productIDs(testProducts()), productIDs(products))
}

func TestCriteria_Apply_SearchMatchesNameOrDescription(t *testing.T) {
	products := testProducts()

	criteria := DefaultCriteria()
	criteria.Search = "RUNNING"
	got := criteria.Apply(products)
	require.Len(t, got, 1)
	assert.Equal(t, "p4", got[0].ID)

	// Description match only.
	criteria.Search = "lumbar"
	got = criteria.Apply(products)
	require.Len(t, got, 1)
	assert.Equal(t, "p5", got[0].ID)
}

func TestCriteria_Apply_EmptyDescriptionNeverMatches(t *testing.T) {
	criteria := DefaultCriteria()
	criteria.Search = "jacket"

	got := criteria.Apply(testProducts())

	// "Jacket" matches by name even though its description is empty; a term
	// absent from both fields excludes it.
	require.Len(t, got, 1)
	assert.Equal(t, "p2", got[0].ID)

	criteria.Search = "zipper"
	assert.Empty(t, criteria.Apply(testProducts()))
}

func TestCriteria_Apply_CategoryIncludesEveryMember(t *testing.T) {
	products := testProducts()

	for _, p := range products {
		criteria := DefaultCriteria()
		criteria.Category = p.Category

		got := criteria.Apply(products)
		assert.Contains(t, productIDs(got), p.ID)
		for _, match := range got {
			assert.Equal(t, p.Category, match.Category)
		}
	}
}

func TestCriteria_Apply_PriceBounds(t *testing.T) {
	criteria := DefaultCriteria()
	criteria.MinPrice = "849"
	criteria.MaxPrice = "1299"

	got := criteria.Apply(testProducts())

	assert.Equal(t, []string{"p1", "p2", "p4"}, productIDs(got))
}

func TestCriteria_Apply_NonNumericBoundsAreUnbounded(t *testing.T) {
	criteria := DefaultCriteria()
	criteria.MinPrice = "cheap"
	criteria.MaxPrice = " "

	got := criteria.Apply(testProducts())

	assert.Len(t, got, len(testProducts()))
}

func TestCriteria_Apply_PriceSortsAreExactReverses(t *testing.T) {
	products := testProducts() // prices pairwise distinct

	asc := DefaultCriteria()
	asc.SortBy = SortPriceAsc
	desc := DefaultCriteria()
	desc.SortBy = SortPriceDesc

	ascIDs := productIDs(asc.Apply(products))
	descIDs := productIDs(desc.Apply(products))

	require.Len(t, descIDs, len(ascIDs))
	for i, id := range ascIDs {
		assert.Equal(t, id, descIDs[len(descIDs)-1-i])
	}
	assert.Equal(t, []string{"p3", "p4", "p1", "p2", "p5"}, ascIDs)
}

func TestCriteria_Apply_RatingDescIsStable(t *testing.T) {
	products := []Product{
		{ID: "a", Rating: 4.0, Price: decimal.NewFromInt(1)},
		{ID: "b", Rating: 4.5, Price: decimal.NewFromInt(2)},
		{ID: "c", Rating: 4.0, Price: decimal.NewFromInt(3)},
	}

	criteria := DefaultCriteria()
	criteria.SortBy = SortRatingDesc

	got := criteria.Apply(products)

	// Equal ratings keep their original relative order.
	assert.Equal(t, []string{"b", "a", "c"}, productIDs(got))
}

func TestCriteria_Apply_FiltersCombine(t *testing.T) {
	criteria := Criteria{
		Search:   "o",
		Category: "Fashion",
		MinPrice: "600",
		SortBy:   SortPriceDesc,
	}

	got := criteria.Apply(testProducts())

	// "Cotton Cream T-Shirt" is excluded by price, "Jacket" by search.
	assert.Equal(t, []string{"p4"}, productIDs(got))
}
