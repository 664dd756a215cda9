package store

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/moeeznaveed278/myplug/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, s.InitSchema())
	t.Cleanup(func() { s.Close() })
	return s
}

func createTestProduct(t *testing.T, s *Store, sizes ...models.Size) *models.Product {
	t.Helper()
	p := &models.Product{
		Name:        "Air Test 1",
		Description: "Test pair for the suite.",
		Price:       250,
		Gender:      models.GenderMen,
		ProductType: models.TypeShoes,
		Images:      []string{"/static/uploads/test.jpg"},
		Sizes:       sizes,
	}
	require.NoError(t, s.CreateProduct(p))
	return p
}
