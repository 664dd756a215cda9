package checkout

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/moeeznaveed278/myplug/internal/models"
	"github.com/moeeznaveed278/myplug/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, s.InitSchema())
	t.Cleanup(func() { s.Close() })
	return s
}

func createTestProduct(t *testing.T, s *store.Store, name string, price float64, sizes ...models.Size) *models.Product {
	t.Helper()
	p := &models.Product{
		Name:        name,
		Description: "Test pair for the suite.",
		Price:       price,
		Gender:      models.GenderMen,
		ProductType: models.TypeShoes,
		Images:      []string{"/static/uploads/" + name + ".jpg"},
		Sizes:       sizes,
	}
	require.NoError(t, s.CreateProduct(p))
	return p
}
