package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAvailable(t *testing.T) {
	pets := Available()
	require.Len(t, pets, 24)

	t.Run("cats come first and are always HDB approved", func(t *testing.T) {
		for _, p := range pets[:12] {
			assert.Equal(t, "cat", p.Type, p.Name)
			assert.True(t, p.HDBApproved, p.Name)
		}
	})

	t.Run("the large breed is the only dog not HDB approved", func(t *testing.T) {
		var nonHDB []string
		for _, p := range pets[12:] {
			require.Equal(t, "dog", p.Type, p.Name)
			if !p.HDBApproved {
				nonHDB = append(nonHDB, p.Breed)
			}
		}
		assert.Equal(t, []string{"Golden Retriever"}, nonHDB)
	})

	t.Run("descriptions follow HDB suitability", func(t *testing.T) {
		for _, p := range pets[12:] {
			if p.HDBApproved {
				assert.Contains(t, p.Description, "suitable for HDB living", p.Name)
			} else {
				assert.Contains(t, p.Description, "private or condo home", p.Name)
			}
		}
	})

	t.Run("callers cannot mutate the listing", func(t *testing.T) {
		pets[0].Name = "Changed"
		assert.Equal(t, "Luna", Available()[0].Name)
	})
}

func TestFilter(t *testing.T) {
	pets := Available()

	t.Run("type narrows to one species", func(t *testing.T) {
		cats := Filter{Type: "cat", Fees: DefaultFeeRange()}.Apply(pets)
		assert.Len(t, cats, 12)
	})

	t.Run("hdb-only removes non-approved dogs but keeps every cat", func(t *testing.T) {
		out := Filter{HDBOnly: true, Fees: DefaultFeeRange()}.Apply(pets)
		assert.Len(t, out, 23)
		for _, p := range out {
			assert.NotEqual(t, "Golden Retriever", p.Breed)
		}
	})

	t.Run("fee range is inclusive at both ends", func(t *testing.T) {
		out := Filter{Fees: FeeRange{Min: 90, Max: 90}}.Apply(pets)
		require.Len(t, out, 2)
		assert.Equal(t, "Rocky", out[0].Name)
		assert.Equal(t, "Duke", out[1].Name)
	})
}

func TestFeeRange(t *testing.T) {
	t.Run("raising min past max drags max up", func(t *testing.T) {
		r := FeeRange{Min: 50, Max: 100}.SetMin(200)
		assert.Equal(t, FeeRange{Min: 200, Max: 200}, r)
	})

	t.Run("lowering max past min drags min down", func(t *testing.T) {
		r := FeeRange{Min: 200, Max: 350}.SetMax(120)
		assert.Equal(t, FeeRange{Min: 120, Max: 120}, r)
	})

	t.Run("moves inside the range leave the other end alone", func(t *testing.T) {
		r := DefaultFeeRange().SetMin(100).SetMax(300)
		assert.Equal(t, FeeRange{Min: 100, Max: 300}, r)
	})
}
