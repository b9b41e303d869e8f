package budget

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEstimate(t *testing.T) {
	t.Run("should return the tier price for a known category", func(t *testing.T) {
		assert.Equal(t, 30000.0, Estimate(2, CategoryFood))
		assert.Equal(t, 5000.0, Estimate(1, CategoryTransport))
		assert.Equal(t, 300000.0, Estimate(4, CategoryLodging))
	})

	t.Run("should be monotonically non-decreasing in price level", func(t *testing.T) {
		for _, category := range Categories() {
			previous := 0.0
			for level := 1; level <= 4; level++ {
				estimated := Estimate(level, category)
				assert.GreaterOrEqual(t, estimated, previous, "category %s level %d", category, level)
				previous = estimated
			}
		}
	})

	t.Run("should clamp out-of-range price levels instead of failing", func(t *testing.T) {
		assert.Equal(t, Estimate(1, CategoryFood), Estimate(-1, CategoryFood))
		assert.Equal(t, Estimate(1, CategoryFood), Estimate(0, CategoryFood))
		assert.Equal(t, Estimate(4, CategoryFood), Estimate(99, CategoryFood))
	})

	t.Run("should fall back to the moderate tier of 기타 for unknown categories", func(t *testing.T) {
		assert.Equal(t, 20000.0, Estimate(1, Category("커피")))
		assert.Equal(t, 20000.0, Estimate(4, Category("커피")))
	})
}

func TestParseCategory(t *testing.T) {
	t.Run("should keep known categories", func(t *testing.T) {
		for _, category := range Categories() {
			assert.Equal(t, category, ParseCategory(string(category)))
		}
	})

	t.Run("should coerce unknown strings to 기타", func(t *testing.T) {
		assert.Equal(t, CategoryOther, ParseCategory("기념품"))
		assert.Equal(t, CategoryOther, ParseCategory(""))
	})
}
