package converter

import (
	"encoding/json"
	"testing"

	"github.com/DRSN-tech/nest-store/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTallyConverterJSON(t *testing.T) {
	conv := NewTallyConverter()
	tallies := []domain.ProductTally{{ProductID: "1", Count: 3}, {ProductID: "7", Count: 1}}

	data, err := json.Marshal(conv.ToArrRedisModel(tallies))
	require.NoError(t, err)
	assert.JSONEq(t, `[{"product_id":"1","count":3},{"product_id":"7","count":1}]`, string(data))

	var models []TallyRedisModel
	require.NoError(t, json.Unmarshal(data, &models))
	assert.Equal(t, tallies, conv.ToArrDomain(models))
	assert.Empty(t, conv.ToArrDomain(nil))
}
