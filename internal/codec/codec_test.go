package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tracechain/internal/domain"
	dErrors "tracechain/pkg/domain-errors"
)

func TestProductTypeRoundTrip(t *testing.T) {
	record := domain.ProductType{
		ID:          "olive",
		Name:        "Olive",
		Description: "fruit",
		Measure:     domain.UnitKilograms,
		DerivedProducts: []domain.DerivedProduct{
			{ProductTypeID: "oil", ConversionRate: 0.2},
			{ProductTypeID: "paste", ConversionRate: 0.9},
		},
	}

	data, err := Encode(record)
	require.NoError(t, err)

	decoded, err := DecodeProductType(data)
	require.NoError(t, err)
	assert.Equal(t, record, decoded)
}

func TestDecodeRejectsUnknownFields(t *testing.T) {
	data := []byte(`{"id":"harvester","role":"operator","privilege":"root"}`)
	_, err := DecodeTaskType(data)
	require.Error(t, err)
	assert.True(t, dErrors.Is(err, dErrors.CodeInternal))
}

func TestDecodeSystemAdmin(t *testing.T) {
	data, err := Encode(domain.SystemAdmin{PublicKey: "02abc", Timestamp: 1754042400})
	require.NoError(t, err)

	admin, err := DecodeSystemAdmin(data)
	require.NoError(t, err)
	assert.Equal(t, "02abc", admin.PublicKey)
	assert.Equal(t, int64(1754042400), admin.Timestamp)
}
