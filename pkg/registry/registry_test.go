package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContains(t *testing.T) {
	assert.True(t, Contains(FieldPaymentType, PaymentProjectBased))
	assert.True(t, Contains(FieldCurrency, "EUR"))
	assert.True(t, Contains(FieldMajor, ""), "empty value means unset")
	assert.False(t, Contains(FieldCurrency, "eur"))
	assert.False(t, Contains("firstName", "anything"))
}

func TestOptionsReturnsCopy(t *testing.T) {
	opts, ok := Options(FieldCurrency)
	require.True(t, ok)
	opts[0].Value = "XXX"
	assert.True(t, Contains(FieldCurrency, "USD"))

	_, ok = Options("bio")
	assert.False(t, ok)
}

func TestMajorsCarryCategory(t *testing.T) {
	for _, m := range Majors {
		assert.NotEmpty(t, m.Category, m.Value)
	}
	groups := MajorsByCategory()
	require.Contains(t, groups, "Business")
	assert.Equal(t, "business_administration", groups["Business"][0].Value)
}

func TestOptionValuesUnique(t *testing.T) {
	for field, opts := range All() {
		seen := map[string]bool{}
		for _, o := range opts {
			assert.Falsef(t, seen[o.Value], "%s has duplicate %q", field, o.Value)
			seen[o.Value] = true
		}
	}
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "Intermediate", Label(FieldProficiency, "3"))
	assert.Equal(t, "unknown", Label(FieldIndustry, "unknown"))
	assert.Len(t, Fields(), 10)
}
