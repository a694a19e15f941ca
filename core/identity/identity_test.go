package identity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"combo-pricing/core/types"
)

func TestSHA256GeneratorKnownVectors(t *testing.T) {
	g := NewSHA256Generator()

	assert.Equal(t,
		"0b2dccc5a8f9e82292c80e92ac44d0c7b998c952df125f9febb60768f6972744",
		g.PlanID(1, types.ServiceMobile, "5GX Prime"))
	assert.Equal(t,
		"147c9e494f80a2cb6e8223c4e9ff6449b22172770191adc8d9e9a2a22df743d7",
		g.ProductID("skt", "Family Bundle"))
	assert.Equal(t,
		"434c07a4a8a376e77efaec318b0f7c691b1ffe0db0a2ac2248ccffbd8b935520",
		g.DiscountID("abc", "First Discount"))
	assert.Equal(t,
		"a5e39e9916c4747d7395f1035e31bb09a2ade8e9bcde3e29d1c8765853089809",
		g.BenefitID("abc", "Free Router"))
}

func TestSHA256GeneratorDistinguishesInputs(t *testing.T) {
	g := NewSHA256Generator()

	// same name under a different company or service type is a different plan
	base := g.PlanID(1, types.ServiceMobile, "Prime")
	assert.NotEqual(t, base, g.PlanID(2, types.ServiceMobile, "Prime"))
	assert.NotEqual(t, base, g.PlanID(1, types.ServiceInternet, "Prime"))
}

func TestUUIDGeneratorDeterministic(t *testing.T) {
	ns := uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")
	g := NewUUIDGenerator(ns)

	first := g.ProductID("skt", "Family Bundle")
	assert.Equal(t, first, g.ProductID("skt", "Family Bundle"))
	assert.NotEqual(t, first, g.ProductID("kt", "Family Bundle"))

	_, err := uuid.Parse(first)
	assert.NoError(t, err)
}
