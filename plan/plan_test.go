package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func planPtr(p Plan) *Plan {
	return &p
}

func TestIsFeatureAllowed(t *testing.T) {
	tests := []struct {
		name     string
		required Requirement
		user     *Plan
		expected bool
	}{
		{"NoPlanDeniedGratisFeature", RequireGratis, nil, false},
		{"NoPlanDeniedAllFeature", RequireAll, nil, false},
		{"GratisAllowedAllFeature", RequireAll, planPtr(Gratis), true},
		{"GratisAllowedGratisFeature", RequireGratis, planPtr(Gratis), true},
		{"GratisDeniedProFeature", RequirePro, planPtr(Gratis), false},
		{"GratisDeniedBusinessFeature", RequireBusiness, planPtr(Gratis), false},
		{"ProAllowedGratisFeature", RequireGratis, planPtr(Pro), true},
		{"ProAllowedProFeature", RequirePro, planPtr(Pro), true},
		{"ProDeniedBusinessFeature", RequireBusiness, planPtr(Pro), false},
		{"BusinessAllowedEverything", RequireBusiness, planPtr(Business), true},
		{"BusinessAllowedProFeature", RequirePro, planPtr(Business), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsFeatureAllowed(tt.required, tt.user))
		})
	}
}

func TestRequirementFor(t *testing.T) {
	t.Run("KnownViews", func(t *testing.T) {
		assert.Equal(t, RequireGratis, RequirementFor(ViewWeather))
		assert.Equal(t, RequirePro, RequirementFor(ViewHarvests))
		assert.Equal(t, RequireBusiness, RequirementFor(ViewCashFlow))
		assert.Equal(t, RequireAll, RequirementFor(ViewUpgrade))
	})

	t.Run("UnknownViewRequiresBusiness", func(t *testing.T) {
		assert.Equal(t, RequireBusiness, RequirementFor(View("Sconosciuto")))
	})
}

func TestCanAccess(t *testing.T) {
	tests := []struct {
		name     string
		view     View
		user     *Plan
		expected bool
	}{
		{"GratisOpensWeather", ViewWeather, planPtr(Gratis), true},
		{"GratisCannotOpenHarvests", ViewHarvests, planPtr(Gratis), false},
		{"ProOpensCommunity", ViewCommunity, planPtr(Pro), true},
		{"ProCannotOpenDesignGarden", ViewDesignGarden, planPtr(Pro), false},
		{"BusinessOpensCashFlow", ViewCashFlow, planPtr(Business), true},
		{"AnonymousCannotOpenGarden", ViewGarden, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CanAccess(tt.view, tt.user))
		})
	}
}

func TestNavItemsCoverEveryView(t *testing.T) {
	views := []View{
		ViewGarden, ViewVegetables, ViewChecklist, ViewWeather,
		ViewDesignGarden, ViewAgroGardener, ViewCashFlow, ViewHarvests,
		ViewCommunity, ViewEcommerce, ViewFaq, ViewUpgrade,
	}

	assert.Len(t, NavItems, len(views))
	for _, v := range views {
		_, ok := requirements[v]
		assert.True(t, ok, "view %q missing from nav registry", v)
	}
}

func TestPlanIsValid(t *testing.T) {
	assert.True(t, Gratis.IsValid())
	assert.True(t, Pro.IsValid())
	assert.True(t, Business.IsValid())
	assert.False(t, Plan("Premium").IsValid())
	assert.False(t, Plan("").IsValid())
}
