// Package plan defines subscription tiers and the feature gate that maps
// application views to the minimum tier required to open them.
package plan

// Plan is a subscription tier.
type Plan string

const (
	Gratis   Plan = "Gratis"
	Pro      Plan = "Pro"
	Business Plan = "Business"
)

// Requirement is the tier a feature demands. All marks features open to
// every authenticated user regardless of tier.
type Requirement string

const (
	RequireGratis   Requirement = Requirement(Gratis)
	RequirePro      Requirement = Requirement(Pro)
	RequireBusiness Requirement = Requirement(Business)
	RequireAll      Requirement = "All"
)

var ranks = map[Plan]int{
	Gratis:   1,
	Pro:      2,
	Business: 3,
}

// IsValid reports whether p is one of the known tiers.
func (p Plan) IsValid() bool {
	_, ok := ranks[p]
	return ok
}

// IsFeatureAllowed reports whether a user holding the given plan may use a
// feature with the given requirement. A user without a plan is denied
// everything, including features marked All.
func IsFeatureAllowed(required Requirement, user *Plan) bool {
	if user == nil {
		return false
	}
	if required == RequireAll {
		return true
	}
	return ranks[*user] >= ranks[Plan(required)]
}

// View identifies a navigable section of the application.
type View string

const (
	ViewGarden       View = "Il mio Orto"
	ViewVegetables   View = "I miei ortaggi"
	ViewChecklist    View = "Check List"
	ViewWeather      View = "Meteo"
	ViewDesignGarden View = "Progetta il tuo Orto"
	ViewAgroGardener View = "Il tuo AgroGiardiniere"
	ViewCashFlow     View = "Entrate/Uscite"
	ViewHarvests     View = "Raccolti"
	ViewCommunity    View = "Community"
	ViewEcommerce    View = "E-Commerce"
	ViewFaq          View = "Faq"
	ViewUpgrade      View = "Upgrade"
)

// NavItem pairs a view with the tier it requires.
type NavItem struct {
	View     View        `json:"view"`
	Requires Requirement `json:"requires"`
}

// NavItems lists every view in display order with its required tier.
// Gratis covers the base tools, Pro adds harvests, diagnosis, community and
// the marketplace, Business adds garden design and bookkeeping.
var NavItems = []NavItem{
	{ViewGarden, RequireAll},
	{ViewVegetables, RequireGratis},
	{ViewChecklist, RequireGratis},
	{ViewWeather, RequireGratis},
	{ViewDesignGarden, RequireBusiness},
	{ViewAgroGardener, RequirePro},
	{ViewCashFlow, RequireBusiness},
	{ViewHarvests, RequirePro},
	{ViewCommunity, RequirePro},
	{ViewEcommerce, RequirePro},
	{ViewFaq, RequireGratis},
	{ViewUpgrade, RequireAll},
}

var requirements = func() map[View]Requirement {
	m := make(map[View]Requirement, len(NavItems))
	for _, item := range NavItems {
		m[item.View] = item.Requires
	}
	return m
}()

// RequirementFor returns the tier required for a view. Unknown views are
// treated as requiring Business so nothing unlisted leaks to lower tiers.
func RequirementFor(view View) Requirement {
	if req, ok := requirements[view]; ok {
		return req
	}
	return RequireBusiness
}

// CanAccess reports whether a user holding the given plan may open the view.
func CanAccess(view View, user *Plan) bool {
	return IsFeatureAllowed(RequirementFor(view), user)
}
