package profile

// Industry starter packs merged into a profile on training. Keyed by the
// industry names the original builder shipped with.
var industrySamples = map[string][]QA{
	"retail": {
		{Question: "What are your store hours?", Answer: "Our store is open Monday through Saturday from 9 AM to 6 PM."},
		{Question: "Do you offer returns?", Answer: "Yes, we offer returns within 30 days of purchase with original receipt."},
	},
	"restaurant": {
		{Question: "Do you take reservations?", Answer: "Yes, we accept reservations through our website or by phone."},
		{Question: "Are you open for lunch?", Answer: "Yes, we serve lunch from 11 AM to 3 PM daily."},
	},
	"fitness": {
		{Question: "What are your membership options?", Answer: "We offer monthly and annual memberships with various packages."},
		{Question: "Do you offer personal training?", Answer: "Yes, we have certified personal trainers available for one-on-one sessions."},
	},
}

// IndustrySamples returns the starter FAQ pack for an industry, or nil for
// an unknown one.
func IndustrySamples(industry string) []QA {
	return industrySamples[industry]
}

// Industries lists the industries that ship with a starter pack.
func Industries() []string {
	return []string{"fitness", "restaurant", "retail"}
}
