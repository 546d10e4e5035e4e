package identity

// builtinRoster is the static staff table shipped with the engine. A
// configured staff directory overlays these at startup; the built-ins keep
// the system usable offline.
var builtinRoster = []StaffEntry{
	{ID: "desiree", Name: "Desiree", Department: "Lead Generation"},
	{ID: "cliff", Name: "Cliff", Department: "Lead Generation"},
	{ID: "gary", Name: "Gary", Department: "Lead Generation"},
	{ID: "will", Name: "Will", Department: "Sales"},
	{ID: "hunter", Name: "Hunter", Department: "Sales"},
	{ID: "resse", Name: "Resse A. Bell", Department: "Financial"},
	{ID: "dell", Name: "Dell", Department: "Technology"},
	{ID: "logan", Name: "Logan", Department: "Operations"},
	{ID: "miles", Name: "Miles Rhodes", Department: "Operations"},
	{ID: "brook", Name: "Brook R.", Department: "Relationships"},
	{ID: "carrie", Name: "Carrie R.", Department: "Relationships"},
	{ID: "kameelah", Name: "Kameelah", Department: "Compliance & Safety"},
	{ID: "regina", Name: "Regina", Department: "Compliance & Safety"},
	{ID: "shanell", Name: "Shanell", Department: "Support & Service"},
	{ID: "clarence", Name: "Clarence", Department: "Support & Service"},
	{ID: "drew", Name: "Drew", Department: "Business Development"},
	{ID: "cal", Name: "Cal Ender", Department: "Operations"},
	{ID: "ana", Name: "Ana Lyles", Department: "Operations"},
	{ID: "alexis", Name: "Alexis Best", Department: "Executive Operations"},
	{ID: "riley-front", Name: "Riley", Department: "Front Office"},
	{ID: "deeva", Name: "Deeva Deveraux", Department: "Executive Leadership"},
	{ID: "preston", Name: "Preston", Department: "Procurement"},
	{ID: "samantha", Name: "Samantha", Department: "Procurement"},
	{ID: "quincy", Name: "Quincy", Department: "Procurement"},
	{ID: "riley", Name: "Riley", Department: "Procurement"},
}
