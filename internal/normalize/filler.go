package normalize

// DefaultFillerWords are qualifiers that rarely change which canonical item an
// ingredient refers to.
var DefaultFillerWords = []string{
	"fresh",
	"freshly",
	"organic",
	"ripe",
	"raw",
	"large",
	"medium",
	"small",
	"boneless",
	"skinless",
	"good",
	"quality",
	"homemade",
	"store",
	"bought",
	"optional",
}
