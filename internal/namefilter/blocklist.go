package namefilter

// blocklist is a small, hand-maintained word list bucketed by
// severity. Sourcing a production moderation dictionary is out of
// scope; this exists so filtering levels have observable behavior.
var blocklist = map[string]severity{
	"idiot":   sevLow,
	"stupid":  sevLow,
	"dumb":    sevLow,
	"moron":   sevMedium,
	"retard":  sevMedium,
	"bastard": sevMedium,
	"slur1":   sevHigh,
	"slur2":   sevHigh,
	"nazi":    sevHigh,
}
