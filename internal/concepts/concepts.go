// Package concepts holds the static lookup tables that map poem themes,
// emotions, and concrete nouns to Wikidata Q-codes, plus the constraint
// tables used by the matcher. Pure data, no I/O.
package concepts

// MaxQCodes caps the size of a mapped Q-code set to bound query complexity.
const MaxQCodes = 8

// ThemeMapping associates detection keywords with Wikidata Q-codes.
type ThemeMapping struct {
	Keywords []string
	QCodes   []string
}

// EmotionMapping associates an emotion with subject Q-codes and the
// painting genres conventionally paired with it.
type EmotionMapping struct {
	QCodes   []string
	Genres   []string
	Keywords []string
}

// Themes maps theme labels to keywords and Q-codes.
var Themes = map[string]ThemeMapping{
	"nature": {
		Keywords: []string{
			"nature", "natural", "wild", "wilderness", "forest", "wood", "woods",
			"tree", "trees", "leaf", "leaves", "green", "earth", "ground", "land",
			"countryside", "country", "rural", "pastoral", "meadow", "field", "fields",
		},
		QCodes: []string{"Q7860", "Q23397", "Q1640824"}, // nature, landscape, floral painting
	},
	"flowers": {
		Keywords: []string{
			"flower", "flowers", "bloom", "blooms", "blossom", "blossoms", "petal", "petals",
			"rose", "roses", "daffodil", "daffodils", "lily", "lilies", "tulip", "tulips",
			"garden", "gardens", "floral", "botanical", "springtime",
		},
		QCodes: []string{"Q506", "Q1640824", "Q16538"}, // flower, floral painting, romantic
	},
	"water": {
		Keywords: []string{
			"water", "sea", "ocean", "lake", "river", "stream", "brook", "pond", "pool",
			"wave", "waves", "tide", "tides", "rain", "rainy", "storm", "storms",
			"sail", "sailing", "boat", "boats", "ship", "ships", "fishing", "fisherman",
		},
		QCodes: []string{"Q283", "Q16970", "Q131681"}, // water, sea, seascape
	},
	"love": {
		Keywords: []string{
			"love", "loved", "loving", "beloved", "heart", "hearts", "romance", "romantic",
			"kiss", "kisses", "embrace", "embraces", "passion", "passionate", "desire",
			"affection", "tender", "sweet", "dear", "darling", "lover", "lovers",
		},
		QCodes: []string{"Q316", "Q16538", "Q506"}, // love, romantic, flower
	},
	"death": {
		Keywords: []string{
			"death", "die", "dies", "died", "dying", "dead", "grave", "graves", "burial",
			"funeral", "mourning", "grief", "sorrow", "sadness", "tears", "weep",
			"weeping", "memorial", "remembrance", "ghost", "ghosts", "spirit", "spirits",
			"dust", "ashes", "epitaph", "tomb", "cemetery",
		},
		QCodes: []string{"Q4", "Q203", "Q2912397"}, // death, mourning, memorial
	},
	"war": {
		Keywords: []string{
			"war", "wars", "warfare", "battle", "battles", "fight", "fighting", "soldier",
			"soldiers", "army", "armies", "weapon", "weapons", "sword", "swords", "gun",
			"guns", "bomb", "bombs", "conflict", "conflicts",
		},
		QCodes: []string{"Q198", "Q18811", "Q124490"}, // war, battle, violence
	},
	"night": {
		Keywords: []string{
			"night", "nights", "dark", "darkness", "midnight", "evening", "evenings",
			"dusk", "twilight", "moon", "moonlight", "stars", "starry", "sleep", "sleeping",
			"dream", "dreams", "dreaming", "shadow", "shadows",
		},
		QCodes: []string{"Q183", "Q111", "Q12133"}, // night, darkness, sleep
	},
	"day": {
		Keywords: []string{
			"day", "days", "morning", "mornings", "dawn", "sunrise", "sun", "sunny",
			"bright", "light", "lightness", "daylight", "noon", "afternoon", "golden",
			"warmth", "sky", "skies",
		},
		QCodes: []string{"Q111", "Q525", "Q12133"}, // day, sun, light
	},
	"city": {
		Keywords: []string{
			"city", "cities", "urban", "town", "towns", "street", "streets", "road", "roads",
			"building", "buildings", "house", "houses", "window", "windows",
			"door", "doors", "wall", "walls", "roof", "roofs", "crowd", "crowds",
		},
		QCodes: []string{"Q515", "Q395", "Q16875712"}, // city, building, genre painting
	},
	"animals": {
		Keywords: []string{
			"animal", "animals", "bird", "birds", "dog", "dogs", "cat", "cats", "horse",
			"horses", "cow", "cows", "sheep", "lamb", "lambs", "wolf", "wolves", "lion",
			"lions", "eagle", "eagles", "swan", "swans", "butterfly", "butterflies",
		},
		QCodes: []string{"Q729", "Q5113", "Q1640824"}, // animal, bird, floral painting
	},
	"seasons": {
		Keywords: []string{
			"spring", "summer", "autumn", "fall", "winter", "season", "seasons",
			"harvest", "frost", "snow",
		},
		QCodes: []string{"Q23397", "Q12133", "Q1640824"}, // landscape, light, floral painting
	},
	// Fallback bucket so downstream code never sees an empty theme set.
	"general": {
		Keywords: nil,
		QCodes:   []string{"Q3305213", "Q191163"}, // painting, landscape art
	},
}

// Emotions maps emotion labels to Q-codes and conventional genres.
var Emotions = map[string]EmotionMapping{
	"grief": {
		QCodes:   []string{"Q4", "Q203", "Q2912397"}, // death, mourning, memorial
		Genres:   []string{"Q134307", "Q2839016"},    // portrait, religious painting
		Keywords: []string{"mourning", "memorial", "sorrow", "loss", "burial", "funeral", "grave"},
	},
	"melancholy": {
		QCodes:   []string{"Q183", "Q8886", "Q35127"}, // night, loneliness, solitude
		Genres:   []string{"Q191163", "Q40446"},       // landscape, nocturne
		Keywords: []string{"solitary", "twilight", "contemplative", "pensive", "sad", "lonely"},
	},
	"joy": {
		QCodes:   []string{"Q2385804", "Q8274", "Q1068639"}, // celebration, dance, festival
		Genres:   []string{"Q16875712", "Q1640824"},         // genre painting, floral painting
		Keywords: []string{"celebration", "dance", "festive", "bright", "colorful", "happy", "merry"},
	},
	"peace": {
		QCodes:   []string{"Q23397", "Q35127", "Q483130"}, // landscape, solitude, pastoral
		Genres:   []string{"Q191163", "Q1640824"},         // landscape, floral painting
		Keywords: []string{"pastoral", "serene", "calm", "quiet", "peaceful", "tranquil", "gentle"},
	},
	"love": {
		QCodes:   []string{"Q316", "Q16538", "Q506"}, // love, romantic, flower
		Genres:   []string{"Q134307", "Q1640824"},    // portrait, floral painting
		Keywords: []string{"romance", "passion", "tender", "sweet", "beloved", "heart", "kiss"},
	},
	"hope": {
		QCodes:   []string{"Q111", "Q525", "Q12133"}, // day, sun, light
		Genres:   []string{"Q191163", "Q1640824"},    // landscape, floral painting
		Keywords: []string{"dawn", "morning", "promise", "future", "renewal"},
	},
	"despair": {
		QCodes:   []string{"Q183", "Q4", "Q8886"}, // night, death, loneliness
		Genres:   []string{"Q191163", "Q134307"},  // landscape, portrait
		Keywords: []string{"dark", "hopeless", "empty", "void", "lost"},
	},
	"nostalgia": {
		QCodes:   []string{"Q23397", "Q35127", "Q395"}, // landscape, solitude, building
		Genres:   []string{"Q191163", "Q134307"},       // landscape, portrait
		Keywords: []string{"memory", "past", "remember", "childhood", "home", "familiar"},
	},
	// Fallback bucket when no emotion is detected.
	"neutral": {
		QCodes:   []string{"Q191163"}, // landscape art
		Genres:   []string{"Q191163", "Q134307"},
		Keywords: nil,
	},
}

// Objects maps concrete nouns to their own Q-codes. These produce the most
// defensible pairings and survive truncation first.
var Objects = map[string][]string{
	"tree":      {"Q10884"},
	"forest":    {"Q4421"},
	"rose":      {"Q11427"},
	"flower":    {"Q506"},
	"garden":    {"Q1107656"},
	"ocean":     {"Q9430"},
	"sea":       {"Q9430"},
	"river":     {"Q4022"},
	"lake":      {"Q23397"},
	"mountain":  {"Q8502"},
	"moon":      {"Q405"},
	"star":      {"Q523"},
	"sun":       {"Q525"},
	"cloud":     {"Q8074"},
	"snow":      {"Q7561"},
	"house":     {"Q3947"},
	"church":    {"Q16970"},
	"bridge":    {"Q12280"},
	"ship":      {"Q11446"},
	"boat":      {"Q35872"},
	"window":    {"Q35473"},
	"bird":      {"Q5113"},
	"horse":     {"Q726"},
	"dog":       {"Q144"},
	"cat":       {"Q146"},
	"swan":      {"Q34384"},
	"sheep":     {"Q7368"},
	"man":       {"Q8441"},
	"woman":     {"Q467"},
	"child":     {"Q7569"},
}

// HardExclusions maps an emotional tone to Q-codes whose presence in a
// candidate's subjects or genre excludes it outright.
var HardExclusions = map[string][]string{
	"peaceful":    {"Q198", "Q18811", "Q124490"}, // war, battle, violence
	"serene":      {"Q198", "Q18811", "Q124490"},
	"joyful":      {"Q4", "Q203", "Q2912397"}, // death, mourning, memorial
	"celebratory": {"Q4", "Q203", "Q2912397", "Q198", "Q18811", "Q124490"},
	"playful":     {"Q4", "Q203", "Q2912397"},
	"intimate":    {"Q191163"}, // vast landscapes clash with intimate poems
	"bright":      {"Q183"},    // darkness
	"light":       {"Q183"},
}

// EmotionExclusions maps a primary emotion to excluded Q-codes.
var EmotionExclusions = map[string][]string{
	"joy":  {"Q4", "Q203", "Q2912397"}, // death, mourning, memorial
	"hope": {"Q4", "Q203"},
	"love": {"Q198", "Q18811"}, // war, battle
}

// ToneGenres maps an emotional tone to the painting genres conventionally
// associated with it.
var ToneGenres = map[string][]string{
	"playful":       {"Q16875712", "Q1640824"}, // genre painting, floral painting
	"serious":       {"Q134307", "Q2839016"},   // portrait, religious painting
	"melancholic":   {"Q191163", "Q40446"},     // landscape, nocturne
	"celebratory":   {"Q16875712", "Q1640824"},
	"contemplative": {"Q191163", "Q134307"},
	"ironic":        {"Q16875712", "Q134307"},
}

// SoftConflicts lists narrative values that penalize (but never exclude)
// a pairing when poem and artwork disagree.
var SoftConflicts = map[string][]string{
	"indoor":  {"outdoor"},
	"outdoor": {"indoor"},
	"day":     {"night"},
	"night":   {"day"},
	"dawn":    {"night"},
	"dusk":    {"day"},
	"urban":   {"rural"},
	"rural":   {"urban"},
	"summer":  {"winter"},
	"winter":  {"summer"},
	"spring":  {"autumn"},
	"autumn":  {"spring"},
}

// SpatialCompositions maps a poem's spatial quality to the artwork
// composition descriptor it aligns with.
var SpatialCompositions = map[string]string{
	"enclosed":  "intimate",
	"open":      "expansive",
	"centered":  "ordered",
	"dispersed": "chaotic",
}
