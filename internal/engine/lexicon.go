package engine

import "strings"

// baseWords is the built-in en-US lexicon: high-frequency words plus the
// function words that dominate ordinary prose. Compact on purpose; the
// dictionary engine also accepts inflected forms via suffix stripping and
// user-added words loaded from the store.
var baseWords = []string{
	"a", "about", "above", "across", "act", "action", "actually", "add",
	"after", "again", "against", "age", "ago", "agree", "air", "all",
	"allow", "almost", "alone", "along", "already", "also", "although",
	"always", "am", "among", "an", "and", "animal", "another", "answer",
	"any", "anyone", "anything", "appear", "apple", "are", "area", "argue",
	"around", "arrive", "art", "as", "ask", "at", "away", "baby", "back",
	"bad", "ball", "base", "be", "bear", "beautiful", "became", "because",
	"become", "bed", "been", "before", "began", "begin", "behind", "being",
	"believe", "below", "best", "better", "between", "big", "bird", "bit",
	"black", "blue", "board", "boat", "body", "book", "both", "box", "boy",
	"break", "bring", "brother", "brought", "brown", "build", "built",
	"business", "but", "buy", "by", "call", "came", "can", "cannot", "car",
	"care", "carry", "case", "cat", "catch", "cause", "center", "certain",
	"chair", "chance", "change", "character", "check", "child", "children",
	"choose", "city", "class", "clear", "close", "cold", "come", "common",
	"company", "complete", "computer", "consider", "contain", "continue",
	"control", "cost", "could", "country", "course", "cover", "create",
	"cross", "cry", "cut", "dark", "day", "deal", "decide", "deep", "design",
	"develop", "did", "die", "differ", "different", "difficult", "direct",
	"do", "document", "does", "dog", "done", "door", "down", "draw", "dream",
	"dress", "drink", "drive", "drop", "dry", "during", "each", "early",
	"earth", "east", "easy", "eat", "edge", "effect", "eight", "either",
	"else", "end", "enough", "enter", "entire", "even", "evening", "ever",
	"every", "everyone", "everything", "example", "except", "expect",
	"experience", "explain", "eye", "face", "fact", "fall", "family", "far",
	"farm", "fast", "father", "fear", "feel", "feet", "fell", "felt", "few",
	"field", "fight", "figure", "fill", "final", "find", "fine", "finish",
	"fire", "first", "fish", "five", "fly", "follow", "food", "foot", "for",
	"force", "form", "found", "four", "fox", "free", "friend", "from",
	"front", "full", "fun", "game", "gave", "general", "get", "girl", "give",
	"given", "go", "goes", "going", "gold", "gone", "good", "got", "govern",
	"great", "green", "ground", "group", "grow", "had", "half", "hand",
	"happen", "happy", "hard", "has", "have", "he", "head", "hear", "heard",
	"heart", "heat", "heavy", "held", "help", "her", "here", "high", "him",
	"his", "history", "hit", "hold", "home", "hope", "horse", "hot", "hour",
	"house", "how", "however", "human", "hundred", "idea", "if", "important",
	"in", "include", "indeed", "inside", "instead", "interest", "into", "is",
	"issue", "it", "its", "itself", "job", "jump", "jumps", "just", "keep",
	"kept", "key", "kind", "king", "knew", "know", "known", "land",
	"language", "large", "last", "late", "later", "laugh", "law", "lay",
	"lazy", "lead", "learn", "least", "leave", "led", "left", "less", "let",
	"letter", "level", "life", "light", "like", "likely", "line", "list",
	"listen", "little", "live", "local", "long", "look", "lost", "lot",
	"love", "low", "machine", "made", "main", "make", "man", "many", "map",
	"mark", "matter", "may", "maybe", "me", "mean", "measure", "meet",
	"member", "men", "might", "mile", "mind", "mine", "minute", "miss",
	"model", "moment", "money", "month", "moon", "more", "morning", "most",
	"mother", "mountain", "move", "much", "music", "must", "my", "name",
	"nation", "natural", "near", "need", "never", "new", "next", "night",
	"no", "north", "not", "note", "nothing", "notice", "now", "number",
	"object", "occur", "of", "off", "offer", "office", "often", "oh", "oil",
	"old", "on", "once", "one", "only", "open", "or", "order", "other",
	"our", "out", "outside", "over", "own", "page", "paper", "part", "party",
	"pass", "past", "pattern", "pay", "people", "perhaps", "person",
	"picture", "piece", "place", "plan", "plant", "play", "point", "poor",
	"position", "possible", "power", "present", "press", "pretty", "probably",
	"problem", "process", "produce", "product", "program", "provide", "pull",
	"push", "put", "question", "quick", "quickly", "quite", "rain", "raise",
	"ran", "rather", "reach", "read", "ready", "real", "really", "reason",
	"receive", "record", "red", "remember", "report", "require", "rest",
	"result", "return", "right", "river", "road", "rock", "room", "round",
	"rule", "run", "said", "same", "sat", "saw", "say", "school", "sea",
	"season", "second", "see", "seem", "seen", "self", "sell", "send",
	"sense", "sentence", "separate", "serve", "set", "seven", "several",
	"shall", "shape", "she", "ship", "short", "should", "show", "shown",
	"side", "sign", "simple", "since", "sing", "sister", "sit", "six",
	"size", "sky", "sleep", "slow", "small", "snow", "so", "some",
	"someone", "something", "sometimes", "song", "soon", "sound", "south",
	"space", "speak", "special", "spell", "spend", "stand", "star", "start",
	"state", "stay", "step", "still", "stood", "stop", "story", "street",
	"strong", "study", "subject", "such", "summer", "sun", "sure", "surface",
	"system", "table", "take", "taken", "talk", "teach", "team", "tell",
	"ten", "test", "text", "than", "that", "the", "their", "them", "then",
	"there", "these", "they", "thing", "think", "third", "this", "those",
	"though", "thought", "thousand", "three", "through", "time", "to",
	"today", "together", "told", "too", "took", "top", "toward", "town",
	"travel", "tree", "true", "try", "turn", "two", "under", "understand",
	"unit", "until", "up", "upon", "us", "use", "usual", "very", "voice",
	"wait", "walk", "want", "war", "warm", "was", "watch", "water", "way",
	"we", "wear", "week", "well", "went", "were", "west", "what", "when",
	"where", "whether", "which", "while", "white", "who", "whole", "whose",
	"why", "wide", "wife", "will", "wind", "window", "winter", "wish",
	"with", "within", "without", "woman", "women", "wonder", "wood", "word",
	"work", "world", "would", "write", "written", "wrong", "year", "yes",
	"yet", "you", "young", "your",
}

// commonMisspellings maps frequent misspellings to their corrections. A hit
// here is near-certain: the classifier treats these as a known high-
// confidence pattern.
var commonMisspellings = map[string]string{
	"teh":         "the",
	"hte":         "the",
	"adn":         "and",
	"nad":         "and",
	"thier":       "their",
	"recieve":     "receive",
	"seperate":    "separate",
	"definately":  "definitely",
	"occured":     "occurred",
	"occurence":   "occurrence",
	"untill":      "until",
	"wich":        "which",
	"becuase":     "because",
	"beleive":     "believe",
	"freind":      "friend",
	"acheive":     "achieve",
	"wierd":       "weird",
	"tommorow":    "tomorrow",
	"tounge":      "tongue",
	"truely":      "truly",
	"neccessary":  "necessary",
	"accomodate":  "accommodate",
	"existance":   "existence",
	"enviroment":  "environment",
	"goverment":   "government",
	"independant": "independent",
	"publically":  "publicly",
	"embarass":    "embarrass",
	"grammer":     "grammar",
	"upto":        "up to",
}

// IsCommonMisspelling reports whether word (case-insensitive) is in the
// known-misspellings table. The classifier uses it when deciding whether a
// correction matches a known high-confidence pattern.
func IsCommonMisspelling(word string) bool {
	_, ok := commonMisspellings[strings.ToLower(word)]
	return ok
}

// inflectionSuffixes are stripped when the raw token is unknown, so that
// regular inflected forms of known base words pass.
var inflectionSuffixes = []string{"'s", "s", "es", "ed", "ing", "ly", "er", "est"}
