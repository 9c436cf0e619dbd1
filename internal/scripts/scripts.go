// Package scripts holds the script catalog and role classification used by
// the analytics aggregates.
package scripts

import "strings"

// Script categories.
const (
	CategoryNormal      = "Normal"
	CategoryTeensyville = "Teensyville"
)

// normalScripts lists the scripts reported under the Normal category.
// Everything else is assumed to be a Teensyville (small player count) script.
var normalScripts = map[string]struct{}{
	"trouble brewing":                {},
	"bad moon rising":                {},
	"sects & violets":                {},
	"trouble in violets":             {},
	"trouble in legion":              {},
	"hide & seek":                    {},
	"trouble brewing on expert mode": {},
	"trained killer":                 {},
	"irrational behavior":            {},
	"binary supernovae":              {},
	"everybody can play":             {},
}

// Categorize buckets a script name into Normal or Teensyville.
func Categorize(script string) string {
	key := strings.ToLower(strings.TrimSpace(script))
	if _, ok := normalScripts[key]; ok {
		return CategoryNormal
	}
	return CategoryTeensyville
}

// Categories returns the known categories in display order.
func Categories() []string {
	return []string{CategoryNormal, CategoryTeensyville}
}

// Role types.
const (
	RoleTypeDemon     = "Demons"
	RoleTypeMinion    = "Minions"
	RoleTypeOutsider  = "Outsiders"
	RoleTypeTownsfolk = "Townsfolk"
	RoleTypeTraveller = "Travellers"
	RoleTypeUnknown   = "Unknown"
)

// RoleTypes returns the classification labels in display order.
func RoleTypes() []string {
	return []string{
		RoleTypeTownsfolk,
		RoleTypeOutsider,
		RoleTypeMinion,
		RoleTypeDemon,
		RoleTypeTraveller,
		RoleTypeUnknown,
	}
}

// NormalizeRole canonicalizes a role name for lookups and grouping:
// trimmed, lowercased, spaces replaced with underscores.
func NormalizeRole(role string) string {
	key := strings.ToLower(strings.TrimSpace(role))
	return strings.ReplaceAll(key, " ", "_")
}

// RoleType classifies a role name. Game logs disagree on hyphenation for
// roles like Pit-Hag and Al-Hadikhia, so a miss retries with hyphens and
// underscores swapped.
func RoleType(role string) string {
	key := NormalizeRole(role)
	if t, ok := roleTypes[key]; ok {
		return t
	}
	if t, ok := roleTypes[swapDashes(key)]; ok {
		return t
	}
	return RoleTypeUnknown
}

func swapDashes(s string) string {
	out := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '-':
			out[i] = '_'
		case '_':
			out[i] = '-'
		default:
			out[i] = s[i]
		}
	}
	return string(out)
}

var roleTypes = map[string]string{}

func init() {
	register := func(t string, names ...string) {
		for _, n := range names {
			roleTypes[n] = t
		}
	}

	register(RoleTypeDemon,
		"imp", "zombuul", "pukka", "shabaloth", "po", "fang_gu", "vigormortis",
		"no_dashii", "vortox", "lil'_monsta", "lil_monsta", "lleech",
		"al-hadikhia", "legion", "leviathan", "riot", "kazali", "yaggababble",
		"ojo", "lord_of_typhon",
	)

	register(RoleTypeMinion,
		"poisoner", "spy", "scarlet_woman", "baron", "godfather",
		"devil's_advocate", "devils_advocate", "assassin", "mastermind",
		"witch", "cerenovus", "pit-hag", "evil_twin", "psychopath", "goblin",
		"mezepheles", "marionette", "boomdandy", "fearmonger", "vizier",
		"organ_grinder", "harpy", "summoner", "wizard", "xaan", "boffin",
	)

	register(RoleTypeOutsider,
		"butler", "drunk", "recluse", "saint", "tinker", "moonchild", "goon",
		"lunatic", "sweetheart", "barber", "klutz", "mutant", "politician",
		"zealot", "snitch", "plague_doctor", "damsel", "heretic",
		"puzzlemaster", "golem", "ogre", "hatter",
	)

	register(RoleTypeTownsfolk,
		"washerwoman", "librarian", "investigator", "chef", "empath",
		"fortune_teller", "undertaker", "monk", "ravenkeeper", "virgin",
		"slayer", "soldier", "mayor", "grandmother", "sailor", "chambermaid",
		"exorcist", "innkeeper", "gambler", "gossip", "courtier", "professor",
		"minstrel", "tea_lady", "pacifist", "fool", "clockmaker", "dreamer",
		"snake_charmer", "mathematician", "flowergirl", "town_crier", "oracle",
		"savant", "seamstress", "philosopher", "artist", "juggler", "sage",
		"noble", "balloonist", "shugenja", "village_idiot", "bounty_hunter",
		"pixie", "general", "preacher", "king", "lycanthrope", "amnesiac",
		"nightwatchman", "engineer", "fisherman", "huntsman", "alchemist",
		"farmer", "magician", "choirboy", "poppy_grower", "atheist",
		"cannibal", "cult_leader", "knight", "steward", "high_priestess",
		"acrobat", "banshee",
	)

	register(RoleTypeTraveller,
		"scapegoat", "gunslinger", "beggar", "bureaucrat", "thief",
		"apprentice", "matron", "judge", "bishop", "voudon", "barista",
		"harlot", "butcher", "bone_collector", "deviant", "gangster",
	)
}
