package tables

import (
	"github.com/jwebster45206/encounter-engine/pkg/dice"
)

var crXPRows = []CRXP{
	{0, 10}, {0.125, 25}, {0.25, 50}, {0.5, 100},
	{1, 200}, {2, 450}, {3, 700}, {4, 1100}, {5, 1800},
	{6, 2300}, {7, 2900}, {8, 3900}, {9, 5000}, {10, 5900},
	{11, 7200}, {12, 8400}, {13, 10000}, {14, 11500}, {15, 13000},
	{16, 15000}, {17, 18000}, {18, 20000}, {19, 22000}, {20, 25000},
	{21, 33000}, {22, 41000}, {23, 50000}, {24, 62000}, {25, 75000},
	{26, 90000}, {27, 105000}, {28, 120000}, {29, 135000}, {30, 155000},
}

// easy, medium, hard, deadly per character level
var xpThresholds = [MaxLevel][4]int{
	{25, 50, 75, 100},
	{50, 100, 150, 200},
	{75, 150, 225, 400},
	{125, 250, 375, 500},
	{250, 500, 750, 1100},
	{300, 600, 900, 1400},
	{350, 750, 1100, 1700},
	{450, 900, 1400, 2100},
	{550, 1100, 1600, 2400},
	{600, 1200, 1900, 2800},
	{800, 1600, 2400, 3600},
	{1000, 2000, 3000, 4500},
	{1100, 2200, 3400, 5100},
	{1250, 2500, 3800, 5700},
	{1400, 2800, 4300, 6400},
	{1600, 3200, 4800, 7200},
	{2000, 3900, 5900, 8800},
	{2100, 4200, 6300, 9500},
	{2400, 4900, 7300, 10900},
	{2800, 5700, 8500, 12700},
}

// easy, medium, hard, deadly per average party level
var crByDifficulty = [MaxLevel][4]float64{
	{0.125, 0.25, 0.5, 1},
	{0.25, 0.5, 1, 2},
	{0.5, 1, 2, 3},
	{0.5, 1, 2, 4},
	{1, 2, 3, 5},
	{1, 2, 4, 6},
	{2, 3, 5, 7},
	{2, 3, 5, 8},
	{2, 4, 6, 9},
	{3, 4, 7, 10},
	{3, 5, 8, 11},
	{4, 6, 9, 12},
	{4, 6, 10, 13},
	{5, 7, 11, 14},
	{5, 8, 12, 15},
	{6, 9, 13, 16},
	{6, 10, 14, 17},
	{7, 11, 15, 18},
	{8, 12, 16, 19},
	{8, 13, 17, 20},
}

var locationMonsters = map[string][]string{
	"forest":    {"wolf", "goblin", "giant spider", "owlbear", "dire wolf", "brown bear", "dryad", "green hag"},
	"dungeon":   {"skeleton", "zombie", "kobold", "goblin", "orc", "gelatinous cube", "mimic", "minotaur"},
	"cave":      {"giant bat", "kobold", "troglodyte", "grick", "cave bear", "hook horror", "roper", "umber hulk"},
	"mountain":  {"giant eagle", "harpy", "ogre", "hill giant", "griffon", "manticore", "stone giant", "wyvern"},
	"swamp":     {"giant frog", "lizardfolk", "bullywug", "crocodile", "will-o'-wisp", "black pudding", "hydra", "green hag"},
	"desert":    {"giant scorpion", "jackalwere", "gnoll", "mummy", "lamia", "androsphinx", "blue dragon wyrmling", "purple worm"},
	"urban":     {"bandit", "thug", "cultist", "guard", "spy", "veteran", "gladiator", "assassin"},
	"coastal":   {"sahuagin", "merrow", "giant crab", "harpy", "sea hag", "water elemental", "pirate captain", "dragon turtle"},
	"underdark": {"drow", "duergar", "quaggoth", "hook horror", "mind flayer", "beholder zombie", "drider", "aboleth"},
	"arctic":    {"winter wolf", "yeti", "polar bear", "ice mephit", "frost giant", "remorhaz", "white dragon wyrmling", "abominable yeti"},
	"plains":    {"hyena", "gnoll", "centaur", "ankheg", "bulette", "wereboar", "hill giant", "chimera"},
	"graveyard": {"skeleton", "zombie", "ghoul", "shadow", "wight", "ghost", "wraith", "mummy lord"},
}

var fallbackMonsters = []string{"bandit", "cultist", "thug"}

var individualCoins = map[Tier][]CoinRoll{
	TierLow: {
		{dice.MustParse("5d6"), 1, CP},
		{dice.MustParse("4d6"), 1, SP},
		{dice.MustParse("3d6"), 1, GP},
	},
	TierMedium: {
		{dice.MustParse("4d6"), 100, CP},
		{dice.MustParse("6d6"), 10, SP},
		{dice.MustParse("3d6"), 10, GP},
		{dice.MustParse("1d6"), 1, PP},
	},
	TierHigh: {
		{dice.MustParse("4d6"), 100, SP},
		{dice.MustParse("2d6"), 100, GP},
		{dice.MustParse("3d6"), 10, PP},
	},
	TierVeryHigh: {
		{dice.MustParse("2d6"), 1000, GP},
		{dice.MustParse("8d6"), 100, PP},
	},
}

var hoardTables = map[Tier]Hoard{
	TierLow: {
		Coins: []CoinRoll{
			{dice.MustParse("6d6"), 100, CP},
			{dice.MustParse("3d6"), 100, SP},
			{dice.MustParse("2d6"), 10, GP},
		},
		Gems:  ValuableRoll{Chance: 0.30, Quantity: dice.MustParse("2d6"), Value: 10},
		Art:   ValuableRoll{Chance: 0.25, Quantity: dice.MustParse("2d4"), Value: 25},
		Magic: MagicRoll{Chance: 0.35, Quantity: dice.MustParse("1d6"), Table: "A"},
	},
	TierMedium: {
		Coins: []CoinRoll{
			{dice.MustParse("2d6"), 100, CP},
			{dice.MustParse("2d6"), 1000, SP},
			{dice.MustParse("6d6"), 100, GP},
			{dice.MustParse("3d6"), 10, PP},
		},
		Gems:  ValuableRoll{Chance: 0.40, Quantity: dice.MustParse("3d6"), Value: 50},
		Art:   ValuableRoll{Chance: 0.30, Quantity: dice.MustParse("2d4"), Value: 250},
		Magic: MagicRoll{Chance: 0.40, Quantity: dice.MustParse("1d4"), Table: "B"},
	},
	TierHigh: {
		Coins: []CoinRoll{
			{dice.MustParse("4d6"), 1000, GP},
			{dice.MustParse("5d6"), 100, PP},
		},
		Gems:  ValuableRoll{Chance: 0.50, Quantity: dice.MustParse("3d6"), Value: 500},
		Art:   ValuableRoll{Chance: 0.40, Quantity: dice.MustParse("2d4"), Value: 750},
		Magic: MagicRoll{Chance: 0.50, Quantity: dice.MustParse("1d4"), Table: "F"},
	},
	TierVeryHigh: {
		Coins: []CoinRoll{
			{dice.MustParse("12d6"), 1000, GP},
			{dice.MustParse("8d6"), 1000, PP},
		},
		Gems:  ValuableRoll{Chance: 0.60, Quantity: dice.MustParse("3d6"), Value: 1000},
		Art:   ValuableRoll{Chance: 0.50, Quantity: dice.MustParse("1d10"), Value: 2500},
		Magic: MagicRoll{Chance: 0.60, Quantity: dice.MustParse("1d4"), Table: "I"},
	},
}

var gemCatalog = map[int][]string{
	10:   {"azurite", "banded agate", "blue quartz", "eye agate", "hematite", "lapis lazuli", "malachite", "moss agate", "obsidian", "rhodochrosite", "tiger eye", "turquoise"},
	50:   {"bloodstone", "carnelian", "chalcedony", "chrysoprase", "citrine", "jasper", "moonstone", "onyx", "quartz", "sardonyx", "star rose quartz", "zircon"},
	100:  {"amber", "amethyst", "chrysoberyl", "coral", "garnet", "jade", "jet", "pearl", "spinel", "tourmaline"},
	500:  {"alexandrite", "aquamarine", "black pearl", "blue spinel", "peridot", "topaz"},
	1000: {"black opal", "blue sapphire", "emerald", "fire opal", "opal", "star ruby", "star sapphire", "yellow sapphire"},
	5000: {"black sapphire", "diamond", "jacinth", "ruby"},
}

var artCatalog = map[int][]string{
	25: {"silver ewer", "carved bone statuette", "small gold bracelet", "cloth-of-gold vestments",
		"black velvet mask stitched with silver thread", "copper chalice with silver filigree"},
	250: {"gold ring set with bloodstones", "carved ivory statuette", "large gold bracelet",
		"silver necklace with a gemstone pendant", "bronze crown", "silk robe with gold embroidery"},
	750: {"silver chalice set with moonstones", "silver-plated longsword with jet set in the hilt",
		"carved harp of exotic wood with ivory inlay", "small gold idol", "gold dragon comb set with red garnets"},
	2500: {"fine gold chain set with a fire opal", "old masterpiece painting", "embroidered silk and velvet mantle",
		"platinum bracelet set with a sapphire", "embroidered glove set with jewel chips"},
	7500: {"jeweled gold crown", "jeweled platinum ring", "small gold statuette set with rubies",
		"gold cup set with emeralds", "gold jewelry box with platinum filigree"},
}

var magicItemTables = map[string][]string{
	"A": {"potion of healing", "spell scroll (cantrip)", "potion of climbing", "spell scroll (1st level)", "driftglobe", "bag of holding"},
	"B": {"potion of greater healing", "potion of fire breath", "potion of resistance", "ammunition +1", "spell scroll (2nd level)", "cap of water breathing"},
	"C": {"potion of superior healing", "spell scroll (4th level)", "ammunition +2", "potion of clairvoyance", "elixir of health", "oil of etherealness"},
	"D": {"potion of supreme healing", "potion of invisibility", "potion of speed", "spell scroll (6th level)", "ammunition +3", "potion of flying"},
	"E": {"spell scroll (8th level)", "potion of storm giant strength", "potion of supreme healing", "spell scroll (9th level)", "universal solvent", "arrow of slaying"},
	"F": {"weapon +1", "shield +1", "sentinel shield", "amulet of proof against detection", "boots of elvenkind", "cloak of protection"},
	"G": {"weapon +2", "figurine of wondrous power", "adamantine armor", "amulet of health", "belt of hill giant strength", "flame tongue"},
	"H": {"weapon +3", "amulet of the planes", "carpet of flying", "crystal ball", "ring of regeneration", "staff of power"},
	"I": {"defender", "hammer of thunderbolts", "luck blade", "sword of answering", "holy avenger", "ring of three wishes"},
}

func newDefault() *Tables {
	t := &Tables{
		crXP:            crXPRows,
		thresholds:      xpThresholds,
		crByDifficulty:  crByDifficulty,
		locations:       locationMonsters,
		defaultLocation: DefaultLocation,
		fallback:        fallbackMonsters,
		individual:      individualCoins,
		hoards:          hoardTables,
		gems:            NewCatalog(gemCatalog),
		art:             NewCatalog(artCatalog),
		magic:           magicItemTables,
	}
	if err := t.Validate(); err != nil {
		panic("tables: built-in tables are invalid: " + err.Error())
	}
	return t
}
