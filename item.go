package shrieker

import (
	"regexp"
	"strconv"
	"strings"
)

// Category is an inventory section heading
type Category string

const (
	Amulets     Category = "Amulets"
	Weapons     Category = "Weapons"
	Armor       Category = "Armor"
	Comestibles Category = "Comestibles"
	Scrolls     Category = "Scrolls"
	Spellbooks  Category = "Spellbooks"
	Potions     Category = "Potions"
	Rings       Category = "Rings"
	Wands       Category = "Wands"
	Tools       Category = "Tools"
	Gems        Category = "Gems"
)

// Categories lists every inventory section in the order the game prints them
var Categories = []Category{
	Amulets, Weapons, Armor, Comestibles, Scrolls, Spellbooks,
	Potions, Rings, Wands, Tools, Gems,
}

// BUC is an item's curse status
type BUC int

const (
	BUCUnknown BUC = iota
	BUCCursed
	BUCUncursed
	BUCBlessed
)

func (b BUC) String() string {
	switch b {
	case BUCCursed:
		return "cursed"
	case BUCUncursed:
		return "uncursed"
	case BUCBlessed:
		return "blessed"
	default:
		return "unknown"
	}
}

var (
	cursedPattern      = regexp.MustCompile(`\bcursed\b`)
	uncursedPattern    = regexp.MustCompile(`\buncursed\b`)
	blessedPattern     = regexp.MustCompile(`\bblessed\b`)
	wornPattern        = regexp.MustCompile(`\(being worn\)`)
	inUsePattern       = regexp.MustCompile(`\((?:in use|lit)\)`)
	quantityPattern    = regexp.MustCompile(`^(\d+)`)
	chargesPattern     = regexp.MustCompile(`\((\d+):(-?\d+)\)`)
	enchantmentPattern = regexp.MustCompile(`(?:^| )([-+]\d+) `)
	namedPattern       = regexp.MustCompile(` named ([^(]+)`)

	wieldedPattern   = regexp.MustCompile(`\(weapon in hands?\)|\(wielded\)`)
	alternatePattern = regexp.MustCompile(`\(alternate weapon; not wielded\)`)
	quiveredPattern  = regexp.MustCompile(`\(in quiver(?: pouch)?\)`)
)

// Item is one inventory entry. Everything beyond the category and the raw
// description is derived from the text on demand.
type Item struct {
	Category Category
	Raw      string
}

// NewItem creates an item from its inventory description
func NewItem(category Category, raw string) Item {
	return Item{Category: category, Raw: strings.TrimSpace(raw)}
}

func (it Item) String() string {
	return it.Raw
}

// Cursed reports whether the item is known cursed
func (it Item) Cursed() bool {
	return cursedPattern.MatchString(it.Raw)
}

// Uncursed reports whether the item is known uncursed
func (it Item) Uncursed() bool {
	return uncursedPattern.MatchString(it.Raw)
}

// Blessed reports whether the item is known blessed
func (it Item) Blessed() bool {
	return blessedPattern.MatchString(it.Raw)
}

// BUC folds the three curse flags into one value
func (it Item) BUC() BUC {
	switch {
	case it.Blessed():
		return BUCBlessed
	case it.Uncursed():
		return BUCUncursed
	case it.Cursed():
		return BUCCursed
	default:
		return BUCUnknown
	}
}

// Worn reports whether the item is being worn
func (it Item) Worn() bool {
	return wornPattern.MatchString(it.Raw)
}

// InUse reports whether the item is in use or lit
func (it Item) InUse() bool {
	return inUsePattern.MatchString(it.Raw)
}

// Quantity is the leading count, 1 when the description has none
func (it Item) Quantity() int {
	m := quantityPattern.FindStringSubmatch(it.Raw)
	if m == nil {
		return 1
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 1
	}
	return n
}

// Charges returns the (current, max) charge pair of a wand or tool
func (it Item) Charges() (current, max int, ok bool) {
	m := chargesPattern.FindStringSubmatch(it.Raw)
	if m == nil {
		return 0, 0, false
	}
	return atoi(m[1]), atoi(m[2]), true
}

// Enchantment returns the item's signed enchantment
func (it Item) Enchantment() (int, bool) {
	m := enchantmentPattern.FindStringSubmatch(it.Raw)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// Name returns the custom name given with #name
func (it Item) Name() (string, bool) {
	m := namedPattern.FindStringSubmatch(it.Raw)
	if m == nil {
		return "", false
	}
	return strings.TrimSpace(m[1]), true
}

// WeaponTraits is the capability block carried by Weapons items
type WeaponTraits struct {
	Wielded   bool
	Alternate bool
	Quivered  bool
}

// Weapon returns the weapon capability block. ok is false for items
// outside the Weapons category.
func (it Item) Weapon() (w WeaponTraits, ok bool) {
	if it.Category != Weapons {
		return WeaponTraits{}, false
	}
	return WeaponTraits{
		Wielded:   wieldedPattern.MatchString(it.Raw),
		Alternate: alternatePattern.MatchString(it.Raw),
		Quivered:  quiveredPattern.MatchString(it.Raw),
	}, true
}
