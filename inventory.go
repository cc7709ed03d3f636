package shrieker

import (
	"bytes"
	"regexp"
	"sort"
)

// reverseVideo ends an inventory section: the next heading is drawn in
// reverse video.
var reverseVideo = []byte("\x1b[7m")

// inventoryEntry matches " <letter> - <description>" up to the next CSI.
var inventoryEntry = regexp.MustCompile(` (\w) - ((?:[^\x1b]|\x1b[^\[])*?)\x1b\[`)

// Inventory maps category -> slot letter -> item
type Inventory map[Category]map[rune]Item

// NewInventory returns an empty inventory with every category present
func NewInventory() Inventory {
	inv := make(Inventory, len(Categories))
	for _, c := range Categories {
		inv[c] = make(map[rune]Item)
	}
	return inv
}

// Clear empties every category
func (inv Inventory) Clear() {
	for _, c := range Categories {
		inv[c] = make(map[rune]Item)
	}
}

// Replace makes inv hold exactly the items in from
func (inv Inventory) Replace(from Inventory) {
	inv.Clear()
	for category, slots := range from {
		dst, ok := inv[category]
		if !ok {
			dst = make(map[rune]Item)
			inv[category] = dst
		}
		for letter, it := range slots {
			dst[letter] = it
		}
	}
}

// Len counts all items
func (inv Inventory) Len() int {
	n := 0
	for _, slots := range inv {
		n += len(slots)
	}
	return n
}

// Find looks up a slot letter across all categories
func (inv Inventory) Find(letter rune) (Item, bool) {
	for _, slots := range inv {
		if it, ok := slots[letter]; ok {
			return it, true
		}
	}
	return Item{}, false
}

// Slot pairs an item with its letter
type Slot struct {
	Letter rune
	Item   Item
}

// Items returns every item sorted by category order, then letter
func (inv Inventory) Items() []Slot {
	var out []Slot
	for _, c := range Categories {
		start := len(out)
		for letter, it := range inv[c] {
			out = append(out, Slot{Letter: letter, Item: it})
		}
		section := out[start:]
		sort.Slice(section, func(i, j int) bool {
			return section[i].Letter < section[j].Letter
		})
	}
	return out
}

// ParseInventory reads the inventory listing out of a raw frame and adds
// what it finds to inv. Nothing is removed, so the pages of a "--More--"
// listing accumulate. found reports whether any category heading was seen.
func ParseInventory(inv Inventory, frame []byte) (found bool) {
	for _, category := range Categories {
		slots, ok := inv[category]
		if !ok {
			slots = make(map[rune]Item)
			inv[category] = slots
		}

		i := bytes.Index(frame, []byte(category))
		if i < 0 {
			continue
		}
		found = true

		section := frame[i:]
		if j := bytes.Index(section, reverseVideo); j >= 0 {
			section = section[:j]
		}
		for _, m := range inventoryEntry.FindAllSubmatch(section, -1) {
			letter := []rune(string(m[1]))[0]
			slots[letter] = NewItem(category, string(m[2]))
		}
	}
	return found
}
