package shrieker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const listingPage1 = "\x1b[H\x1b[2J\x1b[7mWeapons\x1b[0m\x1b[K\r\n" +
	" a - a +1 long sword (weapon in hand)\x1b[K\r\n" +
	" b - 12 +0 daggers (in quiver)\x1b[K\r\n" +
	"\x1b[7mArmor\x1b[0m\x1b[K\r\n" +
	" c - an uncursed +0 ring mail (being worn)\x1b[K\r\n" +
	"\x1b[7m--More--\x1b[0m"

const listingPage2 = "\x1b[H\x1b[2J\x1b[7mComestibles\x1b[0m\x1b[K\r\n" +
	" d - 2 food rations\x1b[K\r\n" +
	"\x1b[7mTools\x1b[0m\x1b[K\r\n" +
	" e - an oil lamp (0:12)\x1b[K\r\n" +
	"\x1b[7m(end)\x1b[0m"

func TestParseInventory(t *testing.T) {
	inv := NewInventory()
	require.True(t, ParseInventory(inv, []byte(listingPage1)))

	assert.Equal(t, 3, inv.Len())
	assert.Equal(t, "a +1 long sword (weapon in hand)", inv[Weapons]['a'].Raw)
	assert.Equal(t, "12 +0 daggers (in quiver)", inv[Weapons]['b'].Raw)
	assert.Equal(t, Armor, inv[Armor]['c'].Category)
	assert.True(t, inv[Armor]['c'].Worn())

	// Pages accumulate
	require.True(t, ParseInventory(inv, []byte(listingPage2)))
	assert.Equal(t, 5, inv.Len())

	it, ok := inv.Find('e')
	require.True(t, ok)
	assert.Equal(t, Tools, it.Category)
	_, ok = inv.Find('z')
	assert.False(t, ok)
}

func TestParseInventoryNoListing(t *testing.T) {
	inv := NewInventory()
	inv[Rings]['r'] = NewItem(Rings, "a ring of levitation")

	assert.False(t, ParseInventory(inv, []byte("\x1b[HYou see here a scroll.\x1b[K")))
	assert.Equal(t, 1, inv.Len())
}

func TestParseInventoryMissingCategory(t *testing.T) {
	inv := Inventory{}
	require.True(t, ParseInventory(inv, []byte(listingPage2)))
	for _, c := range Categories {
		assert.NotNil(t, inv[c], "category %s", c)
	}
	assert.Len(t, inv[Comestibles], 1)
}

func TestInventoryItemsOrder(t *testing.T) {
	inv := NewInventory()
	ParseInventory(inv, []byte(listingPage2))
	ParseInventory(inv, []byte(listingPage1))

	var letters []rune
	for _, slot := range inv.Items() {
		letters = append(letters, slot.Letter)
	}
	// Weapons, Armor, Comestibles, Tools
	assert.Equal(t, []rune{'a', 'b', 'c', 'd', 'e'}, letters)
}

func TestInventoryClearAndReplace(t *testing.T) {
	inv := NewInventory()
	ParseInventory(inv, []byte(listingPage1))

	other := NewInventory()
	other[Gems]['g'] = NewItem(Gems, "a gray stone")
	inv.Replace(other)
	assert.Equal(t, 1, inv.Len())
	_, ok := inv.Find('a')
	assert.False(t, ok)

	inv.Clear()
	assert.Equal(t, 0, inv.Len())
	assert.NotNil(t, inv[Weapons])
}
