package shrieker

import (
	"fmt"
	"math/rand"
	"os"
	"strings"
)

// Choices used when an option is left empty
var (
	Characters = []string{"bar", "pri", "ran", "val", "wiz"}
	Genders    = []string{"mal", "fem"}
	Races      = []string{"elf", "hum"}
	Alignments = []string{"cha", "neu"}
)

// DefaultPickupTypes is what autopickup collects: gold, scrolls, amulets,
// potions, rings and wands
const DefaultPickupTypes = "$?+!=/"

// GameOptions is the option set handed to the game through NETHACKOPTIONS
type GameOptions struct {
	Character   string
	Gender      string
	Race        string
	Align       string
	PickupTypes string
}

// RandomOptions fills every empty field of base, picking role, gender,
// race and alignment from the built-in choices
func RandomOptions(rng *rand.Rand, base GameOptions) GameOptions {
	pick := func(v string, from []string) string {
		if v != "" {
			return v
		}
		return from[rng.Intn(len(from))]
	}
	base.Character = pick(base.Character, Characters)
	base.Gender = pick(base.Gender, Genders)
	base.Race = pick(base.Race, Races)
	base.Align = pick(base.Align, Alignments)
	if base.PickupTypes == "" {
		base.PickupTypes = DefaultPickupTypes
	}
	return base
}

// Render returns the options file contents
func (o GameOptions) Render() string {
	var b strings.Builder
	fmt.Fprintf(&b, "CHARACTER=%s\n", o.Character)
	b.WriteString("OPTIONS=hilite_pet")
	if o.PickupTypes != "" {
		fmt.Fprintf(&b, ",pickup_types:%s", o.PickupTypes)
	}
	fmt.Fprintf(&b, ",gender:%s,race:%s,align:%s", o.Gender, o.Race, o.Align)
	return b.String()
}

// OptionsFile is a rendered options file on disk
type OptionsFile struct {
	path string
}

// WriteOptionsFile renders o into a new temporary file in dir ("" for the
// system default)
func WriteOptionsFile(dir string, o GameOptions) (*OptionsFile, error) {
	f, err := os.CreateTemp(dir, "shrieker-*.nethackrc")
	if err != nil {
		return nil, fmt.Errorf("failed to create options file: %w", err)
	}
	if _, err := f.WriteString(o.Render()); err != nil {
		f.Close()
		os.Remove(f.Name())
		return nil, fmt.Errorf("failed to write options file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return nil, fmt.Errorf("failed to write options file: %w", err)
	}
	return &OptionsFile{path: f.Name()}, nil
}

// Path returns the file's location
func (f *OptionsFile) Path() string {
	return f.path
}

// Env returns the environment entry pointing the game at the file
func (f *OptionsFile) Env() string {
	return "NETHACKOPTIONS=@" + f.path
}

// Remove deletes the file
func (f *OptionsFile) Remove() error {
	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
