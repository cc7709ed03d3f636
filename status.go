package shrieker

import "regexp"

// StatusRow is the screen row carrying the status line on a 24-row terminal
const StatusRow = 23

// Hunger is the hunger condition shown on the status line
type Hunger string

const (
	NotHungry Hunger = ""
	Satiated  Hunger = "Satiated"
	Hungry    Hunger = "Hungry"
	Weak      Hunger = "Weak"
	Fainting  Hunger = "Fainting"
)

// Burden is the encumbrance condition shown on the status line
type Burden string

const (
	Unencumbered Burden = ""
	Burdened     Burden = "Burdened"
	Stressed     Burden = "Stressed"
	Strained     Burden = "Strained"
	Overtaxed    Burden = "Overtaxed"
	Overloaded   Burden = "Overloaded"
)

var statusPattern = regexp.MustCompile(
	`Dlvl:(?P<dlvl>\S+)\s*` +
		`\$:(?P<money>\d+)\s*` +
		`HP:(?P<hp>\d+)\((?P<hp_max>\d+)\)\s*` +
		`Pw:(?P<pw>\d+)\((?P<pw_max>\d+)\)\s*` +
		`AC:(?P<ac>-?\d+)\s*` +
		`Exp:(?P<exp>\d+)\s*` +
		`(?:T:(?P<turns>\d+)\s*)?` +
		`(?P<hunger>Satiated|Hungry|Weak|Fainting)?\s*` +
		`(?P<stun>Stun)?\s*` +
		`(?P<conf>Conf)?\s*` +
		`(?P<blind>Blind)?\s*` +
		`(?P<burden>Burdened|Stressed|Strained|Overtaxed|Overloaded)?\s*` +
		`(?P<hallu>Hallu)?`)

// Status is the bottom status line
type Status struct {
	Dlvl  string // not always numeric, e.g. "Home 1" shows as "Home"
	Money int
	HP    int
	HPMax int
	Pw    int
	PwMax int
	AC    int
	Exp   int
	Turns int // 0 unless the game shows the turn counter

	Hunger        Hunger
	Stunned       bool
	Confused      bool
	Blind         bool
	Burden        Burden
	Hallucinating bool
}

// ParseStatus reads the status line. ok is false when the line does not
// currently show the status. Missing condition tokens mean the character
// is not afflicted.
func ParseStatus(line string) (s Status, ok bool) {
	m := statusPattern.FindStringSubmatch(line)
	if m == nil {
		return Status{}, false
	}
	group := func(name string) string {
		return m[statusPattern.SubexpIndex(name)]
	}
	s.Dlvl = group("dlvl")
	s.Money = atoi(group("money"))
	s.HP = atoi(group("hp"))
	s.HPMax = atoi(group("hp_max"))
	s.Pw = atoi(group("pw"))
	s.PwMax = atoi(group("pw_max"))
	s.AC = atoi(group("ac"))
	s.Exp = atoi(group("exp"))
	s.Turns = atoi(group("turns"))
	s.Hunger = Hunger(group("hunger"))
	s.Stunned = group("stun") != ""
	s.Confused = group("conf") != ""
	s.Blind = group("blind") != ""
	s.Burden = Burden(group("burden"))
	s.Hallucinating = group("hallu") != ""
	return s, true
}

// Merge overwrites s with the status parsed from line. When the line does
// not match, s is left as it was and Merge returns false.
func (s *Status) Merge(line string) bool {
	parsed, ok := ParseStatus(line)
	if !ok {
		return false
	}
	*s = parsed
	return true
}
