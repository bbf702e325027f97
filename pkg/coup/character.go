// Package coup implements the Coup rules engine: an immutable, fully
// enumerated finite-state machine over game positions. Positions are
// value types; Actions() and Apply() are pure functions (apart from
// shuffling), so the engine is cheap to clone and safe to fork across
// goroutines.
package coup

// Character is one of the five influence cards.
type Character int

const (
	Duke Character = iota
	Assassin
	Captain
	Ambassador
	Contessa
)

func (c Character) String() string {
	switch c {
	case Duke:
		return "Duke"
	case Assassin:
		return "Assassin"
	case Captain:
		return "Captain"
	case Ambassador:
		return "Ambassador"
	case Contessa:
		return "Contessa"
	default:
		return "Unknown"
	}
}

// characterVariants enumerates the five character variants in a fixed order.
var characterVariants = [5]Character{Duke, Assassin, Captain, Ambassador, Contessa}

// DeckSize is the total number of cards in a Coup deck (3 of each character).
const DeckSize = len(characterVariants) * 3

// newDeck returns an unshuffled deck containing exactly three of each character.
func newDeck() []Character {
	deck := make([]Character, 0, DeckSize)
	for _, c := range characterVariants {
		deck = append(deck, c, c, c)
	}
	return deck
}
