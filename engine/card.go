package engine

// Suit constants — packed into bits 4–5 of Card. The order doubles as the
// fixed foundation suit order (foundation i accepts only FoundationSuits[i]).
const (
	SuitHearts   uint8 = 0
	SuitDiamonds uint8 = 1
	SuitClubs    uint8 = 2
	SuitSpades   uint8 = 3
)

// FoundationSuits maps foundation pile index to its suit.
var FoundationSuits = [NumFoundations]uint8{SuitHearts, SuitDiamonds, SuitClubs, SuitSpades}

// Rank constants — packed into bits 0–3 of Card. Aces are low.
const (
	RankAce   uint8 = 1
	RankTwo   uint8 = 2
	RankThree uint8 = 3
	RankFour  uint8 = 4
	RankFive  uint8 = 5
	RankSix   uint8 = 6
	RankSeven uint8 = 7
	RankEight uint8 = 8
	RankNine  uint8 = 9
	RankTen   uint8 = 10
	RankJack  uint8 = 11
	RankQueen uint8 = 12
	RankKing  uint8 = 13
)

// Card is a packed uint8: bits 0–3 = rank (1–13), bits 4–5 = suit,
// bit 6 = face-up. Value equality therefore includes the face-up state,
// which is what the undo layer relies on when diffing snapshots.
type Card uint8

// NoCard represents the absence of a card.
const NoCard Card = 0xFF

const faceUpBit Card = 1 << 6

// NewCard constructs a face-down Card from suit and rank.
func NewCard(suit, rank uint8) Card {
	return Card((suit&0x3)<<4 | rank&0x0F)
}

// Rank returns the rank bits (1–13).
func (c Card) Rank() uint8 { return uint8(c) & 0x0F }

// Suit returns the suit bits.
func (c Card) Suit() uint8 { return uint8(c) >> 4 & 0x3 }

// FaceUp reports whether the card is face-up.
func (c Card) FaceUp() bool { return c&faceUpBit != 0 }

// Flip returns a new Card with the face-up state inverted. Cards are never
// mutated in place, only replaced.
func (c Card) Flip() Card { return c ^ faceUpBit }

// IsRed reports whether the card's suit is red (hearts or diamonds).
func (c Card) IsRed() bool {
	s := c.Suit()
	return s == SuitHearts || s == SuitDiamonds
}

// OppositeColor reports whether c and other have different colors.
func (c Card) OppositeColor(other Card) bool { return c.IsRed() != other.IsRed() }

var suitSymbols = [4]string{"♥", "♦", "♣", "♠"}

var rankDisplays = [14]string{
	"?", "A", "2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K",
}

// String renders the card for display: "A♥" face-up, "##" face-down.
func (c Card) String() string {
	if c == NoCard {
		return "--"
	}
	if !c.FaceUp() {
		return "##"
	}
	return rankDisplays[c.Rank()] + suitSymbols[c.Suit()]
}
