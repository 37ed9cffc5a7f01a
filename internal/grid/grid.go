package grid

// Size is the side length of the card grid.
const Size = 3

// Cards is the number of cards on the board.
const Cards = Size * Size

func Index(row, col int) int {
	return row*Size + col
}

func Pos(index int) (row, col int) {
	return index / Size, index % Size
}

// Valid reports whether index names a card on the board.
func Valid(index int) bool {
	return index >= 0 && index < Cards
}

// Move returns the cursor position after key, clamped to the board. Keys
// that are not movement keys leave the cursor where it is.
func Move(row, col int, key string) (int, int) {
	switch key {
	case "up", "k", "w":
		if row > 0 {
			row--
		}
	case "down", "j", "s":
		if row < Size-1 {
			row++
		}
	case "left", "h", "a":
		if col > 0 {
			col--
		}
	case "right", "l", "d":
		if col < Size-1 {
			col++
		}
	}
	return row, col
}

// CardForKey maps "1".."9" to card indices 0..8, reading the board left to
// right and top to bottom.
func CardForKey(key string) (int, bool) {
	if len(key) != 1 || key[0] < '1' || key[0] > '9' {
		return 0, false
	}
	return int(key[0] - '1'), true
}
