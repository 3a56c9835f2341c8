package game

import "strings"

// Owner - владелец клетки. None означает пустую клетку.
type Owner uint8

const (
	None Owner = iota
	X
	O
)

// Opponent возвращает противника; для None возвращает None
func (o Owner) Opponent() Owner {
	switch o {
	case X:
		return O
	case O:
		return X
	}
	return None
}

func (o Owner) IsValid() bool {
	return o == X || o == O
}

func (o Owner) String() string {
	switch o {
	case X:
		return "x"
	case O:
		return "o"
	}
	return ""
}

// ParseOwner разбирает маркер игрока ("x" или "o")
func ParseOwner(s string) (Owner, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "x":
		return X, nil
	case "o":
		return O, nil
	}
	return None, ErrInvalidOwner
}

func (o Owner) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

func (o *Owner) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*o = None
		return nil
	}
	parsed, err := ParseOwner(string(text))
	if err != nil {
		return err
	}
	*o = parsed
	return nil
}
