package key

var punctuation = map[Key]byte{
	KeyEsc:          0x1b,
	KeyReturn:       '\n',
	KeyTab:          '\t',
	KeySpace:        ' ',
	KeyBackspace:    0x08,
	KeyPlus:         '+',
	KeyMinus:        '-',
	KeyLeftBracket:  '[',
	KeyRightBracket: ']',
	KeySemicolon:    ';',
	KeyQuote:        '\'',
	KeyComma:        ',',
	KeyPeriod:       '.',
	KeySlash:        '/',
	KeyBackslash:    '\\',
	KeyTilde:        '`',
}

// ToASCII returns the ASCII byte produced by k with the given modifiers, or 0
// if the key has no ASCII form. Shift selects upper case letters.
func ToASCII(k Key, mods Modifier) byte {
	switch {
	case k >= Key0 && k <= Key9:
		return '0' + byte(k-Key0)
	case k >= KeyA && k <= KeyZ:
		if mods.HasShift() {
			return 'A' + byte(k-KeyA)
		}
		return 'a' + byte(k-KeyA)
	}
	return punctuation[k]
}

var runeKeys = func() map[rune]Key {
	m := make(map[rune]Key, len(punctuation))
	for k, b := range punctuation {
		m[rune(b)] = k
	}
	m['\r'] = KeyReturn
	m[0x7f] = KeyBackspace
	return m
}()

// FromRune maps a printable ASCII rune back to a key and the modifiers needed
// to produce it. Runes without a key return KeyNone.
func FromRune(r rune) (Key, Modifier) {
	switch {
	case r >= '0' && r <= '9':
		return Key0 + Key(r-'0'), ModNone
	case r >= 'a' && r <= 'z':
		return KeyA + Key(r-'a'), ModNone
	case r >= 'A' && r <= 'Z':
		return KeyA + Key(r-'A'), ModLeftShift
	}
	if k, ok := runeKeys[r]; ok {
		return k, ModNone
	}
	return KeyNone, ModNone
}
