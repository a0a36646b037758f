package header

// ScanName looks for a field name followed by a colon at pos. It examines at
// most maxLen+1 bytes: the name itself may be up to maxLen bytes long and the
// byte after it must be the colon. The scan gives up early at the first byte
// that cannot be part of a field name.
//
// On success it returns the name bytes (a sub-slice of text) and the offset of
// the colon. Nothing about the registry is consulted, which makes this useful
// for telling an unknown field name apart from body text.
func ScanName(text []byte, pos, maxLen int) (name []byte, colon int, ok bool) {
	if pos < 0 || pos >= len(text) {
		return nil, -1, false
	}

	end := pos + maxLen
	for i := pos; i < len(text) && i <= end; i++ {
		c := text[i]
		if c == ':' {
			if i == pos {
				return nil, -1, false
			}
			return text[pos:i], i, true
		}

		if !isFieldText(c) {
			return nil, -1, false
		}
	}

	return nil, -1, false
}

// MatchAt reports whether a registered field name followed by a colon begins
// at pos in text. When it does, the offset of the colon is returned.
//
// The scan never reads beyond pos+MaxNameLength(), so long runs of body text
// cost no more to reject than the longest name in the registry.
func (r *Registry) MatchAt(text []byte, pos int) (colon int, ok bool) {
	name, colon, found := ScanName(text, pos, r.maxLen)
	if !found {
		return -1, false
	}

	if _, registered := r.names[string(name)]; !registered {
		return -1, false
	}
	return colon, true
}
