package repository

// Boolean flags are stored as SMALLINT 0/1.

func flag(b bool) int16 {
	if b {
		return 1
	}
	return 0
}

func isSet(v int16) bool { return v != 0 }

// orderOf returns the explicit order when given, else the input index.
func orderOf(explicit *int, index int) int {
	if explicit != nil {
		return *explicit
	}
	return index
}
