package db

// NullIfZero maps 0 to NULL for optional foreign keys.
func NullIfZero(v int64) any {
	if v == 0 {
		return nil
	}
	return v
}
