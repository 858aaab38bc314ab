package voice

// ResolveSlot returns the value of the first alias present in the bag with a
// non-empty value. When no alias matches it returns def. Case of the returned
// string is preserved; callers normalize as needed. Absence is expected and
// is not an error.
func ResolveSlot(slots Slots, aliases []string, def string) string {
	for _, name := range aliases {
		if s, ok := slots[name]; ok && s.Value != "" {
			return s.Value
		}
	}
	return def
}
