package domain

// KeyPrefix namespaces every key contentd writes to the store.
var KeyPrefix = "contentd:"

// SetKeyPrefix overrides KeyPrefix. Called once from main before any repository is used.
func SetKeyPrefix(prefix string) {
	if prefix != "" {
		KeyPrefix = prefix
	}
}
