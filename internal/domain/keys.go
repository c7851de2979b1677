package domain

// KeyPrefix namespaces every key the service writes to the store.
// main overrides it from storage.key_prefix at startup.
var KeyPrefix = "actdex:"
