// Package keys implements deterministic custom-key hashing and bulk key
// merging. A custom key is a caller-chosen identifier mapped into the
// server's internal key space, so records addressed by custom key and by
// server-assigned key collide exactly when equal.
package keys
