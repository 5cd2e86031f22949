// Package middleware provides SnapshotStore decorators.
//
// The encryption middleware seals the tape contents of every saved run with AES-GCM
// and supports key rotation through fallback keys:
//
//	store := middleware.Chain(sqliteStore,
//		middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: key}),
//	)
package middleware
