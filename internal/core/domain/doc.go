// Package domain defines the value types shared by the settings mirror.
//
// It holds no IO and no framework coupling. This package contains:
//
//   - PublicKey: the identity key type stored by the public_key setting
//   - Errors: structured error codes for store, lookup and value failures
package domain
