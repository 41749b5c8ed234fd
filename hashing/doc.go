// Package hashing puts FSHP behind a driver-based password hashing API, so
// applications can store FSHP hashes next to bcrypt or Argon2id hashes and
// migrate between them.
//
// # Architecture
//
// Every algorithm implements [Hasher]:
//
//   - [FSHPHasher]: salted, iterated SHA-1/SHA-2 hashes in the
//     {FSHPv|saltlen|rounds} format (see package fshp)
//   - [BcryptHasher]: bcrypt, for hashes imported from other systems
//   - [Argon2idHasher]: Argon2id in PHC format
//
// The [Manager] is a named driver registry with a default driver.  Make
// always uses the default; CheckWithDetect and InfoWithDetect pick the driver
// from the hash prefix.
//
// # Quick start
//
//	m, err := hashing.NewDefaultManager() // FSHP default, all drivers registered
//	if err != nil { log.Fatal(err) }
//
//	hash, _ := m.Make("my-secret-password")       // {FSHP1|8|4096}...
//	ok, _   := m.Check("my-secret-password", hash) // true
//
// # Upgrading stored hashes
//
// Call [Manager.NeedsRehash] after every successful login.  It returns true
// when the stored hash came from another driver, or from FSHP with a
// different variant, salt length or round count than the current options:
//
//	ok, _ := m.CheckWithDetect(password, storedHash)
//	if ok {
//	    if needs, _ := m.NeedsRehash(storedHash); needs {
//	        newHash, _ := m.Make(password)
//	        persist(userID, newHash)
//	    }
//	}
package hashing
