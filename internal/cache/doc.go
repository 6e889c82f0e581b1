// Package cache keeps the top-level catalog list on disk so the add form
// does not hit the reference service on every open.
//
// # Record Format
//
// Each cached list is one JSON file named after its key (for example
// brands-carros.json) inside the cache directory:
//
//	{
//	  "data": [{"code": "7", "name": "Audi"}, ...],
//	  "timestamp": 1760780000000
//	}
//
// The timestamp is the fetch time in Unix milliseconds.
//
// # Freshness
//
// A record younger than [MaxAge] is served without a network call. An
// expired, missing or corrupt record triggers a refetch. Expired data is
// never returned when that refetch fails; the caller gets the error and the
// expired record stays on disk untouched. Corrupt records are removed.
//
// # Concurrency
//
// [FileStore] writes are serialized by an advisory lock file (.cache.lock)
// and land through an atomic rename, so concurrent refreshes in two
// processes both fetch and the last write wins.
package cache
