// Package board implements an in-memory, dweet-compatible bulletin board.
//
// [Store] keeps a bounded history per thing with strictly increasing
// creation stamps. [Server] exposes a Store over the dweet.io HTTP API
// (POST /dweet/for/{thing}, GET /get/latest/dweet/for/{thing},
// GET /get/dweets/for/{thing}) and is what the dweetboard command serves.
// Nothing is persisted.
package board
