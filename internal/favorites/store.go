// Copyright (c) 2026 Byfest. All rights reserved.
// Author: kontakt@byfest.dk

/*
Package favorites manages each visitor's saved-event list.

Saved lists are anonymous and volatile: they are keyed by a client-generated
visitor id and live in Redis, not the relational store. Losing one costs the
visitor a few bookmarks, never data of record. The catalog's "favorites"
quick filter reads the same set.
*/
package favorites

import "context"

// # Saved-Set Data Access

// Store defines the persistence contract for visitor saved-event sets.
type Store interface {

	/*
		Add puts an event id into the visitor's saved set.

		Parameters:
		  - context: context.Context
		  - visitorID: string
		  - eventID: string

		Returns:
		  - error: Cache write failures
	*/
	Add(context context.Context, visitorID, eventID string) error

	/*
		Remove deletes an event id from the visitor's saved set.

		Parameters:
		  - context: context.Context
		  - visitorID: string
		  - eventID: string

		Returns:
		  - error: Cache write failures
	*/
	Remove(context context.Context, visitorID, eventID string) error

	/*
		Members returns every event id in the visitor's saved set.

		Parameters:
		  - context: context.Context
		  - visitorID: string

		Returns:
		  - []string: Saved event ids (order unspecified)
		  - error: Cache read failures
	*/
	Members(context context.Context, visitorID string) ([]string, error)
}
