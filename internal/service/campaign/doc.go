// Package campaign implements the campaign registry and the storage adapter
// contract it is built on.
//
// The service layer contains all business logic for creating, listing and
// deleting QR campaigns and for appending scan events. It depends on the
// Store interface defined in this package and should never import from
// handler code.
//
// Store implementations live in repository/postgres/ (remote) and
// repository/local/ (JSON file store). The active backend is chosen once at
// startup and injected; nothing in this package branches on backend type.
package campaign
