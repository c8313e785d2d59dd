// Package ports holds the interfaces the planner's layers meet at. HTTP
// handlers call the service ports that package app implements. Services call
// the Store and BoardFormatter ports that the SQLite store and the export
// adapters implement.
package ports
