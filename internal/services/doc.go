// Package services contains the business logic layer between the HTTP
// transport and the unification and verification engines. Services are safe
// for concurrent use.
package services
