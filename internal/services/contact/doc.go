// Package contact keeps the list of known contacts and ties each new contact
// to a freshly committed identity.
package contact
