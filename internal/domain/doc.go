// Package domain defines core data models and interfaces shared across the app.
// It contains plain types (documents, section names) and contracts (the storage
// substrate handles and the section store) only.
package domain
