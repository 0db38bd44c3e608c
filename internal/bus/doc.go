// Package bus provides an in-process publish/subscribe mechanism that
// decouples producers of domain occurrences from their consumers. The bus
// itself carries no domain knowledge.
package bus
