package domain

import (
	"fmt"
	"strings"
)

// Tag records how a stored value was serialized.
// It is persisted in the jsonized column of a namespace table.
type Tag int

const (
	// TagRaw marks a plain string stored unchanged.
	TagRaw Tag = 0
	// TagStructured marks JSON-encoded text.
	TagStructured Tag = 1
	// TagOpaque marks base64 text wrapping an opaque binary encoding.
	TagOpaque Tag = 2
)

// String returns the lower-case name of the tag.
func (t Tag) String() string {
	switch t {
	case TagRaw:
		return "raw"
	case TagStructured:
		return "structured"
	case TagOpaque:
		return "opaque"
	default:
		return fmt.Sprintf("tag(%d)", int(t))
	}
}

// Valid reports whether t is one of the known tags.
func (t Tag) Valid() bool {
	return t >= TagRaw && t <= TagOpaque
}

// Encoded is a value reduced to the text stored in the value column.
type Encoded struct {
	Tag  Tag
	Text string
}

// TablePrefix is prepended to a namespace name to form its table name.
const TablePrefix = "db_"

// TagColumn is the name of the column holding a value's Tag.
const TagColumn = "jsonized"

// TableName returns the physical (unquoted) table name for a namespace.
func TableName(namespace string) string {
	return TablePrefix + namespace
}

// NamespaceFromTable strips TablePrefix from a table name.
// The second result is false if the table is not a namespace table.
func NamespaceFromTable(table string) (string, bool) {
	if !strings.HasPrefix(table, TablePrefix) {
		return "", false
	}
	return strings.TrimPrefix(table, TablePrefix), true
}

// QuoteIdentifier quotes an SQL identifier with backticks,
// doubling any backtick it contains.
func QuoteIdentifier(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}
