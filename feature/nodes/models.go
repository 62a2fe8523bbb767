package nodes

import (
	"time"

	"dns-fleet/core/node"
)

// TableName is the registry table.
const TableName = "cluster_nodes"

// requiredColumns must exist before the registry can serve.
var requiredColumns = []string{"id", "name", "url", "token"}

// Record is the database row of a registered node.
type Record struct {
	ID        string `gorm:"primaryKey;size:64"`
	Name      string `gorm:"size:128"`
	URL       string `gorm:"size:512;not null"`
	Token     string `gorm:"size:256"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName implements gorm's tabler.
func (Record) TableName() string {
	return TableName
}

func (r Record) toNode() node.Node {
	return node.Node{ID: r.ID, Name: r.Name, URL: r.URL, Token: r.Token}
}

func recordFrom(n node.Node) Record {
	return Record{ID: n.ID, Name: n.Name, URL: n.URL, Token: n.Token}
}
