package idutil

import (
	"sync"

	"github.com/bwmarrin/snowflake"
)

var (
	node     *snowflake.Node
	nodeOnce sync.Once
	nodeID   int64
)

// SetNodeID must be called before the first id is generated when running many
// api processes, each process needs its own node id in [0, 1023].
func SetNodeID(id int64) {
	nodeID = id
}

// NewID returns a unique, time ordered int64 id.
func NewID() int64 {
	nodeOnce.Do(func() {
		var err error
		node, err = snowflake.NewNode(nodeID)
		if err != nil {
			panic(err)
		}
	})

	return node.Generate().Int64()
}
