package templatestore

import (
	"fmt"
	"os"
	"strconv"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
)

// Module wires the ID generator, repository, and service for the API
// binary.
var Module = fx.Module("templatestore",
	fx.Provide(newSnowflakeNode),
	fx.Provide(NewRepository),
	fx.Provide(NewService),
)

// newSnowflakeNode builds the ID generator. PRINTGEN_NODE_ID sets the
// machine ID when running more than one instance.
func newSnowflakeNode() (*snowflake.Node, error) {
	nodeID := int64(1)
	if v := os.Getenv("PRINTGEN_NODE_ID"); v != "" {
		parsed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("templatestore: parse PRINTGEN_NODE_ID %q: %w", v, err)
		}
		nodeID = parsed
	}
	return snowflake.NewNode(nodeID)
}
