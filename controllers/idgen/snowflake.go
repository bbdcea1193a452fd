package idgen

import (
	"strings"
	"sync"

	"github.com/bwmarrin/snowflake"
)

var (
	node     *snowflake.Node
	nodeOnce sync.Once
)

// Init sets the snowflake node for this process. Call it once at startup;
// GenerateID falls back to node 1 when Init was never called.
func Init(nodeID int64) error {
	n, err := snowflake.NewNode(nodeID)
	if err != nil {
		return err
	}
	nodeOnce.Do(func() {})
	node = n
	return nil
}

func current() *snowflake.Node {
	nodeOnce.Do(func() {
		if node == nil {
			node, _ = snowflake.NewNode(1)
		}
	})
	return node
}

func GenerateID() int64 {
	return current().Generate().Int64()
}

// DocumentNo returns a short unique document number such as "SHP-1A2B3C4D5E6F".
func DocumentNo(prefix string) string {
	return prefix + "-" + strings.ToUpper(current().Generate().Base36())
}

// InviteCode returns a random-looking code for admins who leave the code blank.
func InviteCode() string {
	return current().Generate().Base32()
}
