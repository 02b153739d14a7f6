// irysname registers human-readable usernames against wallet addresses,
// storing each registration as a permanent tagged record
package main

import (
	"github.com/irysname/irysname/cmd"
)

func main() {
	cmd.Execute()
}
