// Command gardenplan plans garden beds, plantings and seed orders.
package main

import "github.com/mesh-intelligence/gardenplan/internal/cli"

func main() {
	cli.Execute()
}
