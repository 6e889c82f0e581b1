// Command garage keeps a small registry of vehicles, looked up in the FIPE
// reference catalog.
package main

func main() {
	Execute()
}
