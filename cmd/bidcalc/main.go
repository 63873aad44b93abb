// Bidcalc is an interactive window-cleaning bid calculator.
//
// Usage:
//
//	bidcalc [--verbose] [--quiet] [--log-file PATH] [--clipboard MODE]
//	bidcalc quote ID=QTY... [--copy]
//	bidcalc catalog
package main

func main() {
	Execute()
}
