// advect runs the advection models offline and writes the result JSON,
// using the same solver code the API serves.
package main

func main() {
	Execute()
}
