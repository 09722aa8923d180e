// Command robovac simulates the cleaning robot navigation strategies on a
// directory of house files.
package main

func main() {
	Execute()
}
