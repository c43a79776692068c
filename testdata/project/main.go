package main

import "fmt"

func main() {
	// FIXME: read the greeting from flags
	fmt.Println("hello")
}
