package main

import "github.com/davidace/h5pack/cmd/h5pack/internal"

func main() {
	internal.Execute()
}
